package person

import (
	"fmt"
	"strings"
)

// CNPJLength is the digit count of a company registry number
const CNPJLength = 14

// DigitsOnly strips every character that is not an ASCII digit
func DigitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCNPJ strips punctuation from raw and requires exactly 14 digits
func NormalizeCNPJ(raw string) (string, error) {
	cnpj := DigitsOnly(raw)
	if len(cnpj) != CNPJLength {
		return "", NewValidationError("cnpj", fmt.Sprintf("must have %d digits, got %d", CNPJLength, len(cnpj)))
	}
	return cnpj, nil
}
