package person

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCNPJ(t *testing.T) {
	cnpj, err := NormalizeCNPJ("12.345.678/0001-90")
	require.NoError(t, err)
	assert.Equal(t, "12345678000190", cnpj)

	_, err = NormalizeCNPJ("123.456.789-00")
	assert.True(t, IsValidation(err))

	_, err = NormalizeCNPJ("")
	assert.True(t, IsValidation(err))
}

func TestMergeCompany(t *testing.T) {
	fetched := NewCompany(CompanyParams{
		ID:                 "12345678000190",
		Name:               "ACME LTDA",
		Document:           "12345678000190",
		TradeName:          StringPtr("ACME"),
		RegistrationStatus: StringPtr("ATIVA"),
		Phones:             []Phone{{AreaCode: "11", Number: "1111"}, {AreaCode: "11", Number: "2222"}},
		Address:            &Address{Street: "Rua A", City: "São Paulo", State: "SP"},
		Partners:           []Partner{{Name: "Sócia", Role: "Administradora", Type: "2"}},
	})

	t.Run("keeps the draft identity and converts it to a company", func(t *testing.T) {
		draft := NewIndividual(IndividualParams{ID: "draft-1", Name: "", Document: "", Email: StringPtr("keep@example.com"), BirthDate: StringPtr("1990-01-01")})
		draft.SetActive(false)

		merged := MergeCompany(draft, fetched)

		assert.Equal(t, "draft-1", merged.ID)
		assert.False(t, merged.IsActive)
		assert.Equal(t, "ACME LTDA", merged.Name)
		assert.Equal(t, "12345678000190", merged.Document)
		assert.Equal(t, "keep@example.com", *merged.Email)
		assert.Equal(t, "ACME", *merged.TradeName)
		assert.Equal(t, []Phone{{AreaCode: "11", Number: "1111"}}, merged.Phones)
		require.NotNil(t, merged.Address)
		assert.Equal(t, "São Paulo", merged.Address.City)
		assert.Len(t, merged.Partners, 1)
	})

	t.Run("registry gaps keep current values", func(t *testing.T) {
		current := NewCompany(CompanyParams{ID: "c", Name: "Old", Document: "1", LegalNature: StringPtr("206-2"), Partners: []Partner{{Name: "Old partner"}}})
		sparse := NewCompany(CompanyParams{ID: "x", Document: "x"})

		merged := MergeCompany(current, sparse)

		assert.Equal(t, "Old", merged.Name)
		assert.Equal(t, "206-2", *merged.LegalNature)
		assert.NotNil(t, merged.Partners)
		assert.Empty(t, merged.Partners)
	})

	t.Run("cadastral situation fills the registration status", func(t *testing.T) {
		current := NewCompany(CompanyParams{ID: "c", Name: "Old", Document: "1", RegistrationStatus: StringPtr("BAIXADA")})
		situation := NewCompany(CompanyParams{
			ID:                  "x",
			Document:            "x",
			CadastralStatus:     StringPtr("Ativa"),
			CadastralStatusDate: StringPtr("2005-11-03"),
		})

		row := RowFromPerson(MergeCompany(current, situation))

		require.NotNil(t, row.RegistrationStatus)
		assert.Equal(t, "Ativa", *row.RegistrationStatus)
		require.NotNil(t, row.RegistrationStatusDate)
		assert.Equal(t, "2005-11-03", *row.RegistrationStatusDate)

		kept := MergeCompany(current, sparseCompany())
		assert.Equal(t, "BAIXADA", *kept.RegistrationStatus)
	})

	t.Run("nil current uses the registry record", func(t *testing.T) {
		merged := MergeCompany(nil, fetched)
		assert.Equal(t, fetched.ID, merged.ID)
		assert.NotSame(t, fetched, merged)
	})
}

func sparseCompany() *Company {
	return NewCompany(CompanyParams{ID: "x", Document: "x"})
}
