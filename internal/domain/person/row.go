package person

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Row is the flat wire and persistence shape of a Person.
//
// Nullable keys are pointers: nil means the key was null or absent. On output
// the variant's own keys are always written (as null when unset); keys of the
// other variant and read-only extras are written only when set.
type Row struct {
	ID                     string     `json:"id"`
	PersonType             string     `json:"personType"`
	Name                   string     `json:"name"`
	Document               *string    `json:"document"`
	Email                  *string    `json:"email"`
	BirthDate              *string    `json:"birthDate"`
	FoundationDate         *string    `json:"foundationDate"`
	IsActive               *bool      `json:"isActive"`
	RegistrationStatus     *string    `json:"registrationStatus"`
	RegistrationStatusDate *string    `json:"registrationStatusDate"`
	CreatedAt              *time.Time `json:"createdAt"`
	UpdatedAt              *time.Time `json:"updatedAt"`

	// Accepted on input only
	OpeningDate   *string `json:"openingDate"`
	TradeName     *string `json:"tradeName"`
	MainCnae      *string `json:"mainCnae"`
	CompanySize   *string `json:"companySize"`
	CapitalSocial *string `json:"capitalSocial"`
}

// MarshalJSON writes the key set described on Row
func (r Row) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":         r.ID,
		"personType": r.PersonType,
		"name":       r.Name,
		"document":   r.Document,
		"email":      r.Email,
		"isActive":   r.IsActive,
	}
	if r.PersonType == KeyCompany {
		out["foundationDate"] = r.FoundationDate
		out["registrationStatus"] = r.RegistrationStatus
		out["registrationStatusDate"] = r.RegistrationStatusDate
		putIfSet(out, "birthDate", r.BirthDate)
	} else {
		out["birthDate"] = r.BirthDate
		putIfSet(out, "foundationDate", r.FoundationDate)
		putIfSet(out, "registrationStatus", r.RegistrationStatus)
		putIfSet(out, "registrationStatusDate", r.RegistrationStatusDate)
	}
	if r.CreatedAt != nil {
		out["createdAt"] = r.CreatedAt
	}
	if r.UpdatedAt != nil {
		out["updatedAt"] = r.UpdatedAt
	}
	putIfSet(out, "openingDate", r.OpeningDate)
	putIfSet(out, "tradeName", r.TradeName)
	putIfSet(out, "mainCnae", r.MainCnae)
	putIfSet(out, "companySize", r.CompanySize)
	putIfSet(out, "capitalSocial", r.CapitalSocial)
	return json.Marshal(out)
}

func putIfSet(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = v
	}
}

// ToPerson converts the row to its domain variant. personType "pj" yields a
// Company, anything else an Individual. Missing id, name or document become "".
func (r Row) ToPerson() Person {
	var p Person
	if r.PersonType == KeyCompany {
		foundation := r.FoundationDate
		if foundation == nil {
			foundation = r.OpeningDate
		}
		p = NewCompany(CompanyParams{
			ID:                     r.ID,
			Name:                   r.Name,
			Document:               deref(r.Document),
			Email:                  cloneString(r.Email),
			TradeName:              cloneString(r.TradeName),
			CadastralStatus:        cloneString(r.RegistrationStatus),
			CadastralStatusDate:    cloneString(r.RegistrationStatusDate),
			FoundationDate:         cloneString(foundation),
			MainCnae:               cloneString(r.MainCnae),
			CompanySize:            cloneString(r.CompanySize),
			CapitalSocial:          cloneString(r.CapitalSocial),
			RegistrationStatus:     cloneString(r.RegistrationStatus),
			RegistrationStatusDate: cloneString(r.RegistrationStatusDate),
		})
	} else {
		p = NewIndividual(IndividualParams{
			ID:        r.ID,
			Name:      r.Name,
			Document:  deref(r.Document),
			Email:     cloneString(r.Email),
			BirthDate: cloneString(r.BirthDate),
		})
	}

	base := p.Common()
	base.IsActive = r.IsActive == nil || *r.IsActive
	if r.CreatedAt != nil {
		base.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		updated := *r.UpdatedAt
		base.UpdatedAt = &updated
	}
	return p
}

// RowFromPerson builds the create/update payload for p: the common fields plus
// the variant's own fields. Timestamps are left out.
func RowFromPerson(p Person) Row {
	base := p.Common()
	active := base.IsActive
	row := Row{
		ID:         base.ID,
		PersonType: TypeKey(p),
		Name:       base.Name,
		Document:   StringPtr(base.Document),
		Email:      cloneString(base.Email),
		IsActive:   &active,
	}

	switch v := p.(type) {
	case *Company:
		row.FoundationDate = cloneString(v.FoundationDate)
		row.RegistrationStatus = cloneString(v.RegistrationStatus)
		row.RegistrationStatusDate = cloneString(v.RegistrationStatusDate)
	case *Individual:
		row.BirthDate = cloneString(v.BirthDate)
	default:
		panic(fmt.Sprintf("person: unknown variant %T", p))
	}
	return row
}

// RowWithTimestamps is RowFromPerson plus createdAt and updatedAt, as served by the API
func RowWithTimestamps(p Person) Row {
	row := RowFromPerson(p)
	base := p.Common()
	created := base.CreatedAt
	row.CreatedAt = &created
	if base.UpdatedAt != nil {
		updated := *base.UpdatedAt
		row.UpdatedAt = &updated
	}
	return row
}

// RowsToPersons maps rows in order
func RowsToPersons(rows []Row) []Person {
	persons := make([]Person, 0, len(rows))
	for _, row := range rows {
		persons = append(persons, row.ToPerson())
	}
	return persons
}

// Validate checks the typed constraints that JSON decoding alone cannot express
func (r Row) Validate() error {
	switch r.PersonType {
	case "", KeyIndividual, KeyCompany:
		return nil
	default:
		return &DecodeError{Field: "personType", Reason: fmt.Sprintf("must be %q or %q, got %q", KeyIndividual, KeyCompany, r.PersonType)}
	}
}

// DecodeRow parses a single wire row
func DecodeRow(data []byte) (Row, error) {
	var row Row
	if err := decodeStrict(data, &row); err != nil {
		return Row{}, err
	}
	if err := row.Validate(); err != nil {
		return Row{}, err
	}
	return row, nil
}

// DecodeRows parses a JSON array of wire rows
func DecodeRows(data []byte) ([]Row, error) {
	var rows []Row
	if err := decodeStrict(data, &rows); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.Field = fmt.Sprintf("[%d].%s", i, de.Field)
			}
			return nil, err
		}
	}
	return rows, nil
}

func decodeStrict(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &DecodeError{Reason: "empty payload"}
	}
	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &DecodeError{
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
				Err:    err,
			}
		}
		return &DecodeError{Reason: "malformed JSON", Err: err}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
