package registry

import (
	"slices"
	"strings"

	"github.com/finapp2p/backend/internal/domain/person"
)

// ToCompany maps the record onto a new active Company whose id and document
// are both the CNPJ. The address is set only when street, city and state are
// all present.
func (r *CompanyRecord) ToCompany() *person.Company {
	phones := make([]person.Phone, 0, len(r.Telephones))
	for _, t := range r.Telephones {
		phones = append(phones, person.Phone{
			AreaCode: t.AreaCode,
			Number:   t.Number,
			IsFax:    t.IsFax,
		})
	}

	partners := make([]person.Partner, 0, len(r.Partners))
	for _, s := range r.Partners {
		partners = append(partners, person.Partner{
			Name:      s.Name,
			Document:  s.Document,
			Role:      s.Role,
			EntryDate: nonEmpty(s.EntryDate),
			Type:      value(s.Type),
			AgeRange:  nonEmpty(s.AgeRange),
		})
	}

	return person.NewCompany(person.CompanyParams{
		ID:                     r.CNPJ,
		Name:                   r.LegalName,
		Document:               r.CNPJ,
		TradeName:              nonEmpty(r.TradeName),
		Email:                  nonEmpty(r.Email),
		Phones:                 phones,
		Address:                r.address(),
		CadastralStatus:        nonEmpty(r.CadastralStatus),
		CadastralStatusDate:    nonEmpty(r.CadastralStatusDate),
		RegistrationStatus:     nonEmpty(r.CadastralStatus),
		RegistrationStatusDate: nonEmpty(r.CadastralStatusDate),
		FoundationDate:         nonEmpty(r.ActivityStartDate),
		MainCnae:               nonEmpty(r.MainCnae),
		SecondaryCnaes:         slices.Clone(r.SecondaryCnaes),
		LegalNature:            nonEmpty(r.LegalNature),
		CapitalSocial:          nonEmpty(r.CapitalSocial),
		CompanySize:            nonEmpty(r.CompanySize),
		SimplesOption:          copyBool(r.SimplesOption.Value),
		MeiOption:              copyBool(r.MeiOption.Value),
		Partners:               partners,
	})
}

func (r *CompanyRecord) address() *person.Address {
	if value(r.Street) == "" || value(r.City) == "" || value(r.State) == "" {
		return nil
	}
	return &person.Address{
		Street:     *r.Street,
		Number:     value(r.Number),
		Complement: nonEmpty(r.Complement),
		District:   value(r.District),
		City:       *r.City,
		State:      *r.State,
		ZipCode:    value(r.ZipCode),
	}
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonEmpty copies s, treating blank strings as absent
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
