// Package person holds the registry's Person aggregate: individuals and
// companies, their wire row mapping, list filtering and the repository contract.
package person

import (
	"fmt"
	"time"
)

// Type discriminates the two person variants
type Type string

const (
	TypeIndividual Type = "INDIVIDUAL" // Pessoa física
	TypeCompany    Type = "COMPANY"    // Pessoa jurídica
)

// Wire and filter keys for Type
const (
	KeyIndividual = "pf"
	KeyCompany    = "pj"
)

// Status keys used by the status facet
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Key returns the short wire key for the type ("pf" or "pj")
func (t Type) Key() string {
	if t == TypeCompany {
		return KeyCompany
	}
	return KeyIndividual
}

// TypeFromKey maps a wire key to a Type. Anything other than "pj" is an individual.
func TypeFromKey(key string) Type {
	if key == KeyCompany {
		return TypeCompany
	}
	return TypeIndividual
}

// Person is a registry record. It is implemented only by *Individual and *Company.
type Person interface {
	// Common returns the fields shared by both variants
	Common() *Base
	// Type returns the variant discriminator
	Type() Type
	isPerson()
}

// Phone is a contact number
type Phone struct {
	AreaCode string `json:"ddd"`
	Number   string `json:"number"`
	IsFax    bool   `json:"isFax"`
}

// Address is a postal address
type Address struct {
	Street     string  `json:"street"`
	Number     string  `json:"number"`
	Complement *string `json:"complement,omitempty"`
	District   string  `json:"district"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	ZipCode    string  `json:"zipCode"`
}

// Partner is a member of a company's shareholder board (QSA)
type Partner struct {
	Name      string  `json:"name"`
	Document  string  `json:"document"`
	Role      string  `json:"role"`
	EntryDate *string `json:"entryDate,omitempty"`
	Type      string  `json:"type"`
	AgeRange  *string `json:"ageRange,omitempty"`
}

// Base holds the fields shared by individuals and companies.
// Optional fields are nil when unknown; an empty slice means "known to be empty".
type Base struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Document  string     `json:"document"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Phones    []Phone    `json:"phones"`
	Address   *Address   `json:"address,omitempty"`
}

// Common implements Person
func (b *Base) Common() *Base {
	return b
}

// Touch refreshes the update timestamp
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = &now
}

// SetActive sets the status flag
func (b *Base) SetActive(active bool) {
	b.IsActive = active
}

// ToggleActive flips the status flag and returns the new value
func (b *Base) ToggleActive() bool {
	b.IsActive = !b.IsActive
	return b.IsActive
}

// Individual is a natural person (CPF holder)
type Individual struct {
	Base
	BirthDate *string `json:"birthDate,omitempty"` // YYYY-MM-DD
}

// Type implements Person
func (*Individual) Type() Type { return TypeIndividual }

func (*Individual) isPerson() {}

// Company is a legal entity (CNPJ holder)
type Company struct {
	Base
	TradeName              *string   `json:"tradeName,omitempty"`
	CadastralStatus        *string   `json:"cadastralStatus,omitempty"`
	CadastralStatusDate    *string   `json:"cadastralStatusDate,omitempty"`
	OpeningDate            *string   `json:"openingDate,omitempty"`
	FoundationDate         *string   `json:"foundationDate,omitempty"`
	MainCnae               *string   `json:"mainCnae,omitempty"`
	SecondaryCnaes         []string  `json:"secondaryCnaes"`
	LegalNature            *string   `json:"legalNature,omitempty"`
	CapitalSocial          *string   `json:"capitalSocial,omitempty"` // kept verbatim, never parsed
	CompanySize            *string   `json:"companySize,omitempty"`
	RegistrationStatus     *string   `json:"registrationStatus,omitempty"`
	RegistrationStatusDate *string   `json:"registrationStatusDate,omitempty"`
	SimplesOption          *bool     `json:"simplesOption,omitempty"`
	MeiOption              *bool     `json:"meiOption,omitempty"`
	Partners               []Partner `json:"partners"`
}

// Type implements Person
func (*Company) Type() Type { return TypeCompany }

func (*Company) isPerson() {}

// SecondaryCnaesCount is derived from SecondaryCnaes; zero when the list is absent
func (c *Company) SecondaryCnaesCount() int {
	return len(c.SecondaryCnaes)
}

// IndividualParams are the inputs accepted by NewIndividual
type IndividualParams struct {
	ID        string
	Name      string
	Document  string
	Email     *string
	Phones    []Phone
	Address   *Address
	BirthDate *string
}

// CompanyParams are the inputs accepted by NewCompany
type CompanyParams struct {
	ID                     string
	Name                   string
	Document               string
	TradeName              *string
	Email                  *string
	Phones                 []Phone
	Address                *Address
	CadastralStatus        *string
	CadastralStatusDate    *string
	OpeningDate            *string
	FoundationDate         *string
	MainCnae               *string
	SecondaryCnaes         []string
	LegalNature            *string
	CapitalSocial          *string
	CompanySize            *string
	RegistrationStatus     *string
	RegistrationStatusDate *string
	SimplesOption          *bool
	MeiOption              *bool
	Partners               []Partner
}

// NewIndividual creates an active individual stamped with the current time.
// Document format is not checked here.
func NewIndividual(p IndividualParams) *Individual {
	return &Individual{
		Base: Base{
			ID:        p.ID,
			Name:      p.Name,
			Document:  p.Document,
			IsActive:  true,
			CreatedAt: time.Now(),
			Email:     p.Email,
			Phones:    p.Phones,
			Address:   p.Address,
		},
		BirthDate: p.BirthDate,
	}
}

// NewCompany creates an active company stamped with the current time
func NewCompany(p CompanyParams) *Company {
	return &Company{
		Base: Base{
			ID:        p.ID,
			Name:      p.Name,
			Document:  p.Document,
			IsActive:  true,
			CreatedAt: time.Now(),
			Email:     p.Email,
			Phones:    p.Phones,
			Address:   p.Address,
		},
		TradeName:              p.TradeName,
		CadastralStatus:        p.CadastralStatus,
		CadastralStatusDate:    p.CadastralStatusDate,
		OpeningDate:            p.OpeningDate,
		FoundationDate:         p.FoundationDate,
		MainCnae:               p.MainCnae,
		SecondaryCnaes:         p.SecondaryCnaes,
		LegalNature:            p.LegalNature,
		CapitalSocial:          p.CapitalSocial,
		CompanySize:            p.CompanySize,
		RegistrationStatus:     p.RegistrationStatus,
		RegistrationStatusDate: p.RegistrationStatusDate,
		SimplesOption:          p.SimplesOption,
		MeiOption:              p.MeiOption,
		Partners:               p.Partners,
	}
}

// TypeKey returns "pj" for companies and "pf" for individuals
func TypeKey(p Person) string {
	return p.Type().Key()
}

// StatusKey returns "active" or "inactive"
func StatusKey(p Person) string {
	if p.Common().IsActive {
		return StatusActive
	}
	return StatusInactive
}

// ChangeType converts p to the requested variant. Identity and shared fields
// are kept; fields specific to the previous variant are dropped.
func ChangeType(p Person, t Type) Person {
	if p.Type() == t {
		return p
	}
	base := cloneBase(p.Common())
	switch t {
	case TypeCompany:
		return &Company{Base: base}
	case TypeIndividual:
		return &Individual{Base: base}
	default:
		panic(fmt.Sprintf("person: unknown type %q", t))
	}
}

// Clone returns a deep copy of p
func Clone(p Person) Person {
	switch v := p.(type) {
	case *Individual:
		return &Individual{
			Base:      cloneBase(&v.Base),
			BirthDate: cloneString(v.BirthDate),
		}
	case *Company:
		c := *v
		c.Base = cloneBase(&v.Base)
		c.TradeName = cloneString(v.TradeName)
		c.CadastralStatus = cloneString(v.CadastralStatus)
		c.CadastralStatusDate = cloneString(v.CadastralStatusDate)
		c.OpeningDate = cloneString(v.OpeningDate)
		c.FoundationDate = cloneString(v.FoundationDate)
		c.MainCnae = cloneString(v.MainCnae)
		c.LegalNature = cloneString(v.LegalNature)
		c.CapitalSocial = cloneString(v.CapitalSocial)
		c.CompanySize = cloneString(v.CompanySize)
		c.RegistrationStatus = cloneString(v.RegistrationStatus)
		c.RegistrationStatusDate = cloneString(v.RegistrationStatusDate)
		c.SimplesOption = cloneBool(v.SimplesOption)
		c.MeiOption = cloneBool(v.MeiOption)
		if v.SecondaryCnaes != nil {
			c.SecondaryCnaes = append([]string{}, v.SecondaryCnaes...)
		}
		if v.Partners != nil {
			c.Partners = make([]Partner, len(v.Partners))
			for i, partner := range v.Partners {
				partner.EntryDate = cloneString(partner.EntryDate)
				partner.AgeRange = cloneString(partner.AgeRange)
				c.Partners[i] = partner
			}
		}
		return &c
	default:
		panic(fmt.Sprintf("person: unknown variant %T", p))
	}
}

func cloneBase(b *Base) Base {
	out := *b
	out.Email = cloneString(b.Email)
	if b.UpdatedAt != nil {
		updated := *b.UpdatedAt
		out.UpdatedAt = &updated
	}
	if b.Phones != nil {
		out.Phones = append([]Phone{}, b.Phones...)
	}
	if b.Address != nil {
		addr := *b.Address
		addr.Complement = cloneString(b.Address.Complement)
		out.Address = &addr
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}
