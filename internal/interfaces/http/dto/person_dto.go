package dto

import (
	"strings"
	"time"

	"github.com/finapp2p/backend/internal/domain/person"
)

// PersonRequest is the body of POST and PUT /api/persons.
//
// name and document must be present; document may be blank, which leaves the
// record without a CPF/CNPJ. A blank name is rejected by the service.
type PersonRequest struct {
	ID                     string  `json:"id"`
	PersonType             string  `json:"personType" binding:"required,oneof=pf pj"`
	Name                   *string `json:"name" binding:"required"`
	Document               *string `json:"document" binding:"required"`
	Email                  *string `json:"email"`
	BirthDate              *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	FoundationDate         *string `json:"foundationDate" binding:"omitempty,datetime=2006-01-02"`
	IsActive               *bool   `json:"isActive"`
	RegistrationStatus     *string `json:"registrationStatus"`
	RegistrationStatusDate *string `json:"registrationStatusDate" binding:"omitempty,datetime=2006-01-02"`
	OpeningDate            *string `json:"openingDate" binding:"omitempty,datetime=2006-01-02"`
	TradeName              *string `json:"tradeName"`
	MainCnae               *string `json:"mainCnae"`
	CompanySize            *string `json:"companySize"`
	CapitalSocial          *string `json:"capitalSocial"`
}

// ToRow converts the request into the wire row the mapping layer consumes.
// Blank optional strings become nil.
func (r PersonRequest) ToRow() person.Row {
	return person.Row{
		ID:                     strings.TrimSpace(r.ID),
		PersonType:             r.PersonType,
		Name:                   strings.TrimSpace(deref(r.Name)),
		Document:               person.StringPtr(strings.TrimSpace(deref(r.Document))),
		Email:                  blankToNil(r.Email),
		BirthDate:              blankToNil(r.BirthDate),
		FoundationDate:         blankToNil(r.FoundationDate),
		IsActive:               r.IsActive,
		RegistrationStatus:     blankToNil(r.RegistrationStatus),
		RegistrationStatusDate: blankToNil(r.RegistrationStatusDate),
		OpeningDate:            blankToNil(r.OpeningDate),
		TradeName:              blankToNil(r.TradeName),
		MainCnae:               blankToNil(r.MainCnae),
		CompanySize:            blankToNil(r.CompanySize),
		CapitalSocial:          blankToNil(r.CapitalSocial),
	}
}

// PersonListQuery holds the optional filters of GET /api/persons.
// Multi-valued facets are comma separated.
type PersonListQuery struct {
	Document string `form:"document"`
	Query    string `form:"q"`
	Type     string `form:"type"`
	Status   string `form:"status"`
	Role     string `form:"role"`
}

// Criteria converts the facets into filter criteria
func (q PersonListQuery) Criteria() person.Criteria {
	return person.Criteria{
		Query:    q.Query,
		Roles:    person.NewSet(strings.Split(q.Role, ",")...),
		Statuses: person.NewSet(strings.Split(q.Status, ",")...),
		Types:    person.NewSet(strings.Split(q.Type, ",")...),
	}
}

// CompanyLookupResponse is a registry lookup result: the row shape of a
// company plus the fields only the registry provides.
type CompanyLookupResponse struct {
	ID                     string           `json:"id"`
	PersonType             string           `json:"personType"`
	Name                   string           `json:"name"`
	Document               string           `json:"document"`
	Email                  *string          `json:"email"`
	IsActive               bool             `json:"isActive"`
	FoundationDate         *string          `json:"foundationDate"`
	RegistrationStatus     *string          `json:"registrationStatus"`
	RegistrationStatusDate *string          `json:"registrationStatusDate"`
	CreatedAt              *time.Time       `json:"createdAt,omitempty"`
	TradeName              *string          `json:"tradeName"`
	MainCnae               *string          `json:"mainCnae"`
	SecondaryCnaes         []string         `json:"secondaryCnaes"`
	SecondaryCnaesCount    int              `json:"secondaryCnaesCount"`
	LegalNature            *string          `json:"legalNature"`
	CapitalSocial          *string          `json:"capitalSocial"`
	CompanySize            *string          `json:"companySize"`
	SimplesOption          *bool            `json:"simplesOption"`
	MeiOption              *bool            `json:"meiOption"`
	Phones                 []person.Phone   `json:"phones"`
	Address                *person.Address  `json:"address"`
	Partners               []person.Partner `json:"partners"`
	Existing               bool             `json:"existing"`
}

// NewCompanyLookupResponse builds the response for p. existing marks a record
// that is already stored, in which case its timestamps are included.
func NewCompanyLookupResponse(p person.Person, existing bool) CompanyLookupResponse {
	base := p.Common()
	resp := CompanyLookupResponse{
		ID:             base.ID,
		PersonType:     person.TypeKey(p),
		Name:           base.Name,
		Document:       base.Document,
		Email:          base.Email,
		IsActive:       base.IsActive,
		SecondaryCnaes: []string{},
		Phones:         nonNilPhones(base.Phones),
		Address:        base.Address,
		Partners:       []person.Partner{},
		Existing:       existing,
	}
	if existing {
		created := base.CreatedAt
		resp.CreatedAt = &created
	}

	c, ok := p.(*person.Company)
	if !ok {
		return resp
	}
	resp.FoundationDate = c.FoundationDate
	resp.RegistrationStatus = c.RegistrationStatus
	resp.RegistrationStatusDate = c.RegistrationStatusDate
	resp.TradeName = c.TradeName
	resp.MainCnae = c.MainCnae
	if c.SecondaryCnaes != nil {
		resp.SecondaryCnaes = c.SecondaryCnaes
	}
	resp.SecondaryCnaesCount = c.SecondaryCnaesCount()
	resp.LegalNature = c.LegalNature
	resp.CapitalSocial = c.CapitalSocial
	resp.CompanySize = c.CompanySize
	resp.SimplesOption = c.SimplesOption
	resp.MeiOption = c.MeiOption
	if c.Partners != nil {
		resp.Partners = c.Partners
	}
	return resp
}

func nonNilPhones(phones []person.Phone) []person.Phone {
	if phones == nil {
		return []person.Phone{}
	}
	return phones
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
