package dto

import (
	"testing"

	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPersonRequest_ToRow(t *testing.T) {
	active := false
	req := PersonRequest{
		ID:                 " p-1 ",
		PersonType:         person.KeyCompany,
		Name:               strPtr("  Acme Ltda "),
		Document:           strPtr(" 11222333000181 "),
		Email:              strPtr("   "),
		FoundationDate:     strPtr("2001-02-03"),
		IsActive:           &active,
		RegistrationStatus: strPtr("ATIVA"),
		TradeName:          strPtr("Acme"),
	}

	row := req.ToRow()
	assert.Equal(t, "p-1", row.ID)
	assert.Equal(t, "Acme Ltda", row.Name)
	require.NotNil(t, row.Document)
	assert.Equal(t, "11222333000181", *row.Document)
	assert.Nil(t, row.Email, "blank optional strings become nil")
	assert.Equal(t, "2001-02-03", *row.FoundationDate)
	assert.Equal(t, &active, row.IsActive)

	p := row.ToPerson()
	c, ok := p.(*person.Company)
	require.True(t, ok)
	assert.False(t, c.IsActive)
	assert.Equal(t, "Acme", *c.TradeName)
}

func TestPersonRequest_BlankDocument(t *testing.T) {
	req := PersonRequest{PersonType: person.KeyIndividual, Name: strPtr("Ana"), Document: strPtr("")}
	row := req.ToRow()
	require.NotNil(t, row.Document)
	assert.Empty(t, *row.Document)
	assert.Empty(t, row.ToPerson().Common().Document)
}

func TestPersonListQuery_Criteria(t *testing.T) {
	assert.True(t, PersonListQuery{}.Criteria().IsZero())

	c := PersonListQuery{Query: "acme", Type: "pj", Status: "active,inactive", Role: " ,client"}.Criteria()
	assert.Equal(t, "acme", c.Query)
	assert.True(t, c.Types.Has("pj"))
	assert.Len(t, c.Statuses, 2)
	assert.Len(t, c.Roles, 1)
	assert.True(t, c.Roles.Has("client"))
}

func TestNewCompanyLookupResponse(t *testing.T) {
	t.Run("fetched company", func(t *testing.T) {
		c := person.NewCompany(person.CompanyParams{
			Name:           "ACME LTDA",
			Document:       "11222333000181",
			TradeName:      strPtr("Acme"),
			SecondaryCnaes: []string{"6201501", "6202300"},
			Partners:       []person.Partner{{Name: "Ana", Role: "Sócio"}},
		})
		resp := NewCompanyLookupResponse(c, false)
		assert.Equal(t, person.KeyCompany, resp.PersonType)
		assert.Equal(t, 2, resp.SecondaryCnaesCount)
		assert.Len(t, resp.Partners, 1)
		assert.NotNil(t, resp.Phones)
		assert.Nil(t, resp.CreatedAt)
		assert.False(t, resp.Existing)
	})

	t.Run("stored record", func(t *testing.T) {
		c := person.NewCompany(person.CompanyParams{ID: "c-1", Name: "Acme", Document: "11222333000181"})
		resp := NewCompanyLookupResponse(c, true)
		assert.True(t, resp.Existing)
		assert.NotNil(t, resp.CreatedAt)
		assert.NotNil(t, resp.SecondaryCnaes)
		assert.NotNil(t, resp.Partners)
		assert.Zero(t, resp.SecondaryCnaesCount)
	})
}
