package person

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndividual(t *testing.T) {
	t.Run("creates active individual", func(t *testing.T) {
		before := time.Now()
		p := NewIndividual(IndividualParams{ID: "1", Name: "João da Silva", Document: "12345678900"})

		assert.Equal(t, TypeIndividual, p.Type())
		assert.Equal(t, "1", p.ID)
		assert.Equal(t, "João da Silva", p.Name)
		assert.Equal(t, "12345678900", p.Document)
		assert.True(t, p.IsActive)
		assert.False(t, p.CreatedAt.Before(before))
		assert.Nil(t, p.UpdatedAt)
	})

	t.Run("leaves optional fields absent", func(t *testing.T) {
		p := NewIndividual(IndividualParams{ID: "1", Name: "Ana", Document: "1"})

		assert.Nil(t, p.Email)
		assert.Nil(t, p.Phones)
		assert.Nil(t, p.Address)
		assert.Nil(t, p.BirthDate)
	})

	t.Run("does not check document format", func(t *testing.T) {
		p := NewIndividual(IndividualParams{ID: "1", Name: "Ana", Document: "abc"})
		assert.Equal(t, "abc", p.Document)
	})
}

func TestNewCompany(t *testing.T) {
	t.Run("creates active company", func(t *testing.T) {
		before := time.Now()
		c := NewCompany(CompanyParams{
			ID:        "2",
			Name:      "EMPRESA EXEMPLO LTDA",
			Document:  "00000000000000",
			TradeName: StringPtr("EXEMPLO COMÉRCIO"),
		})

		assert.Equal(t, TypeCompany, c.Type())
		assert.True(t, c.IsActive)
		assert.False(t, c.CreatedAt.Before(before))
		require.NotNil(t, c.TradeName)
		assert.Equal(t, "EXEMPLO COMÉRCIO", *c.TradeName)
	})

	t.Run("unknown options stay nil", func(t *testing.T) {
		c := NewCompany(CompanyParams{ID: "2", Name: "X", Document: "2"})

		assert.Nil(t, c.SimplesOption)
		assert.Nil(t, c.MeiOption)
		assert.Nil(t, c.SecondaryCnaes)
		assert.Nil(t, c.Partners)
		assert.Equal(t, 0, c.SecondaryCnaesCount())
	})

	t.Run("secondary cnae count follows the list", func(t *testing.T) {
		c := NewCompany(CompanyParams{ID: "2", Name: "X", Document: "2", SecondaryCnaes: []string{"4751201", "4761003"}})
		assert.Equal(t, 2, c.SecondaryCnaesCount())

		c.SecondaryCnaes = append(c.SecondaryCnaes, "6201501")
		assert.Equal(t, 3, c.SecondaryCnaesCount())
	})
}

func TestKeys(t *testing.T) {
	ind := NewIndividual(IndividualParams{ID: "1", Name: "A", Document: "1"})
	comp := NewCompany(CompanyParams{ID: "2", Name: "B", Document: "2"})

	assert.Equal(t, KeyIndividual, TypeKey(ind))
	assert.Equal(t, KeyCompany, TypeKey(comp))
	assert.Equal(t, StatusActive, StatusKey(ind))

	comp.SetActive(false)
	assert.Equal(t, StatusInactive, StatusKey(comp))

	assert.Equal(t, TypeCompany, TypeFromKey("pj"))
	assert.Equal(t, TypeIndividual, TypeFromKey("pf"))
	assert.Equal(t, TypeIndividual, TypeFromKey(""))
}

func TestBaseMutation(t *testing.T) {
	p := NewIndividual(IndividualParams{ID: "1", Name: "A", Document: "1"})

	assert.False(t, p.ToggleActive())
	assert.False(t, p.IsActive)
	assert.True(t, p.ToggleActive())

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p.Touch(now)
	require.NotNil(t, p.UpdatedAt)
	assert.Equal(t, now, *p.UpdatedAt)
}

func TestChangeType(t *testing.T) {
	t.Run("individual to company keeps shared fields", func(t *testing.T) {
		ind := NewIndividual(IndividualParams{
			ID:        "1",
			Name:      "Ana",
			Document:  "123",
			Email:     StringPtr("ana@example.com"),
			BirthDate: StringPtr("1990-01-01"),
		})

		got := ChangeType(ind, TypeCompany)

		comp, ok := got.(*Company)
		require.True(t, ok)
		assert.Equal(t, "1", comp.ID)
		assert.Equal(t, "Ana", comp.Name)
		assert.Equal(t, "ana@example.com", *comp.Email)
		assert.Nil(t, comp.FoundationDate)
	})

	t.Run("company to individual drops company fields", func(t *testing.T) {
		comp := NewCompany(CompanyParams{ID: "2", Name: "X", Document: "2", TradeName: StringPtr("T")})

		got := ChangeType(comp, TypeIndividual)

		ind, ok := got.(*Individual)
		require.True(t, ok)
		assert.Equal(t, "2", ind.ID)
		assert.Nil(t, ind.BirthDate)
		assert.Equal(t, KeyIndividual, TypeKey(got))
	})

	t.Run("same type is a no-op", func(t *testing.T) {
		ind := NewIndividual(IndividualParams{ID: "1", Name: "A", Document: "1"})
		assert.Same(t, ind, ChangeType(ind, TypeIndividual))
	})

	t.Run("unknown type panics", func(t *testing.T) {
		ind := NewIndividual(IndividualParams{ID: "1", Name: "A", Document: "1"})
		assert.Panics(t, func() { ChangeType(ind, Type("OTHER")) })
	})
}

func TestClone(t *testing.T) {
	orig := NewCompany(CompanyParams{
		ID:             "2",
		Name:           "X",
		Document:       "2",
		Email:          StringPtr("x@example.com"),
		Phones:         []Phone{{AreaCode: "11", Number: "5555"}},
		SecondaryCnaes: []string{"1"},
		Partners:       []Partner{{Name: "P", EntryDate: StringPtr("2020-01-01")}},
		SimplesOption:  BoolPtr(true),
	})

	cp, ok := Clone(orig).(*Company)
	require.True(t, ok)
	assert.Equal(t, orig, cp)

	*cp.Email = "changed@example.com"
	cp.Phones[0].Number = "0000"
	cp.SecondaryCnaes[0] = "9"
	*cp.Partners[0].EntryDate = "1999-01-01"
	*cp.SimplesOption = false

	assert.Equal(t, "x@example.com", *orig.Email)
	assert.Equal(t, "5555", orig.Phones[0].Number)
	assert.Equal(t, "1", orig.SecondaryCnaes[0])
	assert.Equal(t, "2020-01-01", *orig.Partners[0].EntryDate)
	assert.True(t, *orig.SimplesOption)
}

func TestClonePreservesEmptyVersusAbsent(t *testing.T) {
	empty := NewCompany(CompanyParams{ID: "2", Name: "X", Document: "2", SecondaryCnaes: []string{}})
	absent := NewCompany(CompanyParams{ID: "3", Name: "Y", Document: "3"})

	assert.NotNil(t, Clone(empty).(*Company).SecondaryCnaes)
	assert.Nil(t, Clone(absent).(*Company).SecondaryCnaes)
}
