package person

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/finapp2p/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowToPerson(t *testing.T) {
	t.Run("pj yields a company", func(t *testing.T) {
		row := Row{
			ID:                     "2",
			PersonType:             "pj",
			Name:                   "EMPRESA",
			Document:               StringPtr("00000000000000"),
			RegistrationStatus:     StringPtr("ATIVA"),
			RegistrationStatusDate: StringPtr("2005-11-03"),
			OpeningDate:            StringPtr("1990-05-01"),
			TradeName:              StringPtr("EXEMPLO"),
			CapitalSocial:          StringPtr("1000,00"),
		}

		comp, ok := row.ToPerson().(*Company)
		require.True(t, ok)
		assert.Equal(t, "ATIVA", *comp.RegistrationStatus)
		assert.Equal(t, "ATIVA", *comp.CadastralStatus)
		assert.Equal(t, "2005-11-03", *comp.CadastralStatusDate)
		assert.Equal(t, "1990-05-01", *comp.FoundationDate)
		assert.Equal(t, "EXEMPLO", *comp.TradeName)
		assert.Equal(t, "1000,00", *comp.CapitalSocial)
		assert.True(t, comp.IsActive)
	})

	t.Run("foundation date wins over opening date", func(t *testing.T) {
		row := Row{PersonType: "pj", FoundationDate: StringPtr("2001-01-01"), OpeningDate: StringPtr("1990-01-01")}
		comp := row.ToPerson().(*Company)
		assert.Equal(t, "2001-01-01", *comp.FoundationDate)
	})

	t.Run("anything else yields an individual", func(t *testing.T) {
		for _, key := range []string{"pf", ""} {
			ind, ok := Row{ID: "1", PersonType: key, BirthDate: StringPtr("1990-01-01")}.ToPerson().(*Individual)
			require.True(t, ok, key)
			assert.Equal(t, "1990-01-01", *ind.BirthDate)
		}
	})

	t.Run("null stays absent and missing required fields become empty", func(t *testing.T) {
		p := Row{PersonType: "pf"}.ToPerson()
		base := p.Common()

		assert.Equal(t, "", base.ID)
		assert.Equal(t, "", base.Name)
		assert.Equal(t, "", base.Document)
		assert.Nil(t, base.Email)
		assert.Nil(t, p.(*Individual).BirthDate)
	})

	t.Run("explicit inactive and timestamps are kept", func(t *testing.T) {
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		updated := created.Add(time.Hour)
		p := Row{IsActive: BoolPtr(false), CreatedAt: &created, UpdatedAt: &updated}.ToPerson()

		assert.False(t, p.Common().IsActive)
		assert.Equal(t, created, p.Common().CreatedAt)
		assert.Equal(t, updated, *p.Common().UpdatedAt)
	})
}

func TestRowFromPerson(t *testing.T) {
	t.Run("company payload", func(t *testing.T) {
		comp := NewCompany(CompanyParams{
			ID:                 "2",
			Name:               "EMPRESA",
			Document:           "2",
			TradeName:          StringPtr("ignored on the wire"),
			RegistrationStatus: StringPtr("ATIVA"),
		})

		data, err := json.Marshal(RowFromPerson(comp))
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"id":"2","personType":"pj","name":"EMPRESA","document":"2","email":null,"isActive":true,
			"foundationDate":null,"registrationStatus":"ATIVA","registrationStatusDate":null
		}`, string(data))
	})

	t.Run("individual payload", func(t *testing.T) {
		ind := NewIndividual(IndividualParams{ID: "1", Name: "Ana", Document: "1", Email: StringPtr("a@b.c")})

		data, err := json.Marshal(RowFromPerson(ind))
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"id":"1","personType":"pf","name":"Ana","document":"1","email":"a@b.c","isActive":true,"birthDate":null
		}`, string(data))
	})

	t.Run("server rows carry timestamps", func(t *testing.T) {
		ind := NewIndividual(IndividualParams{ID: "1", Name: "Ana", Document: "1"})
		ind.Touch(ind.CreatedAt.Add(time.Minute))

		row := RowWithTimestamps(ind)
		require.NotNil(t, row.CreatedAt)
		require.NotNil(t, row.UpdatedAt)
		assert.Equal(t, ind.CreatedAt, *row.CreatedAt)
	})
}

func TestRowRoundTrip(t *testing.T) {
	persons := []Person{
		NewIndividual(IndividualParams{ID: "1", Name: "João", Document: "111", BirthDate: StringPtr("1980-02-03")}),
		NewIndividual(IndividualParams{ID: "3", Name: "Sem documento", Email: StringPtr("x@y.z")}),
		NewCompany(CompanyParams{
			ID:                     "2",
			Name:                   "Empresa X",
			Document:               "222",
			FoundationDate:         StringPtr("2000-01-01"),
			RegistrationStatus:     StringPtr("BAIXADA"),
			RegistrationStatusDate: StringPtr("2020-06-30"),
		}),
	}
	persons[1].Common().SetActive(false)

	for _, p := range persons {
		first := RowFromPerson(p)
		data, err := json.Marshal(first)
		require.NoError(t, err)

		decoded, err := DecodeRow(data)
		require.NoError(t, err)

		second := RowFromPerson(decoded.ToPerson())
		assert.Equal(t, first, second, p.Common().ID)
	}
}

func TestDecodeRow(t *testing.T) {
	t.Run("ignores unknown keys", func(t *testing.T) {
		row, err := DecodeRow([]byte(`{"id":"1","personType":"pf","name":"A","extra":{"nested":true}}`))
		require.NoError(t, err)
		assert.Equal(t, "1", row.ID)
		assert.Nil(t, row.Document)
	})

	t.Run("wrong JSON type is a decode error", func(t *testing.T) {
		_, err := DecodeRow([]byte(`{"id":"1","isActive":"yes"}`))

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "isActive", de.Field)
		assert.ErrorIs(t, err, shared.ErrDecode)
	})

	t.Run("unknown person type is a decode error", func(t *testing.T) {
		_, err := DecodeRow([]byte(`{"id":"1","personType":"xx"}`))

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "personType", de.Field)
	})

	t.Run("malformed and empty payloads", func(t *testing.T) {
		_, err := DecodeRow([]byte(`{"id":`))
		assert.ErrorIs(t, err, shared.ErrDecode)

		_, err = DecodeRow([]byte("  "))
		assert.ErrorIs(t, err, shared.ErrDecode)
	})
}

func TestDecodeRows(t *testing.T) {
	rows, err := DecodeRows([]byte(`[{"id":"1","personType":"pf"},{"id":"2","personType":"pj"}]`))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	persons := RowsToPersons(rows)
	assert.Equal(t, TypeIndividual, persons[0].Type())
	assert.Equal(t, TypeCompany, persons[1].Type())

	_, err = DecodeRows([]byte(`[{"id":"1"},{"id":"2","personType":"zz"}]`))
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "[1].personType", de.Field)
}
