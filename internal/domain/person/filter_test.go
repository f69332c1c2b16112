package person

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []Person {
	joao := NewIndividual(IndividualParams{ID: "1", Name: "João", Document: "111"})
	empresa := NewCompany(CompanyParams{ID: "2", Name: "Empresa X", Document: "222"})
	empresa.SetActive(false)
	return []Person{joao, empresa}
}

func ids(persons []Person) []string {
	out := make([]string, 0, len(persons))
	for _, p := range persons {
		out = append(out, p.Common().ID)
	}
	return out
}

func TestFilterPersons(t *testing.T) {
	all := filterFixture()

	tests := []struct {
		name     string
		query    string
		roles    Set
		statuses Set
		types    Set
		want     []string
	}{
		{name: "query is case-insensitive", query: "joão", want: []string{"1"}},
		{name: "query upper case", query: "  JOÃO ", want: []string{"1"}},
		{name: "query matches document", query: "22", want: []string{"2"}},
		{name: "type facet", types: NewSet(KeyCompany), want: []string{"2"}},
		{name: "status facet with empty type facet", statuses: NewSet(StatusActive), types: NewSet(), want: []string{"1"}},
		{name: "or within a facet", types: NewSet(KeyCompany, KeyIndividual), want: []string{"1", "2"}},
		{name: "and across facets", types: NewSet(KeyCompany), statuses: NewSet(StatusActive), want: []string{}},
		{name: "role facet never rejects", roles: NewSet("supplier"), want: []string{"1", "2"}},
		{name: "no filters keeps order", want: []string{"1", "2"}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPersons(all, tt.query, tt.roles, tt.statuses, tt.types)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestCriteria(t *testing.T) {
	all := filterFixture()

	assert.True(t, Criteria{}.IsZero())
	assert.False(t, Criteria{Types: NewSet("pf")}.IsZero())
	assert.Equal(t, []string{"2"}, ids(Criteria{Query: "empresa"}.Apply(all)))
}

func TestNewSet(t *testing.T) {
	s := NewSet("pf", " ", "pj", "pf")
	assert.Len(t, s, 2)
	assert.True(t, s.Has("pf"))
	assert.False(t, s.Has(""))
	assert.ElementsMatch(t, []string{"pf", "pj"}, s.Values())
}

func TestFindByDocument(t *testing.T) {
	all := filterFixture()

	p, ok := FindByDocument(all, " 222 ")
	assert.True(t, ok)
	assert.Equal(t, "2", p.Common().ID)

	_, ok = FindByDocument(all, "333")
	assert.False(t, ok)

	_, ok = FindByDocument(append(all, NewIndividual(IndividualParams{ID: "3"})), "")
	assert.False(t, ok)
}

func TestDocumentConflict(t *testing.T) {
	all := filterFixture()

	assert.True(t, DocumentConflict(all, NewIndividual(IndividualParams{ID: "9", Document: "111"})))
	assert.False(t, DocumentConflict(all, NewIndividual(IndividualParams{ID: "1", Document: "111"})))
	assert.False(t, DocumentConflict(all, NewIndividual(IndividualParams{ID: "9"})))
}
