package person

import (
	"strings"

	"golang.org/x/text/cases"
)

// Set is a facet selection. An empty set applies no filter.
type Set map[string]struct{}

// NewSet builds a Set from values, ignoring blanks
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

// Has reports whether v is selected
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Values returns the selected values in no particular order
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// FilterPersons returns the persons of all that match the query and every
// non-empty facet, in their original order. A facet matches when the person's
// key is any of the selected values.
//
// Persons carry no role yet, so roles never rejects a record.
func FilterPersons(all []Person, query string, roles, statuses, types Set) []Person {
	// Caser keeps state between calls and is not safe to share.
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(query))

	out := make([]Person, 0, len(all))
	for _, p := range all {
		if needle != "" {
			base := p.Common()
			haystack := folder.String(base.Name + " " + base.Document)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if len(types) > 0 && !types.Has(TypeKey(p)) {
			continue
		}
		if len(statuses) > 0 && !statuses.Has(StatusKey(p)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Criteria bundles a list query
type Criteria struct {
	Query    string
	Roles    Set
	Statuses Set
	Types    Set
}

// IsZero reports whether the criteria filter nothing
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Query) == "" && len(c.Roles) == 0 && len(c.Statuses) == 0 && len(c.Types) == 0
}

// Apply runs FilterPersons with the criteria
func (c Criteria) Apply(all []Person) []Person {
	return FilterPersons(all, c.Query, c.Roles, c.Statuses, c.Types)
}

// FindByDocument returns the first person whose document equals document.
// Blank input never matches.
func FindByDocument(all []Person, document string) (Person, bool) {
	document = strings.TrimSpace(document)
	if document == "" {
		return nil, false
	}
	for _, p := range all {
		if p.Common().Document == document {
			return p, true
		}
	}
	return nil, false
}
