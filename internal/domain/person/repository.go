package person

import "context"

// Repository is the storage contract shared by every backing store.
//
// Create fails with ErrDuplicateDocument when a non-empty document is already
// held by another record, active or not. Update fails with ErrNotFound for an
// unknown id and refreshes UpdatedAt. Delete of an unknown id is not an error.
// FindByID reports a missing record as (nil, false, nil).
type Repository interface {
	Create(ctx context.Context, p Person) error
	Update(ctx context.Context, p Person) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (Person, bool, error)
	FindAll(ctx context.Context) ([]Person, error)
}

// DocumentFinder is implemented by stores that can look a document up without
// listing every record. It follows FindByDocument: blank input never matches.
type DocumentFinder interface {
	FindByDocument(ctx context.Context, document string) (Person, bool, error)
}

// DocumentConflict reports whether candidate would collide with a record in
// existing. Records with the same id and blank documents never conflict.
func DocumentConflict(existing []Person, candidate Person) bool {
	doc := candidate.Common().Document
	if doc == "" {
		return false
	}
	id := candidate.Common().ID
	for _, p := range existing {
		if p.Common().ID != id && p.Common().Document == doc {
			return true
		}
	}
	return false
}
