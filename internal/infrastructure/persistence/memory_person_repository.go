package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/finapp2p/backend/internal/domain/person"
)

// MemoryPersonRepository implements person.Repository in process memory.
// Records are stored as deep copies and listed in insertion order.
type MemoryPersonRepository struct {
	mu    sync.RWMutex
	byID  map[string]person.Person
	order []string
	now   func() time.Time
}

// NewMemoryPersonRepository creates an empty MemoryPersonRepository
func NewMemoryPersonRepository() *MemoryPersonRepository {
	return &MemoryPersonRepository{
		byID: make(map[string]person.Person),
		now:  time.Now,
	}
}

// Create stores a copy of p
func (r *MemoryPersonRepository) Create(ctx context.Context, p person.Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.Common().ID
	if _, exists := r.byID[id]; exists {
		return person.NewValidationError("id", "already exists")
	}
	if person.DocumentConflict(r.listLocked(), p) {
		return person.ErrDuplicateDocument
	}

	r.byID[id] = person.Clone(p)
	r.order = append(r.order, id)
	return nil
}

// Update replaces the stored copy of p and refreshes UpdatedAt
func (r *MemoryPersonRepository) Update(ctx context.Context, p person.Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	base := p.Common()
	stored, exists := r.byID[base.ID]
	if !exists {
		return person.ErrNotFound
	}
	if person.DocumentConflict(r.listLocked(), p) {
		return person.ErrDuplicateDocument
	}

	base.CreatedAt = stored.Common().CreatedAt
	base.Touch(r.now())
	r.byID[base.ID] = person.Clone(p)
	return nil
}

// Delete removes a person by id. Deleting a missing id is a no-op.
func (r *MemoryPersonRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return nil
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindByID returns a copy of the stored person
func (r *MemoryPersonRepository) FindByID(ctx context.Context, id string) (person.Person, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.byID[id]
	if !exists {
		return nil, false, nil
	}
	return person.Clone(p), true, nil
}

// FindAll returns copies of every stored person in insertion order
func (r *MemoryPersonRepository) FindAll(ctx context.Context) ([]person.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	persons := make([]person.Person, 0, len(r.order))
	for _, p := range r.listLocked() {
		persons = append(persons, person.Clone(p))
	}
	return persons, nil
}

// listLocked returns the stored values without copying; callers hold r.mu
func (r *MemoryPersonRepository) listLocked() []person.Person {
	persons := make([]person.Person, 0, len(r.order))
	for _, id := range r.order {
		persons = append(persons, r.byID[id])
	}
	return persons
}

// Ensure MemoryPersonRepository implements person.Repository
var _ person.Repository = (*MemoryPersonRepository)(nil)
