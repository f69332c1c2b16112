package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/infrastructure/storage"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// DefaultSnapshotKey is the blob key holding the whole collection
const DefaultSnapshotKey = "finapp_persons"

// snapshotEntry keeps the variant tag next to the full record so nothing is
// lost between sessions
type snapshotEntry struct {
	PersonType string             `json:"personType"`
	Individual *person.Individual `json:"individual,omitempty"`
	Company    *person.Company    `json:"company,omitempty"`
}

func (e snapshotEntry) toPerson() (person.Person, bool) {
	switch {
	case e.PersonType == person.KeyCompany && e.Company != nil:
		return e.Company, true
	case e.PersonType == person.KeyIndividual && e.Individual != nil:
		return e.Individual, true
	default:
		return nil, false
	}
}

func newSnapshotEntry(p person.Person) snapshotEntry {
	p = person.Clone(p)
	entry := snapshotEntry{PersonType: person.TypeKey(p)}
	switch v := p.(type) {
	case *person.Company:
		entry.Company = v
	case *person.Individual:
		entry.Individual = v
	}
	return entry
}

// SnapshotPersonRepository implements person.Repository by keeping the whole
// collection as one JSON document in a BlobStore. Every write is a
// read-modify-write of that document under a process-local lock.
type SnapshotPersonRepository struct {
	store  storage.BlobStore
	key    string
	logger *zap.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// SnapshotOption configures a SnapshotPersonRepository
type SnapshotOption func(*SnapshotPersonRepository)

// WithSnapshotKey overrides the blob key
func WithSnapshotKey(key string) SnapshotOption {
	return func(r *SnapshotPersonRepository) {
		r.key = key
	}
}

// WithSnapshotLogger sets the logger used to report unreadable documents
func WithSnapshotLogger(logger *zap.Logger) SnapshotOption {
	return func(r *SnapshotPersonRepository) {
		r.logger = logger
	}
}

// NewSnapshotPersonRepository creates a repository over store
func NewSnapshotPersonRepository(store storage.BlobStore, opts ...SnapshotOption) *SnapshotPersonRepository {
	r := &SnapshotPersonRepository{
		store:  store,
		key:    DefaultSnapshotKey,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create appends p to the collection
func (r *SnapshotPersonRepository) Create(ctx context.Context, p person.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	id := p.Common().ID
	for _, existing := range all {
		if existing.Common().ID == id {
			return person.NewValidationError("id", "already exists")
		}
	}
	if person.DocumentConflict(all, p) {
		return person.ErrDuplicateDocument
	}
	return r.save(ctx, append(all, p))
}

// Update replaces the stored record with the same id and refreshes UpdatedAt
func (r *SnapshotPersonRepository) Update(ctx context.Context, p person.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	base := p.Common()
	idx := -1
	for i, existing := range all {
		if existing.Common().ID == base.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return person.ErrNotFound
	}
	if person.DocumentConflict(all, p) {
		return person.ErrDuplicateDocument
	}

	base.CreatedAt = all[idx].Common().CreatedAt
	base.Touch(r.now())
	all[idx] = p
	return r.save(ctx, all)
}

// Delete removes a record by id. Deleting a missing id is a no-op.
func (r *SnapshotPersonRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, p := range all {
		if p.Common().ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(all) {
		return nil
	}
	return r.save(ctx, kept)
}

// FindByID returns the record with the given id
func (r *SnapshotPersonRepository) FindByID(ctx context.Context, id string) (person.Person, bool, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, p := range all {
		if p.Common().ID == id {
			return p, true, nil
		}
	}
	return nil, false, nil
}

// FindAll returns the collection in stored order
func (r *SnapshotPersonRepository) FindAll(ctx context.Context) ([]person.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// load reads the document. A missing or unreadable document is an empty collection.
func (r *SnapshotPersonRepository) load(ctx context.Context) ([]person.Person, error) {
	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return []person.Person{}, nil
	}
	if err != nil {
		return nil, person.NewTransportError("read snapshot", err)
	}

	var entries []snapshotEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		r.logger.Warn("Discarding unreadable person snapshot", zap.String("key", r.key), zap.Error(err))
		return []person.Person{}, nil
	}

	persons := make([]person.Person, 0, len(entries))
	for i, entry := range entries {
		p, ok := entry.toPerson()
		if !ok {
			r.logger.Warn("Skipping malformed snapshot entry", zap.String("key", r.key), zap.Int("index", i))
			continue
		}
		persons = append(persons, p)
	}
	return persons, nil
}

func (r *SnapshotPersonRepository) save(ctx context.Context, persons []person.Person) error {
	entries := make([]snapshotEntry, 0, len(persons))
	for _, p := range persons {
		entries = append(entries, newSnapshotEntry(p))
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		return person.NewTransportError("write snapshot", err)
	}
	return nil
}

// Ensure SnapshotPersonRepository implements person.Repository
var _ person.Repository = (*SnapshotPersonRepository)(nil)
