// Package person implements the registry use cases on top of a person.Repository.
package person

import (
	"context"
	"strings"
	"time"

	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CompanyLookup resolves a normalized CNPJ to registry data
type CompanyLookup interface {
	LookupCompany(ctx context.Context, cnpj string) (*person.Company, error)
}

// LookupResult is the outcome of the search-web flow.
// Existing is true when the document was already registered and Person is the stored record.
type LookupResult struct {
	Person   person.Person
	Existing bool
}

// Option configures a PersonService
type Option func(*PersonService)

// WithClock overrides the time source used for update stamps
func WithClock(now func() time.Time) Option {
	return func(s *PersonService) {
		s.now = now
	}
}

// WithIDGenerator overrides the id source for new drafts
func WithIDGenerator(gen func() string) Option {
	return func(s *PersonService) {
		s.newID = gen
	}
}

// PersonService handles person registry operations
type PersonService struct {
	repo   person.Repository
	lookup CompanyLookup
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewPersonService creates a new PersonService. lookup may be nil when the
// registry is not configured.
func NewPersonService(repo person.Repository, lookup CompanyLookup, logger *zap.Logger, opts ...Option) *PersonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PersonService{
		repo:   repo,
		lookup: lookup,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every stored person matching the criteria
func (s *PersonService) List(ctx context.Context, criteria person.Criteria) ([]person.Person, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list persons", zap.Error(err))
		return nil, err
	}
	if criteria.IsZero() {
		return all, nil
	}
	return criteria.Apply(all), nil
}

// Get returns a person by id
func (s *PersonService) Get(ctx context.Context, id string) (person.Person, error) {
	p, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find person", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !found {
		return nil, person.ErrNotFound
	}
	return p, nil
}

// NewDraft returns an unsaved record of the given type with a fresh id
func (s *PersonService) NewDraft(t person.Type) person.Person {
	id := s.newID()
	if t == person.TypeCompany {
		return person.NewCompany(person.CompanyParams{ID: id})
	}
	return person.NewIndividual(person.IndividualParams{ID: id})
}

// Save creates p when isNew is set and updates it otherwise. A blank name is
// rejected before the repository is touched. Duplicate documents are returned
// unchanged so the caller can keep the draft open.
func (s *PersonService) Save(ctx context.Context, p person.Person, isNew bool) error {
	base := p.Common()
	base.Name = strings.TrimSpace(base.Name)
	base.Document = strings.TrimSpace(base.Document)
	if base.Name == "" {
		return person.NewValidationError("name", "is required")
	}
	if base.ID == "" {
		if !isNew {
			return person.NewValidationError("id", "is required")
		}
		base.ID = s.newID()
	}

	var err error
	if isNew {
		err = s.repo.Create(ctx, p)
	} else {
		base.Touch(s.now())
		err = s.repo.Update(ctx, p)
	}
	if err != nil {
		if !person.IsDuplicateDocument(err) && !person.IsNotFound(err) {
			s.logger.Error("Failed to save person", zap.String("id", base.ID), zap.Bool("new", isNew), zap.Error(err))
		}
		return err
	}

	s.logger.Info("Person saved",
		zap.String("id", base.ID),
		zap.String("type", person.TypeKey(p)),
		zap.Bool("new", isNew),
	)
	return nil
}

// ToggleActive flips the status flag of a stored person
func (s *PersonService) ToggleActive(ctx context.Context, id string) (person.Person, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Common().ToggleActive()
	p.Common().Touch(s.now())
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Person status changed", zap.String("id", id), zap.String("status", person.StatusKey(p)))
	return p, nil
}

// Delete removes a person. Unknown ids are not an error.
func (s *PersonService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// FindByDocument looks a document up among all stored persons, or asks the
// store directly when it implements person.DocumentFinder
func (s *PersonService) FindByDocument(ctx context.Context, document string) (person.Person, bool, error) {
	if finder, ok := s.repo.(person.DocumentFinder); ok {
		return finder.FindByDocument(ctx, document)
	}
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, false, err
	}
	p, ok := person.FindByDocument(all, document)
	return p, ok, nil
}

// LookupCompany runs the search-web flow for rawCNPJ. A stored record with the
// same document is returned as is; otherwise the registry is queried and the
// result merged into current, which may be nil.
func (s *PersonService) LookupCompany(ctx context.Context, rawCNPJ string, current person.Person) (result LookupResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "person.lookup_company")
	defer func() { telemetry.EndSpan(span, err) }()

	cnpj, err := person.NormalizeCNPJ(rawCNPJ)
	if err != nil {
		return LookupResult{}, err
	}
	span.SetAttributes(attribute.String("person.document", cnpj))

	existing, found, err := s.FindByDocument(ctx, cnpj)
	if err != nil {
		return LookupResult{}, err
	}
	if found {
		s.logger.Info("Document already registered", zap.String("cnpj", cnpj), zap.String("id", existing.Common().ID))
		span.SetAttributes(attribute.Bool("person.existing", true))
		return LookupResult{Person: existing, Existing: true}, nil
	}

	if s.lookup == nil {
		return LookupResult{}, person.NewTransportError("query company registry", errRegistryDisabled)
	}
	fetched, err := s.lookup.LookupCompany(ctx, cnpj)
	if err != nil {
		s.logger.Warn("Company registry lookup failed", zap.String("cnpj", cnpj), zap.Error(err))
		return LookupResult{}, err
	}
	return LookupResult{Person: person.MergeCompany(current, fetched)}, nil
}
