package telemetry

import (
	"context"
	"time"

	"github.com/finapp2p/backend/internal/domain/person"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Outcome labels recorded for repository calls
const (
	OutcomeOK         = "ok"
	OutcomeNotFound   = "not_found"
	OutcomeDuplicate  = "duplicate"
	OutcomeValidation = "validation"
	OutcomeTransport  = "transport"
	OutcomeError      = "error"
)

// Outcome classifies err for metric labels
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case person.IsNotFound(err):
		return OutcomeNotFound
	case person.IsDuplicateDocument(err):
		return OutcomeDuplicate
	case person.IsValidation(err):
		return OutcomeValidation
	case person.IsTransport(err):
		return OutcomeTransport
	default:
		return OutcomeError
	}
}

// RepositoryMetrics counts and times person repository calls
type RepositoryMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRepositoryMetrics registers the repository instruments on meter
func NewRepositoryMetrics(meter metric.Meter) (*RepositoryMetrics, error) {
	calls, err := meter.Int64Counter(
		"person_repository_calls_total",
		metric.WithDescription("Person repository calls by operation and outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"person_repository_duration_seconds",
		metric.WithDescription("Person repository call latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5),
	)
	if err != nil {
		return nil, err
	}
	return &RepositoryMetrics{calls: calls, duration: duration}, nil
}

func (m *RepositoryMetrics) record(ctx context.Context, op string, start time.Time, err error) {
	attrs := metric.WithAttributes(AttrOperation.String(op), AttrOutcome.String(Outcome(err)))
	m.calls.Add(ctx, 1, attrs)
	m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}

// InstrumentedRepository wraps a person.Repository with a span and metrics
// per call. Behaviour and errors of the wrapped repository are unchanged.
type InstrumentedRepository struct {
	next    person.Repository
	tracer  trace.Tracer
	metrics *RepositoryMetrics
	store   string
}

// RepositoryOption configures an InstrumentedRepository
type RepositoryOption func(*InstrumentedRepository)

// WithTracer overrides the global tracer
func WithTracer(tracer trace.Tracer) RepositoryOption {
	return func(r *InstrumentedRepository) {
		r.tracer = tracer
	}
}

// WithRepositoryMetrics enables call metrics
func WithRepositoryMetrics(m *RepositoryMetrics) RepositoryOption {
	return func(r *InstrumentedRepository) {
		r.metrics = m
	}
}

// InstrumentRepository wraps next. store names the backend in span attributes.
func InstrumentRepository(next person.Repository, store string, opts ...RepositoryOption) *InstrumentedRepository {
	r := &InstrumentedRepository{
		next:   next,
		tracer: otel.GetTracerProvider().Tracer(TracerName),
		store:  store,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *InstrumentedRepository) observe(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	attrs = append(attrs, AttrOperation.String(op), attribute.String("person.store", r.store))
	ctx, span := startSpan(ctx, r.tracer, "person.repository."+op, attrs...)
	return ctx, func(err error) {
		// absence and duplicates are answers, not span failures
		if err != nil && (person.IsNotFound(err) || person.IsDuplicateDocument(err)) {
			span.SetAttributes(AttrOutcome.String(Outcome(err)))
			EndSpan(span, nil)
		} else {
			EndSpan(span, err)
		}
		if r.metrics != nil {
			r.metrics.record(ctx, op, start, err)
		}
	}
}

// Create implements person.Repository
func (r *InstrumentedRepository) Create(ctx context.Context, p person.Person) (err error) {
	ctx, done := r.observe(ctx, "create", personAttrs(p)...)
	defer func() { done(err) }()
	return r.next.Create(ctx, p)
}

// Update implements person.Repository
func (r *InstrumentedRepository) Update(ctx context.Context, p person.Person) (err error) {
	ctx, done := r.observe(ctx, "update", personAttrs(p)...)
	defer func() { done(err) }()
	return r.next.Update(ctx, p)
}

// Delete implements person.Repository
func (r *InstrumentedRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, done := r.observe(ctx, "delete", AttrPersonID.String(id))
	defer func() { done(err) }()
	return r.next.Delete(ctx, id)
}

// FindByID implements person.Repository
func (r *InstrumentedRepository) FindByID(ctx context.Context, id string) (p person.Person, found bool, err error) {
	ctx, done := r.observe(ctx, "find_by_id", AttrPersonID.String(id))
	defer func() { done(err) }()
	return r.next.FindByID(ctx, id)
}

// FindAll implements person.Repository
func (r *InstrumentedRepository) FindAll(ctx context.Context) (all []person.Person, err error) {
	ctx, done := r.observe(ctx, "find_all")
	defer func() { done(err) }()
	return r.next.FindAll(ctx)
}

func personAttrs(p person.Person) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrPersonID.String(p.Common().ID),
		AttrPersonType.String(person.TypeKey(p)),
	}
}

var _ person.Repository = (*InstrumentedRepository)(nil)
