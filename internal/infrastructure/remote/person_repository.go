// Package remote implements person.Repository against a running FINAPP2P
// server over its REST API.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/infrastructure/config"
	"github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	personsPath     = "/api/persons"
	maxResponseSize = 10 * 1024 * 1024
)

// PersonRepository talks to the /api/persons endpoints. Every call is a
// single attempt; there are no retries.
type PersonRepository struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a PersonRepository
type Option func(*PersonRepository)

// WithHTTPClient replaces the default traced HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(r *PersonRepository) {
		r.httpClient = hc
	}
}

// WithLogger sets the repository logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *PersonRepository) {
		r.logger = logger
	}
}

// NewPersonRepository creates a repository for the server at cfg.BaseURL
func NewPersonRepository(cfg config.RemoteConfig, opts ...Option) *PersonRepository {
	r := &PersonRepository{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create posts the wire row of p. The server's timestamps, and the id it
// generated when p had none, are copied back into p.
func (r *PersonRepository) Create(ctx context.Context, p person.Person) error {
	resp, err := r.do(ctx, http.MethodPost, personsPath, person.RowFromPerson(p))
	if err != nil {
		return err
	}
	switch resp.status {
	case http.StatusCreated, http.StatusOK:
		return applyTimestamps(p, resp.body)
	case http.StatusConflict:
		return person.ErrDuplicateDocument
	default:
		return resp.failure("create person")
	}
}

// Update puts the wire row of p to its id
func (r *PersonRepository) Update(ctx context.Context, p person.Person) error {
	id := p.Common().ID
	resp, err := r.do(ctx, http.MethodPut, personPath(id), person.RowFromPerson(p))
	if err != nil {
		return err
	}
	switch resp.status {
	case http.StatusOK:
		return applyTimestamps(p, resp.body)
	case http.StatusNotFound:
		return person.ErrNotFound
	case http.StatusConflict:
		return person.ErrDuplicateDocument
	default:
		return resp.failure("update person")
	}
}

// Delete removes id. A 404 counts as success.
func (r *PersonRepository) Delete(ctx context.Context, id string) error {
	resp, err := r.do(ctx, http.MethodDelete, personPath(id), nil)
	if err != nil {
		return err
	}
	switch resp.status {
	case http.StatusNoContent, http.StatusOK, http.StatusNotFound:
		return nil
	default:
		return resp.failure("delete person")
	}
}

// FindByID returns (nil, false, nil) when the server answers 404
func (r *PersonRepository) FindByID(ctx context.Context, id string) (person.Person, bool, error) {
	resp, err := r.do(ctx, http.MethodGet, personPath(id), nil)
	if err != nil {
		return nil, false, err
	}
	switch resp.status {
	case http.StatusOK:
		row, err := person.DecodeRow(resp.body)
		if err != nil {
			return nil, false, err
		}
		return row.ToPerson(), true, nil
	case http.StatusNotFound:
		return nil, false, nil
	default:
		return nil, false, resp.failure("fetch person")
	}
}

// FindAll lists every person in the server's order
func (r *PersonRepository) FindAll(ctx context.Context) ([]person.Person, error) {
	return r.list(ctx, personsPath)
}

// FindByDocument asks the server for the first person holding document
func (r *PersonRepository) FindByDocument(ctx context.Context, document string) (person.Person, bool, error) {
	trimmed := strings.TrimSpace(document)
	if trimmed == "" {
		return nil, false, nil
	}
	persons, err := r.list(ctx, personsPath+"?document="+url.QueryEscape(trimmed))
	if err != nil {
		return nil, false, err
	}
	if len(persons) == 0 {
		return nil, false, nil
	}
	return persons[0], true, nil
}

func (r *PersonRepository) list(ctx context.Context, path string) ([]person.Person, error) {
	resp, err := r.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, resp.failure("list persons")
	}
	rows, err := person.DecodeRows(resp.body)
	if err != nil {
		return nil, err
	}
	return person.RowsToPersons(rows), nil
}

type response struct {
	status int
	body   []byte
}

// failure builds the transport error for an unexpected status, carrying the
// server's error message when the body is an error envelope
func (resp *response) failure(op string) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	cause := fmt.Errorf("HTTP %d", resp.status)
	if err := json.Unmarshal(resp.body, &envelope); err == nil && envelope.Error.Message != "" {
		cause = fmt.Errorf("HTTP %d: %s", resp.status, envelope.Error.Message)
	}
	return person.NewTransportError(op, cause)
}

func (r *PersonRepository) do(ctx context.Context, method, path string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("remote: failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("remote: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warn("Remote request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, person.NewTransportError(strings.ToLower(method)+" "+path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, person.NewTransportError("read response", err)
	}

	r.logger.Debug("Remote request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
	)
	return &response{status: res.StatusCode, body: data}, nil
}

func personPath(id string) string {
	return personsPath + "/" + url.PathEscape(id)
}

// applyTimestamps copies the server-side createdAt and updatedAt into p
func applyTimestamps(p person.Person, body []byte) error {
	row, err := person.DecodeRow(body)
	if err != nil {
		return err
	}
	base := p.Common()
	if base.ID == "" {
		base.ID = row.ID
	}
	if row.CreatedAt != nil {
		base.CreatedAt = *row.CreatedAt
	}
	if row.UpdatedAt != nil {
		updated := *row.UpdatedAt
		base.UpdatedAt = &updated
	}
	return nil
}

var (
	_ person.Repository     = (*PersonRepository)(nil)
	_ person.DocumentFinder = (*PersonRepository)(nil)
)
