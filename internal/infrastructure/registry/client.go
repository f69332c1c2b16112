package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/domain/shared"
	"github.com/finapp2p/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is the public OpenCNPJ endpoint
const DefaultBaseURL = "https://api.opencnpj.org"

// maxResponseSize limits the registry response body
const maxResponseSize = 2 * 1024 * 1024

// ErrCompanyNotFound is returned when the registry has no company for a CNPJ
var ErrCompanyNotFound = shared.NewDomainError(shared.CodeNotFound, "CNPJ not found in the company registry")

// Fetcher returns the raw registry record for a CNPJ
type Fetcher interface {
	FetchCompany(ctx context.Context, raw string) (*CompanyRecord, error)
}

// Normalize strips every non-digit from raw and requires exactly 14 digits
func Normalize(raw string) (string, error) {
	return person.NormalizeCNPJ(raw)
}

// Client queries the registry over HTTP. Concurrent lookups of the same CNPJ
// share one request.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
	group      singleflight.Group
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the default traced HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a registry client from configuration
func NewClient(cfg config.RegistryConfig, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: zap.NewNop(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCompany returns the registry record for raw, which is normalized first.
// An unknown CNPJ yields ErrCompanyNotFound; network failures and unexpected
// statuses yield a transport error; an unreadable body yields a decode error.
func (c *Client) FetchCompany(ctx context.Context, raw string) (*CompanyRecord, error) {
	cnpj, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	// the shared request must not die with the first caller's context
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(cnpj, func() (any, error) {
		return c.fetch(fetchCtx, cnpj)
	})

	select {
	case <-ctx.Done():
		return nil, person.NewTransportError("query company registry", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug("Shared registry lookup", zap.String("cnpj", cnpj))
		}
		return res.Val.(*CompanyRecord), nil
	}
}

// LookupCompany fetches raw and maps the record onto a Company
func (c *Client) LookupCompany(ctx context.Context, raw string) (*person.Company, error) {
	return lookup(ctx, c, raw)
}

func (c *Client) fetch(ctx context.Context, cnpj string) (*CompanyRecord, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, cnpj)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("registry: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Registry request failed", zap.String("cnpj", cnpj), zap.Error(err))
		return nil, person.NewTransportError("query company registry", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, person.NewTransportError("read company registry response", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrCompanyNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Warn("Registry returned unexpected status",
			zap.String("cnpj", cnpj),
			zap.Int("status", resp.StatusCode),
		)
		return nil, person.NewTransportError("query company registry", fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	rec, err := decodeRecord(body)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeDecode, "malformed company registry response", err)
	}
	return rec, nil
}

func lookup(ctx context.Context, f Fetcher, raw string) (*person.Company, error) {
	rec, err := f.FetchCompany(ctx, raw)
	if err != nil {
		return nil, err
	}
	return rec.ToCompany(), nil
}

var _ Fetcher = (*Client)(nil)
