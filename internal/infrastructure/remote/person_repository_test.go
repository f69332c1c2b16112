package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	personapp "github.com/finapp2p/backend/internal/application/person"
	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/domain/shared"
	"github.com/finapp2p/backend/internal/infrastructure/config"
	"github.com/finapp2p/backend/internal/infrastructure/persistence"
	"github.com/finapp2p/backend/internal/interfaces/http/handler"
	"github.com/finapp2p/backend/internal/interfaces/http/router"
	"github.com/finapp2p/backend/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newServer starts the real REST server over an in-memory store
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(newEngine())
	t.Cleanup(srv.Close)
	return srv
}

func newEngine() *gin.Engine {
	svc := personapp.NewPersonService(persistence.NewMemoryPersonRepository(), nil, nil)
	return router.NewEngine(router.EngineConfig{
		HTTP: config.HTTPConfig{MaxBodySize: 1 << 20},
	}, router.Handlers{
		Person:   handler.NewPersonHandler(svc),
		Registry: handler.NewRegistryHandler(svc),
		System:   handler.NewSystemHandler("finapp2p-test", nil),
	})
}

func newRepo(baseURL string) *PersonRepository {
	return NewPersonRepository(config.RemoteConfig{BaseURL: baseURL, Timeout: 5 * time.Second})
}

func TestPersonRepository_Contract(t *testing.T) {
	testutil.RunRepositoryContract(t, func(t *testing.T) person.Repository {
		return newRepo(newServer(t).URL + "/")
	})
}

func TestPersonRepository_CreateAdoptsServerID(t *testing.T) {
	repo := newRepo(newServer(t).URL)
	ctx := context.Background()

	p := testutil.NewContractIndividual("", "Sem Id", "")
	require.NoError(t, repo.Create(ctx, p))
	require.NotEmpty(t, p.ID)

	got, found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Sem Id", got.Common().Name)
}

func TestPersonRepository_FindByDocument(t *testing.T) {
	repo := newRepo(newServer(t).URL)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutil.NewContractCompany("co-1", "EMPRESA EXEMPLO LTDA", "11222333000181")))

	got, found, err := repo.FindByDocument(ctx, " 11222333000181 ")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "co-1", got.Common().ID)

	_, found, err = repo.FindByDocument(ctx, "99999999999999")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPersonRepository_ServiceQueriesDocumentOnServer(t *testing.T) {
	engine := newEngine()
	var (
		mu      sync.Mutex
		queries []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			mu.Lock()
			queries = append(queries, r.URL.RawQuery)
			mu.Unlock()
		}
		engine.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	repo := newRepo(srv.URL)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutil.NewContractCompany("co-1", "EMPRESA EXEMPLO LTDA", "11222333000181")))

	res, err := personapp.NewPersonService(repo, nil, nil).LookupCompany(ctx, "11.222.333/0001-81", nil)

	require.NoError(t, err)
	assert.True(t, res.Existing)
	assert.Equal(t, "co-1", res.Person.Common().ID)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"document=11222333000181"}, queries)
}

func TestPersonRepository_FindByDocument_BlankSkipsServer(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, found, err := newRepo(srv.URL).FindByDocument(context.Background(), "   ")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, calls.Load())
}

func TestPersonRepository_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		call   func(r *PersonRepository) error
		check  func(t *testing.T, err error)
	}{
		{
			name:   "server error carries the envelope message",
			status: http.StatusInternalServerError,
			body:   `{"success":false,"error":{"code":"ERR_INTERNAL","message":"database is gone"}}`,
			call: func(r *PersonRepository) error {
				_, err := r.FindAll(context.Background())
				return err
			},
			check: func(t *testing.T, err error) {
				assert.True(t, person.IsTransport(err), "got %v", err)
				assert.Contains(t, err.Error(), "database is gone")
			},
		},
		{
			name:   "server error without envelope",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			call: func(r *PersonRepository) error {
				_, _, err := r.FindByID(context.Background(), "1")
				return err
			},
			check: func(t *testing.T, err error) {
				assert.True(t, person.IsTransport(err), "got %v", err)
				assert.Contains(t, err.Error(), "HTTP 502")
			},
		},
		{
			name:   "conflict on create",
			status: http.StatusConflict,
			body:   `{"success":false,"error":{"code":"ERR_DUPLICATE_DOCUMENT","message":"dup"}}`,
			call: func(r *PersonRepository) error {
				return r.Create(context.Background(), testutil.NewContractIndividual("1", "A", "123"))
			},
			check: func(t *testing.T, err error) {
				assert.True(t, person.IsDuplicateDocument(err), "got %v", err)
			},
		},
		{
			name:   "not found on update",
			status: http.StatusNotFound,
			body:   `{"success":false,"error":{"code":"ERR_NOT_FOUND","message":"Person not found"}}`,
			call: func(r *PersonRepository) error {
				return r.Update(context.Background(), testutil.NewContractIndividual("1", "A", "123"))
			},
			check: func(t *testing.T, err error) {
				assert.True(t, person.IsNotFound(err), "got %v", err)
			},
		},
		{
			name:   "not found on delete is success",
			status: http.StatusNotFound,
			call: func(r *PersonRepository) error {
				return r.Delete(context.Background(), "1")
			},
			check: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "malformed list payload",
			status: http.StatusOK,
			body:   `[{"id":1}]`,
			call: func(r *PersonRepository) error {
				_, err := r.FindAll(context.Background())
				return err
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, shared.ErrDecode)
			},
		},
		{
			name:   "unknown person type",
			status: http.StatusOK,
			body:   `{"id":"1","personType":"xx","name":"A"}`,
			call: func(r *PersonRepository) error {
				_, _, err := r.FindByID(context.Background(), "1")
				return err
			},
			check: func(t *testing.T, err error) {
				var de *person.DecodeError
				require.ErrorAs(t, err, &de)
				assert.Equal(t, "personType", de.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			tt.check(t, tt.call(newRepo(srv.URL)))
		})
	}
}

func TestPersonRepository_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newRepo(url).FindAll(context.Background())

	assert.True(t, person.IsTransport(err), "got %v", err)
}

func TestPersonRepository_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	repo := NewPersonRepository(config.RemoteConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := repo.FindAll(context.Background())

	assert.True(t, person.IsTransport(err), "got %v", err)
}
