package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Do sends a request through engine and returns the recorder
func Do(t *testing.T, engine http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = ToJSONReader(t, body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// NewEngine returns a bare gin engine in test mode
func NewEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// JSONResponseAs parses the response body into the provided type.
func JSONResponseAs[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var result T
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err, "Failed to parse JSON response: %s", w.Body.String())
	return result
}

// AssertErrorResponse asserts the response is an error envelope with the given code.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()

	resp := JSONResponseAs[map[string]any](t, w)
	assert.Equal(t, false, resp["success"], "Expected success to be false")

	errMap, ok := resp["error"].(map[string]any)
	require.True(t, ok, "Expected error object in response")
	assert.Equal(t, expectedCode, errMap["code"], "Unexpected error code")
}

// ToJSONReader converts a value to a JSON io.Reader. Strings and byte slices
// are sent as is.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	switch raw := v.(type) {
	case string:
		return bytes.NewReader([]byte(raw))
	case []byte:
		return bytes.NewReader(raw)
	}
	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
