package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeValidationRequired, http.StatusBadRequest},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeDuplicateDocument, http.StatusConflict},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeUpstream, http.StatusBadGateway},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"VALIDATION_ERROR", ErrCodeValidation},
		{"DUPLICATE_DOCUMENT", ErrCodeDuplicateDocument},
		{"NOT_FOUND", ErrCodeNotFound},
		{"TRANSPORT_ERROR", ErrCodeUpstream},
		{"DECODE_ERROR", ErrCodeInvalidJSON},
		// API codes pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		{ErrCodeValidation, ErrCodeValidation},
		{"CUSTOM_ERROR", "CUSTOM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestDomainCodesHaveStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		t.Run(domainCode, func(t *testing.T) {
			_, ok := ErrorCodeHTTPStatus[apiCode]
			assert.True(t, ok, "%s maps to %s which has no HTTP status", domainCode, apiCode)
			assert.Contains(t, apiCode, "ERR_")
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Person not found")

	assert.False(t, resp.Success)
	if assert.NotNil(t, resp.Error) {
		assert.Equal(t, ErrCodeNotFound, resp.Error.Code) // normalized
		assert.Equal(t, "Person not found", resp.Error.Message)
		assert.Empty(t, resp.Error.RequestID)
		assert.NotZero(t, resp.Error.Timestamp)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeDuplicateDocument, "This CPF/CNPJ is already registered", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeDuplicateDocument, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "name", Message: "This field is required"},
		{Field: "personType", Message: "Must be one of: pf, pj"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-789", details)

	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "name", resp.Error.Details[0].Field)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Person not found", "req-test-123")

	data, err := json.Marshal(resp)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	errMap := decoded["error"].(map[string]any)
	assert.Equal(t, ErrCodeNotFound, errMap["code"])
	assert.Equal(t, "req-test-123", errMap["request_id"])
	assert.NotContains(t, errMap, "details")
	assert.NotContains(t, decoded, "data")
}

func TestErrorResponseTimestamp(t *testing.T) {
	before := time.Now()
	resp := NewErrorResponse(ErrCodeInternal, "Server error")
	after := time.Now()

	assert.False(t, resp.Error.Timestamp.Before(before.Add(-time.Millisecond)))
	assert.False(t, resp.Error.Timestamp.After(after.Add(time.Millisecond)))
}
