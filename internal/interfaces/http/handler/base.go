// Package handler holds the gin handlers of the FINAPP2P REST API.
package handler

import (
	"errors"
	"net/http"

	"github.com/finapp2p/backend/internal/domain/shared"
	"github.com/finapp2p/backend/internal/infrastructure/logger"
	"github.com/finapp2p/backend/internal/interfaces/http/dto"
	"github.com/finapp2p/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code.
// Domain codes are accepted as well as API codes.
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	code = dto.NormalizeErrorCode(code)
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleBindError answers a failed ShouldBind* call: field level failures
// with their details, oversized bodies with 413 and anything else as
// malformed JSON.
func (h *BaseHandler) HandleBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		middleware.HandleValidationError(c, err)
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body too large")
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid JSON: "+err.Error())
}

// HandleError converts domain errors to HTTP responses. Anything else is
// logged and answered with 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.ErrorWithCode(c, domainErr.Code, domainErr.Message)
		return
	}
	if errors.Is(err, shared.ErrDecode) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	_ = c.Error(err)
	logger.L(c.Request.Context()).Error("Request failed", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}
