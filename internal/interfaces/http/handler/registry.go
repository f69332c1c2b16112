package handler

import (
	"errors"
	"net/http"

	personapp "github.com/finapp2p/backend/internal/application/person"
	"github.com/finapp2p/backend/internal/domain/shared"
	"github.com/finapp2p/backend/internal/infrastructure/logger"
	"github.com/finapp2p/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegistryHandler exposes the company registry lookup
type RegistryHandler struct {
	BaseHandler
	service *personapp.PersonService
}

// NewRegistryHandler creates a new RegistryHandler
func NewRegistryHandler(service *personapp.PersonService) *RegistryHandler {
	return &RegistryHandler{
		service: service,
	}
}

// LookupCompany godoc
// @ID           lookupCompany
// @Summary      Look a company up by CNPJ
// @Description  Returns the stored company when the CNPJ is already registered (existing=true), otherwise the public registry data mapped to the row shape.
// @Tags         registry
// @Produce      json
// @Param        cnpj path string true "CNPJ, punctuation allowed"
// @Success      200 {object} dto.CompanyLookupResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /api/registry/companies/{cnpj} [get]
func (h *RegistryHandler) LookupCompany(c *gin.Context) {
	result, err := h.service.LookupCompany(c.Request.Context(), c.Param("cnpj"), nil)
	if err != nil {
		// A payload the registry sent us is not the caller's fault.
		if errors.Is(err, shared.ErrDecode) {
			logger.L(c.Request.Context()).Warn("Registry answered an unreadable payload", zap.Error(err))
			h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstream, "Company registry returned an invalid response")
			return
		}
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyLookupResponse(result.Person, result.Existing))
}
