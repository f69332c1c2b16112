package handler

import "github.com/finapp2p/backend/internal/interfaces/http/dto"

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// PersonRow documents the wire row served by the person endpoints
// @Description Flat person record; variant keys depend on personType
type PersonRow struct {
	ID                     string  `json:"id" example:"4f7c1e52-2f0b-4c55-9a57-0d8e7f1f6a10"`
	PersonType             string  `json:"personType" example:"pj" enums:"pf,pj"`
	Name                   string  `json:"name" example:"EMPRESA EXEMPLO LTDA"`
	Document               *string `json:"document" example:"11222333000181"`
	Email                  *string `json:"email" example:"contato@exemplo.com.br"`
	BirthDate              *string `json:"birthDate,omitempty" example:"1990-05-17"`
	FoundationDate         *string `json:"foundationDate,omitempty" example:"2001-02-03"`
	IsActive               bool    `json:"isActive" example:"true"`
	RegistrationStatus     *string `json:"registrationStatus,omitempty" example:"ATIVA"`
	RegistrationStatusDate *string `json:"registrationStatusDate,omitempty" example:"2005-11-03"`
	CreatedAt              string  `json:"createdAt" example:"2026-01-23T12:00:00Z"`
	UpdatedAt              *string `json:"updatedAt" example:"2026-01-24T08:30:00Z"`
}
