package dto

import "github.com/jhoicas/almacen-api/internal/domain"

// ErrorResponse cuerpo de error HTTP.
// Fields sólo se llena cuando Code es VALIDATION.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// SuccessResponse marcador de éxito para operaciones sin cuerpo (ej. retirar palé).
type SuccessResponse struct {
	Success bool `json:"success"`
}
