package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// respondError traduce errores de dominio a HTTP. Cualquier error no previsto
// es 500 y queda en el log con el request id.
func respondError(c *fiber.Ctx, log *logger.Logger, err error, notFoundMsg string) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Fields:  ve.Fields,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}

	log.Error().Err(err).
		Str("request_id", GetRequestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// invalidBody responde a un error de BodyParser/QueryParser. Si el JSON es
// sintácticamente válido pero algún campo tiene un tipo incorrecto, responde
// VALIDATION con los campos; en otro caso INVALID_BODY.
func invalidBody(c *fiber.Ctx, err error) error {
	if ve := bodyFieldErrors(c.Body(), err); ve != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Fields:  ve.Fields,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// bodyFieldErrors nombra los campos con tipo incorrecto. encoding/json sólo informa
// el primero y los errores de decimal llegan sin ruta, por eso quantity se revisa aparte.
func bodyFieldErrors(body []byte, err error) *domain.ValidationError {
	var raw map[string]json.RawMessage
	if len(body) == 0 || json.Unmarshal(body, &raw) != nil {
		return nil
	}
	v := &domain.ValidationError{}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" && te.Field != "quantity" {
		v.Add(te.Field, "tipo inválido")
	}
	if q, ok := raw["quantity"]; ok {
		var d decimal.Decimal
		if d.UnmarshalJSON(q) != nil {
			v.Add("quantity", "debe ser numérico")
		}
	}
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

// ErrorHandler handler de errores de Fiber (rutas inexistentes, panics recuperados, body demasiado grande).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "HTTP_ERROR"
			switch fe.Code {
			case fiber.StatusNotFound:
				code = "NOT_FOUND"
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
				code = "INVALID_BODY"
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		return respondError(c, log, err, "recurso no encontrado")
	}
}
