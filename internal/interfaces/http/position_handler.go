package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/warehouse"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const positionNotFound = "posición no encontrada"

// PositionHandler maneja las peticiones HTTP del porta-palete.
type PositionHandler struct {
	uc  *warehouse.PositionUseCase
	log *logger.Logger
}

// NewPositionHandler construye el handler.
func NewPositionHandler(uc *warehouse.PositionUseCase, log *logger.Logger) *PositionHandler {
	return &PositionHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar posiciones
// @Description  Las 20 posiciones ordenadas por bloque ASC, nivel DESC, posición ASC.
// @Tags         positions
// @Produce      json
// @Success      200  {array}   dto.PositionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/positions [get]
func (h *PositionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, positionNotFound)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener posición por ID
// @Tags         positions
// @Produce      json
// @Param        id   path  string  true  "ID de la posición (pos-{bloque}-{nivel}-{AP1|AP2})"
// @Success      200  {object}  dto.PositionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/positions/{id} [get]
func (h *PositionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, positionNotFound)
	}
	return c.JSON(out)
}

// Fill godoc
// @Summary      Llenar o actualizar posición
// @Description  Sobrescribe los datos del producto. Registra "entry" si estaba vacía o "edit" si estaba ocupada.
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la posición"
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.PositionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/positions/{id} [patch]
func (h *PositionHandler) Fill(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Fill(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err, positionNotFound)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar posición
// @Description  Registra "exit" con los datos previos. Vaciar una posición vacía no registra nada.
// @Tags         positions
// @Produce      json
// @Param        id   path  string  true  "ID de la posición"
// @Success      200  {object}  dto.PositionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/positions/{id} [delete]
func (h *PositionHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, positionNotFound)
	}
	return c.JSON(out)
}
