package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/kanban"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const palletNotFound = "palé no encontrado"

// KanbanHandler maneja las peticiones HTTP del kanban de expedición.
type KanbanHandler struct {
	uc  *kanban.KanbanUseCase
	log *logger.Logger
}

// NewKanbanHandler construye el handler.
func NewKanbanHandler(uc *kanban.KanbanUseCase, log *logger.Logger) *KanbanHandler {
	return &KanbanHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar palés del kanban
// @Tags         kanban
// @Produce      json
// @Success      200  {array}  dto.KanbanResponse
// @Router       /api/kanban [get]
func (h *KanbanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, palletNotFound)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener palé por ID
// @Tags         kanban
// @Produce      json
// @Param        id   path  string  true  "ID del palé"
// @Success      200  {object}  dto.KanbanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kanban/{id} [get]
func (h *KanbanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, palletNotFound)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar palé al kanban
// @Description  La etapa (green|yellow|red) es obligatoria. Registra "kanban_add".
// @Tags         kanban
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateKanbanRequest  true  "Etapa y datos del producto"
// @Success      201   {object}  dto.KanbanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/kanban [post]
func (h *KanbanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateKanbanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Add(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err, palletNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar palé
// @Description  Todos los campos son opcionales. Un cambio de etapa registra "kanban_move".
// @Tags         kanban
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del palé"
// @Param        body  body  dto.UpdateKanbanRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.KanbanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/kanban/{id} [patch]
func (h *KanbanHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateKanbanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err, palletNotFound)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Retirar palé (expedir o descartar)
// @Description  Registra "kanban_expedite" con los datos del palé y lo elimina.
// @Tags         kanban
// @Produce      json
// @Param        id      path   string  true   "ID del palé"
// @Param        reason  query  string  false  "expedite (por defecto) | discard"
// @Success      200     {object}  dto.SuccessResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/kanban/{id} [delete]
func (h *KanbanHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), c.Params("id"), c.Query("reason")); err != nil {
		return respondError(c, h.log, err, palletNotFound)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
