package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// HistoryHandler consultas y exportaciones del histórico de movimientos.
type HistoryHandler struct {
	uc     *history.HistoryUseCase
	export *history.ExportUseCase
	log    *logger.Logger
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *history.HistoryUseCase, export *history.ExportUseCase, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{uc: uc, export: export, log: log}
}

// List godoc
// @Summary      Histórico de movimientos
// @Description  Más reciente primero. El rango de fechas se ensancha un día por lado.
// @Tags         history
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        type       query  string  false  "entry|exit|edit|kanban_add|kanban_move|kanban_expedite|all"
// @Param        search     query  string  false  "Texto en producto, código o ubicación (sin distinguir tildes)"
// @Success      200  {array}   dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Search(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err, "histórico no encontrado")
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar histórico
// @Description  Mismos filtros que /api/history. Formatos: csv (separado por ;) y pdf.
// @Tags         history
// @Produce      application/pdf
// @Produce      text/csv
// @Param        format     path   string  true   "csv | pdf"
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        type       query  string  false  "Tipo de movimiento"
// @Param        search     query  string  false  "Texto libre"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history/export.{format} [get]
func (h *HistoryHandler) Export(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c, err)
	}
	data, contentType, filename, err := h.export.Export(c.UserContext(), c.Params("format"), q)
	if err != nil {
		return respondError(c, h.log, err, "histórico no encontrado")
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
