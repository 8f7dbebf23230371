package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// StatsHandler expone el agregador de estadísticas.
type StatsHandler struct {
	uc  *analytics.StatsUseCase
	log *logger.Logger
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *analytics.StatsUseCase, log *logger.Logger) *StatsHandler {
	return &StatsHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Estadísticas del almacén
// @Description  Recalculadas en cada llamada: posiciones ocupadas/libres y palés por etapa.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stats [get]
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	return c.JSON(out)
}
