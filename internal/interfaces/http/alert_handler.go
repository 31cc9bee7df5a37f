package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-stock-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-stock-api/internal/application/stock"
)

// AlertHandler consulta de alertas de stock bajo (protegido).
type AlertHandler struct {
	uc *stock.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *stock.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// ListActive godoc
// @Summary      Listar alertas activas
// @Description  Reevalúa todos los artículos contra su umbral antes de listar,
// @Description  de modo que el resultado refleje las cantidades actuales.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/stock/alerts/active [get]
func (h *AlertHandler) ListActive(c *fiber.Ctx) error {
	alerts, err := h.uc.ListActive()
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.FromAlert(a))
	}
	return c.JSON(out)
}
