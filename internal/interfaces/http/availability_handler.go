package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-stock-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-stock-api/internal/application/stock"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
)

// AvailabilityHandler consultas de disponibilidad a fecha (protegido, solo
// lectura).
type AvailabilityHandler struct {
	uc *stock.AvailabilityUseCase
}

// NewAvailabilityHandler construye el handler.
func NewAvailabilityHandler(uc *stock.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

// Get godoc
// @Summary      Disponibilidad por fecha
// @Description  Unidades libres de cada artículo que cumpla los filtros en la
// @Description  fecha objetivo, resolviendo las ventanas de reserva del libro.
// @Tags         availability
// @Security     Bearer
// @Produce      json
// @Param        date       query  string  true   "Fecha objetivo (YYYY-MM-DD)"
// @Param        category   query  string  false  "Filtrar por categoría"
// @Param        reference  query  string  false  "Filtrar por referencia"
// @Param        size       query  string  false  "Filtrar por talla"
// @Success      200  {array}   dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/availability [get]
func (h *AvailabilityHandler) Get(c *fiber.Ctx) error {
	target, err := parseDate(c.Query("date"))
	if err != nil || target == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date es requerida (YYYY-MM-DD)"})
	}

	list, err := h.uc.GetAvailabilityAtDate(repository.StockItemFilter{
		Category:  c.Query("category"),
		Reference: c.Query("reference"),
		Size:      c.Query("size"),
	}, *target)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.AvailabilityResponse, 0, len(list))
	for _, av := range list {
		out = append(out, dto.FromAvailability(av))
	}
	return c.JSON(out)
}

// GetByItem godoc
// @Summary      Disponibilidad de un artículo por fecha
// @Tags         availability
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true  "ID del artículo"
// @Param        date  query  string  true  "Fecha objetivo (YYYY-MM-DD)"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{id}/availability [get]
func (h *AvailabilityHandler) GetByItem(c *fiber.Ctx) error {
	id := c.Params("id")
	target, err := parseDate(c.Query("date"))
	if err != nil || target == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date es requerida (YYYY-MM-DD)"})
	}
	av, err := h.uc.ComputeAvailabilityAtDate(id, *target)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromAvailability(av))
}
