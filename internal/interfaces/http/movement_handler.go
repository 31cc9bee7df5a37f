package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-stock-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-stock-api/internal/application/stock"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos
// (protegido).
type MovementHandler struct {
	ledger *stock.RecordMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *stock.RecordMovementUseCase) *MovementHandler {
	return &MovementHandler{ledger: ledger}
}

// dateLayout formato de fechas de ventana y de consulta (YYYY-MM-DD).
const dateLayout = "2006-01-02"

// Register godoc
// @Summary      Registrar movimiento de stock
// @Description  Anota el movimiento en el libro y aplica su efecto a los
// @Description  contadores del artículo en la misma transacción. El vendor se
// @Description  toma del token.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "stock_item_id, type (IN|OUT|RESERVE|RETURN|CANCEL|DESTROY|LOSS), quantity; planned_date/return_date solo para RESERVE"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	vendor := GetVendor(c)
	if vendor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	planned, err := parseDate(in.PlannedDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "planned_date inválida (YYYY-MM-DD)"})
	}
	ret, err := parseDate(in.ReturnDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "return_date inválida (YYYY-MM-DD)"})
	}

	mov, err := h.ledger.RecordMovement(c.Context(), stock.MovementInput{
		StockItemID: in.StockItemID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		PlannedDate: planned,
		ReturnDate:  ret,
		ContractID:  in.ContractID,
		Vendor:      vendor,
		Comment:     in.Comment,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        stock_item_id  query  string  false  "Filtrar por artículo"
// @Param        type           query  string  false  "Filtrar por tipo"
// @Param        date_start     query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_end       query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit          query  int     false  "Límite"  default(50)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	dateStart, err := parseDate(c.Query("date_start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_start inválida (YYYY-MM-DD)"})
	}
	dateEnd, err := parseDate(c.Query("date_end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_end inválida (YYYY-MM-DD)"})
	}
	if dateEnd != nil {
		// El límite superior cubre el día completo.
		end := dateEnd.Add(24*time.Hour - time.Nanosecond)
		dateEnd = &end
	}

	movs, err := h.ledger.ListMovements(repository.MovementFilter{
		StockItemID: c.Query("stock_item_id"),
		Type:        c.Query("type"),
		DateStart:   dateStart,
		DateEnd:     dateEnd,
		Limit:       c.QueryInt("limit", stock.DefaultMovementLimit),
	})
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.FromMovement(m))
	}
	return c.JSON(out)
}

// parseDate interpreta una fecha YYYY-MM-DD opcional; "" devuelve nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
