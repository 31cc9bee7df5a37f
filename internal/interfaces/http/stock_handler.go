package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-stock-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-stock-api/internal/application/stock"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
)

// StockItemHandler maneja las peticiones HTTP del catálogo de artículos
// (protegido).
type StockItemHandler struct {
	registry *stock.RegistryUseCase
	ledger   *stock.RecordMovementUseCase
}

// NewStockItemHandler construye el handler.
func NewStockItemHandler(registry *stock.RegistryUseCase, ledger *stock.RecordMovementUseCase) *StockItemHandler {
	return &StockItemHandler{registry: registry, ledger: ledger}
}

// Create godoc
// @Summary      Crear artículo de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "category, reference, size, quantity_on_hand; sub_category obligatoria para jacket y vest"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/items [post]
func (h *StockItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.registry.CreateItem(stock.CreateItemInput{
		Category:       in.Category,
		SubCategory:    in.SubCategory,
		Reference:      in.Reference,
		Size:           in.Size,
		Color:          in.Color,
		RentalPrice:    in.RentalPrice,
		QuantityOnHand: in.QuantityOnHand,
		AlertThreshold: in.AlertThreshold,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromStockItem(item))
}

// Update godoc
// @Summary      Actualizar artículo (parcial)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateStockItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/items/{id} [patch]
func (h *StockItemHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.registry.UpdateItem(c.Context(), id, stock.UpdateItemInput{
		Category:         in.Category,
		SubCategory:      in.SubCategory,
		Reference:        in.Reference,
		Size:             in.Size,
		Color:            in.Color,
		RentalPrice:      in.RentalPrice,
		QuantityOnHand:   in.QuantityOnHand,
		QuantityReserved: in.QuantityReserved,
		AlertThreshold:   in.AlertThreshold,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{id} [get]
func (h *StockItemHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	item, err := h.registry.GetItem(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// List godoc
// @Summary      Listar artículos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        category   query  string  false  "jacket | vest | trouser | accessory"
// @Param        reference  query  string  false  "Referencia exacta"
// @Param        size       query  string  false  "Talla exacta"
// @Param        search     query  string  false  "Búsqueda libre (insensible a mayúsculas y acentos)"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock/items [get]
func (h *StockItemHandler) List(c *fiber.Ctx) error {
	items, err := h.registry.ListItems(repository.StockItemFilter{
		Category:  c.Query("category"),
		Reference: c.Query("reference"),
		Size:      c.Query("size"),
		Search:    c.Query("search"),
	})
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.FromStockItem(item))
	}
	return c.JSON(out)
}

// Rebuild godoc
// @Summary      Reconstruir contadores desde el libro de movimientos
// @Description  Repliega el libro completo del artículo y sobreescribe OnHand
// @Description  y Reserved. Herramienta administrativa de recuperación.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{id}/rebuild [post]
func (h *StockItemHandler) Rebuild(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	item, err := h.ledger.RebuildItemCounters(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}
