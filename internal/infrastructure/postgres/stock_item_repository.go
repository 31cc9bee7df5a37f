package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/stock"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL
// (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, category, sub_category, reference, size, color, rental_price,
		quantity_on_hand, quantity_reserved, alert_threshold, created_at, updated_at`

// Create persiste un artículo nuevo. search_text se deriva de referencia,
// talla y color normalizados.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, category, sub_category, reference, size, color, rental_price,
			quantity_on_hand, quantity_reserved, alert_threshold, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Category, nullable(item.SubCategory), item.Reference, item.Size,
		nullable(item.Color), item.RentalPrice, item.QuantityOnHand, item.QuantityReserved,
		item.AlertThreshold, stock.SearchText(item.Reference, item.Size, item.Color),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID; nil si no existe.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el artículo bloqueando su fila (SELECT FOR UPDATE);
// serializa escrituras concurrentes sobre el mismo artículo sin bloquear
// movimientos de artículos distintos.
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste todos los campos mutables del artículo y rederiva
// search_text.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items SET category = $2, sub_category = $3, reference = $4, size = $5,
			color = $6, rental_price = $7, quantity_on_hand = $8, quantity_reserved = $9,
			alert_threshold = $10, search_text = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Category, nullable(item.SubCategory), item.Reference, item.Size,
		nullable(item.Color), item.RentalPrice, item.QuantityOnHand, item.QuantityReserved,
		item.AlertThreshold, stock.SearchText(item.Reference, item.Size, item.Color),
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock item %s: fila no encontrada", item.ID)
	}
	return nil
}

// List lista artículos aplicando los filtros con AND. Search compara contra
// search_text (ya normalizado en la escritura), por lo que la búsqueda es
// insensible a mayúsculas y acentos.
func (r *StockItemRepo) List(filter repository.StockItemFilter) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE 1=1`
	var args []any
	pos := 1
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.Reference != "" {
		query += fmt.Sprintf(" AND reference = $%d", pos)
		args = append(args, filter.Reference)
		pos++
	}
	if filter.Size != "" {
		query += fmt.Sprintf(" AND size = $%d", pos)
		args = append(args, filter.Size)
		pos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND search_text LIKE '%%' || $%d || '%%'", pos)
		args = append(args, stock.Normalize(filter.Search))
		pos++
	}
	query += " ORDER BY reference, size"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *StockItemRepo) scanOne(row pgx.Row) (*entity.StockItem, error) {
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func scanItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	var subCategory, color *string
	if err := row.Scan(
		&s.ID, &s.Category, &subCategory, &s.Reference, &s.Size, &color, &s.RentalPrice,
		&s.QuantityOnHand, &s.QuantityReserved, &s.AlertThreshold, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock item: %w", err)
	}
	if subCategory != nil {
		s.SubCategory = *subCategory
	}
	if color != nil {
		s.Color = *color
	}
	// Available no se almacena: siempre derivado de los contadores leídos.
	s.RecomputeAvailable()
	return &s, nil
}

// nullable convierte "" en NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
