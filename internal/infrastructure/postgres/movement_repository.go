package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/stock"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, stock_item_id, type, quantity, movement_date, planned_date,
		return_date, contract_id, vendor, comment, created_at`

// Create anota un movimiento en el libro.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.StockItemID, m.Type, m.Quantity, m.MovementDate, m.PlannedDate,
		m.ReturnDate, nullable(m.ContractID), m.Vendor, nullable(m.Comment), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// List lista movimientos por filtros, ordenados por fecha de movimiento
// descendente y truncados al límite.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	var args []any
	pos := 1
	if filter.StockItemID != "" {
		query += fmt.Sprintf(" AND stock_item_id = $%d", pos)
		args = append(args, filter.StockItemID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.DateStart != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", pos)
		args = append(args, *filter.DateStart)
		pos++
	}
	if filter.DateEnd != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", pos)
		args = append(args, *filter.DateEnd)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY movement_date DESC LIMIT $%d", pos)
	args = append(args, filter.Limit)

	return r.queryMovements(query, args...)
}

// ListReservationsCovering devuelve las RESERVE del artículo cuya ventana
// [planned_date, return_date] cubre la fecha objetivo, inclusivo en ambos
// extremos. Las RESERVE sin ventana completa quedan fuera.
func (r *MovementRepo) ListReservationsCovering(stockItemID string, target time.Time) ([]*entity.Movement, error) {
	day := stock.DateOnly(target)
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE stock_item_id = $1 AND type = $2
		  AND planned_date IS NOT NULL AND return_date IS NOT NULL
		  AND planned_date <= $3 AND return_date >= $3
		ORDER BY planned_date`
	return r.queryMovements(query, stockItemID, entity.MovementRESERVE, day)
}

// SumByItem repliega el libro completo del artículo: efecto neto de cada tipo
// sobre OnHand y Reserved.
func (r *MovementRepo) SumByItem(stockItemID string) (repository.CounterSums, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'IN' THEN quantity
			                  WHEN type IN ('OUT', 'DESTROY', 'LOSS') THEN -quantity
			                  ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'RESERVE' THEN quantity
			                  WHEN type IN ('RETURN', 'CANCEL') THEN -quantity
			                  ELSE 0 END), 0)
		FROM stock_movements WHERE stock_item_id = $1`
	var sums repository.CounterSums
	err := r.q.QueryRow(context.Background(), query, stockItemID).Scan(&sums.OnHand, &sums.Reserved)
	if err != nil {
		return repository.CounterSums{}, fmt.Errorf("sum movements: %w", err)
	}
	return sums, nil
}

func (r *MovementRepo) queryMovements(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var contractID, comment *string
		if err := rows.Scan(&m.ID, &m.StockItemID, &m.Type, &m.Quantity, &m.MovementDate,
			&m.PlannedDate, &m.ReturnDate, &contractID, &m.Vendor, &comment, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if contractID != nil {
			m.ContractID = *contractID
		}
		if comment != nil {
			m.Comment = *comment
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
