package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL (usable con
// pool o tx). El índice único parcial sobre (stock_item_id) WHERE active
// respalda en almacenamiento el invariante de una sola alerta activa.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, stock_item_id, reference, size, quantity_at_detection, threshold,
		message, active, detected_at`

// Create persiste una alerta nueva (activa). Si otro camino concurrente ya
// activó la alerta del artículo, ON CONFLICT la deja tal cual: el estado
// deseado ya existe, y un INSERT fallido dentro de una transacción abortaría
// la transacción completa.
func (r *AlertRepo) Create(a *entity.Alert) error {
	query := `
		INSERT INTO stock_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (stock_item_id) WHERE active DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.StockItemID, a.Reference, a.Size, a.QuantityAtDetection, a.Threshold,
		a.Message, a.Active, a.DetectedAt,
	)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// GetActiveByItem devuelve la alerta activa del artículo, o nil si no hay.
func (r *AlertRepo) GetActiveByItem(stockItemID string) (*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE stock_item_id = $1 AND active`
	var a entity.Alert
	err := r.q.QueryRow(context.Background(), query, stockItemID).Scan(
		&a.ID, &a.StockItemID, &a.Reference, &a.Size, &a.QuantityAtDetection, &a.Threshold,
		&a.Message, &a.Active, &a.DetectedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active alert: %w", err)
	}
	return &a, nil
}

// Deactivate marca la alerta como inactiva; nunca se borra.
func (r *AlertRepo) Deactivate(id string) error {
	query := `UPDATE stock_alerts SET active = false WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id); err != nil {
		return fmt.Errorf("deactivate alert: %w", err)
	}
	return nil
}

// ListActive lista todas las alertas activas, la detección más reciente
// primero.
func (r *AlertRepo) ListActive() ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE active ORDER BY detected_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.StockItemID, &a.Reference, &a.Size, &a.QuantityAtDetection,
			&a.Threshold, &a.Message, &a.Active, &a.DetectedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
