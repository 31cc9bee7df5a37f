package repository

import "github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"

// AlertRepository define el puerto de persistencia de alertas de stock bajo.
type AlertRepository interface {
	// Create persiste una alerta activa nueva. Si el artículo ya tiene una
	// alerta activa (activación concurrente por otro camino), es un no-op:
	// nunca devuelve error por ese caso.
	Create(alert *entity.Alert) error
	// GetActiveByItem devuelve la alerta activa del artículo, o nil si no hay.
	GetActiveByItem(stockItemID string) (*entity.Alert, error)
	// Deactivate marca la alerta como inactiva (las alertas nunca se borran).
	Deactivate(id string) error
	ListActive() ([]*entity.Alert, error)
}
