package repository

import (
	"time"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
)

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	StockItemID string
	Type        string
	DateStart   *time.Time
	DateEnd     *time.Time
	Limit       int
}

// CounterSums suma del libro por artículo, para reconstruir los contadores.
type CounterSums struct {
	OnHand   int
	Reserved int
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
// El libro es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// List devuelve movimientos ordenados por fecha descendente, truncados a
	// filter.Limit.
	List(filter MovementFilter) ([]*entity.Movement, error)
	// ListReservationsCovering devuelve las RESERVE del artículo con ventana
	// completa cuya ventana [planned, return] cubre la fecha objetivo
	// (inclusivo en ambos extremos).
	ListReservationsCovering(stockItemID string, target time.Time) ([]*entity.Movement, error)
	// SumByItem reproduce el libro completo del artículo aplicando el delta de
	// cada tipo, para reconstruir OnHand y Reserved desde cero.
	SumByItem(stockItemID string) (CounterSums, error)
}
