package repository

import "github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"

// StockItemFilter filtros de listado de artículos; se combinan con AND.
// Search se compara normalizado (minúsculas, sin acentos) contra referencia,
// talla y color.
type StockItemFilter struct {
	Category  string
	Reference string
	Size      string
	Search    string
}

// StockItemRepository define el puerto de persistencia de artículos de stock.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	// GetForUpdate obtiene el artículo bloqueando su fila para escritura;
	// serializa los movimientos concurrentes sobre el mismo artículo.
	GetForUpdate(id string) (*entity.StockItem, error)
	Update(item *entity.StockItem) error
	List(filter StockItemFilter) ([]*entity.StockItem, error)
}
