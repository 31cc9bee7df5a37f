package stock

import (
	"context"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que "anotar movimiento" y "mutar
// contadores" se confirmen o reviertan como una unidad, y que un fallo de
// serialización llegue como domain.ErrConcurrency para poder reintentar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error) error
}
