package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
)

// RegistryUseCase administra el catálogo de artículos de stock: alta,
// actualización parcial y listado con filtros. Las cantidades solo cambian
// aquí por asignación directa administrativa; el camino normal es el libro de
// movimientos.
type RegistryUseCase struct {
	txRunner  TxRunner
	itemRepo  repository.StockItemRepository
	alertRepo repository.AlertRepository
	monitor   *AlertMonitor
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(
	txRunner TxRunner,
	itemRepo repository.StockItemRepository,
	alertRepo repository.AlertRepository,
	monitor *AlertMonitor,
) *RegistryUseCase {
	return &RegistryUseCase{txRunner: txRunner, itemRepo: itemRepo, alertRepo: alertRepo, monitor: monitor}
}

// CreateItemInput entrada para crear un artículo.
type CreateItemInput struct {
	Category       string
	SubCategory    string
	Reference      string
	Size           string
	Color          string
	RentalPrice    *decimal.Decimal
	QuantityOnHand int
	AlertThreshold *int // nil = umbral por defecto (5)
}

// DefaultAlertThreshold umbral de alerta cuando el alta no especifica uno.
const DefaultAlertThreshold = 5

// CreateItem da de alta un artículo. Reserved arranca en 0 y Available igual
// a OnHand.
func (uc *RegistryUseCase) CreateItem(input CreateItemInput) (*entity.StockItem, error) {
	if input.Reference == "" || input.Size == "" || !entity.ValidCategory(input.Category) {
		return nil, domain.ErrInvalidInput
	}
	if entity.CategoryRequiresSubCategory(input.Category) && input.SubCategory == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.QuantityOnHand < 0 {
		return nil, domain.ErrInvalidInput
	}
	threshold := DefaultAlertThreshold
	if input.AlertThreshold != nil {
		if *input.AlertThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *input.AlertThreshold
	}
	price := decimal.Zero
	if input.RentalPrice != nil {
		if input.RentalPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		price = *input.RentalPrice
	}

	now := time.Now()
	item := &entity.StockItem{
		ID:               uuid.New().String(),
		Category:         input.Category,
		SubCategory:      input.SubCategory,
		Reference:        input.Reference,
		Size:             input.Size,
		Color:            input.Color,
		RentalPrice:      price,
		QuantityOnHand:   input.QuantityOnHand,
		QuantityReserved: 0,
		AlertThreshold:   threshold,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	item.RecomputeAvailable()

	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	if _, err := uc.monitor.Evaluate(uc.alertRepo, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemInput campos de actualización parcial; nil no toca el campo.
type UpdateItemInput struct {
	Category         *string
	SubCategory      *string
	Reference        *string
	Size             *string
	Color            *string
	RentalPrice      *decimal.Decimal
	QuantityOnHand   *int
	QuantityReserved *int
	AlertThreshold   *int
}

// UpdateItem fusiona los campos recibidos sobre el artículo y recalcula el
// disponible: aunque el caller asigne OnHand o Reserved directamente, el
// invariante Available == OnHand - Reserved se reimpone siempre. Corre en
// transacción con bloqueo de fila para no pisar movimientos concurrentes.
func (uc *RegistryUseCase) UpdateItem(ctx context.Context, id string, input UpdateItemInput) (*entity.StockItem, error) {
	var updated *entity.StockItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		_ repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		item, err := itemRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		if input.Category != nil {
			if !entity.ValidCategory(*input.Category) {
				return domain.ErrInvalidInput
			}
			item.Category = *input.Category
		}
		if input.SubCategory != nil {
			item.SubCategory = *input.SubCategory
		}
		if entity.CategoryRequiresSubCategory(item.Category) && item.SubCategory == "" {
			return domain.ErrInvalidInput
		}
		if input.Reference != nil {
			if *input.Reference == "" {
				return domain.ErrInvalidInput
			}
			item.Reference = *input.Reference
		}
		if input.Size != nil {
			if *input.Size == "" {
				return domain.ErrInvalidInput
			}
			item.Size = *input.Size
		}
		if input.Color != nil {
			item.Color = *input.Color
		}
		if input.RentalPrice != nil {
			if input.RentalPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			item.RentalPrice = *input.RentalPrice
		}
		if input.QuantityOnHand != nil {
			if *input.QuantityOnHand < 0 {
				return domain.ErrInvalidInput
			}
			item.QuantityOnHand = *input.QuantityOnHand
		}
		if input.QuantityReserved != nil {
			if *input.QuantityReserved < 0 {
				return domain.ErrInvalidInput
			}
			item.QuantityReserved = *input.QuantityReserved
		}
		if input.AlertThreshold != nil {
			if *input.AlertThreshold < 0 {
				return domain.ErrInvalidInput
			}
			item.AlertThreshold = *input.AlertThreshold
		}

		item.RecomputeAvailable()
		item.UpdatedAt = time.Now()
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		if _, err := uc.monitor.Evaluate(alertRepo, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetItem obtiene un artículo por ID.
func (uc *RegistryUseCase) GetItem(id string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems lista artículos según filtros (AND). Tras el listado se evalúan
// las alertas para que no queden desfasadas respecto a las cantidades.
func (uc *RegistryUseCase) ListItems(filter repository.StockItemFilter) ([]*entity.StockItem, error) {
	items, err := uc.itemRepo.List(filter)
	if err != nil {
		return nil, err
	}
	if _, err := uc.monitor.EvaluateAll(uc.alertRepo, items); err != nil {
		return nil, err
	}
	return items, nil
}
