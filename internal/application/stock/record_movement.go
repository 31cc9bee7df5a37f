package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
	domstock "github.com/jhoicas/Alquiler-stock-api/internal/domain/stock"
	"github.com/jhoicas/Alquiler-stock-api/pkg/logger"
)

// maxTxRetries reintentos ante fallos de serialización antes de rendirse.
const maxTxRetries = 3

// Límites de paginación del listado de movimientos.
const (
	DefaultMovementLimit = 50
	MaxMovementLimit     = 200
)

// RecordMovementUseCase registra movimientos en el libro y aplica su delta a
// los contadores del artículo de forma transaccional, con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback: nunca queda un movimiento anotado
// sin su efecto aplicado ni al revés.
type RecordMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	monitor  *AlertMonitor
	log      *logger.Logger
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository, monitor *AlertMonitor, log *logger.Logger) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner, movRepo: movRepo, monitor: monitor, log: log}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	StockItemID string
	Type        string
	Quantity    int
	PlannedDate *time.Time // solo RESERVE
	ReturnDate  *time.Time // solo RESERVE
	ContractID  string
	Vendor      string
	Comment     string
}

// validate rechaza la entrada antes de cualquier escritura en el libro.
func (in *MovementInput) validate() error {
	if in.StockItemID == "" || in.Vendor == "" || in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if _, ok := domstock.DeltaFor(in.Type); !ok {
		return domain.ErrInvalidInput
	}
	if in.Type != entity.MovementRESERVE && (in.PlannedDate != nil || in.ReturnDate != nil) {
		return domain.ErrInvalidInput
	}
	// La ventana puede faltar en una RESERVE (solo cuenta en el reservado en
	// tiempo real), pero si viene, viene completa y bien ordenada.
	if (in.PlannedDate == nil) != (in.ReturnDate == nil) {
		return domain.ErrInvalidInput
	}
	if in.PlannedDate != nil && in.ReturnDate.Before(*in.PlannedDate) {
		return domain.ErrInvalidInput
	}
	return nil
}

// RecordMovement valida, abre transacción, bloquea la fila del artículo,
// aplica el delta (rechazando con ErrConflict si un contador quedaría en
// negativo), anota el movimiento, reevalúa la alerta y confirma. Los fallos
// de serialización se reintentan un número acotado de veces.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var recorded *entity.Movement
	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		recorded, err = uc.recordOnce(ctx, input)
		if !errors.Is(err, domain.ErrConcurrency) {
			break
		}
		if uc.log != nil {
			uc.log.Debug().Str("stock_item_id", input.StockItemID).Int("attempt", attempt+1).
				Msg("fallo de serialización, reintentando movimiento")
		}
	}
	if err != nil {
		return nil, err
	}
	if uc.log != nil {
		uc.log.Info().Str("stock_item_id", recorded.StockItemID).Str("type", recorded.Type).
			Int("quantity", recorded.Quantity).Str("vendor", recorded.Vendor).
			Msg("movimiento registrado")
	}
	return recorded, nil
}

func (uc *RecordMovementUseCase) recordOnce(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	var recorded *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		item, err := itemRepo.GetForUpdate(input.StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		if err := domstock.Apply(item, input.Type, input.Quantity); err != nil {
			return err
		}
		now := time.Now()
		item.UpdatedAt = now
		if err := itemRepo.Update(item); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:           uuid.New().String(),
			StockItemID:  input.StockItemID,
			Type:         input.Type,
			Quantity:     input.Quantity,
			MovementDate: now,
			PlannedDate:  input.PlannedDate,
			ReturnDate:   input.ReturnDate,
			ContractID:   input.ContractID,
			Vendor:       input.Vendor,
			Comment:      input.Comment,
			CreatedAt:    now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if _, err := uc.monitor.Evaluate(alertRepo, item); err != nil {
			return err
		}
		recorded = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

// ListMovements lista movimientos por filtros, ordenados por fecha de
// movimiento descendente y truncados al límite.
func (uc *RecordMovementUseCase) ListMovements(filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultMovementLimit
	}
	if filter.Limit > MaxMovementLimit {
		filter.Limit = MaxMovementLimit
	}
	return uc.movRepo.List(filter)
}

// RebuildItemCounters reconstruye OnHand y Reserved de un artículo replegando
// su libro de movimientos completo, dentro de una transacción con la fila
// bloqueada. Herramienta administrativa: el libro es la fuente de verdad y el
// registro debe poder derivarse de él en cualquier momento.
func (uc *RecordMovementUseCase) RebuildItemCounters(ctx context.Context, stockItemID string) (*entity.StockItem, error) {
	var rebuilt *entity.StockItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		item, err := itemRepo.GetForUpdate(stockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		sums, err := movRepo.SumByItem(stockItemID)
		if err != nil {
			return err
		}
		item.QuantityOnHand = sums.OnHand
		item.QuantityReserved = sums.Reserved
		item.RecomputeAvailable()
		item.UpdatedAt = time.Now()
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		if _, err := uc.monitor.Evaluate(alertRepo, item); err != nil {
			return err
		}
		rebuilt = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rebuilt, nil
}
