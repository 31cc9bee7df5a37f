package stock

import (
	"time"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
)

// AvailabilityUseCase responde consultas de disponibilidad a fecha futura
// resolviendo las ventanas de reserva del libro. Solo lectura: no muta ni el
// registro ni el libro.
type AvailabilityUseCase struct {
	itemRepo repository.StockItemRepository
	movRepo  repository.MovementRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(itemRepo repository.StockItemRepository, movRepo repository.MovementRepository) *AvailabilityUseCase {
	return &AvailabilityUseCase{itemRepo: itemRepo, movRepo: movRepo}
}

// ComputeAvailabilityAtDate calcula las unidades libres de un artículo en la
// fecha objetivo: OnHand actual menos la suma de las RESERVE cuya ventana
// [planned, return] cubre la fecha (inclusivo en ambos extremos). Las RESERVE
// sin ventana completa no entran en el cálculo por fecha: su efecto solo se ve
// en el reservado en tiempo real.
func (uc *AvailabilityUseCase) ComputeAvailabilityAtDate(stockItemID string, target time.Time) (*entity.Availability, error) {
	item, err := uc.itemRepo.GetByID(stockItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.computeForItem(item, target)
}

// GetAvailabilityAtDate aplica el cálculo a cada artículo que cumpla los
// filtros de categoría/referencia/talla.
func (uc *AvailabilityUseCase) GetAvailabilityAtDate(filter repository.StockItemFilter, target time.Time) ([]*entity.Availability, error) {
	items, err := uc.itemRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Availability, 0, len(items))
	for _, item := range items {
		av, err := uc.computeForItem(item, target)
		if err != nil {
			return nil, err
		}
		out = append(out, av)
	}
	return out, nil
}

func (uc *AvailabilityUseCase) computeForItem(item *entity.StockItem, target time.Time) (*entity.Availability, error) {
	reservations, err := uc.movRepo.ListReservationsCovering(item.ID, target)
	if err != nil {
		return nil, err
	}

	av := &entity.Availability{
		StockItemID:    item.ID,
		Reference:      item.Reference,
		Size:           item.Size,
		TargetDate:     target,
		QuantityOnHand: item.QuantityOnHand,
		Reservations:   make([]entity.ReservationWindow, 0, len(reservations)),
	}
	for _, r := range reservations {
		av.ReservedAtDate += r.Quantity
		av.Reservations = append(av.Reservations, entity.ReservationWindow{
			ContractID:  r.ContractID,
			PlannedDate: *r.PlannedDate,
			ReturnDate:  *r.ReturnDate,
			Quantity:    r.Quantity,
		})
	}
	av.AvailableAtDate = av.QuantityOnHand - av.ReservedAtDate
	return av, nil
}
