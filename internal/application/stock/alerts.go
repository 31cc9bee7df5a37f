package stock

import (
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
)

// AlertUseCase consulta de alertas activas. Antes de listar reevalúa todos
// los artículos para que el resultado refleje las cantidades actuales.
type AlertUseCase struct {
	itemRepo  repository.StockItemRepository
	alertRepo repository.AlertRepository
	monitor   *AlertMonitor
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(itemRepo repository.StockItemRepository, alertRepo repository.AlertRepository, monitor *AlertMonitor) *AlertUseCase {
	return &AlertUseCase{itemRepo: itemRepo, alertRepo: alertRepo, monitor: monitor}
}

// ListActive devuelve las alertas con active = true.
func (uc *AlertUseCase) ListActive() ([]*entity.Alert, error) {
	items, err := uc.itemRepo.List(repository.StockItemFilter{})
	if err != nil {
		return nil, err
	}
	if _, err := uc.monitor.EvaluateAll(uc.alertRepo, items); err != nil {
		return nil, err
	}
	return uc.alertRepo.ListActive()
}
