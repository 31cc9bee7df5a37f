package stock

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
	"github.com/jhoicas/Alquiler-stock-api/pkg/logger"
)

// AlertTransition resultado de evaluar un artículo contra su umbral.
type AlertTransition int

const (
	TransitionNone        AlertTransition = iota // sin cambio (idempotente)
	TransitionActivated                          // inactiva -> activa
	TransitionDeactivated                        // activa -> inactiva
)

// AlertMonitor mantiene la máquina de estados {inactiva, activa} de la alerta
// de stock bajo de cada artículo. Recibe el repositorio en cada llamada para
// poder operar dentro de la transacción del caller.
type AlertMonitor struct {
	log *logger.Logger
}

// NewAlertMonitor construye el monitor.
func NewAlertMonitor(log *logger.Logger) *AlertMonitor {
	return &AlertMonitor{log: log}
}

// Evaluate compara el disponible del artículo con su umbral y transiciona la
// alerta si corresponde. Es idempotente: evaluar dos veces sin movimientos de
// por medio no produce transiciones ni alertas duplicadas.
func (m *AlertMonitor) Evaluate(alertRepo repository.AlertRepository, item *entity.StockItem) (AlertTransition, error) {
	active, err := alertRepo.GetActiveByItem(item.ID)
	if err != nil {
		return TransitionNone, err
	}

	shouldAlert := item.ShouldAlert()
	switch {
	case shouldAlert && active == nil:
		alert := &entity.Alert{
			ID:                  uuid.New().String(),
			StockItemID:         item.ID,
			Reference:           item.Reference,
			Size:                item.Size,
			QuantityAtDetection: item.QuantityAvailable,
			Threshold:           item.AlertThreshold,
			Message: fmt.Sprintf("Stock bajo: %s talla %s, disponible %d (umbral %d)",
				item.Reference, item.Size, item.QuantityAvailable, item.AlertThreshold),
			Active:     true,
			DetectedAt: time.Now(),
		}
		if err := alertRepo.Create(alert); err != nil {
			return TransitionNone, err
		}
		if m.log != nil {
			m.log.Warn().Str("stock_item_id", item.ID).Str("reference", item.Reference).
				Int("available", item.QuantityAvailable).Int("threshold", item.AlertThreshold).
				Msg("alerta de stock bajo activada")
		}
		return TransitionActivated, nil

	case !shouldAlert && active != nil:
		if err := alertRepo.Deactivate(active.ID); err != nil {
			return TransitionNone, err
		}
		if m.log != nil {
			m.log.Info().Str("stock_item_id", item.ID).Str("reference", item.Reference).
				Int("available", item.QuantityAvailable).
				Msg("alerta de stock bajo desactivada")
		}
		return TransitionDeactivated, nil
	}
	return TransitionNone, nil
}

// EvaluateAll evalúa una lista de artículos; se invoca tras cada listado para
// que el estado de alertas nunca se desvíe de las cantidades actuales.
func (m *AlertMonitor) EvaluateAll(alertRepo repository.AlertRepository, items []*entity.StockItem) ([]AlertTransition, error) {
	transitions := make([]AlertTransition, 0, len(items))
	for _, item := range items {
		tr, err := m.Evaluate(alertRepo, item)
		if err != nil {
			return transitions, err
		}
		transitions = append(transitions, tr)
	}
	return transitions, nil
}
