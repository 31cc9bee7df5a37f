package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jhoicas/Alquiler-stock-api/internal/application/stock"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Monitor de alertas: máquina de estados {inactiva, activa} por artículo, a lo
// sumo una alerta activa, transiciones solo vía Evaluate.
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: OnHand=15, umbral=5; RESERVE 11 deja disponible 4 y activa la
// alerta; RETURN 11 recupera 15 y la desactiva.
func TestAlertas_EscenarioCompleto(t *testing.T) {
	e := newEngine()
	item := mustCreateItem(t, e, 15, 5)
	ctx := context.Background()

	_, err := e.ledger.RecordMovement(ctx, recordInput(item.ID, entity.MovementRESERVE, 11))
	require.NoError(t, err)

	got, _ := e.items.GetByID(item.ID)
	assert.Equal(t, 4, got.QuantityAvailable)

	active, err := e.alerts.GetActiveByItem(item.ID)
	require.NoError(t, err)
	require.NotNil(t, active, "disponible 4 <= umbral 5 debe activar alerta")
	assert.Equal(t, 4, active.QuantityAtDetection)
	assert.Equal(t, 5, active.Threshold)
	assert.Equal(t, item.Reference, active.Reference)

	_, err = e.ledger.RecordMovement(ctx, recordInput(item.ID, entity.MovementRETURN, 11))
	require.NoError(t, err)

	active, err = e.alerts.GetActiveByItem(item.ID)
	require.NoError(t, err)
	assert.Nil(t, active, "al recuperar el stock la alerta debe quedar inactiva")
	assert.Len(t, e.alerts.alerts, 1, "la alerta se desactiva, no se borra")
}

// La redetección tras una recuperación crea un registro nuevo en lugar de
// reutilizar el anterior.
func TestAlertas_RedeteccionCreaRegistroNuevo(t *testing.T) {
	e := newEngine()
	item := mustCreateItem(t, e, 15, 5)
	ctx := context.Background()

	_, err := e.ledger.RecordMovement(ctx, recordInput(item.ID, entity.MovementRESERVE, 11))
	require.NoError(t, err)
	_, err = e.ledger.RecordMovement(ctx, recordInput(item.ID, entity.MovementRETURN, 11))
	require.NoError(t, err)
	_, err = e.ledger.RecordMovement(ctx, recordInput(item.ID, entity.MovementRESERVE, 12))
	require.NoError(t, err)

	assert.Len(t, e.alerts.alerts, 2, "dos detecciones, dos registros")
	active, _ := e.alerts.GetActiveByItem(item.ID)
	require.NotNil(t, active)
	assert.Equal(t, 3, active.QuantityAtDetection)
}

// Idempotencia: evaluar dos veces seguidas sin movimientos de por medio no
// produce alertas duplicadas ni transiciones espurias.
func TestEvaluateAll_Idempotente(t *testing.T) {
	e := newEngine()
	low := mustCreateItem(t, e, 3, 5) // ya por debajo del umbral al alta
	ok, err := e.registry.CreateItem(appstock.CreateItemInput{
		Category:       entity.CategoryTrouser,
		Reference:      "Pantalón Esmoquin",
		Size:           "50",
		QuantityOnHand: 30,
	})
	require.NoError(t, err)

	items, err := e.items.List(repository.StockItemFilter{})
	require.NoError(t, err)

	first, err := e.monitor.EvaluateAll(e.alerts, items)
	require.NoError(t, err)
	second, err := e.monitor.EvaluateAll(e.alerts, items)
	require.NoError(t, err)

	for _, tr := range second {
		assert.Equal(t, appstock.TransitionNone, tr, "la segunda pasada no debe transicionar nada")
	}
	_ = first

	actives, err := e.alerts.ListActive()
	require.NoError(t, err)
	require.Len(t, actives, 1, "una sola alerta activa, sin duplicados")
	assert.Equal(t, low.ID, actives[0].StockItemID)

	okActive, _ := e.alerts.GetActiveByItem(ok.ID)
	assert.Nil(t, okActive)
}

// Disponible exactamente igual al umbral también alerta (<=).
func TestEvaluate_UmbralInclusivo(t *testing.T) {
	e := newEngine()
	item := mustCreateItem(t, e, 5, 5)

	active, err := e.alerts.GetActiveByItem(item.ID)
	require.NoError(t, err)
	assert.NotNil(t, active, "disponible == umbral debe alertar")
}

func TestAlertUseCase_ListActiveReevalua(t *testing.T) {
	e := newEngine()
	item := mustCreateItem(t, e, 15, 5)
	ctx := context.Background()

	_, err := e.ledger.RecordMovement(ctx, recordInput(item.ID, entity.MovementRESERVE, 11))
	require.NoError(t, err)

	// Desajuste directo: alguien repone stock vía update administrativo.
	_, err = e.registry.UpdateItem(ctx, item.ID, appstock.UpdateItemInput{QuantityOnHand: intPtr(40)})
	require.NoError(t, err)

	actives, err := e.alertsUC.ListActive()
	require.NoError(t, err)
	assert.Empty(t, actives, "el listado reevalúa y no muestra alertas desfasadas")
}
