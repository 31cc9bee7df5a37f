package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jhoicas/Alquiler-stock-api/internal/application/stock"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
)

func reserve(t *testing.T, e *engine, itemID string, qty int, planned, ret string) {
	t.Helper()
	in := recordInput(itemID, entity.MovementRESERVE, qty)
	in.PlannedDate = datePtr(planned)
	in.ReturnDate = datePtr(ret)
	in.ContractID = "CT-" + planned
	_, err := e.ledger.RecordMovement(context.Background(), in)
	require.NoError(t, err)
}

// Escenario B: OnHand=10, reservas de 3 en [D1,D5] y 3 en [D3,D8]; en D4 se
// solapan: reservado 6, disponible 4.
func TestComputeAvailability_VentanasSolapadas(t *testing.T) {
	e := newEngine()
	item := mustCreateItem(t, e, 10, 0)

	reserve(t, e, item.ID, 3, "2026-06-01", "2026-06-05")
	reserve(t, e, item.ID, 3, "2026-06-03", "2026-06-08")

	av, err := e.availability.ComputeAvailabilityAtDate(item.ID, *datePtr("2026-06-04"))
	require.NoError(t, err)
	assert.Equal(t, 10, av.QuantityOnHand)
	assert.Equal(t, 6, av.ReservedAtDate)
	assert.Equal(t, 4, av.AvailableAtDate)
	require.Len(t, av.Reservations, 2, "las reservas contribuyentes van en el resultado")
	assert.Equal(t, "CT-2026-06-01", av.Reservations[0].ContractID)
}

// Frontera: la ventana [D1, D2] incluye exactamente D1 y D2 y excluye el día
// anterior y el posterior.
func TestComputeAvailability_FronterasInclusivas(t *testing.T) {
	e := newEngine()
	item := mustCreateItem(t, e, 10, 0)
	reserve(t, e, item.ID, 2, "2026-06-10", "2026-06-15")

	cases := []struct {
		date     string
		reserved int
	}{
		{"2026-06-09", 0},
		{"2026-06-10", 2},
		{"2026-06-12", 2},
		{"2026-06-15", 2},
		{"2026-06-16", 0},
	}
	for _, tc := range cases {
		av, err := e.availability.ComputeAvailabilityAtDate(item.ID, *datePtr(tc.date))
		require.NoError(t, err)
		assert.Equal(t, tc.reserved, av.ReservedAtDate, "fecha %s", tc.date)
		assert.Equal(t, 10-tc.reserved, av.AvailableAtDate, "fecha %s", tc.date)
	}
}

// Asimetría documentada: una RESERVE sin ventana pesa en el reservado en
// tiempo real pero no en la consulta por fecha.
func TestComputeAvailability_ReservaSinVentanaExcluida(t *testing.T) {
	e := newEngine()
	item := mustCreateItem(t, e, 10, 0)

	_, err := e.ledger.RecordMovement(context.Background(), recordInput(item.ID, entity.MovementRESERVE, 4))
	require.NoError(t, err)

	got, _ := e.items.GetByID(item.ID)
	assert.Equal(t, 4, got.QuantityReserved, "visible en tiempo real")

	av, err := e.availability.ComputeAvailabilityAtDate(item.ID, *datePtr("2026-06-04"))
	require.NoError(t, err)
	assert.Equal(t, 0, av.ReservedAtDate, "invisible en la consulta por fecha")
	assert.Equal(t, 10, av.AvailableAtDate)
}

// El cálculo usa el OnHand actual, no un snapshot histórico: un IN posterior
// a la reserva aumenta la disponibilidad futura.
func TestComputeAvailability_UsaOnHandActual(t *testing.T) {
	e := newEngine()
	item := mustCreateItem(t, e, 10, 0)
	reserve(t, e, item.ID, 3, "2026-06-01", "2026-06-05")

	_, err := e.ledger.RecordMovement(context.Background(), recordInput(item.ID, entity.MovementIN, 5))
	require.NoError(t, err)

	av, err := e.availability.ComputeAvailabilityAtDate(item.ID, *datePtr("2026-06-03"))
	require.NoError(t, err)
	assert.Equal(t, 15, av.QuantityOnHand)
	assert.Equal(t, 12, av.AvailableAtDate)
}

func TestComputeAvailability_Inexistente(t *testing.T) {
	e := newEngine()
	_, err := e.availability.ComputeAvailabilityAtDate("no-existe", *datePtr("2026-06-03"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// GetAvailabilityAtDate aplica el cálculo a cada artículo del filtro.
func TestGetAvailability_ConFiltros(t *testing.T) {
	e := newEngine()
	jacket := mustCreateItem(t, e, 10, 0)
	reserve(t, e, jacket.ID, 3, "2026-06-01", "2026-06-05")

	_, err := e.registry.CreateItem(appstock.CreateItemInput{
		Category:       entity.CategoryTrouser,
		Reference:      "Pantalón Esmoquin",
		Size:           "50",
		QuantityOnHand: 8,
	})
	require.NoError(t, err)

	all, err := e.availability.GetAvailabilityAtDate(repository.StockItemFilter{}, *datePtr("2026-06-03"))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	jackets, err := e.availability.GetAvailabilityAtDate(repository.StockItemFilter{Category: entity.CategoryJacket}, *datePtr("2026-06-03"))
	require.NoError(t, err)
	require.Len(t, jackets, 1)
	assert.Equal(t, jacket.ID, jackets[0].StockItemID)
	assert.Equal(t, 7, jackets[0].AvailableAtDate)
}
