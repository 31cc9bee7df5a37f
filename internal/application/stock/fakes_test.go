package stock_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appstock "github.com/jhoicas/Alquiler-stock-api/internal/application/stock"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/repository"
	domstock "github.com/jhoicas/Alquiler-stock-api/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Devuelven copias, como
// haría una fila leída de la BD, para que una mutación descartada no se
// filtre al "almacén".
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.StockItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.StockItem)}
}

func cloneItem(item *entity.StockItem) *entity.StockItem {
	c := *item
	return &c
}

func (r *fakeItemRepo) Create(item *entity.StockItem) error {
	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.StockItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneItem(item), nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) Update(item *entity.StockItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("update stock item %s: fila no encontrada", item.ID)
	}
	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *fakeItemRepo) List(filter repository.StockItemFilter) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	for _, item := range r.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Reference != "" && item.Reference != filter.Reference {
			continue
		}
		if filter.Size != "" && item.Size != filter.Size {
			continue
		}
		if filter.Search != "" {
			haystack := domstock.SearchText(item.Reference, item.Size, item.Color)
			if !strings.Contains(haystack, domstock.Normalize(filter.Search)) {
				continue
			}
		}
		list = append(list, cloneItem(item))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Reference != list[j].Reference {
			return list[i].Reference < list[j].Reference
		}
		return list[i].Size < list[j].Size
	})
	return list, nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	c := *m
	r.movements = append(r.movements, &c)
	return nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.movements {
		if filter.StockItemID != "" && m.StockItemID != filter.StockItemID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.DateStart != nil && m.MovementDate.Before(*filter.DateStart) {
			continue
		}
		if filter.DateEnd != nil && m.MovementDate.After(*filter.DateEnd) {
			continue
		}
		c := *m
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MovementDate.After(list[j].MovementDate) })
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	return list, nil
}

func (r *fakeMovementRepo) ListReservationsCovering(stockItemID string, target time.Time) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.movements {
		if m.StockItemID != stockItemID || m.Type != entity.MovementRESERVE || !m.HasWindow() {
			continue
		}
		if domstock.WindowCovers(*m.PlannedDate, *m.ReturnDate, target) {
			c := *m
			list = append(list, &c)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) SumByItem(stockItemID string) (repository.CounterSums, error) {
	var sums repository.CounterSums
	for _, m := range r.movements {
		if m.StockItemID != stockItemID {
			continue
		}
		delta, ok := domstock.DeltaFor(m.Type)
		if !ok {
			continue
		}
		switch delta.Target {
		case domstock.TargetOnHand:
			sums.OnHand += delta.Sign * m.Quantity
		case domstock.TargetReserved:
			sums.Reserved += delta.Sign * m.Quantity
		}
	}
	return sums, nil
}

type fakeAlertRepo struct {
	alerts []*entity.Alert
	// beforeCreate permite a un test intercalar una activación concurrente
	// entre la lectura del monitor y el insert.
	beforeCreate func()
}

// Create replica el contrato del puerto: si el artículo ya tiene una alerta
// activa, no-op sin error (ON CONFLICT DO NOTHING en el adaptador real).
func (r *fakeAlertRepo) Create(a *entity.Alert) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	for _, existing := range r.alerts {
		if existing.StockItemID == a.StockItemID && existing.Active {
			return nil
		}
	}
	c := *a
	r.alerts = append(r.alerts, &c)
	return nil
}

func (r *fakeAlertRepo) GetActiveByItem(stockItemID string) (*entity.Alert, error) {
	for _, a := range r.alerts {
		if a.StockItemID == stockItemID && a.Active {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) Deactivate(id string) error {
	for _, a := range r.alerts {
		if a.ID == id {
			a.Active = false
			return nil
		}
	}
	return fmt.Errorf("deactivate alert %s: no encontrada", id)
}

func (r *fakeAlertRepo) ListActive() ([]*entity.Alert, error) {
	var list []*entity.Alert
	for _, a := range r.alerts {
		if a.Active {
			c := *a
			list = append(list, &c)
		}
	}
	return list, nil
}

// fakeTxRunner pasa los fakes directamente; con failConcurrency > 0 simula
// fallos de serialización antes de dejar pasar.
type fakeTxRunner struct {
	items           *fakeItemRepo
	movs            *fakeMovementRepo
	alerts          *fakeAlertRepo
	failConcurrency int
	runs            int
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.StockItemRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
) error) error {
	r.runs++
	if r.failConcurrency > 0 {
		r.failConcurrency--
		return domain.ErrConcurrency
	}
	return fn(r.items, r.movs, r.alerts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés: el motor completo cableado sobre los fakes.
// ──────────────────────────────────────────────────────────────────────────────

type engine struct {
	items        *fakeItemRepo
	movs         *fakeMovementRepo
	alerts       *fakeAlertRepo
	tx           *fakeTxRunner
	monitor      *appstock.AlertMonitor
	registry     *appstock.RegistryUseCase
	ledger       *appstock.RecordMovementUseCase
	availability *appstock.AvailabilityUseCase
	alertsUC     *appstock.AlertUseCase
}

func newEngine() *engine {
	items := newFakeItemRepo()
	movs := &fakeMovementRepo{}
	alerts := &fakeAlertRepo{}
	tx := &fakeTxRunner{items: items, movs: movs, alerts: alerts}
	monitor := appstock.NewAlertMonitor(nil)
	return &engine{
		items:        items,
		movs:         movs,
		alerts:       alerts,
		tx:           tx,
		monitor:      monitor,
		registry:     appstock.NewRegistryUseCase(tx, items, alerts, monitor),
		ledger:       appstock.NewRecordMovementUseCase(tx, movs, monitor, nil),
		availability: appstock.NewAvailabilityUseCase(items, movs),
		alertsUC:     appstock.NewAlertUseCase(items, alerts, monitor),
	}
}

func intPtr(n int) *int { return &n }

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// mustCreateItem alta de un artículo de prueba con los contadores dados.
func mustCreateItem(t *testing.T, e *engine, onHand, threshold int) *entity.StockItem {
	t.Helper()
	item, err := e.registry.CreateItem(appstock.CreateItemInput{
		Category:       entity.CategoryJacket,
		SubCategory:    "chaqué",
		Reference:      "Chaqué Clásico",
		Size:           "52",
		Color:          "gris marengo",
		QuantityOnHand: onHand,
		AlertThreshold: intPtr(threshold),
	})
	require.NoError(t, err)
	return item
}
