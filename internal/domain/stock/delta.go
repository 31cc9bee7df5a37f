package stock

import (
	"github.com/jhoicas/Alquiler-stock-api/internal/domain"
	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
)

// Target identifica el contador del artículo sobre el que actúa un movimiento.
type Target int

const (
	TargetOnHand   Target = iota // QuantityOnHand
	TargetReserved               // QuantityReserved
)

// Delta es el efecto de un tipo de movimiento: contador objetivo y signo.
type Delta struct {
	Target Target
	Sign   int // +1 o -1
}

// DeltaFor mapea cada tipo de movimiento a su delta. El mapeo es exhaustivo:
// un tipo no reconocido devuelve ok=false y debe rechazarse antes de escribir
// en el libro.
func DeltaFor(movementType string) (Delta, bool) {
	switch movementType {
	case entity.MovementIN:
		return Delta{Target: TargetOnHand, Sign: +1}, true
	case entity.MovementOUT, entity.MovementDESTROY, entity.MovementLOSS:
		return Delta{Target: TargetOnHand, Sign: -1}, true
	case entity.MovementRESERVE:
		return Delta{Target: TargetReserved, Sign: +1}, true
	case entity.MovementRETURN, entity.MovementCANCEL:
		return Delta{Target: TargetReserved, Sign: -1}, true
	}
	return Delta{}, false
}

// Apply aplica el delta de un movimiento sobre los contadores del artículo y
// recalcula el disponible. Rechaza con ErrInvalidInput un tipo desconocido o
// cantidad no positiva, y con ErrConflict un movimiento que dejaría OnHand o
// Reserved en negativo; en caso de error no muta el artículo.
func Apply(item *entity.StockItem, movementType string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	delta, ok := DeltaFor(movementType)
	if !ok {
		return domain.ErrInvalidInput
	}
	switch delta.Target {
	case TargetOnHand:
		next := item.QuantityOnHand + delta.Sign*quantity
		if next < 0 {
			return domain.ErrConflict
		}
		item.QuantityOnHand = next
	case TargetReserved:
		next := item.QuantityReserved + delta.Sign*quantity
		if next < 0 {
			return domain.ErrConflict
		}
		item.QuantityReserved = next
	}
	item.RecomputeAvailable()
	return nil
}
