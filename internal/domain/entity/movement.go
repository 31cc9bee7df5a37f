package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementIN      = "IN"      // entrada de inventario
	MovementOUT     = "OUT"     // salida definitiva
	MovementRESERVE = "RESERVE" // reserva por contrato de alquiler
	MovementRETURN  = "RETURN"  // devolución de una reserva
	MovementCANCEL  = "CANCEL"  // anulación de una reserva
	MovementDESTROY = "DESTROY" // prenda dada de baja
	MovementLOSS    = "LOSS"    // pérdida
)

// Movement es un evento inmutable del libro de movimientos. Se crea una sola
// vez y nunca se actualiza ni se borra: es la pista de auditoría desde la que
// los contadores del artículo deben poder reconstruirse.
type Movement struct {
	ID           string
	StockItemID  string
	Type         string
	Quantity     int // siempre positivo; el signo lo determina Type
	MovementDate time.Time
	PlannedDate  *time.Time // inicio de la ventana de reserva (solo RESERVE)
	ReturnDate   *time.Time // fin de la ventana de reserva (solo RESERVE)
	ContractID   string     // contrato externo que originó el movimiento
	Vendor       string     // operador que lo registró
	Comment      string
	CreatedAt    time.Time
}

// HasWindow indica si el movimiento tiene ventana de reserva completa.
// Una RESERVE sin ventana solo afecta al reservado en tiempo real, no a las
// consultas de disponibilidad por fecha.
func (m *Movement) HasWindow() bool {
	return m.PlannedDate != nil && m.ReturnDate != nil
}
