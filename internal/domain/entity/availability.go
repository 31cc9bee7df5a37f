package entity

import "time"

// ReservationWindow es una reserva que contribuye al cálculo de disponibilidad
// en una fecha (trazabilidad del resultado).
type ReservationWindow struct {
	ContractID  string
	PlannedDate time.Time
	ReturnDate  time.Time
	Quantity    int
}

// Availability es el resultado de la consulta "¿cuántas unidades quedan libres
// en la fecha D?". Usa el OnHand actual del artículo, no un snapshot histórico.
type Availability struct {
	StockItemID     string
	Reference       string
	Size            string
	TargetDate      time.Time
	QuantityOnHand  int
	ReservedAtDate  int
	AvailableAtDate int
	Reservations    []ReservationWindow
}
