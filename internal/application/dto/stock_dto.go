package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain/entity"
)

// CreateStockItemRequest body para POST /api/stock/items.
type CreateStockItemRequest struct {
	Category       string           `json:"category"`
	SubCategory    string           `json:"sub_category,omitempty"`
	Reference      string           `json:"reference"`
	Size           string           `json:"size"`
	Color          string           `json:"color,omitempty"`
	RentalPrice    *decimal.Decimal `json:"rental_price,omitempty"`
	QuantityOnHand int              `json:"quantity_on_hand"`
	AlertThreshold *int             `json:"alert_threshold,omitempty"`
}

// UpdateStockItemRequest body para PATCH /api/stock/items/:id. Campos en nil
// no se tocan.
type UpdateStockItemRequest struct {
	Category         *string          `json:"category,omitempty"`
	SubCategory      *string          `json:"sub_category,omitempty"`
	Reference        *string          `json:"reference,omitempty"`
	Size             *string          `json:"size,omitempty"`
	Color            *string          `json:"color,omitempty"`
	RentalPrice      *decimal.Decimal `json:"rental_price,omitempty"`
	QuantityOnHand   *int             `json:"quantity_on_hand,omitempty"`
	QuantityReserved *int             `json:"quantity_reserved,omitempty"`
	AlertThreshold   *int             `json:"alert_threshold,omitempty"`
}

// StockItemResponse representación de un artículo en la API.
type StockItemResponse struct {
	ID                string          `json:"id"`
	Category          string          `json:"category"`
	SubCategory       string          `json:"sub_category,omitempty"`
	Reference         string          `json:"reference"`
	Size              string          `json:"size"`
	Color             string          `json:"color,omitempty"`
	RentalPrice       decimal.Decimal `json:"rental_price"`
	QuantityOnHand    int             `json:"quantity_on_hand"`
	QuantityReserved  int             `json:"quantity_reserved"`
	QuantityAvailable int             `json:"quantity_available"`
	AlertThreshold    int             `json:"alert_threshold"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// FromStockItem mapea la entidad al DTO de respuesta.
func FromStockItem(s *entity.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:                s.ID,
		Category:          s.Category,
		SubCategory:       s.SubCategory,
		Reference:         s.Reference,
		Size:              s.Size,
		Color:             s.Color,
		RentalPrice:       s.RentalPrice,
		QuantityOnHand:    s.QuantityOnHand,
		QuantityReserved:  s.QuantityReserved,
		QuantityAvailable: s.QuantityAvailable,
		AlertThreshold:    s.AlertThreshold,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// RegisterMovementRequest body para POST /api/stock/movements.
// Las fechas de ventana van en formato YYYY-MM-DD.
type RegisterMovementRequest struct {
	StockItemID string `json:"stock_item_id"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	PlannedDate string `json:"planned_date,omitempty"`
	ReturnDate  string `json:"return_date,omitempty"`
	ContractID  string `json:"contract_id,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

// MovementResponse representación de un movimiento en la API.
type MovementResponse struct {
	ID           string     `json:"id"`
	StockItemID  string     `json:"stock_item_id"`
	Type         string     `json:"type"`
	Quantity     int        `json:"quantity"`
	MovementDate time.Time  `json:"movement_date"`
	PlannedDate  *time.Time `json:"planned_date,omitempty"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
	ContractID   string     `json:"contract_id,omitempty"`
	Vendor       string     `json:"vendor"`
	Comment      string     `json:"comment,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// FromMovement mapea la entidad al DTO de respuesta.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		StockItemID:  m.StockItemID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		MovementDate: m.MovementDate,
		PlannedDate:  m.PlannedDate,
		ReturnDate:   m.ReturnDate,
		ContractID:   m.ContractID,
		Vendor:       m.Vendor,
		Comment:      m.Comment,
		CreatedAt:    m.CreatedAt,
	}
}

// ReservationWindowDTO reserva que contribuye a una disponibilidad.
type ReservationWindowDTO struct {
	ContractID  string    `json:"contract_id,omitempty"`
	PlannedDate time.Time `json:"planned_date"`
	ReturnDate  time.Time `json:"return_date"`
	Quantity    int       `json:"quantity"`
}

// AvailabilityResponse disponibilidad de un artículo en una fecha.
type AvailabilityResponse struct {
	StockItemID     string                 `json:"stock_item_id"`
	Reference       string                 `json:"reference"`
	Size            string                 `json:"size"`
	TargetDate      string                 `json:"target_date"`
	QuantityOnHand  int                    `json:"quantity_on_hand"`
	ReservedAtDate  int                    `json:"reserved_at_date"`
	AvailableAtDate int                    `json:"available_at_date"`
	Reservations    []ReservationWindowDTO `json:"reservations"`
}

// FromAvailability mapea la entidad al DTO de respuesta.
func FromAvailability(a *entity.Availability) AvailabilityResponse {
	out := AvailabilityResponse{
		StockItemID:     a.StockItemID,
		Reference:       a.Reference,
		Size:            a.Size,
		TargetDate:      a.TargetDate.Format("2006-01-02"),
		QuantityOnHand:  a.QuantityOnHand,
		ReservedAtDate:  a.ReservedAtDate,
		AvailableAtDate: a.AvailableAtDate,
		Reservations:    make([]ReservationWindowDTO, 0, len(a.Reservations)),
	}
	for _, r := range a.Reservations {
		out.Reservations = append(out.Reservations, ReservationWindowDTO{
			ContractID:  r.ContractID,
			PlannedDate: r.PlannedDate,
			ReturnDate:  r.ReturnDate,
			Quantity:    r.Quantity,
		})
	}
	return out
}

// AlertResponse representación de una alerta en la API.
type AlertResponse struct {
	ID                  string    `json:"id"`
	StockItemID         string    `json:"stock_item_id"`
	Reference           string    `json:"reference"`
	Size                string    `json:"size"`
	QuantityAtDetection int       `json:"quantity_at_detection"`
	Threshold           int       `json:"threshold"`
	Message             string    `json:"message"`
	Active              bool      `json:"active"`
	DetectedAt          time.Time `json:"detected_at"`
}

// FromAlert mapea la entidad al DTO de respuesta.
func FromAlert(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:                  a.ID,
		StockItemID:         a.StockItemID,
		Reference:           a.Reference,
		Size:                a.Size,
		QuantityAtDetection: a.QuantityAtDetection,
		Threshold:           a.Threshold,
		Message:             a.Message,
		Active:              a.Active,
		DetectedAt:          a.DetectedAt,
	}
}
