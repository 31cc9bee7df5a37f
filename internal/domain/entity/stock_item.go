package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de prenda de ceremonia.
const (
	CategoryJacket    = "jacket"    // chaqué, frac, esmoquin
	CategoryVest      = "vest"      // chaleco
	CategoryTrouser   = "trouser"   // pantalón
	CategoryAccessory = "accessory" // corbata, fajín, gemelos...
)

// ValidCategory verifica que la categoría sea una de las reconocidas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryJacket, CategoryVest, CategoryTrouser, CategoryAccessory:
		return true
	}
	return false
}

// CategoryRequiresSubCategory indica si la categoría exige subcategoría (corte/modelo).
func CategoryRequiresSubCategory(c string) bool {
	return c == CategoryJacket || c == CategoryVest
}

// StockItem representa un artículo rastreable: combinación única de referencia,
// talla y color. Las cantidades se mutan exclusivamente aplicando movimientos.
type StockItem struct {
	ID                string
	Category          string // jacket, vest, trouser, accessory
	SubCategory       string // obligatoria para jacket y vest
	Reference         string // nombre de catálogo (ej. "Chaqué Clásico")
	Size              string
	Color             string
	RentalPrice       decimal.Decimal // precio de alquiler por evento
	QuantityOnHand    int
	QuantityReserved  int
	QuantityAvailable int // siempre derivado: OnHand - Reserved
	AlertThreshold    int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RecomputeAvailable recalcula la cantidad disponible. Debe invocarse tras
// cada mutación de OnHand o Reserved; Available nunca es fuente de verdad.
func (s *StockItem) RecomputeAvailable() {
	s.QuantityAvailable = s.QuantityOnHand - s.QuantityReserved
}

// ShouldAlert indica si el disponible está en o por debajo del umbral.
func (s *StockItem) ShouldAlert() bool {
	return s.QuantityAvailable <= s.AlertThreshold
}
