package entity

import "time"

// Alert es el registro de alerta de stock bajo de un artículo. A lo sumo una
// alerta activa por artículo; al recuperarse el stock pasa a inactiva (nunca
// se borra) y una nueva detección crea un registro nuevo.
type Alert struct {
	ID                  string
	StockItemID         string
	Reference           string // snapshot al momento de la detección
	Size                string
	QuantityAtDetection int
	Threshold           int
	Message             string
	Active              bool
	DetectedAt          time.Time
}
