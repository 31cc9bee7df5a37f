package stock

import "time"

// DateOnly trunca un instante al día (medianoche UTC). Las ventanas de reserva
// se razonan con granularidad de día.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WindowCovers indica si target cae dentro de [planned, ret], inclusivo en
// ambos extremos: la reserva cubre su propio día de recogida y de devolución.
func WindowCovers(planned, ret, target time.Time) bool {
	p := DateOnly(planned)
	r := DateOnly(ret)
	d := DateOnly(target)
	return !d.Before(p) && !d.After(r)
}
