// Package membership concentra las reglas de vencimiento de membresías.
// Todas las fechas son fechas calendario: se normalizan a medianoche UTC.
package membership

import "time"

// Estados de membresía de un cliente.
const (
	StatusActive   = "activo"
	StatusExpiring = "por_vencer"
	StatusExpired  = "vencido"
)

// MonthlyDays duración que se interpreta como un mes calendario.
const MonthlyDays = 30

// DefaultExpiringDays días de anticipación para "por vencer".
const DefaultExpiringDays = 5

// Date trunca t a su fecha calendario (en la zona de t) y la devuelve a medianoche UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeExpiry fecha de vencimiento a partir del inicio y la duración del plan.
// 30 días = mismo día del mes siguiente, ajustado al último día si ese mes es más corto
// (31 ene -> 28/29 feb). Cualquier otra duración suma días calendario.
func ComputeExpiry(start time.Time, durationDays int) time.Time {
	start = Date(start)
	if durationDays == MonthlyDays {
		return addMonthClamped(start, 1)
	}
	return start.AddDate(0, 0, durationDays)
}

func addMonthClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DaysRemaining días desde hoy hasta el vencimiento (negativo si ya venció).
func DaysRemaining(expiry, today time.Time) int {
	return int(Date(expiry).Sub(Date(today)).Hours() / 24)
}

// StatusAt estado de la membresía en la fecha today. El día de vencimiento aún es válido.
func StatusAt(expiry, today time.Time, expiringDays int) string {
	left := DaysRemaining(expiry, today)
	switch {
	case left < 0:
		return StatusExpired
	case left <= expiringDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}

// RenewalStart inicio del nuevo período: max(hoy, vencimiento actual), así las
// renovaciones anticipadas se acumulan.
func RenewalStart(currentExpiry, today time.Time) time.Time {
	exp, t := Date(currentExpiry), Date(today)
	if exp.After(t) {
		return exp
	}
	return t
}

// ExpiryRange rango [desde, hasta] de fechas de vencimiento que corresponde a un estado.
// Un puntero nil indica extremo abierto.
func ExpiryRange(status string, today time.Time, expiringDays int) (from, to *time.Time, ok bool) {
	t := Date(today)
	switch status {
	case StatusExpired:
		end := t.AddDate(0, 0, -1)
		return nil, &end, true
	case StatusExpiring:
		end := t.AddDate(0, 0, expiringDays)
		return &t, &end, true
	case StatusActive:
		start := t.AddDate(0, 0, expiringDays+1)
		return &start, nil, true
	}
	return nil, nil, false
}
