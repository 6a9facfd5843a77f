package dto

import "time"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// LocalDayRange convierte fechas calendario [from, to] (inclusivas) en el rango
// [inicio de from, inicio del día siguiente a to) en la zona loc. nil = extremo abierto.
func LocalDayRange(from, to *time.Time, loc *time.Location) (*time.Time, *time.Time) {
	var start, end *time.Time
	if from != nil {
		s := startOfDay(*from, loc)
		start = &s
	}
	if to != nil {
		e := startOfDay(*to, loc).AddDate(0, 0, 1)
		end = &e
	}
	return start, end
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
