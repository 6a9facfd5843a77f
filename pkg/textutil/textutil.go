// Package textutil normaliza texto para búsquedas y formatea montos para documentos.
package textutil

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchKey devuelve la clave de búsqueda: minúsculas, sin acentos y con espacios colapsados.
// "José  Pérez" -> "jose perez".
func SearchKey(parts ...string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	joined := strings.Join(parts, " ")
	out, _, err := transform.String(t, joined)
	if err != nil {
		out = joined
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

var printer = message.NewPrinter(language.Spanish)

// Number formatea con las convenciones del español: decimal "," y miles "." (2 decimales).
func Number(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}

// Bs formatea un monto en bolívares: "Bs. 12.345,50".
func Bs(d decimal.Decimal) string {
	return "Bs. " + Number(d)
}

// USD formatea un monto en dólares: "$ 12.345,50".
func USD(d decimal.Decimal) string {
	return "$ " + Number(d)
}

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName nombre del mes en español ("Febrero").
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}
