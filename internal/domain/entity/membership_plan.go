package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipPlan plan de membresía (mensual, trimestral, etc.).
// DurationDays == 30 se interpreta como "un mes calendario".
type MembershipPlan struct {
	ID           int64
	Name         string
	PriceUSD     decimal.Decimal
	DurationDays int
	Description  string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
