package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanRequest alta o edición completa de un plan de membresía.
type PlanRequest struct {
	Name         string          `json:"name" validate:"required,max=100"`
	PriceUSD     decimal.Decimal `json:"price_usd"`
	DurationDays int             `json:"duration_days" validate:"required,min=1"`
	Description  string          `json:"description" validate:"max=500"`
	Active       *bool           `json:"active,omitempty"`
}

// PlanResponse salida de un plan.
type PlanResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	PriceUSD     decimal.Decimal `json:"price_usd"`
	DurationDays int             `json:"duration_days"`
	Description  string          `json:"description"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
