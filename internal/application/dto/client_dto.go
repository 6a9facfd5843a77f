package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest datos del pago de un período de membresía.
// AmountUSD nil = precio del plan.
type PaymentRequest struct {
	Method       string           `json:"payment_method" validate:"omitempty,oneof=efectivo_bs efectivo_usd punto_de_venta pago_movil transferencia zelle"`
	AmountUSD    *decimal.Decimal `json:"amount_usd,omitempty"`
	ExchangeRate decimal.Decimal  `json:"exchange_rate"`
	Reference    string           `json:"payment_reference" validate:"max=100"`
}

// CreateClientRequest inscripción de un cliente nuevo.
type CreateClientRequest struct {
	Cedula           string         `json:"cedula" validate:"required,max=20"`
	FirstName        string         `json:"first_name" validate:"required,max=100"`
	LastName         string         `json:"last_name" validate:"max=100"`
	Phone            string         `json:"phone" validate:"max=30"`
	Email            string         `json:"email" validate:"omitempty,email"`
	Address          string         `json:"address" validate:"max=300"`
	BirthDate        *time.Time     `json:"birth_date,omitempty"`
	PlanID           int64          `json:"plan_id" validate:"required,min=1"`
	RegistrationDate *time.Time     `json:"registration_date,omitempty"`
	Notes            string         `json:"notes" validate:"max=1000"`
	Payment          PaymentRequest `json:"payment"`
}

// UpdateClientRequest edición parcial; los campos nil no cambian.
type UpdateClientRequest struct {
	Cedula           *string    `json:"cedula,omitempty" validate:"omitempty,min=1,max=20"`
	FirstName        *string    `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName         *string    `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Phone            *string    `json:"phone,omitempty"`
	Email            *string    `json:"email,omitempty" validate:"omitempty,email"`
	Address          *string    `json:"address,omitempty"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`
	PlanID           *int64     `json:"plan_id,omitempty" validate:"omitempty,min=1"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
}

// RenewRequest renovación; PlanID nil mantiene el plan actual.
type RenewRequest struct {
	PlanID  *int64         `json:"plan_id,omitempty" validate:"omitempty,min=1"`
	Payment PaymentRequest `json:"payment"`
}

// ClientListRequest filtros de GET /api/clients.
type ClientListRequest struct {
	Query  string `query:"q"`
	Status string `query:"status" validate:"omitempty,oneof=activo por_vencer vencido"`
	PlanID int64  `query:"plan_id"`
	PageRequest
}

// ClientResponse cliente con el estado de su membresía calculado a la fecha.
type ClientResponse struct {
	ID               int64           `json:"id"`
	Cedula           string          `json:"cedula"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	FullName         string          `json:"full_name"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email"`
	Address          string          `json:"address"`
	BirthDate        *time.Time      `json:"birth_date,omitempty"`
	PlanID           int64           `json:"plan_id"`
	PlanName         string          `json:"plan_name"`
	RegistrationDate time.Time       `json:"registration_date"`
	ExpiryDate       time.Time       `json:"expiry_date"`
	Status           string          `json:"status"`
	DaysRemaining    int             `json:"days_remaining"`
	PaymentMethod    string          `json:"payment_method"`
	AmountPaidUSD    decimal.Decimal `json:"amount_paid_usd"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
	PaymentReference string          `json:"payment_reference"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ClientListResponse página de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ClientPaymentResponse un pago del historial.
type ClientPaymentResponse struct {
	ID           int64           `json:"id"`
	ClientID     int64           `json:"client_id"`
	PlanID       int64           `json:"plan_id"`
	PlanName     string          `json:"plan_name"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	AmountUSD    decimal.Decimal `json:"amount_usd"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	AmountBs     decimal.Decimal `json:"amount_bs"`
	Method       string          `json:"payment_method"`
	Reference    string          `json:"reference"`
	PaidAt       time.Time       `json:"paid_at"`
}
