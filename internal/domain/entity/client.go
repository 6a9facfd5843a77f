package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client socio del gimnasio con su membresía vigente.
// RegistrationDate y ExpiryDate son fechas calendario (medianoche UTC).
type Client struct {
	ID               int64
	Cedula           string
	FirstName        string
	LastName         string
	Phone            string
	Email            string
	Address          string
	BirthDate        *time.Time
	PlanID           int64
	PlanName         string // solo lectura (JOIN)
	RegistrationDate time.Time
	ExpiryDate       time.Time
	PaymentMethod    string
	AmountPaidUSD    decimal.Decimal
	ExchangeRate     decimal.Decimal
	PaymentReference string
	Notes            string
	SearchKey        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName nombre y apellido.
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// ClientPayment pago de un período de membresía (inscripción o renovación).
type ClientPayment struct {
	ID           int64
	ClientID     int64
	PlanID       int64
	PlanName     string // solo lectura (JOIN)
	PeriodStart  time.Time
	PeriodEnd    time.Time
	AmountUSD    decimal.Decimal
	ExchangeRate decimal.Decimal
	AmountBs     decimal.Decimal
	Method       string
	Reference    string
	PaidAt       time.Time
	CreatedBy    int64
}
