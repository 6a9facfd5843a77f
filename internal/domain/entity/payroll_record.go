package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un registro de nómina.
const (
	PayrollStatusPending = "pendiente"
	PayrollStatusPaid    = "pagado"
)

// PayrollRecord nómina de un empleado para un mes (único por empleado, año y mes).
type PayrollRecord struct {
	ID               int64
	EmployeeID       int64
	EmployeeName     string // solo lectura (JOIN)
	EmployeeCedula   string // solo lectura (JOIN)
	Position         string // solo lectura (JOIN)
	Year             int
	Month            int
	DaysWorked       int
	MonthlySalary    decimal.Decimal
	DailySalary      decimal.Decimal
	BasePay          decimal.Decimal
	SSO              decimal.Decimal
	LPH              decimal.Decimal
	RPE              decimal.Decimal
	TotalDeductions  decimal.Decimal
	Utilidades       decimal.Decimal
	NetPay           decimal.Decimal
	SeveranceAccrual decimal.Decimal
	VacationAccrual  decimal.Decimal
	Status           string
	PaymentMethod    string
	PaymentReference string
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
