package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee empleado del gimnasio (salario mensual en Bs).
type Employee struct {
	ID            int64
	Cedula        string
	FirstName     string
	LastName      string
	Position      string
	MonthlySalary decimal.Decimal
	HireDate      time.Time
	BankAccount   string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName nombre y apellido.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
