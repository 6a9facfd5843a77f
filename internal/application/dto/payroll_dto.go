package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeRequest alta o edición completa de un empleado.
type EmployeeRequest struct {
	Cedula        string          `json:"cedula" validate:"required,max=20"`
	FirstName     string          `json:"first_name" validate:"required,max=100"`
	LastName      string          `json:"last_name" validate:"max=100"`
	Position      string          `json:"position" validate:"max=100"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	HireDate      time.Time       `json:"hire_date" validate:"required"`
	BankAccount   string          `json:"bank_account" validate:"max=30"`
	Active        *bool           `json:"active,omitempty"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID            int64           `json:"id"`
	Cedula        string          `json:"cedula"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	FullName      string          `json:"full_name"`
	Position      string          `json:"position"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	HireDate      time.Time       `json:"hire_date"`
	BankAccount   string          `json:"bank_account"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// GeneratePayrollRequest genera la nómina del mes. EmployeeIDs vacío = todos los activos.
// DaysWorked sobreescribe los días (por defecto 30) por empleado.
type GeneratePayrollRequest struct {
	Year        int           `json:"year" validate:"required,min=2000,max=2100"`
	Month       int           `json:"month" validate:"required,min=1,max=12"`
	EmployeeIDs []int64       `json:"employee_ids,omitempty"`
	DaysWorked  map[int64]int `json:"days_worked,omitempty"`
}

// GeneratePayrollResponse registros generados y los omitidos por estar pagados.
type GeneratePayrollResponse struct {
	Records  []PayrollRecordResponse `json:"records"`
	Skipped  []int64                 `json:"skipped_employee_ids"`
	TotalNet decimal.Decimal         `json:"total_net"`
}

// ProcessPaymentsRequest paga los registros pendientes del mes. RecordIDs vacío = todos.
type ProcessPaymentsRequest struct {
	Year      int        `json:"year" validate:"required,min=2000,max=2100"`
	Month     int        `json:"month" validate:"required,min=1,max=12"`
	RecordIDs []int64    `json:"record_ids,omitempty"`
	Method    string     `json:"payment_method" validate:"required,oneof=efectivo_bs efectivo_usd punto_de_venta pago_movil transferencia zelle"`
	Reference string     `json:"reference" validate:"max=100"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

// ProcessPaymentsResponse resumen del pago.
type ProcessPaymentsResponse struct {
	Count    int             `json:"count"`
	TotalNet decimal.Decimal `json:"total_net"`
}

// PayrollListRequest filtros de GET /api/payroll.
type PayrollListRequest struct {
	Year   int    `query:"year" validate:"omitempty,min=2000,max=2100"`
	Month  int    `query:"month" validate:"omitempty,min=1,max=12"`
	Status string `query:"status" validate:"omitempty,oneof=pendiente pagado"`
}

// PayrollRecordResponse nómina de un empleado para un mes.
type PayrollRecordResponse struct {
	ID               int64           `json:"id"`
	EmployeeID       int64           `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	EmployeeCedula   string          `json:"employee_cedula"`
	Position         string          `json:"position"`
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	DaysWorked       int             `json:"days_worked"`
	MonthlySalary    decimal.Decimal `json:"monthly_salary"`
	DailySalary      decimal.Decimal `json:"daily_salary"`
	BasePay          decimal.Decimal `json:"base_pay"`
	SSO              decimal.Decimal `json:"sso"`
	LPH              decimal.Decimal `json:"lph"`
	RPE              decimal.Decimal `json:"rpe"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	Utilidades       decimal.Decimal `json:"utilidades"`
	NetPay           decimal.Decimal `json:"net_pay"`
	SeveranceAccrual decimal.Decimal `json:"severance_accrual"`
	VacationAccrual  decimal.Decimal `json:"vacation_accrual"`
	Status           string          `json:"status"`
	PaymentMethod    string          `json:"payment_method,omitempty"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
}
