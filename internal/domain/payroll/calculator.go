// Package payroll calcula la nómina mensual bajo la LOTTT y las leyes de seguridad social.
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
)

// DaysPerMonth base legal del salario diario.
const DaysPerMonth = 30

// MaxVacationDays tope de días de vacaciones por antigüedad.
const MaxVacationDays = 30

// Rates parámetros del cálculo; llegan desde la configuración.
type Rates struct {
	SSO                   decimal.Decimal // Seguro Social Obligatorio
	LPH                   decimal.Decimal // Ley de Política Habitacional
	RPE                   decimal.Decimal // Régimen Prestacional de Empleo (paro forzoso)
	SeveranceDaysPerMonth decimal.Decimal
	VacationBaseDays      int
	UtilidadesDays        decimal.Decimal
}

// DefaultRates valores vigentes (4%, 1%, 0,5%; 5 días de prestaciones; 15 de vacaciones; 30 de utilidades).
func DefaultRates() Rates {
	return Rates{
		SSO:                   decimal.RequireFromString("0.04"),
		LPH:                   decimal.RequireFromString("0.01"),
		RPE:                   decimal.RequireFromString("0.005"),
		SeveranceDaysPerMonth: decimal.NewFromInt(5),
		VacationBaseDays:      15,
		UtilidadesDays:        decimal.NewFromInt(30),
	}
}

// Input datos de un empleado para un período.
type Input struct {
	MonthlySalary decimal.Decimal
	HireDate      time.Time
	Year          int
	Month         int
	DaysWorked    int
}

// Result montos calculados, todos redondeados a 2 decimales.
type Result struct {
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
	YearsOfService   int
	MonthsWorked     int // meses del año que cuentan para utilidades
}

// Calculator calcula la nómina con las tasas dadas.
type Calculator struct {
	rates Rates
}

// NewCalculator construye el calculador.
func NewCalculator(r Rates) *Calculator {
	return &Calculator{rates: r}
}

// Compute calcula un registro de nómina. Utilidades solo en diciembre.
func (c *Calculator) Compute(in Input) (Result, error) {
	if in.Month < 1 || in.Month > 12 || in.DaysWorked < 0 || in.DaysWorked > DaysPerMonth {
		return Result{}, domain.ErrInvalidInput
	}
	if !in.MonthlySalary.GreaterThan(decimal.Zero) {
		return Result{}, domain.ErrInvalidInput
	}

	days := decimal.NewFromInt(int64(in.DaysWorked))
	thirty := decimal.NewFromInt(DaysPerMonth)
	twelve := decimal.NewFromInt(12)

	daily := in.MonthlySalary.Div(thirty)
	base := daily.Mul(days).Round(2)

	sso := base.Mul(c.rates.SSO).Round(2)
	lph := base.Mul(c.rates.LPH).Round(2)
	rpe := base.Mul(c.rates.RPE).Round(2)
	deductions := sso.Add(lph).Add(rpe)

	severance := daily.Mul(c.rates.SeveranceDaysPerMonth).Mul(days).Div(thirty).Round(2)

	periodEnd := PeriodEnd(in.Year, in.Month)
	years := YearsOfService(in.HireDate, periodEnd)
	vacDays := c.rates.VacationBaseDays + years
	if vacDays > MaxVacationDays {
		vacDays = MaxVacationDays
	}
	vacation := daily.Mul(decimal.NewFromInt(int64(vacDays))).Div(twelve).Round(2)

	utilidades := decimal.Zero
	months := 0
	if in.Month == 12 {
		months = MonthsWorkedInYear(in.HireDate, in.Year)
		utilidades = daily.Mul(c.rates.UtilidadesDays).Mul(decimal.NewFromInt(int64(months))).Div(twelve).Round(2)
	}

	return Result{
		DailySalary:      daily.Round(2),
		BasePay:          base,
		SSO:              sso,
		LPH:              lph,
		RPE:              rpe,
		TotalDeductions:  deductions,
		Utilidades:       utilidades,
		NetPay:           base.Sub(deductions).Add(utilidades).Round(2),
		SeveranceAccrual: severance,
		VacationAccrual:  vacation,
		YearsOfService:   years,
		MonthsWorked:     months,
	}, nil
}

// PeriodEnd último día del mes (medianoche UTC).
func PeriodEnd(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}

// YearsOfService años completos entre el ingreso y la fecha dada.
func YearsOfService(hire, at time.Time) int {
	if at.Before(hire) {
		return 0
	}
	years := at.Year() - hire.Year()
	if at.Month() < hire.Month() || (at.Month() == hire.Month() && at.Day() < hire.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// MonthsWorkedInYear meses desde max(ingreso, 1 de enero) hasta diciembre, inclusive.
func MonthsWorkedInYear(hire time.Time, year int) int {
	switch {
	case hire.Year() < year:
		return 12
	case hire.Year() > year:
		return 0
	default:
		return 12 - int(hire.Month()) + 1
	}
}
