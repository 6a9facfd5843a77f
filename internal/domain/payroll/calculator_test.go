package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/payroll"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got.String())
}

func TestCompute_MesCompleto(t *testing.T) {
	calc := payroll.NewCalculator(payroll.DefaultRates())
	res, err := calc.Compute(payroll.Input{
		MonthlySalary: d("3000"),
		HireDate:      day(2020, 3, 1),
		Year:          2024,
		Month:         6,
		DaysWorked:    30,
	})
	require.NoError(t, err)

	assertDec(t, "100", res.DailySalary, "diario")
	assertDec(t, "3000", res.BasePay, "base")
	assertDec(t, "120", res.SSO, "sso")
	assertDec(t, "30", res.LPH, "lph")
	assertDec(t, "15", res.RPE, "rpe")
	assertDec(t, "165", res.TotalDeductions, "deducciones")
	assertDec(t, "0", res.Utilidades, "utilidades fuera de diciembre")
	assertDec(t, "2835", res.NetPay, "neto")
	assertDec(t, "500", res.SeveranceAccrual, "prestaciones")
	// 4 años de servicio: (15 + 4) × 100 / 12
	assert.Equal(t, 4, res.YearsOfService)
	assertDec(t, "158.33", res.VacationAccrual, "vacaciones")
}

func TestCompute_Proporcional(t *testing.T) {
	calc := payroll.NewCalculator(payroll.DefaultRates())
	res, err := calc.Compute(payroll.Input{
		MonthlySalary: d("3000"),
		HireDate:      day(2024, 1, 15),
		Year:          2024,
		Month:         6,
		DaysWorked:    15,
	})
	require.NoError(t, err)

	assertDec(t, "1500", res.BasePay, "base")
	assertDec(t, "60", res.SSO, "sso")
	assertDec(t, "15", res.LPH, "lph")
	assertDec(t, "7.5", res.RPE, "rpe")
	assertDec(t, "1417.5", res.NetPay, "neto")
	assertDec(t, "250", res.SeveranceAccrual, "prestaciones")
	assertDec(t, "125", res.VacationAccrual, "vacaciones sin antigüedad")
}

func TestCompute_UtilidadesDiciembre(t *testing.T) {
	calc := payroll.NewCalculator(payroll.DefaultRates())

	full, err := calc.Compute(payroll.Input{
		MonthlySalary: d("3000"), HireDate: day(2019, 5, 2), Year: 2024, Month: 12, DaysWorked: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, full.MonthsWorked)
	assertDec(t, "3000", full.Utilidades, "año completo")
	assertDec(t, "5835", full.NetPay, "neto con utilidades")

	partial, err := calc.Compute(payroll.Input{
		MonthlySalary: d("3000"), HireDate: day(2024, 10, 20), Year: 2024, Month: 12, DaysWorked: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, partial.MonthsWorked)
	assertDec(t, "750", partial.Utilidades, "octubre a diciembre")
}

func TestCompute_TopeVacaciones(t *testing.T) {
	calc := payroll.NewCalculator(payroll.DefaultRates())
	res, err := calc.Compute(payroll.Input{
		MonthlySalary: d("1200"), HireDate: day(1990, 1, 1), Year: 2024, Month: 3, DaysWorked: 30,
	})
	require.NoError(t, err)
	// 40 × 30 / 12
	assertDec(t, "100", res.VacationAccrual, "tope de 30 días")
}

func TestCompute_EntradaInvalida(t *testing.T) {
	calc := payroll.NewCalculator(payroll.DefaultRates())
	cases := []payroll.Input{
		{MonthlySalary: d("1000"), Year: 2024, Month: 13, DaysWorked: 30},
		{MonthlySalary: d("1000"), Year: 2024, Month: 1, DaysWorked: 31},
		{MonthlySalary: d("1000"), Year: 2024, Month: 1, DaysWorked: -1},
		{MonthlySalary: decimal.Zero, Year: 2024, Month: 1, DaysWorked: 30},
	}
	for _, in := range cases {
		_, err := calc.Compute(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestYearsOfService(t *testing.T) {
	assert.Equal(t, 0, payroll.YearsOfService(day(2024, 6, 1), day(2024, 5, 31)))
	assert.Equal(t, 0, payroll.YearsOfService(day(2023, 7, 1), day(2024, 6, 30)))
	assert.Equal(t, 1, payroll.YearsOfService(day(2023, 6, 30), day(2024, 6, 30)))
}

func TestPeriodEnd(t *testing.T) {
	assert.Equal(t, day(2024, 2, 29), payroll.PeriodEnd(2024, 2))
	assert.Equal(t, day(2024, 12, 31), payroll.PeriodEnd(2024, 12))
}
