package payroll_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	apppayroll "github.com/jhoicas/Gimnasio-api/internal/application/payroll"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	domainpayroll "github.com/jhoicas/Gimnasio-api/internal/domain/payroll"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Gimnasio-api/pkg/config"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

type mockReceipts struct {
	mock.Mock
}

func (m *mockReceipts) GeneratePayrollReceipt(ctx context.Context, rec *dto.PayrollRecordResponse) ([]byte, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type fixture struct {
	employees *apppayroll.EmployeeUseCase
	payroll   *apppayroll.PayrollUseCase
	receipts  *mockReceipts
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, config.DBConfig{Path: filepath.Join(t.TempDir(), "nomina.db"), BusyTimeoutMS: 2000})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	receipts := new(mockReceipts)
	return fixture{
		employees: apppayroll.NewEmployeeUseCase(sqlite.NewEmployeeRepository(db)),
		payroll: apppayroll.NewPayrollUseCase(sqlite.NewTxRunner(db), sqlite.NewPayrollRepository(db),
			domainpayroll.DefaultRates(), receipts).
			WithClock(func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }),
		receipts: receipts,
	}
}

func (f fixture) hire(t *testing.T, cedula, name string, salary string, hired time.Time) *dto.EmployeeResponse {
	t.Helper()
	e, err := f.employees.Create(context.Background(), dto.EmployeeRequest{
		Cedula: cedula, FirstName: name, Position: "Entrenador", MonthlySalary: d(salary), HireDate: hired,
	})
	require.NoError(t, err)
	return e
}

func TestEmployeeUseCase_Validaciones(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.employees.Create(ctx, dto.EmployeeRequest{Cedula: "V-1", FirstName: "Ana", MonthlySalary: d("0"), HireDate: day(2024, 1, 1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	e := f.hire(t, "V-1", "Ana", "3000", day(2024, 1, 1))
	assert.True(t, e.Active)

	_, err = f.employees.Create(ctx, dto.EmployeeRequest{Cedula: "V-1", FirstName: "Otra", MonthlySalary: d("1"), HireDate: day(2024, 1, 1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	inactive := false
	updated, err := f.employees.Update(ctx, e.ID, dto.EmployeeRequest{
		Cedula: "V-1", FirstName: "Ana", LastName: "Gil", MonthlySalary: d("3500"), HireDate: day(2024, 1, 1), Active: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Gil", updated.FullName)
	assert.False(t, updated.Active)

	active, err := f.employees.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, f.employees.Delete(ctx, e.ID))
	_, err = f.employees.Get(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_CalculaYRegenera(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ana := f.hire(t, "V-1", "Ana", "3000", day(2020, 3, 15))
	f.hire(t, "V-2", "Beto", "2000", day(2024, 7, 1)) // ingresa después de junio

	out, err := f.payroll.Generate(ctx, dto.GeneratePayrollRequest{Year: 2024, Month: 6, DaysWorked: map[int64]int{ana.ID: 15}})
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	rec := out.Records[0]
	assert.Equal(t, ana.ID, rec.EmployeeID)
	assert.Equal(t, "Ana", rec.EmployeeName)
	assert.True(t, rec.BasePay.Equal(d("1500")))
	assert.True(t, rec.RPE.Equal(d("7.5")))
	assert.True(t, rec.NetPay.Equal(d("1417.5")), rec.NetPay.String())
	assert.Equal(t, entity.PayrollStatusPending, rec.Status)

	again, err := f.payroll.Generate(ctx, dto.GeneratePayrollRequest{Year: 2024, Month: 6})
	require.NoError(t, err)
	require.Len(t, again.Records, 1)
	assert.Equal(t, rec.ID, again.Records[0].ID, "el registro pendiente se reemplaza")
	assert.True(t, again.Records[0].NetPay.Equal(d("2835")))
	assert.True(t, again.Records[0].SeveranceAccrual.Equal(d("500")))
	assert.True(t, again.Records[0].VacationAccrual.Equal(d("158.33")), "15 + 4 años de servicio")

	_, err = f.payroll.Generate(ctx, dto.GeneratePayrollRequest{Year: 2024, Month: 6, DaysWorked: map[int64]int{ana.ID: 31}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessPayments_NoSobrescribePagados(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ana := f.hire(t, "V-1", "Ana", "3000", day(2020, 3, 15))

	_, err := f.payroll.Generate(ctx, dto.GeneratePayrollRequest{Year: 2024, Month: 6})
	require.NoError(t, err)

	paid, err := f.payroll.ProcessPayments(ctx, dto.ProcessPaymentsRequest{Year: 2024, Month: 6, Method: entity.PaymentTransfer, Reference: "T-99"})
	require.NoError(t, err)
	assert.Equal(t, 1, paid.Count)
	assert.True(t, paid.TotalNet.Equal(d("2835")))

	list, err := f.payroll.List(ctx, dto.PayrollListRequest{Year: 2024, Month: 6, Status: entity.PayrollStatusPaid})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "T-99", list[0].PaymentReference)
	require.NotNil(t, list[0].PaidAt)

	skipped, err := f.payroll.Generate(ctx, dto.GeneratePayrollRequest{Year: 2024, Month: 6})
	require.NoError(t, err)
	assert.Empty(t, skipped.Records)
	assert.Equal(t, []int64{ana.ID}, skipped.Skipped)

	_, err = f.payroll.Generate(ctx, dto.GeneratePayrollRequest{Year: 2024, Month: 6, EmployeeIDs: []int64{ana.ID}})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	again, err := f.payroll.ProcessPayments(ctx, dto.ProcessPaymentsRequest{Year: 2024, Month: 6, Method: entity.PaymentTransfer})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Count)

	_, err = f.payroll.ProcessPayments(ctx, dto.ProcessPaymentsRequest{Year: 2024, Month: 6, RecordIDs: []int64{list[0].ID}, Method: entity.PaymentTransfer})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	assert.ErrorIs(t, f.employees.Delete(ctx, ana.ID), domain.ErrConflict)
}

func TestGenerate_UtilidadesEnDiciembre(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.hire(t, "V-3", "Carla", "3000", day(2024, 3, 15))

	out, err := f.payroll.Generate(ctx, dto.GeneratePayrollRequest{Year: 2024, Month: 12})
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.True(t, out.Records[0].Utilidades.Equal(d("2500")), "10 meses de marzo a diciembre")
	assert.True(t, out.Records[0].NetPay.Equal(d("5335")))
	assert.True(t, out.TotalNet.Equal(d("5335")))
}

func TestReceiptPDF(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.hire(t, "V-1", "Ana", "3000", day(2020, 3, 15))
	out, err := f.payroll.Generate(ctx, dto.GeneratePayrollRequest{Year: 2024, Month: 6})
	require.NoError(t, err)

	f.receipts.On("GeneratePayrollReceipt", mock.Anything, mock.AnythingOfType("*dto.PayrollRecordResponse")).Return([]byte("%PDF"), nil)
	pdf, name, err := f.payroll.ReceiptPDF(ctx, out.Records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "nomina_V-1_2024_06.pdf", name)

	_, _, err = f.payroll.ReceiptPDF(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
