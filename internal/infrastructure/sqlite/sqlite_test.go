package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Gimnasio-api/pkg/config"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

// openTestDB crea una base temporal con todas las migraciones aplicadas.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, config.DBConfig{Path: filepath.Join(t.TempDir(), "test.db"), BusyTimeoutMS: 2000})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))
	return db
}

func seedPlan(t *testing.T, db *sql.DB, name string, days int) *entity.MembershipPlan {
	t.Helper()
	now := time.Now()
	p := &entity.MembershipPlan{Name: name, PriceUSD: d("25"), DurationDays: days, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewPlanRepository(db).Create(context.Background(), p))
	return p
}

func seedProduct(t *testing.T, db *sql.DB, name string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{Name: name, Category: "Suplementos", Unit: "unidad", MinStock: d("5"), Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewProductRepository(db).Create(context.Background(), p))
	return p
}

func TestMigrate_Idempotente(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, sqlite.Migrate(context.Background(), db))
}

func TestUserRepo_EmailDuplicado(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()

	u := &entity.User{Name: "Ana", Email: "ana@gym.test", PasswordHash: "x", Role: entity.RoleAdmin, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	dup := *u
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	got, err := repo.GetByEmail(ctx, "ANA@gym.test")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClientRepo_FiltrosYFechas(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	plan := seedPlan(t, db, "Mensual", 30)
	repo := sqlite.NewClientRepository(db)
	now := time.Now()

	mk := func(cedula, name, key string, expiry time.Time) *entity.Client {
		c := &entity.Client{
			Cedula: cedula, FirstName: name, PlanID: plan.ID, RegistrationDate: expiry.AddDate(0, -1, 0),
			ExpiryDate: expiry, AmountPaidUSD: d("25"), ExchangeRate: d("36.5"), SearchKey: key,
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, repo.Create(ctx, c))
		return c
	}
	mk("V-1", "José", "jose v-1", day(2024, 6, 5))
	mk("V-2", "María", "maria v-2", day(2024, 6, 12))
	mk("V-3", "Pedro", "pedro v-3", day(2024, 7, 30))

	dup := &entity.Client{Cedula: "V-1", FirstName: "Otro", PlanID: plan.ID, RegistrationDate: now, ExpiryDate: now, CreatedAt: now, UpdatedAt: now}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicate)

	got, err := repo.GetByCedula(ctx, "V-2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, day(2024, 6, 12), got.ExpiryDate.UTC())
	assert.Equal(t, "Mensual", got.PlanName)
	assert.True(t, got.ExchangeRate.Equal(d("36.5")))
	assert.Nil(t, got.BirthDate)

	list, total, err := repo.List(ctx, repository.ClientFilter{SearchKey: "mar"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "V-2", list[0].Cedula)

	from, to := day(2024, 6, 1), day(2024, 6, 12)
	n, err := repo.CountByExpiry(ctx, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "rango inclusivo")

	n, err = repo.CountByExpiry(ctx, &to, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := sqlite.NewPlanRepository(db).CountClients(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestBusqueda_ComodinesSonLiterales(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	plan := seedPlan(t, db, "Mensual", 30)
	clients := sqlite.NewClientRepository(db)
	products := sqlite.NewProductRepository(db)
	now := time.Now()

	for _, c := range []struct{ cedula, key string }{
		{"V-10", "ana v-10"},
		{"V-11", "luis_m v-11"},
		{"V-12", "rosa 100% v-12"},
	} {
		require.NoError(t, clients.Create(ctx, &entity.Client{
			Cedula: c.cedula, FirstName: c.key, PlanID: plan.ID, RegistrationDate: day(2024, 1, 1),
			ExpiryDate: day(2024, 2, 1), SearchKey: c.key, CreatedAt: now, UpdatedAt: now,
		}))
	}
	for _, k := range []string{"agua 600ml", "whey_pro", "cafe 100% arabica"} {
		require.NoError(t, products.Create(ctx, &entity.Product{Name: k, Unit: "unidad", SearchKey: k, Active: true,
			CreatedAt: now, UpdatedAt: now}))
	}

	cases := []struct {
		query  string
		client string
		prod   string
	}{
		{"_", "V-11", "whey_pro"},
		{"%", "V-12", "cafe 100% arabica"},
	}
	for _, tc := range cases {
		list, total, err := clients.List(ctx, repository.ClientFilter{SearchKey: tc.query})
		require.NoError(t, err)
		assert.Equal(t, 1, total, "cliente con %q", tc.query)
		require.Len(t, list, 1)
		assert.Equal(t, tc.client, list[0].Cedula)

		prods, total, err := products.List(ctx, repository.ProductFilter{SearchKey: tc.query})
		require.NoError(t, err)
		assert.Equal(t, 1, total, "producto con %q", tc.query)
		require.Len(t, prods, 1)
		assert.Equal(t, tc.prod, prods[0].Name)
	}

	_, total, err := clients.List(ctx, repository.ClientFilter{SearchKey: `\`})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestClientRepo_DeleteBorraPagos(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	plan := seedPlan(t, db, "Mensual", 30)
	now := time.Now()
	clients := sqlite.NewClientRepository(db)
	payments := sqlite.NewClientPaymentRepository(db)

	c := &entity.Client{Cedula: "V-9", FirstName: "Luis", PlanID: plan.ID, RegistrationDate: day(2024, 1, 1), ExpiryDate: day(2024, 2, 1), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, clients.Create(ctx, c))
	require.NoError(t, payments.Create(ctx, &entity.ClientPayment{
		ClientID: c.ID, PlanID: plan.ID, PeriodStart: day(2024, 1, 1), PeriodEnd: day(2024, 2, 1),
		AmountUSD: d("25"), ExchangeRate: d("36"), AmountBs: d("900"), Method: entity.PaymentCashUSD, PaidAt: day(2024, 1, 1),
	}))

	list, err := payments.ListByClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mensual", list[0].PlanName)

	assert.ErrorIs(t, sqlite.NewPlanRepository(db).Delete(ctx, plan.ID), domain.ErrConflict)

	require.NoError(t, clients.Delete(ctx, c.ID))
	list, err = payments.ListByClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLotRepo_OrdenPEPS(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, "Proteína")
	lots := sqlite.NewLotRepository(db)
	now := time.Now()

	for i, date := range []time.Time{day(2024, 3, 1), day(2024, 1, 1), day(2024, 3, 1)} {
		l := &entity.Lot{ProductID: p.ID, Code: "L-" + string(rune('A'+i)), InitialQuantity: d("10"), AvailableQuantity: d("10"),
			UnitCost: d("12.5"), PurchaseDate: date, CreatedAt: now}
		require.NoError(t, lots.Create(ctx, l))
	}
	dup := &entity.Lot{ProductID: p.ID, Code: "L-A", InitialQuantity: d("1"), AvailableQuantity: d("1"), PurchaseDate: now, CreatedAt: now}
	assert.ErrorIs(t, lots.Create(ctx, dup), domain.ErrDuplicate)

	list, err := lots.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "L-B", list[0].Code)
	assert.Equal(t, "L-A", list[1].Code)
	assert.Equal(t, "L-C", list[2].Code)
	assert.True(t, list[0].UnitCost.Equal(d("12.5")))

	require.NoError(t, lots.UpdateAvailable(ctx, list[0].ID, decimal.Zero))
	avail, err := lots.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Len(t, avail, 2)

	n, err := lots.CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.ErrorIs(t, lots.UpdateAvailable(ctx, 999, decimal.Zero), domain.ErrNotFound)
}

func TestSaleRepo_CreateGetVoid(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, "Agua")
	now := time.Now()
	lot := &entity.Lot{ProductID: p.ID, Code: "L001-001", InitialQuantity: d("10"), AvailableQuantity: d("10"), UnitCost: d("1"), PurchaseDate: now, CreatedAt: now}
	require.NoError(t, sqlite.NewLotRepository(db).Create(ctx, lot))

	repo := sqlite.NewSaleRepository(db)
	sale := &entity.Sale{
		UserID: 1, Status: entity.SaleStatusCompleted, PaymentMethod: entity.PaymentZelle, ExchangeRate: d("36"),
		SubtotalUSD: d("4.5"), TotalUSD: d("4.5"), TotalBs: d("162"), CostTotal: d("3"), OperationRef: "op-1", CreatedAt: now,
		Items: []entity.SaleItem{{
			ProductID: p.ID, Quantity: d("3"), UnitPrice: d("1.5"), Subtotal: d("4.5"), UnitCost: d("1"), CostTotal: d("3"),
			Lots: []entity.SaleItemLot{{LotID: lot.ID, Quantity: d("3"), UnitCost: d("1")}},
		}},
	}
	require.NoError(t, repo.Create(ctx, sale))
	assert.NotZero(t, sale.ID)
	assert.NotZero(t, sale.Items[0].Lots[0].ID)

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.ClientID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Agua", got.Items[0].ProductName)
	require.Len(t, got.Items[0].Lots, 1)
	assert.Equal(t, lot.ID, got.Items[0].Lots[0].LotID)

	require.NoError(t, repo.MarkVoided(ctx, sale.ID, "error de cobro", now))
	assert.ErrorIs(t, repo.MarkVoided(ctx, sale.ID, "otra vez", now), domain.ErrSaleVoided)

	list, total, err := repo.List(ctx, repository.SaleFilter{Status: entity.SaleStatusVoided})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].VoidedAt)

	has, err := sqlite.NewProductRepository(db).HasSales(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestPayrollRepo_UpsertNoPisaPagado(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()
	emp := &entity.Employee{Cedula: "V-100", FirstName: "Carla", LastName: "Rojas", Position: "Entrenadora",
		MonthlySalary: d("3000"), HireDate: day(2022, 1, 10), Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewEmployeeRepository(db).Create(ctx, emp))

	repo := sqlite.NewPayrollRepository(db)
	rec := &entity.PayrollRecord{EmployeeID: emp.ID, Year: 2024, Month: 5, DaysWorked: 30, MonthlySalary: d("3000"),
		DailySalary: d("100"), BasePay: d("3000"), SSO: d("120"), LPH: d("30"), RPE: d("15"), TotalDeductions: d("165"),
		NetPay: d("2835"), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Upsert(ctx, rec))
	assert.NotZero(t, rec.ID)
	assert.Equal(t, "Carla Rojas", rec.EmployeeName)
	firstID := rec.ID

	again := *rec
	again.DaysWorked = 15
	again.BasePay = d("1500")
	require.NoError(t, repo.Upsert(ctx, &again))
	assert.Equal(t, firstID, again.ID, "mismo período, mismo registro")
	assert.Equal(t, 15, again.DaysWorked)

	require.NoError(t, repo.MarkPaid(ctx, firstID, entity.PaymentTransfer, "REF-1", now))
	assert.ErrorIs(t, repo.MarkPaid(ctx, firstID, entity.PaymentTransfer, "REF-2", now), domain.ErrAlreadyPaid)

	third := again
	third.DaysWorked = 30
	assert.ErrorIs(t, repo.Upsert(ctx, &third), domain.ErrAlreadyPaid)

	paid, err := repo.GetByID(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, entity.PayrollStatusPaid, paid.Status)
	assert.Equal(t, 15, paid.DaysWorked)
	require.NotNil(t, paid.PaidAt)

	list, err := repo.List(ctx, 2024, 5, entity.PayrollStatusPaid)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	has, err := sqlite.NewEmployeeRepository(db).HasPayroll(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestReportRepo_TotalesExcluyenAnuladas(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, "Barra")
	sales := sqlite.NewSaleRepository(db)
	at := day(2024, 6, 10).Add(15 * time.Hour)

	mk := func(status string, total string) {
		s := &entity.Sale{UserID: 1, Status: status, PaymentMethod: entity.PaymentCashUSD, ExchangeRate: d("36"),
			SubtotalUSD: d(total), TotalUSD: d(total), TotalBs: d(total).Mul(d("36")), CostTotal: d("1"), CreatedAt: at,
			Items: []entity.SaleItem{{ProductID: p.ID, Quantity: d("1"), UnitPrice: d(total), Subtotal: d(total), UnitCost: d("1"), CostTotal: d("1")}}}
		require.NoError(t, sales.Create(ctx, s))
	}
	mk(entity.SaleStatusCompleted, "10.10")
	mk(entity.SaleStatusCompleted, "20.20")
	mk(entity.SaleStatusVoided, "99")

	repo := sqlite.NewReportRepository(db)
	totals, err := repo.SalesTotals(ctx, day(2024, 6, 1), day(2024, 7, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Count)
	assert.True(t, totals.TotalUSD.Equal(d("30.3")), totals.TotalUSD.String())
	assert.True(t, totals.CostTotal.Equal(d("2")))

	top, err := repo.TopProducts(ctx, day(2024, 6, 1), day(2024, 7, 1), 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.True(t, top[0].UnitsSold.Equal(d("2")))

	units, err := repo.UnitsSoldSince(ctx, day(2024, 1, 1))
	require.NoError(t, err)
	assert.True(t, units[p.ID].Equal(d("2")))

	empty, err := repo.SalesTotals(ctx, day(2023, 1, 1), day(2023, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, empty.TotalUSD.IsZero())
}

func TestTxRunner_RollbackEnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	runner := sqlite.NewTxRunner(db)
	now := time.Now()

	err := runner.Run(ctx, func(r repository.TxRepos) error {
		p := &entity.MembershipPlan{Name: "Temporal", PriceUSD: d("1"), DurationDays: 7, Active: true, CreatedAt: now, UpdatedAt: now}
		if err := r.Plans.Create(ctx, p); err != nil {
			return err
		}
		return domain.ErrConflict
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	plans, err := sqlite.NewPlanRepository(db).List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
