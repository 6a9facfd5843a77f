package inventory_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	appinventory "github.com/jhoicas/Gimnasio-api/internal/application/inventory"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Gimnasio-api/pkg/config"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(m time.Month, dd int) *time.Time {
	t := time.Date(2024, m, dd, 0, 0, 0, 0, time.UTC)
	return &t
}

type fixture struct {
	db      *sql.DB
	engine  *appinventory.RegisterMovementUseCase
	queries *appinventory.QueryUseCase
	product *entity.Product
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, config.DBConfig{Path: filepath.Join(t.TempDir(), "inv.db"), BusyTimeoutMS: 2000})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	now := time.Now()
	p := &entity.Product{Name: "Proteína Whey", Category: "Suplementos", Unit: "unidad", MinStock: d("8"),
		Active: true, SearchKey: "proteina whey", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewProductRepository(db).Create(ctx, p))

	fixed := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	engine := appinventory.NewRegisterMovementUseCase(sqlite.NewTxRunner(db), d("0.30"), time.UTC).
		WithClock(func() time.Time { return fixed })
	queries := appinventory.NewQueryUseCase(sqlite.NewProductRepository(db), sqlite.NewLotRepository(db), sqlite.NewStockMovementRepository(db))
	return fixture{db: db, engine: engine, queries: queries, product: p}
}

func TestRegisterPurchase_LotesYPrecio(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.engine.RegisterPurchase(ctx, appinventory.PurchaseInput{
		UserID: 1, ProductID: f.product.ID, Quantity: d("10"), UnitCost: d("2"), Supplier: "Distribuidora", PurchaseDate: day(6, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, "L001-001", first.Lot.Code)
	assert.True(t, first.NewStock.Equal(d("10")))
	assert.True(t, first.NewSalePrice.Equal(d("2.6")), first.NewSalePrice.String())

	second, err := f.engine.RegisterPurchase(ctx, appinventory.PurchaseInput{
		UserID: 1, ProductID: f.product.ID, Quantity: d("10"), UnitCost: d("4"), PurchaseDate: day(6, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, "L001-002", second.Lot.Code)
	assert.True(t, second.NewStock.Equal(d("20")))
	assert.True(t, second.AverageCost.Equal(d("3")))
	assert.True(t, second.NewSalePrice.Equal(d("3.9")), second.NewSalePrice.String())

	product, err := sqlite.NewProductRepository(f.db).GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.True(t, product.PurchasePrice.Equal(d("4")), "precio de compra = última compra")
	assert.True(t, product.SalePrice.Equal(d("3.9")))

	moves, err := f.queries.ListMovements(ctx, dto.MovementListRequest{ProductID: f.product.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, moves.Page.Total)
	assert.True(t, moves.Items[0].PreviousStock.Equal(d("10")))
	assert.True(t, moves.Items[0].NewStock.Equal(d("20")))
}

func TestRegisterPurchase_Validaciones(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.engine.RegisterPurchase(ctx, appinventory.PurchaseInput{ProductID: f.product.ID, Quantity: d("0"), UnitCost: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.RegisterPurchase(ctx, appinventory.PurchaseInput{ProductID: f.product.ID, Quantity: d("1"), UnitCost: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.RegisterPurchase(ctx, appinventory.PurchaseInput{ProductID: 999, Quantity: d("1"), UnitCost: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_PEPSYRollback(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for i, cost := range []string{"2", "4"} {
		_, err := f.engine.RegisterPurchase(ctx, appinventory.PurchaseInput{
			UserID: 1, ProductID: f.product.ID, Quantity: d("10"), UnitCost: d(cost), PurchaseDate: day(6, i+1),
		})
		require.NoError(t, err)
	}

	out, err := f.engine.AdjustStock(ctx, appinventory.AdjustInput{UserID: 1, ProductID: f.product.ID, Delta: d("-15"), Reason: "merma"})
	require.NoError(t, err)
	assert.True(t, out.NewStock.Equal(d("5")))

	lots, err := f.queries.ListLots(ctx, f.product.ID)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, 1, lots[0].FIFORank)
	assert.Equal(t, entity.LotStatusDepleted, lots[0].Status)
	assert.True(t, lots[1].AvailableQuantity.Equal(d("5")))
	assert.Equal(t, entity.LotStatusActive, lots[1].Status)

	_, err = f.engine.AdjustStock(ctx, appinventory.AdjustInput{UserID: 1, ProductID: f.product.ID, Delta: d("-10"), Reason: "error"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	moves, err := f.queries.ListMovements(ctx, dto.MovementListRequest{ProductID: f.product.ID, Type: entity.MovementTypeAdjust})
	require.NoError(t, err)
	assert.Equal(t, 2, moves.Page.Total, "un movimiento por lote tocado; el ajuste fallido no deja rastro")

	up, err := f.engine.AdjustStock(ctx, appinventory.AdjustInput{UserID: 1, ProductID: f.product.ID, Delta: d("5"), Reason: "conteo físico"})
	require.NoError(t, err)
	assert.True(t, up.NewStock.Equal(d("10")))

	lots, err = f.queries.ListLots(ctx, f.product.ID)
	require.NoError(t, err)
	require.Len(t, lots, 3)
	assert.Equal(t, "L001-003", lots[2].Code)
	assert.Equal(t, appinventory.AdjustmentSupplier, lots[2].Supplier)
	assert.True(t, lots[2].UnitCost.Equal(d("4")), "ajuste positivo al costo promedio vigente")

	val, err := f.queries.Valuation(ctx)
	require.NoError(t, err)
	require.Len(t, val.Rows, 1)
	assert.True(t, val.TotalValue.Equal(d("40")))
	assert.True(t, val.Rows[0].Stock.Equal(d("10")))
	assert.False(t, val.Rows[0].LowStock)
}

func TestReplenishmentList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := time.Now()
	products := sqlite.NewProductRepository(f.db)

	other := &entity.Product{Name: "Agua", MinStock: d("4"), Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, other))
	_, err := f.engine.RegisterPurchase(ctx, appinventory.PurchaseInput{ProductID: f.product.ID, Quantity: d("2"), UnitCost: d("10")})
	require.NoError(t, err)
	_, err = f.engine.RegisterPurchase(ctx, appinventory.PurchaseInput{ProductID: other.ID, Quantity: d("20"), UnitCost: d("1")})
	require.NoError(t, err)

	uc := appinventory.NewReplenishmentUseCase(products, sqlite.NewLotRepository(f.db), sqlite.NewReportRepository(f.db))
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.product.ID, list[0].ProductID)
	assert.True(t, list[0].IdealStock.Equal(d("12")))
	assert.True(t, list[0].SuggestedOrderQty.Equal(d("10")))
	assert.True(t, list[0].EstimatedOrderCost.Equal(d("100")))
	assert.Equal(t, 1, list[0].Priority)
}
