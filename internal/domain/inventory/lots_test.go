package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func sampleLots() []entity.Lot {
	return []entity.Lot{
		{ID: 3, ProductID: 7, AvailableQuantity: d("5"), UnitCost: d("12"), PurchaseDate: day(2024, 3, 10)},
		{ID: 1, ProductID: 7, AvailableQuantity: d("0"), UnitCost: d("8"), PurchaseDate: day(2024, 1, 5)},
		{ID: 2, ProductID: 7, AvailableQuantity: d("10"), UnitCost: d("10"), PurchaseDate: day(2024, 2, 1)},
		{ID: 4, ProductID: 7, AvailableQuantity: d("2"), UnitCost: d("15"), PurchaseDate: day(2024, 2, 1)},
	}
}

func TestLotCode(t *testing.T) {
	assert.Equal(t, "L007-001", inventory.LotCode(7, 0))
	assert.Equal(t, "L042-013", inventory.LotCode(42, 12))
	assert.Equal(t, "L1234-1000", inventory.LotCode(1234, 999))
}

func TestWeightedAverageCost(t *testing.T) {
	// (5×12 + 10×10 + 2×15) / 17 = 190 / 17
	avg := inventory.WeightedAverageCost(sampleLots())
	assert.True(t, avg.Round(4).Equal(d("11.1765")), avg.String())

	assert.True(t, inventory.WeightedAverageCost(nil).IsZero())
	assert.True(t, inventory.WeightedAverageCost([]entity.Lot{{AvailableQuantity: d("0"), UnitCost: d("9")}}).IsZero())
}

func TestSalePrice(t *testing.T) {
	assert.True(t, inventory.SalePrice(d("10"), inventory.DefaultMarkup).Equal(d("13")))
	assert.True(t, inventory.SalePrice(d("11.1765"), d("0.30")).Equal(d("14.53")))
	assert.True(t, inventory.SalePrice(decimal.Zero, d("0.30")).IsZero())
}

func TestStockYValuation(t *testing.T) {
	lots := sampleLots()
	assert.True(t, inventory.Stock(lots).Equal(d("17")))
	assert.True(t, inventory.Valuation(lots).Equal(d("190")))
}

func TestRankFIFO(t *testing.T) {
	lots := sampleLots()
	views := inventory.RankFIFO(lots)
	require.Len(t, views, 4)

	ids := []int64{views[0].ID, views[1].ID, views[2].ID, views[3].ID}
	assert.Equal(t, []int64{1, 2, 4, 3}, ids, "fecha ascendente, empate por id")
	assert.Equal(t, 1, views[0].FIFORank)
	assert.Equal(t, 4, views[3].FIFORank)
	assert.Equal(t, entity.LotStatusDepleted, views[0].Status)
	assert.Equal(t, entity.LotStatusActive, views[1].Status)

	assert.Equal(t, int64(3), lots[0].ID, "la entrada no se reordena")
}

func TestPlanConsumption(t *testing.T) {
	tests := []struct {
		name string
		qty  string
		want []inventory.Take
	}{
		{"un lote", "4", []inventory.Take{{LotID: 2, Quantity: d("4"), UnitCost: d("10")}}},
		{"cruza lotes", "11", []inventory.Take{
			{LotID: 2, Quantity: d("10"), UnitCost: d("10")},
			{LotID: 4, Quantity: d("1"), UnitCost: d("15")},
		}},
		{"todo", "17", []inventory.Take{
			{LotID: 2, Quantity: d("10"), UnitCost: d("10")},
			{LotID: 4, Quantity: d("2"), UnitCost: d("15")},
			{LotID: 3, Quantity: d("5"), UnitCost: d("12")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.PlanConsumption(sampleLots(), d(tt.qty))
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.Equal(t, tt.want[i].LotID, got[i].LotID)
				assert.True(t, tt.want[i].Quantity.Equal(got[i].Quantity))
				assert.True(t, tt.want[i].UnitCost.Equal(got[i].UnitCost))
			}
		})
	}
}

func TestPlanConsumption_StockInsuficiente(t *testing.T) {
	takes, err := inventory.PlanConsumption(sampleLots(), d("18"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, takes)
}

func TestPlanConsumption_CantidadInvalida(t *testing.T) {
	_, err := inventory.PlanConsumption(sampleLots(), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsumedCost(t *testing.T) {
	takes, err := inventory.PlanConsumption(sampleLots(), d("11"))
	require.NoError(t, err)
	assert.True(t, inventory.ConsumedCost(takes).Equal(d("115")))
}

func TestBlendedCost(t *testing.T) {
	got := inventory.BlendedCost(d("10"), d("10"), d("10"), d("20"))
	assert.True(t, got.Equal(d("15")))
	assert.True(t, inventory.BlendedCost(decimal.Zero, decimal.Zero, decimal.Zero, d("5")).IsZero())
}
