package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain/inventory"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// Días de historial de ventas que pesan en la prioridad de reposición.
const replenishmentWindowDays = 90

var idealStockFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición.
// Combina el stock por lotes con el historial de ventas para priorizar los productos críticos.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	reportRepo  repository.ReportRepository
	now         func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	reportRepo repository.ReportRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		productRepo: productRepo,
		lotRepo:     lotRepo,
		reportRepo:  reportRepo,
		now:         time.Now,
	}
}

// GenerateReplenishmentList devuelve los productos activos con stock <= mínimo, la cantidad
// sugerida de pedido y un ranking de prioridad basado en el volumen de ventas reciente.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Productos activos y su stock por lotes
	products, err := uc.productRepo.ListAll(ctx, true)
	if err != nil {
		return nil, err
	}
	lots, err := uc.lotRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	byProduct := GroupLots(lots)

	// 2. Unidades vendidas en los últimos 90 días
	since := uc.now().AddDate(0, 0, -replenishmentWindowDays)
	sold, err := uc.reportRepo.UnitsSoldSince(ctx, since)
	if err != nil {
		return nil, err
	}

	// 3. Construir las sugerencias
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		pl := byProduct[p.ID]
		stock := inventory.Stock(pl)
		if !IsLowStock(p, stock) {
			continue
		}
		idealStock := p.MinStock.Mul(idealStockFactor)
		suggestedQty := idealStock.Sub(stock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		// Sin existencia el costo de referencia es el de la última compra
		unitCost := inventory.WeightedAverageCost(pl)
		if unitCost.IsZero() {
			unitCost = p.PurchasePrice
		}
		unitsSold, ok := sold[p.ID]
		if !ok {
			unitsSold = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:           p.ID,
			ProductName:         p.Name,
			Category:            p.Category,
			CurrentStock:        stock,
			MinStock:            p.MinStock,
			IdealStock:          idealStock,
			SuggestedOrderQty:   suggestedQty,
			UnitCost:            unitCost.Round(4),
			EstimatedOrderCost:  suggestedQty.Mul(unitCost).Round(2),
			UnitsSoldLast90Days: unitsSold,
		})
	}

	// 4. Ordenar: mayor volumen de ventas, luego mayor déficit bajo el mínimo.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.UnitsSoldLast90Days.Equal(b.UnitsSoldLast90Days) {
			return a.UnitsSoldLast90Days.GreaterThan(b.UnitsSoldLast90Days)
		}
		defA := a.MinStock.Sub(a.CurrentStock)
		defB := b.MinStock.Sub(b.CurrentStock)
		return defA.GreaterThan(defB)
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}
