package inventory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// DefaultMarkup margen sobre el costo promedio cuando la configuración no indica otro.
var DefaultMarkup = decimal.RequireFromString("0.30")

// LotCode genera el código legible del lote: L{producto:3}-{secuencia:3}.
// priorLots es la cantidad de lotes que el producto ya tenía.
func LotCode(productID int64, priorLots int) string {
	return fmt.Sprintf("L%03d-%03d", productID, priorLots+1)
}

// WeightedAverageCost Σ(disponible × costo) / Σ(disponible) sobre lotes con disponible > 0.
// Devuelve cero si no hay existencia.
func WeightedAverageCost(lots []entity.Lot) decimal.Decimal {
	qty := decimal.Zero
	value := decimal.Zero
	for _, l := range lots {
		if !l.AvailableQuantity.GreaterThan(decimal.Zero) {
			continue
		}
		qty = qty.Add(l.AvailableQuantity)
		value = value.Add(l.AvailableQuantity.Mul(l.UnitCost))
	}
	if qty.IsZero() {
		return decimal.Zero
	}
	return value.Div(qty)
}

// SalePrice precio de venta = promedio × (1 + margen), redondeado a 2 decimales.
func SalePrice(avgCost, markup decimal.Decimal) decimal.Decimal {
	return avgCost.Mul(decimal.NewFromInt(1).Add(markup)).Round(2)
}

// Stock suma del disponible de los lotes.
func Stock(lots []entity.Lot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		if l.AvailableQuantity.GreaterThan(decimal.Zero) {
			total = total.Add(l.AvailableQuantity)
		}
	}
	return total
}

// Valuation Σ(disponible × costo unitario).
func Valuation(lots []entity.Lot) decimal.Decimal {
	value := decimal.Zero
	for _, l := range lots {
		if l.AvailableQuantity.GreaterThan(decimal.Zero) {
			value = value.Add(l.AvailableQuantity.Mul(l.UnitCost))
		}
	}
	return value
}

// SortFIFO ordena en sitio por fecha de compra ascendente y luego por id.
func SortFIFO(lots []entity.Lot) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		if !a.PurchaseDate.Equal(b.PurchaseDate) {
			return a.PurchaseDate.Before(b.PurchaseDate)
		}
		return a.ID < b.ID
	})
}

// LotView lote con su número PEPS (1 = el más antiguo) y estado.
type LotView struct {
	entity.Lot
	FIFORank int
	Status   string
}

// RankFIFO devuelve los lotes en orden PEPS con su número y estado. No modifica la entrada.
func RankFIFO(lots []entity.Lot) []LotView {
	sorted := make([]entity.Lot, len(lots))
	copy(sorted, lots)
	SortFIFO(sorted)
	out := make([]LotView, len(sorted))
	for i := range sorted {
		out[i] = LotView{Lot: sorted[i], FIFORank: i + 1, Status: sorted[i].Status()}
	}
	return out
}

// Take cantidad a descontar de un lote.
type Take struct {
	LotID    int64
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Cost costo de la cantidad tomada.
func (t Take) Cost() decimal.Decimal {
	return t.Quantity.Mul(t.UnitCost)
}

// PlanConsumption recorre los lotes en orden PEPS tomando de los activos hasta cubrir qty.
// Si no alcanza devuelve ErrInsufficientStock y ningún plan parcial.
func PlanConsumption(lots []entity.Lot, qty decimal.Decimal) ([]Take, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if Stock(lots).LessThan(qty) {
		return nil, domain.ErrInsufficientStock
	}
	sorted := make([]entity.Lot, len(lots))
	copy(sorted, lots)
	SortFIFO(sorted)

	remaining := qty
	var takes []Take
	for _, l := range sorted {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		if !l.AvailableQuantity.GreaterThan(decimal.Zero) {
			continue
		}
		take := decimal.Min(l.AvailableQuantity, remaining)
		takes = append(takes, Take{LotID: l.ID, Quantity: take, UnitCost: l.UnitCost})
		remaining = remaining.Sub(take)
	}
	return takes, nil
}

// ConsumedCost suma del costo de un plan de consumo.
func ConsumedCost(takes []Take) decimal.Decimal {
	total := decimal.Zero
	for _, t := range takes {
		total = total.Add(t.Cost())
	}
	return total
}

// BlendedCost promedio tras sumar qty unidades a unitCost sobre un stock valorado a avg.
// Cero si el stock resultante no es positivo.
func BlendedCost(stock, avg, qty, unitCost decimal.Decimal) decimal.Decimal {
	total := stock.Add(qty)
	if !total.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return stock.Mul(avg).Add(qty.Mul(unitCost)).Div(total)
}
