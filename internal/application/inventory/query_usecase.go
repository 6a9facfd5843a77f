package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/inventory"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// QueryUseCase consultas de inventario: lotes PEPS, kardex y valuación.
type QueryUseCase struct {
	productRepo  repository.ProductRepository
	lotRepo      repository.LotRepository
	movementRepo repository.StockMovementRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	movementRepo repository.StockMovementRepository,
) *QueryUseCase {
	return &QueryUseCase{productRepo: productRepo, lotRepo: lotRepo, movementRepo: movementRepo}
}

// ListLots lotes del producto en orden PEPS con su número y estado.
func (uc *QueryUseCase) ListLots(ctx context.Context, productID int64) ([]dto.LotResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	lots, err := uc.lotRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	views := inventory.RankFIFO(lots)
	out := make([]dto.LotResponse, 0, len(views))
	for i := range views {
		out = append(out, toLotResponse(&views[i].Lot, views[i].FIFORank))
	}
	return out, nil
}

// ListMovements kardex filtrado y paginado, más reciente primero.
func (uc *QueryUseCase) ListMovements(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.movementRepo.List(ctx, repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		From:      in.From,
		To:        in.To,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Valuation stock, costo promedio y valor Σ(disponible × costo) por producto activo.
func (uc *QueryUseCase) Valuation(ctx context.Context) (*dto.ValuationResponse, error) {
	products, err := uc.productRepo.ListAll(ctx, true)
	if err != nil {
		return nil, err
	}
	lots, err := uc.lotRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	byProduct := GroupLots(lots)

	out := &dto.ValuationResponse{
		Rows:       make([]dto.ValuationRow, 0, len(products)),
		TotalValue: decimal.Zero,
		TotalUnits: decimal.Zero,
	}
	for _, p := range products {
		pl := byProduct[p.ID]
		stock := inventory.Stock(pl)
		value := inventory.Valuation(pl).Round(2)
		low := IsLowStock(p, stock)
		if low {
			out.LowStock++
		}
		out.Rows = append(out.Rows, dto.ValuationRow{
			ProductID:   p.ID,
			ProductName: p.Name,
			Category:    p.Category,
			Stock:       stock,
			MinStock:    p.MinStock,
			AverageCost: inventory.WeightedAverageCost(pl).Round(4),
			SalePrice:   p.SalePrice,
			Value:       value,
			LowStock:    low,
		})
		out.TotalValue = out.TotalValue.Add(value)
		out.TotalUnits = out.TotalUnits.Add(stock)
	}
	return out, nil
}

// GroupLots agrupa lotes por producto conservando el orden recibido.
func GroupLots(lots []entity.Lot) map[int64][]entity.Lot {
	out := make(map[int64][]entity.Lot)
	for _, l := range lots {
		out[l.ProductID] = append(out[l.ProductID], l)
	}
	return out
}

// IsLowStock stock en o por debajo del mínimo del producto.
func IsLowStock(p *entity.Product, stock decimal.Decimal) bool {
	return stock.LessThanOrEqual(p.MinStock)
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		LotID:         m.LotID,
		LotCode:       m.LotCode,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reference:     m.Reference,
		Reason:        m.Reason,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
