package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/inventory"
	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// Proveedor con el que se registran los lotes creados por ajuste positivo.
const AdjustmentSupplier = "AJUSTE"

// RegisterMovementUseCase motor de inventario por lotes: compras, ajustes y consumo PEPS.
// Todo cambio de cantidad queda pareado con un movimiento (stock previo y nuevo del producto).
type RegisterMovementUseCase struct {
	txRunner TxRunner
	markup   decimal.Decimal
	loc      *time.Location
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. markup es el margen sobre el costo promedio.
func NewRegisterMovementUseCase(txRunner TxRunner, markup decimal.Decimal, loc *time.Location) *RegisterMovementUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &RegisterMovementUseCase{txRunner: txRunner, markup: markup, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *RegisterMovementUseCase) WithClock(now func() time.Time) *RegisterMovementUseCase {
	uc.now = now
	return uc
}

// PurchaseInput entrada para registrar una compra.
type PurchaseInput struct {
	UserID         int64
	ProductID      int64
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	Supplier       string
	PurchaseDate   *time.Time
	ExpirationDate *time.Time
}

// RegisterPurchase crea un lote nuevo, registra la entrada y recalcula costo promedio y precio
// de venta, todo en una transacción. Cualquier fallo revierte la operación completa.
func (uc *RegisterMovementUseCase) RegisterPurchase(ctx context.Context, in PurchaseInput) (*dto.PurchaseResponse, error) {
	if in.ProductID <= 0 || !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	purchaseDate := membership.Date(now.In(uc.loc))
	if in.PurchaseDate != nil {
		purchaseDate = membership.Date(*in.PurchaseDate)
	}
	var expiration *time.Time
	if in.ExpirationDate != nil {
		d := membership.Date(*in.ExpirationDate)
		expiration = &d
	}

	var out *dto.PurchaseResponse
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		prior, err := repos.Lots.CountByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		lots, err := repos.Lots.ListByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		prevStock := inventory.Stock(lots)

		lot := &entity.Lot{
			ProductID:         product.ID,
			Code:              inventory.LotCode(product.ID, prior),
			InitialQuantity:   in.Quantity,
			AvailableQuantity: in.Quantity,
			UnitCost:          in.UnitCost,
			Supplier:          in.Supplier,
			PurchaseDate:      purchaseDate,
			ExpirationDate:    expiration,
			CreatedAt:         now,
		}
		if err := repos.Lots.Create(ctx, lot); err != nil {
			return err
		}
		newStock := prevStock.Add(in.Quantity)
		mov := &entity.StockMovement{
			ProductID:     product.ID,
			LotID:         &lot.ID,
			Type:          entity.MovementTypeIn,
			Quantity:      in.Quantity,
			PreviousStock: prevStock,
			NewStock:      newStock,
			Reference:     uuid.New().String(),
			Reason:        "compra " + lot.Code,
			CreatedBy:     in.UserID,
			CreatedAt:     now,
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}

		lots = append(lots, *lot)
		avg := inventory.WeightedAverageCost(lots)
		price := inventory.SalePrice(avg, uc.markup)
		if err := repos.Products.UpdatePrices(ctx, product.ID, in.UnitCost, price); err != nil {
			return err
		}
		out = &dto.PurchaseResponse{
			Lot:          toLotResponse(lot, 0),
			NewStock:     newStock,
			AverageCost:  avg.Round(4),
			NewSalePrice: price,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AdjustInput entrada de un ajuste manual de stock. Delta con signo, distinto de cero.
type AdjustInput struct {
	UserID    int64
	ProductID int64
	Delta     decimal.Decimal
	Reason    string
}

// AdjustStock ajuste positivo: lote nuevo al costo promedio vigente (proveedor AJUSTE).
// Ajuste negativo: consumo PEPS. Ambos generan movimientos de tipo ajuste.
func (uc *RegisterMovementUseCase) AdjustStock(ctx context.Context, in AdjustInput) (*dto.AdjustStockResponse, error) {
	if in.ProductID <= 0 || in.Delta.IsZero() || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	ref := uuid.New().String()

	var out *dto.AdjustStockResponse
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		lots, err := repos.Lots.ListByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		prevStock := inventory.Stock(lots)

		if in.Delta.GreaterThan(decimal.Zero) {
			if err := uc.adjustUp(ctx, repos, product, lots, in, ref, now); err != nil {
				return err
			}
		} else {
			if _, err := uc.consume(ctx, repos, product.ID, lots, in.Delta.Neg(),
				entity.MovementTypeAdjust, ref, in.Reason, in.UserID, now); err != nil {
				return err
			}
		}
		out = &dto.AdjustStockResponse{
			ProductID:     product.ID,
			PreviousStock: prevStock,
			NewStock:      prevStock.Add(in.Delta),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *RegisterMovementUseCase) adjustUp(
	ctx context.Context,
	repos repository.TxRepos,
	product *entity.Product,
	lots []entity.Lot,
	in AdjustInput,
	ref string,
	now time.Time,
) error {
	prevStock := inventory.Stock(lots)
	avg := inventory.WeightedAverageCost(lots)
	unitCost := avg
	if prevStock.IsZero() {
		unitCost = product.PurchasePrice
	}
	lot := &entity.Lot{
		ProductID:         product.ID,
		Code:              inventory.LotCode(product.ID, len(lots)),
		InitialQuantity:   in.Delta,
		AvailableQuantity: in.Delta,
		UnitCost:          unitCost.Round(4),
		Supplier:          AdjustmentSupplier,
		PurchaseDate:      membership.Date(now.In(uc.loc)),
		CreatedAt:         now,
	}
	if err := repos.Lots.Create(ctx, lot); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ProductID:     product.ID,
		LotID:         &lot.ID,
		Type:          entity.MovementTypeAdjust,
		Quantity:      in.Delta,
		PreviousStock: prevStock,
		NewStock:      prevStock.Add(in.Delta),
		Reference:     ref,
		Reason:        in.Reason,
		CreatedBy:     in.UserID,
		CreatedAt:     now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return err
	}
	newAvg := inventory.BlendedCost(prevStock, avg, in.Delta, lot.UnitCost)
	return repos.Products.UpdatePrices(ctx, product.ID, product.PurchasePrice, inventory.SalePrice(newAvg, uc.markup))
}

// ConsumeInTx descuenta qty del producto en orden PEPS usando los repositorios de la transacción
// del llamador (venta). Registra un movimiento por lote tocado y devuelve lo tomado de cada lote.
func (uc *RegisterMovementUseCase) ConsumeInTx(
	ctx context.Context,
	repos repository.TxRepos,
	productID int64,
	qty decimal.Decimal,
	movType, reference, reason string,
	userID int64,
	now time.Time,
) ([]inventory.Take, error) {
	lots, err := repos.Lots.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.consume(ctx, repos, productID, lots, qty, movType, reference, reason, userID, now)
}

func (uc *RegisterMovementUseCase) consume(
	ctx context.Context,
	repos repository.TxRepos,
	productID int64,
	lots []entity.Lot,
	qty decimal.Decimal,
	movType, reference, reason string,
	userID int64,
	now time.Time,
) ([]inventory.Take, error) {
	takes, err := inventory.PlanConsumption(lots, qty)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]entity.Lot, len(lots))
	for _, l := range lots {
		byID[l.ID] = l
	}
	stock := inventory.Stock(lots)
	for _, t := range takes {
		lot := byID[t.LotID]
		if err := repos.Lots.UpdateAvailable(ctx, t.LotID, lot.AvailableQuantity.Sub(t.Quantity)); err != nil {
			return nil, err
		}
		lotID := t.LotID
		mov := &entity.StockMovement{
			ProductID:     productID,
			LotID:         &lotID,
			Type:          movType,
			Quantity:      t.Quantity.Neg(),
			PreviousStock: stock,
			NewStock:      stock.Sub(t.Quantity),
			Reference:     reference,
			Reason:        reason,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return nil, err
		}
		stock = mov.NewStock
	}
	return takes, nil
}

// RestoreInTx devuelve a sus lotes las cantidades tomadas (anulación de venta) con movimientos de entrada.
func (uc *RegisterMovementUseCase) RestoreInTx(
	ctx context.Context,
	repos repository.TxRepos,
	productID int64,
	takes []inventory.Take,
	reference, reason string,
	userID int64,
	now time.Time,
) error {
	lots, err := repos.Lots.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	byID := make(map[int64]entity.Lot, len(lots))
	for _, l := range lots {
		byID[l.ID] = l
	}
	stock := inventory.Stock(lots)
	for _, t := range takes {
		lot, ok := byID[t.LotID]
		if !ok {
			return domain.ErrNotFound
		}
		available := lot.AvailableQuantity.Add(t.Quantity)
		if err := repos.Lots.UpdateAvailable(ctx, t.LotID, available); err != nil {
			return err
		}
		lot.AvailableQuantity = available
		byID[t.LotID] = lot

		lotID := t.LotID
		mov := &entity.StockMovement{
			ProductID:     productID,
			LotID:         &lotID,
			Type:          entity.MovementTypeIn,
			Quantity:      t.Quantity,
			PreviousStock: stock,
			NewStock:      stock.Add(t.Quantity),
			Reference:     reference,
			Reason:        reason,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}
		stock = mov.NewStock
	}
	return nil
}

func toLotResponse(l *entity.Lot, rank int) dto.LotResponse {
	return dto.LotResponse{
		ID:                l.ID,
		ProductID:         l.ProductID,
		Code:              l.Code,
		InitialQuantity:   l.InitialQuantity,
		AvailableQuantity: l.AvailableQuantity,
		UnitCost:          l.UnitCost,
		Supplier:          l.Supplier,
		PurchaseDate:      l.PurchaseDate,
		ExpirationDate:    l.ExpirationDate,
		FIFORank:          rank,
		Status:            l.Status(),
	}
}
