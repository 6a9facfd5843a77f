package pos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/inventory"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// SaleUseCase registra y anula ventas descontando inventario PEPS en una sola transacción.
type SaleUseCase struct {
	txRunner  TxRunner
	stock     StockMover
	saleRepo  repository.SaleRepository
	carts     *CartService
	generator ReceiptPDFGenerator
	loc       *time.Location
	now       func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	stock StockMover,
	saleRepo repository.SaleRepository,
	carts *CartService,
	generator ReceiptPDFGenerator,
	loc *time.Location,
) *SaleUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleUseCase{
		txRunner:  txRunner,
		stock:     stock,
		saleRepo:  saleRepo,
		carts:     carts,
		generator: generator,
		loc:       loc,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *SaleUseCase) WithClock(now func() time.Time) *SaleUseCase {
	uc.now = now
	return uc
}

// Checkout cobra el carrito del usuario y lo vacía si la venta se registra.
func (uc *SaleUseCase) Checkout(ctx context.Context, userID int64, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	lines := uc.carts.snapshot(userID)
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	items := make([]dto.SaleItemRequest, 0, len(lines))
	for _, l := range lines {
		price := l.UnitPrice
		items = append(items, dto.SaleItemRequest{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: &price})
	}
	sale, err := uc.CreateSale(ctx, userID, dto.CreateSaleRequest{Items: items, PaymentInfo: in.PaymentInfo})
	if err != nil {
		return nil, err
	}
	uc.carts.Clear(userID)
	return sale, nil
}

// CreateSale crea la venta, registra una salida por cada lote tocado y guarda cabecera,
// líneas y lotes consumidos. Si algún producto no alcanza, se hace rollback de todo.
func (uc *SaleUseCase) CreateSale(ctx context.Context, userID int64, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) ||
		in.ExchangeRate.IsNegative() || in.DiscountUSD.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 || !it.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := uc.now()
	opRef := uuid.New().String() // agrupa los movimientos de inventario de esta venta
	var saleID int64

	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		if in.ClientID != nil {
			client, err := repos.Clients.GetByID(ctx, *in.ClientID)
			if err != nil {
				return err
			}
			if client == nil {
				return domain.ErrNotFound
			}
		}

		sale := &entity.Sale{
			ClientID:      in.ClientID,
			UserID:        userID,
			Status:        entity.SaleStatusCompleted,
			PaymentMethod: in.PaymentMethod,
			ExchangeRate:  in.ExchangeRate,
			SubtotalUSD:   decimal.Zero,
			CostTotal:     decimal.Zero,
			Reference:     strings.TrimSpace(in.Reference),
			OperationRef:  opRef,
			CreatedAt:     now,
		}
		for _, it := range in.Items {
			product, err := repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			price := product.SalePrice
			if it.UnitPrice != nil {
				price = *it.UnitPrice
			}
			takes, err := uc.stock.ConsumeInTx(ctx, repos, product.ID, it.Quantity,
				entity.MovementTypeOut, opRef, "venta", userID, now)
			if err != nil {
				return err
			}
			cost := inventory.ConsumedCost(takes)
			item := entity.SaleItem{
				ProductID: product.ID,
				Quantity:  it.Quantity,
				UnitPrice: price,
				Subtotal:  it.Quantity.Mul(price).Round(2),
				UnitCost:  cost.Div(it.Quantity).Round(4),
				CostTotal: cost.Round(2),
			}
			for _, t := range takes {
				item.Lots = append(item.Lots, entity.SaleItemLot{LotID: t.LotID, Quantity: t.Quantity, UnitCost: t.UnitCost})
			}
			sale.Items = append(sale.Items, item)
			sale.SubtotalUSD = sale.SubtotalUSD.Add(item.Subtotal)
			sale.CostTotal = sale.CostTotal.Add(item.CostTotal)
		}

		if in.DiscountUSD.GreaterThan(sale.SubtotalUSD) {
			return fmt.Errorf("%w: el descuento supera el subtotal", domain.ErrInvalidInput)
		}
		sale.DiscountUSD = in.DiscountUSD.Round(2)
		sale.TotalUSD = sale.SubtotalUSD.Sub(sale.DiscountUSD)
		sale.TotalBs = sale.TotalUSD.Mul(in.ExchangeRate).Round(2)

		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		saleID = sale.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetSale(ctx, saleID)
}

// VoidSale devuelve a cada lote lo que la venta tomó (movimientos de entrada con la misma
// referencia de operación) y marca la venta como anulada.
func (uc *SaleUseCase) VoidSale(ctx context.Context, userID, saleID int64, in dto.VoidSaleRequest) (*dto.SaleResponse, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		sale, err := repos.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusVoided {
			return domain.ErrSaleVoided
		}
		for _, it := range sale.Items {
			takes := make([]inventory.Take, 0, len(it.Lots))
			for _, l := range it.Lots {
				takes = append(takes, inventory.Take{LotID: l.LotID, Quantity: l.Quantity, UnitCost: l.UnitCost})
			}
			if err := uc.stock.RestoreInTx(ctx, repos, it.ProductID, takes, sale.OperationRef,
				fmt.Sprintf("anulación venta #%d: %s", sale.ID, reason), userID, now); err != nil {
				return err
			}
		}
		return repos.Sales.MarkVoided(ctx, sale.ID, reason, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetSale(ctx, saleID)
}

// GetSale venta con líneas y lotes consumidos.
func (uc *SaleUseCase) GetSale(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// ListSales ventas del rango de fechas (calendario local, inclusivo), más recientes primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	from, to := dto.LocalDayRange(in.From, in.To, uc.loc)
	list, total, err := uc.saleRepo.List(ctx, repository.SaleFilter{
		From:   from,
		To:     to,
		Status: in.Status,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ReceiptPDF genera el comprobante de la venta.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la venta no existe.
func (uc *SaleUseCase) ReceiptPDF(ctx context.Context, saleID int64) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.GetSale(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateSaleReceipt(ctx, sale)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("venta_%06d.pdf", sale.ID), nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            s.ID,
		ClientID:      s.ClientID,
		ClientName:    s.ClientName,
		UserID:        s.UserID,
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		ExchangeRate:  s.ExchangeRate,
		SubtotalUSD:   s.SubtotalUSD,
		DiscountUSD:   s.DiscountUSD,
		TotalUSD:      s.TotalUSD,
		TotalBs:       s.TotalBs,
		CostTotal:     s.CostTotal,
		Reference:     s.Reference,
		OperationRef:  s.OperationRef,
		VoidReason:    s.VoidReason,
		CreatedAt:     s.CreatedAt,
		VoidedAt:      s.VoidedAt,
	}
	for _, it := range s.Items {
		item := dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			UnitCost:    it.UnitCost,
			CostTotal:   it.CostTotal,
		}
		for _, l := range it.Lots {
			item.Lots = append(item.Lots, dto.SaleItemLotResponse{LotID: l.LotID, Quantity: l.Quantity, UnitCost: l.UnitCost})
		}
		out.Items = append(out.Items, item)
	}
	return out
}
