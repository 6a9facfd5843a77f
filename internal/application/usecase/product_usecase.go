package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	appinventory "github.com/jhoicas/Gimnasio-api/internal/application/inventory"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/inventory"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/pkg/textutil"
)

// ProductUseCase casos de uso CRUD para productos. Costo y stock se manejan vía lotes y movimientos.
type ProductUseCase struct {
	tx              TxRunner
	repo            repository.ProductRepository
	lotRepo         repository.LotRepository
	lowStockDefault decimal.Decimal
}

// NewProductUseCase construye el caso de uso. lowStockDefault se usa cuando el alta no trae mínimo.
func NewProductUseCase(tx TxRunner, repo repository.ProductRepository, lotRepo repository.LotRepository, lowStockDefault decimal.Decimal) *ProductUseCase {
	return &ProductUseCase{tx: tx, repo: repo, lotRepo: lotRepo, lowStockDefault: lowStockDefault}
}

// Create crea un producto sin stock; el stock entra solo por compras.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	minStock := uc.lowStockDefault
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		minStock = *in.MinStock
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "unidad"
	}
	now := time.Now()
	product := &entity.Product{
		Name:          name,
		Category:      strings.TrimSpace(in.Category),
		Brand:         strings.TrimSpace(in.Brand),
		Unit:          unit,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		MinStock:      minStock,
		Description:   in.Description,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	product.SearchKey = productSearchKey(product)
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// GetByID obtiene un producto con su stock y costo promedio.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	lots, err := uc.lotRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, lots), nil
}

// Update actualiza un producto. No permite modificar stock ni costo de compra.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if product.Name == "" || product.SalePrice.IsNegative() || product.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product.SearchKey = productSearchKey(product)
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	lots, err := uc.lotRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, lots), nil
}

// List lista productos con búsqueda, categoría y, opcionalmente, solo los de stock bajo.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	available, err := uc.lotRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	byProduct := appinventory.GroupLots(available)

	var (
		list  []*entity.Product
		total int
	)
	if in.LowStock {
		// el stock no es columna: se filtra en memoria sobre el catálogo completo
		all, err := uc.repo.ListAll(ctx, false)
		if err != nil {
			return nil, err
		}
		key := textutil.SearchKey(in.Query)
		var low []*entity.Product
		for _, p := range all {
			if in.Category != "" && p.Category != in.Category {
				continue
			}
			if key != "" && !strings.Contains(p.SearchKey, key) {
				continue
			}
			if appinventory.IsLowStock(p, inventory.Stock(byProduct[p.ID])) {
				low = append(low, p)
			}
		}
		total = len(low)
		list = paginate(low, in.Limit, in.Offset)
	} else {
		list, total, err = uc.repo.List(ctx, repository.ProductFilter{
			SearchKey: textutil.SearchKey(in.Query),
			Category:  in.Category,
			Limit:     in.Limit,
			Offset:    in.Offset,
		})
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, byProduct[p.ID]))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ListCategories categorías distintas en uso.
func (uc *ProductUseCase) ListCategories(ctx context.Context) ([]string, error) {
	return uc.repo.ListCategories(ctx)
}

// Delete elimina un producto. ErrConflict si tiene stock o ventas registradas.
// Si ya tuvo lotes o movimientos se desactiva en lugar de borrarse, así el kardex queda intacto.
// Las verificaciones y la escritura corren en la misma transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		product, err := repos.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		lots, err := repos.Lots.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		if inventory.Stock(lots).IsPositive() {
			return domain.ErrConflict
		}
		sold, err := repos.Products.HasSales(ctx, id)
		if err != nil {
			return err
		}
		if sold {
			return domain.ErrConflict
		}
		_, moves, err := repos.Movements.List(ctx, repository.MovementFilter{ProductID: id, Limit: 1})
		if err != nil {
			return err
		}
		if len(lots) > 0 || moves > 0 {
			product.Active = false
			product.UpdatedAt = time.Now()
			return repos.Products.Update(ctx, product)
		}
		return repos.Products.Delete(ctx, id)
	})
}

func productSearchKey(p *entity.Product) string {
	return textutil.SearchKey(p.Name, p.Brand, p.Category)
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func toProductResponse(p *entity.Product, lots []entity.Lot) *dto.ProductResponse {
	stock := inventory.Stock(lots)
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Brand:         p.Brand,
		Unit:          p.Unit,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		MinStock:      p.MinStock,
		Stock:         stock,
		AverageCost:   inventory.WeightedAverageCost(lots).Round(4),
		LowStock:      appinventory.IsLowStock(p, stock),
		Description:   p.Description,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
