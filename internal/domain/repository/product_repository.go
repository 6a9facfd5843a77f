package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	SearchKey  string
	Category   string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdatePrices actualiza precio de compra y de venta (usado por el motor de inventario).
	UpdatePrices(ctx context.Context, productID int64, purchasePrice, salePrice decimal.Decimal) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	// ListAll productos sin paginar (valuación, reposición).
	ListAll(ctx context.Context, activeOnly bool) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	// HasSales indica si alguna línea de venta referencia el producto.
	HasSales(ctx context.Context, productID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}
