package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// LotRepository puerto de persistencia para lotes de compra.
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	GetByID(ctx context.Context, id int64) (*entity.Lot, error)
	CountByProduct(ctx context.Context, productID int64) (int, error)
	// ListByProduct todos los lotes del producto en orden PEPS.
	ListByProduct(ctx context.Context, productID int64) ([]entity.Lot, error)
	// ListAvailable lotes con disponible > 0 de todos los productos, en orden PEPS.
	ListAvailable(ctx context.Context) ([]entity.Lot, error)
	UpdateAvailable(ctx context.Context, lotID int64, available decimal.Decimal) error
}
