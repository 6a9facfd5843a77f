package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// SaleFilter criterios de listado de ventas. To es exclusivo.
type SaleFilter struct {
	From   *time.Time
	To     *time.Time
	Status string
	Limit  int
	Offset int
}

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	// Create inserta la venta con sus líneas y los lotes consumidos; asigna IDs.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID venta con líneas y lotes; nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, int, error)
	MarkVoided(ctx context.Context, id int64, reason string, at time.Time) error
}
