package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// MovementFilter criterios del kardex. To es exclusivo.
type MovementFilter struct {
	ProductID int64
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia para movimientos de inventario (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, int, error)
}
