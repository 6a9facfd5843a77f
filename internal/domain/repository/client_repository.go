package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// ClientFilter criterios de listado de clientes. Los rangos de vencimiento son inclusivos;
// nil = sin límite.
type ClientFilter struct {
	SearchKey  string // ya normalizada (textutil.SearchKey)
	PlanID     int64
	ExpiryFrom *time.Time
	ExpiryTo   *time.Time
	Limit      int
	Offset     int
}

// ClientRepository puerto de persistencia para clientes.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	GetByCedula(ctx context.Context, cedula string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id int64) error
	// List devuelve la página y el total sin paginar.
	List(ctx context.Context, f ClientFilter) ([]*entity.Client, int, error)
	// CountByExpiry cuenta clientes con vencimiento en [from, to] (nil = abierto).
	CountByExpiry(ctx context.Context, from, to *time.Time) (int, error)
}

// ClientPaymentRepository puerto de persistencia para pagos de membresía.
type ClientPaymentRepository interface {
	Create(ctx context.Context, p *entity.ClientPayment) error
	ListByClient(ctx context.Context, clientID int64) ([]*entity.ClientPayment, error)
}
