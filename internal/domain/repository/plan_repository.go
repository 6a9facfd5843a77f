package repository

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// PlanRepository puerto de persistencia para planes de membresía.
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.MembershipPlan) error
	GetByID(ctx context.Context, id int64) (*entity.MembershipPlan, error)
	Update(ctx context.Context, plan *entity.MembershipPlan) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, activeOnly bool) ([]*entity.MembershipPlan, error)
	// CountClients cuántos clientes referencian el plan.
	CountClients(ctx context.Context, planID int64) (int, error)
}
