package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// PlanUseCase CRUD de planes de membresía.
type PlanUseCase struct {
	repo repository.PlanRepository
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(repo repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{repo: repo}
}

// Create crea un plan. Nombre duplicado -> ErrDuplicate (lo detecta el repositorio).
func (uc *PlanUseCase) Create(ctx context.Context, in dto.PlanRequest) (*dto.PlanResponse, error) {
	if err := validatePlan(in); err != nil {
		return nil, err
	}
	now := time.Now()
	plan := &entity.MembershipPlan{
		Name:         strings.TrimSpace(in.Name),
		PriceUSD:     in.PriceUSD,
		DurationDays: in.DurationDays,
		Description:  in.Description,
		Active:       in.Active == nil || *in.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Update reemplaza los datos del plan. Los clientes existentes conservan su vencimiento.
func (uc *PlanUseCase) Update(ctx context.Context, id int64, in dto.PlanRequest) (*dto.PlanResponse, error) {
	if err := validatePlan(in); err != nil {
		return nil, err
	}
	plan, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	plan.Name = strings.TrimSpace(in.Name)
	plan.PriceUSD = in.PriceUSD
	plan.DurationDays = in.DurationDays
	plan.Description = in.Description
	if in.Active != nil {
		plan.Active = *in.Active
	}
	plan.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Delete elimina el plan; ErrConflict mientras haya clientes que lo referencien.
func (uc *PlanUseCase) Delete(ctx context.Context, id int64) error {
	plan, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrNotFound
	}
	n, err := uc.repo.CountClients(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// Get obtiene un plan por ID.
func (uc *PlanUseCase) Get(ctx context.Context, id int64) (*dto.PlanResponse, error) {
	plan, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return toPlanResponse(plan), nil
}

// List lista los planes; activeOnly oculta los inactivos.
func (uc *PlanUseCase) List(ctx context.Context, activeOnly bool) ([]dto.PlanResponse, error) {
	plans, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, *toPlanResponse(p))
	}
	return out, nil
}

func validatePlan(in dto.PlanRequest) error {
	if strings.TrimSpace(in.Name) == "" || in.DurationDays <= 0 || in.PriceUSD.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toPlanResponse(p *entity.MembershipPlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		PriceUSD:     p.PriceUSD,
		DurationDays: p.DurationDays,
		Description:  p.Description,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
