package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo planes de membresía sobre SQLite.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador de planes.
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `id, name, price_usd, duration_days, description, active, created_at, updated_at`

// Create persiste un plan nuevo.
func (r *PlanRepo) Create(ctx context.Context, p *entity.MembershipPlan) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO membership_plans (name, price_usd, duration_days, description, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.PriceUSD, p.DurationDays, p.Description, p.Active, utc(p.CreatedAt), utc(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert plan id: %w", err)
	}
	return nil
}

// GetByID obtiene un plan; nil si no existe.
func (r *PlanRepo) GetByID(ctx context.Context, id int64) (*entity.MembershipPlan, error) {
	p, err := scanPlan(r.q.QueryRowContext(ctx, `SELECT `+planColumns+` FROM membership_plans WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}

// Update actualiza nombre, precio, duración, descripción y estado.
func (r *PlanRepo) Update(ctx context.Context, p *entity.MembershipPlan) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE membership_plans
		SET name = ?, price_usd = ?, duration_days = ?, description = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.PriceUSD, p.DurationDays, p.Description, p.Active, utc(p.UpdatedAt), p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

// Delete elimina el plan.
func (r *PlanRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM membership_plans WHERE id = ?`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}

// List planes por precio; activeOnly filtra los inactivos.
func (r *PlanRepo) List(ctx context.Context, activeOnly bool) ([]*entity.MembershipPlan, error) {
	query := `SELECT ` + planColumns + ` FROM membership_plans`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY duration_days, name`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.MembershipPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountClients clientes asociados al plan.
func (r *PlanRepo) CountClients(ctx context.Context, planID int64) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients WHERE plan_id = ?`, planID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count plan clients: %w", err)
	}
	return n, nil
}

func scanPlan(s rowScanner) (*entity.MembershipPlan, error) {
	var p entity.MembershipPlan
	if err := s.Scan(&p.ID, &p.Name, &p.PriceUSD, &p.DurationDays, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
