package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
// SQLite agrega NUMERIC en punto flotante: los montos se redondean al escanear.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesTotals totales de ventas completadas en [from, to).
func (r *ReportRepo) SalesTotals(ctx context.Context, from, to time.Time) (repository.SalesTotals, error) {
	const query = `
	SELECT COUNT(*),
	       COALESCE(SUM(total_usd), 0),
	       COALESCE(SUM(total_bs), 0),
	       COALESCE(SUM(cost_total), 0),
	       COALESCE(SUM(discount_usd), 0)
	FROM sales
	WHERE status = ? AND created_at >= ? AND created_at < ?`

	var t repository.SalesTotals
	err := r.q.QueryRowContext(ctx, query, entity.SaleStatusCompleted, utc(from), utc(to)).
		Scan(&t.Count, &t.TotalUSD, &t.TotalBs, &t.CostTotal, &t.Discount)
	if err != nil {
		return t, fmt.Errorf("report.SalesTotals: %w", err)
	}
	t.TotalUSD = t.TotalUSD.Round(2)
	t.TotalBs = t.TotalBs.Round(2)
	t.CostTotal = t.CostTotal.Round(2)
	t.Discount = t.Discount.Round(2)
	return t, nil
}

// SalesByPaymentMethod ventas completadas agrupadas por método de pago.
func (r *ReportRepo) SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]repository.PaymentMethodTotal, error) {
	const query = `
	SELECT payment_method, COUNT(*), COALESCE(SUM(total_usd), 0), COALESCE(SUM(total_bs), 0)
	FROM sales
	WHERE status = ? AND created_at >= ? AND created_at < ?
	GROUP BY payment_method
	ORDER BY SUM(total_usd) DESC`

	rows, err := r.q.QueryContext(ctx, query, entity.SaleStatusCompleted, utc(from), utc(to))
	if err != nil {
		return nil, fmt.Errorf("report.SalesByPaymentMethod: %w", err)
	}
	defer rows.Close()
	var out []repository.PaymentMethodTotal
	for rows.Next() {
		var row repository.PaymentMethodTotal
		if err := rows.Scan(&row.Method, &row.Count, &row.TotalUSD, &row.TotalBs); err != nil {
			return nil, fmt.Errorf("report.SalesByPaymentMethod scan: %w", err)
		}
		row.TotalUSD = row.TotalUSD.Round(2)
		row.TotalBs = row.TotalBs.Round(2)
		out = append(out, row)
	}
	return out, rows.Err()
}

// TopProducts productos con mayor ingreso en ventas completadas.
func (r *ReportRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductSalesResult, error) {
	query := `
	SELECT i.product_id, COALESCE(p.name, ''), SUM(i.quantity), SUM(i.subtotal), SUM(i.cost_total)
	FROM sale_items i
	JOIN sales s ON s.id = i.sale_id
	LEFT JOIN products p ON p.id = i.product_id
	WHERE s.status = ? AND s.created_at >= ? AND s.created_at < ?
	GROUP BY i.product_id, p.name
	ORDER BY SUM(i.subtotal) DESC, i.product_id`
	args := []any{entity.SaleStatusCompleted, utc(from), utc(to)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.TopProducts: %w", err)
	}
	defer rows.Close()
	var out []repository.ProductSalesResult
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.UnitsSold, &row.Revenue, &row.Cost); err != nil {
			return nil, fmt.Errorf("report.TopProducts scan: %w", err)
		}
		row.UnitsSold = row.UnitsSold.Round(3)
		row.Revenue = row.Revenue.Round(2)
		row.Cost = row.Cost.Round(2)
		out = append(out, row)
	}
	return out, rows.Err()
}

// UnitsSoldSince unidades vendidas (ventas completadas) por producto desde since.
func (r *ReportRepo) UnitsSoldSince(ctx context.Context, since time.Time) (map[int64]decimal.Decimal, error) {
	const query = `
	SELECT i.product_id, SUM(i.quantity)
	FROM sale_items i
	JOIN sales s ON s.id = i.sale_id
	WHERE s.status = ? AND s.created_at >= ?
	GROUP BY i.product_id`

	rows, err := r.q.QueryContext(ctx, query, entity.SaleStatusCompleted, utc(since))
	if err != nil {
		return nil, fmt.Errorf("report.UnitsSoldSince: %w", err)
	}
	defer rows.Close()
	out := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var id int64
		var units decimal.Decimal
		if err := rows.Scan(&id, &units); err != nil {
			return nil, fmt.Errorf("report.UnitsSoldSince scan: %w", err)
		}
		out[id] = units.Round(3)
	}
	return out, rows.Err()
}

// MembershipIncome pagos de membresía en [from, to) agrupados por plan.
func (r *ReportRepo) MembershipIncome(ctx context.Context, from, to time.Time) ([]repository.PlanIncomeResult, error) {
	const query = `
	SELECT cp.plan_id, COALESCE(p.name, ''), COUNT(*), COALESCE(SUM(cp.amount_usd), 0), COALESCE(SUM(cp.amount_bs), 0)
	FROM client_payments cp
	LEFT JOIN membership_plans p ON p.id = cp.plan_id
	WHERE cp.paid_at >= ? AND cp.paid_at < ?
	GROUP BY cp.plan_id, p.name
	ORDER BY SUM(cp.amount_usd) DESC, cp.plan_id`

	rows, err := r.q.QueryContext(ctx, query, utc(from), utc(to))
	if err != nil {
		return nil, fmt.Errorf("report.MembershipIncome: %w", err)
	}
	defer rows.Close()
	var out []repository.PlanIncomeResult
	for rows.Next() {
		var row repository.PlanIncomeResult
		if err := rows.Scan(&row.PlanID, &row.PlanName, &row.Payments, &row.AmountUSD, &row.AmountBs); err != nil {
			return nil, fmt.Errorf("report.MembershipIncome scan: %w", err)
		}
		row.AmountUSD = row.AmountUSD.Round(2)
		row.AmountBs = row.AmountBs.Round(2)
		out = append(out, row)
	}
	return out, rows.Err()
}
