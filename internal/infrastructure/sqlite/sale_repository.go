package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre SQLite. Create debe correr dentro de una transacción.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleSelect = `
	SELECT s.id, s.client_id, COALESCE(TRIM(c.first_name || ' ' || c.last_name), ''), s.user_id, s.status,
	       s.payment_method, s.exchange_rate, s.subtotal_usd, s.discount_usd, s.total_usd, s.total_bs,
	       s.cost_total, s.reference, s.operation_ref, s.void_reason, s.created_at, s.voided_at
	FROM sales s
	LEFT JOIN clients c ON c.id = s.client_id`

// Create inserta cabecera, líneas y lotes consumidos.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO sales (client_id, user_id, status, payment_method, exchange_rate, subtotal_usd,
			discount_usd, total_usd, total_bs, cost_total, reference, operation_ref, void_reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ClientID, s.UserID, s.Status, s.PaymentMethod, s.ExchangeRate, s.SubtotalUSD,
		s.DiscountUSD, s.TotalUSD, s.TotalBs, s.CostTotal, s.Reference, s.OperationRef, s.VoidReason, utc(s.CreatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	if s.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("insert sale id: %w", err)
	}

	for i := range s.Items {
		it := &s.Items[i]
		it.SaleID = s.ID
		res, err := r.q.ExecContext(ctx, `
			INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, subtotal, unit_cost, cost_total)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			it.SaleID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal, it.UnitCost, it.CostTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
		if it.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert sale item id: %w", err)
		}
		for j := range it.Lots {
			sl := &it.Lots[j]
			sl.SaleItemID = it.ID
			res, err := r.q.ExecContext(ctx,
				`INSERT INTO sale_item_lots (sale_item_id, lot_id, quantity, unit_cost) VALUES (?, ?, ?, ?)`,
				sl.SaleItemID, sl.LotID, sl.Quantity, sl.UnitCost,
			)
			if err != nil {
				return fmt.Errorf("insert sale item lot: %w", err)
			}
			if sl.ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("insert sale item lot id: %w", err)
			}
		}
	}
	return nil
}

// GetByID venta completa con líneas y lotes; nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRowContext(ctx, saleSelect+` WHERE s.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// List cabeceras de ventas (sin líneas), más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	var conds []string
	var args []any
	if f.From != nil {
		conds = append(conds, `s.created_at >= ?`)
		args = append(args, utc(*f.From))
	}
	if f.To != nil {
		conds = append(conds, `s.created_at < ?`)
		args = append(args, utc(*f.To))
	}
	if f.Status != "" {
		conds = append(conds, `s.status = ?`)
		args = append(args, f.Status)
	}
	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, ` AND `)
	}

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}
	limit, offset := page(f.Limit, f.Offset)
	rows, err := r.q.QueryContext(ctx, saleSelect+where+` ORDER BY s.created_at DESC, s.id DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// MarkVoided marca la venta como anulada.
func (r *SaleRepo) MarkVoided(ctx context.Context, id int64, reason string, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sales SET status = ?, void_reason = ?, voided_at = ? WHERE id = ? AND status = ?`,
		entity.SaleStatusVoided, reason, utc(at), id, entity.SaleStatusCompleted,
	)
	if err != nil {
		return fmt.Errorf("void sale: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrSaleVoided
	}
	return nil
}

func (r *SaleRepo) loadItems(ctx context.Context, s *entity.Sale) error {
	rows, err := r.q.QueryContext(ctx, `
		SELECT i.id, i.sale_id, i.product_id, COALESCE(p.name, ''), i.quantity, i.unit_price, i.subtotal,
		       i.unit_cost, i.cost_total
		FROM sale_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = ?
		ORDER BY i.id`, s.ID)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice,
			&it.Subtotal, &it.UnitCost, &it.CostTotal); err != nil {
			rows.Close()
			return fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range items {
		lots, err := r.q.QueryContext(ctx,
			`SELECT id, sale_item_id, lot_id, quantity, unit_cost FROM sale_item_lots WHERE sale_item_id = ? ORDER BY id`,
			items[i].ID)
		if err != nil {
			return fmt.Errorf("list sale item lots: %w", err)
		}
		for lots.Next() {
			var sl entity.SaleItemLot
			if err := lots.Scan(&sl.ID, &sl.SaleItemID, &sl.LotID, &sl.Quantity, &sl.UnitCost); err != nil {
				lots.Close()
				return fmt.Errorf("scan sale item lot: %w", err)
			}
			items[i].Lots = append(items[i].Lots, sl)
		}
		lots.Close()
		if err := lots.Err(); err != nil {
			return err
		}
	}
	s.Items = items
	return nil
}

func scanSale(s rowScanner) (*entity.Sale, error) {
	var sale entity.Sale
	if err := s.Scan(&sale.ID, &sale.ClientID, &sale.ClientName, &sale.UserID, &sale.Status,
		&sale.PaymentMethod, &sale.ExchangeRate, &sale.SubtotalUSD, &sale.DiscountUSD, &sale.TotalUSD,
		&sale.TotalBs, &sale.CostTotal, &sale.Reference, &sale.OperationRef, &sale.VoidReason,
		&sale.CreatedAt, &sale.VoidedAt); err != nil {
		return nil, err
	}
	return &sale, nil
}
