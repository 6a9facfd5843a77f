package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kardex de inventario sobre SQLite.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO stock_movements (product_id, lot_id, type, quantity, previous_stock, new_stock,
			reference, reason, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ProductID, m.LotID, m.Type, m.Quantity, m.PreviousStock, m.NewStock,
		m.Reference, m.Reason, m.CreatedBy, utc(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	m.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert stock movement id: %w", err)
	}
	return nil
}

// List movimientos más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var conds []string
	var args []any
	if f.ProductID > 0 {
		conds = append(conds, `m.product_id = ?`)
		args = append(args, f.ProductID)
	}
	if f.Type != "" {
		conds = append(conds, `m.type = ?`)
		args = append(args, f.Type)
	}
	if f.From != nil {
		conds = append(conds, `m.created_at >= ?`)
		args = append(args, utc(*f.From))
	}
	if f.To != nil {
		conds = append(conds, `m.created_at < ?`)
		args = append(args, utc(*f.To))
	}
	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, ` AND `)
	}

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_movements m`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	limit, offset := page(f.Limit, f.Offset)
	rows, err := r.q.QueryContext(ctx, `
		SELECT m.id, m.product_id, COALESCE(p.name, ''), m.lot_id, COALESCE(l.code, ''), m.type, m.quantity,
		       m.previous_stock, m.new_stock, m.reference, m.reason, m.created_by, m.created_at
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id
		LEFT JOIN lots l ON l.id = m.lot_id`+where+`
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT ? OFFSET ?`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.LotID, &m.LotCode, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.Reference, &m.Reason, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
