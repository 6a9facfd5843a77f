package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo lotes de compra sobre SQLite.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes.
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, product_id, code, initial_quantity, available_quantity, unit_cost, supplier,
	purchase_date, expiration_date, created_at`

// fifoOrder orden PEPS: fecha de compra y luego id.
const fifoOrder = ` ORDER BY purchase_date, id`

// Create persiste un lote nuevo.
func (r *LotRepo) Create(ctx context.Context, l *entity.Lot) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO lots (product_id, code, initial_quantity, available_quantity, unit_cost, supplier,
			purchase_date, expiration_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ProductID, l.Code, l.InitialQuantity, l.AvailableQuantity, l.UnitCost, l.Supplier,
		utc(l.PurchaseDate), utcPtr(l.ExpirationDate), utc(l.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	l.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert lot id: %w", err)
	}
	return nil
}

// GetByID obtiene un lote; nil si no existe.
func (r *LotRepo) GetByID(ctx context.Context, id int64) (*entity.Lot, error) {
	l, err := scanLot(r.q.QueryRowContext(ctx, `SELECT `+lotColumns+` FROM lots WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return l, nil
}

// CountByProduct lotes registrados del producto (incluye agotados).
func (r *LotRepo) CountByProduct(ctx context.Context, productID int64) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM lots WHERE product_id = ?`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lots: %w", err)
	}
	return n, nil
}

// ListByProduct lotes del producto en orden PEPS.
func (r *LotRepo) ListByProduct(ctx context.Context, productID int64) ([]entity.Lot, error) {
	return r.query(ctx, `SELECT `+lotColumns+` FROM lots WHERE product_id = ?`+fifoOrder, productID)
}

// ListAvailable lotes con existencia de todos los productos.
func (r *LotRepo) ListAvailable(ctx context.Context) ([]entity.Lot, error) {
	return r.query(ctx, `SELECT `+lotColumns+` FROM lots WHERE available_quantity > 0`+fifoOrder)
}

// UpdateAvailable fija la cantidad disponible del lote.
func (r *LotRepo) UpdateAvailable(ctx context.Context, lotID int64, available decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx, `UPDATE lots SET available_quantity = ? WHERE id = ?`, available, lotID)
	if err != nil {
		return fmt.Errorf("update lot available: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LotRepo) query(ctx context.Context, query string, args ...any) ([]entity.Lot, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []entity.Lot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, *l)
	}
	return list, rows.Err()
}

func scanLot(s rowScanner) (*entity.Lot, error) {
	var l entity.Lot
	if err := s.Scan(&l.ID, &l.ProductID, &l.Code, &l.InitialQuantity, &l.AvailableQuantity, &l.UnitCost,
		&l.Supplier, &l.PurchaseDate, &l.ExpirationDate, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
