package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre SQLite (usable con db o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar db o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, category, brand, unit, purchase_price, sale_price, min_stock,
	description, search_key, active, created_at, updated_at`

// Create persiste un nuevo producto. Los precios se recalculan con cada compra.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO products (name, category, brand, unit, purchase_price, sale_price, min_stock,
			description, search_key, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Category, p.Brand, p.Unit, p.PurchasePrice, p.SalePrice, p.MinStock,
		p.Description, p.SearchKey, p.Active, utc(p.CreatedAt), utc(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert product id: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza datos descriptivos y precios. El stock vive en los lotes.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, category = ?, brand = ?, unit = ?, sale_price = ?, min_stock = ?,
			description = ?, search_key = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Category, p.Brand, p.Unit, p.SalePrice, p.MinStock,
		p.Description, p.SearchKey, p.Active, utc(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdatePrices actualiza precio de compra y de venta (usado por el motor de inventario).
func (r *ProductRepo) UpdatePrices(ctx context.Context, productID int64, purchasePrice, salePrice decimal.Decimal) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE products SET purchase_price = ?, sale_price = ?, updated_at = ? WHERE id = ?`,
		purchasePrice, salePrice, time.Now().UTC(), productID,
	)
	if err != nil {
		return fmt.Errorf("update product prices: %w", err)
	}
	return nil
}

// List lista productos con filtros y paginación, por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var conds []string
	var args []any
	if f.SearchKey != "" {
		conds = append(conds, `search_key LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(f.SearchKey))
	}
	if f.Category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, f.Category)
	}
	if f.ActiveOnly {
		conds = append(conds, `active = 1`)
	}
	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, ` AND `)
	}

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	limit, offset := page(f.Limit, f.Offset)
	list, err := r.query(ctx, `SELECT `+productColumns+` FROM products`+where+` ORDER BY name, id LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll productos sin paginar.
func (r *ProductRepo) ListAll(ctx context.Context, activeOnly bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	return r.query(ctx, query+` ORDER BY name, id`)
}

// ListCategories categorías distintas no vacías.
func (r *ProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// HasSales true si alguna línea de venta referencia el producto.
func (r *ProductRepo) HasSales(ctx context.Context, productID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM sale_items WHERE product_id = ?)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product has sales: %w", err)
	}
	return exists, nil
}

// Delete elimina la fila del producto. ErrConflict si aún la referencian lotes, kardex o ventas.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(s rowScanner) (*entity.Product, error) {
	var p entity.Product
	if err := s.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Unit, &p.PurchasePrice, &p.SalePrice,
		&p.MinStock, &p.Description, &p.SearchKey, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
