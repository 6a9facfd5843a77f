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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes sobre SQLite.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientSelect = `
	SELECT c.id, c.cedula, c.first_name, c.last_name, c.phone, c.email, c.address, c.birth_date,
	       c.plan_id, COALESCE(p.name, ''), c.registration_date, c.expiry_date, c.payment_method,
	       c.amount_paid_usd, c.exchange_rate, c.payment_reference, c.notes, c.search_key,
	       c.created_at, c.updated_at
	FROM clients c
	LEFT JOIN membership_plans p ON p.id = c.plan_id`

// Create persiste un cliente nuevo.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO clients (cedula, first_name, last_name, phone, email, address, birth_date, plan_id,
			registration_date, expiry_date, payment_method, amount_paid_usd, exchange_rate,
			payment_reference, notes, search_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Cedula, c.FirstName, c.LastName, c.Phone, c.Email, c.Address, utcPtr(c.BirthDate), c.PlanID,
		utc(c.RegistrationDate), utc(c.ExpiryDate), c.PaymentMethod, c.AmountPaidUSD, c.ExchangeRate,
		c.PaymentReference, c.Notes, c.SearchKey, utc(c.CreatedAt), utc(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert client id: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente con el nombre de su plan; nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	return r.getOne(ctx, clientSelect+` WHERE c.id = ?`, id)
}

// GetByCedula obtiene un cliente por cédula.
func (r *ClientRepo) GetByCedula(ctx context.Context, cedula string) (*entity.Client, error) {
	return r.getOne(ctx, clientSelect+` WHERE c.cedula = ?`, cedula)
}

// Update reemplaza todos los campos editables.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE clients SET cedula = ?, first_name = ?, last_name = ?, phone = ?, email = ?, address = ?,
			birth_date = ?, plan_id = ?, registration_date = ?, expiry_date = ?, payment_method = ?,
			amount_paid_usd = ?, exchange_rate = ?, payment_reference = ?, notes = ?, search_key = ?,
			updated_at = ?
		WHERE id = ?`,
		c.Cedula, c.FirstName, c.LastName, c.Phone, c.Email, c.Address, utcPtr(c.BirthDate), c.PlanID,
		utc(c.RegistrationDate), utc(c.ExpiryDate), c.PaymentMethod, c.AmountPaidUSD, c.ExchangeRate,
		c.PaymentReference, c.Notes, c.SearchKey, utc(c.UpdatedAt), c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina el cliente; sus pagos caen en cascada.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// List filtra por texto, plan y rango de vencimiento; ordena por vencimiento más próximo.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, int, error) {
	where, args := clientWhere(f.SearchKey, f.PlanID, f.ExpiryFrom, f.ExpiryTo)

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients c`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	limit, offset := page(f.Limit, f.Offset)
	query := clientSelect + where + ` ORDER BY c.expiry_date, c.first_name, c.id LIMIT ? OFFSET ?`
	rows, err := r.q.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// CountByExpiry cuenta clientes con vencimiento en [from, to].
func (r *ClientRepo) CountByExpiry(ctx context.Context, from, to *time.Time) (int, error) {
	where, args := clientWhere("", 0, from, to)
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients c`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients by expiry: %w", err)
	}
	return n, nil
}

func clientWhere(searchKey string, planID int64, from, to *time.Time) (string, []any) {
	var conds []string
	var args []any
	if searchKey != "" {
		conds = append(conds, `c.search_key LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(searchKey))
	}
	if planID > 0 {
		conds = append(conds, `c.plan_id = ?`)
		args = append(args, planID)
	}
	if from != nil {
		conds = append(conds, `c.expiry_date >= ?`)
		args = append(args, utc(*from))
	}
	if to != nil {
		conds = append(conds, `c.expiry_date <= ?`)
		args = append(args, utc(*to))
	}
	if len(conds) == 0 {
		return "", args
	}
	return ` WHERE ` + strings.Join(conds, ` AND `), args
}

func (r *ClientRepo) getOne(ctx context.Context, query string, arg any) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func scanClient(s rowScanner) (*entity.Client, error) {
	var c entity.Client
	if err := s.Scan(
		&c.ID, &c.Cedula, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.Address, &c.BirthDate,
		&c.PlanID, &c.PlanName, &c.RegistrationDate, &c.ExpiryDate, &c.PaymentMethod,
		&c.AmountPaidUSD, &c.ExchangeRate, &c.PaymentReference, &c.Notes, &c.SearchKey,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

var _ repository.ClientPaymentRepository = (*ClientPaymentRepo)(nil)

// ClientPaymentRepo pagos de membresía sobre SQLite.
type ClientPaymentRepo struct {
	q Querier
}

// NewClientPaymentRepository construye el adaptador de pagos de clientes.
func NewClientPaymentRepository(q Querier) *ClientPaymentRepo {
	return &ClientPaymentRepo{q: q}
}

// Create registra un pago.
func (r *ClientPaymentRepo) Create(ctx context.Context, p *entity.ClientPayment) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO client_payments (client_id, plan_id, period_start, period_end, amount_usd,
			exchange_rate, amount_bs, method, reference, paid_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ClientID, p.PlanID, utc(p.PeriodStart), utc(p.PeriodEnd), p.AmountUSD,
		p.ExchangeRate, p.AmountBs, p.Method, p.Reference, utc(p.PaidAt), p.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert client payment: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert client payment id: %w", err)
	}
	return nil
}

// ListByClient historial de pagos, el más reciente primero.
func (r *ClientPaymentRepo) ListByClient(ctx context.Context, clientID int64) ([]*entity.ClientPayment, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT cp.id, cp.client_id, cp.plan_id, COALESCE(p.name, ''), cp.period_start, cp.period_end,
		       cp.amount_usd, cp.exchange_rate, cp.amount_bs, cp.method, cp.reference, cp.paid_at, cp.created_by
		FROM client_payments cp
		LEFT JOIN membership_plans p ON p.id = cp.plan_id
		WHERE cp.client_id = ?
		ORDER BY cp.paid_at DESC, cp.id DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list client payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.ClientPayment
	for rows.Next() {
		var p entity.ClientPayment
		if err := rows.Scan(&p.ID, &p.ClientID, &p.PlanID, &p.PlanName, &p.PeriodStart, &p.PeriodEnd,
			&p.AmountUSD, &p.ExchangeRate, &p.AmountBs, &p.Method, &p.Reference, &p.PaidAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan client payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
