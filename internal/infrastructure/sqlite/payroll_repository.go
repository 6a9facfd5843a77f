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

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

// PayrollRepo registros de nómina sobre SQLite.
type PayrollRepo struct {
	q Querier
}

// NewPayrollRepository construye el adaptador de nómina.
func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

const payrollSelect = `
	SELECT r.id, r.employee_id, TRIM(e.first_name || ' ' || e.last_name), e.cedula, e.position, r.year, r.month,
	       r.days_worked, r.monthly_salary, r.daily_salary, r.base_pay, r.sso, r.lph, r.rpe,
	       r.total_deductions, r.utilidades, r.net_pay, r.severance_accrual, r.vacation_accrual,
	       r.status, r.payment_method, r.payment_reference, r.paid_at, r.created_at, r.updated_at
	FROM payroll_records r
	JOIN employees e ON e.id = r.employee_id`

// Upsert inserta el registro o recalcula uno pendiente del mismo período.
// Un registro pagado nunca se sobrescribe: devuelve ErrAlreadyPaid.
func (r *PayrollRepo) Upsert(ctx context.Context, rec *entity.PayrollRecord) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO payroll_records (employee_id, year, month, days_worked, monthly_salary, daily_salary,
			base_pay, sso, lph, rpe, total_deductions, utilidades, net_pay, severance_accrual,
			vacation_accrual, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			days_worked = excluded.days_worked,
			monthly_salary = excluded.monthly_salary,
			daily_salary = excluded.daily_salary,
			base_pay = excluded.base_pay,
			sso = excluded.sso,
			lph = excluded.lph,
			rpe = excluded.rpe,
			total_deductions = excluded.total_deductions,
			utilidades = excluded.utilidades,
			net_pay = excluded.net_pay,
			severance_accrual = excluded.severance_accrual,
			vacation_accrual = excluded.vacation_accrual,
			updated_at = excluded.updated_at
		WHERE payroll_records.status = 'pendiente'`,
		rec.EmployeeID, rec.Year, rec.Month, rec.DaysWorked, rec.MonthlySalary, rec.DailySalary,
		rec.BasePay, rec.SSO, rec.LPH, rec.RPE, rec.TotalDeductions, rec.Utilidades, rec.NetPay,
		rec.SeveranceAccrual, rec.VacationAccrual, entity.PayrollStatusPending,
		utc(rec.CreatedAt), utc(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert payroll record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAlreadyPaid
	}
	saved, err := r.GetByPeriod(ctx, rec.EmployeeID, rec.Year, rec.Month)
	if err != nil {
		return err
	}
	if saved == nil {
		return fmt.Errorf("upsert payroll record: registro no encontrado tras guardar")
	}
	*rec = *saved
	return nil
}

// GetByID obtiene un registro; nil si no existe.
func (r *PayrollRepo) GetByID(ctx context.Context, id int64) (*entity.PayrollRecord, error) {
	return r.getOne(ctx, payrollSelect+` WHERE r.id = ?`, id)
}

// GetByPeriod registro del empleado para el año y mes.
func (r *PayrollRepo) GetByPeriod(ctx context.Context, employeeID int64, year, month int) (*entity.PayrollRecord, error) {
	return r.getOne(ctx, payrollSelect+` WHERE r.employee_id = ? AND r.year = ? AND r.month = ?`, employeeID, year, month)
}

// List registros filtrados; year, month en 0 y status vacío no filtran.
func (r *PayrollRepo) List(ctx context.Context, year, month int, status string) ([]*entity.PayrollRecord, error) {
	var (
		conds []string
		args  []any
	)
	if year > 0 {
		conds = append(conds, `r.year = ?`)
		args = append(args, year)
	}
	if month > 0 {
		conds = append(conds, `r.month = ?`)
		args = append(args, month)
	}
	if status != "" {
		conds = append(conds, `r.status = ?`)
		args = append(args, status)
	}
	query := payrollSelect
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	rows, err := r.q.QueryContext(ctx, query+` ORDER BY r.year DESC, r.month DESC, e.first_name, e.last_name, r.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list payroll records: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payroll record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// MarkPaid marca un registro pendiente como pagado.
func (r *PayrollRepo) MarkPaid(ctx context.Context, id int64, method, reference string, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE payroll_records SET status = ?, payment_method = ?, payment_reference = ?, paid_at = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		entity.PayrollStatusPaid, method, reference, utc(at), time.Now().UTC(), id, entity.PayrollStatusPending,
	)
	if err != nil {
		return fmt.Errorf("mark payroll paid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAlreadyPaid
	}
	return nil
}

func (r *PayrollRepo) getOne(ctx context.Context, query string, args ...any) (*entity.PayrollRecord, error) {
	rec, err := scanPayroll(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll record: %w", err)
	}
	return rec, nil
}

func scanPayroll(s rowScanner) (*entity.PayrollRecord, error) {
	var rec entity.PayrollRecord
	if err := s.Scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.EmployeeCedula, &rec.Position,
		&rec.Year, &rec.Month, &rec.DaysWorked, &rec.MonthlySalary, &rec.DailySalary, &rec.BasePay,
		&rec.SSO, &rec.LPH, &rec.RPE, &rec.TotalDeductions, &rec.Utilidades, &rec.NetPay,
		&rec.SeveranceAccrual, &rec.VacationAccrual, &rec.Status, &rec.PaymentMethod,
		&rec.PaymentReference, &rec.PaidAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
