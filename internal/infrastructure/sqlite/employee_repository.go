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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo empleados sobre SQLite.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `id, cedula, first_name, last_name, position, monthly_salary, hire_date,
	bank_account, active, created_at, updated_at`

// Create persiste un empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO employees (cedula, first_name, last_name, position, monthly_salary, hire_date,
			bank_account, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Cedula, e.FirstName, e.LastName, e.Position, e.MonthlySalary, utc(e.HireDate),
		e.BankAccount, e.Active, utc(e.CreatedAt), utc(e.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert employee id: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado; nil si no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// Update reemplaza los campos editables.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE employees SET cedula = ?, first_name = ?, last_name = ?, position = ?, monthly_salary = ?,
			hire_date = ?, bank_account = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		e.Cedula, e.FirstName, e.LastName, e.Position, e.MonthlySalary, utc(e.HireDate),
		e.BankAccount, e.Active, utc(e.UpdatedAt), e.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// Delete elimina un empleado sin nómina registrada.
func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// List empleados por nombre.
func (r *EmployeeRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	rows, err := r.q.QueryContext(ctx, query+` ORDER BY first_name, last_name, id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// HasPayroll true si el empleado tiene registros de nómina.
func (r *EmployeeRepo) HasPayroll(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM payroll_records WHERE employee_id = ?)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("employee has payroll: %w", err)
	}
	return exists, nil
}

func scanEmployee(s rowScanner) (*entity.Employee, error) {
	var e entity.Employee
	if err := s.Scan(&e.ID, &e.Cedula, &e.FirstName, &e.LastName, &e.Position, &e.MonthlySalary, &e.HireDate,
		&e.BankAccount, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
