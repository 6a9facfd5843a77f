package payroll

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// EmployeeUseCase CRUD de empleados.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create registra un empleado. Cédula duplicada -> ErrDuplicate (lo detecta el repositorio).
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := validateEmployee(in); err != nil {
		return nil, err
	}
	now := time.Now()
	e := &entity.Employee{CreatedAt: now, Active: true}
	applyEmployee(e, in)
	e.UpdatedAt = now
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// Update reemplaza los datos del empleado. Los registros de nómina ya generados conservan su salario.
func (uc *EmployeeUseCase) Update(ctx context.Context, id int64, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := validateEmployee(in); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	applyEmployee(e, in)
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// Delete elimina un empleado sin nómina; con historial debe desactivarse (ErrConflict).
func (uc *EmployeeUseCase) Delete(ctx context.Context, id int64) error {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	has, err := uc.repo.HasPayroll(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// Get obtiene un empleado por ID.
func (uc *EmployeeUseCase) Get(ctx context.Context, id int64) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(e), nil
}

// List lista empleados; activeOnly oculta los inactivos.
func (uc *EmployeeUseCase) List(ctx context.Context, activeOnly bool) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

func validateEmployee(in dto.EmployeeRequest) error {
	if strings.TrimSpace(in.Cedula) == "" || strings.TrimSpace(in.FirstName) == "" {
		return domain.ErrInvalidInput
	}
	if !in.MonthlySalary.IsPositive() || in.HireDate.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}

func applyEmployee(e *entity.Employee, in dto.EmployeeRequest) {
	e.Cedula = strings.TrimSpace(in.Cedula)
	e.FirstName = strings.TrimSpace(in.FirstName)
	e.LastName = strings.TrimSpace(in.LastName)
	e.Position = strings.TrimSpace(in.Position)
	e.MonthlySalary = in.MonthlySalary
	e.HireDate = membership.Date(in.HireDate)
	e.BankAccount = strings.TrimSpace(in.BankAccount)
	if in.Active != nil {
		e.Active = *in.Active
	}
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:            e.ID,
		Cedula:        e.Cedula,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		FullName:      e.FullName(),
		Position:      e.Position,
		MonthlySalary: e.MonthlySalary,
		HireDate:      e.HireDate,
		BankAccount:   e.BankAccount,
		Active:        e.Active,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
