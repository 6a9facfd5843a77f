package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	domainpayroll "github.com/jhoicas/Gimnasio-api/internal/domain/payroll"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// PayrollUseCase genera y paga la nómina mensual.
type PayrollUseCase struct {
	txRunner   TxRunner
	repo       repository.PayrollRepository
	calculator *domainpayroll.Calculator
	generator  ReceiptPDFGenerator
	now        func() time.Time
}

// NewPayrollUseCase construye el caso de uso con las tasas de la configuración.
func NewPayrollUseCase(
	txRunner TxRunner,
	repo repository.PayrollRepository,
	rates domainpayroll.Rates,
	generator ReceiptPDFGenerator,
) *PayrollUseCase {
	return &PayrollUseCase{
		txRunner:   txRunner,
		repo:       repo,
		calculator: domainpayroll.NewCalculator(rates),
		generator:  generator,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *PayrollUseCase) WithClock(now func() time.Time) *PayrollUseCase {
	uc.now = now
	return uc
}

// Generate calcula y guarda un registro por empleado activo contratado antes del cierre del mes.
// Los registros pagados nunca se sobrescriben: si el empleado fue pedido explícitamente
// se devuelve ErrAlreadyPaid, si no se omite.
func (uc *PayrollUseCase) Generate(ctx context.Context, in dto.GeneratePayrollRequest) (*dto.GeneratePayrollResponse, error) {
	if in.Month < 1 || in.Month > 12 || in.Year < 2000 {
		return nil, domain.ErrInvalidInput
	}
	for _, days := range in.DaysWorked {
		if days < 0 || days > domainpayroll.DaysPerMonth {
			return nil, domain.ErrInvalidInput
		}
	}
	periodEnd := domainpayroll.PeriodEnd(in.Year, in.Month)
	explicit := len(in.EmployeeIDs) > 0
	now := uc.now()

	out := &dto.GeneratePayrollResponse{
		Records:  []dto.PayrollRecordResponse{},
		Skipped:  []int64{},
		TotalNet: decimal.Zero,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		employees, err := uc.selectEmployees(ctx, repos.Employees, in.EmployeeIDs)
		if err != nil {
			return err
		}
		for _, e := range employees {
			if !e.Active || e.HireDate.After(periodEnd) {
				if explicit {
					return fmt.Errorf("%w: empleado %d inactivo o contratado después del período", domain.ErrInvalidInput, e.ID)
				}
				continue
			}
			existing, err := repos.Payroll.GetByPeriod(ctx, e.ID, in.Year, in.Month)
			if err != nil {
				return err
			}
			if existing != nil && existing.Status == entity.PayrollStatusPaid {
				if explicit {
					return domain.ErrAlreadyPaid
				}
				out.Skipped = append(out.Skipped, e.ID)
				continue
			}

			days := domainpayroll.DaysPerMonth
			if override, ok := in.DaysWorked[e.ID]; ok {
				days = override
			}
			res, err := uc.calculator.Compute(domainpayroll.Input{
				MonthlySalary: e.MonthlySalary,
				HireDate:      e.HireDate,
				Year:          in.Year,
				Month:         in.Month,
				DaysWorked:    days,
			})
			if err != nil {
				return err
			}
			rec := &entity.PayrollRecord{
				EmployeeID:       e.ID,
				Year:             in.Year,
				Month:            in.Month,
				DaysWorked:       days,
				MonthlySalary:    e.MonthlySalary,
				DailySalary:      res.DailySalary,
				BasePay:          res.BasePay,
				SSO:              res.SSO,
				LPH:              res.LPH,
				RPE:              res.RPE,
				TotalDeductions:  res.TotalDeductions,
				Utilidades:       res.Utilidades,
				NetPay:           res.NetPay,
				SeveranceAccrual: res.SeveranceAccrual,
				VacationAccrual:  res.VacationAccrual,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := repos.Payroll.Upsert(ctx, rec); err != nil {
				return err
			}
			out.Records = append(out.Records, ToRecordResponse(rec))
			out.TotalNet = out.TotalNet.Add(rec.NetPay)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *PayrollUseCase) selectEmployees(ctx context.Context, repo repository.EmployeeRepository, ids []int64) ([]*entity.Employee, error) {
	if len(ids) == 0 {
		return repo.List(ctx, true)
	}
	out := make([]*entity.Employee, 0, len(ids))
	for _, id := range ids {
		e, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, domain.ErrNotFound
		}
		out = append(out, e)
	}
	return out, nil
}

// ProcessPayments marca como pagados los registros pendientes del mes (todos o los indicados).
func (uc *PayrollUseCase) ProcessPayments(ctx context.Context, in dto.ProcessPaymentsRequest) (*dto.ProcessPaymentsResponse, error) {
	if in.Month < 1 || in.Month > 12 || !entity.ValidPaymentMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}
	paidAt := uc.now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}
	out := &dto.ProcessPaymentsResponse{TotalNet: decimal.Zero}
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		var records []*entity.PayrollRecord
		if len(in.RecordIDs) == 0 {
			var err error
			records, err = repos.Payroll.List(ctx, in.Year, in.Month, entity.PayrollStatusPending)
			if err != nil {
				return err
			}
		} else {
			for _, id := range in.RecordIDs {
				rec, err := repos.Payroll.GetByID(ctx, id)
				if err != nil {
					return err
				}
				if rec == nil {
					return domain.ErrNotFound
				}
				if rec.Year != in.Year || rec.Month != in.Month {
					return fmt.Errorf("%w: el registro %d no pertenece al período", domain.ErrInvalidInput, id)
				}
				records = append(records, rec)
			}
		}
		for _, rec := range records {
			if err := repos.Payroll.MarkPaid(ctx, rec.ID, in.Method, in.Reference, paidAt); err != nil {
				return err
			}
			out.Count++
			out.TotalNet = out.TotalNet.Add(rec.NetPay)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List registros del período; year/month 0 = sin filtro.
func (uc *PayrollUseCase) List(ctx context.Context, in dto.PayrollListRequest) ([]dto.PayrollRecordResponse, error) {
	list, err := uc.repo.List(ctx, in.Year, in.Month, in.Status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayrollRecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ToRecordResponse(r))
	}
	return out, nil
}

// Get obtiene un registro de nómina.
func (uc *PayrollUseCase) Get(ctx context.Context, id int64) (*dto.PayrollRecordResponse, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	out := ToRecordResponse(rec)
	return &out, nil
}

// ReceiptPDF recibo de pago del registro.
func (uc *PayrollUseCase) ReceiptPDF(ctx context.Context, id int64) (pdfBytes []byte, filename string, err error) {
	rec, err := uc.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GeneratePayrollReceipt(ctx, rec)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("nomina_%s_%04d_%02d.pdf", rec.EmployeeCedula, rec.Year, rec.Month), nil
}

// ToRecordResponse convierte un registro de nómina a su DTO.
func ToRecordResponse(r *entity.PayrollRecord) dto.PayrollRecordResponse {
	return dto.PayrollRecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		EmployeeCedula:   r.EmployeeCedula,
		Position:         r.Position,
		Year:             r.Year,
		Month:            r.Month,
		DaysWorked:       r.DaysWorked,
		MonthlySalary:    r.MonthlySalary,
		DailySalary:      r.DailySalary,
		BasePay:          r.BasePay,
		SSO:              r.SSO,
		LPH:              r.LPH,
		RPE:              r.RPE,
		TotalDeductions:  r.TotalDeductions,
		Utilidades:       r.Utilidades,
		NetPay:           r.NetPay,
		SeveranceAccrual: r.SeveranceAccrual,
		VacationAccrual:  r.VacationAccrual,
		Status:           r.Status,
		PaymentMethod:    r.PaymentMethod,
		PaymentReference: r.PaymentReference,
		PaidAt:           r.PaidAt,
	}
}
