package payroll

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// ReceiptPDFGenerator genera el recibo de pago de un registro de nómina.
type ReceiptPDFGenerator interface {
	GeneratePayrollReceipt(ctx context.Context, rec *dto.PayrollRecordResponse) ([]byte, error)
}
