package pos

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain/inventory"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// StockMover interfaz para integrar ventas con inventario.
// Ambas operaciones usan los repositorios del caller (misma transacción); si retornan
// error (ej: ErrInsufficientStock) el caller debe hacer rollback.
type StockMover interface {
	ConsumeInTx(
		ctx context.Context,
		repos repository.TxRepos,
		productID int64,
		qty decimal.Decimal,
		movType, reference, reason string,
		userID int64,
		now time.Time,
	) ([]inventory.Take, error)
	RestoreInTx(
		ctx context.Context,
		repos repository.TxRepos,
		productID int64,
		takes []inventory.Take,
		reference, reason string,
		userID int64,
		now time.Time,
	) error
}

// ReceiptPDFGenerator genera el comprobante de una venta.
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *dto.SaleResponse) ([]byte, error)
}
