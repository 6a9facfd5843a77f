package reports

import (
	"context"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// Exporter genera un reporte en un formato de archivo (PDF, XLSX).
type Exporter interface {
	SalesReport(ctx context.Context, r *dto.SalesReport) ([]byte, error)
	InventoryReport(ctx context.Context, r *dto.InventoryReport) ([]byte, error)
	MembershipReport(ctx context.Context, r *dto.MembershipReport) ([]byte, error)
	PayrollReport(ctx context.Context, r *dto.PayrollReport) ([]byte, error)
}

// ValuationSource fuente de la valuación de inventario.
type ValuationSource interface {
	Valuation(ctx context.Context) (*dto.ValuationResponse, error)
}

// ClientCounter cuenta clientes por rango de vencimiento.
type ClientCounter interface {
	CountByExpiry(ctx context.Context, from, to *time.Time) (int, error)
}

// PayrollLister lista registros de nómina de un mes.
type PayrollLister interface {
	List(ctx context.Context, year, month int, status string) ([]*entity.PayrollRecord, error)
}
