package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// PayrollRepository puerto de persistencia para registros de nómina.
type PayrollRepository interface {
	// Upsert inserta o reemplaza el registro del empleado para el período (solo si está pendiente).
	Upsert(ctx context.Context, rec *entity.PayrollRecord) error
	GetByID(ctx context.Context, id int64) (*entity.PayrollRecord, error)
	GetByPeriod(ctx context.Context, employeeID int64, year, month int) (*entity.PayrollRecord, error)
	List(ctx context.Context, year, month int, status string) ([]*entity.PayrollRecord, error)
	MarkPaid(ctx context.Context, id int64, method, reference string, at time.Time) error
}
