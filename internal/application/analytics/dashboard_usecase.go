// Package analytics contiene el caso de uso del dashboard de recepción.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/pkg/textutil"
)

// ValuationSource fuente de la valuación de inventario (conteo de stock bajo).
type ValuationSource interface {
	Valuation(ctx context.Context) (*dto.ValuationResponse, error)
}

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: ReportRepository y ClientRepository (consultas read-only).
type DashboardUseCase struct {
	reportRepo   repository.ReportRepository
	clientRepo   repository.ClientRepository
	valuation    ValuationSource
	expiringDays int
	loc          *time.Location
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reportRepo repository.ReportRepository,
	clientRepo repository.ClientRepository,
	valuation ValuationSource,
	expiringDays int,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{
		reportRepo:   reportRepo,
		clientRepo:   clientRepo,
		valuation:    valuation,
		expiringDays: expiringDays,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. SalesTotals(hoy)      → TodaySales + TodayMargin
//  2. SalesTotals(mes)      → MonthlySales + MonthlyMargin
//  3. CountByExpiry × 3     → clientes activos, por vencer y vencidos
//  4. Valuation             → productos con stock bajo
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.loc)

	// Hoy: [00:00, 00:00 del día siguiente) en la zona del negocio
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	todayEnd := todayStart.AddDate(0, 0, 1)
	// Mes en curso: día 1 a las 00:00 – fin de hoy
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)

	type totalsResult struct {
		totals repository.SalesTotals
		err    error
	}
	type clientsResult struct {
		active, expiring, expired int
		err                       error
	}
	type lowStockResult struct {
		count int
		err   error
	}

	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	clientsCh := make(chan clientsResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		t, err := uc.reportRepo.SalesTotals(ctx, todayStart, todayEnd)
		todayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.reportRepo.SalesTotals(ctx, monthStart, todayEnd)
		monthCh <- totalsResult{t, err}
	}()
	go func() {
		var res clientsResult
		res.active, res.expiring, res.expired, res.err = uc.countClients(ctx, membership.Date(now))
		clientsCh <- res
	}()
	go func() {
		v, err := uc.valuation.Valuation(ctx)
		if err != nil {
			lowCh <- lowStockResult{err: err}
			return
		}
		lowCh <- lowStockResult{count: v.LowStock}
	}()

	today := <-todayCh
	month := <-monthCh
	clients := <-clientsCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if clients.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", clients.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:       today.totals.TotalUSD.Round(2),
		TodayCount:       today.totals.Count,
		TodayMargin:      today.totals.TotalUSD.Sub(today.totals.CostTotal).Round(2),
		MonthlySales:     month.totals.TotalUSD.Round(2),
		MonthlyMargin:    month.totals.TotalUSD.Sub(month.totals.CostTotal).Round(2),
		ActiveClients:    clients.active,
		ExpiringClients:  clients.expiring,
		ExpiredClients:   clients.expired,
		LowStockProducts: low.count,
		DateLabel:        MonthLabel(now),
	}, nil
}

// countClients cuenta clientes por estado usando los rangos de vencimiento de cada estado.
func (uc *DashboardUseCase) countClients(ctx context.Context, today time.Time) (active, expiring, expired int, err error) {
	counts := make(map[string]int, 3)
	for _, status := range []string{membership.StatusActive, membership.StatusExpiring, membership.StatusExpired} {
		from, to, _ := membership.ExpiryRange(status, today, uc.expiringDays)
		n, cerr := uc.clientRepo.CountByExpiry(ctx, from, to)
		if cerr != nil {
			return 0, 0, 0, cerr
		}
		counts[status] = n
	}
	return counts[membership.StatusActive], counts[membership.StatusExpiring], counts[membership.StatusExpired], nil
}

// MonthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", textutil.MonthName(t.Month()), t.Year())
}
