package backup

import (
	"context"
	"time"
)

// Scheduler ejecuta Create cada interval hasta que se cancele el contexto.
// Un fallo se registra y cuenta en métricas; nunca detiene el proceso.
type Scheduler struct {
	svc      *Service
	interval time.Duration
}

// NewScheduler construye el planificador. interval <= 0 lo desactiva.
func NewScheduler(svc *Service, interval time.Duration) *Scheduler {
	return &Scheduler{svc: svc, interval: interval}
}

// Enabled indica si el respaldo automático está activo.
func (s *Scheduler) Enabled() bool { return s.interval > 0 }

// Run bloquea hasta ctx.Done().
func (s *Scheduler) Run(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	s.svc.log.Info().Dur("intervalo", s.interval).Str("dir", s.svc.store.Dir()).Msg("respaldo automático activo")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.svc.log.Info().Msg("respaldo automático detenido")
			return
		case <-ticker.C:
			// Create ya registra el error y la métrica
			_, _ = s.svc.Create(ctx)
		}
	}
}
