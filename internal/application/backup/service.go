// Package backup orquesta los respaldos del archivo de base de datos.
package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/pkg/logger"
	"github.com/jhoicas/Gimnasio-api/pkg/metrics"
)

const jobName = "backup"

// Store almacenamiento de respaldos.
type Store interface {
	Dir() string
	Snapshot(dbPath string) (dto.BackupInfo, error)
	List() ([]dto.BackupInfo, error)
	Prune() ([]string, error)
	Restore(name, dbPath string) (string, error)
}

// WriteLocker impide que otro escritor confirme cambios mientras corre fn.
type WriteLocker interface {
	WithWriteLock(ctx context.Context, fn func() error) error
}

// Service crea, lista y restaura respaldos.
type Service struct {
	store   Store
	locker  WriteLocker
	dbPath  string
	metrics *metrics.JobMetrics
	log     *logger.Logger
}

// NewService construye el servicio. locker puede ser nil cuando la base no está abierta (CLI restore).
func NewService(store Store, locker WriteLocker, dbPath string, m *metrics.JobMetrics, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: store, locker: locker, dbPath: dbPath, metrics: m, log: log.Component("backup")}
}

// Create copia la base de datos con el lock de escritura tomado y luego poda los antiguos.
func (s *Service) Create(ctx context.Context) (info dto.BackupInfo, err error) {
	start := time.Now()
	defer func() { s.metrics.Track(jobName, start, err) }()

	snapshot := func() error {
		var serr error
		info, serr = s.store.Snapshot(s.dbPath)
		return serr
	}
	if s.locker != nil {
		err = s.locker.WithWriteLock(ctx, snapshot)
	} else {
		err = snapshot()
	}
	if err != nil {
		s.log.Error().Err(err).Str("db", s.dbPath).Msg("no se pudo crear el respaldo")
		return dto.BackupInfo{}, fmt.Errorf("crear respaldo: %w", err)
	}

	removed, perr := s.store.Prune()
	if perr != nil {
		// el respaldo ya quedó creado; la poda se reintenta en el próximo respaldo
		s.log.Warn().Err(perr).Msg("no se pudieron eliminar respaldos antiguos")
	}
	s.log.Info().
		Str("archivo", info.Name).
		Int64("bytes", info.Size).
		Int("eliminados", len(removed)).
		Msg("respaldo creado")
	return info, nil
}

// List respaldos del más reciente al más antiguo.
func (s *Service) List(_ context.Context) (*dto.BackupListResponse, error) {
	list, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return &dto.BackupListResponse{Dir: s.store.Dir(), Backups: list}, nil
}

// Restore reemplaza la base de datos por el respaldo indicado. Solo con el servidor detenido.
func (s *Service) Restore(_ context.Context, name string) (string, error) {
	pre, err := s.store.Restore(name, s.dbPath)
	if err != nil {
		s.log.Error().Err(err).Str("archivo", name).Msg("restauración fallida")
		return pre, err
	}
	s.log.Info().Str("archivo", name).Str("copia_previa", pre).Msg("base de datos restaurada")
	return pre, nil
}
