// Package backup guarda copias del archivo SQLite en el directorio de respaldos.
package backup

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
)

const (
	filePrefix       = "gimnasio_"
	preRestorePrefix = "pre_restore_"
	fileExt          = ".db"
	stampLayout      = "20060102_150405"
)

// sqliteHeader primeros 16 bytes de todo archivo de base de datos SQLite 3.
var sqliteHeader = []byte("SQLite format 3\x00")

// FileStore respaldos como archivos gimnasio_YYYYMMDD_HHMMSS.db en un directorio.
type FileStore struct {
	dir  string
	keep int
	now  func() time.Time
}

// NewFileStore crea el store; keep es la cantidad de respaldos que se conservan.
func NewFileStore(dir string, keep int) *FileStore {
	return &FileStore{dir: dir, keep: keep, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *FileStore) WithClock(now func() time.Time) *FileStore {
	s.now = now
	return s
}

// Dir directorio de respaldos.
func (s *FileStore) Dir() string { return s.dir }

// ValidateHeader verifica que path sea una base de datos SQLite.
func ValidateHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	buf := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, buf); err != nil || !bytes.Equal(buf, sqliteHeader) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidBackup, filepath.Base(path))
	}
	return nil
}

// Snapshot copia dbPath a un nuevo respaldo y valida la copia.
// El llamador debe impedir escrituras concurrentes mientras dura la copia.
func (s *FileStore) Snapshot(dbPath string) (dto.BackupInfo, error) {
	if err := ValidateHeader(dbPath); err != nil {
		return dto.BackupInfo{}, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return dto.BackupInfo{}, fmt.Errorf("crear directorio de respaldos: %w", err)
	}
	name := s.uniqueName(filePrefix)
	dst := filepath.Join(s.dir, name)
	if err := copyFile(dbPath, dst); err != nil {
		return dto.BackupInfo{}, err
	}
	if err := ValidateHeader(dst); err != nil {
		_ = os.Remove(dst)
		return dto.BackupInfo{}, err
	}
	st, err := os.Stat(dst)
	if err != nil {
		return dto.BackupInfo{}, fmt.Errorf("leer respaldo: %w", err)
	}
	return dto.BackupInfo{Name: name, Size: st.Size(), CreatedAt: st.ModTime()}, nil
}

// uniqueName nombre con la marca de tiempo actual; si ya existe (dos respaldos en el
// mismo segundo) agrega un sufijo.
func (s *FileStore) uniqueName(prefix string) string {
	base := prefix + s.now().Format(stampLayout)
	name := base + fileExt
	for i := 2; ; i++ {
		if _, err := os.Stat(filepath.Join(s.dir, name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s_%d%s", base, i, fileExt)
	}
}

// List respaldos del más reciente al más antiguo. Un directorio inexistente es una lista vacía.
func (s *FileStore) List() ([]dto.BackupInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []dto.BackupInfo{}, nil
		}
		return nil, fmt.Errorf("listar respaldos: %w", err)
	}
	out := make([]dto.BackupInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isBackupName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, dto.BackupInfo{Name: e.Name(), Size: info.Size(), CreatedAt: info.ModTime()})
	}
	// el nombre lleva la marca de tiempo: orden lexicográfico = cronológico
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

// Prune elimina los respaldos más antiguos por encima de keep. Devuelve los eliminados.
func (s *FileStore) Prune() ([]string, error) {
	list, err := s.List()
	if err != nil {
		return nil, err
	}
	if s.keep <= 0 || len(list) <= s.keep {
		return nil, nil
	}
	var removed []string
	for _, b := range list[s.keep:] {
		if err := os.Remove(filepath.Join(s.dir, b.Name)); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("eliminar respaldo %s: %w", b.Name, err)
		}
		removed = append(removed, b.Name)
	}
	return removed, nil
}

// Restore reemplaza dbPath por el respaldo name. Antes copia la base actual a
// pre_restore_*.db en el directorio de respaldos. Devuelve el nombre de esa copia.
func (s *FileStore) Restore(name, dbPath string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: nombre de respaldo %q", domain.ErrInvalidInput, name)
	}
	src := filepath.Join(s.dir, name)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("respaldo %s: %w", name, domain.ErrNotFound)
		}
		return "", fmt.Errorf("respaldo %s: %w", name, err)
	}
	if err := ValidateHeader(src); err != nil {
		return "", err
	}

	var preRestore string
	if _, err := os.Stat(dbPath); err == nil {
		preRestore = s.uniqueName(preRestorePrefix)
		if err := copyFile(dbPath, filepath.Join(s.dir, preRestore)); err != nil {
			return "", fmt.Errorf("copia previa a la restauración: %w", err)
		}
	}
	if err := copyFile(src, dbPath); err != nil {
		return preRestore, fmt.Errorf("restaurar %s: %w", name, err)
	}
	return preRestore, nil
}

func isBackupName(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileExt)
}

// copyFile copia src en dst a través de un temporal, y renombra al final.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("abrir origen: %w", err)
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("crear destino: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("copiar: %w", err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sincronizar: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cerrar destino: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renombrar destino: %w", err)
	}
	return nil
}
