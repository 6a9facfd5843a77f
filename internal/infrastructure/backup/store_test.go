package backup_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/backup"
)

func writeDB(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("SQLite format 3\x00"+body), 0o644))
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestSnapshot_ListaYPoda(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "gimnasio.db")
	writeDB(t, dbPath, "datos")

	c := &clock{t: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}
	store := backup.NewFileStore(filepath.Join(tmp, "respaldos"), 2).WithClock(c.now)

	var names []string
	for i := 0; i < 3; i++ {
		info, err := store.Snapshot(dbPath)
		require.NoError(t, err)
		names = append(names, info.Name)
		c.t = c.t.Add(time.Minute)
	}
	assert.Equal(t, "gimnasio_20240615_100000.db", names[0])

	removed, err := store.Prune()
	require.NoError(t, err)
	assert.Equal(t, []string{names[0]}, removed)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, names[2], list[0].Name, "el más reciente primero")
	assert.Equal(t, int64(len("SQLite format 3\x00datos")), list[0].Size)
}

func TestSnapshot_MismoSegundoNoSobrescribe(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "gimnasio.db")
	writeDB(t, dbPath, "")
	store := backup.NewFileStore(tmp, 10).WithClock(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) })

	a, err := store.Snapshot(dbPath)
	require.NoError(t, err)
	b, err := store.Snapshot(dbPath)
	require.NoError(t, err)
	assert.NotEqual(t, a.Name, b.Name)
}

func TestSnapshot_RechazaArchivoNoSQLite(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "gimnasio.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("no soy una base de datos"), 0o644))

	_, err := backup.NewFileStore(tmp, 10).Snapshot(dbPath)
	assert.ErrorIs(t, err, domain.ErrInvalidBackup)
}

func TestList_DirectorioInexistente(t *testing.T) {
	list, err := backup.NewFileStore(filepath.Join(t.TempDir(), "nada"), 10).List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRestore(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "respaldos")
	dbPath := filepath.Join(tmp, "gimnasio.db")
	writeDB(t, dbPath, "viejo")

	store := backup.NewFileStore(dir, 10).WithClock(func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) })
	info, err := store.Snapshot(dbPath)
	require.NoError(t, err)

	writeDB(t, dbPath, "nuevo")
	pre, err := store.Restore(info.Name, dbPath)
	require.NoError(t, err)
	assert.Equal(t, "pre_restore_20240615_100000.db", pre)

	got, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, "SQLite format 3\x00viejo", string(got))
	saved, err := os.ReadFile(filepath.Join(dir, pre))
	require.NoError(t, err)
	assert.Equal(t, "SQLite format 3\x00nuevo", string(saved))

	list, err := store.List()
	require.NoError(t, err)
	assert.Len(t, list, 1, "la copia previa no cuenta como respaldo")
}

func TestRestore_Validaciones(t *testing.T) {
	tmp := t.TempDir()
	store := backup.NewFileStore(tmp, 10)
	dbPath := filepath.Join(tmp, "gimnasio.db")

	_, err := store.Restore("../gimnasio.db", dbPath)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = store.Restore("gimnasio_20240101_000000.db", dbPath)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "gimnasio_20240101_000000.db"), []byte("basura"), 0o644))
	_, err = store.Restore("gimnasio_20240101_000000.db", dbPath)
	assert.ErrorIs(t, err, domain.ErrInvalidBackup)
}
