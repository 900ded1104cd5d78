package database

import (
	"context"
	"path/filepath"
	"testing"

	"motorent/internal/config"
	"motorent/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformBackup(t *testing.T) {
	logger := zerolog.Nop()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "app.db")

	db, err := New(dbPath, &logger)
	require.NoError(t, err)
	seedCar(t, db)
	require.NoError(t, db.Close())

	backupDir := filepath.Join(dir, "backups")
	svc := NewBackupService(dbPath, config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	require.NoError(t, svc.PerformBackup())

	entries, err := filepath.Glob(filepath.Join(backupDir, "backup_*.db"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Снимок открывается и содержит данные
	restored, err := New(entries[0], &logger)
	require.NoError(t, err)
	defer restored.Close()

	cars, err := restored.ListCars(context.Background(), models.CarFilter{})
	require.NoError(t, err)
	assert.Len(t, cars, 1)
}

func TestBackupDisabled(t *testing.T) {
	logger := zerolog.Nop()
	svc := NewBackupService("ignored.db", config.BackupConfig{Enabled: false}, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Start с выключенным бэкапом возвращается сразу
	svc.Start(ctx)
}
