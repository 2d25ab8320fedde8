// Package backup snapshots tables to JSONL files before they are replaced
// and reads those snapshots back.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rana718/winegen/internal/export"
	"github.com/Rana718/winegen/internal/types"
	"go.uber.org/zap"
)

// TableReader is the part of a database adapter a backup reads from.
type TableReader interface {
	TableExists(ctx context.Context, name string) (bool, error)
	ReadTable(ctx context.Context, name string) (*types.Table, error)
}

type BackupManager struct {
	db         TableReader
	backupPath string
	logger     *zap.Logger
	now        func() time.Time
}

type Option func(*BackupManager)

func WithLogger(logger *zap.Logger) Option {
	return func(bm *BackupManager) {
		bm.logger = logger
	}
}

func NewBackupManager(db TableReader, backupPath string, opts ...Option) *BackupManager {
	bm := &BackupManager{
		db:         db,
		backupPath: backupPath,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(bm)
	}
	return bm
}

// CreateBackup writes every listed table that exists and has rows to
// backup_<timestamp>/<table>.jsonl and returns that directory. When there is
// nothing to save it returns "" and writes nothing.
func (bm *BackupManager) CreateBackup(ctx context.Context, tables []string) (string, error) {
	var data []*types.Table
	for _, name := range tables {
		exists, err := bm.db.TableExists(ctx, name)
		if err != nil {
			return "", fmt.Errorf("%w: failed to check table %s: %v", types.ErrResource, name, err)
		}
		if !exists {
			continue
		}
		table, err := bm.db.ReadTable(ctx, name)
		if err != nil {
			return "", err
		}
		if table.Len() > 0 {
			data = append(data, table)
		}
	}
	if len(data) == 0 {
		return "", nil
	}

	dir := filepath.Join(bm.backupPath, "backup_"+bm.now().Format("2006-01-02_15-04-05"))
	for _, table := range data {
		path := filepath.Join(dir, table.Name+export.JSONL.Ext())
		if _, err := export.WriteFile(ctx, table, path, export.JSONL, export.Options{}); err != nil {
			return "", err
		}
		bm.logger.Info("backed up table", zap.String("table", table.Name), zap.Int("rows", table.Len()), zap.String("path", path))
	}
	return dir, nil
}

// ReadBackup loads the <table>.jsonl files of a directory written by
// CreateBackup. Tables without a file were empty when the backup was taken
// and are left out of the result.
func ReadBackup(dir string, tables []string) (map[string]*types.Table, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: backup directory %s not found", types.ErrMissingInput, dir)
	}

	out := make(map[string]*types.Table, len(tables))
	for _, name := range tables {
		path := filepath.Join(dir, name+export.JSONL.Ext())
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		table, err := export.ReadJSONL(path, name)
		if err != nil {
			return nil, err
		}
		out[name] = table
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no table snapshots in %s", types.ErrMissingInput, dir)
	}
	return out, nil
}
