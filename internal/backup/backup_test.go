package backup

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rana718/winegen/internal/database/sqlite"
	"github.com/Rana718/winegen/internal/generator"
	"github.com/Rana718/winegen/internal/randsrc"
	"github.com/Rana718/winegen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.Adapter {
	t.Helper()
	db := sqlite.New()
	require.NoError(t, db.Connect(context.Background(), filepath.Join(t.TempDir(), "winenot.db")))
	t.Cleanup(func() { db.Close() })
	return db
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	return n
}

func TestCreateBackupSkipsEmptyDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backup")
	path, err := NewBackupManager(openDB(t), dir).CreateBackup(context.Background(), []string{"products", "orders"})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NoDirExists(t, dir)
}

func TestCreateBackupWritesTables(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	orders := types.NewTable("orders", types.Column{Name: "id", Kind: types.Integer}, types.Column{Name: "channel", Kind: types.Text})
	orders.Append(1, "web")
	orders.Append(2, "store")
	require.NoError(t, db.CreateTable(ctx, orders))
	_, err := db.InsertRows(ctx, orders)
	require.NoError(t, err)
	require.NoError(t, db.CreateTable(ctx, types.NewTable("products", types.Column{Name: "id", Kind: types.Integer})))

	bm := NewBackupManager(db, t.TempDir())
	bm.now = func() time.Time { return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC) }

	path, err := bm.CreateBackup(ctx, []string{"products", "consumers", "orders"})
	require.NoError(t, err)
	assert.Equal(t, "backup_2025-06-30_12-00-00", filepath.Base(path))

	assert.Equal(t, 2, countLines(t, filepath.Join(path, "orders.jsonl")))
	assert.NoFileExists(t, filepath.Join(path, "products.jsonl"))
	assert.NoFileExists(t, filepath.Join(path, "consumers.jsonl"))
}

func bundle(t *testing.T) map[string]*types.Table {
	t.Helper()
	asOf := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	src := randsrc.New(42)
	wines, err := generator.Wines(src, generator.WineOptions{Count: 8, Layout: generator.WineProduct})
	require.NoError(t, err)
	people, err := generator.Customers(src, generator.CustomerOptions{Count: 6, Layout: generator.CustomerConsumer, AsOf: asOf})
	require.NoError(t, err)
	orders, err := generator.Orders(src, generator.OrderOptions{
		Count: 20, WineMax: 8, CustMax: 6, Layout: generator.OrderSale, AsOf: asOf,
	})
	require.NoError(t, err)

	return map[string]*types.Table{
		"products":  generator.WineTable("products", generator.WineProduct, wines),
		"consumers": generator.CustomerTable("consumers", generator.CustomerConsumer, people),
		"orders":    generator.OrderTable("orders", generator.OrderSale, orders),
	}
}

func TestReadBackupRestoresTables(t *testing.T) {
	ctx := context.Background()
	tables := []string{"products", "consumers", "orders"}

	src := openDB(t)
	_, err := src.Reload(ctx, bundle(t))
	require.NoError(t, err)

	dir, err := NewBackupManager(src, t.TempDir()).CreateBackup(ctx, tables)
	require.NoError(t, err)
	require.NotEmpty(t, dir)

	inputs, err := ReadBackup(dir, tables)
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	dst := openDB(t)
	_, err = dst.Reload(ctx, inputs)
	require.NoError(t, err)

	for _, name := range tables {
		want, err := src.ReadTable(ctx, name)
		require.NoError(t, err)
		got, err := dst.ReadTable(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, want.ColumnNames(), got.ColumnNames(), name)
		assert.Equal(t, want.Rows, got.Rows, name)
	}
}

func TestReadBackupSkipsMissingTables(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	orders := types.NewTable("orders", types.Column{Name: "id", Kind: types.Integer})
	orders.Append(7)
	require.NoError(t, db.CreateTable(ctx, orders))
	_, err := db.InsertRows(ctx, orders)
	require.NoError(t, err)

	dir, err := NewBackupManager(db, t.TempDir()).CreateBackup(ctx, []string{"products", "orders"})
	require.NoError(t, err)

	inputs, err := ReadBackup(dir, []string{"products", "orders"})
	require.NoError(t, err)
	assert.NotContains(t, inputs, "products")
	require.Contains(t, inputs, "orders")
	assert.Equal(t, int64(7), inputs["orders"].Value(0, "id"))
}

func TestReadBackupNeedsSnapshots(t *testing.T) {
	_, err := ReadBackup(filepath.Join(t.TempDir(), "missing"), []string{"orders"})
	assert.True(t, errors.Is(err, types.ErrMissingInput))

	_, err = ReadBackup(t.TempDir(), []string{"orders"})
	assert.True(t, errors.Is(err, types.ErrMissingInput))
}
