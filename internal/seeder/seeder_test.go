package seeder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rana718/winegen/internal/config"
	"github.com/Rana718/winegen/internal/database/sqlite"
	"github.com/Rana718/winegen/internal/export"
	"github.com/Rana718/winegen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.AsOf = "2025-06-30T12:00:00Z"
	cfg.Products = 40
	cfg.Consumers = 30
	cfg.Sales = 200
	return cfg
}

func newSeeder(t *testing.T, cfg *config.Config) *Seeder {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.DupRatio = 2
	_, err := New(cfg)
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestReferenceTimeFromConfig(t *testing.T) {
	s := newSeeder(t, testConfig())
	assert.Equal(t, time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC), s.ReferenceTime())
}

func TestWarehouseLogsBuildOrder(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s, err := New(testConfig(), WithLogger(zap.New(core)))
	require.NoError(t, err)

	_, err = s.Warehouse()
	require.NoError(t, err)

	entries := logs.FilterMessage("built datasets").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []interface{}{WarehouseCustomers, WarehouseWines, WarehouseOrders}, entries[0].ContextMap()["order"])
}

func TestCustomerTableWithDuplicates(t *testing.T) {
	s := newSeeder(t, testConfig())

	table, err := s.CustomerTable(Job{Count: 150, DupRatio: 0.05})
	require.NoError(t, err)
	assert.Equal(t, 157, table.Len())
	assert.Equal(t, 7, table.DuplicateCount())

	clean, err := s.CustomerTable(Job{Count: 150})
	require.NoError(t, err)
	assert.Equal(t, 150, clean.Len())
	assert.Equal(t, 1, clean.Value(0, "customer_id"))
}

func TestJobsRejectBadInput(t *testing.T) {
	s := newSeeder(t, testConfig())

	_, err := s.CustomerTable(Job{Count: 0, DupRatio: 0.05})
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
	_, err = s.WineTable(Job{Count: 10, DupRatio: -0.1})
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
	_, err = s.EventTable(Job{Count: 10, CustMax: -1})
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestTablesAreReproducible(t *testing.T) {
	a, err := newSeeder(t, testConfig()).EventTable(Job{Count: 60, DupRatio: 0.05})
	require.NoError(t, err)
	b, err := newSeeder(t, testConfig()).EventTable(Job{Count: 60, DupRatio: 0.05})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	cfg := testConfig()
	cfg.Seed = 7
	c, err := newSeeder(t, cfg).EventTable(Job{Count: 60, DupRatio: 0.05})
	require.NoError(t, err)
	assert.NotEqual(t, a.Rows, c.Rows)
}

func TestEventTableUsesConfiguredBounds(t *testing.T) {
	cfg := testConfig()
	cfg.Wines = 3
	cfg.Customers = 2
	table, err := newSeeder(t, cfg).EventTable(Job{Count: 100})
	require.NoError(t, err)
	for i := 0; i < table.Len(); i++ {
		assert.LessOrEqual(t, table.Value(i, "wine_id"), 3)
		assert.LessOrEqual(t, table.Value(i, "customer_id"), 2)
	}
}

func TestWarehouseReferencesGeneratedIDs(t *testing.T) {
	tables, err := newSeeder(t, testConfig()).Warehouse()
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, []string{WarehouseCustomers, WarehouseWines, WarehouseOrders},
		[]string{tables[0].Name, tables[1].Name, tables[2].Name})

	customers, wines, orders := tables[0], tables[1], tables[2]
	assert.Equal(t, 50, customers.Len())
	assert.Equal(t, 500, wines.Len())
	assert.Equal(t, 100, orders.Len())
	for i := 0; i < orders.Len(); i++ {
		assert.LessOrEqual(t, orders.Value(i, "customer_id"), customers.Len())
		assert.LessOrEqual(t, orders.Value(i, "wine_id"), wines.Len())
	}
}

func TestBundleRoundTripsThroughSQLite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := newSeeder(t, testConfig())

	tables, err := s.Bundle()
	require.NoError(t, err)
	summaries, err := s.WriteAll(ctx, tables, dir, Output{Format: export.CSV})
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	for _, sd := range sqlite.Seeds {
		assert.FileExists(t, filepath.Join(dir, sd.File))
	}

	inputs, err := ReadBundle(dir)
	require.NoError(t, err)

	db := sqlite.New()
	require.NoError(t, db.Connect(ctx, filepath.Join(dir, "winenot.db")))
	defer db.Close()
	loaded, err := db.Reload(ctx, inputs)
	require.NoError(t, err)

	rows := map[string]int{}
	for _, summary := range loaded {
		rows[summary.Table] = summary.Rows
	}
	assert.Equal(t, map[string]int{"products": 40, "consumers": 30, "orders": 200}, rows)
}

func TestReadBundleMissingFile(t *testing.T) {
	_, err := ReadBundle(t.TempDir())
	assert.True(t, errors.Is(err, types.ErrMissingInput))
}

func TestWriteEventsAddsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newSeeder(t, testConfig())
	table, err := s.EventTable(Job{Count: 20, DupRatio: 0.05})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "orders_events.jsonl")
	summaries, err := s.WriteEvents(ctx, table, path, Output{Format: export.JSONL})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, path, summaries[0].Target)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "orders_events.csv"), summaries[1].Target)
	assert.Equal(t, 21, summaries[1].Rows)

	csvOnly, err := s.WriteEvents(ctx, table, path, Output{Format: export.CSV})
	require.NoError(t, err)
	assert.Len(t, csvOnly, 1)
}

func TestWriteSwapsExtension(t *testing.T) {
	s := newSeeder(t, testConfig())
	table, err := s.WineTable(Job{Count: 5})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wines.csv")
	summary, err := s.Write(context.Background(), table, path, Output{Format: export.Parquet})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "wines.parquet"), summary.Target)

	_, err = os.Stat(summary.Target)
	assert.NoError(t, err)
}
