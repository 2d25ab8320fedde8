package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rana718/winegen/internal/export"
	"github.com/Rana718/winegen/internal/generator"
	"github.com/Rana718/winegen/internal/randsrc"
	"github.com/Rana718/winegen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func openTemp(t *testing.T) *Adapter {
	t.Helper()
	a := New()
	require.NoError(t, a.Connect(context.Background(), filepath.Join(t.TempDir(), "winenot.db")))
	t.Cleanup(func() { a.Close() })
	return a
}

func bundle(t *testing.T, products, consumers, sales int) map[string]*types.Table {
	t.Helper()
	src := randsrc.New(7)
	wines, err := generator.Wines(src, generator.WineOptions{Count: products, Layout: generator.WineProduct})
	require.NoError(t, err)
	people, err := generator.Customers(src, generator.CustomerOptions{Count: consumers, Layout: generator.CustomerConsumer, AsOf: asOf})
	require.NoError(t, err)
	orders, err := generator.Orders(src, generator.OrderOptions{
		Count: sales, WineMax: products, CustMax: consumers, Layout: generator.OrderSale, AsOf: asOf,
	})
	require.NoError(t, err)

	return map[string]*types.Table{
		"products":  generator.WineTable("products", generator.WineProduct, wines),
		"consumers": generator.CustomerTable("consumers", generator.CustomerConsumer, people),
		"orders":    generator.OrderTable("orders", generator.OrderSale, orders),
	}
}

func TestReloadReplacesContents(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()

	summaries, err := a.Reload(ctx, bundle(t, 20, 30, 100))
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "products", summaries[0].Table)
	assert.Equal(t, 20, summaries[0].Rows)
	assert.Equal(t, 30, summaries[1].Rows)
	assert.Equal(t, 100, summaries[2].Rows)

	// a second load replaces rather than appends
	_, err = a.Reload(ctx, bundle(t, 5, 6, 7))
	require.NoError(t, err)

	orders, err := a.ReadTable(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, 7, orders.Len())
	assert.Equal(t, []string{"id", "consumer_id", "product_id", "qty", "channel", "order_ts"}, orders.ColumnNames())
	assert.Equal(t, types.Integer, orders.Columns[0].Kind)
	assert.Equal(t, int64(1), orders.Value(0, "id"))
}

func TestReloadFromCSV(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()
	dir := t.TempDir()

	inputs := map[string]*types.Table{}
	for name, table := range bundle(t, 10, 10, 25) {
		path := filepath.Join(dir, name+".csv")
		_, err := export.WriteFile(ctx, table, path, export.CSV, export.Options{})
		require.NoError(t, err)
		read, err := export.ReadCSV(path, name)
		require.NoError(t, err)
		inputs[name] = read
	}

	_, err := a.Reload(ctx, inputs)
	require.NoError(t, err)

	products, err := a.ReadTable(ctx, "products")
	require.NoError(t, err)
	require.Equal(t, 10, products.Len())
	assert.Equal(t, "WINE-00001", products.Value(0, "reference"))
	assert.IsType(t, float64(0), products.Value(0, "price_eur"))
	assert.IsType(t, int64(0), products.Value(0, "vintage"))
}

func TestReloadMissingInputLeavesDatabaseUntouched(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()
	_, err := a.Reload(ctx, bundle(t, 3, 3, 3))
	require.NoError(t, err)

	inputs := bundle(t, 4, 4, 4)
	delete(inputs, "consumers")
	_, err = a.Reload(ctx, inputs)
	assert.True(t, errors.Is(err, types.ErrMissingInput))

	products, err := a.ReadTable(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, 3, products.Len())
}

func TestReloadMissingColumn(t *testing.T) {
	a := openTemp(t)
	inputs := bundle(t, 3, 3, 3)
	inputs["orders"] = types.NewTable("orders", types.Column{Name: "id", Kind: types.Integer})
	_, err := a.Reload(context.Background(), inputs)
	assert.True(t, errors.Is(err, types.ErrMissingInput))
}

func TestCreateAndAppend(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()
	table := types.NewTable("PRODUCTS_RAW",
		types.Column{Name: "id", Kind: types.Integer},
		types.Column{Name: "price_eur", Kind: types.Real},
		types.Column{Name: "email", Kind: types.Text, Nullable: true},
	)
	table.Append(1, 12.5, nil)
	table.Append(2, 99.99, "a@example.com")

	exists, err := a.TableExists(ctx, table.Name)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, a.CreateTable(ctx, table))
	for i := 0; i < 2; i++ {
		n, err := a.InsertRows(ctx, table)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	}

	read, err := a.ReadTable(ctx, table.Name)
	require.NoError(t, err)
	assert.Equal(t, 4, read.Len())
	assert.Nil(t, read.Value(0, "email"))
	assert.Equal(t, 12.5, read.Value(0, "price_eur"))
}

func TestReadTableMissing(t *testing.T) {
	a := openTemp(t)
	_, err := a.ReadTable(context.Background(), "products")
	assert.True(t, errors.Is(err, types.ErrMissingInput))
}

func TestCreateTableSQL(t *testing.T) {
	table := types.NewTable("t", types.Column{Name: "id", Kind: types.Integer}, types.Column{Name: "v", Kind: types.Real})
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS t (id INTEGER, v REAL)", CreateTableSQL(table))
}
