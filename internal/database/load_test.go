package database

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Rana718/winegen/internal/database/mysql"
	"github.com/Rana718/winegen/internal/database/sqlite"
	"github.com/Rana718/winegen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customers() *types.Table {
	table := types.NewTable("CUSTOMERS",
		types.Column{Name: "customer_id", Kind: types.Integer},
		types.Column{Name: "customer_email", Kind: types.Text, Nullable: true},
	)
	table.Append(1, "a@gmail.com")
	table.Append(2, nil)
	return table
}

func TestNewAdapter(t *testing.T) {
	for _, provider := range []string{"postgres", "postgresql", "mysql", "sqlite", "SQLite3"} {
		a, err := NewAdapter(provider, "")
		require.NoError(t, err, provider)
		assert.NotNil(t, a)
	}
	_, err := NewAdapter("snowflake", "")
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestAppendCreatesThenAppends(t *testing.T) {
	ctx := context.Background()
	a, err := NewAdapter("sqlite", "")
	require.NoError(t, err)
	require.NoError(t, a.Connect(ctx, filepath.Join(t.TempDir(), "wh.db")))
	defer a.Close()

	summary, err := Append(ctx, a, customers(), "sqlite")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Rows)

	summary, err = Append(ctx, a, customers(), "sqlite")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Rows)

	read, err := a.ReadTable(ctx, "CUSTOMERS")
	require.NoError(t, err)
	assert.Equal(t, 4, read.Len())
}

func TestAppendSkipsCreateForExistingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WithArgs("CUSTOMERS").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `CUSTOMERS`")).
		WithArgs(int64(1), "a@gmail.com", int64(2), nil).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	summary, err := Append(context.Background(), mysql.NewWithDB(db, "shop"), customers(), "mysql")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendRejectsBadIdentifier(t *testing.T) {
	table := types.NewTable("orders; drop", types.Column{Name: "id"})
	_, err := Append(context.Background(), mysql.New(), table, "mysql")
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestRename(t *testing.T) {
	src := customers()
	raw := Rename(src, "CUSTOMERS_RAW")
	assert.Equal(t, "CUSTOMERS_RAW", raw.Name)
	assert.Equal(t, "CUSTOMERS", src.Name)
	assert.Equal(t, src.Rows, raw.Rows)
}

func bundleInputs() map[string]*types.Table {
	inputs := map[string]*types.Table{}
	for _, sd := range sqlite.Seeds {
		table := types.NewTable(sd.Table, sd.Columns...)
		for id := 1; id <= 3; id++ {
			values := make([]interface{}, len(sd.Columns))
			values[0] = id
			table.Append(values...)
		}
		inputs[sd.Table] = table
	}
	return inputs
}

func TestTransferAppendsRawTables(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src := sqlite.New()
	require.NoError(t, src.Connect(ctx, filepath.Join(dir, "winenot.db")))
	defer src.Close()
	_, err := src.Reload(ctx, bundleInputs())
	require.NoError(t, err)

	dst := sqlite.New()
	require.NoError(t, dst.Connect(ctx, filepath.Join(dir, "warehouse.db")))
	defer dst.Close()

	summaries, err := Transfer(ctx, src, dst, "warehouse")
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "PRODUCTS_RAW", summaries[0].Table)
	assert.Equal(t, 3, summaries[2].Rows)

	_, err = Transfer(ctx, src, dst, "warehouse")
	require.NoError(t, err)
	orders, err := dst.ReadTable(ctx, "ORDERS_RAW")
	require.NoError(t, err)
	assert.Equal(t, 6, orders.Len())
}

func TestTransferNeedsEverySource(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src := sqlite.New()
	require.NoError(t, src.Connect(ctx, filepath.Join(dir, "empty.db")))
	defer src.Close()
	dst := sqlite.New()
	require.NoError(t, dst.Connect(ctx, filepath.Join(dir, "warehouse.db")))
	defer dst.Close()

	_, err := Transfer(ctx, src, dst, "warehouse")
	assert.True(t, errors.Is(err, types.ErrMissingInput))

	exists, err := dst.TableExists(ctx, "PRODUCTS_RAW")
	require.NoError(t, err)
	assert.False(t, exists)
}
