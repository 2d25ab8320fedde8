package sqlite

import (
	"context"
	"fmt"

	"github.com/Rana718/winegen/internal/types"
)

// Seed is one fixed table of the embedded database and the CSV it is
// loaded from.
type Seed struct {
	Table   string
	File    string
	DDL     string
	Columns []types.Column
}

func textCol(name string) types.Column {
	return types.Column{Name: name, Kind: types.Text, Nullable: true}
}

func intCol(name string) types.Column {
	return types.Column{Name: name, Kind: types.Integer, Nullable: true}
}

func realCol(name string) types.Column {
	return types.Column{Name: name, Kind: types.Real, Nullable: true}
}

var Seeds = []Seed{
	{
		Table: "products",
		File:  "products.csv",
		DDL: `CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY,
  reference TEXT,
  color TEXT,
  country TEXT,
  region TEXT,
  appellation TEXT,
  vintage INTEGER,
  grapes TEXT,
  alcohol_percent REAL,
  bottle_size_l REAL,
  sweetness TEXT,
  tannin TEXT,
  acidity TEXT,
  rating INTEGER,
  price_eur REAL,
  producer TEXT,
  stock_quantity INTEGER
)`,
		Columns: []types.Column{
			intCol("id"), textCol("reference"), textCol("color"), textCol("country"), textCol("region"),
			textCol("appellation"), intCol("vintage"), textCol("grapes"), realCol("alcohol_percent"),
			realCol("bottle_size_l"), textCol("sweetness"), textCol("tannin"), textCol("acidity"),
			intCol("rating"), realCol("price_eur"), textCol("producer"), intCol("stock_quantity"),
		},
	},
	{
		Table: "consumers",
		File:  "consumers.csv",
		DDL: `CREATE TABLE IF NOT EXISTS consumers (
  id INTEGER PRIMARY KEY,
  name TEXT,
  email TEXT,
  country TEXT,
  created_at TEXT
)`,
		Columns: []types.Column{intCol("id"), textCol("name"), textCol("email"), textCol("country"), textCol("created_at")},
	},
	{
		Table: "orders",
		File:  "orders.csv",
		DDL: `CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY,
  consumer_id INTEGER,
  product_id INTEGER,
  qty INTEGER,
  channel TEXT,
  order_ts TEXT
)`,
		Columns: []types.Column{
			intCol("id"), intCol("consumer_id"), intCol("product_id"), intCol("qty"),
			textCol("channel"), textCol("order_ts"),
		},
	},
}

// project keeps the seed's columns of input, in DDL order.
func (sd Seed) project(input *types.Table) (*types.Table, error) {
	idx := make([]int, len(sd.Columns))
	for i, col := range sd.Columns {
		idx[i] = input.Index(col.Name)
		if idx[i] < 0 {
			return nil, fmt.Errorf("%w: %s has no %s column", types.ErrMissingInput, sd.File, col.Name)
		}
	}
	out := types.NewTable(sd.Table, sd.Columns...)
	for _, row := range input.Rows {
		values := make([]interface{}, len(idx))
		for i, j := range idx {
			values[i] = row.Values[j]
		}
		out.Rows = append(out.Rows, types.Row{Values: values, Duplicate: row.Duplicate})
	}
	return out, nil
}

// Reload creates the fixed tables when absent, empties them and loads
// inputs, keyed by table name, in a single transaction. Every seed table
// needs an input.
func (s *Adapter) Reload(ctx context.Context, inputs map[string]*types.Table) ([]types.Summary, error) {
	tables := make([]*types.Table, len(Seeds))
	for i, sd := range Seeds {
		input, ok := inputs[sd.Table]
		if !ok {
			return nil, fmt.Errorf("%w: no data for table %s (expected %s)", types.ErrMissingInput, sd.Table, sd.File)
		}
		t, err := sd.project(input)
		if err != nil {
			return nil, err
		}
		tables[i] = t
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	summaries := make([]types.Summary, 0, len(Seeds))
	for i, sd := range Seeds {
		if _, err := tx.ExecContext(ctx, sd.DDL); err != nil {
			return nil, fmt.Errorf("failed to create table %s: %w", sd.Table, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+sd.Table); err != nil {
			return nil, fmt.Errorf("failed to clear table %s: %w", sd.Table, err)
		}
		n, err := s.insert(ctx, tx, tables[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, types.Summary{
			Table:      sd.Table,
			Rows:       int(n),
			Duplicates: tables[i].DuplicateCount(),
			Target:     s.path,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reload: %w", err)
	}
	return summaries, nil
}
