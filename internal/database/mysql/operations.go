package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/winegen/internal/database/common"
	"github.com/Rana718/winegen/internal/types"
)

func (m *Adapter) TableExists(ctx context.Context, name string) (bool, error) {
	query, args, err := m.qb.Select("COUNT(*)").From("information_schema.tables").
		Where("table_schema = DATABASE() AND table_name = ?", name).ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := m.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *Adapter) CreateTable(ctx context.Context, table *types.Table) error {
	if err := common.ValidateTable(table); err != nil {
		return err
	}
	_, err := m.db.ExecContext(ctx, CreateTableSQL(table))
	return err
}

func quote(name string) string {
	return "`" + name + "`"
}

func CreateTableSQL(table *types.Table) string {
	defs := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		def := quote(col.Name) + " " + common.ColumnType(common.MySQL, col.Kind)
		if !col.Nullable {
			def += " NOT NULL"
		}
		defs[i] = def
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s) DEFAULT CHARSET=utf8mb4",
		quote(table.Name), strings.Join(defs, ", "))
}

// InsertRows appends rows in multi-row INSERT batches inside one
// transaction.
func (m *Adapter) InsertRows(ctx context.Context, table *types.Table) (int64, error) {
	if err := common.ValidateTable(table); err != nil {
		return 0, err
	}
	rows, err := common.RowValues(table)
	if err != nil {
		return 0, err
	}

	columns := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		columns[i] = quote(col.Name)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var total int64
	for _, batch := range common.Batches(rows, common.BatchSize) {
		insert := m.qb.Insert(quote(table.Name)).Columns(columns...)
		for _, values := range batch {
			insert = insert.Values(values...)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return 0, err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %w", table.Name, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert into %s: %w", table.Name, err)
	}
	return total, nil
}

func (m *Adapter) ReadTable(ctx context.Context, name string) (*types.Table, error) {
	if err := common.ValidateIdentifier(name); err != nil {
		return nil, err
	}
	exists, err := m.TableExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: table %s does not exist in %s", types.ErrMissingInput, name, m.currentDB)
	}

	rows, err := m.db.QueryContext(ctx, "SELECT * FROM "+quote(name))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()
	return common.ScanTable(name, rows)
}
