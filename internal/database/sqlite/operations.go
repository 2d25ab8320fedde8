package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Rana718/winegen/internal/database/common"
	"github.com/Rana718/winegen/internal/types"
)

func (s *Adapter) TableExists(ctx context.Context, name string) (bool, error) {
	query, args, err := s.qb.Select("COUNT(*)").From("sqlite_master").
		Where("type = ? AND name = ?", "table", name).ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Adapter) CreateTable(ctx context.Context, table *types.Table) error {
	if err := common.ValidateTable(table); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, CreateTableSQL(table))
	return err
}

// CreateTableSQL renders a CREATE TABLE IF NOT EXISTS for table's columns.
func CreateTableSQL(table *types.Table) string {
	defs := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		defs[i] = fmt.Sprintf("%s %s", col.Name, common.ColumnType(common.SQLite, col.Kind))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table.Name, strings.Join(defs, ", "))
}

// InsertRows appends every row of table in one transaction.
func (s *Adapter) InsertRows(ctx context.Context, table *types.Table) (int64, error) {
	if err := common.ValidateTable(table); err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	n, err := s.insert(ctx, tx, table)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert into %s: %w", table.Name, err)
	}
	return n, nil
}

func (s *Adapter) insert(ctx context.Context, tx *sql.Tx, table *types.Table) (int64, error) {
	rows, err := common.RowValues(table)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, batch := range common.Batches(rows, common.BatchSize) {
		insert := s.qb.Insert(table.Name).Columns(table.ColumnNames()...)
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
	return total, nil
}

// ReadTable loads every row of name in rowid order. Column kinds come from
// the declared types.
func (s *Adapter) ReadTable(ctx context.Context, name string) (*types.Table, error) {
	if err := common.ValidateIdentifier(name); err != nil {
		return nil, err
	}
	exists, err := s.TableExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: table %s does not exist in %s", types.ErrMissingInput, name, s.path)
	}

	query, args, err := s.qb.Select("*").From(name).OrderBy("rowid").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()
	return common.ScanTable(name, rows)
}
