package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/winegen/internal/database/common"
	"github.com/Rana718/winegen/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

func (p *Adapter) TableExists(ctx context.Context, name string) (bool, error) {
	query, args, err := p.qb.Select("1").From("information_schema.tables").
		Where("table_schema = ? AND table_name = ?", p.schema, name).Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, err
	}
	var exists bool
	err = p.pool.QueryRow(ctx, query, args...).Scan(&exists)
	return exists, err
}

func (p *Adapter) CreateTable(ctx context.Context, table *types.Table) error {
	if err := common.ValidateTable(table); err != nil {
		return err
	}
	_, err := p.pool.Exec(ctx, CreateTableSQL(p.schema, table))
	return err
}

// CreateTableSQL quotes every identifier, so upper-case warehouse names such
// as CUSTOMERS keep their case.
func CreateTableSQL(schema string, table *types.Table) string {
	defs := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		def := pq.QuoteIdentifier(col.Name) + " " + common.ColumnType(common.Postgres, col.Kind)
		if !col.Nullable {
			def += " NOT NULL"
		}
		defs[i] = def
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.%s (\n  %s\n)",
		pq.QuoteIdentifier(schema), pq.QuoteIdentifier(table.Name), strings.Join(defs, ",\n  "))
}

// InsertRows appends rows with COPY FROM.
func (p *Adapter) InsertRows(ctx context.Context, table *types.Table) (int64, error) {
	if err := common.ValidateTable(table); err != nil {
		return 0, err
	}
	rows, err := common.RowValues(table)
	if err != nil {
		return 0, err
	}
	n, err := p.pool.CopyFrom(ctx,
		pgx.Identifier{p.schema, table.Name},
		table.ColumnNames(),
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy into %s.%s: %w", p.schema, table.Name, err)
	}
	return n, nil
}

func (p *Adapter) ReadTable(ctx context.Context, name string) (*types.Table, error) {
	if err := common.ValidateIdentifier(name); err != nil {
		return nil, err
	}
	exists, err := p.TableExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: table %s.%s does not exist", types.ErrMissingInput, p.schema, name)
	}

	rows, err := p.pool.Query(ctx, "SELECT * FROM "+pgx.Identifier{p.schema, name}.Sanitize())
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	table := types.NewTable(name)
	for _, fd := range rows.FieldDescriptions() {
		table.Columns = append(table.Columns, types.Column{Name: fd.Name, Kind: kindOfOID(fd.DataTypeOID), Nullable: true})
	}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		table.Append(values...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return table, nil
}

// OIDs of the column types CreateTableSQL emits.
const (
	oidInt8   = 20
	oidInt4   = 23
	oidFloat8 = 701
)

func kindOfOID(oid uint32) types.ColumnKind {
	switch oid {
	case oidInt8, oidInt4:
		return types.Integer
	case oidFloat8:
		return types.Real
	default:
		return types.Text
	}
}
