package common

import (
	"database/sql"
	"fmt"

	"github.com/Rana718/winegen/internal/types"
)

// ScanTable drains rows into a table. Column kinds come from the driver's
// declared types and byte slices are turned into strings.
func ScanTable(name string, rows *sql.Rows) (*types.Table, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	table := types.NewTable(name)
	for _, ct := range colTypes {
		nullable, _ := ct.Nullable()
		table.Columns = append(table.Columns, types.Column{
			Name:     ct.Name(),
			Kind:     KindOf(ct.DatabaseTypeName()),
			Nullable: nullable,
		})
	}

	for rows.Next() {
		values := make([]interface{}, len(colTypes))
		ptrs := make([]interface{}, len(colTypes))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", name, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		table.Append(values...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", name, err)
	}
	return table, nil
}
