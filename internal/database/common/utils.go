package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Rana718/winegen/internal/types"
)

// BatchSize bounds the rows per multi-row INSERT.
const BatchSize = 500

var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateIdentifier rejects table and column names that would need quoting
// rules beyond the drivers' own.
func ValidateIdentifier(name string) error {
	if !identifierRegex.MatchString(name) {
		return fmt.Errorf("%w: invalid identifier %q", types.ErrInvalidConfig, name)
	}
	return nil
}

// ValidateTable checks the table and every column name.
func ValidateTable(table *types.Table) error {
	if err := ValidateIdentifier(table.Name); err != nil {
		return err
	}
	if len(table.Columns) == 0 {
		return fmt.Errorf("%w: table %s has no columns", types.ErrInvalidConfig, table.Name)
	}
	for _, col := range table.Columns {
		if err := ValidateIdentifier(col.Name); err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
	}
	return nil
}

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
	MySQL
)

var typeMap = map[Dialect]map[types.ColumnKind]string{
	SQLite:   {types.Text: "TEXT", types.Integer: "INTEGER", types.Real: "REAL"},
	Postgres: {types.Text: "TEXT", types.Integer: "BIGINT", types.Real: "DOUBLE PRECISION"},
	MySQL:    {types.Text: "TEXT", types.Integer: "BIGINT", types.Real: "DOUBLE"},
}

func ColumnType(d Dialect, kind types.ColumnKind) string {
	return typeMap[d][kind]
}

// KindOf maps a driver's declared column type back to a kind.
func KindOf(dbType string) types.ColumnKind {
	switch normalizeType(dbType) {
	case "INTEGER", "INT", "BIGINT", "SMALLINT", "TINYINT", "INT2", "INT4", "INT8", "MEDIUMINT":
		return types.Integer
	case "REAL", "DOUBLE", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE PRECISION", "NUMERIC", "DECIMAL":
		return types.Real
	default:
		return types.Text
	}
}

// Coerce converts a value read from text (CSV cells) to the column's kind so
// binary protocols accept it. Nil stays nil.
func Coerce(kind types.ColumnKind, v interface{}) (interface{}, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	switch kind {
	case types.Integer:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot store %q as integer: %w", s, err)
		}
		return n, nil
	case types.Real:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot store %q as real: %w", s, err)
		}
		return f, nil
	default:
		return s, nil
	}
}

// RowValues returns the coerced values of every row, in column order.
func RowValues(table *types.Table) ([][]interface{}, error) {
	out := make([][]interface{}, 0, len(table.Rows))
	for i, row := range table.Rows {
		if len(row.Values) != len(table.Columns) {
			return nil, fmt.Errorf("table %s row %d has %d values for %d columns", table.Name, i, len(row.Values), len(table.Columns))
		}
		values := make([]interface{}, len(row.Values))
		for j, v := range row.Values {
			c, err := Coerce(table.Columns[j].Kind, v)
			if err != nil {
				return nil, fmt.Errorf("table %s row %d column %s: %w", table.Name, i, table.Columns[j].Name, err)
			}
			values[j] = c
		}
		out = append(out, values)
	}
	return out, nil
}

// Batches splits rows into chunks of at most size.
func Batches(rows [][]interface{}, size int) [][][]interface{} {
	if size <= 0 {
		size = BatchSize
	}
	var out [][][]interface{}
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}

func normalizeType(dbType string) string {
	t, _, _ := strings.Cut(strings.ToUpper(strings.TrimSpace(dbType)), "(")
	return strings.TrimPrefix(strings.TrimSpace(t), "UNSIGNED ")
}
