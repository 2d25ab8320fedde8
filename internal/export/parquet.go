package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Rana718/winegen/internal/types"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

func arrowSchema(table *types.Table, opts Options) *arrow.Schema {
	fields := make([]arrow.Field, 0, len(table.Columns)+1)
	for _, col := range table.Columns {
		var dt arrow.DataType
		switch col.Kind {
		case types.Integer:
			dt = arrow.PrimitiveTypes.Int64
		case types.Real:
			dt = arrow.PrimitiveTypes.Float64
		default:
			dt = arrow.BinaryTypes.String
		}
		fields = append(fields, arrow.Field{Name: col.Name, Type: dt, Nullable: col.Nullable})
	}
	if opts.Provenance {
		fields = append(fields, arrow.Field{Name: ProvenanceColumn, Type: arrow.FixedWidthTypes.Boolean})
	}
	return arrow.NewSchema(fields, nil)
}

// writeParquet writes the whole table as a single record batch. w is never
// closed here; the parquet writer would close any io.Closer it is given.
func writeParquet(w io.Writer, table *types.Table, opts Options) error {
	mem := memory.NewGoAllocator()
	schema := arrowSchema(table, opts)

	rec, err := buildRecord(mem, schema, table, opts)
	if err != nil {
		return err
	}
	defer rec.Release()

	writer, err := pqarrow.NewFileWriter(schema, struct{ io.Writer }{w}, nil, pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(mem)))
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.Write(rec); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write record batch: %w", err)
	}
	return writer.Close()
}

func buildRecord(mem memory.Allocator, schema *arrow.Schema, table *types.Table, opts Options) (arrow.Record, error) {
	builders := make([]array.Builder, schema.NumFields())
	for i, field := range schema.Fields() {
		builders[i] = array.NewBuilder(mem, field.Type)
	}
	defer func() {
		for _, b := range builders {
			b.Release()
		}
	}()

	for r, row := range table.Rows {
		for c, v := range row.Values {
			if err := appendValue(builders[c], v); err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", r, table.Columns[c].Name, err)
			}
		}
		if opts.Provenance {
			builders[len(builders)-1].(*array.BooleanBuilder).Append(row.Duplicate)
		}
	}

	cols := make([]arrow.Array, len(builders))
	for i, b := range builders {
		cols[i] = b.NewArray()
	}
	defer func() {
		for _, col := range cols {
			col.Release()
		}
	}()
	return array.NewRecord(schema, cols, int64(table.Len())), nil
}

func appendValue(b array.Builder, v interface{}) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch bb := b.(type) {
	case *array.StringBuilder:
		bb.Append(cell(v))
	case *array.Int64Builder:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		bb.Append(n)
	case *array.Float64Builder:
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		bb.Append(f)
	default:
		return fmt.Errorf("unsupported builder %T", b)
	}
	return nil
}

func toInt64(v interface{}) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	case string:
		return strconv.ParseInt(x, 10, 64)
	default:
		return 0, fmt.Errorf("cannot store %T as integer", v)
	}
}

func toFloat64(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("cannot store %T as real", v)
	}
}
