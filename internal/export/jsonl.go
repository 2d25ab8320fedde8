package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Rana718/winegen/internal/types"
)

// writeJSONL writes one object per line with keys in column order. Non-ASCII
// text and HTML characters are written as-is.
func writeJSONL(ctx context.Context, w io.Writer, table *types.Table, opts Options) error {
	keys, err := encodeKeys(header(table, opts))
	if err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for _, row := range table.Rows {
		buf.Reset()
		buf.WriteByte('{')
		values := row.Values
		if opts.Provenance {
			values = append(values[:len(values):len(values)], row.Duplicate)
		}
		for i, v := range values {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(keys[i])
			if err := enc.Encode(v); err != nil {
				return err
			}
			// Encode terminates every value with a newline
			buf.Truncate(buf.Len() - 1)
		}
		buf.WriteString("}\n")

		if _, err := out.Write(buf.Bytes()); err != nil {
			return err
		}

		if opts.Pace > 0 {
			if err := out.Flush(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opts.Pace):
			}
		}
	}
	return out.Flush()
}

func encodeKeys(names []string) ([][]byte, error) {
	keys := make([][]byte, len(names))
	for i, name := range names {
		b, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		keys[i] = append(b, ':')
	}
	return keys, nil
}

// ReadJSONL loads a file written by writeJSONL. Columns follow the key order
// of the first object and take their kind from its values; numbers come back
// as int64 when they have no fraction. A provenance key is turned back into
// the row flag.
func ReadJSONL(path, name string) (*types.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", types.ErrMissingInput, path)
		}
		return nil, fmt.Errorf("%w: failed to open %s: %v", types.ErrResource, path, err)
	}
	defer file.Close()

	dec := json.NewDecoder(bufio.NewReader(file))
	dec.UseNumber()

	table := types.NewTable(name)
	for n := 1; ; n++ {
		keys, values, err := readObject(dec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read object %d of %s: %w", n, path, err)
		}

		if n == 1 {
			for i, key := range keys {
				if key != ProvenanceColumn {
					table.Columns = append(table.Columns, types.Column{Name: key, Kind: kindOf(values[i]), Nullable: true})
				}
			}
		}

		row := types.Row{Values: make([]interface{}, len(table.Columns))}
		for i, key := range keys {
			if key == ProvenanceColumn {
				row.Duplicate, _ = values[i].(bool)
				continue
			}
			idx := table.Index(key)
			if idx < 0 {
				return nil, fmt.Errorf("%w: object %d of %s has unknown key %q", types.ErrMissingInput, n, path, key)
			}
			row.Values[idx] = values[i]
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// readObject reads one flat object, keeping its key order. It returns io.EOF
// once the input is exhausted.
func readObject(dec *json.Decoder) ([]string, []interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected an object, got %v", tok)
	}

	var keys []string
	var values []interface{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected a key, got %v", tok)
		}
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if num, ok := v.(json.Number); ok {
			if v, err = numberValue(num); err != nil {
				return nil, nil, err
			}
		}
		keys = append(keys, key)
		values = append(values, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

func numberValue(num json.Number) (interface{}, error) {
	if i, err := num.Int64(); err == nil {
		return i, nil
	}
	f, err := num.Float64()
	if err != nil {
		return nil, err
	}
	return f, nil
}

func kindOf(v interface{}) types.ColumnKind {
	switch v.(type) {
	case int64:
		return types.Integer
	case float64:
		return types.Real
	default:
		return types.Text
	}
}
