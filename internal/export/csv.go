package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Rana718/winegen/internal/types"
)

func writeCSV(w io.Writer, table *types.Table, opts Options) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header(table, opts)); err != nil {
		return err
	}

	record := make([]string, 0, len(table.Columns)+1)
	for _, row := range table.Rows {
		record = record[:0]
		for _, v := range row.Values {
			record = append(record, cell(v))
		}
		if opts.Provenance {
			record = append(record, strconv.FormatBool(row.Duplicate))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV loads a CSV file with a header row into a table of text columns.
// Empty cells come back as nil. A provenance column, if present, is turned
// back into the row flag.
func ReadCSV(path, name string) (*types.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", types.ErrMissingInput, path)
		}
		return nil, fmt.Errorf("%w: failed to open %s: %v", types.ErrResource, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	head, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", types.ErrMissingInput, path)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	provenance := -1
	table := types.NewTable(name)
	for i, col := range head {
		if col == ProvenanceColumn {
			provenance = i
			continue
		}
		table.Columns = append(table.Columns, types.Column{Name: col, Kind: types.Text, Nullable: true})
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		row := types.Row{Values: make([]interface{}, 0, len(table.Columns))}
		for i, v := range record {
			if i == provenance {
				row.Duplicate, _ = strconv.ParseBool(v)
				continue
			}
			if v == "" {
				row.Values = append(row.Values, nil)
			} else {
				row.Values = append(row.Values, v)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
