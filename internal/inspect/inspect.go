// Package inspect reports on a generated table without changing it: row and
// duplicate counts, and which date and price encodings each column holds.
package inspect

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Rana718/winegen/internal/export"
	"github.com/Rana718/winegen/internal/format"
	"github.com/Rana718/winegen/internal/types"
)

type ColumnKind string

const (
	KindDate  ColumnKind = "date"
	KindPrice ColumnKind = "price"
)

// ColumnFormats counts the encodings found in one date or price column.
type ColumnFormats struct {
	Column  string         `json:"column"`
	Kind    ColumnKind     `json:"kind"`
	Counts  map[string]int `json:"counts"`
	Unknown int            `json:"unknown"`
}

// Report describes one table. KeyDuplicates counts rows whose KeyColumn value
// was already seen, ExactDuplicates rows identical to an earlier row, and
// Flagged rows carrying the is_duplicate column.
type Report struct {
	Table           string          `json:"table"`
	Rows            int             `json:"rows"`
	Columns         int             `json:"columns"`
	KeyColumn       string          `json:"key_column"`
	KeyDuplicates   int             `json:"key_duplicates"`
	ExactDuplicates int             `json:"exact_duplicates"`
	Flagged         int             `json:"flagged"`
	Nulls           map[string]int  `json:"nulls"`
	Formats         []ColumnFormats `json:"formats"`
}

// File reads a CSV and analyzes it.
func File(path, key string) (*Report, error) {
	name := strings.TrimSuffix(filepath.Base(path), ".csv")
	table, err := export.ReadCSV(path, name)
	if err != nil {
		return nil, err
	}
	return Analyze(table, key), nil
}

// Analyze builds the report. An empty key uses the first column.
func Analyze(table *types.Table, key string) *Report {
	r := &Report{
		Table:   table.Name,
		Rows:    table.Len(),
		Columns: len(table.Columns),
		Flagged: table.DuplicateCount(),
		Nulls:   make(map[string]int),
	}
	if len(table.Columns) == 0 {
		return r
	}
	if key == "" || table.Index(key) < 0 {
		key = table.Columns[0].Name
	}
	r.KeyColumn = key
	keyIdx := table.Index(key)

	seenKeys := make(map[string]bool, table.Len())
	seenRows := make(map[string]bool, table.Len())
	for _, row := range table.Rows {
		k := fmt.Sprint(row.Values[keyIdx])
		if seenKeys[k] {
			r.KeyDuplicates++
		}
		seenKeys[k] = true

		whole := rowKey(row)
		if seenRows[whole] {
			r.ExactDuplicates++
		}
		seenRows[whole] = true

		for i, v := range row.Values {
			if v == nil {
				r.Nulls[table.Columns[i].Name]++
			}
		}
	}

	for i, col := range table.Columns {
		if f, ok := classify(table, i); ok {
			f.Column = col.Name
			r.Formats = append(r.Formats, f)
		}
	}
	return r
}

// classify decides whether a column holds dates or prices: more than half of
// its non-null values must parse as one of them.
func classify(table *types.Table, col int) (ColumnFormats, bool) {
	dates := ColumnFormats{Kind: KindDate, Counts: map[string]int{}}
	prices := ColumnFormats{Kind: KindPrice, Counts: map[string]int{}}
	present := 0

	for _, row := range table.Rows {
		s, ok := row.Values[col].(string)
		if !ok || s == "" {
			continue
		}
		present++
		if layout, _, err := format.DetectDate(s); err == nil {
			dates.Counts[layout.String()]++
		} else {
			dates.Unknown++
		}
		if style, _, err := format.DetectPrice(s); err == nil {
			prices.Counts[style.String()]++
		} else {
			prices.Unknown++
		}
	}
	if present == 0 {
		return ColumnFormats{}, false
	}

	switch {
	case 2*(present-dates.Unknown) > present:
		return dates, true
	case 2*(present-prices.Unknown) > present:
		return prices, true
	default:
		return ColumnFormats{}, false
	}
}

// SortedCounts returns the encodings of f, most frequent first.
func (f ColumnFormats) SortedCounts() []string {
	names := make([]string, 0, len(f.Counts))
	for name := range f.Counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if f.Counts[names[i]] != f.Counts[names[j]] {
			return f.Counts[names[i]] > f.Counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func rowKey(row types.Row) string {
	var b strings.Builder
	for i, v := range row.Values {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		if v == nil {
			b.WriteByte(0)
			continue
		}
		b.WriteString(fmt.Sprint(v))
	}
	return b.String()
}
