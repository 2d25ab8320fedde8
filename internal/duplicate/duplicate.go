// Package duplicate re-appends a sampled fraction of generated records and
// shuffles the result, simulating the same record being ingested twice.
package duplicate

import (
	"fmt"
	"math"

	"github.com/Rana718/winegen/internal/randsrc"
	"github.com/Rana718/winegen/internal/types"
)

// Count returns how many duplicates a run of n records with ratio r gets:
// max(1, floor(r*n)).
func Count(n int, ratio float64) int {
	d := int(math.Floor(ratio * float64(n)))
	if d < 1 {
		d = 1
	}
	return d
}

// Validate checks the ratio and base length before anything is drawn.
func Validate(n int, ratio float64) error {
	if math.IsNaN(ratio) || ratio <= 0 || ratio > 1 {
		return fmt.Errorf("%w: duplicate ratio must be in (0, 1], got %v", types.ErrInvalidConfig, ratio)
	}
	if n == 0 {
		return fmt.Errorf("%w: cannot duplicate an empty record set", types.ErrInvalidConfig)
	}
	return nil
}

// Inject samples Count(len(items), ratio) items with replacement, passes each
// through clone, appends them and shuffles the whole slice once. It returns
// the combined slice and the number of duplicates added.
func Inject[T any](src *randsrc.Source, items []T, ratio float64, clone func(T) T) ([]T, int, error) {
	if err := Validate(len(items), ratio); err != nil {
		return nil, 0, err
	}

	d := Count(len(items), ratio)
	picked := randsrc.Choices(src, items, d)

	out := make([]T, 0, len(items)+d)
	out = append(out, items...)
	for _, item := range picked {
		out = append(out, clone(item))
	}
	randsrc.Shuffle(src, out)
	return out, d, nil
}

// InjectTable applies Inject to a table's rows in place. Appended rows are
// value copies flagged as duplicates.
func InjectTable(src *randsrc.Source, table *types.Table, ratio float64) (int, error) {
	rows, d, err := Inject(src, table.Rows, ratio, func(r types.Row) types.Row {
		dup := r.Clone()
		dup.Duplicate = true
		return dup
	})
	if err != nil {
		return 0, fmt.Errorf("table %s: %w", table.Name, err)
	}
	table.Rows = rows
	return d, nil
}
