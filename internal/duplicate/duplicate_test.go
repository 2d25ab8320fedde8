package duplicate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Rana718/winegen/internal/randsrc"
	"github.com/Rana718/winegen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(v int) int { return v }

func TestCount(t *testing.T) {
	assert.Equal(t, 7, Count(150, 0.05))
	assert.Equal(t, 3, Count(60, 0.05))
	assert.Equal(t, 1, Count(10, 0.05))
	assert.Equal(t, 1, Count(1, 0.01))
	assert.Equal(t, 500, Count(500, 1))
}

func TestInjectLengthInvariant(t *testing.T) {
	for _, n := range []int{1, 2, 19, 60, 150, 500} {
		for _, ratio := range []float64{0.001, 0.05, 0.3, 1} {
			t.Run(fmt.Sprintf("n=%d/r=%v", n, ratio), func(t *testing.T) {
				items := make([]int, n)
				for i := range items {
					items[i] = i + 1
				}
				out, d, err := Inject(randsrc.New(42), items, ratio, identity)
				require.NoError(t, err)
				assert.Equal(t, Count(n, ratio), d)
				assert.Len(t, out, n+d)

				// every original appears at least once, every extra is an original
				counts := map[int]int{}
				for _, v := range out {
					counts[v]++
				}
				for _, v := range items {
					assert.GreaterOrEqual(t, counts[v], 1)
				}
				assert.Len(t, counts, n)
			})
		}
	}
}

func TestInjectDoesNotMutateInput(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	_, _, err := Inject(randsrc.New(1), items, 0.5, identity)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
}

func TestInjectDeterministic(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	a, _, err := Inject(randsrc.New(42), items, 0.3, identity)
	require.NoError(t, err)
	b, _, err := Inject(randsrc.New(42), items, 0.3, identity)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestInjectRejectsBadInput(t *testing.T) {
	_, _, err := Inject(randsrc.New(1), []int{}, 0.05, identity)
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))

	for _, ratio := range []float64{0, -0.1, 1.5} {
		_, _, err := Inject(randsrc.New(1), []int{1, 2}, ratio, identity)
		assert.True(t, errors.Is(err, types.ErrInvalidConfig), "ratio %v", ratio)
	}
}

func TestInjectTableMarksProvenance(t *testing.T) {
	table := types.NewTable("customers", types.Column{Name: "customer_id", Kind: types.Integer})
	for i := 1; i <= 150; i++ {
		table.Append(i)
	}

	d, err := InjectTable(randsrc.New(42), table, 0.05)
	require.NoError(t, err)
	assert.Equal(t, 7, d)
	assert.Equal(t, 157, table.Len())
	assert.Equal(t, 7, table.DuplicateCount())

	originals := map[interface{}]bool{}
	for _, row := range table.Rows {
		if !row.Duplicate {
			originals[row.Values[0]] = true
		}
	}
	assert.Len(t, originals, 150)
	for _, row := range table.Rows {
		if row.Duplicate {
			assert.True(t, originals[row.Values[0]])
		}
	}
}
