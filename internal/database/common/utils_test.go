package common

import (
	"errors"
	"testing"

	"github.com/Rana718/winegen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	for _, ok := range []string{"customers", "PRODUCTS_RAW", "_tmp", "t1"} {
		assert.NoError(t, ValidateIdentifier(ok), ok)
	}
	for _, bad := range []string{"", "1table", "orders; DROP TABLE x", "na-me", "a b"} {
		err := ValidateIdentifier(bad)
		assert.True(t, errors.Is(err, types.ErrInvalidConfig), bad)
	}
}

func TestValidateTable(t *testing.T) {
	assert.Error(t, ValidateTable(types.NewTable("empty")))
	assert.Error(t, ValidateTable(types.NewTable("ok", types.Column{Name: "bad col"})))
	assert.NoError(t, ValidateTable(types.NewTable("ok", types.Column{Name: "id"})))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, types.Integer, KindOf("INTEGER"))
	assert.Equal(t, types.Integer, KindOf("bigint(20)"))
	assert.Equal(t, types.Integer, KindOf("UNSIGNED BIGINT"))
	assert.Equal(t, types.Real, KindOf("double precision"))
	assert.Equal(t, types.Real, KindOf("REAL"))
	assert.Equal(t, types.Text, KindOf("VARCHAR(255)"))
	assert.Equal(t, types.Text, KindOf(""))
}

func TestCoerce(t *testing.T) {
	v, err := Coerce(types.Integer, "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = Coerce(types.Real, "0.375")
	require.NoError(t, err)
	assert.Equal(t, 0.375, v)

	v, err = Coerce(types.Text, "WINE-00001")
	require.NoError(t, err)
	assert.Equal(t, "WINE-00001", v)

	v, err = Coerce(types.Integer, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = Coerce(types.Integer, nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = Coerce(types.Integer, "seven")
	assert.Error(t, err)
}

func TestRowValues(t *testing.T) {
	table := types.NewTable("t", types.Column{Name: "id", Kind: types.Integer}, types.Column{Name: "name", Kind: types.Text})
	table.Append("1", "a")
	table.Append(2, nil)

	rows, err := RowValues(table)
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{int64(1), "a"}, {2, nil}}, rows)

	table.Append(3)
	_, err = RowValues(table)
	assert.Error(t, err)
}

func TestBatches(t *testing.T) {
	rows := make([][]interface{}, 1201)
	batches := Batches(rows, 500)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 500)
	assert.Len(t, batches[2], 201)
	assert.Empty(t, Batches(nil, 500))
}
