package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableLookup(t *testing.T) {
	tbl := NewTable("wines",
		Column{Name: "id", Kind: Integer},
		Column{Name: "reference", Kind: Text},
	)
	tbl.Append(1, "WN-2001-BOR-0001-AB1")
	tbl.Append(2, "WN-1999-RIO-0002-ZZ9")

	assert.Equal(t, []string{"id", "reference"}, tbl.ColumnNames())
	assert.Equal(t, 1, tbl.Index("reference"))
	assert.Equal(t, -1, tbl.Index("missing"))
	assert.Equal(t, "WN-1999-RIO-0002-ZZ9", tbl.Value(1, "reference"))
	assert.Nil(t, tbl.Value(5, "reference"))
	assert.Equal(t, 2, tbl.Len())
}

func TestRowCloneIsIndependent(t *testing.T) {
	row := Row{Values: []interface{}{1, "a"}}
	dup := row.Clone()
	dup.Values[1] = "b"
	dup.Duplicate = true

	assert.Equal(t, "a", row.Values[1])
	assert.False(t, row.Duplicate)
}

func TestDuplicateCount(t *testing.T) {
	tbl := NewTable("t", Column{Name: "id", Kind: Integer})
	tbl.Rows = []Row{{Values: []interface{}{1}}, {Values: []interface{}{1}, Duplicate: true}}
	assert.Equal(t, 1, tbl.DuplicateCount())
}
