package types

// ColumnKind is the storage class of a column. Sinks map it to their own
// type system (SQL affinity, Arrow type).
type ColumnKind int

const (
	Text ColumnKind = iota
	Integer
	Real
)

func (k ColumnKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Real:
		return "real"
	default:
		return "text"
	}
}

type Column struct {
	Name     string
	Kind     ColumnKind
	Nullable bool
}

// Row holds values in the table's declared column order. A nil value is a
// missing field. Duplicate marks rows appended by the duplicate injector.
type Row struct {
	Values    []interface{}
	Duplicate bool
}

// Table is an ordered, uniformly-shaped sequence of records.
type Table struct {
	Name    string
	Columns []Column
	Rows    []Row
}

func NewTable(name string, columns ...Column) *Table {
	return &Table{Name: name, Columns: columns}
}

// Append adds a row. Values must follow the declared column order.
func (t *Table) Append(values ...interface{}) {
	t.Rows = append(t.Rows, Row{Values: values})
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, col := range t.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Value returns the named field of row i, or nil when the column is unknown.
func (t *Table) Value(i int, column string) interface{} {
	idx := t.Index(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i].Values[idx]
}

// Clone returns a value copy of the row.
func (r Row) Clone() Row {
	values := make([]interface{}, len(r.Values))
	copy(values, r.Values)
	return Row{Values: values, Duplicate: r.Duplicate}
}

// DuplicateCount reports how many rows carry the duplicate provenance flag.
func (t *Table) DuplicateCount() int {
	n := 0
	for _, row := range t.Rows {
		if row.Duplicate {
			n++
		}
	}
	return n
}

// Summary is what a command prints after a table has been written somewhere.
type Summary struct {
	Table      string `json:"table"`
	Rows       int    `json:"rows"`
	Duplicates int    `json:"duplicates"`
	Target     string `json:"target"`
}
