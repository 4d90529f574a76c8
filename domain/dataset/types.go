package dataset

import (
	"fmt"

	"csvexplorer/domain/core"
)

// Kind is the semantic type inferred for a column once, at load time
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

func (k Kind) IsNumeric() bool { return k == KindNumeric }

// Cell is one value of a column. Raw keeps the text exactly as read so export
// reproduces the upload; Num is only meaningful in numeric columns.
type Cell struct {
	Raw  string  `json:"raw"`
	Null bool    `json:"null"`
	Num  float64 `json:"-"`
}

// NullCell returns a missing value that remembers its source text
func NullCell(raw string) Cell {
	return Cell{Raw: raw, Null: true}
}

// TextCell returns a non-null categorical value
func TextCell(raw string) Cell {
	return Cell{Raw: raw}
}

// NumberCell returns a non-null numeric value
func NumberCell(raw string, n float64) Cell {
	return Cell{Raw: raw, Num: n}
}

// Column is a named, typed sequence of cells. The cell slice is never exposed
// for writing, which keeps a loaded Table immutable.
type Column struct {
	name  string
	kind  Kind
	cells []Cell
}

// NewColumn copies cells into a new column
func NewColumn(name string, kind Kind, cells []Cell) Column {
	owned := make([]Cell, len(cells))
	copy(owned, cells)
	return Column{name: name, kind: kind, cells: owned}
}

func (c Column) Name() string { return c.name }
func (c Column) Kind() Kind   { return c.kind }
func (c Column) Len() int     { return len(c.cells) }

// Cell returns the i-th cell
func (c Column) Cell(i int) Cell { return c.cells[i] }

// Cells returns a copy of all cells
func (c Column) Cells() []Cell {
	out := make([]Cell, len(c.cells))
	copy(out, c.cells)
	return out
}

// NonNullCount counts cells that are not missing
func (c Column) NonNullCount() int {
	n := 0
	for _, cell := range c.cells {
		if !cell.Null {
			n++
		}
	}
	return n
}

// Numbers returns the non-null numeric values in row order.
// Categorical columns yield nil.
func (c Column) Numbers() []float64 {
	if !c.kind.IsNumeric() {
		return nil
	}
	out := make([]float64, 0, len(c.cells))
	for _, cell := range c.cells {
		if !cell.Null {
			out = append(out, cell.Num)
		}
	}
	return out
}

// Values returns the raw text of non-null cells in row order
func (c Column) Values() []string {
	out := make([]string, 0, len(c.cells))
	for _, cell := range c.cells {
		if !cell.Null {
			out = append(out, cell.Raw)
		}
	}
	return out
}

// Table is the in-memory dataset: ordered columns of equal length
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewTable validates that all columns share a row count and have unique names
func NewTable(columns []Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(t.columns, columns)

	for i, col := range columns {
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", core.ErrRaggedTable, col.Name(), col.Len(), t.rows)
		}
		if _, dup := t.index[col.Name()]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name())
		}
		t.index[col.Name()] = i
	}
	return t, nil
}

func (t *Table) NumRows() int    { return t.rows }
func (t *Table) NumColumns() int { return len(t.columns) }

// Shape renders the dimensions the way the upload banner shows them
func (t *Table) Shape() string {
	return fmt.Sprintf("%d rows × %d columns", t.rows, len(t.columns))
}

// Columns returns the columns in table order
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the header in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name()
	}
	return names
}

// HasColumn reports whether name is part of the table
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks up a column by name
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, core.NewColumnNotFoundError(name)
	}
	return t.columns[i], nil
}

// Row returns the cells of row i in column order
func (t *Table) Row(i int) []Cell {
	row := make([]Cell, len(t.columns))
	for j, col := range t.columns {
		row[j] = col.cells[i]
	}
	return row
}

// Head returns up to n leading rows
func (t *Table) Head(n int) [][]Cell {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	rows := make([][]Cell, n)
	for i := 0; i < n; i++ {
		rows[i] = t.Row(i)
	}
	return rows
}
