package model

// Row is one company's wide feature row. Values holds only the cells that are
// present; a missing (company, column) combination simply has no entry, which
// is what lets the priority resolver and identity backfill distinguish
// "reported zero" from "not reported".
type Row struct {
	Company string
	SIC     int
	Values  map[string]float64
}

// NewRow creates an empty row for the given company.
func NewRow(company string) *Row {
	return &Row{Company: company, Values: make(map[string]float64)}
}

// Get returns the cell value and whether it is present.
func (r *Row) Get(col string) (float64, bool) {
	v, ok := r.Values[col]
	return v, ok
}

// Val returns the cell value, or 0 when the cell is missing.
func (r *Row) Val(col string) float64 {
	return r.Values[col]
}

// Has reports whether the cell is present.
func (r *Row) Has(col string) bool {
	_, ok := r.Values[col]
	return ok
}

// Set assigns the cell value.
func (r *Row) Set(col string, v float64) {
	r.Values[col] = v
}

// Table is a wide per-company feature table: one row per company, one column
// per raw tag plus derived canonical and ratio columns. Rows are ordered by
// company name. Row computations never depend on other rows.
type Table struct {
	Columns []string // column universe in insertion order
	Rows    []*Row

	colSet map[string]bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{colSet: make(map[string]bool)}
}

// AddColumn registers a column in the table universe. Idempotent.
func (t *Table) AddColumn(col string) {
	if t.colSet == nil {
		t.colSet = make(map[string]bool)
	}
	if t.colSet[col] {
		return
	}
	t.colSet[col] = true
	t.Columns = append(t.Columns, col)
}

// HasColumn reports whether the column is part of the table universe.
func (t *Table) HasColumn(col string) bool {
	return t.colSet[col]
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Lookup returns the row for the given company name, or nil.
func (t *Table) Lookup(company string) *Row {
	for _, r := range t.Rows {
		if r.Company == company {
			return r
		}
	}
	return nil
}
