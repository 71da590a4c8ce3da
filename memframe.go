package framez

// MemFrame is the in-memory Frame backend: an ordered column list plus a
// row count. It is the natural fixture type for tests and the simplest way
// to adapt tabular data from code that already knows its own shape.
//
// The zero value is an empty frame with no columns and no rows.
//
//	f := framez.NewMemFrame(
//	    framez.Column{Name: "order_id", Dtype: "int64"},
//	    framez.Column{Name: "price", Dtype: "float64"},
//	).WithRows(120)
type MemFrame struct {
	cols []Column
	rows int
}

// NewMemFrame creates a frame with the given columns, in order, and zero
// rows. The columns are copied; later mutation of the input slice does not
// affect the frame.
func NewMemFrame(cols ...Column) *MemFrame {
	copied := make([]Column, len(cols))
	copy(copied, cols)
	return &MemFrame{cols: copied}
}

// WithRows returns the frame with its row count set. The count is shape
// metadata only; MemFrame carries no cell data.
func (f *MemFrame) WithRows(n int) *MemFrame {
	f.rows = n
	return f
}

// Columns implements Frame. The returned slice is a copy; callers may not
// mutate the frame through it.
func (f *MemFrame) Columns() []Column {
	out := make([]Column, len(f.cols))
	copy(out, f.cols)
	return out
}

// RowCount implements RowCounter.
func (f *MemFrame) RowCount() int {
	return f.rows
}
