package framez

import (
	"database/sql"
	"fmt"
)

// SQLFrame adapts database/sql column metadata into a Frame, making query
// results the second concrete backend. Dtypes are the driver's
// DatabaseTypeName strings ("INTEGER", "VARCHAR", "TEXT", ...), so schemas
// written against a SQLFrame use the driver's vocabulary, typically with
// dtype patterns, since that vocabulary varies by driver:
//
//	var result = framez.MustSchema(
//	    framez.Col("id", "INT.*"),
//	    framez.AnyCol("payload"),
//	)
//
//	rows, err := db.QueryContext(ctx, query)
//	...
//	frame, err := framez.NewSQLFrame(rows)
//	...
//	if err := result.Validate(frame, false); err != nil {
//	    return err
//	}
//
// SQLFrame is driver-agnostic: it depends only on the database/sql
// interfaces, so any registered driver works. It does not implement
// RowCounter, because sql result sets do not know their size without
// being consumed, so row-count constraints are a usage error against it.
type SQLFrame struct {
	cols []Column
}

// NewSQLFrame reads column metadata from rows without consuming any data
// rows. The rows remain usable for scanning afterwards.
func NewSQLFrame(rows *sql.Rows) (*SQLFrame, error) {
	if rows == nil {
		return nil, fmt.Errorf("framez: nil rows")
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("framez: reading column types: %w", err)
	}
	return SQLFrameFromColumnTypes(types), nil
}

// SQLFrameFromColumnTypes builds a frame from already-extracted column
// metadata, for callers that hold []*sql.ColumnType rather than live rows.
func SQLFrameFromColumnTypes(types []*sql.ColumnType) *SQLFrame {
	cols := make([]Column, 0, len(types))
	for _, t := range types {
		cols = append(cols, Column{Name: t.Name(), Dtype: t.DatabaseTypeName()})
	}
	return &SQLFrame{cols: cols}
}

// Columns implements Frame.
func (f *SQLFrame) Columns() []Column {
	out := make([]Column, len(f.cols))
	copy(out, f.cols)
	return out
}
