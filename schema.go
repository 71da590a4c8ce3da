package framez

import "fmt"

// ColumnDef declares one expected column of a schema: a name spec plus an
// optional dtype spec. Name specs are exact strings, or regular expressions
// when fully anchored ("^value_.*$"). Dtype specs are exact strings, or
// patterns when they contain regex metacharacters; an empty Dtype accepts
// any dtype.
//
// Use the Col and AnyCol helpers rather than constructing ColumnDef
// directly; they keep schema declarations compact and readable:
//
//	schema := framez.MustSchema(
//	    framez.Col("order_id", "int64"),
//	    framez.Col("amount", "float.*"),
//	    framez.AnyCol("^meta_.*$"),
//	)
type ColumnDef struct {
	Name  string
	Dtype string
}

// Col declares a column with a dtype constraint.
func Col(name, dtype string) ColumnDef {
	return ColumnDef{Name: name, Dtype: dtype}
}

// AnyCol declares a column with no dtype constraint. Any observed dtype is
// accepted; only the column's presence is checked.
func AnyCol(name string) ColumnDef {
	return ColumnDef{Name: name}
}

// columnSpec is one compiled schema entry.
type columnSpec struct {
	name  matcher
	dtype *matcher // nil means any dtype
}

// Schema is an ordered, immutable set of compiled column specs describing
// an expected tabular shape. Schemas are compiled once, typically at
// package or guard construction time, and are safe for concurrent use by
// any number of simultaneous validations, since nothing mutates them after
// NewSchema returns.
//
// An empty schema accepts any frame; it exists so a guard can be declared
// before its shape is pinned down, or to validate only row counts.
type Schema struct {
	specs []columnSpec
}

// NewSchema compiles column declarations into a Schema. Malformed name or
// dtype patterns are reported here, before any frame is validated, so a bad
// schema fails fast at construction rather than surfacing mid-pipeline.
func NewSchema(defs ...ColumnDef) (*Schema, error) {
	specs := make([]columnSpec, 0, len(defs))
	for i, def := range defs {
		name, err := newNameMatcher(def.Name)
		if err != nil {
			return nil, fmt.Errorf("framez: column %d: %w", i, err)
		}
		dtype, err := newDtypeMatcher(def.Dtype)
		if err != nil {
			return nil, fmt.Errorf("framez: column %d (%s): %w", i, def.Name, err)
		}
		specs = append(specs, columnSpec{name: name, dtype: dtype})
	}
	return &Schema{specs: specs}, nil
}

// MustSchema is like NewSchema but panics on a malformed declaration.
// It simplifies schema declaration at package level, mirroring
// regexp.MustCompile:
//
//	var orders = framez.MustSchema(framez.Col("order_id", "int64"))
func MustSchema(defs ...ColumnDef) *Schema {
	s, err := NewSchema(defs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of column specs in the schema.
func (s *Schema) Len() int {
	return len(s.specs)
}
