package framez

import "fmt"

// Validate checks a frame against the schema and returns nil when it
// conforms, a *SchemaError enumerating every violation when it does not,
// or a *UsageError for a nil frame.
//
// Validation is name-first: each spec entry is resolved to the actual
// columns matching its name before any dtype is inspected, because a dtype
// check against a column that is not there would be meaningless, so
// "missing" is the violation that gets reported. When a regex name spec matches several
// columns and carries a dtype constraint, every non-conforming matched
// column is reported individually.
//
// In strict mode, any actual column matched by no spec entry at all is an
// additional violation, reported in the order the columns occur in the
// frame. Violations are always fully collected before the error is
// constructed; validation never stops at the first problem.
//
// Validate is a pure check: it reads Columns once and mutates neither the
// frame nor the schema, so one Schema can serve concurrent validations
// without synchronization.
func (s *Schema) Validate(f Frame, strict bool) error {
	if f == nil {
		return &UsageError{Msg: "nil frame"}
	}
	cols := f.Columns()
	violations := s.collect(cols, strict)
	if len(violations) == 0 {
		return nil
	}
	return &SchemaError{Violations: violations, FrameColumns: cols}
}

// collect gathers every violation of the schema against the observed
// columns: missing columns in schema order, then dtype mismatches in schema
// order, then (in strict mode) unexpected columns in frame order.
func (s *Schema) collect(cols []Column, strict bool) []Violation {
	var out []Violation

	// Resolve each name spec to the actual columns it matches. A column
	// counts as "expected" if any spec matches it, whether or not that
	// spec's dtype constraint is satisfied.
	resolved := make([][]int, len(s.specs))
	claimed := make([]bool, len(cols))
	for i, spec := range s.specs {
		for j, col := range cols {
			if spec.name.Matches(col.Name) {
				resolved[i] = append(resolved[i], j)
				claimed[j] = true
			}
		}
		if len(resolved[i]) == 0 {
			out = append(out, missingViolation(spec.name.String()))
		}
	}

	for i, spec := range s.specs {
		if spec.dtype == nil {
			continue
		}
		for _, j := range resolved[i] {
			if !spec.dtype.Matches(cols[j].Dtype) {
				out = append(out, dtypeViolation(cols[j], spec.dtype.String()))
			}
		}
	}

	// Strict mode only applies once a shape has been declared. An empty
	// schema carries no expectations, so it cannot reject columns either.
	if strict && len(s.specs) > 0 {
		for j, col := range cols {
			if !claimed[j] {
				out = append(out, unexpectedViolation(col))
			}
		}
	}

	return out
}

// rowBounds holds a guard's optional row-count constraints. Pointers
// distinguish "unset" from zero; the zero value imposes nothing.
type rowBounds struct {
	min        *int
	max        *int
	exact      *int
	allowEmpty *bool
}

func (b rowBounds) active(configDefault *bool) bool {
	return b.min != nil || b.max != nil || b.exact != nil || !resolveAllowEmpty(b.allowEmpty, configDefault)
}

// checkRows evaluates the row-count constraints against the frame. The
// frame must implement RowCounter when any constraint is active; a frame
// that cannot count rows is a usage error, not a validation failure.
func checkRows(f Frame, b rowBounds, configDefault *bool) ([]Violation, error) {
	if !b.active(configDefault) {
		return nil, nil
	}
	counter, ok := f.(RowCounter)
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("row constraints require RowCount, which %T does not implement", f)}
	}
	rows := counter.RowCount()

	var out []Violation
	if !resolveAllowEmpty(b.allowEmpty, configDefault) && rows == 0 {
		out = append(out, rowsViolation("frame is empty (0 rows)"))
	}
	if b.exact != nil && rows != *b.exact {
		out = append(out, rowsViolation(fmt.Sprintf("frame has %d rows, expected exactly %d", rows, *b.exact)))
	}
	if b.min != nil && rows < *b.min {
		out = append(out, rowsViolation(fmt.Sprintf("frame has %d rows, expected at least %d", rows, *b.min)))
	}
	if b.max != nil && rows > *b.max {
		out = append(out, rowsViolation(fmt.Sprintf("frame has %d rows, expected at most %d", rows, *b.max)))
	}
	return out, nil
}
