package framez

import (
	"fmt"
	"strings"
	"time"
)

// ViolationKind discriminates the ways a frame can fail validation.
type ViolationKind string

// Violation kinds, in the order they appear in an aggregated error.
const (
	ViolationRows       ViolationKind = "rows"
	ViolationMissing    ViolationKind = "missing"
	ViolationDtype      ViolationKind = "dtype"
	ViolationUnexpected ViolationKind = "unexpected"
)

// Violation describes one specific way a frame failed to conform to a
// schema. Column holds the offending column name (or the unmatched name
// spec for missing columns); Dtype and Expected are populated for dtype
// mismatches only.
type Violation struct {
	Kind     ViolationKind
	Column   string
	Dtype    string
	Expected string
	detail   string
}

// String returns the one-line human-readable description of the violation,
// as it appears in the aggregated error message.
func (v Violation) String() string {
	return v.detail
}

func missingViolation(spec string) Violation {
	return Violation{
		Kind:   ViolationMissing,
		Column: spec,
		detail: fmt.Sprintf("missing column %q", spec),
	}
}

func dtypeViolation(col Column, expected string) Violation {
	return Violation{
		Kind:     ViolationDtype,
		Column:   col.Name,
		Dtype:    col.Dtype,
		Expected: expected,
		detail:   fmt.Sprintf("column %q has dtype %q, expected %q", col.Name, col.Dtype, expected),
	}
}

func unexpectedViolation(col Column) Violation {
	return Violation{
		Kind:   ViolationUnexpected,
		Column: col.Name,
		detail: fmt.Sprintf("unexpected column %q", col.Name),
	}
}

func rowsViolation(detail string) Violation {
	return Violation{Kind: ViolationRows, detail: detail}
}

// SchemaError reports that a frame does not conform to a schema. It
// aggregates every violation found in one validation pass (missing columns
// in schema order, then dtype mismatches in schema order, then unexpected
// columns in frame order) so the caller sees the complete picture in a
// single error rather than fixing columns one failure at a time.
//
// Guard, Timestamp, and Duration are populated when the error comes from a
// Guard; Schema.Validate leaves them zero.
type SchemaError struct {
	Guard        Name
	Violations   []Violation
	FrameColumns []Column
	Timestamp    time.Time
	Duration     time.Duration
}

// Error implements the error interface with a multi-line message listing
// every violation plus the frame's observed columns.
func (e *SchemaError) Error() string {
	var b strings.Builder
	if e.Guard != "" {
		fmt.Fprintf(&b, "guard %q: ", e.Guard)
	}
	fmt.Fprintf(&b, "frame does not conform to schema (%d violation", len(e.Violations))
	if len(e.Violations) != 1 {
		b.WriteString("s")
	}
	b.WriteString("):")
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.detail)
	}
	b.WriteString("\nframe columns: ")
	b.WriteString(describeColumns(e.FrameColumns))
	return b.String()
}

// ByKind returns the violations of the given kind, in message order.
func (e *SchemaError) ByKind(kind ViolationKind) []Violation {
	var out []Violation
	for _, v := range e.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// UsageError reports a misuse of the validation API rather than a shape
// mismatch: a nil frame where one was required, or a row-count constraint
// against a frame that cannot report its row count. It is deliberately a
// distinct type from SchemaError so callers can tell "your data is wrong"
// apart from "your code is wrong".
type UsageError struct {
	Guard Name
	Msg   string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e.Guard != "" {
		return fmt.Sprintf("guard %q: %s", e.Guard, e.Msg)
	}
	return e.Msg
}
