// Package framez provides runtime schema validation for tabular data at
// function call boundaries in Go.
//
// # Overview
//
// framez checks that a DataFrame-like value has the columns (and the column
// dtypes) that a function expects, and reports every mismatch in a single
// aggregated error. It addresses a common failure mode in data plumbing code:
// a frame with a missing or mistyped column travels deep into a pipeline
// before anything notices, and the eventual failure points nowhere near the
// cause. Guarding the call boundary surfaces the problem immediately, with a
// diagnostic that names every offending column at once.
//
// # Installation
//
//	go get github.com/zoobzio/framez
//
// Requires Go 1.23+ for generic type constraints.
//
// # Core Concepts
//
// The library is built around two small contracts:
//
//	type Frame interface {
//	    Columns() []Column
//	}
//
// Any tabular value that can enumerate its columns in order, each with a
// name and a dtype string, is a valid candidate. framez never inspects the
// data itself, only the reported shape, so any backend satisfying Frame works
// interchangeably. MemFrame and SQLFrame are the two backends shipped with
// the package; adapting another library is a matter of implementing Columns.
//
// A Schema declares the expected shape:
//
//	orders := framez.MustSchema(
//	    framez.Col("order_id", "int64"),
//	    framez.Col("price", "float64"),
//	    framez.AnyCol("^tag_.*$"),
//	)
//
// Column names are exact strings, or regular expressions when fully anchored
// (starting with '^' and ending with '$'). Dtype constraints are exact
// strings, or patterns when they contain regex metacharacters ("int.*"
// accepts int32 and int64). An empty dtype accepts anything.
//
// # Guards
//
// A Guard binds a Schema to a name and a validation mode, and checks frames
// passed through it:
//
//	guard := framez.NewGuard[*framez.MemFrame]("orders-in", orders).Strict(true)
//
//	checked, err := guard.Process(ctx, frame)
//
// Process returns the frame unchanged on success and a *SchemaError naming
// every violation on failure. Guards are safe for concurrent use: the
// compiled schema is immutable and each call collects its own violations.
//
// # Wrapping Functions
//
// The In, Out, and InOut wrappers apply guards at a function boundary,
// validating arguments before the body runs and return values after it
// succeeds:
//
//	summarize := framez.In(guard, func(ctx context.Context, f *framez.MemFrame) (Report, error) {
//	    // f is guaranteed to conform to the orders schema here.
//	    return buildReport(f), nil
//	})
//
// A failing input check means the wrapped body never executes; a failing
// output check means the caller never sees the offending frame.
//
// # Strict Mode
//
// By default extra columns are tolerated. In strict mode any column not
// declared in the schema is itself a violation. The effective mode resolves
// in precedence order: an explicit Strict call on the guard, then the
// project-wide default from .framez.yaml, then false.
//
// # Error Handling
//
// Validation failures carry the complete picture:
//
//	if err != nil {
//	    var schemaErr *framez.SchemaError
//	    if errors.As(err, &schemaErr) {
//	        for _, v := range schemaErr.Violations {
//	            log.Printf("%s: %s", v.Kind, v)
//	        }
//	    }
//	}
//
// All violations across all columns are collected before the error is
// constructed; validation never stops at the first problem. Misuse of the
// API (a nil frame, a row constraint against a backend that cannot count
// rows) surfaces as *UsageError, distinct from a shape mismatch.
package framez

// Name is a type alias for guard and schema names.
// Using this type encourages storing names as constants rather than
// using inline strings throughout your code.
//
// Example:
//
//	const (
//	    OrdersInName  Name = "orders-in"
//	    OrdersOutName Name = "orders-out"
//	)
type Name = string

// Column is one observed column of a candidate frame: a name plus the
// backend's string representation of its dtype. Backends report dtypes in
// their own vocabulary ("int64", "VARCHAR", "utf8"); schemas are written
// against whatever vocabulary the backend uses.
type Column struct {
	Name  string
	Dtype string
}

// Frame is the capability contract a candidate tabular value must satisfy
// to be validated. Columns returns the frame's columns in their original
// order. Implementations must not let Columns mutate the frame; validation
// is a pure read.
//
// Frame is deliberately minimal so that any tabular library can be adapted
// with a few lines of glue. The package ships two implementations:
// MemFrame (in-memory) and SQLFrame (database/sql column metadata).
type Frame interface {
	Columns() []Column
}

// RowCounter is an optional capability for frames that know how many rows
// they hold. Guards only require it when a row-count constraint (MinRows,
// MaxRows, ExactRows, AllowEmpty) is configured; plain column validation
// never calls it.
type RowCounter interface {
	RowCount() int
}
