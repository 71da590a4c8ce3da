package framez

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Describe renders a frame's shape as a one-line string for logs and
// diagnostics: column names with their dtypes, in frame order, plus the
// row count when the frame can report one.
//
//	Describe(f) // `3 columns [order_id (int64), price (float64), note (string)], 120 rows`
func Describe(f Frame) string {
	if isNilFrame(f) {
		return "<nil frame>"
	}
	cols := f.Columns()
	var b strings.Builder
	b.WriteString(pluralize(len(cols), "column"))
	b.WriteString(" ")
	b.WriteString(describeColumns(cols))
	if counter, ok := f.(RowCounter); ok {
		b.WriteString(", ")
		b.WriteString(pluralize(counter.RowCount(), "row"))
	}
	return b.String()
}

// LogFrame wraps fn so that the shape of its frame argument and returned
// frame are logged around the call. It is a pure observation aid: no
// validation happens and errors from fn propagate untouched. Logging is a
// separate opt-in wrapper precisely so it never gets entangled with error
// handling.
//
// A nil logger uses slog.Default().
//
// Example:
//
//	normalize = framez.LogFrame("normalize", nil, normalize)
//	// level=INFO msg="frame in" fn=normalize shape="2 columns [id (int64), v (float64)], 10 rows"
func LogFrame[I Frame, O Frame](name Name, logger *slog.Logger, fn func(context.Context, I) (O, error)) func(context.Context, I) (O, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, frame I) (O, error) {
		logger.InfoContext(ctx, "frame in", "fn", string(name), "shape", Describe(frame))
		result, err := fn(ctx, frame)
		if err != nil {
			logger.InfoContext(ctx, "frame out", "fn", string(name), "err", err)
			return result, err
		}
		logger.InfoContext(ctx, "frame out", "fn", string(name), "shape", Describe(result))
		return result, nil
	}
}

// describeColumns renders "[name (dtype), ...]" in frame order.
func describeColumns(cols []Column) string {
	var b strings.Builder
	b.WriteString("[")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name)
		if c.Dtype != "" {
			b.WriteString(" (")
			b.WriteString(c.Dtype)
			b.WriteString(")")
		}
	}
	b.WriteString("]")
	return b.String()
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
