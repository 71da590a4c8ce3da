package framez

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Observability constants for guards.
const (
	// Metrics.
	GuardValidationsTotal = metricz.Key("framez.validations.total")
	GuardPassedTotal      = metricz.Key("framez.passed.total")
	GuardFailedTotal      = metricz.Key("framez.failed.total")
	GuardViolationsLast   = metricz.Key("framez.violations.last")
	GuardDurationMs       = metricz.Key("framez.duration.ms")

	// Spans.
	GuardValidateSpan = tracez.Key("framez.validate")

	// Tags.
	GuardTagName       = tracez.Tag("framez.guard")
	GuardTagStrict     = tracez.Tag("framez.strict")
	GuardTagColumns    = tracez.Tag("framez.columns")
	GuardTagSuccess    = tracez.Tag("framez.success")
	GuardTagViolations = tracez.Tag("framez.violations")
	GuardTagError      = tracez.Tag("framez.error")

	// Hook event keys.
	GuardEventPassed = hookz.Key("framez.passed")
	GuardEventFailed = hookz.Key("framez.failed")
)

// ValidationEvent represents the outcome of one validation pass.
// This is emitted via hookz after every Process call, allowing external
// systems to track conformance rates, alert on recurring violations, or
// audit which call boundaries see malformed frames.
type ValidationEvent struct {
	Guard      Name          // Guard name
	Strict     bool          // Effective strict mode for this pass
	Columns    int           // Number of columns the frame reported
	Violations []Violation   // Violations found (nil on success)
	Err        error         // The error returned, if any
	Duration   time.Duration // How long validation took
	Timestamp  time.Time     // When the event occurred
}

// Guard validates frames of type T against a schema at a call boundary.
// It is the middleware form of a validation decorator: construct it once
// with the schema and mode, then pass frames through Process, or wrap whole
// functions with In, Out, or InOut.
//
// The effective strict mode resolves in precedence order: an explicit
// Strict call on the guard, then the project default from .framez.yaml,
// then false. The same precedence applies to AllowEmpty (default true).
// Resolution against the project file happens when the guard is
// constructed, so a malformed config file fails at the first call rather
// than being silently ignored.
//
// Guards are safe for concurrent use. The compiled schema is immutable and
// each Process call collects its own violations; the fluent setters exist
// for construction-time configuration and take the guard's lock.
//
// Example:
//
//	var orders = framez.MustSchema(
//	    framez.Col("order_id", "int64"),
//	    framez.Col("price", "float64"),
//	)
//
//	guard := framez.NewGuard[*framez.MemFrame]("orders-in", orders).
//	    Strict(true).
//	    MinRows(1)
//
//	checked, err := guard.Process(ctx, frame)
//
// # Observability
//
// Guard provides observability through metrics, tracing, and events:
//
// Metrics:
//   - framez.validations.total: Counter of validation passes
//   - framez.passed.total: Counter of conforming frames
//   - framez.failed.total: Counter of failed validations
//   - framez.violations.last: Gauge of violations in the last failure
//   - framez.duration.ms: Gauge of last validation duration
//
// Traces:
//   - framez.validate: Span for each validation pass
//
// Events (via hooks):
//   - framez.passed: Fired when a frame conforms
//   - framez.failed: Fired when validation or usage checks fail
//
// Example with hooks:
//
//	guard.OnFailed(func(ctx context.Context, event framez.ValidationEvent) error {
//	    log.Warn("frame rejected at %s: %d violations", event.Guard, len(event.Violations))
//	    return nil
//	})
type Guard[T Frame] struct {
	schema *Schema
	name   Name
	strict *bool
	rows   rowBounds
	cfg    *Config
	cfgErr error
	clock  clockz.Clock
	mu     sync.RWMutex

	// Observability
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[ValidationEvent]
}

// NewGuard creates a guard validating frames of type T against schema.
// The project config file is resolved here, once; a malformed file is
// reported by the first Process call unless WithConfig overrides it.
func NewGuard[T Frame](name Name, schema *Schema) *Guard[T] {
	if schema == nil {
		schema = &Schema{}
	}
	cfg, cfgErr := DefaultConfig()
	if cfg == nil {
		cfg = &Config{}
	}

	// Initialize observability components
	registry := metricz.New()
	registry.Counter(GuardValidationsTotal)
	registry.Counter(GuardPassedTotal)
	registry.Counter(GuardFailedTotal)
	registry.Gauge(GuardViolationsLast)
	registry.Gauge(GuardDurationMs)

	return &Guard[T]{
		name:    name,
		schema:  schema,
		cfg:     cfg,
		cfgErr:  cfgErr,
		metrics: registry,
		tracer:  tracez.New(),
		hooks:   hookz.New[ValidationEvent](),
	}
}

// Process validates the frame and passes it through unchanged on success.
// On failure it returns the zero value of T and either a *SchemaError
// enumerating every violation or a *UsageError for API misuse. The frame
// is never mutated.
func (g *Guard[T]) Process(ctx context.Context, frame T) (T, error) {
	g.mu.RLock()
	schema := g.schema
	strict := resolveStrict(g.strict, g.cfg.Strict)
	rows := g.rows
	allowEmptyDefault := g.cfg.AllowEmpty
	cfgErr := g.cfgErr
	g.mu.RUnlock()

	clock := g.getClock()
	start := clock.Now()

	ctx, span := g.tracer.StartSpan(ctx, GuardValidateSpan)
	defer span.Finish()
	span.SetTag(GuardTagName, string(g.name))
	span.SetTag(GuardTagStrict, strconv.FormatBool(strict))

	g.metrics.Counter(GuardValidationsTotal).Inc()

	// Records metrics, span tags, and the failed event for any
	// unsuccessful outcome, then hands err back unchanged.
	fail := func(columns int, violations []Violation, err error) error {
		elapsed := clock.Now().Sub(start)
		g.metrics.Counter(GuardFailedTotal).Inc()
		g.metrics.Gauge(GuardViolationsLast).Set(float64(len(violations)))
		span.SetTag(GuardTagSuccess, "false")
		span.SetTag(GuardTagViolations, strconv.Itoa(len(violations)))
		span.SetTag(GuardTagError, err.Error())

		_ = g.hooks.Emit(ctx, GuardEventFailed, ValidationEvent{ //nolint:errcheck
			Guard:      g.name,
			Strict:     strict,
			Columns:    columns,
			Violations: violations,
			Err:        err,
			Duration:   elapsed,
			Timestamp:  clock.Now(),
		})
		return err
	}

	var zero T
	if cfgErr != nil {
		return zero, fail(0, nil, cfgErr)
	}
	if isNilFrame(frame) {
		return zero, fail(0, nil, &UsageError{Guard: g.name, Msg: "nil frame"})
	}

	cols := frame.Columns()
	span.SetTag(GuardTagColumns, strconv.Itoa(len(cols)))

	rowViolations, usageErr := checkRows(frame, rows, allowEmptyDefault)
	if usageErr != nil {
		var ue *UsageError
		if errors.As(usageErr, &ue) {
			ue.Guard = g.name
		}
		return zero, fail(len(cols), nil, usageErr)
	}

	violations := append(rowViolations, schema.collect(cols, strict)...)
	elapsed := clock.Now().Sub(start)
	g.metrics.Gauge(GuardDurationMs).Set(float64(elapsed.Milliseconds()))

	if len(violations) == 0 {
		g.metrics.Counter(GuardPassedTotal).Inc()
		span.SetTag(GuardTagSuccess, "true")

		_ = g.hooks.Emit(ctx, GuardEventPassed, ValidationEvent{ //nolint:errcheck
			Guard:     g.name,
			Strict:    strict,
			Columns:   len(cols),
			Duration:  elapsed,
			Timestamp: clock.Now(),
		})
		return frame, nil
	}

	err := &SchemaError{
		Guard:        g.name,
		Violations:   violations,
		FrameColumns: cols,
		Timestamp:    clock.Now(),
		Duration:     elapsed,
	}
	return zero, fail(len(cols), violations, err)
}

// Strict sets the guard's strict mode explicitly, overriding the project
// default. In strict mode, columns present in the frame but declared by no
// schema entry are violations.
func (g *Guard[T]) Strict(strict bool) *Guard[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.strict = &strict
	return g
}

// MinRows requires the frame to have at least n rows. The frame must
// implement RowCounter.
func (g *Guard[T]) MinRows(n int) *Guard[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rows.min = &n
	return g
}

// MaxRows requires the frame to have at most n rows. The frame must
// implement RowCounter.
func (g *Guard[T]) MaxRows(n int) *Guard[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rows.max = &n
	return g
}

// ExactRows requires the frame to have exactly n rows. The frame must
// implement RowCounter.
func (g *Guard[T]) ExactRows(n int) *Guard[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rows.exact = &n
	return g
}

// AllowEmpty sets whether a frame with zero rows is acceptable, overriding
// the project default (true). When false, the frame must implement
// RowCounter.
func (g *Guard[T]) AllowEmpty(allow bool) *Guard[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rows.allowEmpty = &allow
	return g
}

// WithConfig replaces the project config resolved at construction time.
// Useful for tests and for processes that load settings themselves.
func (g *Guard[T]) WithConfig(cfg *Config) *Guard[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	if cfg == nil {
		cfg = &Config{}
	}
	g.cfg = cfg
	g.cfgErr = nil
	return g
}

// WithClock sets a custom clock for testing.
func (g *Guard[T]) WithClock(clock clockz.Clock) *Guard[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clock = clock
	return g
}

// getClock returns the clock to use.
func (g *Guard[T]) getClock() clockz.Clock {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.clock == nil {
		return clockz.RealClock
	}
	return g.clock
}

// Name returns the name of this guard.
func (g *Guard[T]) Name() Name {
	return g.name
}

// Schema returns the schema this guard validates against.
func (g *Guard[T]) Schema() *Schema {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.schema
}

// Metrics returns the metrics registry for this guard.
func (g *Guard[T]) Metrics() *metricz.Registry {
	return g.metrics
}

// Tracer returns the tracer for this guard.
func (g *Guard[T]) Tracer() *tracez.Tracer {
	return g.tracer
}

// Close gracefully shuts down observability components.
func (g *Guard[T]) Close() error {
	if g.tracer != nil {
		g.tracer.Close()
	}
	g.hooks.Close()
	return nil
}

// OnPassed registers a handler called after each conforming validation.
func (g *Guard[T]) OnPassed(handler func(context.Context, ValidationEvent) error) error {
	_, err := g.hooks.Hook(GuardEventPassed, handler)
	return err
}

// OnFailed registers a handler called after each failed validation,
// including usage errors.
func (g *Guard[T]) OnFailed(handler func(context.Context, ValidationEvent) error) error {
	_, err := g.hooks.Hook(GuardEventFailed, handler)
	return err
}

// isNilFrame reports whether the frame is nil, including a typed nil
// pointer hiding behind the Frame interface.
func isNilFrame(f Frame) bool {
	if f == nil {
		return true
	}
	v := reflect.ValueOf(f)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
