package framez

import "context"

// In wraps fn so that its frame argument is validated before the body runs.
// When the guard rejects the frame, fn never executes and the wrapper
// returns the guard's error with the zero Out value.
//
// This is the middleware form of an input-validating decorator: the wrapped
// function's own behavior and side effects are untouched on success, and
// never triggered on failure.
//
// Example:
//
//	summarize := framez.In(ordersGuard, func(ctx context.Context, f *framez.MemFrame) (Report, error) {
//	    // f conforms to the orders schema here.
//	    return buildReport(f), nil
//	})
func In[I Frame, O any](guard *Guard[I], fn func(context.Context, I) (O, error)) func(context.Context, I) (O, error) {
	return func(ctx context.Context, frame I) (O, error) {
		checked, err := guard.Process(ctx, frame)
		if err != nil {
			var zero O
			return zero, err
		}
		return fn(ctx, checked)
	}
}

// Out wraps fn so that its returned frame is validated after the body runs.
// Validation happens only when fn succeeds; an error from fn propagates
// untouched. When the guard rejects the result, the caller receives the
// guard's error and never sees the offending frame.
func Out[I any, O Frame](guard *Guard[O], fn func(context.Context, I) (O, error)) func(context.Context, I) (O, error) {
	return func(ctx context.Context, in I) (O, error) {
		result, err := fn(ctx, in)
		if err != nil {
			return result, err
		}
		return guard.Process(ctx, result)
	}
}

// InOut wraps fn with validation on both sides of the call: the frame
// argument before the body runs, the returned frame after it succeeds.
// Equivalent to Out(outGuard, In(inGuard, fn)).
func InOut[I Frame, O Frame](inGuard *Guard[I], outGuard *Guard[O], fn func(context.Context, I) (O, error)) func(context.Context, I) (O, error) {
	return Out(outGuard, In(inGuard, fn))
}
