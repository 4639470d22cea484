package activation

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/djcmanager/djcmanager/internal/callbacks"
)

// ErrorHandler is the external sink spec.md §1 calls
// "callWithAsyncErrorHandling": every callback invocation is routed through
// it, so a caller can swap in panic-to-error translation, metrics, or a
// test double without the Queue itself knowing about any of that. Grounded
// on the teacher's reflect-based handler invocation in
// internal/dag/node_runner.go, which wraps every step function the same
// way.
type ErrorHandler func(ctx context.Context, fn callbacks.Fn, data cty.Value, c callbacks.Context) (any, error)

// defaultErrorHandler calls fn directly, converting a recovered panic into
// an error rather than letting it unwind the drain goroutine.
func defaultErrorHandler(ctx context.Context, fn callbacks.Fn, data cty.Value, c callbacks.Context) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("callback panicked: %v", r)
		}
	}()
	return fn(ctx, data, c)
}
