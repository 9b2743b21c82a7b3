package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// It detaches from the request context (the handler must not be cancelled by
// the request ending) but preserves the request logger, and recovers panics.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
