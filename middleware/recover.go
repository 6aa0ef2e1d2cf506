package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/xraph/exgroup/clause"
)

// Recover returns middleware that recovers from panics in the handler
// body. A panic is a host-runtime failure the engine models as a raised
// new error, so the recovered value is converted to a Raise signal and
// logged with a stack trace. Panic values that are errors are wrapped so
// their type stays matchable downstream.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, info *Info, next Exec) (sig clause.Signal) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("clause body panicked",
					slog.String("block_id", info.Block.String()),
					slog.String("clause", info.Name()),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)

				if perr, ok := r.(error); ok {
					sig = clause.Raise(fmt.Errorf("clause %s panicked: %w", info.Name(), perr))
				} else {
					sig = clause.Raise(fmt.Errorf("clause %s panicked: %v", info.Name(), r))
				}
			}
		}()

		return next(ctx)
	}
}
