package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/exgroup/clause"
)

// Logging returns middleware that logs clause start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, info *Info, next Exec) clause.Signal {
		logger.Debug("clause started",
			slog.String("block_id", info.Block.String()),
			slog.String("clause", info.Name()),
			slog.Int("matched", info.Matched.Count()),
		)

		start := time.Now()
		sig := next(ctx)
		elapsed := time.Since(start)

		if sig.Kind() == clause.SignalRaise && sig.Err() != nil {
			logger.Warn("clause raised",
				slog.String("block_id", info.Block.String()),
				slog.String("clause", info.Name()),
				slog.Duration("elapsed", elapsed),
				slog.String("error", sig.Err().Error()),
			)
		} else {
			logger.Debug("clause finished",
				slog.String("block_id", info.Block.String()),
				slog.String("clause", info.Name()),
				slog.Duration("elapsed", elapsed),
				slog.String("signal", sig.Kind().String()),
			)
		}

		return sig
	}
}
