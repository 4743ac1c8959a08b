package healthcheck

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/logger"
	"github.com/tuicr/scaffold/core/response"
)

// Handler creates a health check handler function that can serve as both a
// liveness and readiness probe depending on the provided dependency
// functions.
//
// When no dependency functions are provided, it acts as a liveness probe
// and returns "ALIVE" to indicate the service is running.
//
// When dependency functions are provided, it acts as a readiness probe and
// executes each function in sequence. If all succeed, it returns "READY".
// If any function fails, it logs the error and returns 503.
//
// Example:
//
//	// Liveness probe - no dependencies
//	live := healthcheck.Handler(log)
//
//	// Readiness probe - with database and cache checks
//	ready := healthcheck.Handler(log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	)
//
// The probe paths belong on the pipeline's ignore list so orchestrators
// can reach them without a session.
func Handler(log *slog.Logger, fn ...func(context.Context) error) handler.HandlerFunc {
	return func(ctx handler.Context) handler.Response {
		if len(fn) == 0 {
			return response.String(http.StatusOK, "ALIVE")
		}

		for _, f := range fn {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				return response.Status(http.StatusServiceUnavailable)
			}
		}

		return response.String(http.StatusOK, "READY")
	}
}
