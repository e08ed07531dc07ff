package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
)

// RouterOptions carries the optional pieces of the router.
type RouterOptions struct {
	CORSAllowedOrigins []string
	// Metrics is mounted at /metrics when set.
	Metrics  http.Handler
	Observer RequestObserver
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.Metrics)
	registerScoreRoutes(mux, handler)
	registerCandidateRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, opts.Observer, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := r.Context()
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "http_path", r.URL.Path)
				markSpanError(ctx, http.StatusInternalServerError, fmt.Errorf("panic: %v", rec))
				writeInternalError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
