package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"netmonitor/internal/logging"
)

const traceHeader = "X-Trace-Id"

// traceMiddleware tags each request with a trace id and a request scoped logger.
func traceMiddleware(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.NewString()
			}
			w.Header().Set(traceHeader, traceID)

			reqLogger := logger.WithTraceID(traceID)
			reqLogger.Debug("http request", "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r.WithContext(reqLogger.WithContext(r.Context())))
		})
	}
}

func requestLogger(r *http.Request, fallback *logging.Logger) *logging.Logger {
	if l, ok := logging.FromContext(r.Context()); ok {
		return l
	}
	return fallback
}
