package middleware

import (
	"net/http"
	"time"

	"github.com/ferdiebergado/credkit/internal/platform/metrics"
)

// Instrument observes request latency by method and status code.
func Instrument(recorder metrics.Recorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			status := defaultStatus
			if writer, ok := w.(*SafeResponseWriter); ok {
				status = writer.Status()
			}
			recorder.ObserveRequest(r.Method, status, time.Since(start))
		})
	}
}
