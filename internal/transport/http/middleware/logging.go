package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vedran77/chirp/internal/metrics"
)

// Logging writes one structured line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := metrics.NewStatusRecorder(w)

		next.ServeHTTP(rec, r)

		entry := logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.StatusCode,
			"duration": time.Since(start).String(),
		})
		if rec.StatusCode >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request")
	})
}
