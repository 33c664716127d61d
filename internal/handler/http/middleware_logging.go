package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/budget-keeper/internal/logger"
)

// statusRecorder remembers the status and body size written by the handler
// chain. WriteHeader reaches the wrapped writer only once.
type statusRecorder struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// withLogging writes one access log line per request. Headers and bodies
// are never logged since they carry passwords and tokens.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		if !rec.wroteHeader {
			rec.status = http.StatusOK
		}

		level := zerolog.InfoLevel
		if rec.status >= http.StatusInternalServerError {
			level = zerolog.ErrorLevel
		}

		log.WithLevel(level).
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Int("size", rec.size).
			Send()
	})
}
