package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/oceaniadigital/lead-relay/internal/events"
	"github.com/oceaniadigital/lead-relay/pkg/logging"
)

// maxRecordedBody caps how much of a request or response body lands in the
// event log.
const maxRecordedBody = 64 << 10

// RequestEvents emits a request event on arrival and a response event just
// before the response is written back, each carrying method, path, headers,
// body, and (for responses) elapsed milliseconds.
func RequestEvents(sink events.Sink, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			body := readAndRestoreBody(r)
			sink.Append(events.New(events.TypeRequest, events.RequestPayload{
				Method:  r.Method,
				Path:    r.URL.Path,
				Headers: r.Header,
				Body:    body,
			}))

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			sink.Append(events.New(events.TypeResponse, events.ResponsePayload{
				Method:     r.Method,
				Path:       r.URL.Path,
				Status:     rec.status,
				Body:       rec.body.String(),
				DurationMS: time.Since(start).Milliseconds(),
			}))

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// readAndRestoreBody drains up to maxRecordedBody bytes and puts the full
// body back so downstream handlers see an untouched request.
func readAndRestoreBody(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRecordedBody))
	if err != nil {
		return ""
	}
	rest, _ := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(data), bytes.NewReader(rest)))
	return string(data)
}

// responseRecorder captures the status and body written by downstream
// handlers while passing everything through.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.body.Len() < maxRecordedBody {
		r.body.Write(p[:min(len(p), maxRecordedBody-r.body.Len())])
	}
	return r.ResponseWriter.Write(p)
}
