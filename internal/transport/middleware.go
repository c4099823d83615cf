package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const requestIDHeader = "X-Request-ID"

// requestID tags the request logger with an id, reusing one supplied by the
// caller. It must run after hlog.NewHandler.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			if u, err := uuid.NewV4(); err == nil {
				id = u.String()
			}
		}

		if id != "" {
			w.Header().Set(requestIDHeader, id)
			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", id)
			})
		}

		next.ServeHTTP(w, r)
	})
}

func accessLog() func(http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = hlog.FromRequest(r).Error()
		case status >= 400:
			event = hlog.FromRequest(r).Warn()
		default:
			event = hlog.FromRequest(r).Info()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("latency", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("http_request")
	})
}

// corsHandler allows the configured origins. A "*" entry admits every origin
// by echoing it back, which keeps credentialed requests working.
func corsHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions, http.MethodHead},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}

	for _, o := range allowedOrigins {
		if o == "*" {
			opts.AllowOriginFunc = func(r *http.Request, origin string) bool { return true }
			return cors.Handler(opts)
		}
	}

	opts.AllowedOrigins = allowedOrigins
	return cors.Handler(opts)
}
