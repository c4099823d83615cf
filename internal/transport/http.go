package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RouteRegistrar is implemented by every resource handler.
type RouteRegistrar interface {
	RegisterRoutes(router chi.Router)
}

// Pinger is checked by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	DB             Pinger
}

// NewRouter mounts the resource handlers under /api behind the shared
// middleware stack.
func NewRouter(cfg RouterConfig, handlers ...RouteRegistrar) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(cfg.Logger))
	r.Use(requestID)
	r.Use(accessLog())
	r.Use(middleware.Recoverer)
	r.Use(corsHandler(cfg.AllowedOrigins))

	r.Get("/health", healthHandler(cfg.DB))

	r.Route("/api", func(api chi.Router) {
		for _, h := range handlers {
			h.RegisterRoutes(api)
		}
	})

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("Health check failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("database unavailable"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
