package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "kennel-records/docs"
	"kennel-records/internal/domain/dogs"
	"kennel-records/internal/domain/events"
	"kennel-records/internal/domain/heats"
	"kennel-records/internal/domain/litters"
	"kennel-records/internal/middleware"
	"kennel-records/internal/platform/logger"
	"kennel-records/internal/store"
)

type Options struct {
	// Opcional: si viene nil se arma un store in-memory vacío.
	Store *store.Store

	// Opcional: si viene, /health hace ping a Postgres.
	DB *sql.DB

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	st := opts.Store
	if st == nil {
		st = store.NewInMemory(store.Options{Log: log})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestIDHeader)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", healthHandler(opts.DB))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	store.RegisterRoutes(r, st)
	dogs.RegisterRoutes(r, st.Dogs)
	heats.RegisterRoutes(r, st.Heats)
	events.RegisterRoutes(r, st.Events)
	litters.RegisterRoutes(r, st.Litters)

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
