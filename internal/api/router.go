package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cybergod-duck/rallyspeech/internal/api/handlers"
	"github.com/cybergod-duck/rallyspeech/internal/api/middleware"
	"github.com/cybergod-duck/rallyspeech/internal/config"
)

type Router struct {
	mux *chi.Mux
	cfg *config.Config
	svc handlers.Performer
}

func NewRouter(cfg *config.Config, svc handlers.Performer) *Router {
	return &Router{
		mux: chi.NewRouter(),
		cfg: cfg,
		svc: svc,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.Server.AllowedOrigins))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	health := handlers.NewHealthHandler(rt.cfg)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// The handler rejects non-POST methods itself.
	speechH := handlers.NewSpeechHandler(rt.svc, rt.cfg)
	r.HandleFunc("/api/generate", speechH.Generate)

	return r
}
