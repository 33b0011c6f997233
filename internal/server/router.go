package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/loomworks/loomai/internal/api/handlers"
	"github.com/loomworks/loomai/internal/api/middleware"
)

type RouterConfig struct {
	PageHandler *handlers.PageHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	// The browser extension calls this API cross-origin.
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}).Handler)

	r.Get("/health", cfg.PageHandler.Health)
	r.Post("/process", cfg.PageHandler.Process)
	r.Post("/search", cfg.PageHandler.Search)

	return r
}
