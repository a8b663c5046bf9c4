package http //nolint:revive // directory-based package name, imported with alias

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", h.HandleIndex)
	r.Post("/generate", h.HandleGenerate)
	r.Get("/qr/{id}.png", h.HandleImage)
	r.Get("/qr/{id}/download", h.HandleDownload)
	r.Get("/qr/{id}/payload", h.HandlePayload)
	r.Get("/api/qr", h.HandleAPIQR)

	return r
}
