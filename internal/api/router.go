package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/wunjo/internal/tracker"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *tracker.Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/topics", h.ListTopics)
	r.Post("/topics", h.CreateTopic)
	r.Get("/topics/{title}", h.GetTopic)
	r.Post("/topics/{title}/resources", h.AddResource)
	r.Post("/topics/{title}/notes", h.AddNote)
	r.Post("/topics/{title}/progress", h.AddProgress)

	return r
}
