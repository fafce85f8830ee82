package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"deals_bot/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/guilds", func(r chi.Router) {
			r.Get("/", handler(s.getV1Guilds))
			r.Post("/{id}/update", handler(s.postV1GuildUpdate))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
