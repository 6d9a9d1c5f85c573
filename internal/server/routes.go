package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"buyback/pkg/httpx/reply"
	"buyback/pkg/middlewarex"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/v1", func(r chi.Router) {
		// unauthorized zone
		r.With(throttle(s.options.CreateLimiter)).Post("/buy-requests", handler(s.postV1BuyRequests))

		r.Route("/model-prices", func(r chi.Router) {
			r.Get("/", handler(s.getV1ModelPrices))
			r.Get("/{id}", handler(s.getV1ModelPrice))
		})

		// user zone
		r.Route("/me/requests", func(r chi.Router) {
			r.Use(middlewarex.UserEmail(s.options.UserEmailHeader))

			r.Get("/", handler(s.getV1MeRequests))
			r.Patch("/{id}", handler(s.patchV1MeRequest))
			r.Patch("/{id}/cancel", handler(s.patchV1MeRequestCancel))
			r.Delete("/{id}", handler(s.deleteV1MeRequest))
		})

		// admin zone
		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarex.AdminToken(s.options.AdminToken))

			r.Route("/buy-requests", func(r chi.Router) {
				r.With(throttle(s.options.AdminLimiter)).Get("/", handler(s.getV1AdminBuyRequests))
				r.Get("/{id}", handler(s.getV1AdminBuyRequest))
				r.Patch("/{id}", handler(s.patchV1AdminBuyRequest))
				r.Patch("/{id}/mark-paid", handler(s.patchV1AdminBuyRequestMarkPaid))
				r.Delete("/{id}", handler(s.deleteV1AdminBuyRequest))
			})

			r.Route("/model-prices", func(r chi.Router) {
				r.Post("/", handler(s.postV1AdminModelPrices))
				r.Patch("/{id}", handler(s.patchV1AdminModelPrice))
				r.Delete("/{id}", handler(s.deleteV1AdminModelPrice))
			})
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
