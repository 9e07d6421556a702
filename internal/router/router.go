package router

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/KomatechBot/geien-fes2/internal/handlers"
	"github.com/KomatechBot/geien-fes2/internal/middleware"
	"github.com/KomatechBot/geien-fes2/internal/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New creates and configures the application router
func New(h *handlers.Handler, log *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.SecurityHeaders)

	r.Get("/health", healthCheck)
	r.Handle("/metrics", promhttp.Handler())

	creatorQueries := url.Values{"depth": []string{"1"}}

	r.Route("/api", func(r chi.Router) {
		r.Post("/like", h.Like)
		r.Get("/comments", h.ListComments)
		r.Post("/comments", h.CreateComment)

		r.Get("/exhibitions", h.ListContent(models.EndpointExhibitions))
		r.Get("/exhibitions/{id}", h.GetContent(models.EndpointExhibitions, nil))
		r.Get("/workshops", h.ListContent(models.EndpointWorkshops))
		r.Get("/workshops/{id}", h.GetContent(models.EndpointWorkshops, nil))
		r.Get("/creators", h.ListContent(models.EndpointCreators))
		r.Get("/creators/{id}", h.GetContent(models.EndpointCreators, creatorQueries))
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
