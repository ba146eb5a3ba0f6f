package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashmath/internal/api"
	apiMiddleware "github.com/phrazzld/flashmath/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	sessionHandler := api.NewSessionHandler(app.practiceService, app.logger)
	resultsHandler := api.NewResultsHandler(app.results, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", sessionHandler.GetOptions)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.CreateSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Delete("/", sessionHandler.DeleteSession)

				r.Put("/operation", sessionHandler.SelectOperation)
				r.Put("/difficulty", sessionHandler.SelectDifficulty)
				r.Put("/count", sessionHandler.SelectCount)

				r.Post("/start", sessionHandler.Start)
				r.Post("/answer", sessionHandler.SubmitAnswer)
				r.Post("/outcome", sessionHandler.RecordOutcome)
				r.Post("/advance", sessionHandler.Advance)
				r.Post("/reset", sessionHandler.Reset)

				r.Get("/summary", sessionHandler.GetSummary)
			})
		})

		r.Get("/results", resultsHandler.ListResults)
		r.Get("/results/stats", resultsHandler.GetStats)
		r.Get("/results/{id}", resultsHandler.GetResult)
	})

	r.Get("/health", api.Health)

	return r
}
