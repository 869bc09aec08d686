package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/pocket/internal/http/budget"
	"github.com/MrJamesThe3rd/pocket/internal/http/category"
	"github.com/MrJamesThe3rd/pocket/internal/http/export"
	"github.com/MrJamesThe3rd/pocket/internal/http/importcsv"
	"github.com/MrJamesThe3rd/pocket/internal/http/report"
	"github.com/MrJamesThe3rd/pocket/internal/http/transaction"
)

type Handlers struct {
	Categories   *category.Handler
	Transactions *transaction.Handler
	Reports      *report.Handler
	Budgets      *budget.Handler
	Import       *importcsv.Handler
	Export       *export.Handler
}

func New(h Handlers, corsOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Row-Count"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Budgets.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/export", h.Export.Routes)
	})

	return router
}
