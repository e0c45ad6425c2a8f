package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/faktur/internal/http/auth"
	"github.com/MrJamesThe3rd/faktur/internal/http/export"
	"github.com/MrJamesThe3rd/faktur/internal/http/invoice"
)

type Options struct {
	CORSOrigins []string
	JWTSecret   string
	Timeout     time.Duration
}

func New(
	opts Options,
	invoicesV1 *invoice.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret))

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			invoicesV1.Routes(r)
		})

		r.Route("/preview", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			invoicesV1.PreviewRoutes(r)
		})

		r.Route("/ledger", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			invoicesV1.LedgerRoutes(r)
		})

		r.Route("/export", exportV1.Routes)
	})

	return router
}
