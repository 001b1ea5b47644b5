package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	clientHandler "github.com/hvaldez/gestorpro/internal/http/client"
	importHandler "github.com/hvaldez/gestorpro/internal/http/importcsv"
	paymentHandler "github.com/hvaldez/gestorpro/internal/http/payment"
	productHandler "github.com/hvaldez/gestorpro/internal/http/product"
	reportHandler "github.com/hvaldez/gestorpro/internal/http/report"
	saleHandler "github.com/hvaldez/gestorpro/internal/http/sale"
)

func New(
	productsV1 *productHandler.Handler,
	clientsV1 *clientHandler.Handler,
	salesV1 *saleHandler.Handler,
	paymentsV1 *paymentHandler.Handler,
	reportsV1 *reportHandler.Handler,
	importV1 *importHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The original front end is a browser app served elsewhere.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			productsV1.Routes(r)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			clientsV1.Routes(r)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			salesV1.Routes(r)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			paymentsV1.Routes(r)
		})

		r.Route("/reports", func(r chi.Router) {
			reportsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
