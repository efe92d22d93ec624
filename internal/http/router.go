package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/rfid-pos/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RateLimitMiddleware)

	r.Post("/register", handlers.RegisterHandler)
	r.Post("/login", handlers.LoginHandler)
	r.Post("/refresh", handlers.RefreshHandler)

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/search", handlers.FilterProductsHandler)
	r.Get("/products/{tagID}", handlers.GetProductByTagHandler)

	r.Get("/transactions", handlers.GetTransactionsHandler)
	r.Get("/transactions/{id}", handlers.GetTransactionByIDHandler)

	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	r.Get("/logs", handlers.GetLogsHandler)
	r.Get("/device", handlers.DeviceStatusHandler)
	r.Get("/export", handlers.ExportDataHandler)

	// Everything that mutates terminal state requires an operator token.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Post("/products", handlers.CreateProductHandler)
		r.Delete("/products/{tagID}", handlers.DeleteProductHandler)

		r.Post("/scan", handlers.ScanHandler)
		r.Post("/scan/input", handlers.ScanInputHandler)
		r.Post("/scan/confirm", handlers.ScanConfirmHandler)
		r.Get("/cart", handlers.GetCartHandler)
		r.Delete("/cart", handlers.ClearCartHandler)

		r.Post("/checkout", handlers.CheckoutHandler)

		r.Post("/device/connect", handlers.DeviceConnectHandler)
		r.Post("/device/disconnect", handlers.DeviceDisconnectHandler)

		r.Put("/settings/kill-policy", handlers.KillPolicyHandler)
		r.Post("/import", handlers.ImportDataHandler)
		r.Delete("/data", handlers.ClearDataHandler)
	})

	return r
}
