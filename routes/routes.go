// routes/routes.go
package routes

import (
	"fl350-gear-hub/controllers"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, productController *controllers.ProductController, checkoutController *controllers.CheckoutController, webhookController *controllers.WebhookController, userController *controllers.UserController) {
	api := router.PathPrefix("/api").Subrouter()

	// Catalog routes
	api.HandleFunc("/products", productController.GetProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productController.GetProductByID).Methods(http.MethodGet)

	// Identity
	api.HandleFunc("/me", userController.CurrentUser).Methods(http.MethodGet)

	// Payment routes check the method themselves so 405 carries an Allow header
	api.HandleFunc("/checkout", checkoutController.CreateSession)
	api.HandleFunc("/webhook", webhookController.HandleEvent)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
}
