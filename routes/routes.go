package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"nambikkai-store/controllers"
	"nambikkai-store/middleware"
	"nambikkai-store/utils"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, orderController *controllers.OrderController, adminController *controllers.AdminController) {
	api := router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondMessage(w, http.StatusOK, "Server is running")
	}).Methods("GET")

	// Auth routes
	api.HandleFunc("/auth/register", userController.Register).Methods("POST")
	api.HandleFunc("/auth/login", userController.Login).Methods("POST")
	api.HandleFunc("/admin/auth/login", userController.AdminLogin).Methods("POST")

	authed := api.PathPrefix("/auth").Subrouter()
	authed.Use(middleware.AuthMiddleware)
	authed.HandleFunc("/profile", userController.GetProfile).Methods("GET")

	// Public catalog routes
	api.HandleFunc("/products", productController.GetProducts).Methods("GET")
	api.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// Reviews require a signed-in customer
	reviews := api.PathPrefix("/products").Subrouter()
	reviews.Use(middleware.AuthMiddleware)
	reviews.HandleFunc("/{id}/reviews", productController.AddReview).Methods("POST")

	// Catalog writes are operator-only
	catalogAdmin := api.PathPrefix("/products").Subrouter()
	catalogAdmin.Use(middleware.AuthMiddleware)
	catalogAdmin.Use(middleware.AdminMiddleware)
	catalogAdmin.HandleFunc("", productController.CreateProduct).Methods("POST")
	catalogAdmin.HandleFunc("/{id}", productController.UpdateProduct).Methods("PUT")
	catalogAdmin.HandleFunc("/{id}", productController.DeleteProduct).Methods("DELETE")

	// Cart routes
	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(middleware.AuthMiddleware)
	cart.HandleFunc("", cartController.GetCart).Methods("GET")
	cart.HandleFunc("/add", cartController.AddToCart).Methods("POST")
	cart.HandleFunc("/remove", cartController.RemoveFromCart).Methods("POST")
	cart.HandleFunc("/update-quantity", cartController.UpdateQuantity).Methods("POST")
	cart.HandleFunc("/clear", cartController.ClearCart).Methods("POST")

	// Order routes
	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(middleware.AuthMiddleware)
	orders.HandleFunc("/checkout", orderController.Checkout).Methods("POST")
	orders.HandleFunc("", orderController.GetOrders).Methods("GET")
	orders.HandleFunc("/{id}", orderController.GetOrderByID).Methods("GET")

	// Back-office routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/orders/all", adminController.GetAllOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", adminController.UpdateOrderStatus).Methods("PUT")
	admin.HandleFunc("/members/add", adminController.AddMember).Methods("POST")
	admin.HandleFunc("/members", adminController.GetMembers).Methods("GET")
	admin.HandleFunc("/members/{id}", adminController.UpdateMember).Methods("PUT")
	admin.HandleFunc("/members/{id}", adminController.RemoveMember).Methods("DELETE")
	admin.HandleFunc("/dashboard/stats", adminController.DashboardStats).Methods("GET")
}
