package router

import (
	"net/http"
	"strings"

	"sellora-backend/app/controller"
	"sellora-backend/service"
)

type Controllers struct {
	Auth    *controller.AuthController
	Address *controller.AddressController
	Catalog *controller.CatalogController
	Cart    *controller.CartController
	Order   *controller.OrderController
	Review  *controller.ReviewController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// withAuth decodes a Bearer token, when present, into the request context.
// Requests without a token pass through anonymously; handlers decide what
// anonymous callers may do.
func withAuth(auth *service.AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			identity, err := auth.VerifyToken(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}
			r = r.WithContext(controller.WithAuth(r.Context(), identity))
		}
		next(w, r)
	}
}

func SetupRoutes(auth *service.AuthService, controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Account routes
	http.HandleFunc("/api/auth/register", controllers.Auth.Register)
	http.HandleFunc("/api/auth/login", controllers.Auth.Login)
	http.HandleFunc("/api/auth/change-password", withAuth(auth, controllers.Auth.ChangePassword))
	http.HandleFunc("/api/customers/me", withAuth(auth, controllers.Auth.Me))

	// Address book routes
	http.HandleFunc("/api/addresses", withAuth(auth, controllers.Address.Handle))
	http.HandleFunc("/api/addresses/", withAuth(auth, controllers.Address.Handle))

	// Catalog routes
	http.HandleFunc("/api/categories", withAuth(auth, controllers.Catalog.Categories))
	http.HandleFunc("/api/brands", withAuth(auth, controllers.Catalog.Brands))
	http.HandleFunc("/api/products", withAuth(auth, controllers.Catalog.Products))
	http.HandleFunc("/api/products/", withAuth(auth, controllers.Catalog.ProductDetail))

	// Cart routes
	http.HandleFunc("/api/cart", withAuth(auth, controllers.Cart.Cart))
	http.HandleFunc("/api/cart/items", withAuth(auth, controllers.Cart.Items))
	http.HandleFunc("/api/cart/items/", withAuth(auth, controllers.Cart.Items))

	// Order routes
	http.HandleFunc("/api/orders", withAuth(auth, controllers.Order.Orders))
	http.HandleFunc("/api/orders/", withAuth(auth, controllers.Order.OrderDetail))

	// Review routes
	http.HandleFunc("/api/reviews", withAuth(auth, controllers.Review.Handle))
	http.HandleFunc("/api/reviews/", withAuth(auth, controllers.Review.Handle))
}
