package app

import (
	"fmt"
	"log"

	"sellora-backend/app/controller"
	"sellora-backend/app/router"
	"sellora-backend/db"
	"sellora-backend/repository"
	"sellora-backend/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Prepare the optimized-image cache directory
	if err := service.EnsureCacheDir(); err != nil {
		log.Printf("⚠️  Initialize: Could not create image cache directory: %v", err)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository()
	addressRepo := repository.NewAddressRepository()
	productRepo := repository.NewProductRepository()
	cartRepo := repository.NewCartRepository()
	orderRepo := repository.NewOrderRepository()
	reviewRepo := repository.NewReviewRepository()

	// Initialize services
	authService := service.NewAuthService()
	orderService := service.NewOrderService(productRepo, cartRepo, addressRepo, orderRepo, customerRepo)
	invoiceService := service.NewInvoiceService(orderRepo)

	// Create controllers
	controllers := &router.Controllers{
		Auth:    controller.NewAuthController(customerRepo, authService),
		Address: controller.NewAddressController(addressRepo),
		Catalog: controller.NewCatalogController(productRepo, reviewRepo),
		Cart:    controller.NewCartController(cartRepo),
		Order:   controller.NewOrderController(orderRepo, orderService, invoiceService),
		Review:  controller.NewReviewController(reviewRepo),
	}

	// Setup routes using standard http router
	router.SetupRoutes(authService, controllers)

	return nil
}
