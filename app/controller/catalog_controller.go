package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"sellora-backend/models"
	"sellora-backend/repository"
	"sellora-backend/service"
)

// CatalogController handles HTTP requests for categories, brands, and
// products, including optimized product images
type CatalogController struct {
	repository repository.ProductRepositoryInterface
	reviews    repository.ReviewRepositoryInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(repo repository.ProductRepositoryInterface, reviews repository.ReviewRepositoryInterface) *CatalogController {
	return &CatalogController{
		repository: repo,
		reviews:    reviews,
	}
}

// Categories handles GET and POST /api/categories
func (c *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Categories: Received %s request to %s", r.Method, r.URL.Path)

	switch r.Method {
	case http.MethodGet:
		categories, err := c.repository.ListCategories(r.Context())
		if err != nil {
			log.Printf("❌ Categories: Error listing categories: %v", err)
			respondError(w, err)
			return
		}
		if categories == nil {
			categories = []models.Category{}
		}
		respondJSON(w, http.StatusOK, models.CategoryListResponse{Categories: categories})

	case http.MethodPost:
		if !requireStaff(w, r) {
			return
		}
		var req models.CreateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ Categories: Failed to decode request body: %v", err)
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		category, err := c.repository.CreateCategory(r.Context(), &req)
		if err != nil {
			log.Printf("❌ Categories: Error creating category: %v", err)
			respondError(w, err)
			return
		}

		log.Printf("✅ Categories: Created category id=%d", category.ID)
		respondJSON(w, http.StatusCreated, category)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Brands handles GET and POST /api/brands
func (c *CatalogController) Brands(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Brands: Received %s request to %s", r.Method, r.URL.Path)

	switch r.Method {
	case http.MethodGet:
		brands, err := c.repository.ListBrands(r.Context())
		if err != nil {
			log.Printf("❌ Brands: Error listing brands: %v", err)
			respondError(w, err)
			return
		}
		if brands == nil {
			brands = []models.Brand{}
		}
		respondJSON(w, http.StatusOK, models.BrandListResponse{Brands: brands})

	case http.MethodPost:
		if !requireStaff(w, r) {
			return
		}
		var req models.CreateBrandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ Brands: Failed to decode request body: %v", err)
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		brand, err := c.repository.CreateBrand(r.Context(), &req)
		if err != nil {
			log.Printf("❌ Brands: Error creating brand: %v", err)
			respondError(w, err)
			return
		}

		log.Printf("✅ Brands: Created brand id=%d", brand.ID)
		respondJSON(w, http.StatusCreated, brand)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Products handles GET and POST /api/products
// List filters: ?category=1&brand=2&featured=true
func (c *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Products: Received %s request to %s", r.Method, r.URL.Path)

	switch r.Method {
	case http.MethodGet:
		filter := &models.ProductFilter{}

		if v := r.URL.Query().Get("category"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, "invalid category parameter", http.StatusBadRequest)
				return
			}
			filter.CategoryID = id
		}
		if v := r.URL.Query().Get("brand"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, "invalid brand parameter", http.StatusBadRequest)
				return
			}
			filter.BrandID = id
		}
		if v := r.URL.Query().Get("featured"); v != "" {
			featured := v == "true" || v == "1"
			filter.Featured = &featured
		}

		// Non-staff callers only see active products
		auth := AuthFrom(r)
		if auth == nil || !auth.IsStaff {
			active := true
			filter.Active = &active
		}

		products, err := c.repository.List(r.Context(), filter)
		if err != nil {
			log.Printf("❌ Products: Error listing products: %v", err)
			respondError(w, err)
			return
		}
		if products == nil {
			products = []models.Product{}
		}
		respondJSON(w, http.StatusOK, models.ProductListResponse{Products: products})

	case http.MethodPost:
		if !requireStaff(w, r) {
			return
		}
		var req models.CreateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ Products: Failed to decode request body: %v", err)
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		product, err := c.repository.Create(r.Context(), &req)
		if err != nil {
			log.Printf("❌ Products: Error creating product: %v", err)
			if errorStatus(err) == http.StatusInternalServerError {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			respondError(w, err)
			return
		}

		log.Printf("✅ Products: Created product id=%d slug=%s", product.ID, product.Slug)
		respondJSON(w, http.StatusCreated, product)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ProductDetail routes /api/products/{idOrSlug}, /api/products/{id}/image,
// and /api/products/{id}/reviews
func (c *CatalogController) ProductDetail(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ProductDetail: Received %s request to %s", r.Method, r.URL.Path)

	path := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if path == "" {
		http.Error(w, "product id parameter is required", http.StatusBadRequest)
		return
	}

	parts := strings.Split(path, "/")

	if len(parts) == 2 && parts[1] == "image" {
		c.productImage(w, r, parts[0])
		return
	}
	if len(parts) == 2 && parts[1] == "reviews" {
		c.productReviews(w, r, parts[0])
		return
	}
	if len(parts) != 1 {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Numeric segments are internal ids; anything else is a slug
	if id, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
		product, err := c.repository.GetProduct(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, product)
		return
	}

	product, err := c.repository.GetBySlug(r.Context(), parts[0])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// productImage handles GET /api/products/{id}/image?size=thumb|medium
// Serves an optimized JPEG from the disk cache, generating it on first use
func (c *CatalogController) productImage(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid product id parameter", http.StatusBadRequest)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "medium"
	}
	if size != "thumb" && size != "medium" {
		http.Error(w, "size must be thumb or medium", http.StatusBadRequest)
		return
	}

	cachePath := service.GetCachePath(productID, size)
	if service.CacheExists(cachePath) {
		data, err := service.ReadFromCache(cachePath)
		if err == nil {
			log.Printf("⏭️ ProductImage: Serving cached image for product_id=%d size=%s", productID, size)
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Cache-Control", "public, max-age=86400")
			w.Write(data)
			return
		}
		log.Printf("⚠️  ProductImage: Cache read failed, regenerating: %v", err)
	}

	imagePath, err := c.repository.GetImagePath(r.Context(), productID)
	if err != nil {
		respondError(w, err)
		return
	}

	raw, err := os.ReadFile(imagePath)
	if err != nil {
		log.Printf("❌ ProductImage: Error reading source image: %v", err)
		http.Error(w, "image not available", http.StatusNotFound)
		return
	}

	optimized, err := service.OptimizeImage(raw, size)
	if err != nil {
		log.Printf("❌ ProductImage: Error optimizing image: %v", err)
		http.Error(w, "failed to process image", http.StatusInternalServerError)
		return
	}

	if err := service.SaveToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️  ProductImage: Failed to cache image: %v", err)
		// Serve it anyway
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(optimized)
}

// productReviews handles GET /api/products/{id}/reviews
func (c *CatalogController) productReviews(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid product id parameter", http.StatusBadRequest)
		return
	}

	reviews, err := c.reviews.ListByProduct(r.Context(), productID)
	if err != nil {
		log.Printf("❌ ProductReviews: Error listing reviews: %v", err)
		respondError(w, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	respondJSON(w, http.StatusOK, models.ReviewListResponse{Reviews: reviews})
}
