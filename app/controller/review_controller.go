package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"sellora-backend/models"
	"sellora-backend/repository"
)

// ReviewController handles HTTP requests for creating and deleting product
// reviews. Listing lives under the product resource.
type ReviewController struct {
	repository repository.ReviewRepositoryInterface
}

// NewReviewController creates a new ReviewController
func NewReviewController(repo repository.ReviewRepositoryInterface) *ReviewController {
	return &ReviewController{
		repository: repo,
	}
}

// Handle routes POST /api/reviews and DELETE /api/reviews/{id}
func (c *ReviewController) Handle(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Reviews: Received %s request to %s", r.Method, r.URL.Path)

	auth := requireCustomer(w, r)
	if auth == nil {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/reviews")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.create(w, r, auth.CustomerID)
		return
	}

	reviewID, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		log.Printf("❌ Reviews: Invalid review id: %s", path)
		http.Error(w, "invalid review id parameter", http.StatusBadRequest)
		return
	}

	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	c.delete(w, r, auth, reviewID)
}

func (c *ReviewController) create(w http.ResponseWriter, r *http.Request, customerID int64) {
	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Reviews: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	review, err := c.repository.Create(r.Context(), customerID, &req)
	if err != nil {
		log.Printf("❌ Reviews: Error creating review: %v", err)
		if errorStatus(err) == http.StatusInternalServerError {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondError(w, err)
		return
	}

	log.Printf("✅ Reviews: Created review id=%d for product_id=%d", review.ID, review.ProductID)
	respondJSON(w, http.StatusCreated, review)
}

func (c *ReviewController) delete(w http.ResponseWriter, r *http.Request, auth *models.AuthContext, reviewID int64) {
	if err := c.repository.Delete(r.Context(), reviewID, auth.CustomerID, auth.IsStaff); err != nil {
		log.Printf("❌ Reviews: Error deleting review: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("🗑️ Reviews: Deleted review id=%d", reviewID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}
