package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"sellora-backend/models"
	"sellora-backend/repository"
)

// CartController handles HTTP requests for guest and customer carts.
// Guests carry their cart identity in the X-Session-Key header; the first
// cart read without one mints a key and echoes it back in the response.
type CartController struct {
	repository repository.CartRepositoryInterface
}

// NewCartController creates a new CartController
func NewCartController(repo repository.CartRepositoryInterface) *CartController {
	return &CartController{
		repository: repo,
	}
}

// Cart handles GET and DELETE /api/cart
func (c *CartController) Cart(w http.ResponseWriter, r *http.Request) {
	log.Printf("🛒 Cart: Received %s request to %s", r.Method, r.URL.Path)

	owner := ownerFromRequest(r)

	switch r.Method {
	case http.MethodGet:
		// A guest without a session key gets one minted here
		if owner.CustomerID == 0 && owner.SessionKey == "" {
			owner.SessionKey = uuid.NewString()
			log.Printf("➕ Cart: Issued new session key for guest")
		}
		if owner.CustomerID == 0 {
			w.Header().Set(SessionKeyHeader, owner.SessionKey)
		}

		cart, err := c.repository.GetWithItems(r.Context(), owner)
		if err != nil {
			log.Printf("❌ Cart: Error fetching cart: %v", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, cart)

	case http.MethodDelete:
		if err := c.repository.Clear(r.Context(), owner); err != nil {
			log.Printf("❌ Cart: Error clearing cart: %v", err)
			respondError(w, err)
			return
		}
		log.Printf("🗑️ Cart: Cleared cart")
		respondJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Items handles POST /api/cart/items and PUT/PATCH/DELETE /api/cart/items/{id}
func (c *CartController) Items(w http.ResponseWriter, r *http.Request) {
	log.Printf("🛒 CartItems: Received %s request to %s", r.Method, r.URL.Path)

	owner := ownerFromRequest(r)
	if owner.CustomerID == 0 && owner.SessionKey == "" {
		http.Error(w, fmt.Sprintf("%s header is required for guest carts", SessionKeyHeader), http.StatusBadRequest)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/cart/items")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.addItem(w, r, owner)
		return
	}

	itemID, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		log.Printf("❌ CartItems: Invalid item id: %s", path)
		http.Error(w, "invalid item id parameter", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		c.updateItem(w, r, owner, itemID)
	case http.MethodDelete:
		c.removeItem(w, r, owner, itemID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *CartController) addItem(w http.ResponseWriter, r *http.Request, owner models.CartOwner) {
	var req models.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CartItems: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	item, err := c.repository.AddItem(r.Context(), owner, &req)
	if err != nil {
		log.Printf("❌ CartItems: Error adding item: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ CartItems: Added product_id=%d variant_id=%d qty=%d", item.ProductID, item.VariantID, item.Quantity)
	respondJSON(w, http.StatusCreated, item)
}

func (c *CartController) updateItem(w http.ResponseWriter, r *http.Request, owner models.CartOwner, itemID int64) {
	var req models.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CartItems: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	item, err := c.repository.UpdateItemQuantity(r.Context(), owner, itemID, req.Quantity)
	if err != nil {
		log.Printf("❌ CartItems: Error updating item: %v", err)
		respondError(w, err)
		return
	}

	// Quantity zero removes the line
	if item.Quantity == 0 {
		log.Printf("🗑️ CartItems: Removed item id=%d via zero quantity", itemID)
		respondJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
		return
	}

	log.Printf("🔄 CartItems: Updated item id=%d qty=%d", item.ID, item.Quantity)
	respondJSON(w, http.StatusOK, item)
}

func (c *CartController) removeItem(w http.ResponseWriter, r *http.Request, owner models.CartOwner, itemID int64) {
	if err := c.repository.RemoveItem(r.Context(), owner, itemID); err != nil {
		log.Printf("❌ CartItems: Error removing item: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("🗑️ CartItems: Removed item id=%d", itemID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
}
