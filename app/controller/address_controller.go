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

// AddressController handles HTTP requests for customer address books
type AddressController struct {
	repository repository.AddressRepositoryInterface
}

// NewAddressController creates a new AddressController
func NewAddressController(repo repository.AddressRepositoryInterface) *AddressController {
	return &AddressController{
		repository: repo,
	}
}

// Handle routes /api/addresses and /api/addresses/{id}[/default]
func (c *AddressController) Handle(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Addresses: Received %s request to %s", r.Method, r.URL.Path)

	auth := requireCustomer(w, r)
	if auth == nil {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/addresses")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			c.list(w, r, auth.CustomerID)
		case http.MethodPost:
			c.create(w, r, auth.CustomerID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Path format: {id} or {id}/default
	parts := strings.Split(path, "/")
	addressID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		log.Printf("❌ Addresses: Invalid address id: %s", parts[0])
		http.Error(w, "invalid address id parameter", http.StatusBadRequest)
		return
	}

	if len(parts) == 2 && parts[1] == "default" {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.setDefault(w, r, auth.CustomerID, addressID)
		return
	}

	if len(parts) != 1 {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		address, err := c.repository.GetByID(r.Context(), auth.CustomerID, addressID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, address)
	case http.MethodPut:
		c.update(w, r, auth.CustomerID, addressID)
	case http.MethodDelete:
		c.delete(w, r, auth.CustomerID, addressID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *AddressController) list(w http.ResponseWriter, r *http.Request, customerID int64) {
	addresses, err := c.repository.List(r.Context(), customerID)
	if err != nil {
		log.Printf("❌ Addresses: Error listing addresses: %v", err)
		respondError(w, err)
		return
	}

	if addresses == nil {
		addresses = []models.Address{}
	}
	respondJSON(w, http.StatusOK, map[string][]models.Address{"addresses": addresses})
}

func (c *AddressController) create(w http.ResponseWriter, r *http.Request, customerID int64) {
	var req models.CreateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Addresses: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	address, err := c.repository.Create(r.Context(), customerID, &req)
	if err != nil {
		log.Printf("❌ Addresses: Error creating address: %v", err)
		if errorStatus(err) == http.StatusInternalServerError {
			// Validation failures from the repository are client errors
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondError(w, err)
		return
	}

	log.Printf("✅ Addresses: Created address id=%d", address.ID)
	respondJSON(w, http.StatusCreated, address)
}

func (c *AddressController) update(w http.ResponseWriter, r *http.Request, customerID, addressID int64) {
	var req models.CreateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Addresses: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	address, err := c.repository.Update(r.Context(), customerID, addressID, &req)
	if err != nil {
		log.Printf("❌ Addresses: Error updating address: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ Addresses: Updated address id=%d", address.ID)
	respondJSON(w, http.StatusOK, address)
}

func (c *AddressController) delete(w http.ResponseWriter, r *http.Request, customerID, addressID int64) {
	if err := c.repository.Delete(r.Context(), customerID, addressID); err != nil {
		log.Printf("❌ Addresses: Error deleting address: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ Addresses: Deleted address id=%d", addressID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Address deleted successfully"})
}

func (c *AddressController) setDefault(w http.ResponseWriter, r *http.Request, customerID, addressID int64) {
	if err := c.repository.SetDefault(r.Context(), customerID, addressID); err != nil {
		log.Printf("❌ Addresses: Error setting default address: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ Addresses: Address id=%d is now the default", addressID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Default address updated"})
}
