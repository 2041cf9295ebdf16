package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"sellora-backend/models"
	"sellora-backend/repository"
	"sellora-backend/service"
)

// AuthController handles HTTP requests for registration, login, and the
// customer's own profile
type AuthController struct {
	customers repository.CustomerRepositoryInterface
	auth      *service.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(customers repository.CustomerRepositoryInterface, auth *service.AuthService) *AuthController {
	return &AuthController{
		customers: customers,
		auth:      auth,
	}
}

// Register handles POST /api/auth/register
// Example request:
// {
//   "name": "Rahim Uddin",
//   "email": "rahim@example.com",
//   "password": "secret123",
//   "phone": "01711111111"
// }
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Register: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Register: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Register: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		http.Error(w, "a valid email is required", http.StatusBadRequest)
		return
	}

	passwordHash, err := c.auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("❌ Register: Invalid password: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	customer, err := c.customers.Register(r.Context(), &req, passwordHash)
	if err != nil {
		log.Printf("❌ Register: Error creating account: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ Register: Successfully registered customer id=%d", customer.ID)
	respondJSON(w, http.StatusCreated, customer)
}

// Login handles POST /api/auth/login
// Example response:
// {
//   "token": "eyJhbGciOi...",
//   "customer": { "id": 7, "name": "Rahim Uddin", "customerType": "retail" }
// }
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Login: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Login: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Login: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	user, err := c.customers.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		log.Printf("❌ Login: Lookup failed for email=%s: %v", req.Email, err)
		respondError(w, err)
		return
	}

	if !c.auth.CheckPassword(user.PasswordHash, req.Password) {
		log.Printf("❌ Login: Wrong password for email=%s", req.Email)
		respondError(w, repository.ErrInvalidCredentials)
		return
	}

	customer, err := c.customers.GetByUserID(r.Context(), user.ID)
	if err != nil {
		log.Printf("❌ Login: Error fetching profile: %v", err)
		respondError(w, err)
		return
	}

	token, err := c.auth.IssueToken(user, customer)
	if err != nil {
		log.Printf("❌ Login: Error issuing token: %v", err)
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Login: Customer id=%d logged in", customer.ID)
	respondJSON(w, http.StatusOK, models.LoginResponse{Token: token, Customer: customer})
}

// ChangePassword handles POST /api/auth/change-password
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ChangePassword: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	auth := requireCustomer(w, r)
	if auth == nil {
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ ChangePassword: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	customer, err := c.customers.GetByUserID(r.Context(), auth.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := c.customers.GetUserByEmail(r.Context(), customer.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	if !c.auth.CheckPassword(user.PasswordHash, req.OldPassword) {
		log.Printf("❌ ChangePassword: Wrong current password for user id=%d", auth.UserID)
		respondError(w, repository.ErrInvalidCredentials)
		return
	}

	newHash, err := c.auth.HashPassword(req.NewPassword)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := c.customers.UpdatePasswordHash(r.Context(), auth.UserID, newHash); err != nil {
		log.Printf("❌ ChangePassword: Error updating password: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ ChangePassword: Password updated for user id=%d", auth.UserID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// Me handles GET and PUT /api/customers/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Me: Received %s request to %s", r.Method, r.URL.Path)

	auth := requireCustomer(w, r)
	if auth == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		customer, err := c.customers.GetByUserID(r.Context(), auth.UserID)
		if err != nil {
			log.Printf("❌ Me: Error fetching profile: %v", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, customer)

	case http.MethodPut, http.MethodPatch:
		var req models.UpdateCustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ Me: Failed to decode request body: %v", err)
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		customer, err := c.customers.UpdateProfile(r.Context(), auth.CustomerID, &req)
		if err != nil {
			log.Printf("❌ Me: Error updating profile: %v", err)
			respondError(w, err)
			return
		}

		log.Printf("✅ Me: Updated profile for customer id=%d", customer.ID)
		respondJSON(w, http.StatusOK, customer)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
