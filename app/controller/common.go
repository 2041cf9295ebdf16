package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"sellora-backend/models"
	"sellora-backend/repository"
)

type contextKey string

const authContextKey contextKey = "auth"

// SessionKeyHeader carries the anonymous cart session key for guests
const SessionKeyHeader = "X-Session-Key"

// WithAuth attaches an authenticated identity to a request context
func WithAuth(ctx context.Context, auth *models.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, auth)
}

// AuthFrom returns the authenticated identity on the request, or nil for
// anonymous requests
func AuthFrom(r *http.Request) *models.AuthContext {
	auth, _ := r.Context().Value(authContextKey).(*models.AuthContext)
	return auth
}

// ownerFromRequest resolves the cart owner: the authenticated customer, or
// the guest session key header
func ownerFromRequest(r *http.Request) models.CartOwner {
	if auth := AuthFrom(r); auth != nil && auth.CustomerID != 0 {
		return models.CartOwner{CustomerID: auth.CustomerID}
	}
	return models.CartOwner{SessionKey: r.Header.Get(SessionKeyHeader)}
}

// errorStatus maps domain errors to HTTP status codes. Anything unmapped is
// an internal failure.
func errorStatus(err error) int {
	var missing *repository.MissingGuestFieldsError
	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrVariantNotFound),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrCartItemNotFound),
		errors.Is(err, repository.ErrAddressNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrOrderItemNotFound),
		errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrReviewNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrEmptyOrder),
		errors.Is(err, repository.ErrInvalidLineItem),
		errors.Is(err, repository.ErrNoCartOwner),
		errors.Is(err, repository.ErrStatusNotFound),
		errors.As(err, &missing):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrDuplicateReview),
		errors.Is(err, repository.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, repository.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON writes a JSON response body with the given status
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ respondJSON: Error encoding response: %v", err)
	}
}

// respondError writes a domain error with its mapped status
func respondError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

// requireStaff rejects non-staff requests; returns true when allowed
func requireStaff(w http.ResponseWriter, r *http.Request) bool {
	auth := AuthFrom(r)
	if auth == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return false
	}
	if !auth.IsStaff {
		http.Error(w, "staff access required", http.StatusForbidden)
		return false
	}
	return true
}

// requireCustomer rejects anonymous requests; returns the identity when
// present
func requireCustomer(w http.ResponseWriter, r *http.Request) *models.AuthContext {
	auth := AuthFrom(r)
	if auth == nil || auth.CustomerID == 0 {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return nil
	}
	return auth
}
