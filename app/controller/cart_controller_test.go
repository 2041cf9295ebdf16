package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellora-backend/models"
	"sellora-backend/repository"
)

type fakeCartRepo struct {
	repository.CartRepositoryInterface

	lastOwner models.CartOwner
	added     *models.CartItem
	addErr    error
}

func (f *fakeCartRepo) GetWithItems(ctx context.Context, owner models.CartOwner) (*models.CartResponse, error) {
	f.lastOwner = owner
	return &models.CartResponse{Cart: models.Cart{ID: 1}, Items: []models.CartItemDetail{}}, nil
}

func (f *fakeCartRepo) AddItem(ctx context.Context, owner models.CartOwner, req *models.AddCartItemRequest) (*models.CartItem, error) {
	f.lastOwner = owner
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.added = &models.CartItem{ID: 9, CartID: 1, ProductID: req.ProductID, VariantID: req.VariantID, Quantity: req.Quantity}
	return f.added, nil
}

func TestCartMintsSessionKeyForNewGuest(t *testing.T) {
	repo := &fakeCartRepo{}
	ctrl := NewCartController(repo)

	r := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()

	ctrl.Cart(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	key := w.Header().Get(SessionKeyHeader)
	assert.NotEmpty(t, key)
	assert.Equal(t, key, repo.lastOwner.SessionKey)
	assert.Zero(t, repo.lastOwner.CustomerID)
}

func TestCartKeepsExistingSessionKey(t *testing.T) {
	repo := &fakeCartRepo{}
	ctrl := NewCartController(repo)

	r := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	r.Header.Set(SessionKeyHeader, "guest-123")
	w := httptest.NewRecorder()

	ctrl.Cart(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "guest-123", w.Header().Get(SessionKeyHeader))
	assert.Equal(t, "guest-123", repo.lastOwner.SessionKey)
}

func TestCartPrefersAuthenticatedOwner(t *testing.T) {
	repo := &fakeCartRepo{}
	ctrl := NewCartController(repo)

	r := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	r.Header.Set(SessionKeyHeader, "guest-123")
	r = r.WithContext(WithAuth(r.Context(), &models.AuthContext{UserID: 3, CustomerID: 7}))
	w := httptest.NewRecorder()

	ctrl.Cart(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), repo.lastOwner.CustomerID)
	assert.Empty(t, repo.lastOwner.SessionKey)
}

func TestAddItemRequiresGuestSessionKey(t *testing.T) {
	repo := &fakeCartRepo{}
	ctrl := NewCartController(repo)

	body := strings.NewReader(`{"productId":1,"quantity":2}`)
	r := httptest.NewRequest(http.MethodPost, "/api/cart/items", body)
	w := httptest.NewRecorder()

	ctrl.Items(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItemMapsDomainErrors(t *testing.T) {
	repo := &fakeCartRepo{addErr: repository.ErrProductNotFound}
	ctrl := NewCartController(repo)

	body := strings.NewReader(`{"productId":42,"quantity":1}`)
	r := httptest.NewRequest(http.MethodPost, "/api/cart/items", body)
	r.Header.Set(SessionKeyHeader, "guest-123")
	w := httptest.NewRecorder()

	ctrl.Items(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"product not found", repository.ErrProductNotFound, http.StatusNotFound},
		{"order not found", repository.ErrOrderNotFound, http.StatusNotFound},
		{"empty order", repository.ErrEmptyOrder, http.StatusBadRequest},
		{"missing guest fields", &repository.MissingGuestFieldsError{Fields: []string{"phone"}}, http.StatusBadRequest},
		{"no cart owner", repository.ErrNoCartOwner, http.StatusBadRequest},
		{"duplicate review", repository.ErrDuplicateReview, http.StatusConflict},
		{"bad credentials", repository.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}
