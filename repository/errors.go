package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the order/cart/catalog domain. Controllers map these
// to HTTP statuses with errors.Is; everything else is an internal failure.
var (
	ErrEmptyOrder         = errors.New("order has no items and the cart is empty")
	ErrInvalidLineItem    = errors.New("line item must reference a product or a variant")
	ErrNoCartOwner        = errors.New("cart owner must have a customer_id or a session_key")
	ErrProductNotFound    = errors.New("product not found or inactive")
	ErrVariantNotFound    = errors.New("variant not found or inactive")
	ErrCartNotFound       = errors.New("cart not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrAddressNotFound    = errors.New("address not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderItemNotFound  = errors.New("order item not found")
	ErrStatusNotFound     = errors.New("unknown order status code")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrDuplicateReview    = errors.New("customer already reviewed this product")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// MissingGuestFieldsError reports which required guest checkout fields were
// omitted, so the caller can self-correct.
type MissingGuestFieldsError struct {
	Fields []string
}

func (e *MissingGuestFieldsError) Error() string {
	return fmt.Sprintf("guest checkout is missing required fields: %s", strings.Join(e.Fields, ", "))
}
