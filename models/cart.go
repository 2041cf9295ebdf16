package models

// CartOwner identifies who a cart belongs to: an authenticated customer
// or an anonymous session, never both.
type CartOwner struct {
	CustomerID int64
	SessionKey string
}

// Cart represents a shopping cart
type Cart struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId,omitempty"`
	SessionKey string `json:"sessionKey,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// CartItem represents one line in a cart
type CartItem struct {
	ID        int64 `json:"id"`
	CartID    int64 `json:"cartId"`
	ProductID int64 `json:"productId"`
	VariantID int64 `json:"variantId,omitempty"`
	Quantity  int   `json:"quantity"`
}

// CartItemDetail is a cart line joined with catalog display fields
type CartItemDetail struct {
	CartItem
	ProductName string `json:"productName"`
	ProductSlug string `json:"productSlug"`
	UnitPrice   int64  `json:"unitPrice"` // current catalog price for display only
}

// CartResponse is the cart aggregate returned to the client
type CartResponse struct {
	Cart  Cart             `json:"cart"`
	Items []CartItemDetail `json:"items"`
}

// AddCartItemRequest represents the request body for adding a cart line
type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	VariantID int64 `json:"variantId"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartItemRequest represents the request body for changing a line quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
