package models

// Order status codes persisted in the order_statuses reference table
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderStatus is a reference-table row for an order lifecycle state
type OrderStatus struct {
	ID          int64  `json:"-"`
	StatusCode  string `json:"statusCode"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
}

// PaymentInfo stores payment transaction details, one-to-one with an order
type PaymentInfo struct {
	ID            int64  `json:"-"`
	TransactionID string `json:"transactionId,omitempty"`
	IsPaid        bool   `json:"isPaid"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentDate   string `json:"paymentDate,omitempty"`
}

// ShippingSnapshot holds the contact/address fields copied onto an order at
// creation time. It is immune to later changes to the source address.
type ShippingSnapshot struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Division    string `json:"division"`
	District    string `json:"district"`
	SubDistrict string `json:"subDistrict,omitempty"`
	Email       string `json:"email"`
}

// Order represents a placed order. TotalAmount always equals the sum of the
// item subtotals.
type Order struct {
	ID          int64            `json:"id"`
	CustomerID  int64            `json:"customerId,omitempty"` // 0 for guest orders
	Shipping    ShippingSnapshot `json:"shipping"`
	TotalAmount int64            `json:"totalAmount"`
	Status      OrderStatus      `json:"status"`
	Payment     PaymentInfo      `json:"payment"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}

// OrderItem is an immutable snapshot of one purchased line. Price is the
// unit price actually charged, never recomputed from the live catalog.
type OrderItem struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"orderId"`
	ProductID   int64  `json:"productId"`
	VariantID   int64  `json:"variantId,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
	Subtotal    int64  `json:"subtotal"`
	ProductName string `json:"productName,omitempty"`
}

// OrderDetail is the order aggregate returned to the client
type OrderDetail struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// OrderListItem is a row in an order listing
type OrderListItem struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
	IsPaid      bool   `json:"isPaid"`
	ItemCount   int    `json:"itemCount"`
	CreatedAt   string `json:"createdAt"`
}

// OrderListResponse wraps an order listing
type OrderListResponse struct {
	Orders []OrderListItem `json:"orders"`
}

// OrderLineInput is one proposed purchase line. Exactly one of ProductID or
// VariantID must be set; a missing quantity defaults to 1.
type OrderLineInput struct {
	ProductID int64 `json:"productId"`
	VariantID int64 `json:"variantId"`
	Quantity  int   `json:"quantity"`
}

// PlaceOrderRequest represents the request body for order creation. When
// Items is empty the caller's cart is used as the source. Guest checkouts
// must supply the shipping snapshot fields; authenticated customers may
// reference an address book entry instead, with explicit fields winning
// over the referenced address.
type PlaceOrderRequest struct {
	Items       []OrderLineInput `json:"items"`
	AddressID   int64            `json:"addressId"`
	FullName    string           `json:"fullName"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	Division    string           `json:"division"`
	District    string           `json:"district"`
	SubDistrict string           `json:"subDistrict"`
	Email       string           `json:"email"`
}

// OrderItemDraft is a fully-resolved, priced line ready to persist
type OrderItemDraft struct {
	ProductID int64
	VariantID int64
	Quantity  int
	Price     int64
}

// OrderDraft is the materializer's output: everything the order store needs
// to persist the aggregate in one transaction. ClearCartID, when non-zero,
// is the cart whose items must be deleted in the same transaction.
type OrderDraft struct {
	CustomerID  int64
	Shipping    ShippingSnapshot
	Items       []OrderItemDraft
	TotalAmount int64
	ClearCartID int64
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// PayOrderRequest represents the request body for recording a payment
type PayOrderRequest struct {
	TransactionID string `json:"transactionId"`
	PaymentMethod string `json:"paymentMethod"`
}

// AddOrderItemRequest represents the request body for an administrative
// line addition to an existing order
type AddOrderItemRequest struct {
	ProductID int64 `json:"productId"`
	VariantID int64 `json:"variantId"`
	Quantity  int   `json:"quantity"`
}

// UpdateOrderItemRequest represents the request body for an administrative
// line quantity change
type UpdateOrderItemRequest struct {
	Quantity int `json:"quantity"`
}
