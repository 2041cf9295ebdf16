package models

// Customer type constants
const (
	CustomerTypeRetail    = "retail"
	CustomerTypeWholesale = "wholesale"
)

// User represents a login account
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsStaff      bool   `json:"isStaff"`
	CreatedAt    string `json:"createdAt"`
}

// Customer represents a customer profile linked one-to-one to a user
type Customer struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	CustomerType string `json:"customerType"`
	CreatedAt    string `json:"createdAt"`
}

// IsWholesaler reports whether the customer gets wholesale pricing
func (c *Customer) IsWholesaler() bool {
	return c.CustomerType == CustomerTypeWholesale
}

// AuthContext is the identity attached to an authenticated request
type AuthContext struct {
	UserID       int64
	CustomerID   int64
	IsStaff      bool
	IsWholesaler bool
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token    string    `json:"token"`
	Customer *Customer `json:"customer"`
}

// ChangePasswordRequest represents the request body for a password change
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateCustomerRequest represents the request body for a profile update
type UpdateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
