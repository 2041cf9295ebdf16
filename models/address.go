package models

// Address type constants
const (
	AddressTypeHome   = "Home"
	AddressTypeOffice = "Office"
)

// Address represents a delivery address in a customer's address book
type Address struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customerId"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Division    string `json:"division"`
	District    string `json:"district"`
	SubDistrict string `json:"subDistrict,omitempty"`
	AddressType string `json:"addressType"`
	IsDefault   bool   `json:"isDefault"`
}

// CreateAddressRequest represents the request body for creating an address
type CreateAddressRequest struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Division    string `json:"division"`
	District    string `json:"district"`
	SubDistrict string `json:"subDistrict"`
	AddressType string `json:"addressType"`
	IsDefault   bool   `json:"isDefault"`
}
