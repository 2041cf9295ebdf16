package repository

import (
	"context"

	"sellora-backend/models"
)

// CatalogLookup is the read-side catalog contract the order materializer
// consumes: products and variants by id, with active flags and price fields.
type CatalogLookup interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	GetVariant(ctx context.Context, id int64) (*models.ProductVariant, error)
	GetActiveVariants(ctx context.Context, productID int64) ([]models.ProductVariant, error)
}

// CartStore reads cart contents for a given owner. Clearing happens inside
// the order store's transaction, not here.
type CartStore interface {
	FindCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error)
	GetItems(ctx context.Context, cartID int64) ([]models.CartItem, error)
}

// AddressStore reads address book entries for snapshot copying
type AddressStore interface {
	GetByID(ctx context.Context, customerID, addressID int64) (*models.Address, error)
}

// OrderStore persists a fully-priced order draft atomically and serves the
// aggregate back.
type OrderStore interface {
	CreateMaterialized(ctx context.Context, draft *models.OrderDraft) (*models.OrderDetail, error)
	GetByID(ctx context.Context, id int64) (*models.OrderDetail, error)
}

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	CatalogLookup
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error)
	GetImagePath(ctx context.Context, id int64) (string, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
}

// CartRepositoryInterface defines the contract for cart repository operations
type CartRepositoryInterface interface {
	CartStore
	GetOrCreate(ctx context.Context, owner models.CartOwner) (*models.Cart, error)
	GetWithItems(ctx context.Context, owner models.CartOwner) (*models.CartResponse, error)
	AddItem(ctx context.Context, owner models.CartOwner, req *models.AddCartItemRequest) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, owner models.CartOwner, itemID int64, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, owner models.CartOwner, itemID int64) error
	Clear(ctx context.Context, owner models.CartOwner) error
}

// AddressRepositoryInterface defines the contract for address repository operations
type AddressRepositoryInterface interface {
	AddressStore
	Create(ctx context.Context, customerID int64, req *models.CreateAddressRequest) (*models.Address, error)
	List(ctx context.Context, customerID int64) ([]models.Address, error)
	Update(ctx context.Context, customerID, addressID int64, req *models.CreateAddressRequest) (*models.Address, error)
	Delete(ctx context.Context, customerID, addressID int64) error
	SetDefault(ctx context.Context, customerID, addressID int64) error
}

// OrderRepositoryInterface defines the contract for order repository operations
type OrderRepositoryInterface interface {
	OrderStore
	List(ctx context.Context, customerID int64) ([]models.OrderListItem, error)
	UpdateStatus(ctx context.Context, orderID int64, statusCode string) (*models.OrderDetail, error)
	MarkPaid(ctx context.Context, orderID int64, transactionID, method string) (*models.OrderDetail, error)
	AddItem(ctx context.Context, orderID int64, req *models.AddOrderItemRequest) (*models.OrderDetail, error)
	UpdateItemQuantity(ctx context.Context, orderID, itemID int64, quantity int) (*models.OrderDetail, error)
	RemoveItem(ctx context.Context, orderID, itemID int64) (*models.OrderDetail, error)
}

// CustomerRepositoryInterface defines the contract for account operations
type CustomerRepositoryInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest, passwordHash string) (*models.Customer, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Customer, error)
	UpdateProfile(ctx context.Context, customerID int64, req *models.UpdateCustomerRequest) (*models.Customer, error)
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

// ReviewRepositoryInterface defines the contract for review operations
type ReviewRepositoryInterface interface {
	Create(ctx context.Context, customerID int64, req *models.CreateReviewRequest) (*models.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Review, error)
	Delete(ctx context.Context, reviewID, customerID int64, isStaff bool) error
}
