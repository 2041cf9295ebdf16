package models

// Product represents a catalog product.
// All money fields are integer minor units (cents). A zero WholesalePrice
// or DiscountPrice means "not set".
type Product struct {
	ID               int64   `json:"id"`
	ProductID        string  `json:"productId"` // public id, e.g. SS123456
	SKU              string  `json:"sku"`
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	CategoryID       int64   `json:"categoryId"`
	BrandID          int64   `json:"brandId"`
	Price            int64   `json:"price"`
	WholesalePrice   int64   `json:"wholesalePrice"`
	DiscountPrice    int64   `json:"discountPrice,omitempty"`
	StockQuantity    int     `json:"stockQuantity"`
	IsActive         bool    `json:"isActive"`
	IsFeatured       bool    `json:"isFeatured"`
	ImagePath        string  `json:"-"`
	ShortDescription string  `json:"shortDescription,omitempty"`
	Description      string  `json:"description,omitempty"`
	Rating           float64 `json:"rating"`
	ReviewsCount     int     `json:"reviewsCount"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`

	Variants []ProductVariant `json:"variants,omitempty"`
}

// BasePrice implements pricing.Priced
func (p *Product) BasePrice() int64 { return p.Price }

// WholesaleUnitPrice implements pricing.Priced
func (p *Product) WholesaleUnitPrice() int64 { return p.WholesalePrice }

// DiscountUnitPrice implements pricing.Priced
func (p *Product) DiscountUnitPrice() int64 { return p.DiscountPrice }

// ProductVariant represents a concrete purchasable variation of a product.
// The (product, ram, storage, color) tuple is unique.
type ProductVariant struct {
	ID             int64  `json:"id"`
	ProductID      int64  `json:"productId"`
	SKU            string `json:"sku"`
	RAM            string `json:"ram,omitempty"`
	Storage        string `json:"storage,omitempty"`
	Color          string `json:"color,omitempty"`
	Price          int64  `json:"price"`
	WholesalePrice int64  `json:"wholesalePrice"`
	DiscountPrice  int64  `json:"discountPrice,omitempty"`
	StockQuantity  int    `json:"stockQuantity"`
	IsActive       bool   `json:"isActive"`
}

// BasePrice implements pricing.Priced
func (v *ProductVariant) BasePrice() int64 { return v.Price }

// WholesaleUnitPrice implements pricing.Priced
func (v *ProductVariant) WholesaleUnitPrice() int64 { return v.WholesalePrice }

// DiscountUnitPrice implements pricing.Priced
func (v *ProductVariant) DiscountUnitPrice() int64 { return v.DiscountPrice }

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name             string               `json:"name"`
	SKU              string               `json:"sku"`
	CategoryID       int64                `json:"categoryId"`
	BrandID          int64                `json:"brandId"`
	Price            int64                `json:"price"`
	WholesalePrice   int64                `json:"wholesalePrice"`
	DiscountPrice    int64                `json:"discountPrice"`
	StockQuantity    int                  `json:"stockQuantity"`
	IsFeatured       bool                 `json:"isFeatured"`
	ImagePath        string               `json:"imagePath"`
	ShortDescription string               `json:"shortDescription"`
	Description      string               `json:"description"`
	Variants         []CreateVariantInput `json:"variants"`
}

// CreateVariantInput represents one variant in a product creation request
type CreateVariantInput struct {
	SKU            string `json:"sku"`
	RAM            string `json:"ram"`
	Storage        string `json:"storage"`
	Color          string `json:"color"`
	Price          int64  `json:"price"`
	WholesalePrice int64  `json:"wholesalePrice"`
	DiscountPrice  int64  `json:"discountPrice"`
	StockQuantity  int    `json:"stockQuantity"`
}

// ProductFilter holds the supported product list filters
type ProductFilter struct {
	CategoryID int64
	BrandID    int64
	Featured   *bool
	Active     *bool
}

// ProductListResponse wraps a product list
type ProductListResponse struct {
	Products []Product `json:"products"`
}
