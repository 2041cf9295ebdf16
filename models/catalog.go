package models

// Category represents a product category; categories can nest via ParentID
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID int64  `json:"parentId,omitempty"`
}

// Brand represents a product brand
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ParentID int64  `json:"parentId"`
}

// CreateBrandRequest represents the request body for creating a brand
type CreateBrandRequest struct {
	Name string `json:"name"`
}

// CategoryListResponse wraps a category list
type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}

// BrandListResponse wraps a brand list
type BrandListResponse struct {
	Brands []Brand `json:"brands"`
}
