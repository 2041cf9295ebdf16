package models

// Review represents a product review; one per customer per product
type Review struct {
	ID         int64  `json:"id"`
	ProductID  int64  `json:"productId"`
	CustomerID int64  `json:"customerId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// CreateReviewRequest represents the request body for creating a review
type CreateReviewRequest struct {
	ProductID int64  `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ReviewListResponse wraps a review list
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
}
