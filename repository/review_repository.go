package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"sellora-backend/db"
	"sellora-backend/models"
)

// ReviewRepository handles database operations for product reviews. The
// product's rating and reviews_count are recomputed in the same transaction
// as any review change.
type ReviewRepository struct{}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

// Ensure ReviewRepository implements ReviewRepositoryInterface
var _ ReviewRepositoryInterface = (*ReviewRepository)(nil)

func recomputeProductRating(ctx context.Context, tx *sql.Tx, productID int64) error {
	query := `
		UPDATE products
		SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE product_id = $1), 0),
		    reviews_count = (SELECT COUNT(*) FROM reviews WHERE product_id = $1)
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, query, productID); err != nil {
		return fmt.Errorf("failed to recompute product rating: %w", err)
	}
	return nil
}

// Create creates a review; one per customer per product
func (r *ReviewRepository) Create(ctx context.Context, customerID int64, req *models.CreateReviewRequest) (*models.Review, error) {
	log.Printf("📥 Create: Creating review for product_id=%d by customer_id=%d", req.ProductID, customerID)

	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Create: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var productActive bool
	if err := tx.QueryRowContext(ctx, `SELECT is_active FROM products WHERE id = $1`, req.ProductID).Scan(&productActive); err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ Create: Product not found: id=%d", req.ProductID)
			return nil, ErrProductNotFound
		}
		log.Printf("❌ Create: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if !productActive {
		return nil, ErrProductNotFound
	}

	var exists bool
	queryExists := `SELECT EXISTS(SELECT 1 FROM reviews WHERE product_id = $1 AND customer_id = $2)`
	if err := tx.QueryRowContext(ctx, queryExists, req.ProductID, customerID).Scan(&exists); err != nil {
		log.Printf("❌ Create: Error checking existing review: %v", err)
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		log.Printf("❌ Create: Customer %d already reviewed product %d", customerID, req.ProductID)
		return nil, ErrDuplicateReview
	}

	queryInsert := `
		INSERT INTO reviews (product_id, customer_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, customer_id, rating, comment, created_at
	`

	var review models.Review
	var comment sql.NullString
	err = tx.QueryRowContext(ctx, queryInsert,
		req.ProductID,
		customerID,
		req.Rating,
		sql.NullString{String: req.Comment, Valid: req.Comment != ""},
	).Scan(
		&review.ID,
		&review.ProductID,
		&review.CustomerID,
		&review.Rating,
		&comment,
		&review.CreatedAt,
	)
	if err != nil {
		log.Printf("❌ Create: Error creating review: %v", err)
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if comment.Valid {
		review.Comment = comment.String
	}

	if err := recomputeProductRating(ctx, tx, req.ProductID); err != nil {
		log.Printf("❌ Create: %v", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Create: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Create: Successfully created review id=%d", review.ID)
	return &review, nil
}

// ListByProduct retrieves a product's reviews, newest first
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	query := `
		SELECT id, product_id, customer_id, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query, productID)
	if err != nil {
		log.Printf("❌ ListByProduct: Error fetching reviews: %v", err)
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		var comment sql.NullString
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.CustomerID,
			&review.Rating,
			&comment,
			&review.CreatedAt,
		)
		if err != nil {
			log.Printf("❌ ListByProduct: Error scanning review: %v", err)
			continue
		}
		if comment.Valid {
			review.Comment = comment.String
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ ListByProduct: Error iterating reviews: %v", err)
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// Delete removes a review. Customers can only delete their own; staff can
// delete any.
func (r *ReviewRepository) Delete(ctx context.Context, reviewID, customerID int64, isStaff bool) error {
	log.Printf("🗑️ Delete: Deleting review id=%d (customer_id=%d, staff=%v)", reviewID, customerID, isStaff)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Delete: Error starting transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var productID, ownerID int64
	queryReview := `SELECT product_id, customer_id FROM reviews WHERE id = $1`
	if err := tx.QueryRowContext(ctx, queryReview, reviewID).Scan(&productID, &ownerID); err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ Delete: Review not found: id=%d", reviewID)
			return ErrReviewNotFound
		}
		log.Printf("❌ Delete: Error fetching review: %v", err)
		return fmt.Errorf("failed to fetch review: %w", err)
	}

	if !isStaff && ownerID != customerID {
		log.Printf("❌ Delete: Customer %d cannot delete review owned by %d", customerID, ownerID)
		return ErrReviewNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID); err != nil {
		log.Printf("❌ Delete: Error deleting review: %v", err)
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if err := recomputeProductRating(ctx, tx, productID); err != nil {
		log.Printf("❌ Delete: %v", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Delete: Error committing transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Delete: Successfully deleted review id=%d", reviewID)
	return nil
}
