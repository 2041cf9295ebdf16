package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"sellora-backend/db"
	"sellora-backend/models"
)

// CartRepository handles database operations for shopping carts. Guest carts
// are keyed by session_key, customer carts by customer_id; a cart never has
// both. Variant_id is stored as 0 for product-level lines so the
// (cart_id, product_id, variant_id) uniqueness holds.
type CartRepository struct{}

// NewCartRepository creates a new CartRepository
func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

func ownerClause(owner models.CartOwner, argIndex int) (string, interface{}, error) {
	if owner.CustomerID != 0 {
		return fmt.Sprintf("customer_id = $%d", argIndex), owner.CustomerID, nil
	}
	if owner.SessionKey != "" {
		return fmt.Sprintf("session_key = $%d", argIndex), owner.SessionKey, nil
	}
	return "", nil, ErrNoCartOwner
}

// FindCart retrieves the owner's cart without creating one
func (r *CartRepository) FindCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	clause, arg, err := ownerClause(owner, 1)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, customer_id, session_key, created_at, updated_at FROM carts WHERE ` + clause

	var cart models.Cart
	var customerID sql.NullInt64
	var sessionKey sql.NullString
	err = db.DB.QueryRowContext(ctx, query, arg).Scan(
		&cart.ID,
		&customerID,
		&sessionKey,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCartNotFound
		}
		log.Printf("❌ FindCart: Error fetching cart: %v", err)
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	if customerID.Valid {
		cart.CustomerID = customerID.Int64
	}
	if sessionKey.Valid {
		cart.SessionKey = sessionKey.String
	}

	return &cart, nil
}

// GetOrCreate retrieves the owner's cart, creating an empty one if needed
func (r *CartRepository) GetOrCreate(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	cart, err := r.FindCart(ctx, owner)
	if err == nil {
		return cart, nil
	}
	if err != ErrCartNotFound {
		return nil, err
	}

	log.Printf("🛒 GetOrCreate: Creating cart for customer_id=%d session_key=%s", owner.CustomerID, owner.SessionKey)

	query := `
		INSERT INTO carts (customer_id, session_key)
		VALUES ($1, $2)
		RETURNING id, customer_id, session_key, created_at, updated_at
	`

	var created models.Cart
	var customerID sql.NullInt64
	var sessionKey sql.NullString
	err = db.DB.QueryRowContext(ctx, query,
		sql.NullInt64{Int64: owner.CustomerID, Valid: owner.CustomerID != 0},
		sql.NullString{String: owner.SessionKey, Valid: owner.SessionKey != ""},
	).Scan(
		&created.ID,
		&customerID,
		&sessionKey,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		log.Printf("❌ GetOrCreate: Error creating cart: %v", err)
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	if customerID.Valid {
		created.CustomerID = customerID.Int64
	}
	if sessionKey.Valid {
		created.SessionKey = sessionKey.String
	}

	log.Printf("✅ GetOrCreate: Created cart id=%d", created.ID)
	return &created, nil
}

// GetItems retrieves the raw lines of a cart
func (r *CartRepository) GetItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, variant_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, cartID)
	if err != nil {
		log.Printf("❌ GetItems: Error fetching cart items: %v", err)
		return nil, fmt.Errorf("failed to fetch cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.VariantID, &item.Quantity); err != nil {
			log.Printf("❌ GetItems: Error scanning cart item: %v", err)
			continue
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ GetItems: Error iterating cart items: %v", err)
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return items, nil
}

// GetWithItems retrieves the owner's cart joined with catalog display fields.
// A missing cart is returned as an empty aggregate, not an error.
func (r *CartRepository) GetWithItems(ctx context.Context, owner models.CartOwner) (*models.CartResponse, error) {
	cart, err := r.FindCart(ctx, owner)
	if err != nil {
		if err == ErrCartNotFound {
			return &models.CartResponse{Items: []models.CartItemDetail{}}, nil
		}
		return nil, err
	}

	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.variant_id, ci.quantity,
		       p.name, p.slug,
		       COALESCE(v.price, p.price) AS unit_price
		FROM cart_items ci
		INNER JOIN products p ON ci.product_id = p.id
		LEFT JOIN product_variants v ON ci.variant_id = v.id
		WHERE ci.cart_id = $1
		ORDER BY ci.id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, cart.ID)
	if err != nil {
		log.Printf("❌ GetWithItems: Error fetching cart items: %v", err)
		return nil, fmt.Errorf("failed to fetch cart items: %w", err)
	}
	defer rows.Close()

	items := []models.CartItemDetail{}
	for rows.Next() {
		var item models.CartItemDetail
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.VariantID,
			&item.Quantity,
			&item.ProductName,
			&item.ProductSlug,
			&item.UnitPrice,
		)
		if err != nil {
			log.Printf("❌ GetWithItems: Error scanning cart item: %v", err)
			continue
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ GetWithItems: Error iterating cart items: %v", err)
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return &models.CartResponse{Cart: *cart, Items: items}, nil
}

// AddItem adds a line to the owner's cart, merging quantities when the same
// product/variant pair is added again. The cart is created on demand.
func (r *CartRepository) AddItem(ctx context.Context, owner models.CartOwner, req *models.AddCartItemRequest) (*models.CartItem, error) {
	log.Printf("🛒 AddItem: Adding product_id=%d variant_id=%d qty=%d", req.ProductID, req.VariantID, req.Quantity)

	if req.ProductID == 0 && req.VariantID == 0 {
		return nil, ErrInvalidLineItem
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, ErrInvalidLineItem
	}

	cart, err := r.GetOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ AddItem: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	productID := req.ProductID
	variantID := req.VariantID

	if variantID != 0 {
		// A variant line resolves its product from the variant row
		var isActive bool
		queryVariant := `SELECT product_id, is_active FROM product_variants WHERE id = $1`
		if err := tx.QueryRowContext(ctx, queryVariant, variantID).Scan(&productID, &isActive); err != nil {
			if err == sql.ErrNoRows {
				log.Printf("❌ AddItem: Variant not found: id=%d", variantID)
				return nil, ErrVariantNotFound
			}
			log.Printf("❌ AddItem: Error fetching variant: %v", err)
			return nil, fmt.Errorf("failed to fetch variant: %w", err)
		}
		if !isActive {
			log.Printf("❌ AddItem: Variant is not active: id=%d", variantID)
			return nil, ErrVariantNotFound
		}
	}

	var productActive bool
	queryProduct := `SELECT is_active FROM products WHERE id = $1`
	if err := tx.QueryRowContext(ctx, queryProduct, productID).Scan(&productActive); err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ AddItem: Product not found: id=%d", productID)
			return nil, ErrProductNotFound
		}
		log.Printf("❌ AddItem: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if !productActive {
		log.Printf("❌ AddItem: Product is not active: id=%d", productID)
		return nil, ErrProductNotFound
	}

	queryUpsert := `
		INSERT INTO cart_items (cart_id, product_id, variant_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id, variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, cart_id, product_id, variant_id, quantity
	`

	var item models.CartItem
	err = tx.QueryRowContext(ctx, queryUpsert, cart.ID, productID, variantID, qty).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.VariantID,
		&item.Quantity,
	)
	if err != nil {
		log.Printf("❌ AddItem: Error upserting cart item: %v", err)
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cart.ID); err != nil {
		log.Printf("❌ AddItem: Error touching cart: %v", err)
		return nil, fmt.Errorf("failed to touch cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ AddItem: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ AddItem: Cart item id=%d now has quantity=%d", item.ID, item.Quantity)
	return &item, nil
}

// UpdateItemQuantity sets a cart line's quantity; zero removes the line
func (r *CartRepository) UpdateItemQuantity(ctx context.Context, owner models.CartOwner, itemID int64, quantity int) (*models.CartItem, error) {
	log.Printf("🛒 UpdateItemQuantity: Setting item_id=%d quantity=%d", itemID, quantity)

	if quantity < 0 {
		return nil, ErrInvalidLineItem
	}

	cart, err := r.FindCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		if err := r.RemoveItem(ctx, owner, itemID); err != nil {
			return nil, err
		}
		return &models.CartItem{ID: itemID, CartID: cart.ID}, nil
	}

	query := `
		UPDATE cart_items
		SET quantity = $1
		WHERE id = $2 AND cart_id = $3
		RETURNING id, cart_id, product_id, variant_id, quantity
	`

	var item models.CartItem
	err = db.DB.QueryRowContext(ctx, query, quantity, itemID, cart.ID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.VariantID,
		&item.Quantity,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ UpdateItemQuantity: Cart item not found: id=%d", itemID)
			return nil, ErrCartItemNotFound
		}
		log.Printf("❌ UpdateItemQuantity: Error updating cart item: %v", err)
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	log.Printf("✅ UpdateItemQuantity: Cart item id=%d quantity=%d", item.ID, item.Quantity)
	return &item, nil
}

// RemoveItem deletes a line from the owner's cart
func (r *CartRepository) RemoveItem(ctx context.Context, owner models.CartOwner, itemID int64) error {
	log.Printf("🗑️ RemoveItem: Removing cart item id=%d", itemID)

	cart, err := r.FindCart(ctx, owner)
	if err != nil {
		return err
	}

	query := `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`

	result, err := db.DB.ExecContext(ctx, query, itemID, cart.ID)
	if err != nil {
		log.Printf("❌ RemoveItem: Error deleting cart item: %v", err)
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Printf("❌ RemoveItem: Cart item not found: id=%d", itemID)
		return ErrCartItemNotFound
	}

	log.Printf("✅ RemoveItem: Successfully removed cart item id=%d", itemID)
	return nil
}

// Clear removes all lines from the owner's cart. Clearing a missing cart is
// a no-op.
func (r *CartRepository) Clear(ctx context.Context, owner models.CartOwner) error {
	cart, err := r.FindCart(ctx, owner)
	if err != nil {
		if err == ErrCartNotFound {
			return nil
		}
		return err
	}

	if _, err := db.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		log.Printf("❌ Clear: Error clearing cart: %v", err)
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	log.Printf("✅ Clear: Cleared cart id=%d", cart.ID)
	return nil
}
