package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"sellora-backend/db"
	"sellora-backend/models"
	"sellora-backend/pricing"
)

// Default display metadata for lifecycle states created on demand
var statusDisplayNames = map[string]string{
	models.StatusPending:   "Pending",
	models.StatusConfirmed: "Confirmed",
	models.StatusShipped:   "Shipped",
	models.StatusDelivered: "Delivered",
	models.StatusCancelled: "Cancelled",
}

// OrderRepository handles database operations for orders. Order items are
// immutable price snapshots; total_amount is maintained inside the same
// transaction as any item mutation.
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// getOrCreateStatus resolves a status code to its reference row id, creating
// the row on first use for known lifecycle codes.
func getOrCreateStatus(ctx context.Context, tx *sql.Tx, statusCode string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM order_statuses WHERE status_code = $1`, statusCode).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to fetch order status: %w", err)
	}

	displayName, known := statusDisplayNames[statusCode]
	if !known {
		return 0, ErrStatusNotFound
	}

	queryInsert := `
		INSERT INTO order_statuses (status_code, display_name)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, queryInsert, statusCode, displayName).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create order status: %w", err)
	}

	log.Printf("➕ getOrCreateStatus: Created order status %s (id=%d)", statusCode, id)
	return id, nil
}

// CreateMaterialized persists a fully-priced order draft in one transaction:
// the pending status, a payment placeholder, the order row with its shipping
// snapshot, all items, and the cart cleanup when the draft came from a cart.
func (r *OrderRepository) CreateMaterialized(ctx context.Context, draft *models.OrderDraft) (*models.OrderDetail, error) {
	log.Printf("📦 CreateMaterialized: Creating order for customer_id=%d with %d items, total=%d",
		draft.CustomerID, len(draft.Items), draft.TotalAmount)

	if len(draft.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ CreateMaterialized: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	statusID, err := getOrCreateStatus(ctx, tx, models.StatusPending)
	if err != nil {
		log.Printf("❌ CreateMaterialized: Error resolving pending status: %v", err)
		return nil, err
	}

	// Payment starts as an unpaid cash-on-delivery placeholder
	var paymentInfoID int64
	queryPayment := `
		INSERT INTO payment_info (is_paid, payment_method)
		VALUES (false, 'cod')
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, queryPayment).Scan(&paymentInfoID); err != nil {
		log.Printf("❌ CreateMaterialized: Error creating payment placeholder: %v", err)
		return nil, fmt.Errorf("failed to create payment placeholder: %w", err)
	}

	queryOrder := `
		INSERT INTO orders (customer_id, status_id, payment_info_id, full_name, phone, address, division, district, sub_district, email, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var orderID int64
	err = tx.QueryRowContext(ctx, queryOrder,
		sql.NullInt64{Int64: draft.CustomerID, Valid: draft.CustomerID != 0},
		statusID,
		paymentInfoID,
		draft.Shipping.FullName,
		draft.Shipping.Phone,
		draft.Shipping.Address,
		draft.Shipping.Division,
		draft.Shipping.District,
		sql.NullString{String: draft.Shipping.SubDistrict, Valid: draft.Shipping.SubDistrict != ""},
		draft.Shipping.Email,
		draft.TotalAmount,
	).Scan(&orderID)
	if err != nil {
		log.Printf("❌ CreateMaterialized: Error creating order: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	queryItem := `
		INSERT INTO order_items (order_id, product_id, variant_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, item := range draft.Items {
		if _, err := tx.ExecContext(ctx, queryItem, orderID, item.ProductID, item.VariantID, item.Quantity, item.Price); err != nil {
			log.Printf("❌ CreateMaterialized: Error creating order item: %v", err)
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	// Empty the source cart in the same transaction so a failed order leaves
	// the cart untouched.
	if draft.ClearCartID != 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, draft.ClearCartID); err != nil {
			log.Printf("❌ CreateMaterialized: Error clearing cart: %v", err)
			return nil, fmt.Errorf("failed to clear cart: %w", err)
		}
		log.Printf("🗑️ CreateMaterialized: Cleared cart id=%d", draft.ClearCartID)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ CreateMaterialized: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ CreateMaterialized: Successfully created order id=%d total=%d", orderID, draft.TotalAmount)
	return r.GetByID(ctx, orderID)
}

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	var o models.Order
	var customerID sql.NullInt64
	var subDistrict, transactionID, paymentDate, statusDescription sql.NullString
	err := row.Scan(
		&o.ID,
		&customerID,
		&o.Shipping.FullName,
		&o.Shipping.Phone,
		&o.Shipping.Address,
		&o.Shipping.Division,
		&o.Shipping.District,
		&subDistrict,
		&o.Shipping.Email,
		&o.TotalAmount,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.Status.StatusCode,
		&o.Status.DisplayName,
		&statusDescription,
		&transactionID,
		&o.Payment.IsPaid,
		&o.Payment.PaymentMethod,
		&paymentDate,
	)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		o.CustomerID = customerID.Int64
	}
	if subDistrict.Valid {
		o.Shipping.SubDistrict = subDistrict.String
	}
	if statusDescription.Valid {
		o.Status.Description = statusDescription.String
	}
	if transactionID.Valid {
		o.Payment.TransactionID = transactionID.String
	}
	if paymentDate.Valid {
		o.Payment.PaymentDate = paymentDate.String
	}
	return &o, nil
}

const orderSelect = `
	SELECT o.id, o.customer_id, o.full_name, o.phone, o.address, o.division, o.district, o.sub_district, o.email,
	       o.total_amount, o.created_at, o.updated_at,
	       s.status_code, s.display_name, s.description,
	       p.transaction_id, p.is_paid, p.payment_method, p.payment_date
	FROM orders o
	INNER JOIN order_statuses s ON o.status_id = s.id
	INNER JOIN payment_info p ON o.payment_info_id = p.id
`

// GetByID retrieves an order aggregate: status, payment, and items with
// product names for display
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	order, err := scanOrder(db.DB.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetByID: Order not found: id=%d", id)
			return nil, ErrOrderNotFound
		}
		log.Printf("❌ GetByID: Error fetching order: %v", err)
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	queryItems := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.variant_id, oi.quantity, oi.price, p.name
		FROM order_items oi
		INNER JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id ASC
	`

	rows, err := db.DB.QueryContext(ctx, queryItems, id)
	if err != nil {
		log.Printf("❌ GetByID: Error fetching order items: %v", err)
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.VariantID,
			&item.Quantity,
			&item.Price,
			&item.ProductName,
		)
		if err != nil {
			log.Printf("❌ GetByID: Error scanning order item: %v", err)
			continue
		}
		item.Subtotal = int64(item.Quantity) * item.Price
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ GetByID: Error iterating order items: %v", err)
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return &models.OrderDetail{Order: *order, Items: items}, nil
}

// List retrieves a customer's orders, newest first. A zero customerID lists
// all orders (staff view).
func (r *OrderRepository) List(ctx context.Context, customerID int64) ([]models.OrderListItem, error) {
	log.Printf("📦 List: Fetching orders for customer_id=%d", customerID)

	query := `
		SELECT o.id, s.status_code, o.total_amount, p.is_paid, COUNT(oi.id) AS item_count, o.created_at
		FROM orders o
		INNER JOIN order_statuses s ON o.status_id = s.id
		INNER JOIN payment_info p ON o.payment_info_id = p.id
		LEFT JOIN order_items oi ON oi.order_id = o.id
	`
	var args []interface{}
	if customerID != 0 {
		query += ` WHERE o.customer_id = $1`
		args = append(args, customerID)
	}
	query += `
		GROUP BY o.id, s.status_code, o.total_amount, p.is_paid, o.created_at
		ORDER BY o.created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ List: Error fetching orders: %v", err)
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderListItem
	for rows.Next() {
		var order models.OrderListItem
		err := rows.Scan(
			&order.ID,
			&order.Status,
			&order.TotalAmount,
			&order.IsPaid,
			&order.ItemCount,
			&order.CreatedAt,
		)
		if err != nil {
			log.Printf("❌ List: Error scanning order: %v", err)
			continue
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ List: Error iterating orders: %v", err)
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	log.Printf("✅ List: Successfully fetched %d orders", len(orders))
	return orders, nil
}

// UpdateStatus moves an order to a different lifecycle state
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, statusCode string) (*models.OrderDetail, error) {
	log.Printf("🔄 UpdateStatus: Setting order id=%d status=%s", orderID, statusCode)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ UpdateStatus: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	statusID, err := getOrCreateStatus(ctx, tx, statusCode)
	if err != nil {
		log.Printf("❌ UpdateStatus: Error resolving status %s: %v", statusCode, err)
		return nil, err
	}

	query := `UPDATE orders SET status_id = $1, updated_at = NOW() WHERE id = $2`
	result, err := tx.ExecContext(ctx, query, statusID, orderID)
	if err != nil {
		log.Printf("❌ UpdateStatus: Error updating order: %v", err)
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Printf("❌ UpdateStatus: Order not found: id=%d", orderID)
		return nil, ErrOrderNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ UpdateStatus: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ UpdateStatus: Order id=%d is now %s", orderID, statusCode)
	return r.GetByID(ctx, orderID)
}

// MarkPaid records a payment against an order. A missing transaction id is
// replaced with a generated one.
func (r *OrderRepository) MarkPaid(ctx context.Context, orderID int64, transactionID, method string) (*models.OrderDetail, error) {
	log.Printf("💰 MarkPaid: Recording payment for order id=%d", orderID)

	if transactionID == "" {
		transactionID = uuid.NewString()
	}
	if method == "" {
		method = "cod"
	}

	query := `
		UPDATE payment_info
		SET transaction_id = $1, payment_method = $2, is_paid = true, payment_date = NOW()
		WHERE id = (SELECT payment_info_id FROM orders WHERE id = $3)
	`

	result, err := db.DB.ExecContext(ctx, query, transactionID, method, orderID)
	if err != nil {
		log.Printf("❌ MarkPaid: Error recording payment: %v", err)
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Printf("❌ MarkPaid: Order not found: id=%d", orderID)
		return nil, ErrOrderNotFound
	}

	log.Printf("✅ MarkPaid: Order id=%d paid via %s (txn=%s)", orderID, method, transactionID)
	return r.GetByID(ctx, orderID)
}

// lockOrder locks the order row for an item mutation and returns whether the
// order's customer gets wholesale pricing.
func lockOrder(ctx context.Context, tx *sql.Tx, orderID int64) (bool, error) {
	var customerID sql.NullInt64
	query := `SELECT customer_id FROM orders WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, query, orderID).Scan(&customerID); err != nil {
		if err == sql.ErrNoRows {
			return false, ErrOrderNotFound
		}
		return false, fmt.Errorf("failed to fetch order: %w", err)
	}

	if !customerID.Valid {
		return false, nil
	}

	var customerType string
	if err := tx.QueryRowContext(ctx, `SELECT customer_type FROM customers WHERE id = $1`, customerID.Int64).Scan(&customerType); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch customer: %w", err)
	}

	return customerType == models.CustomerTypeWholesale, nil
}

// recomputeTotal recalculates an order's total from its items inside the
// mutation's transaction
func recomputeTotal(ctx context.Context, tx *sql.Tx, orderID int64) error {
	query := `
		UPDATE orders
		SET total_amount = COALESCE((SELECT SUM(quantity * price) FROM order_items WHERE order_id = $1), 0),
		    updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, query, orderID); err != nil {
		return fmt.Errorf("failed to recompute order total: %w", err)
	}
	return nil
}

// activeVariants loads a product's active variants inside a mutation's
// transaction
func activeVariants(ctx context.Context, tx *sql.Tx, productID int64) ([]models.ProductVariant, error) {
	query := `
		SELECT id, product_id, price, wholesale_price, discount_price, is_active
		FROM product_variants
		WHERE product_id = $1 AND is_active = true
		ORDER BY id ASC
	`
	rows, err := tx.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product variants: %w", err)
	}
	defer rows.Close()

	var variants []models.ProductVariant
	for rows.Next() {
		var v models.ProductVariant
		var discountPrice sql.NullInt64
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Price, &v.WholesalePrice, &discountPrice, &v.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan product variant: %w", err)
		}
		if discountPrice.Valid {
			v.DiscountPrice = discountPrice.Int64
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product variants: %w", err)
	}
	return variants, nil
}

// AddItem adds a line to an existing order at the price the order's customer
// would pay today, then recomputes the total in the same transaction.
func (r *OrderRepository) AddItem(ctx context.Context, orderID int64, req *models.AddOrderItemRequest) (*models.OrderDetail, error) {
	log.Printf("➕ AddItem: Adding product_id=%d variant_id=%d qty=%d to order_id=%d",
		req.ProductID, req.VariantID, req.Quantity, orderID)

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

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ AddItem: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	isWholesaler, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		log.Printf("❌ AddItem: Error locking order: %v", err)
		return nil, err
	}

	productID := req.ProductID
	variantID := req.VariantID
	var unitPrice int64

	if variantID != 0 {
		var v models.ProductVariant
		var discountPrice sql.NullInt64
		queryVariant := `SELECT product_id, price, wholesale_price, discount_price, is_active FROM product_variants WHERE id = $1`
		if err := tx.QueryRowContext(ctx, queryVariant, variantID).Scan(&v.ProductID, &v.Price, &v.WholesalePrice, &discountPrice, &v.IsActive); err != nil {
			if err == sql.ErrNoRows {
				return nil, ErrVariantNotFound
			}
			log.Printf("❌ AddItem: Error fetching variant: %v", err)
			return nil, fmt.Errorf("failed to fetch variant: %w", err)
		}
		if !v.IsActive {
			return nil, ErrVariantNotFound
		}
		if discountPrice.Valid {
			v.DiscountPrice = discountPrice.Int64
		}
		productID = v.ProductID
		unitPrice = pricing.ResolveUnitPrice(isWholesaler, &v)
	} else {
		var p models.Product
		var discountPrice sql.NullInt64
		queryProduct := `SELECT price, wholesale_price, discount_price, is_active FROM products WHERE id = $1`
		if err := tx.QueryRowContext(ctx, queryProduct, productID).Scan(&p.Price, &p.WholesalePrice, &discountPrice, &p.IsActive); err != nil {
			if err == sql.ErrNoRows {
				return nil, ErrProductNotFound
			}
			log.Printf("❌ AddItem: Error fetching product: %v", err)
			return nil, fmt.Errorf("failed to fetch product: %w", err)
		}
		if !p.IsActive {
			return nil, ErrProductNotFound
		}
		if discountPrice.Valid {
			p.DiscountPrice = discountPrice.Int64
		}

		// A product with active variants sells through its cheapest one, same
		// as at checkout
		variants, err := activeVariants(ctx, tx, productID)
		if err != nil {
			log.Printf("❌ AddItem: Error fetching variants: %v", err)
			return nil, err
		}
		if selected := pricing.DefaultVariant(variants); selected != nil {
			log.Printf("⏭️ AddItem: Auto-selected variant id=%d for product_id=%d", selected.ID, productID)
			variantID = selected.ID
			unitPrice = pricing.ResolveUnitPrice(isWholesaler, selected)
		} else {
			unitPrice = pricing.ResolveUnitPrice(isWholesaler, &p)
		}
	}

	queryUpsert := `
		INSERT INTO order_items (order_id, product_id, variant_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id, product_id, variant_id)
		DO UPDATE SET quantity = order_items.quantity + EXCLUDED.quantity
	`
	if _, err := tx.ExecContext(ctx, queryUpsert, orderID, productID, variantID, qty, unitPrice); err != nil {
		log.Printf("❌ AddItem: Error upserting order item: %v", err)
		return nil, fmt.Errorf("failed to upsert order item: %w", err)
	}

	if err := recomputeTotal(ctx, tx, orderID); err != nil {
		log.Printf("❌ AddItem: %v", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ AddItem: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ AddItem: Added line to order id=%d at unit price=%d", orderID, unitPrice)
	return r.GetByID(ctx, orderID)
}

// UpdateItemQuantity changes a line's quantity, keeping its snapshot price,
// and recomputes the total in the same transaction
func (r *OrderRepository) UpdateItemQuantity(ctx context.Context, orderID, itemID int64, quantity int) (*models.OrderDetail, error) {
	log.Printf("🔄 UpdateItemQuantity: Setting order_id=%d item_id=%d quantity=%d", orderID, itemID, quantity)

	if quantity <= 0 {
		return nil, ErrInvalidLineItem
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ UpdateItemQuantity: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := lockOrder(ctx, tx, orderID); err != nil {
		log.Printf("❌ UpdateItemQuantity: Error locking order: %v", err)
		return nil, err
	}

	query := `UPDATE order_items SET quantity = $1 WHERE id = $2 AND order_id = $3`
	result, err := tx.ExecContext(ctx, query, quantity, itemID, orderID)
	if err != nil {
		log.Printf("❌ UpdateItemQuantity: Error updating order item: %v", err)
		return nil, fmt.Errorf("failed to update order item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Printf("❌ UpdateItemQuantity: Order item not found: id=%d", itemID)
		return nil, ErrOrderItemNotFound
	}

	if err := recomputeTotal(ctx, tx, orderID); err != nil {
		log.Printf("❌ UpdateItemQuantity: %v", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ UpdateItemQuantity: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ UpdateItemQuantity: Order id=%d item id=%d quantity=%d", orderID, itemID, quantity)
	return r.GetByID(ctx, orderID)
}

// RemoveItem deletes a line from an order and recomputes the total in the
// same transaction
func (r *OrderRepository) RemoveItem(ctx context.Context, orderID, itemID int64) (*models.OrderDetail, error) {
	log.Printf("🗑️ RemoveItem: Removing item_id=%d from order_id=%d", itemID, orderID)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ RemoveItem: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := lockOrder(ctx, tx, orderID); err != nil {
		log.Printf("❌ RemoveItem: Error locking order: %v", err)
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE id = $1 AND order_id = $2`, itemID, orderID)
	if err != nil {
		log.Printf("❌ RemoveItem: Error deleting order item: %v", err)
		return nil, fmt.Errorf("failed to delete order item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Printf("❌ RemoveItem: Order item not found: id=%d", itemID)
		return nil, ErrOrderItemNotFound
	}

	if err := recomputeTotal(ctx, tx, orderID); err != nil {
		log.Printf("❌ RemoveItem: %v", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ RemoveItem: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ RemoveItem: Removed item id=%d from order id=%d", itemID, orderID)
	return r.GetByID(ctx, orderID)
}
