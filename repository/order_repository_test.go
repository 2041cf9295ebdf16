package repository

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellora-backend/db"
	"sellora-backend/models"
)

// setupOrderDB connects to the database named by TEST_DATABASE_URL and
// rebuilds the schema. Tests that need Postgres skip when the variable is
// unset.
func setupOrderDB(t *testing.T) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	conn, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	require.NoError(t, conn.Ping())

	schema, err := os.ReadFile(filepath.Join("..", "db", "schema.sql"))
	require.NoError(t, err)
	for _, stmt := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := conn.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	prev := db.DB
	db.DB = conn
	t.Cleanup(func() {
		db.DB = prev
		conn.Close()
	})
}

func seedTestProduct(t *testing.T, code string, price, wholesalePrice, discountPrice int64) int64 {
	t.Helper()

	var id int64
	err := db.DB.QueryRow(`
		INSERT INTO products (product_id, sku, name, slug, price, wholesale_price, discount_price)
		VALUES ($1, $1, $1, $1, $2, $3, NULLIF($4, 0))
		RETURNING id
	`, code, price, wholesalePrice, discountPrice).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedTestVariant(t *testing.T, productID int64, sku string, price int64, active bool) int64 {
	t.Helper()

	var id int64
	err := db.DB.QueryRow(`
		INSERT INTO product_variants (product_id, sku, color, price, is_active)
		VALUES ($1, $2, $2, $3, $4)
		RETURNING id
	`, productID, sku, price, active).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedTestCustomer(t *testing.T, email, customerType string) int64 {
	t.Helper()

	var userID int64
	err := db.DB.QueryRow(`
		INSERT INTO users (email, password_hash) VALUES ($1, 'x') RETURNING id
	`, email).Scan(&userID)
	require.NoError(t, err)

	var customerID int64
	err = db.DB.QueryRow(`
		INSERT INTO customers (user_id, name, email, customer_type)
		VALUES ($1, $2, $2, $3)
		RETURNING id
	`, userID, email, customerType).Scan(&customerID)
	require.NoError(t, err)
	return customerID
}

func testShipping() models.ShippingSnapshot {
	return models.ShippingSnapshot{
		FullName: "Rahim Uddin",
		Phone:    "01711111111",
		Address:  "House 1, Road 2",
		Division: "Dhaka",
		District: "Dhaka",
		Email:    "rahim@example.com",
	}
}

func assertTotalMatchesItems(t *testing.T, detail *models.OrderDetail) {
	t.Helper()

	var sum int64
	for _, item := range detail.Items {
		sum += int64(item.Quantity) * item.Price
	}
	assert.Equal(t, sum, detail.Order.TotalAmount, "order total must equal the sum of item subtotals")
}

func findItemByProduct(detail *models.OrderDetail, productID int64) *models.OrderItem {
	for i := range detail.Items {
		if detail.Items[i].ProductID == productID {
			return &detail.Items[i]
		}
	}
	return nil
}

func TestCreateMaterializedPersistsDraft(t *testing.T) {
	setupOrderDB(t)
	ctx := context.Background()
	repo := NewOrderRepository()

	productID := seedTestProduct(t, "mat-p1", 10000, 0, 0)

	detail, err := repo.CreateMaterialized(ctx, &models.OrderDraft{
		Shipping: testShipping(),
		Items: []models.OrderItemDraft{
			{ProductID: productID, Quantity: 2, Price: 10000},
		},
		TotalAmount: 20000,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, detail.Order.Status.StatusCode)
	assert.False(t, detail.Order.Payment.IsPaid)
	assert.Equal(t, "cod", detail.Order.Payment.PaymentMethod)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, int64(20000), detail.Order.TotalAmount)
	assertTotalMatchesItems(t, detail)
}

func TestAddItemAutoSelectsCheapestVariant(t *testing.T) {
	setupOrderDB(t)
	ctx := context.Background()
	repo := NewOrderRepository()

	seedID := seedTestProduct(t, "auto-seed", 5000, 0, 0)
	productID := seedTestProduct(t, "auto-p1", 10000, 0, 0)
	cheapest := seedTestVariant(t, productID, "auto-v1", 9000, true)
	seedTestVariant(t, productID, "auto-v2", 4000, false) // inactive, must be skipped

	detail, err := repo.CreateMaterialized(ctx, &models.OrderDraft{
		Shipping:    testShipping(),
		Items:       []models.OrderItemDraft{{ProductID: seedID, Quantity: 1, Price: 5000}},
		TotalAmount: 5000,
	})
	require.NoError(t, err)

	detail, err = repo.AddItem(ctx, detail.Order.ID, &models.AddOrderItemRequest{ProductID: productID, Quantity: 1})
	require.NoError(t, err)

	added := findItemByProduct(detail, productID)
	require.NotNil(t, added)
	assert.Equal(t, cheapest, added.VariantID, "product-only line must resolve through the cheapest active variant")
	assert.Equal(t, int64(9000), added.Price)
	assert.Equal(t, int64(14000), detail.Order.TotalAmount)
	assertTotalMatchesItems(t, detail)
}

func TestAddItemUsesWholesalePriceForWholesaleCustomer(t *testing.T) {
	setupOrderDB(t)
	ctx := context.Background()
	repo := NewOrderRepository()

	customerID := seedTestCustomer(t, "karim@example.com", models.CustomerTypeWholesale)
	seedID := seedTestProduct(t, "ws-seed", 5000, 0, 0)
	productID := seedTestProduct(t, "ws-p1", 10000, 8000, 0)

	detail, err := repo.CreateMaterialized(ctx, &models.OrderDraft{
		CustomerID:  customerID,
		Shipping:    testShipping(),
		Items:       []models.OrderItemDraft{{ProductID: seedID, Quantity: 1, Price: 5000}},
		TotalAmount: 5000,
	})
	require.NoError(t, err)

	detail, err = repo.AddItem(ctx, detail.Order.ID, &models.AddOrderItemRequest{ProductID: productID, Quantity: 2})
	require.NoError(t, err)

	added := findItemByProduct(detail, productID)
	require.NotNil(t, added)
	assert.Equal(t, int64(8000), added.Price)
	assertTotalMatchesItems(t, detail)
}

func TestOrderTotalTracksItemMutations(t *testing.T) {
	setupOrderDB(t)
	ctx := context.Background()
	repo := NewOrderRepository()

	firstID := seedTestProduct(t, "mut-p1", 10000, 0, 0)
	secondID := seedTestProduct(t, "mut-p2", 7000, 0, 0)

	detail, err := repo.CreateMaterialized(ctx, &models.OrderDraft{
		Shipping:    testShipping(),
		Items:       []models.OrderItemDraft{{ProductID: firstID, Quantity: 2, Price: 10000}},
		TotalAmount: 20000,
	})
	require.NoError(t, err)
	orderID := detail.Order.ID

	// Add a second line
	detail, err = repo.AddItem(ctx, orderID, &models.AddOrderItemRequest{ProductID: secondID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(27000), detail.Order.TotalAmount)
	assertTotalMatchesItems(t, detail)

	// Change the first line's quantity, keeping its snapshot price
	first := findItemByProduct(detail, firstID)
	require.NotNil(t, first)
	detail, err = repo.UpdateItemQuantity(ctx, orderID, first.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(57000), detail.Order.TotalAmount)
	assertTotalMatchesItems(t, detail)

	// Remove the second line
	second := findItemByProduct(detail, secondID)
	require.NotNil(t, second)
	detail, err = repo.RemoveItem(ctx, orderID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), detail.Order.TotalAmount)
	assertTotalMatchesItems(t, detail)

	// Adding the same product again merges into the existing line
	detail, err = repo.AddItem(ctx, orderID, &models.AddOrderItemRequest{ProductID: firstID, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 6, detail.Items[0].Quantity)
	assert.Equal(t, int64(60000), detail.Order.TotalAmount)
	assertTotalMatchesItems(t, detail)
}
