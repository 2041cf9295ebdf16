package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellora-backend/models"
	"sellora-backend/repository"
)

type fakeCatalog struct {
	products map[int64]*models.Product
	variants map[int64]*models.ProductVariant
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, repository.ErrProductNotFound
}

func (f *fakeCatalog) GetVariant(ctx context.Context, id int64) (*models.ProductVariant, error) {
	if v, ok := f.variants[id]; ok {
		return v, nil
	}
	return nil, repository.ErrVariantNotFound
}

func (f *fakeCatalog) GetActiveVariants(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	var out []models.ProductVariant
	for _, v := range f.variants {
		if v.ProductID == productID && v.IsActive {
			out = append(out, *v)
		}
	}
	return out, nil
}

type fakeCarts struct {
	cart  *models.Cart
	items []models.CartItem
}

func (f *fakeCarts) FindCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	if f.cart == nil {
		return nil, repository.ErrCartNotFound
	}
	return f.cart, nil
}

func (f *fakeCarts) GetItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	return f.items, nil
}

type fakeAddresses struct {
	addresses map[int64]*models.Address
}

func (f *fakeAddresses) GetByID(ctx context.Context, customerID, addressID int64) (*models.Address, error) {
	if a, ok := f.addresses[addressID]; ok && a.CustomerID == customerID {
		return a, nil
	}
	return nil, repository.ErrAddressNotFound
}

type fakeOrders struct {
	lastDraft *models.OrderDraft
	failWith  error
}

func (f *fakeOrders) CreateMaterialized(ctx context.Context, draft *models.OrderDraft) (*models.OrderDetail, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.lastDraft = draft
	detail := &models.OrderDetail{
		Order: models.Order{
			ID:          42,
			CustomerID:  draft.CustomerID,
			Shipping:    draft.Shipping,
			TotalAmount: draft.TotalAmount,
			Status:      models.OrderStatus{StatusCode: models.StatusPending},
		},
	}
	for i, item := range draft.Items {
		detail.Items = append(detail.Items, models.OrderItem{
			ID:        int64(i + 1),
			OrderID:   42,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  int64(item.Quantity) * item.Price,
		})
	}
	return detail, nil
}

func (f *fakeOrders) GetByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	return nil, repository.ErrOrderNotFound
}

type fakeCustomers struct {
	customer *models.Customer
}

func (f *fakeCustomers) GetByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	if f.customer == nil {
		return nil, repository.ErrCustomerNotFound
	}
	return f.customer, nil
}

func retailCustomer() *models.Customer {
	return &models.Customer{
		ID:           7,
		UserID:       3,
		Name:         "Rahim Uddin",
		Email:        "rahim@example.com",
		Phone:        "01711111111",
		CustomerType: models.CustomerTypeRetail,
	}
}

func wholesaleCustomer() *models.Customer {
	c := retailCustomer()
	c.CustomerType = models.CustomerTypeWholesale
	return c
}

func guestShipping() *models.PlaceOrderRequest {
	return &models.PlaceOrderRequest{
		FullName: "Karim Mia",
		Phone:    "01822222222",
		Address:  "12 Station Road",
		Division: "Dhaka",
		District: "Dhaka",
		Email:    "karim@example.com",
	}
}

func newTestService(catalog *fakeCatalog, carts *fakeCarts, addresses *fakeAddresses, orders *fakeOrders, customers *fakeCustomers) *OrderService {
	if catalog == nil {
		catalog = &fakeCatalog{products: map[int64]*models.Product{}, variants: map[int64]*models.ProductVariant{}}
	}
	if carts == nil {
		carts = &fakeCarts{}
	}
	if addresses == nil {
		addresses = &fakeAddresses{addresses: map[int64]*models.Address{}}
	}
	if orders == nil {
		orders = &fakeOrders{}
	}
	if customers == nil {
		customers = &fakeCustomers{}
	}
	return NewOrderService(catalog, carts, addresses, orders, customers)
}

func TestPlaceOrderWholesalePricing(t *testing.T) {
	// Base 100.00, wholesale 80.00; a wholesaler buying 2 pays 160.00
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, WholesalePrice: 8000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	orders := &fakeOrders{}
	svc := newTestService(catalog, nil, nil, orders, &fakeCustomers{customer: wholesaleCustomer()})

	auth := &models.AuthContext{UserID: 3, CustomerID: 7}
	req := guestShipping()
	req.Items = []models.OrderLineInput{{ProductID: 1, Quantity: 2}}

	detail, err := svc.PlaceOrder(context.Background(), auth, models.CartOwner{CustomerID: 7}, req)
	require.NoError(t, err)

	assert.Equal(t, int64(16000), detail.Order.TotalAmount)
	require.Len(t, orders.lastDraft.Items, 1)
	assert.Equal(t, int64(8000), orders.lastDraft.Items[0].Price)
}

func TestPlaceOrderDiscountBeatsBaseForRetail(t *testing.T) {
	// Base 100.00, discount 70.00; a retail customer pays 70.00
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, DiscountPrice: 7000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	orders := &fakeOrders{}
	svc := newTestService(catalog, nil, nil, orders, &fakeCustomers{customer: retailCustomer()})

	auth := &models.AuthContext{UserID: 3, CustomerID: 7}
	req := guestShipping()
	req.Items = []models.OrderLineInput{{ProductID: 1, Quantity: 1}}

	detail, err := svc.PlaceOrder(context.Background(), auth, models.CartOwner{CustomerID: 7}, req)
	require.NoError(t, err)

	assert.Equal(t, int64(7000), detail.Order.TotalAmount)
}

func TestPlaceOrderWholesaleBeatsDiscount(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, WholesalePrice: 8000, DiscountPrice: 7000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	orders := &fakeOrders{}
	svc := newTestService(catalog, nil, nil, orders, &fakeCustomers{customer: wholesaleCustomer()})

	auth := &models.AuthContext{UserID: 3, CustomerID: 7}
	req := guestShipping()
	req.Items = []models.OrderLineInput{{ProductID: 1, Quantity: 1}}

	detail, err := svc.PlaceOrder(context.Background(), auth, models.CartOwner{CustomerID: 7}, req)
	require.NoError(t, err)

	assert.Equal(t, int64(8000), detail.Order.TotalAmount)
}

func TestPlaceOrderVariantPricing(t *testing.T) {
	// Variant at 299.99 x 3 = 899.97; the parent product's prices are ignored
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 99999, DiscountPrice: 50, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{
			10: {ID: 10, ProductID: 1, Price: 29999, IsActive: true},
		},
	}
	orders := &fakeOrders{}
	svc := newTestService(catalog, nil, nil, orders, nil)

	req := guestShipping()
	req.Items = []models.OrderLineInput{{VariantID: 10, Quantity: 3}}

	detail, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	require.NoError(t, err)

	assert.Equal(t, int64(89997), detail.Order.TotalAmount)
	assert.Equal(t, int64(1), orders.lastDraft.Items[0].ProductID)
	assert.Equal(t, int64(10), orders.lastDraft.Items[0].VariantID)
}

func TestPlaceOrderAutoSelectsCheapestVariant(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{
			10: {ID: 10, ProductID: 1, Price: 12000, IsActive: true},
			11: {ID: 11, ProductID: 1, Price: 9000, IsActive: true},
			12: {ID: 12, ProductID: 1, Price: 5000, IsActive: false},
		},
	}
	orders := &fakeOrders{}
	svc := newTestService(catalog, nil, nil, orders, nil)

	req := guestShipping()
	req.Items = []models.OrderLineInput{{ProductID: 1, Quantity: 1}}

	detail, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	require.NoError(t, err)

	assert.Equal(t, int64(11), orders.lastDraft.Items[0].VariantID)
	assert.Equal(t, int64(9000), detail.Order.TotalAmount)
}

func TestPlaceOrderZeroQuantityDefaultsToOne(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	orders := &fakeOrders{}
	svc := newTestService(catalog, nil, nil, orders, nil)

	req := guestShipping()
	req.Items = []models.OrderLineInput{{ProductID: 1}}

	detail, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	require.NoError(t, err)

	assert.Equal(t, 1, orders.lastDraft.Items[0].Quantity)
	assert.Equal(t, int64(10000), detail.Order.TotalAmount)
}

func TestPlaceOrderNegativeQuantityRejected(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	svc := newTestService(catalog, nil, nil, nil, nil)

	req := guestShipping()
	req.Items = []models.OrderLineInput{{ProductID: 1, Quantity: -2}}

	_, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	assert.ErrorIs(t, err, repository.ErrInvalidLineItem)
}

func TestPlaceOrderEmptyCartRejected(t *testing.T) {
	carts := &fakeCarts{cart: &models.Cart{ID: 5, SessionKey: "guest-1"}}
	svc := newTestService(nil, carts, nil, nil, nil)

	req := guestShipping()

	_, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	assert.ErrorIs(t, err, repository.ErrEmptyOrder)
}

func TestPlaceOrderNoCartRejected(t *testing.T) {
	svc := newTestService(nil, &fakeCarts{}, nil, nil, nil)

	req := guestShipping()

	_, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	assert.ErrorIs(t, err, repository.ErrEmptyOrder)
}

func TestPlaceOrderGuestMissingFields(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	svc := newTestService(catalog, nil, nil, nil, nil)

	req := &models.PlaceOrderRequest{
		Items:    []models.OrderLineInput{{ProductID: 1, Quantity: 1}},
		FullName: "Karim Mia",
		Division: "Dhaka",
	}

	_, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	require.Error(t, err)

	var missing *repository.MissingGuestFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"phone", "address", "district", "email"}, missing.Fields)
}

func TestPlaceOrderCartSourceClearsCart(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	carts := &fakeCarts{
		cart:  &models.Cart{ID: 5, SessionKey: "guest-1"},
		items: []models.CartItem{{ID: 1, CartID: 5, ProductID: 1, Quantity: 2}},
	}
	orders := &fakeOrders{}
	svc := newTestService(catalog, carts, nil, orders, nil)

	_, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, guestShipping())
	require.NoError(t, err)

	assert.Equal(t, int64(5), orders.lastDraft.ClearCartID)
	assert.Equal(t, int64(20000), orders.lastDraft.TotalAmount)
}

func TestPlaceOrderExplicitItemsLeaveCartAlone(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	carts := &fakeCarts{
		cart:  &models.Cart{ID: 5, SessionKey: "guest-1"},
		items: []models.CartItem{{ID: 1, CartID: 5, ProductID: 1, Quantity: 9}},
	}
	orders := &fakeOrders{}
	svc := newTestService(catalog, carts, nil, orders, nil)

	req := guestShipping()
	req.Items = []models.OrderLineInput{{ProductID: 1, Quantity: 1}}

	_, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	require.NoError(t, err)

	assert.Equal(t, int64(0), orders.lastDraft.ClearCartID)
}

func TestPlaceOrderInactiveProductRejected(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, IsActive: false},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	svc := newTestService(catalog, nil, nil, nil, nil)

	req := guestShipping()
	req.Items = []models.OrderLineInput{{ProductID: 1, Quantity: 1}}

	_, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestPlaceOrderAddressBookMergeExplicitWins(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	addresses := &fakeAddresses{
		addresses: map[int64]*models.Address{
			3: {
				ID: 3, CustomerID: 7,
				FullName: "Rahim Uddin", Phone: "01711111111",
				Address: "House 9, Block C", Division: "Dhaka", District: "Dhaka",
				SubDistrict: "Gulshan",
			},
		},
	}
	orders := &fakeOrders{}
	svc := newTestService(catalog, nil, addresses, orders, &fakeCustomers{customer: retailCustomer()})

	auth := &models.AuthContext{UserID: 3, CustomerID: 7}
	req := &models.PlaceOrderRequest{
		Items:     []models.OrderLineInput{{ProductID: 1, Quantity: 1}},
		AddressID: 3,
		Phone:     "01999999999", // explicit field overrides the stored address
	}

	_, err := svc.PlaceOrder(context.Background(), auth, models.CartOwner{CustomerID: 7}, req)
	require.NoError(t, err)

	shipping := orders.lastDraft.Shipping
	assert.Equal(t, "01999999999", shipping.Phone)
	assert.Equal(t, "House 9, Block C", shipping.Address)
	assert.Equal(t, "Gulshan", shipping.SubDistrict)
	assert.Equal(t, "rahim@example.com", shipping.Email) // backfilled from profile
}

func TestPlaceOrderAddressNotOwnedRejected(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	addresses := &fakeAddresses{
		addresses: map[int64]*models.Address{
			3: {ID: 3, CustomerID: 99, FullName: "Someone Else"},
		},
	}
	svc := newTestService(catalog, nil, addresses, nil, &fakeCustomers{customer: retailCustomer()})

	auth := &models.AuthContext{UserID: 3, CustomerID: 7}
	req := &models.PlaceOrderRequest{
		Items:     []models.OrderLineInput{{ProductID: 1, Quantity: 1}},
		AddressID: 3,
	}

	_, err := svc.PlaceOrder(context.Background(), auth, models.CartOwner{CustomerID: 7}, req)
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestPlaceOrderGuestGetsNoWholesalePrice(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, WholesalePrice: 8000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	orders := &fakeOrders{}
	svc := newTestService(catalog, nil, nil, orders, nil)

	req := guestShipping()
	req.Items = []models.OrderLineInput{{ProductID: 1, Quantity: 1}}

	detail, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), detail.Order.TotalAmount)
}

func TestPlaceOrderStoreFailurePropagates(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[int64]*models.Product{
			1: {ID: 1, Price: 10000, IsActive: true},
		},
		variants: map[int64]*models.ProductVariant{},
	}
	boom := errors.New("connection reset")
	svc := newTestService(catalog, nil, nil, &fakeOrders{failWith: boom}, nil)

	req := guestShipping()
	req.Items = []models.OrderLineInput{{ProductID: 1, Quantity: 1}}

	_, err := svc.PlaceOrder(context.Background(), nil, models.CartOwner{SessionKey: "guest-1"}, req)
	assert.ErrorIs(t, err, boom)
}
