package service

import (
	"context"
	"log"
	"strings"

	"sellora-backend/models"
	"sellora-backend/pricing"
	"sellora-backend/repository"
)

// CustomerLookup resolves the profile behind an authenticated request
type CustomerLookup interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Customer, error)
}

// OrderService materializes orders: it assembles the proposed lines, resolves
// and freezes unit prices, validates the shipping snapshot, and hands a
// fully-priced draft to the order store for atomic persistence.
type OrderService struct {
	catalog   repository.CatalogLookup
	carts     repository.CartStore
	addresses repository.AddressStore
	orders    repository.OrderStore
	customers CustomerLookup
}

// NewOrderService creates a new OrderService
func NewOrderService(
	catalog repository.CatalogLookup,
	carts repository.CartStore,
	addresses repository.AddressStore,
	orders repository.OrderStore,
	customers CustomerLookup,
) *OrderService {
	return &OrderService{
		catalog:   catalog,
		carts:     carts,
		addresses: addresses,
		orders:    orders,
		customers: customers,
	}
}

// Fields every checkout must supply, in the order they are reported back
var requiredShippingFields = []struct {
	name  string
	value func(*models.ShippingSnapshot) string
}{
	{"full_name", func(s *models.ShippingSnapshot) string { return s.FullName }},
	{"phone", func(s *models.ShippingSnapshot) string { return s.Phone }},
	{"address", func(s *models.ShippingSnapshot) string { return s.Address }},
	{"division", func(s *models.ShippingSnapshot) string { return s.Division }},
	{"district", func(s *models.ShippingSnapshot) string { return s.District }},
	{"email", func(s *models.ShippingSnapshot) string { return s.Email }},
}

// PlaceOrder materializes an order for an authenticated customer or a guest.
// When req.Items is empty the owner's cart supplies the lines, and the cart
// is emptied in the same transaction that persists the order; a failure at
// any step leaves the cart untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, auth *models.AuthContext, owner models.CartOwner, req *models.PlaceOrderRequest) (*models.OrderDetail, error) {
	log.Printf("📥 PlaceOrder: customer_id=%d session_key=%s explicit_items=%d",
		owner.CustomerID, owner.SessionKey, len(req.Items))

	var customer *models.Customer
	if auth != nil && auth.UserID != 0 {
		var err error
		customer, err = s.customers.GetByUserID(ctx, auth.UserID)
		if err != nil {
			return nil, err
		}
	}

	lines, clearCartID, err := s.collectLines(ctx, owner, req.Items)
	if err != nil {
		return nil, err
	}

	shipping, err := s.resolveShipping(ctx, customer, req)
	if err != nil {
		return nil, err
	}

	isWholesaler := customer != nil && customer.IsWholesaler()

	items, total, err := s.priceLines(ctx, isWholesaler, lines)
	if err != nil {
		return nil, err
	}

	draft := &models.OrderDraft{
		Shipping:    *shipping,
		Items:       items,
		TotalAmount: total,
		ClearCartID: clearCartID,
	}
	if customer != nil {
		draft.CustomerID = customer.ID
	}

	detail, err := s.orders.CreateMaterialized(ctx, draft)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ PlaceOrder: Created order id=%d with %d items, total=%d", detail.Order.ID, len(items), total)
	return detail, nil
}

// collectLines returns the proposed lines and, when they came from a cart,
// the cart id to clear on success
func (s *OrderService) collectLines(ctx context.Context, owner models.CartOwner, explicit []models.OrderLineInput) ([]models.OrderLineInput, int64, error) {
	if len(explicit) > 0 {
		return explicit, 0, nil
	}

	cart, err := s.carts.FindCart(ctx, owner)
	if err != nil {
		if err == repository.ErrCartNotFound {
			return nil, 0, repository.ErrEmptyOrder
		}
		return nil, 0, err
	}

	cartItems, err := s.carts.GetItems(ctx, cart.ID)
	if err != nil {
		return nil, 0, err
	}
	if len(cartItems) == 0 {
		return nil, 0, repository.ErrEmptyOrder
	}

	lines := make([]models.OrderLineInput, 0, len(cartItems))
	for _, ci := range cartItems {
		lines = append(lines, models.OrderLineInput{
			ProductID: ci.ProductID,
			VariantID: ci.VariantID,
			Quantity:  ci.Quantity,
		})
	}
	return lines, cart.ID, nil
}

// resolveShipping builds the snapshot that will be frozen onto the order.
// An address book reference fills in whatever the request leaves blank, and
// an authenticated profile backfills contact fields; guests must supply
// everything themselves.
func (s *OrderService) resolveShipping(ctx context.Context, customer *models.Customer, req *models.PlaceOrderRequest) (*models.ShippingSnapshot, error) {
	shipping := models.ShippingSnapshot{
		FullName:    strings.TrimSpace(req.FullName),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		Division:    strings.TrimSpace(req.Division),
		District:    strings.TrimSpace(req.District),
		SubDistrict: strings.TrimSpace(req.SubDistrict),
		Email:       strings.TrimSpace(req.Email),
	}

	if req.AddressID != 0 {
		if customer == nil {
			return nil, repository.ErrAddressNotFound
		}
		addr, err := s.addresses.GetByID(ctx, customer.ID, req.AddressID)
		if err != nil {
			return nil, err
		}
		if shipping.FullName == "" {
			shipping.FullName = addr.FullName
		}
		if shipping.Phone == "" {
			shipping.Phone = addr.Phone
		}
		if shipping.Address == "" {
			shipping.Address = addr.Address
		}
		if shipping.Division == "" {
			shipping.Division = addr.Division
		}
		if shipping.District == "" {
			shipping.District = addr.District
		}
		if shipping.SubDistrict == "" {
			shipping.SubDistrict = addr.SubDistrict
		}
	}

	if customer != nil {
		if shipping.FullName == "" {
			shipping.FullName = customer.Name
		}
		if shipping.Phone == "" {
			shipping.Phone = customer.Phone
		}
		if shipping.Email == "" {
			shipping.Email = customer.Email
		}
	}

	var missing []string
	for _, f := range requiredShippingFields {
		if f.value(&shipping) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		log.Printf("❌ PlaceOrder: Missing shipping fields: %v", missing)
		return nil, &repository.MissingGuestFieldsError{Fields: missing}
	}

	return &shipping, nil
}

// priceLines resolves and freezes a unit price for every proposed line.
// A product line whose product has active variants is silently upgraded to
// the cheapest active variant; once a variant is in play, only its price
// fields count.
func (s *OrderService) priceLines(ctx context.Context, isWholesaler bool, lines []models.OrderLineInput) ([]models.OrderItemDraft, int64, error) {
	var items []models.OrderItemDraft
	var total int64

	for _, line := range lines {
		if line.ProductID == 0 && line.VariantID == 0 {
			return nil, 0, repository.ErrInvalidLineItem
		}

		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, 0, repository.ErrInvalidLineItem
		}

		var draft models.OrderItemDraft
		draft.Quantity = qty

		if line.VariantID != 0 {
			variant, err := s.catalog.GetVariant(ctx, line.VariantID)
			if err != nil {
				return nil, 0, err
			}
			if !variant.IsActive {
				return nil, 0, repository.ErrVariantNotFound
			}
			draft.ProductID = variant.ProductID
			draft.VariantID = variant.ID
			draft.Price = pricing.ResolveUnitPrice(isWholesaler, variant)
		} else {
			product, err := s.catalog.GetProduct(ctx, line.ProductID)
			if err != nil {
				return nil, 0, err
			}
			if !product.IsActive {
				return nil, 0, repository.ErrProductNotFound
			}

			variants, err := s.catalog.GetActiveVariants(ctx, product.ID)
			if err != nil {
				return nil, 0, err
			}

			if v := pricing.DefaultVariant(variants); v != nil {
				log.Printf("⏭️ PlaceOrder: Product %d has variants, auto-selecting variant id=%d", product.ID, v.ID)
				draft.ProductID = product.ID
				draft.VariantID = v.ID
				draft.Price = pricing.ResolveUnitPrice(isWholesaler, v)
			} else {
				draft.ProductID = product.ID
				draft.Price = pricing.ResolveUnitPrice(isWholesaler, product)
			}
		}

		items = append(items, draft)
		total += int64(draft.Quantity) * draft.Price
	}

	if len(items) == 0 {
		return nil, 0, repository.ErrEmptyOrder
	}

	return items, total, nil
}
