package pricing

import (
	"sellora-backend/models"
)

// Priced is any catalog entity that carries the three price fields the
// resolver evaluates. A zero wholesale or discount price means "not set".
type Priced interface {
	BasePrice() int64
	WholesaleUnitPrice() int64
	DiscountUnitPrice() int64
}

// ResolveUnitPrice returns the single unit price to charge for an entity.
// Precedence is fixed: wholesale price for wholesalers when set, then
// discount price when set, then the base price. Pure function; no side
// effects.
func ResolveUnitPrice(isWholesaler bool, e Priced) int64 {
	if isWholesaler && e.WholesaleUnitPrice() > 0 {
		return e.WholesaleUnitPrice()
	}
	if e.DiscountUnitPrice() > 0 {
		return e.DiscountUnitPrice()
	}
	return e.BasePrice()
}

// DefaultVariant picks the variant to use when a caller selects a product
// that has variants without naming one: the active variant with the lowest
// base price. Ties break on the lower id so the choice is deterministic.
// Returns nil when no variant is active.
func DefaultVariant(variants []models.ProductVariant) *models.ProductVariant {
	var best *models.ProductVariant
	for i := range variants {
		v := &variants[i]
		if !v.IsActive {
			continue
		}
		if best == nil || v.Price < best.Price || (v.Price == best.Price && v.ID < best.ID) {
			best = v
		}
	}
	return best
}
