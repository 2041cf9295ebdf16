package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellora-backend/models"
)

func TestResolveUnitPrice(t *testing.T) {
	tests := []struct {
		name         string
		isWholesaler bool
		price        int64
		wholesale    int64
		discount     int64
		want         int64
	}{
		{"base price only", false, 10000, 0, 0, 10000},
		{"wholesaler with wholesale price", true, 10000, 8000, 0, 8000},
		{"wholesale beats discount for wholesaler", true, 10000, 8000, 7000, 8000},
		{"retail customer ignores wholesale price", false, 10000, 8000, 0, 10000},
		{"discount applies to retail customer", false, 10000, 0, 7000, 7000},
		{"discount applies to wholesaler without wholesale price", true, 10000, 0, 7000, 7000},
		{"zero wholesale price falls through", true, 10000, 0, 0, 10000},
		{"zero discount price falls through", false, 10000, 0, 0, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Product{
				Price:          tt.price,
				WholesalePrice: tt.wholesale,
				DiscountPrice:  tt.discount,
			}
			assert.Equal(t, tt.want, ResolveUnitPrice(tt.isWholesaler, p))
		})
	}
}

func TestResolveUnitPriceIsPure(t *testing.T) {
	v := &models.ProductVariant{Price: 29999, WholesalePrice: 25000, DiscountPrice: 27500}
	first := ResolveUnitPrice(true, v)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ResolveUnitPrice(true, v))
	}
	assert.Equal(t, int64(29999), v.Price, "resolver must not mutate its input")
}

func TestResolveUnitPriceVariant(t *testing.T) {
	// Once a variant is selected only its own price fields count.
	v := &models.ProductVariant{Price: 29999}
	assert.Equal(t, int64(29999), ResolveUnitPrice(false, v))
	assert.Equal(t, int64(29999), ResolveUnitPrice(true, v))
}

func TestDefaultVariant(t *testing.T) {
	variants := []models.ProductVariant{
		{ID: 1, Price: 50000, IsActive: true},
		{ID: 2, Price: 45000, IsActive: false},
		{ID: 3, Price: 48000, IsActive: true},
	}

	got := DefaultVariant(variants)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.ID, "inactive variants are skipped even when cheaper")
}

func TestDefaultVariantTieBreaksOnLowerID(t *testing.T) {
	variants := []models.ProductVariant{
		{ID: 7, Price: 48000, IsActive: true},
		{ID: 4, Price: 48000, IsActive: true},
	}

	got := DefaultVariant(variants)
	require.NotNil(t, got)
	assert.Equal(t, int64(4), got.ID)
}

func TestDefaultVariantNoneActive(t *testing.T) {
	variants := []models.ProductVariant{
		{ID: 1, Price: 50000, IsActive: false},
	}
	assert.Nil(t, DefaultVariant(variants))
	assert.Nil(t, DefaultVariant(nil))
}
