package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"iPhone 15 Pro", "iphone-15-pro"},
		{"  Trimmed  Name  ", "trimmed-name"},
		{"Samsung Galaxy S24 Ultra (512GB)", "samsung-galaxy-s24-ultra-512gb"},
		{"---", ""},
		{"Multi---dash", "multi-dash"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestGeneratePublicID(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := GeneratePublicID()
		assert.Len(t, id, 8)
		assert.Equal(t, "SS", id[:2])
		for _, r := range id[2:] {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
