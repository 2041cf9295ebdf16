package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBDT(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "৳0.00"},
		{50, "৳0.50"},
		{10000, "৳100.00"},
		{16000, "৳160.00"},
		{89997, "৳899.97"},
		{123456789, "৳1,234,567.89"},
		{-7500, "-৳75.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBDT(tt.amount), "FormatBDT(%d)", tt.amount)
	}
}
