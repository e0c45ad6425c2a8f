package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

func TestCoerceQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"3", 3},
		{" 12 ", 12},
		{"7pcs", 7},
		{"2.9", 2},
		{"abc", 0},
		{"", 0},
		{"-4", 0},
		{"99999999999999999999999", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, invoice.CoerceQuantity(tt.in), "input %q", tt.in)
	}
}

func TestCoercePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"50000", "50000"},
		{"12.75", "12.75"},
		{".5", "0.5"},
		{"1e3", "1000"},
		{"25000 rupiah", "25000"},
		{"abc", "0"},
		{"", "0"},
		{"-10", "0"},
	}

	for _, tt := range tests {
		got := invoice.CoercePrice(tt.in)
		assertDecimal(t, tt.want, got)
	}
}
