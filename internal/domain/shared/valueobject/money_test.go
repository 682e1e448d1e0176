package valueobject

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseINR(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"100000", "100000.00"},
		{" 1,00,000.50 ", "100000.50"},
		{"₹2,500", "2500.00"},
		{"+12.5", "12.50"},
		{".75", "0.75"},
		{"7.", "7.00"},
		{"", "0.00"},
		{"abc", "0.00"},
		{"12abc", "0.00"},
		{".", "0.00"},
		{"-", "0.00"},
		{"1e9", "0.00"},
		{"1E400", "0.00"},
		{"1e20000000", "0.00"},
		{"0x10", "0.00"},
		{"-5", "-5.00"},
		{"000000000000000000001", "1.00"},
		{"999999999999999.9999999999", "999999999999999.9999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			m, err := ParseINR(tt.raw)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(m.Amount()), "got %s", m.Amount())
		})
	}
}

func TestParseINR_OutOfRange(t *testing.T) {
	for _, raw := range []string{
		"1000000000000000",
		"1,00,00,00,00,00,00,000",
		"1.00000000001",
		strings.Repeat("9", 5000),
	} {
		m, err := ParseINR(raw)
		assert.ErrorIs(t, err, ErrAmountOutOfRange, raw)
		assert.True(t, m.Amount().IsZero())
	}
}

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"1000", "₹1,000.00"},
		{"99000", "₹99,000.00"},
		{"100000", "₹1,00,000.00"},
		{"5000000", "₹50,00,000.00"},
		{"-12.5", "-₹12.50"},
		{"1.005", "₹1.01"},
		{"2.675", "₹2.68"},
		{"-0.001", "₹0.00"},
		{"12345678901234567.89", "₹12,34,56,78,90,12,34,567.89"},
		{"1234567890123456789012345.67", "₹12,34,56,78,90,12,34,56,78,90,12,345.67"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NewINR(decimal.RequireFromString(tt.in)).Format())
		})
	}
}

func TestGroupIndian(t *testing.T) {
	tests := []struct {
		digits string
		want   string
	}{
		{"7", "7"},
		{"123", "123"},
		{"1234", "1,234"},
		{"12345", "12,345"},
		{"123456", "1,23,456"},
		{"100000000000000000000", "10,00,00,00,00,00,00,00,00,000"},
		{"9999999999999999999999", "9,99,99,99,99,99,99,99,99,99,999"},
	}
	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			assert.Equal(t, tt.want, groupIndian(tt.digits))
		})
	}
}
