package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSubtotal(t *testing.T) {
	assert.True(t, dec("240.00").Equal(Subtotal(dec("120.00"), 2)))
	assert.True(t, dec("99.99").Equal(Subtotal(dec("33.33"), 3)))
	// half-up at the cent
	assert.True(t, dec("1.01").Equal(Subtotal(dec("1.005"), 1)))
}

func TestWithDiscount(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		percent int
		want    string
	}{
		{"zero percent leaves price untouched", "240.00", 0, "240.00"},
		{"negative percent leaves price untouched", "240.00", -5, "240.00"},
		{"ten percent", "240.00", 10, "216.00"},
		{"rounds half up", "99.90", 5, "94.91"},
		{"full discount", "50.00", 100, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithDiscount(dec(tt.price), tt.percent)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestWithDiscountNeverRaisesPrice(t *testing.T) {
	prices := []string{"0.01", "1.00", "33.33", "120.00", "9999.99"}
	for _, p := range prices {
		price := dec(p)
		for percent := 0; percent <= 100; percent++ {
			got := WithDiscount(price, percent)
			assert.True(t, got.LessThanOrEqual(price), "price %s percent %d gave %s", p, percent, got)
			if percent == 0 {
				assert.True(t, got.Equal(price))
			}
		}
	}
}

func TestEffectiveAmount(t *testing.T) {
	total := dec("240.00")
	assert.True(t, dec("216.00").Equal(EffectiveAmount(total, models.PaymentPix, 10)))
	assert.True(t, total.Equal(EffectiveAmount(total, models.PaymentCard, 10)))
	assert.True(t, total.Equal(EffectiveAmount(total, models.PaymentPix, 0)))
}
