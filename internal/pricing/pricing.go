// Package pricing implements the storefront's money rules: per-line
// subtotals, cart totals and the Pix percentage discount. All amounts are
// fixed-point with two decimals, rounded half-up at the cent.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Subtotal is unit price times quantity, rounded once at the cent.
func Subtotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

// WithDiscount applies a percentage discount and rounds to two decimals.
// A percent of zero or less leaves the price untouched.
func WithDiscount(price decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 {
		return price
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(percent))).Div(hundred)
	return price.Mul(factor).Round(2)
}

// EffectiveAmount returns the amount actually charged: the discounted total
// for Pix, the plain total for everything else.
func EffectiveAmount(total decimal.Decimal, paymentMethod string, percent int) decimal.Decimal {
	if paymentMethod == models.PaymentPix {
		return WithDiscount(total, percent)
	}
	return total
}
