// Package pricing computes line and cart/order totals. All functions are
// pure: they operate on values already loaded by the caller and never touch
// the database.
package pricing

import (
	"errors"
	"math"
)

var (
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidTaxRate  = errors.New("tax rate must not be negative")
)

// Line is one priced cart/order position.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Totals holds the monetary breakdown of a cart or order.
// TotalPrice always reconciles: ItemsPrice + TaxPrice + ShippingPrice.
type Totals struct {
	ItemsPrice    float64 `json:"items_price"`
	TaxPrice      float64 `json:"tax_price"`
	ShippingPrice float64 `json:"shipping_price"`
	TotalPrice    float64 `json:"total_price"`
}

// Round2 rounds to 2 decimal places, half-up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// LineTotal returns unitPrice * quantity at full precision.
// Rounding happens once, in Aggregate, so that summing many lines does not
// compound per-line rounding error.
func LineTotal(unitPrice float64, quantity int) (float64, error) {
	if unitPrice < 0 {
		return 0, ErrInvalidPrice
	}
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	return unitPrice * float64(quantity), nil
}

// Aggregate sums lines into cart/order totals. taxRate is a fraction
// (0.10 for 10%), shippingCost is the flat cost of the chosen delivery
// option (0 for free shipping). An empty line slice yields zero items and
// tax with shipping passed through.
func Aggregate(lines []Line, taxRate, shippingCost float64) (Totals, error) {
	if taxRate < 0 {
		return Totals{}, ErrInvalidTaxRate
	}
	if shippingCost < 0 {
		return Totals{}, ErrInvalidPrice
	}

	var sum float64
	for _, l := range lines {
		lt, err := LineTotal(l.UnitPrice, l.Quantity)
		if err != nil {
			return Totals{}, err
		}
		sum += lt
	}

	t := Totals{
		ItemsPrice:    Round2(sum),
		ShippingPrice: Round2(shippingCost),
	}
	t.TaxPrice = Round2(t.ItemsPrice * taxRate)
	t.TotalPrice = Round2(t.ItemsPrice + t.TaxPrice + t.ShippingPrice)
	return t, nil
}
