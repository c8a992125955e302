package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Pricing types for addons.
const (
	TypeFixed     = "fixed"      // one price for the whole order
	TypePerPerson = "per_person" // price multiplied by guests
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNegativeGuests  = errors.New("guests count cannot be negative")
)

// Round2 rounds a monetary amount to 2 decimal places. Rounding happens only
// at stored subtotal/total boundaries, never on intermediate per-unit values.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// AddonLine computes the line amount for one ordered addon from its frozen
// price snapshot:
//   - fixed:      priceSnapshot * quantity
//   - per_person: priceSnapshot * guests * quantity
func AddonLine(priceSnapshot decimal.Decimal, pricingType string, quantity, guests int) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, ErrInvalidQuantity
	}
	if guests < 0 {
		return decimal.Zero, ErrNegativeGuests
	}

	amount := priceSnapshot
	if pricingType == TypePerPerson {
		amount = priceSnapshot.Mul(decimal.NewFromInt(int64(guests)))
	}

	return Round2(amount.Mul(decimal.NewFromInt(int64(quantity)))), nil
}

// ItemExtra computes the upsell surcharge of one chosen dish for the whole
// party: extraPerPerson * guests.
func ItemExtra(extraPerPerson decimal.Decimal, guests int) decimal.Decimal {
	return Round2(extraPerPerson.Mul(decimal.NewFromInt(int64(guests))))
}

// OrderTotal computes the order total:
//
//	pricePerPerson*guests + sum(itemExtras) + sum(addonSubtotals)
//
// A zero guest count yields 0.00 by policy, not an error. The result does not
// depend on the ordering of the extras or subtotal slices.
func OrderTotal(pricePerPerson decimal.Decimal, guests int, itemExtras, addonSubtotals []decimal.Decimal) decimal.Decimal {
	if guests <= 0 {
		return decimal.Zero.Round(2)
	}

	total := pricePerPerson.Mul(decimal.NewFromInt(int64(guests)))
	for _, extra := range itemExtras {
		total = total.Add(extra)
	}
	for _, sub := range addonSubtotals {
		total = total.Add(sub)
	}

	return Round2(total)
}
