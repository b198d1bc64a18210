package pricing

import (
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
)

// ResolveTieredPrice resolves which quantity-offer tier applies to a
// quantity and computes the resulting unit and total price. Inputs are
// clamped to nonnegative; the function never fails.
//
// Among eligible tiers (enabled, quantity >= MinQuantity) the one with the
// largest MinQuantity wins; on equal MinQuantity the first-declared tier
// wins.
func ResolveTieredPrice(baseUnitPrice float64, quantity int, tiers []entities.QuantityOfferTier) entities.TieredPriceResult {
	if baseUnitPrice < 0 {
		baseUnitPrice = 0
	}
	if quantity < 0 {
		quantity = 0
	}

	var chosen *entities.QuantityOfferTier
	for i := range tiers {
		t := &tiers[i]
		if !t.Enabled() || t.MinQuantity <= 0 || quantity < t.MinQuantity {
			continue
		}
		// Strictly greater keeps the first-declared tier on ties.
		if chosen == nil || t.MinQuantity > chosen.MinQuantity {
			chosen = t
		}
	}

	effective := baseUnitPrice
	lineDiscount := 0.0
	if chosen != nil {
		effective, lineDiscount = applyTier(baseUnitPrice, chosen)
	}

	line := effective * float64(quantity)
	if lineDiscount < 0 {
		lineDiscount = 0
	}
	if lineDiscount > line {
		lineDiscount = line
	}
	total := round2(line - lineDiscount)
	savings := round2(baseUnitPrice*float64(quantity) - total)

	return entities.TieredPriceResult{
		ChosenTier:         chosen,
		EffectiveUnitPrice: effective,
		LineDiscount:       lineDiscount,
		TotalPrice:         total,
		Savings:            savings,
	}
}

// applyTier returns the effective unit price plus an optional one-time
// discount taken off the whole line.
func applyTier(base float64, tier *entities.QuantityOfferTier) (float64, float64) {
	switch tier.DiscountKind {
	case entities.TierDiscountExplicitUnitPrice:
		if tier.ExplicitUnitPrice != nil && *tier.ExplicitUnitPrice >= 0 {
			return *tier.ExplicitUnitPrice, 0
		}
		// No explicit price recorded: the value is taken once off the
		// line total instead.
		return base, tier.DiscountValue
	case entities.TierDiscountPercent:
		return flatUnitPrice(base, base*tier.DiscountValue/100), 0
	case entities.TierDiscountPerUnitFlat:
		return flatUnitPrice(base, tier.DiscountValue), 0
	default:
		// Unknown kind with a value present falls back to the flat
		// per-unit rule.
		return flatUnitPrice(base, tier.DiscountValue), 0
	}
}

func flatUnitPrice(base, discount float64) float64 {
	if discount >= base {
		return 0
	}
	return base - discount
}
