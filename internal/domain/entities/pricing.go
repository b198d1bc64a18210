package entities

// TierDiscountKind is the normalized quantity-offer discount type. The
// catalog ingestion boundary maps raw kind strings onto this enum; the
// pricing core only ever consumes normalized values.
type TierDiscountKind string

const (
	TierDiscountPerUnitFlat       TierDiscountKind = "per_unit_flat"
	TierDiscountPercent           TierDiscountKind = "percent"
	TierDiscountExplicitUnitPrice TierDiscountKind = "explicit_unit_price"
)

// QuantityOfferTier is one quantity threshold with its discount rule.
// Tiers are independent, not cumulative. Active is a pointer because
// catalog records omit the flag for tiers that were never deactivated.
type QuantityOfferTier struct {
	ID                string           `json:"id" db:"id"`
	Active            *bool            `json:"active,omitempty" db:"active"`
	MinQuantity       int              `json:"min_quantity" db:"min_quantity"`
	DiscountKind      TierDiscountKind `json:"discount_kind" db:"discount_kind"`
	DiscountValue     float64          `json:"discount_value" db:"discount_value"`
	ExplicitUnitPrice *float64         `json:"explicit_unit_price,omitempty" db:"explicit_unit_price"`
	Message           string           `json:"message,omitempty" db:"message"`
}

// Enabled reports whether the tier may be applied. An absent flag counts
// as active.
func (t *QuantityOfferTier) Enabled() bool {
	return t.Active == nil || *t.Active
}

// TieredPriceResult is the outcome of resolving a quantity against the
// tiers of a priced entity. LineDiscount is a one-time deduction taken
// off the whole line, so EffectiveUnitPrice*quantity - LineDiscount
// equals TotalPrice before rounding.
type TieredPriceResult struct {
	ChosenTier         *QuantityOfferTier `json:"chosen_tier,omitempty"`
	EffectiveUnitPrice float64            `json:"effective_unit_price"`
	LineDiscount       float64            `json:"line_discount,omitempty"`
	TotalPrice         float64            `json:"total_price"`
	Savings            float64            `json:"savings"`
}
