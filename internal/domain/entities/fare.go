package entities

// PromoDiscountKind is the normalized promo discount type. Raw catalog
// records with loose kind strings are mapped to this enum at ingestion.
type PromoDiscountKind string

const (
	PromoDiscountFlat    PromoDiscountKind = "flat"
	PromoDiscountPercent PromoDiscountKind = "percent"
)

// PromoCode is a promotional code as supplied by the catalog collaborator
type PromoCode struct {
	Code            string            `json:"code" db:"code"`
	DiscountKind    PromoDiscountKind `json:"discount_kind" db:"discount_kind"`
	DiscountValue   float64           `json:"discount_value" db:"discount_value"`
	MinimumSubtotal float64           `json:"minimum_subtotal" db:"minimum_subtotal"`
	UsedByUserIDs   []string          `json:"used_by_user_ids"`
	IsActive        bool              `json:"is_active" db:"is_active"`
}

// UsedBy reports whether the given user has already redeemed this code
func (p *PromoCode) UsedBy(userID string) bool {
	for _, id := range p.UsedByUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// DeliveryFareParameters holds the catalog-configured delivery pricing knobs
type DeliveryFareParameters struct {
	BaseCharge                 float64 `json:"base_charge" db:"base_charge"`
	DistanceThresholdKm        float64 `json:"distance_threshold_km" db:"distance_threshold_km"`
	PerKmChargeBeyondThreshold float64 `json:"per_km_charge_beyond_threshold" db:"per_km_charge_beyond_threshold"`
	GSTPercentOnDelivery       float64 `json:"gst_percent_on_delivery" db:"gst_percent_on_delivery"`
	PlatformFee                float64 `json:"platform_fee" db:"platform_fee"`
	SurgeFee                   float64 `json:"surge_fee" db:"surge_fee"`
}

// FareLineCode identifies a fare line independently of its display label
type FareLineCode string

const (
	FareLineSubtotal       FareLineCode = "subtotal"
	FareLineTax            FareLineCode = "tax"
	FareLinePromoDiscount  FareLineCode = "promo_discount"
	FareLineDeliveryCharge FareLineCode = "delivery_charge"
	FareLineDeliveryCGST   FareLineCode = "delivery_cgst"
	FareLineDeliverySGST   FareLineCode = "delivery_sgst"
	FareLinePlatformFee    FareLineCode = "platform_fee"
	FareLineSurgeFee       FareLineCode = "surge_fee"
	FareLineZoneFee        FareLineCode = "zone_fee"
)

// FareLine is one named, signed monetary contributor to the grand total
type FareLine struct {
	Code   FareLineCode `json:"code"`
	Label  string       `json:"label"`
	Amount float64      `json:"amount"`
}

// FareBreakdown is an itemized fare. It is produced fresh on every
// recomputation and never mutated in place.
type FareBreakdown struct {
	Lines      []FareLine `json:"lines"`
	Subtotal   float64    `json:"subtotal"`
	GrandTotal float64    `json:"grand_total"`

	// Computable is false when required pricing inputs were absent and the
	// breakdown is a zeroed placeholder.
	Computable bool `json:"computable"`
}

// Line returns the amount of the line with the given code, or 0
func (f *FareBreakdown) Line(code FareLineCode) float64 {
	for _, l := range f.Lines {
		if l.Code == code {
			return l.Amount
		}
	}
	return 0
}
