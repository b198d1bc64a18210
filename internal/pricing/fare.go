package pricing

import (
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
)

// FareInput carries everything Assemble needs. Inputs are supplied already
// validated by collaborators; the assembler itself never fails.
type FareInput struct {
	Items       []entities.LineItem
	Promo       *entities.PromoCode
	Delivery    *entities.DeliveryFareParameters
	Zone        ZoneFeeResult
	SurgeActive bool
	DistanceKm  float64
}

// Assemble combines line items, taxes, promo discount, delivery charges,
// conditional surcharges and zone fees into one itemized breakdown with a
// fixed ordering of additive terms. Intermediate math is kept unrounded;
// only the returned lines and total are rounded to minor units.
//
// When delivery parameters are absent the fare is not yet computable and a
// zeroed breakdown is returned instead of an error.
func Assemble(in FareInput) entities.FareBreakdown {
	if in.Delivery == nil {
		return entities.FareBreakdown{Computable: false}
	}

	subtotal := 0.0
	taxTotal := 0.0
	for _, it := range in.Items {
		qty := it.Quantity
		if qty < 0 {
			qty = 0
		}
		unit := it.UnitPrice - it.DiscountAmount
		if it.DiscountAmount > it.UnitPrice {
			// A discount larger than the price is ignored rather
			// than inverting the sign of the item.
			unit = it.UnitPrice
		}
		subtotal += unit * float64(qty)
		taxTotal += it.Tax.Total() * float64(qty)
	}

	promoDiscount := promoDiscountFor(in.Promo, subtotal)
	itemsPayable := subtotal - promoDiscount

	distance := in.DistanceKm
	if distance < 0 {
		distance = 0
	}
	deliveryCharge := in.Delivery.BaseCharge
	if distance > in.Delivery.DistanceThresholdKm {
		deliveryCharge += (distance - in.Delivery.DistanceThresholdKm) * in.Delivery.PerKmChargeBeyondThreshold
	}

	// Delivery GST is split into two equal jurisdiction halves.
	deliveryTax := deliveryCharge * in.Delivery.GSTPercentOnDelivery / 100
	taxHalf := deliveryTax / 2

	surgeFee := 0.0
	if in.SurgeActive {
		surgeFee = in.Delivery.SurgeFee
	}

	grandTotal := itemsPayable + taxTotal + deliveryCharge + deliveryTax +
		in.Delivery.PlatformFee + surgeFee + in.Zone.Fee

	lines := []entities.FareLine{
		{Code: entities.FareLineSubtotal, Label: "Item total", Amount: round2(subtotal)},
		{Code: entities.FareLineTax, Label: "Taxes", Amount: round2(taxTotal)},
	}
	if promoDiscount > 0 {
		lines = append(lines, entities.FareLine{
			Code: entities.FareLinePromoDiscount, Label: "Promo discount", Amount: -round2(promoDiscount),
		})
	}
	lines = append(lines,
		entities.FareLine{Code: entities.FareLineDeliveryCharge, Label: "Delivery charge", Amount: round2(deliveryCharge)},
		entities.FareLine{Code: entities.FareLineDeliveryCGST, Label: "Delivery CGST", Amount: round2(taxHalf)},
		entities.FareLine{Code: entities.FareLineDeliverySGST, Label: "Delivery SGST", Amount: round2(taxHalf)},
		entities.FareLine{Code: entities.FareLinePlatformFee, Label: "Platform fee", Amount: round2(in.Delivery.PlatformFee)},
	)
	if in.SurgeActive {
		lines = append(lines, entities.FareLine{
			Code: entities.FareLineSurgeFee, Label: "High demand fee", Amount: round2(surgeFee),
		})
	}
	if in.Zone.Zone != nil {
		lines = append(lines, entities.FareLine{
			Code: entities.FareLineZoneFee, Label: "Zone fee", Amount: round2(in.Zone.Fee),
		})
	}

	return entities.FareBreakdown{
		Lines:      lines,
		Subtotal:   round2(subtotal),
		GrandTotal: round2(grandTotal),
		Computable: true,
	}
}

// promoDiscountFor computes the promo discount against a subtotal. The
// discount never exceeds the subtotal it discounts.
func promoDiscountFor(promo *entities.PromoCode, subtotal float64) float64 {
	if promo == nil || subtotal <= 0 {
		return 0
	}
	if promo.MinimumSubtotal > 0 && subtotal < promo.MinimumSubtotal {
		return 0
	}

	var discount float64
	switch promo.DiscountKind {
	case entities.PromoDiscountPercent:
		discount = subtotal * promo.DiscountValue / 100
	default:
		discount = promo.DiscountValue
	}

	if discount < 0 {
		return 0
	}
	if discount > subtotal {
		return subtotal
	}
	return discount
}
