package database

import (
	"testing"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeTierKind(t *testing.T) {
	cases := []struct {
		raw  string
		want entities.TierDiscountKind
	}{
		{"percent", entities.TierDiscountPercent},
		{"percentage", entities.TierDiscountPercent},
		{"percentOff", entities.TierDiscountPercent},
		{"unitPrice", entities.TierDiscountExplicitUnitPrice},
		{"explicitUnitPrice", entities.TierDiscountExplicitUnitPrice},
		{"fixedUnitPrice", entities.TierDiscountExplicitUnitPrice},
		{"flat", entities.TierDiscountPerUnitFlat},
		{"perUnit", entities.TierDiscountPerUnitFlat},
		{"discount", entities.TierDiscountPerUnitFlat},
		{"perUnitFlat", entities.TierDiscountPerUnitFlat},
		// Unknown kinds default to the flat per-unit rule.
		{"", entities.TierDiscountPerUnitFlat},
		{"mystery", entities.TierDiscountPerUnitFlat},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeTierKind(tc.raw), "raw kind %q", tc.raw)
	}
}
