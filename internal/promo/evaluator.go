package promo

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Result reports whether a code was recognized and the discount it grants
// against the provided subtotal.
type Result struct {
	Valid       bool   `json:"valid"`
	Code        string `json:"code,omitempty"`
	DiscountUZS int64  `json:"discount"`
}

// Discount fractions keyed by normalized code. The table is the single source
// of truth for recognized codes.
var discountByCode = map[string]decimal.Decimal{
	"PAKET2026": decimal.NewFromFloat(0.10),
	"ADMIN":     decimal.NewFromFloat(0.50),
}

// Normalize trims and upper-cases a user-entered code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate maps a code to its discount for the given subtotal. Unrecognized
// codes return a zero-discount invalid result. The discount is clamped so the
// payable amount never goes negative.
func Evaluate(code string, subtotalUZS int64) Result {
	normalized := Normalize(code)
	fraction, ok := discountByCode[normalized]
	if !ok {
		return Result{}
	}

	discount := decimal.NewFromInt(subtotalUZS).Mul(fraction).Round(0).IntPart()
	if discount > subtotalUZS {
		discount = subtotalUZS
	}
	if discount < 0 {
		discount = 0
	}

	return Result{
		Valid:       true,
		Code:        normalized,
		DiscountUZS: discount,
	}
}

// FinalTotal applies a discount to a subtotal, clamping at zero.
func FinalTotal(subtotalUZS, discountUZS int64) int64 {
	total := subtotalUZS - discountUZS
	if total < 0 {
		return 0
	}
	return total
}
