package types

import "strconv"

// FormatUZS renders an amount in the smallest currency unit as the
// storefront's display format, e.g. 1000000 -> "1 000 000 UZS".
func FormatUZS(amount int64) string {
	return GroupDigits(amount) + " UZS"
}

// GroupDigits inserts a space every three digits from the right.
func GroupDigits(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, d)
	}
	if negative {
		return "-" + string(out)
	}
	return string(out)
}
