package types

import "testing"

func TestFormatUZS(t *testing.T) {
	cases := map[int64]string{
		0:        "0 UZS",
		950:      "950 UZS",
		1000:     "1 000 UZS",
		100000:   "100 000 UZS",
		1000000:  "1 000 000 UZS",
		12500000: "12 500 000 UZS",
		-45000:   "-45 000 UZS",
	}
	for amount, want := range cases {
		if got := FormatUZS(amount); got != want {
			t.Fatalf("FormatUZS(%d) = %q, want %q", amount, got, want)
		}
	}
}
