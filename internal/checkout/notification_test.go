package checkout

import (
	"strings"
	"testing"

	"github.com/paketshop/storefront-backend/internal/cart"
	"github.com/paketshop/storefront-backend/pkg/enums"
)

func TestBuildOrderMessage(t *testing.T) {
	lines := cart.Lines{
		{ProductID: 1, Name: "Plov paketi", UnitPriceUZS: 45_000, Quantity: 2},
		{ProductID: 2, Name: "Non to'plami", UnitPriceUZS: 12_000, Quantity: 4},
	}

	message := buildOrderMessage(validForm(), lines, enums.PaymentMethodOnline, "PAKET2026", 13_800, 124_200)

	for _, want := range []string{
		"YANGI BUYURTMA! (PaketShop)",
		"<b>Mijoz:</b> Aziz Karimov",
		"<b>Tel:</b> +998901234567",
		"<b>Manzil:</b> Toshkent, Chilonzor 12",
		"Paynet (Onlayn)",
		"1. Plov paketi (x2) - 90 000 UZS",
		"2. Non to'plami (x4) - 48 000 UZS",
		"<b>Promo:</b> PAKET2026 (-13 800 UZS)",
		"<b>JAMI TO'LOV:</b> 124 200 UZS",
	} {
		if !strings.Contains(message, want) {
			t.Fatalf("expected message to contain %q:\n%s", want, message)
		}
	}
}

func TestBuildOrderMessageCashWithoutPromo(t *testing.T) {
	lines := cart.Lines{{ProductID: 1, Name: "Plov paketi", UnitPriceUZS: 45_000, Quantity: 1}}

	message := buildOrderMessage(validForm(), lines, enums.PaymentMethodCash, "", 0, 45_000)

	if !strings.Contains(message, "Naqd (Yetkazilganda)") {
		t.Fatalf("expected cash payment label:\n%s", message)
	}
	if strings.Contains(message, "Promo:") {
		t.Fatalf("expected no promo section:\n%s", message)
	}
}
