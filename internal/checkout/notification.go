package checkout

import (
	"fmt"
	"strings"

	"github.com/paketshop/storefront-backend/internal/cart"
	"github.com/paketshop/storefront-backend/pkg/enums"
	"github.com/paketshop/storefront-backend/pkg/types"
)

// buildOrderMessage renders the operator notification sent for every
// submission. Telegram parses it as HTML.
func buildOrderMessage(form Form, lines cart.Lines, method enums.PaymentMethod, appliedPromo string, discountUZS, totalUZS int64) string {
	var items strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&items, "%d. %s (x%d) - %s\n",
			i+1, line.Name, line.Quantity, types.FormatUZS(line.UnitPriceUZS*int64(line.Quantity)))
	}

	paymentLabel := "💵 Naqd (Yetkazilganda)"
	if method == enums.PaymentMethodOnline {
		paymentLabel = "📲 Paynet (Onlayn)"
	}

	var promoInfo string
	if appliedPromo != "" {
		promoInfo = fmt.Sprintf("\n🏷 <b>Promo:</b> %s (-%s)", appliedPromo, types.FormatUZS(discountUZS))
	}

	return fmt.Sprintf(`📦 <b>YANGI BUYURTMA! (PaketShop)</b>

👤 <b>Mijoz:</b> %s
📞 <b>Tel:</b> %s
📍 <b>Manzil:</b> %s, %s

💳 <b>To'lov turi:</b> %s

🛒 <b>Mahsulotlar:</b>
%s
------------------
%s
💰 <b>JAMI TO'LOV:</b> %s`,
		form.FullName(),
		form.Phone,
		form.City, form.Address,
		paymentLabel,
		strings.TrimRight(items.String(), "\n"),
		promoInfo,
		types.FormatUZS(totalUZS),
	)
}
