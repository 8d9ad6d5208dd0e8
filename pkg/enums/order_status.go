package enums

// OrderStatus mirrors the status labels stored by the storefront's admin
// console. Orders are created pending; later transitions belong to order
// management, not checkout.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Kutilmoqda"
	OrderStatusPaid      OrderStatus = "To'landi"
	OrderStatusShipping  OrderStatus = "Yetkazilmoqda"
	OrderStatusCompleted OrderStatus = "Yakunlandi"
)

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}
