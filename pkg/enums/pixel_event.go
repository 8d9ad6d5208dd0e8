package enums

// PixelEvent names the analytics events forwarded to the pixel collaborator.
type PixelEvent string

const (
	PixelEventViewContent PixelEvent = "ViewContent"
	PixelEventAddToCart   PixelEvent = "AddToCart"
	PixelEventPurchase    PixelEvent = "Purchase"
)

// String implements fmt.Stringer.
func (p PixelEvent) String() string {
	return string(p)
}
