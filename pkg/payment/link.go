package payment

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/paketshop/storefront-backend/pkg/config"
)

// Link describes the external payment hand-off surface: the provider URL the
// client opens (or encodes as a QR), a hosted QR image asset, and a generated
// fallback QR when the asset is unavailable.
type Link struct {
	URL        string `json:"url"`
	QRImageURL string `json:"qr_image_url"`
	QRFallback string `json:"qr_fallback_url"`
}

// Builder derives payment links from configuration.
type Builder struct {
	cfg config.PaymentConfig
}

// NewBuilder validates the payment configuration.
func NewBuilder(cfg config.PaymentConfig) (*Builder, error) {
	if strings.TrimSpace(cfg.ProviderURL) == "" {
		return nil, fmt.Errorf("payment provider url is required")
	}
	return &Builder{cfg: cfg}, nil
}

// Link returns the payment hand-off payload for the configured provider.
func (b *Builder) Link() Link {
	return Link{
		URL:        b.cfg.ProviderURL,
		QRImageURL: b.cfg.QRImageURL,
		QRFallback: b.fallbackQR(),
	}
}

func (b *Builder) fallbackQR() string {
	endpoint := strings.TrimRight(b.cfg.QRFallbackEndpoint, "/")
	params := url.Values{}
	params.Set("size", "250x250")
	params.Set("data", b.cfg.ProviderURL)
	params.Set("color", "000000")
	params.Set("bgcolor", "ffffff")
	return endpoint + "/?" + params.Encode()
}
