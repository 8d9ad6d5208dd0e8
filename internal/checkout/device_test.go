package checkout

import "testing"

func TestDeviceIsMobile(t *testing.T) {
	tests := []struct {
		name   string
		device Device
		mobile bool
	}{
		{"iphone agent", Device{UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"}, true},
		{"android agent", Device{UserAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8)"}, true},
		{"ipad agent", Device{UserAgent: "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)"}, true},
		{"desktop agent", Device{UserAgent: "Mozilla/5.0 (X11; Linux x86_64)", ViewportWidth: 1920}, false},
		{"narrow desktop viewport", Device{UserAgent: "Mozilla/5.0 (X11; Linux x86_64)", ViewportWidth: 500}, true},
		{"viewport at boundary", Device{UserAgent: "Mozilla/5.0 (X11; Linux x86_64)", ViewportWidth: 768}, false},
		{"no hints", Device{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.IsMobile(); got != tt.mobile {
				t.Fatalf("expected IsMobile=%v, got %v", tt.mobile, got)
			}
		})
	}
}
