package checkout

import "regexp"

// Device captures the client hints used to pick the online payment handoff.
type Device struct {
	UserAgent     string
	ViewportWidth int
}

var mobileAgentPattern = regexp.MustCompile(`(?i)iPhone|iPad|iPod|Android`)

// Viewports narrower than this are treated as mobile regardless of agent.
const mobileViewportMax = 768

// IsMobile reports whether the client should receive a redirect handoff
// instead of the on-page QR flow.
func (d Device) IsMobile() bool {
	if mobileAgentPattern.MatchString(d.UserAgent) {
		return true
	}
	return d.ViewportWidth > 0 && d.ViewportWidth < mobileViewportMax
}
