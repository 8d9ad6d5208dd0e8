package pixel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paketshop/storefront-backend/pkg/config"
	"github.com/paketshop/storefront-backend/pkg/enums"
	"github.com/paketshop/storefront-backend/pkg/logger"
)

// Client forwards storefront analytics events to the pixel's server-side
// events endpoint. Callers treat delivery as fire-and-forget: every error is
// returned for logging and then discarded.
type Client struct {
	cfg  config.PixelConfig
	http *http.Client
	logg *logger.Logger
	now  func() time.Time
}

// NewClient wires the analytics collaborator. Missing credentials disable
// delivery without error.
func NewClient(ctx context.Context, cfg config.PixelConfig, logg *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logg != nil && !cfg.Enabled() {
		logg.Warn(ctx, "pixel credentials not configured, analytics disabled")
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		logg: logg,
		now:  time.Now,
	}
}

// Enabled reports whether events will actually be delivered.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.Enabled()
}

// Currency returns the configured reporting currency.
func (c *Client) Currency() string {
	return c.cfg.Currency
}

type eventsRequest struct {
	Data []eventPayload `json:"data"`
}

type eventPayload struct {
	EventName  string         `json:"event_name"`
	EventTime  int64          `json:"event_time"`
	CustomData map[string]any `json:"custom_data,omitempty"`
}

// Track sends a single named event with its properties map.
func (c *Client) Track(ctx context.Context, event enums.PixelEvent, properties map[string]any) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(eventsRequest{
		Data: []eventPayload{{
			EventName:  event.String(),
			EventTime:  c.now().Unix(),
			CustomData: properties,
		}},
	})
	if err != nil {
		return fmt.Errorf("encoding pixel event: %w", err)
	}

	url := fmt.Sprintf("%s/%s/events?access_token=%s", c.cfg.Endpoint, c.cfg.PixelID, c.cfg.AccessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building pixel request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending pixel event: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pixel responded %d", resp.StatusCode)
	}
	return nil
}
