package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paketshop/storefront-backend/pkg/config"
	"github.com/paketshop/storefront-backend/pkg/logger"
)

// Client posts operator notifications through the Bot API. A client built
// without credentials is a silent no-op, matching the storefront behaviour
// when the bot is not configured.
type Client struct {
	cfg  config.TelegramConfig
	http *http.Client
	logg *logger.Logger
}

// NewClient wires the notification channel. Missing credentials are not an
// error; Send becomes a no-op.
func NewClient(ctx context.Context, cfg config.TelegramConfig, logg *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logg != nil && !cfg.Enabled() {
		logg.Warn(ctx, "telegram credentials not configured, notifications disabled")
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		logg: logg,
	}
}

// Enabled reports whether the channel will actually deliver messages.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.Enabled()
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send delivers an HTML-formatted message to the configured chat. Returns nil
// without any call when the channel is unconfigured.
func (c *Client) Send(ctx context.Context, text string) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.cfg.ChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("encoding telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.cfg.BaseURL, c.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram responded %d", resp.StatusCode)
	}
	return nil
}
