package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paketshop/storefront-backend/pkg/enums"
	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
	"github.com/paketshop/storefront-backend/pkg/payment"
	"github.com/paketshop/storefront-backend/pkg/redis"
)

// Flow is one checkout instance as persisted between requests.
type Flow struct {
	State        enums.FlowState     `json:"state"`
	Method       enums.PaymentMethod `json:"payment_method,omitempty"`
	OrderID      string              `json:"order_id,omitempty"`
	SubtotalUZS  int64               `json:"subtotal"`
	DiscountUZS  int64               `json:"discount"`
	TotalUZS     int64               `json:"total"`
	AppliedPromo string              `json:"applied_promo,omitempty"`
	RedirectURL  string              `json:"redirect_url,omitempty"`
	Payment      *payment.Link       `json:"payment,omitempty"`
	ContentIDs   []string            `json:"content_ids,omitempty"`
	Warnings     []string            `json:"warnings,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// FlowStore persists checkout flow state, keyed by session. Load returns
// (nil, nil) when no flow exists.
type FlowStore interface {
	Load(ctx context.Context, sessionID string) (*Flow, error)
	Save(ctx context.Context, sessionID string, flow *Flow) error
	Delete(ctx context.Context, sessionID string) error
}

type redisFlows struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFlowStore builds a Redis-backed flow store. Abandoned flows expire
// after ttl.
func NewFlowStore(client *redis.Client, ttl time.Duration) (FlowStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisFlows{client: client, ttl: ttl}, nil
}

func (s *redisFlows) Load(ctx context.Context, sessionID string) (*Flow, error) {
	raw, err := s.client.Get(ctx, s.client.FlowKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load checkout flow")
	}

	var flow Flow
	if err := json.Unmarshal([]byte(raw), &flow); err != nil {
		// Unreadable state is dropped; the customer starts over at the form.
		return nil, nil
	}
	return &flow, nil
}

func (s *redisFlows) Save(ctx context.Context, sessionID string, flow *Flow) error {
	flow.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(flow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to encode checkout flow")
	}
	if err := s.client.Set(ctx, s.client.FlowKey(sessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to save checkout flow")
	}
	return nil
}

func (s *redisFlows) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.FlowKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete checkout flow")
	}
	return nil
}
