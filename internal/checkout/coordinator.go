package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/paketshop/storefront-backend/internal/cart"
	"github.com/paketshop/storefront-backend/pkg/db/models"
	"github.com/paketshop/storefront-backend/pkg/enums"
	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
	"github.com/paketshop/storefront-backend/pkg/logger"
	"github.com/paketshop/storefront-backend/pkg/metrics"
	"github.com/paketshop/storefront-backend/pkg/payment"
)

type orderInserter interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

type notifier interface {
	Send(ctx context.Context, text string) error
}

type tracker interface {
	Track(ctx context.Context, event enums.PixelEvent, props map[string]any) error
	Currency() string
}

type cartAccessor interface {
	Get(ctx context.Context, sessionID string) (*cart.View, error)
	Clear(ctx context.Context, sessionID string) (*cart.View, error)
}

// SubmitInput is everything the coordinator needs for one submission.
type SubmitInput struct {
	SessionID    string
	Form         Form
	Method       enums.PaymentMethod
	AppliedPromo string
	DiscountUZS  int64
	Device       Device
}

// Outcome reports where a submission landed. Online desktop submissions stop
// at AwaitingConfirmation and finish via Finalize; everything else reaches
// Success before returning.
type Outcome struct {
	State        enums.FlowState
	OrderID      string
	SubtotalUZS  int64
	DiscountUZS  int64
	TotalUZS     int64
	AppliedPromo string
	RedirectURL  string
	Payment      *payment.Link
	ContentIDs   []string
	Warnings     []string
}

// Coordinator drives order submission: it records the order, notifies the
// operator channel, hands off payment, reports analytics, and clears the
// cart. Collaborator failures never abort a submission.
type Coordinator struct {
	orders  orderInserter
	tg      notifier
	pixel   tracker
	cart    cartAccessor
	links   *payment.Builder
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger

	mobileWait time.Duration
	cashWait   time.Duration
	sleep      func(time.Duration)
	now        func() time.Time
}

// CoordinatorOptions wires the coordinator's collaborators. Telegram and
// pixel are optional; the rest are required.
type CoordinatorOptions struct {
	Orders     orderInserter
	Telegram   notifier
	Pixel      tracker
	Cart       cartAccessor
	Links      *payment.Builder
	Metrics    *metrics.CheckoutMetrics
	Logger     *logger.Logger
	MobileWait time.Duration
	CashWait   time.Duration
}

// NewCoordinator validates the collaborator set and builds a coordinator.
func NewCoordinator(opts CoordinatorOptions) (*Coordinator, error) {
	if opts.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if opts.Cart == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if opts.Links == nil {
		return nil, fmt.Errorf("payment link builder required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewCheckoutMetrics(nil)
	}
	return &Coordinator{
		orders:     opts.Orders,
		tg:         opts.Telegram,
		pixel:      opts.Pixel,
		cart:       opts.Cart,
		links:      opts.Links,
		metrics:    opts.Metrics,
		logg:       opts.Logger,
		mobileWait: opts.MobileWait,
		cashWait:   opts.CashWait,
		sleep:      time.Sleep,
		now:        time.Now,
	}, nil
}

// Submit runs the submission pipeline for the session's cart.
func (c *Coordinator) Submit(ctx context.Context, input SubmitInput) (*Outcome, error) {
	if err := input.Form.Validate(); err != nil {
		return nil, err
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}

	view, err := c.cart.Get(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if view.Count == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	now := c.now()
	outcome := &Outcome{
		OrderID:      fmt.Sprintf("ORD-%d", now.UnixMilli()),
		SubtotalUZS:  view.TotalUZS,
		DiscountUZS:  input.DiscountUZS,
		TotalUZS:     view.TotalUZS - input.DiscountUZS,
		AppliedPromo: input.AppliedPromo,
		ContentIDs:   view.Items.ContentIDs(),
	}
	if outcome.TotalUZS < 0 {
		outcome.TotalUZS = 0
	}

	ctx = c.logg.WithOrderID(ctx, outcome.OrderID)

	c.recordOrder(ctx, input, outcome, now)
	c.notifyOperator(ctx, input, view.Items, outcome)

	switch {
	case input.Method == enums.PaymentMethodOnline && input.Device.IsMobile():
		link := c.links.Link()
		outcome.RedirectURL = link.URL
		c.sleep(c.mobileWait)
		c.finalize(ctx, input.SessionID, outcome)
	case input.Method == enums.PaymentMethodOnline:
		link := c.links.Link()
		outcome.Payment = &link
		outcome.State = enums.FlowStateAwaiting
		c.metrics.IncSubmission(input.Method.String(), "awaiting_confirmation")
	default:
		c.sleep(c.cashWait)
		c.finalize(ctx, input.SessionID, outcome)
	}

	if outcome.State == enums.FlowStateSuccess {
		c.metrics.IncSubmission(input.Method.String(), "success")
		c.metrics.ObserveOrderValue(outcome.TotalUZS)
	}

	return outcome, nil
}

// Finalize completes a submission that stopped at awaiting confirmation:
// analytics, cart clear, terminal state.
func (c *Coordinator) Finalize(ctx context.Context, sessionID string, outcome *Outcome) {
	ctx = c.logg.WithOrderID(ctx, outcome.OrderID)
	c.finalize(ctx, sessionID, outcome)
	c.metrics.IncSubmission(enums.PaymentMethodOnline.String(), "success")
	c.metrics.ObserveOrderValue(outcome.TotalUZS)
}

func (c *Coordinator) finalize(ctx context.Context, sessionID string, outcome *Outcome) {
	c.trackPurchase(ctx, outcome)
	if _, err := c.cart.Clear(ctx, sessionID); err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "failed to clear cart after order")
		c.metrics.IncCollaboratorFailure("cart_store")
	}
	outcome.State = enums.FlowStateSuccess
}

// recordOrder persists the order. A storage failure is reported back as a
// warning and the submission continues.
func (c *Coordinator) recordOrder(ctx context.Context, input SubmitInput, outcome *Outcome, now time.Time) {
	order := &models.Order{
		ID:            outcome.OrderID,
		CustomerName:  input.Form.FullName(),
		Phone:         input.Form.Phone,
		TotalUZS:      outcome.TotalUZS,
		Status:        enums.OrderStatusPending,
		Date:          now.Format("2006-01-02"),
		PaymentMethod: input.Method.Label(),
	}
	if _, err := c.orders.Create(ctx, order); err != nil {
		c.logg.Error(ctx, "failed to save order", err)
		c.metrics.IncCollaboratorFailure("order_store")
		outcome.Warnings = append(outcome.Warnings, "order record not saved")
	}
}

func (c *Coordinator) notifyOperator(ctx context.Context, input SubmitInput, lines cart.Lines, outcome *Outcome) {
	if c.tg == nil {
		return
	}
	message := buildOrderMessage(input.Form, lines, input.Method, outcome.AppliedPromo, outcome.DiscountUZS, outcome.TotalUZS)
	if err := c.tg.Send(ctx, message); err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "failed to send order notification")
		c.metrics.IncCollaboratorFailure("telegram")
	}
}

func (c *Coordinator) trackPurchase(ctx context.Context, outcome *Outcome) {
	if c.pixel == nil {
		return
	}
	err := c.pixel.Track(ctx, enums.PixelEventPurchase, map[string]any{
		"content_ids":  outcome.ContentIDs,
		"content_type": "product",
		"order_id":     outcome.OrderID,
		"value":        outcome.TotalUZS,
		"currency":     c.pixel.Currency(),
	})
	if err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "failed to track purchase")
		c.metrics.IncCollaboratorFailure("pixel")
	}
}
