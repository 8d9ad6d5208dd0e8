package checkout

import (
	"context"
	"fmt"

	"github.com/paketshop/storefront-backend/internal/promo"
	"github.com/paketshop/storefront-backend/pkg/enums"
	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
	"github.com/paketshop/storefront-backend/pkg/logger"
)

// SubmitRequest is the manager-level submission payload.
type SubmitRequest struct {
	Form      Form
	Method    enums.PaymentMethod
	PromoCode string
	Device    Device
}

// Manager owns the checkout state machine. It evaluates promo codes, drives
// the coordinator, and persists flow state between requests.
type Manager struct {
	flows       FlowStore
	coordinator *Coordinator
	logg        *logger.Logger
}

// NewManager builds a checkout manager.
func NewManager(flows FlowStore, coordinator *Coordinator, logg *logger.Logger) (*Manager, error) {
	if flows == nil {
		return nil, fmt.Errorf("flow store required")
	}
	if coordinator == nil {
		return nil, fmt.Errorf("coordinator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{flows: flows, coordinator: coordinator, logg: logg}, nil
}

// Current returns the session's flow, defaulting to a fresh form.
func (m *Manager) Current(ctx context.Context, sessionID string) (*Flow, error) {
	flow, err := m.flows.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if flow == nil {
		return &Flow{State: enums.FlowStateForm}, nil
	}
	return flow, nil
}

// Preview evaluates a promo code against the current cart total without
// touching flow state.
func (m *Manager) Preview(ctx context.Context, sessionID, code string) (*promo.Result, int64, error) {
	view, err := m.coordinator.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	result := promo.Evaluate(code, view.TotalUZS)
	if !result.Valid {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "promo code not recognized")
	}
	return &result, promo.FinalTotal(view.TotalUZS, result.DiscountUZS), nil
}

// Submit runs a submission. A flow already awaiting confirmation must be
// confirmed or cancelled first; a completed flow starts over.
func (m *Manager) Submit(ctx context.Context, sessionID string, req SubmitRequest) (*Flow, error) {
	current, err := m.flows.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.State == enums.FlowStateAwaiting {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment confirmation is pending")
	}
	if current != nil && current.State == enums.FlowStateSubmitting {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "a submission is already in progress")
	}

	input := SubmitInput{
		SessionID: sessionID,
		Form:      req.Form,
		Method:    req.Method,
		Device:    req.Device,
	}
	if code := promo.Normalize(req.PromoCode); code != "" {
		view, err := m.coordinator.cart.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		result := promo.Evaluate(code, view.TotalUZS)
		if !result.Valid {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo code not recognized")
		}
		input.AppliedPromo = result.Code
		input.DiscountUZS = result.DiscountUZS
	}

	m.save(ctx, sessionID, &Flow{State: enums.FlowStateSubmitting, Method: req.Method})

	outcome, err := m.coordinator.Submit(ctx, input)
	if err != nil {
		// The submission never left the form; reset so the customer can retry.
		m.save(ctx, sessionID, &Flow{State: enums.FlowStateForm})
		return nil, err
	}

	flow := flowFromOutcome(req.Method, outcome)
	m.save(ctx, sessionID, flow)
	return flow, nil
}

// Confirm completes a flow that is awaiting manual payment confirmation.
func (m *Manager) Confirm(ctx context.Context, sessionID string) (*Flow, error) {
	current, err := m.flows.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current == nil || current.State != enums.FlowStateAwaiting {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no payment is awaiting confirmation")
	}

	outcome := outcomeFromFlow(current)
	m.coordinator.Finalize(ctx, sessionID, outcome)

	flow := flowFromOutcome(current.Method, outcome)
	m.save(ctx, sessionID, flow)
	return flow, nil
}

// Cancel abandons a pending payment and returns the customer to the form.
// The cart is left untouched.
func (m *Manager) Cancel(ctx context.Context, sessionID string) (*Flow, error) {
	current, err := m.flows.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current == nil || current.State != enums.FlowStateAwaiting {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no payment is awaiting confirmation")
	}

	flow := &Flow{State: enums.FlowStateForm}
	m.save(ctx, sessionID, flow)
	return flow, nil
}

// save is best effort: flow state lives in the same store as the cart, and a
// write failure there should not fail a submission that already happened.
func (m *Manager) save(ctx context.Context, sessionID string, flow *Flow) {
	if err := m.flows.Save(ctx, sessionID, flow); err != nil {
		m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "failed to persist checkout flow")
	}
}

func flowFromOutcome(method enums.PaymentMethod, outcome *Outcome) *Flow {
	return &Flow{
		State:        outcome.State,
		Method:       method,
		OrderID:      outcome.OrderID,
		SubtotalUZS:  outcome.SubtotalUZS,
		DiscountUZS:  outcome.DiscountUZS,
		TotalUZS:     outcome.TotalUZS,
		AppliedPromo: outcome.AppliedPromo,
		RedirectURL:  outcome.RedirectURL,
		Payment:      outcome.Payment,
		ContentIDs:   outcome.ContentIDs,
		Warnings:     outcome.Warnings,
	}
}

func outcomeFromFlow(flow *Flow) *Outcome {
	return &Outcome{
		State:        flow.State,
		OrderID:      flow.OrderID,
		SubtotalUZS:  flow.SubtotalUZS,
		DiscountUZS:  flow.DiscountUZS,
		TotalUZS:     flow.TotalUZS,
		AppliedPromo: flow.AppliedPromo,
		RedirectURL:  flow.RedirectURL,
		Payment:      flow.Payment,
		ContentIDs:   flow.ContentIDs,
		Warnings:     flow.Warnings,
	}
}
