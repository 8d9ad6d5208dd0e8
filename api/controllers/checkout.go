package controllers

import (
	"net/http"
	"strconv"

	"github.com/paketshop/storefront-backend/api/responses"
	"github.com/paketshop/storefront-backend/api/validators"
	checkoutsvc "github.com/paketshop/storefront-backend/internal/checkout"
	"github.com/paketshop/storefront-backend/pkg/enums"
	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
	"github.com/paketshop/storefront-backend/pkg/logger"
	"github.com/paketshop/storefront-backend/pkg/types"
)

type submitCheckoutRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	City          string `json:"city" validate:"required"`
	Address       string `json:"address" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=online cash"`
	PromoCode     string `json:"promo_code"`
	ViewportWidth int    `json:"viewport_width"`
}

type promoRequest struct {
	Code string `json:"code" validate:"required"`
}

type promoResponse struct {
	Code           string `json:"code"`
	DiscountUZS    int64  `json:"discount"`
	TotalUZS       int64  `json:"total"`
	FormattedTotal string `json:"formatted_total"`
}

// CheckoutGet returns the session's current checkout flow.
func CheckoutGet(manager *checkoutsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, manager != nil, logg)
		if !ok {
			return
		}

		flow, err := manager.Current(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, flow)
	}
}

// CheckoutSubmit runs an order submission for the session's cart.
func CheckoutSubmit(manager *checkoutsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, manager != nil, logg)
		if !ok {
			return
		}

		var payload submitCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		flow, err := manager.Submit(r.Context(), sessionID, checkoutsvc.SubmitRequest{
			Form: checkoutsvc.Form{
				FirstName: payload.FirstName,
				LastName:  payload.LastName,
				Phone:     payload.Phone,
				City:      payload.City,
				Address:   payload.Address,
			},
			Method:    method,
			PromoCode: payload.PromoCode,
			Device: checkoutsvc.Device{
				UserAgent:     r.UserAgent(),
				ViewportWidth: viewportWidth(r, payload.ViewportWidth),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, flow)
	}
}

// CheckoutPromo previews a promo code against the session's cart.
func CheckoutPromo(manager *checkoutsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, manager != nil, logg)
		if !ok {
			return
		}

		var payload promoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, total, err := manager.Preview(r.Context(), sessionID, payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, promoResponse{
			Code:           result.Code,
			DiscountUZS:    result.DiscountUZS,
			TotalUZS:       total,
			FormattedTotal: types.FormatUZS(total),
		})
	}
}

// CheckoutConfirm completes a submission awaiting manual payment confirmation.
func CheckoutConfirm(manager *checkoutsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, manager != nil, logg)
		if !ok {
			return
		}

		flow, err := manager.Confirm(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, flow)
	}
}

// CheckoutCancel abandons a pending payment and returns to the form.
func CheckoutCancel(manager *checkoutsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, manager != nil, logg)
		if !ok {
			return
		}

		flow, err := manager.Cancel(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, flow)
	}
}

// viewportWidth prefers the body field, falling back to the client hint
// header sent by modern browsers.
func viewportWidth(r *http.Request, fromBody int) int {
	if fromBody > 0 {
		return fromBody
	}
	if raw := r.Header.Get("Sec-CH-Viewport-Width"); raw != "" {
		if width, err := strconv.Atoi(raw); err == nil {
			return width
		}
	}
	return 0
}
