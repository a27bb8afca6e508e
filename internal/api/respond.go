package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/cart"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/catalog"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/coupon"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/order"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the flat error envelope {"error": ..., "code": ...}. The
// envelope is small and fixed-shape, so it is encoded directly with jx.
func writeError(w http.ResponseWriter, status int, msg string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("error", func(e *jx.Encoder) { e.Str(msg) })
		e.Field("code", func(e *jx.Encoder) { e.Int(status) })
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// respondError maps domain errors to HTTP statuses. Unknown errors are logged
// and returned as opaque 500s.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, cart.ErrNotFound),
		errors.Is(err, cart.ErrEntryNotFound),
		errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, coupon.ErrInvalidCoupon),
		errors.Is(err, coupon.ErrEmptyCode),
		errors.Is(err, coupon.ErrCouponExpired),
		errors.Is(err, coupon.ErrCouponUsageLimitReached),
		errors.Is(err, order.ErrCouponNoLongerValid),
		errors.Is(err, cart.ErrProductUnavailable):
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, cart.ErrCouponInFlight),
		errors.Is(err, order.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrUnknownPaymentMethod),
		errors.Is(err, order.ErrUnknownStatus):
		writeError(w, http.StatusBadRequest, err.Error())

	default:
		zctx.From(r.Context()).Error("Internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody parses and validates a JSON request body into dst.
func (h *Handler) decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(err, "decode body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return errors.Wrap(err, "validate body")
	}
	return nil
}
