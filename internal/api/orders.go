package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/order"
)

type createOrderRequest struct {
	CartID        string `json:"cart_id" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderItemResponse struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	SelectedColor string          `json:"selected_color,omitempty"`
	SelectedSize  string          `json:"selected_size,omitempty"`
	BlouseOption  string          `json:"blouse_option,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Savings       decimal.Decimal `json:"savings"`
	Image         string          `json:"image,omitempty"`
}

type orderResponse struct {
	ID               string                   `json:"id"`
	Items            []orderItemResponse      `json:"items"`
	Totals           totalsResponse           `json:"totals"`
	CouponCode       string                   `json:"coupon_code,omitempty"`
	PaymentMethod    string                   `json:"payment_method"`
	Status           string                   `json:"status"`
	AmountLabel      string                   `json:"amount_label"`
	Actions          order.ActionAvailability `json:"actions"`
	ItemsUnavailable bool                     `json:"items_unavailable,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

func toOrderResponse(v *order.View) orderResponse {
	o := v.Order
	resp := orderResponse{
		ID: o.ID,
		Totals: totalsResponse{
			Subtotal:   o.Totals.Subtotal,
			Shipping:   o.Totals.Shipping,
			Discount:   o.Totals.Discount,
			GrandTotal: o.Totals.GrandTotal,
		},
		CouponCode:       o.CouponCode,
		PaymentMethod:    string(o.PaymentMethod),
		Status:           string(o.Status),
		AmountLabel:      v.AmountLabel,
		Actions:          v.Actions,
		ItemsUnavailable: v.ItemsUnavailable,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	resp.Items = make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID:     it.ProductID,
			Name:          it.Name,
			SKU:           it.SKU,
			SelectedColor: it.SelectedColor,
			SelectedSize:  it.SelectedSize,
			BlouseOption:  it.BlouseOption,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			Subtotal:      it.Subtotal,
			Savings:       it.Savings,
			Image:         it.Image,
		})
	}
	return resp
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.orders.Checkout(r.Context(), order.CheckoutParams{
		CartID:        req.CartID,
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(v))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	v, err := h.orders.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(v))
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	next, err := order.ParseStatus(req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}

	v, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), next)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(v))
}
