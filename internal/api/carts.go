package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/cart"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/order"
)

type addItemRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,gte=1"`
	SelectedColor string `json:"selected_color"`
	SelectedSize  string `json:"selected_size"`
	BlouseOption  string `json:"blouse_option"`
}

// updateItemRequest deliberately skips server-side quantity validation: a
// quantity below 1 is answered as a no-op with applied=false, not an error.
type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type cartLineResponse struct {
	EntryID       string          `json:"entry_id"`
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	SelectedColor string          `json:"selected_color,omitempty"`
	SelectedSize  string          `json:"selected_size,omitempty"`
	BlouseOption  string          `json:"blouse_option,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ListPrice     decimal.Decimal `json:"list_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Savings       decimal.Decimal `json:"savings"`
	Image         string          `json:"image,omitempty"`
	// Unavailable marks entries whose product has vanished from the catalog.
	Unavailable bool `json:"unavailable,omitempty"`
}

type totalsResponse struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Discount   decimal.Decimal `json:"discount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

type couponResponse struct {
	Code        string          `json:"code"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type cartResponse struct {
	ID      string             `json:"id"`
	Lines   []cartLineResponse `json:"lines"`
	Coupon  *couponResponse    `json:"coupon,omitempty"`
	Totals  totalsResponse     `json:"totals"`
	Applied *bool              `json:"applied,omitempty"`
	// AmountLabel is set only when the client names a payment method, so the
	// summary screen can caption the grand total before checkout.
	AmountLabel string `json:"amount_label,omitempty"`
}

func toCartResponse(q *cart.Quote) cartResponse {
	resp := cartResponse{
		ID:    q.Cart.ID,
		Lines: make([]cartLineResponse, 0, len(q.Lines)),
		Totals: totalsResponse{
			Subtotal:   q.Totals.Subtotal,
			Shipping:   q.Totals.Shipping,
			Discount:   q.Totals.Discount,
			GrandTotal: q.Totals.GrandTotal,
		},
	}
	if q.Discount != nil {
		resp.Coupon = &couponResponse{
			Code:        q.Discount.Code,
			Amount:      q.Discount.Amount,
			Description: q.Discount.Description,
		}
	}

	for i, l := range q.Lines {
		line := cartLineResponse{
			EntryID:     l.EntryID,
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			ListPrice:   l.ListPrice,
			Subtotal:    l.Subtotal,
			Savings:     l.Savings,
			Image:       l.DisplayImage,
			Unavailable: l.ListPrice.IsZero() && l.UnitPrice.IsZero(),
		}
		if i < len(q.Cart.Entries) {
			e := q.Cart.Entries[i]
			line.SelectedColor = e.SelectedColor
			line.SelectedSize = e.SelectedSize
			line.BlouseOption = e.BlouseOption
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}

func (h *Handler) createCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Create(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": c.ID})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	q, err := h.carts.Quote(r.Context(), chi.URLParam(r, "cartID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := toCartResponse(q)
	if m := order.PaymentMethod(r.URL.Query().Get("payment_method")); order.KnownPaymentMethod(m) {
		resp.AmountLabel = order.AmountLabel(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cartID := chi.URLParam(r, "cartID")
	if _, err := h.carts.AddItem(r.Context(), cartID, cart.AddItemParams{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		SelectedColor: req.SelectedColor,
		SelectedSize:  req.SelectedSize,
		BlouseOption:  req.BlouseOption,
	}); err != nil {
		respondError(w, r, err)
		return
	}
	h.respondQuote(w, r, cartID, nil)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cartID := chi.URLParam(r, "cartID")
	_, applied, err := h.carts.UpdateQuantity(r.Context(), cartID, chi.URLParam(r, "entryID"), req.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondQuote(w, r, cartID, &applied)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	_, applied, err := h.carts.RemoveEntry(r.Context(), cartID, chi.URLParam(r, "entryID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondQuote(w, r, cartID, &applied)
}

func (h *Handler) applyCoupon(w http.ResponseWriter, r *http.Request) {
	var req applyCouponRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cartID := chi.URLParam(r, "cartID")
	if _, err := h.carts.ApplyCoupon(r.Context(), cartID, req.Code); err != nil {
		respondError(w, r, err)
		return
	}
	h.respondQuote(w, r, cartID, nil)
}

func (h *Handler) removeCoupon(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	if _, err := h.carts.RemoveCoupon(r.Context(), cartID); err != nil {
		respondError(w, r, err)
		return
	}
	h.respondQuote(w, r, cartID, nil)
}

// respondQuote serves the freshly priced cart view. The applied flag, when
// present, tells the client whether its mutation took effect or was dropped
// by the in-flight guard.
func (h *Handler) respondQuote(w http.ResponseWriter, r *http.Request, cartID string, applied *bool) {
	q, err := h.carts.Quote(r.Context(), cartID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := toCartResponse(q)
	resp.Applied = applied
	writeJSON(w, http.StatusOK, resp)
}
