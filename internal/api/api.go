// Package api exposes the storefront over HTTP: catalog reads, cart
// mutations, coupon application, and order placement/tracking. Handlers are
// thin: validation of request shapes happens here, business rules live in
// the domain services.
package api

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/cart"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/catalog"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/coupon"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/order"
)

// Carts is the cart service surface the handlers need.
type Carts interface {
	Create(ctx context.Context) (*cart.Cart, error)
	AddItem(ctx context.Context, cartID string, p cart.AddItemParams) (*cart.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, entryID string, quantity int) (*cart.Cart, bool, error)
	RemoveEntry(ctx context.Context, cartID, entryID string) (*cart.Cart, bool, error)
	ApplyCoupon(ctx context.Context, cartID, code string) (*coupon.Discount, error)
	RemoveCoupon(ctx context.Context, cartID string) (*cart.Cart, error)
	Quote(ctx context.Context, cartID string) (*cart.Quote, error)
}

// Orders is the order service surface the handlers need.
type Orders interface {
	Checkout(ctx context.Context, p order.CheckoutParams) (*order.View, error)
	Get(ctx context.Context, orderID string) (*order.View, error)
	UpdateStatus(ctx context.Context, orderID string, next order.Status) (*order.View, error)
}

// Handler wires the storefront endpoints.
type Handler struct {
	products catalog.Repository
	carts    Carts
	orders   Orders
	validate *validator.Validate
}

// NewHandler creates a Handler.
func NewHandler(products catalog.Repository, carts Carts, orders Orders) *Handler {
	return &Handler{
		products: products,
		carts:    carts,
		orders:   orders,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes mounts all storefront endpoints under /api.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{productID}", h.getProduct)

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", h.createCart)
			r.Route("/{cartID}", func(r chi.Router) {
				r.Get("/", h.getCart)
				r.Post("/items", h.addCartItem)
				r.Patch("/items/{entryID}", h.updateCartItem)
				r.Delete("/items/{entryID}", h.removeCartItem)
				r.Post("/coupon", h.applyCoupon)
				r.Delete("/coupon", h.removeCoupon)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/{orderID}", h.getOrder)
			r.Post("/{orderID}/status", h.updateOrderStatus)
		})
	})
}
