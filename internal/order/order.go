// Package order owns placed orders: the immutable pricing snapshot taken at
// checkout, the fulfilment status machine, and the pure action-availability
// rules that every surface rendering or authorizing order actions must share.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/pricing"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// PaymentMethod identifies how an order is paid. Gateway protocol handling is
// out of scope; the method only drives COD display and invoice timing rules.
type PaymentMethod string

const (
	MethodCOD      PaymentMethod = "cod"
	MethodRazorpay PaymentMethod = "razorpay"
	MethodPhonePe  PaymentMethod = "phonepe"
	MethodPaytm    PaymentMethod = "paytm"
)

// KnownPaymentMethod reports whether m is one of the accepted methods.
func KnownPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCOD, MethodRazorpay, MethodPhonePe, MethodPaytm:
		return true
	}
	return false
}

// IsCOD reports whether the method is cash on delivery.
func (m PaymentMethod) IsCOD() bool { return m == MethodCOD }

// Item is one line of a placed order: the selection and the prices frozen at
// checkout time. Items are stored verbatim and never re-priced.
type Item struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	SelectedColor string          `json:"selected_color,omitempty"`
	SelectedSize  string          `json:"selected_size,omitempty"`
	BlouseOption  string          `json:"blouse_option,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ListPrice     decimal.Decimal `json:"list_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Savings       decimal.Decimal `json:"savings"`
	Image         string          `json:"image,omitempty"`
}

// Order is a placed customer order. Totals are computed once at checkout and
// become part of the immutable record consumed by persistence and payment
// collection.
type Order struct {
	ID            string
	Items         []Item
	Totals        pricing.Totals
	CouponCode    string
	PaymentMethod PaymentMethod
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
