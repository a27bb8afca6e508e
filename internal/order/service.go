package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/cart"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/catalog"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/coupon"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on a cart with no entries.
	ErrEmptyCart = errors.New("cart has no items")
	// ErrUnknownPaymentMethod is returned for a payment method outside the accepted set.
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	// ErrCouponNoLongerValid is returned when the cart's attached coupon fails
	// re-validation at checkout. The shopper must remove or replace it; placing
	// the order with a silently dropped discount would be a surprise charge.
	ErrCouponNoLongerValid = errors.New("applied coupon is no longer valid")
)

// Carts is the slice of the cart service checkout depends on.
type Carts interface {
	Quote(ctx context.Context, cartID string) (*cart.Quote, error)
	Clear(ctx context.Context, cartID string) error
}

// CheckoutParams describes an order placement request.
type CheckoutParams struct {
	CartID        string
	PaymentMethod PaymentMethod
}

// View is an order enriched with the presentation-rule outputs every surface
// needs alongside the record itself.
type View struct {
	Order       *Order
	Actions     ActionAvailability
	AmountLabel string
	// ItemsUnavailable marks an order whose item snapshot is empty, which
	// indicates a data problem rather than a legitimate order shape.
	ItemsUnavailable bool
}

// Service places orders from cart quotes and walks them through the status
// machine.
type Service struct {
	orders   Repository
	carts    Carts
	products catalog.Repository
	coupons  coupon.Repository
	now      func() time.Time
}

// NewService creates an order Service.
func NewService(orders Repository, carts Carts, products catalog.Repository, coupons coupon.Repository) *Service {
	return &Service{
		orders:   orders,
		carts:    carts,
		products: products,
		coupons:  coupons,
		now:      time.Now,
	}
}

// Checkout freezes the cart's current quote into an order record, persists it,
// counts the coupon use, and clears the cart. The stored totals and item
// prices are final; later catalog or coupon changes never touch them.
func (s *Service) Checkout(ctx context.Context, p CheckoutParams) (*View, error) {
	if !KnownPaymentMethod(p.PaymentMethod) {
		return nil, errors.Wrapf(ErrUnknownPaymentMethod, "%q", p.PaymentMethod)
	}

	q, err := s.carts.Quote(ctx, p.CartID)
	if err != nil {
		return nil, errors.Wrap(err, "quote cart")
	}
	if len(q.Cart.Entries) == 0 {
		return nil, ErrEmptyCart
	}
	if q.Cart.CouponCode != "" && q.Discount == nil {
		return nil, ErrCouponNoLongerValid
	}

	items, err := s.buildItems(ctx, q)
	if err != nil {
		return nil, err
	}

	now := s.now()
	o := &Order{
		ID:            uuid.New().String(),
		Items:         items,
		Totals:        q.Totals,
		PaymentMethod: p.PaymentMethod,
		Status:        StatusPlaced,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if q.Discount != nil {
		o.CouponCode = q.Discount.Code
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	// The order exists from here on. Coupon accounting and cart cleanup are
	// follow-up work that must not fail the placement.
	if o.CouponCode != "" {
		if err := s.coupons.IncrementUses(ctx, o.CouponCode); err != nil {
			zctx.From(ctx).Warn("Increment coupon uses",
				zap.String("order_id", o.ID),
				zap.String("code", o.CouponCode),
				zap.Error(err),
			)
		}
	}
	if err := s.carts.Clear(ctx, p.CartID); err != nil {
		zctx.From(ctx).Warn("Clear cart after checkout",
			zap.String("order_id", o.ID),
			zap.String("cart_id", p.CartID),
			zap.Error(err),
		)
	}

	return s.view(o), nil
}

// Get returns the order with its action availability.
func (s *Service) Get(ctx context.Context, orderID string) (*View, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.view(o), nil
}

// UpdateStatus moves the order along the fulfilment machine. Transitions not
// permitted from the current status are rejected with ErrInvalidTransition.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, next Status) (*View, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, next) {
		return nil, errors.Wrapf(ErrInvalidTransition, "%s -> %s", o.Status, next)
	}
	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, errors.Wrap(err, "update status")
	}
	o.Status = next
	o.UpdatedAt = s.now()
	return s.view(o), nil
}

func (s *Service) view(o *Order) *View {
	return &View{
		Order:            o,
		Actions:          ActionsFor(o.Status, o.PaymentMethod),
		AmountLabel:      AmountLabel(o.PaymentMethod),
		ItemsUnavailable: len(o.Items) == 0,
	}
}

// buildItems zips the quote's priced lines with the cart entries and catalog
// records into the frozen order item snapshot.
func (s *Service) buildItems(ctx context.Context, q *cart.Quote) ([]Item, error) {
	ids := make([]string, 0, len(q.Cart.Entries))
	seen := make(map[string]struct{}, len(q.Cart.Entries))
	for _, e := range q.Cart.Entries {
		if _, ok := seen[e.ProductID]; ok {
			continue
		}
		seen[e.ProductID] = struct{}{}
		ids = append(ids, e.ProductID)
	}
	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}
	byID := make(map[string]*catalog.Product, len(fetched))
	for i := range fetched {
		byID[fetched[i].ID] = &fetched[i]
	}

	lineByEntry := make(map[string]int, len(q.Lines))
	for i := range q.Lines {
		lineByEntry[q.Lines[i].EntryID] = i
	}

	items := make([]Item, 0, len(q.Cart.Entries))
	for _, e := range q.Cart.Entries {
		li, ok := lineByEntry[e.ID]
		if !ok {
			continue
		}
		line := q.Lines[li]

		it := Item{
			ProductID:     e.ProductID,
			SelectedColor: e.SelectedColor,
			SelectedSize:  e.SelectedSize,
			BlouseOption:  e.BlouseOption,
			Quantity:      e.Quantity,
			UnitPrice:     line.UnitPrice,
			ListPrice:     line.ListPrice,
			Subtotal:      line.Subtotal,
			Savings:       line.Savings,
			Image:         line.DisplayImage,
		}
		if p, ok := byID[e.ProductID]; ok {
			it.Name = p.Name
			for vi := range p.Variants {
				v := &p.Variants[vi]
				if v.Size == e.SelectedSize && v.ColorCode == e.SelectedColor {
					it.SKU = v.SKU
					break
				}
			}
		}
		items = append(items, it)
	}
	return items, nil
}
