package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/cart"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/catalog"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/coupon"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/pricing"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type mockOrderRepo struct {
	created   *Order
	createErr error
	stored    map[string]*Order
	statusSet Status
}

func newMockOrderRepo(existing ...*Order) *mockOrderRepo {
	m := &mockOrderRepo{stored: make(map[string]*Order)}
	for _, o := range existing {
		m.stored[o.ID] = o
	}
	return m
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = o
	m.stored[o.ID] = o
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*Order, error) {
	o, ok := m.stored[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	o, ok := m.stored[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	m.statusSet = status
	return nil
}

type mockCarts struct {
	quote    *cart.Quote
	quoteErr error
	cleared  string
}

func (m *mockCarts) Quote(_ context.Context, _ string) (*cart.Quote, error) {
	return m.quote, m.quoteErr
}

func (m *mockCarts) Clear(_ context.Context, cartID string) error {
	m.cleared = cartID
	return nil
}

type mockProducts struct {
	products map[string]catalog.Product
}

func (m *mockProducts) List(_ context.Context) ([]catalog.Product, error) { return nil, nil }

func (m *mockProducts) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

func (m *mockProducts) GetByIDs(_ context.Context, ids []string) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockCouponRepo struct {
	incremented string
}

func (m *mockCouponRepo) FindByCode(_ context.Context, _ string) (*coupon.Rule, error) {
	return nil, coupon.ErrInvalidCoupon
}

func (m *mockCouponRepo) IncrementUses(_ context.Context, code string) error {
	m.incremented = code
	return nil
}

func quoteFixture(couponCode string, d *coupon.Discount) *cart.Quote {
	price := dec(900)
	totals := pricing.Totals{
		Subtotal:   dec(1800),
		Shipping:   decimal.Zero,
		Discount:   decimal.Zero,
		GrandTotal: dec(1800),
	}
	if d != nil {
		totals.Discount = d.Amount
		totals.GrandTotal = totals.Subtotal.Sub(d.Amount)
	}
	return &cart.Quote{
		Cart: &cart.Cart{
			ID:         "c1",
			CouponCode: couponCode,
			Entries: []cart.Entry{
				{ID: "e1", ProductID: "saree-1", Quantity: 2, SelectedSize: "Free Size", Price: &price},
			},
		},
		Lines: []pricing.Line{
			{
				EntryID:      "e1",
				ProductID:    "saree-1",
				UnitPrice:    dec(900),
				ListPrice:    dec(1000),
				Quantity:     2,
				Subtotal:     dec(1800),
				Savings:      dec(200),
				DisplayImage: "/images/saree-1/main.jpg",
			},
		},
		Discount: d,
		Totals:   totals,
	}
}

func fixtureCatalog() *mockProducts {
	return &mockProducts{products: map[string]catalog.Product{
		"saree-1": {
			ID:        "saree-1",
			Name:      "Kanchipuram Silk",
			BasePrice: dec(1000),
			Variants: []catalog.Variant{
				{SKU: "KS-FREE", Size: "Free Size"},
			},
		},
	}}
}

func TestService_Checkout(t *testing.T) {
	orders := newMockOrderRepo()
	carts := &mockCarts{quote: quoteFixture("", nil)}
	coupons := &mockCouponRepo{}
	svc := NewService(orders, carts, fixtureCatalog(), coupons)

	v, err := svc.Checkout(context.Background(), CheckoutParams{
		CartID:        "c1",
		PaymentMethod: MethodCOD,
	})

	require.NoError(t, err)
	require.NotNil(t, orders.created, "order must be persisted")
	assert.Equal(t, StatusPlaced, v.Order.Status)
	assert.Equal(t, "payable on delivery", v.AmountLabel)
	assert.Equal(t, "c1", carts.cleared, "cart must be cleared after placement")
	assert.Empty(t, coupons.incremented, "no coupon, no increment")

	require.Len(t, v.Order.Items, 1)
	item := v.Order.Items[0]
	assert.Equal(t, "Kanchipuram Silk", item.Name)
	assert.Equal(t, "KS-FREE", item.SKU)
	assert.True(t, dec(900).Equal(item.UnitPrice))
	assert.True(t, dec(1800).Equal(item.Subtotal))
	assert.True(t, dec(1800).Equal(v.Order.Totals.GrandTotal))
}

func TestService_CheckoutIncrementsCouponUse(t *testing.T) {
	d := &coupon.Discount{Code: "WELCOME10", Amount: dec(180)}
	orders := newMockOrderRepo()
	carts := &mockCarts{quote: quoteFixture("WELCOME10", d)}
	coupons := &mockCouponRepo{}
	svc := NewService(orders, carts, fixtureCatalog(), coupons)

	v, err := svc.Checkout(context.Background(), CheckoutParams{
		CartID:        "c1",
		PaymentMethod: MethodRazorpay,
	})

	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", coupons.incremented, "use counted once the order exists")
	assert.Equal(t, "WELCOME10", v.Order.CouponCode)
	assert.True(t, dec(1620).Equal(v.Order.Totals.GrandTotal))
}

func TestService_CheckoutEmptyCart(t *testing.T) {
	empty := &cart.Quote{Cart: &cart.Cart{ID: "c1"}}
	svc := NewService(newMockOrderRepo(), &mockCarts{quote: empty}, fixtureCatalog(), &mockCouponRepo{})

	_, err := svc.Checkout(context.Background(), CheckoutParams{CartID: "c1", PaymentMethod: MethodCOD})

	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestService_CheckoutUnknownPaymentMethod(t *testing.T) {
	svc := NewService(newMockOrderRepo(), &mockCarts{}, fixtureCatalog(), &mockCouponRepo{})

	_, err := svc.Checkout(context.Background(), CheckoutParams{CartID: "c1", PaymentMethod: "cheque"})

	require.ErrorIs(t, err, ErrUnknownPaymentMethod)
}

func TestService_CheckoutStaleCoupon(t *testing.T) {
	// Cart still carries a code but the quote could not honour it anymore.
	q := quoteFixture("EXPIRED", nil)
	svc := NewService(newMockOrderRepo(), &mockCarts{quote: q}, fixtureCatalog(), &mockCouponRepo{})

	_, err := svc.Checkout(context.Background(), CheckoutParams{CartID: "c1", PaymentMethod: MethodCOD})

	require.ErrorIs(t, err, ErrCouponNoLongerValid)
}

func TestService_CheckoutPersistFailure(t *testing.T) {
	orders := newMockOrderRepo()
	orders.createErr = errors.New("disk full")
	carts := &mockCarts{quote: quoteFixture("", nil)}
	svc := NewService(orders, carts, fixtureCatalog(), &mockCouponRepo{})

	_, err := svc.Checkout(context.Background(), CheckoutParams{CartID: "c1", PaymentMethod: MethodCOD})

	require.Error(t, err)
	assert.Empty(t, carts.cleared, "cart must survive a failed placement")
}

func TestService_Get(t *testing.T) {
	o := &Order{
		ID:            "o1",
		Items:         []Item{{ProductID: "saree-1", Quantity: 1, UnitPrice: dec(900)}},
		PaymentMethod: MethodCOD,
		Status:        StatusShipped,
		CreatedAt:     time.Now(),
	}
	svc := NewService(newMockOrderRepo(o), &mockCarts{}, fixtureCatalog(), &mockCouponRepo{})

	v, err := svc.Get(context.Background(), "o1")

	require.NoError(t, err)
	assert.True(t, v.Actions.ShowTrack)
	assert.False(t, v.Actions.InvoiceAvailable, "COD invoice only after delivery")
	assert.Equal(t, InvoiceHelperCOD, v.Actions.InvoiceHelperText)
	assert.False(t, v.ItemsUnavailable)
}

func TestService_GetNotFound(t *testing.T) {
	svc := NewService(newMockOrderRepo(), &mockCarts{}, fixtureCatalog(), &mockCouponRepo{})

	_, err := svc.Get(context.Background(), "nope")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_GetFlagsEmptyItems(t *testing.T) {
	o := &Order{ID: "o1", PaymentMethod: MethodCOD, Status: StatusPlaced}
	svc := NewService(newMockOrderRepo(o), &mockCarts{}, fixtureCatalog(), &mockCouponRepo{})

	v, err := svc.Get(context.Background(), "o1")

	require.NoError(t, err)
	assert.True(t, v.ItemsUnavailable, "an order without items indicates a data problem")
}

func TestService_UpdateStatus(t *testing.T) {
	o := &Order{ID: "o1", PaymentMethod: MethodCOD, Status: StatusPlaced}
	orders := newMockOrderRepo(o)
	svc := NewService(orders, &mockCarts{}, fixtureCatalog(), &mockCouponRepo{})

	v, err := svc.UpdateStatus(context.Background(), "o1", StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, v.Order.Status)
	assert.Equal(t, StatusConfirmed, orders.statusSet)
}

func TestService_UpdateStatusInvalidTransition(t *testing.T) {
	o := &Order{ID: "o1", PaymentMethod: MethodCOD, Status: StatusDelivered}
	svc := NewService(newMockOrderRepo(o), &mockCarts{}, fixtureCatalog(), &mockCouponRepo{})

	_, err := svc.UpdateStatus(context.Background(), "o1", StatusCancelled)

	require.ErrorIs(t, err, ErrInvalidTransition, "delivered orders cannot be cancelled")
}
