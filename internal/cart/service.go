package cart

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/catalog"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/coupon"
	"github.com/varalakshmimaha/Mahafashion-sub003/internal/pricing"
)

var decimalZero = decimal.Zero

var (
	// ErrInvalidQuantity is returned when an add specifies a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	// ErrCouponInFlight is returned when a coupon application is already
	// outstanding for the cart. The caller should disable the trigger rather
	// than retry.
	ErrCouponInFlight = errors.New("coupon application already in flight")
)

// AddItemParams describes a product selection to add to a cart.
type AddItemParams struct {
	ProductID     string
	Quantity      int
	SelectedColor string
	SelectedSize  string
	BlouseOption  string
}

// Quote is a fully priced view of a cart: the snapshot, its priced lines,
// the applied coupon discount (nil when none), and the assembled totals.
// It is recomputed on every call and never stored.
type Quote struct {
	Cart     *Cart
	Lines    []pricing.Line
	Discount *coupon.Discount
	Totals   pricing.Totals
}

// Service encapsulates cart operations. It keeps an in-memory snapshot per
// cart and applies mutations copy-on-write: a mutation is built on a clone,
// persisted, and only then swapped in. When persistence fails the clone is
// discarded, so served snapshots never diverge from the last confirmed
// database state.
type Service struct {
	repo     Repository
	products catalog.Repository
	coupons  coupon.Validator
	policy   pricing.ShippingPolicy
	guard    *Guard
	now      func() time.Time

	mu        sync.Mutex
	snapshots map[string]*Cart
}

// NewService creates a cart Service with the required dependencies.
func NewService(
	repo Repository,
	products catalog.Repository,
	coupons coupon.Validator,
	policy pricing.ShippingPolicy,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		coupons:   coupons,
		policy:    policy,
		guard:     NewGuard(),
		now:       time.Now,
		snapshots: make(map[string]*Cart),
	}
}

// Create starts an empty cart.
func (s *Service) Create(ctx context.Context) (*Cart, error) {
	now := s.now()
	c := &Cart{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, errors.Wrap(err, "create cart")
	}
	s.store(c)
	return c.Clone(), nil
}

// Get returns the current snapshot of the cart.
func (s *Service) Get(ctx context.Context, cartID string) (*Cart, error) {
	c, err := s.snapshot(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

// AddItem resolves the selection's current price, captures it on the new
// entry, and persists it. The captured price is what the shopper will keep
// paying for this entry regardless of later catalog changes.
func (s *Service) AddItem(ctx context.Context, cartID string, p AddItemParams) (*Cart, error) {
	if p.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	prod, err := s.products.GetByID(ctx, p.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrProductUnavailable
		}
		return nil, errors.Wrap(err, "get product")
	}

	line := pricing.PriceEntry(pricing.Entry{
		ProductID:     p.ProductID,
		Quantity:      p.Quantity,
		SelectedColor: p.SelectedColor,
		SelectedSize:  p.SelectedSize,
	}, prod)
	captured := line.UnitPrice

	entry := Entry{
		ID:            uuid.New().String(),
		ProductID:     p.ProductID,
		Quantity:      p.Quantity,
		SelectedColor: p.SelectedColor,
		SelectedSize:  p.SelectedSize,
		BlouseOption:  p.BlouseOption,
		Price:         &captured,
		AddedAt:       s.now(),
	}

	return s.mutate(ctx, cartID,
		func(c *Cart) { c.Entries = append(c.Entries, entry) },
		func(ctx context.Context) error { return s.repo.InsertEntry(ctx, cartID, &entry) },
	)
}

// UpdateQuantity changes an entry's quantity. A quantity below 1 and a
// request arriving while another mutation for the same entry is outstanding
// are both ignored: the current snapshot is returned with applied=false and
// no error. This is deliberate: double-clicked steppers must not produce
// lost updates or user-facing failures.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, entryID string, quantity int) (c *Cart, applied bool, err error) {
	cur, err := s.snapshot(ctx, cartID)
	if err != nil {
		return nil, false, err
	}
	if quantity < 1 {
		return cur.Clone(), false, nil
	}
	if !s.guard.TryAcquire(entryID) {
		return cur.Clone(), false, nil
	}
	defer s.guard.Release(entryID)

	next, err := s.mutate(ctx, cartID,
		func(c *Cart) {
			if e := c.Entry(entryID); e != nil {
				e.Quantity = quantity
			}
		},
		func(ctx context.Context) error {
			if cur.Entry(entryID) == nil {
				return ErrEntryNotFound
			}
			return s.repo.UpdateEntryQuantity(ctx, cartID, entryID, quantity)
		},
	)
	if err != nil {
		return nil, false, err
	}
	return next, true, nil
}

// RemoveEntry deletes an entry from the cart, subject to the same per-entry
// in-flight guard as quantity updates.
func (s *Service) RemoveEntry(ctx context.Context, cartID, entryID string) (c *Cart, applied bool, err error) {
	cur, err := s.snapshot(ctx, cartID)
	if err != nil {
		return nil, false, err
	}
	if !s.guard.TryAcquire(entryID) {
		return cur.Clone(), false, nil
	}
	defer s.guard.Release(entryID)

	next, err := s.mutate(ctx, cartID,
		func(c *Cart) {
			for i := range c.Entries {
				if c.Entries[i].ID == entryID {
					c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
					return
				}
			}
		},
		func(ctx context.Context) error {
			if cur.Entry(entryID) == nil {
				return ErrEntryNotFound
			}
			return s.repo.DeleteEntry(ctx, cartID, entryID)
		},
	)
	if err != nil {
		return nil, false, err
	}
	return next, true, nil
}

// ApplyCoupon validates the code against the cart's current subtotal and
// attaches it. Only one application may be in flight per cart; a previously
// applied code is replaced atomically on success and kept on failure.
func (s *Service) ApplyCoupon(ctx context.Context, cartID, code string) (*coupon.Discount, error) {
	key := "coupon:" + cartID
	if !s.guard.TryAcquire(key) {
		return nil, ErrCouponInFlight
	}
	defer s.guard.Release(key)

	c, err := s.snapshot(ctx, cartID)
	if err != nil {
		return nil, err
	}
	lines, err := s.priceEntries(ctx, c.Entries)
	if err != nil {
		return nil, err
	}
	subtotal := pricing.ComputeTotals(lines, decimalZero, s.policy).Subtotal

	d, err := s.coupons.Validate(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}

	if _, err := s.mutate(ctx, cartID,
		func(c *Cart) { c.CouponCode = d.Code },
		func(ctx context.Context) error { return s.repo.SetCoupon(ctx, cartID, d.Code) },
	); err != nil {
		return nil, err
	}
	return d, nil
}

// RemoveCoupon detaches any applied coupon.
func (s *Service) RemoveCoupon(ctx context.Context, cartID string) (*Cart, error) {
	return s.mutate(ctx, cartID,
		func(c *Cart) { c.CouponCode = "" },
		func(ctx context.Context) error { return s.repo.SetCoupon(ctx, cartID, "") },
	)
}

// Clear removes all entries and the coupon, used after order placement.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	_, err := s.mutate(ctx, cartID,
		func(c *Cart) {
			c.Entries = nil
			c.CouponCode = ""
		},
		func(ctx context.Context) error { return s.repo.Clear(ctx, cartID) },
	)
	return err
}

// Quote prices the cart through the shared pricing engine. The applied
// coupon, when present, is re-validated against the current subtotal; if it
// has become invalid since application (expired, exhausted) the quote is
// served without a discount rather than failing the whole cart view.
func (s *Service) Quote(ctx context.Context, cartID string) (*Quote, error) {
	c, err := s.snapshot(ctx, cartID)
	if err != nil {
		return nil, err
	}
	snap := c.Clone()

	lines, err := s.priceEntries(ctx, snap.Entries)
	if err != nil {
		return nil, err
	}

	subtotalOnly := pricing.ComputeTotals(lines, decimalZero, s.policy)

	var d *coupon.Discount
	if code := snap.CouponCode; code != "" {
		d, err = s.coupons.Validate(ctx, code, subtotalOnly.Subtotal)
		if err != nil {
			if isCouponRejection(err) {
				d = nil
			} else {
				return nil, errors.Wrap(err, "validate coupon")
			}
		}
	}

	discountAmount := decimalZero
	if d != nil {
		discountAmount = d.Amount
	}

	return &Quote{
		Cart:     snap,
		Lines:    lines,
		Discount: d,
		Totals:   pricing.ComputeTotals(lines, discountAmount, s.policy),
	}, nil
}

func (s *Service) priceEntries(ctx context.Context, entries []Entry) ([]pricing.Line, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
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

	lines := make([]pricing.Line, len(entries))
	for i, e := range entries {
		// A missing product degrades to a zero-priced line; the API layer
		// marks such lines instead of failing the whole cart.
		lines[i] = pricing.PriceEntry(pricing.Entry{
			ID:            e.ID,
			ProductID:     e.ProductID,
			Quantity:      e.Quantity,
			SelectedColor: e.SelectedColor,
			SelectedSize:  e.SelectedSize,
			BlouseOption:  e.BlouseOption,
			Price:         e.Price,
		}, byID[e.ProductID])
	}
	return lines, nil
}

func isCouponRejection(err error) bool {
	return errors.Is(err, coupon.ErrInvalidCoupon) ||
		errors.Is(err, coupon.ErrCouponExpired) ||
		errors.Is(err, coupon.ErrCouponUsageLimitReached) ||
		errors.Is(err, coupon.ErrEmptyCode)
}

// snapshot returns the cached cart, loading it from the repository on a miss.
func (s *Service) snapshot(ctx context.Context, cartID string) (*Cart, error) {
	s.mu.Lock()
	c, ok := s.snapshots[cartID]
	s.mu.Unlock()
	if ok {
		return c, nil
	}

	c, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	s.store(c)
	return c, nil
}

func (s *Service) store(c *Cart) {
	s.mu.Lock()
	s.snapshots[c.ID] = c
	s.mu.Unlock()
}

// mutate applies fn to a clone of the current snapshot, persists the change,
// and swaps the clone in only on success. On persistence failure the clone is
// dropped and the previous snapshot keeps serving, which is the rollback
// required for optimistic mutations.
func (s *Service) mutate(
	ctx context.Context,
	cartID string,
	fn func(*Cart),
	persist func(context.Context) error,
) (*Cart, error) {
	cur, err := s.snapshot(ctx, cartID)
	if err != nil {
		return nil, err
	}

	next := cur.Clone()
	fn(next)
	next.UpdatedAt = s.now()

	if err := persist(ctx); err != nil {
		return nil, err
	}

	s.store(next)
	return next.Clone(), nil
}
