package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domcart "example.com/trendy-store/internal/domain/cart"
	domorder "example.com/trendy-store/internal/domain/order"
	"example.com/trendy-store/internal/domain/pricing"
)

// maxNumberAttempts bounds the regenerate-on-collision loop for order
// numbers before the conflict is surfaced.
const maxNumberAttempts = 5

type CartStore interface {
	Get(ctx context.Context, sessionID string) (*domcart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type OrderRepository interface {
	Save(ctx context.Context, o *domorder.Order) (*domorder.Order, error)
	ExistsByOrderNumber(ctx context.Context, number string) (bool, error)
}

type EventPublisher interface {
	OrderCreated(ctx context.Context, o *domorder.Order) error
}

type Service struct {
	carts    CartStore
	products pricing.ProductResolver
	orders   OrderRepository
	events   EventPublisher
	now      func() time.Time
	intn     func(int) int
}

func NewService(carts CartStore, products pricing.ProductResolver, orders OrderRepository, events EventPublisher) *Service {
	return &Service{
		carts:    carts,
		products: products,
		orders:   orders,
		events:   events,
		now:      time.Now,
		intn:     domorder.DefaultIntn,
	}
}

// WithClock overrides the time and random sources. Tests use it to force
// order-number collisions.
func (s *Service) WithClock(now func() time.Time, intn func(int) int) *Service {
	s.now = now
	s.intn = intn
	return s
}

type Input struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	District   string
	City       string
	PostalCode string

	PaymentMethod string
	CardNumber    string
	CardName      string
	CardExpiry    string
	CardCVV       string
}

// Result reports the created order plus how many cart lines were dropped
// because their product vanished from the catalog between add and
// checkout.
type Result struct {
	Order        *domorder.Order
	DroppedLines int
}

// PlaceOrder turns the session cart into a persisted order: validate the
// input, re-price against the live catalog, snapshot the resolved lines
// into immutable order items, allocate a unique order number, save, then
// clear the cart. A failed save leaves the cart untouched.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, userID int64, in Input) (*Result, error) {
	addr, err := validateInput(in)
	if err != nil {
		return nil, err
	}

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, domorder.ErrEmptyOrder
	}

	breakdown, err := pricing.Compute(ctx, c.Lines, s.products)
	if err != nil {
		return nil, err
	}
	if len(breakdown.Lines) == 0 {
		return nil, domorder.ErrEmptyOrder
	}

	now := s.now()
	o := &domorder.Order{
		UserID:          userID,
		Items:           snapshotItems(breakdown.Lines),
		Subtotal:        breakdown.Subtotal,
		Discount:        breakdown.Discount,
		Shipping:        breakdown.Shipping,
		Total:           breakdown.Total,
		PaymentMethod:   domorder.PaymentMethod(in.PaymentMethod),
		ShippingAddress: addr,
		Status:          domorder.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	saved, err := s.saveWithUniqueNumber(ctx, o)
	if err != nil {
		return nil, err
	}

	if err := s.events.OrderCreated(ctx, saved); err != nil {
		slog.Warn("order.created event not published", "order_number", saved.OrderNumber, "error", err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The order exists; a stale cart is recoverable, a lost order is not.
		slog.Warn("cart not cleared after checkout", "session_id", sessionID, "error", err)
	}

	return &Result{Order: saved, DroppedLines: breakdown.Dropped}, nil
}

// saveWithUniqueNumber allocates an order number and persists the order,
// regenerating the number on collision. The pre-check via
// ExistsByOrderNumber is advisory; the storage unique index is what
// actually guarantees uniqueness under concurrent checkouts.
func (s *Service) saveWithUniqueNumber(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		o.OrderNumber = domorder.GenerateNumber(s.now(), s.intn)

		exists, err := s.orders.ExistsByOrderNumber(ctx, o.OrderNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			lastErr = domorder.ErrOrderNumberTaken
			continue
		}

		saved, err := s.orders.Save(ctx, o)
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, domorder.ErrOrderNumberTaken) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func snapshotItems(lines []pricing.ResolvedLine) []domorder.OrderItem {
	items := make([]domorder.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domorder.OrderItem{
			ProductID:    line.Product.ID,
			ProductName:  line.Product.Name,
			ProductImage: line.Product.MainImage(),
			UnitPrice:    line.Product.Price,
			Quantity:     line.Quantity,
			Size:         line.Size,
			Color:        line.Color,
			LineTotal:    line.Total,
		})
	}
	return items
}

func validateInput(in Input) (domorder.ShippingAddress, error) {
	required := []struct {
		label string
		value string
	}{
		{"first name", in.FirstName},
		{"last name", in.LastName},
		{"email", in.Email},
		{"phone", in.Phone},
		{"address", in.Address},
		{"district", in.District},
		{"city", in.City},
		{"postal code", in.PostalCode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return domorder.ShippingAddress{}, fmt.Errorf("%w: %s is required", domorder.ErrCheckoutValidation, f.label)
		}
	}

	method := domorder.PaymentMethod(in.PaymentMethod)
	if !method.IsValid() {
		return domorder.ShippingAddress{}, domorder.ErrInvalidPayment
	}
	if method == domorder.PaymentCard {
		if in.CardNumber == "" || in.CardName == "" || in.CardExpiry == "" || in.CardCVV == "" {
			return domorder.ShippingAddress{}, fmt.Errorf("%w: card details are required", domorder.ErrCheckoutValidation)
		}
	}

	return domorder.ShippingAddress{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		District:   strings.TrimSpace(in.District),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
	}, nil
}
