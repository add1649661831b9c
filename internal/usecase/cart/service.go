package cart

import (
	"context"
	"sync"

	domcart "example.com/trendy-store/internal/domain/cart"
	"example.com/trendy-store/internal/domain/pricing"
	domproduct "example.com/trendy-store/internal/domain/product"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domproduct.Product, error)
}

type Service struct {
	store    domcart.Store
	products ProductRepository

	// Serializes read-modify-write cycles for the same session. Carts are
	// not versioned, so two rapid mutations from one session would
	// otherwise race last-write-wins.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store domcart.Store, products ProductRepository) *Service {
	return &Service{
		store:    store,
		products: products,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// Add puts quantity units of a product variant into the session cart. An
// existing line with the same (product, size, color) key has its quantity
// incremented. Omitted size/color default to the product's first declared
// option. Returns the resulting line count.
func (s *Service) Add(ctx context.Context, sessionID string, productID, quantity int64, size, color string) (int, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}

	if quantity < 1 {
		quantity = 1
	}
	if size == "" && len(p.Sizes) > 0 {
		size = p.Sizes[0]
	}
	if color == "" && len(p.Colors) > 0 {
		color = p.Colors[0]
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	c.Merge(domcart.Line{
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.MainImage(),
	})
	if err := s.store.Save(ctx, c); err != nil {
		return 0, err
	}
	return c.Count(), nil
}

// Remove deletes the line matching the identity key exactly.
func (s *Service) Remove(ctx context.Context, sessionID string, productID int64, size, color string) (int, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if !c.Remove(domcart.Key{ProductID: productID, Size: size, Color: color}) {
		return c.Count(), domcart.ErrLineNotFound
	}
	if err := s.store.Save(ctx, c); err != nil {
		return 0, err
	}
	return c.Count(), nil
}

// UpdateQuantity overwrites a line's quantity; zero or negative removes
// the line.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int64, size, color string) (int, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if !c.SetQuantity(domcart.Key{ProductID: productID, Size: size, Color: color}, quantity) {
		return c.Count(), domcart.ErrLineNotFound
	}
	if err := s.store.Save(ctx, c); err != nil {
		return 0, err
	}
	return c.Count(), nil
}

// Clear empties the session cart. Idempotent.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()
	return s.store.Clear(ctx, sessionID)
}

// View is a cart priced against the live catalog.
type View struct {
	Cart      *domcart.Cart
	Breakdown pricing.Breakdown
}

// Get returns the session cart with its current cost breakdown. It never
// mutates the cart.
func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	b, err := pricing.Compute(ctx, c.Lines, s.products)
	if err != nil {
		return nil, err
	}
	return &View{Cart: c, Breakdown: b}, nil
}
