package cart

import "context"

// Store owns the cart of one session. Get returns an empty cart when the
// session has none yet.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Clear(ctx context.Context, sessionID string) error
}
