package events

import (
	"context"

	domorder "example.com/trendy-store/internal/domain/order"
)

// Publisher emits order lifecycle events. Publishing is best-effort from
// the caller's perspective; a failed publish never fails the request.
type Publisher interface {
	OrderCreated(ctx context.Context, o *domorder.Order) error
	OrderStatusChanged(ctx context.Context, o *domorder.Order, previous domorder.Status) error
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) OrderCreated(context.Context, *domorder.Order) error { return nil }

func (Noop) OrderStatusChanged(context.Context, *domorder.Order, domorder.Status) error {
	return nil
}
