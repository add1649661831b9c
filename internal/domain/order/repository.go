package order

import (
	"context"
	"time"
)

// StatusUpdate carries the mutable-after-creation fields written by a
// status transition.
type StatusUpdate struct {
	CancellationReason string
	CancelledAt        *time.Time
	UpdatedAt          time.Time
}

type Repository interface {
	// Save persists a new order with its items in one transaction. A
	// duplicate order number fails with ErrOrderNumberTaken.
	Save(ctx context.Context, o *Order) (*Order, error)
	FindByID(ctx context.Context, id int64) (*Order, error)
	FindByOrderNumber(ctx context.Context, number string) (*Order, error)
	// FindByOwner returns the user's orders newest-first.
	FindByOwner(ctx context.Context, userID int64) ([]*Order, error)
	ExistsByOrderNumber(ctx context.Context, number string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status Status, update StatusUpdate) error
	List(ctx context.Context) ([]*Order, error)
	Delete(ctx context.Context, id int64) error
	// Stats aggregates order count, revenue and average value, optionally
	// scoped to one user.
	Stats(ctx context.Context, userID *int64) (Stats, error)
	StatusCounts(ctx context.Context, userID *int64) (map[Status]int64, error)
}
