package order

import (
	"context"
	"log/slog"
	"time"

	domorder "example.com/trendy-store/internal/domain/order"
)

type EventPublisher interface {
	OrderStatusChanged(ctx context.Context, o *domorder.Order, previous domorder.Status) error
}

type Service struct {
	repo   domorder.Repository
	events EventPublisher
	now    func() time.Time
}

func NewService(repo domorder.Repository, events EventPublisher) *Service {
	return &Service{repo: repo, events: events, now: time.Now}
}

// WithClock overrides the time source for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetByNumber returns the order when it belongs to the requesting user.
// Admins may read any order.
func (s *Service) GetByNumber(ctx context.Context, number string, userID int64, admin bool) (*domorder.Order, error) {
	o, err := s.repo.FindByOrderNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if !admin && o.UserID != userID {
		return nil, domorder.ErrNotOwned
	}
	return o, nil
}

// UpdateStatus applies a state-machine transition to the order identified
// by its number and persists the result.
func (s *Service) UpdateStatus(ctx context.Context, number string, userID int64, admin bool, target domorder.Status) (*domorder.Order, error) {
	return s.transition(ctx, number, userID, admin, target, domorder.TransitionExtra{})
}

// Cancel moves the order to cancelled, legal from pending and processing
// only; reason is mandatory.
func (s *Service) Cancel(ctx context.Context, number string, userID int64, admin bool, reason string) (*domorder.Order, error) {
	return s.transition(ctx, number, userID, admin, domorder.StatusCancelled, domorder.TransitionExtra{Reason: reason})
}

func (s *Service) transition(ctx context.Context, number string, userID int64, admin bool, target domorder.Status, extra domorder.TransitionExtra) (*domorder.Order, error) {
	o, err := s.GetByNumber(ctx, number, userID, admin)
	if err != nil {
		return nil, err
	}

	previous := o.Status
	if err := o.Transition(target, extra, s.now()); err != nil {
		return nil, err
	}

	update := domorder.StatusUpdate{
		CancellationReason: o.CancellationReason,
		CancelledAt:        o.CancelledAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if err := s.repo.UpdateStatus(ctx, o.ID, o.Status, update); err != nil {
		return nil, err
	}

	if err := s.events.OrderStatusChanged(ctx, o, previous); err != nil {
		slog.Warn("order.status_changed event not published", "order_number", o.OrderNumber, "error", err)
	}
	return o, nil
}

// ListByOwner returns the user's orders newest-first.
func (s *Service) ListByOwner(ctx context.Context, userID int64) ([]*domorder.Order, error) {
	return s.repo.FindByOwner(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]*domorder.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domorder.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete removes an order entirely. Administrative use only; the order
// lifecycle never deletes.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Stats aggregates order totals, optionally scoped to one user.
func (s *Service) Stats(ctx context.Context, userID *int64) (domorder.Stats, map[domorder.Status]int64, error) {
	stats, err := s.repo.Stats(ctx, userID)
	if err != nil {
		return domorder.Stats{}, nil, err
	}
	counts, err := s.repo.StatusCounts(ctx, userID)
	if err != nil {
		return domorder.Stats{}, nil, err
	}
	return stats, counts, nil
}
