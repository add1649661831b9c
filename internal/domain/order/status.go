package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// next returns the single legal forward step from s, or "" if none.
func (s Status) next() Status {
	switch s {
	case StatusPending:
		return StatusProcessing
	case StatusProcessing:
		return StatusShipped
	case StatusShipped:
		return StatusDelivered
	default:
		return ""
	}
}

// CanTransitionTo reports whether target is reachable from s in one step.
// The happy path is forward-only with no skipping; cancellation is allowed
// from pending and processing only.
func (s Status) CanTransitionTo(target Status) bool {
	if target == StatusCancelled {
		return s == StatusPending || s == StatusProcessing
	}
	return s.next() == target
}

// TransitionExtra carries data required by specific transitions.
type TransitionExtra struct {
	Reason string
}

// Transition moves the order to target, stamping UpdatedAt and, for
// cancellations, CancellationReason and CancelledAt. Illegal moves return
// ErrInvalidTransition without mutating the order.
func (o *Order) Transition(target Status, extra TransitionExtra, now time.Time) error {
	if !target.IsValid() {
		return ErrInvalidTransition
	}
	if !o.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	if target == StatusCancelled {
		if extra.Reason == "" {
			return ErrReasonRequired
		}
		o.CancellationReason = extra.Reason
		o.CancelledAt = &now
	}
	o.Status = target
	o.UpdatedAt = now
	return nil
}
