package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTransition_HappyPathForwardOnly(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusPending}

	require.NoError(t, o.Transition(StatusProcessing, TransitionExtra{}, now))
	require.NoError(t, o.Transition(StatusShipped, TransitionExtra{}, now))
	require.NoError(t, o.Transition(StatusDelivered, TransitionExtra{}, now))
	require.Equal(t, StatusDelivered, o.Status)
}

func TestTransition_SkipAheadRejected(t *testing.T) {
	o := &Order{Status: StatusPending}

	err := o.Transition(StatusShipped, TransitionExtra{}, time.Now())

	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, StatusPending, o.Status)
}

func TestTransition_BackwardRejected(t *testing.T) {
	o := &Order{Status: StatusShipped}

	err := o.Transition(StatusProcessing, TransitionExtra{}, time.Now())

	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_CancelFromPending(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusPending}

	err := o.Transition(StatusCancelled, TransitionExtra{Reason: "changed my mind"}, now)

	require.NoError(t, err)
	require.Equal(t, StatusCancelled, o.Status)
	require.Equal(t, "changed my mind", o.CancellationReason)
	require.NotNil(t, o.CancelledAt)
	require.Equal(t, now, *o.CancelledAt)
	require.Equal(t, now, o.UpdatedAt)
}

func TestTransition_CancelFromProcessing(t *testing.T) {
	o := &Order{Status: StatusProcessing}

	err := o.Transition(StatusCancelled, TransitionExtra{Reason: "too slow"}, time.Now())

	require.NoError(t, err)
	require.Equal(t, StatusCancelled, o.Status)
}

func TestTransition_CancelRejectedFromLaterStates(t *testing.T) {
	for _, status := range []Status{StatusShipped, StatusDelivered, StatusCancelled} {
		o := &Order{Status: status}
		err := o.Transition(StatusCancelled, TransitionExtra{Reason: "r"}, time.Now())
		require.ErrorIs(t, err, ErrInvalidTransition, "from %s", status)
	}
}

func TestTransition_CancelRequiresReason(t *testing.T) {
	o := &Order{Status: StatusPending}

	err := o.Transition(StatusCancelled, TransitionExtra{}, time.Now())

	require.ErrorIs(t, err, ErrReasonRequired)
	require.Equal(t, StatusPending, o.Status)
}

func TestTransition_TerminalStatesAreFinal(t *testing.T) {
	targets := []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
	for _, from := range []Status{StatusDelivered, StatusCancelled} {
		for _, to := range targets {
			o := &Order{Status: from}
			err := o.Transition(to, TransitionExtra{Reason: "r"}, time.Now())
			require.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
		}
	}
}

func TestTransition_UnknownStatusRejected(t *testing.T) {
	o := &Order{Status: StatusPending}

	err := o.Transition(Status("archived"), TransitionExtra{}, time.Now())

	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_TouchesUpdatedAt(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusPending, UpdatedAt: now.Add(-time.Hour)}

	require.NoError(t, o.Transition(StatusProcessing, TransitionExtra{}, now))
	require.Equal(t, now, o.UpdatedAt)
}

func TestGenerateNumber_Format(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	n := GenerateNumber(now, func(int) int { return 7 })

	require.Equal(t, "ORD1700000000000007", n)
}

func TestIsTerminal(t *testing.T) {
	require.True(t, StatusDelivered.IsTerminal())
	require.True(t, StatusCancelled.IsTerminal())
	require.False(t, StatusPending.IsTerminal())
	require.False(t, StatusProcessing.IsTerminal())
	require.False(t, StatusShipped.IsTerminal())
}
