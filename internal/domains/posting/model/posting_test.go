package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobPostingTransitions(t *testing.T) {
	p := &Posting{Kind: KindJob, Status: StatusOpen}

	changed, err := p.Transition(StatusClosed)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusClosed, p.Status)

	// Jobs are closed, never filled or cancelled.
	p = &Posting{Kind: KindJob, Status: StatusOpen}
	for _, target := range []Status{StatusFilled, StatusCancelled} {
		_, err := p.Transition(target)
		assert.ErrorIs(t, err, ErrInvalidTransition, "job open -> %s should be refused", target)
	}
}

func TestGuestSpotTransitions(t *testing.T) {
	p := &Posting{Kind: KindGuestSpot, Status: StatusOpen}

	changed, err := p.Transition(StatusFilled)
	require.NoError(t, err)
	assert.True(t, changed)

	// Guest spots fill or cancel, never close.
	p = &Posting{Kind: KindGuestSpot, Status: StatusOpen}
	_, err = p.Transition(StatusClosed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	changed, err = p.Transition(StatusCancelled)
	require.NoError(t, err)
	assert.True(t, changed)
}

// Requesting the posting's current status is a no-op, so closing an
// already-closed posting never errors.
func TestTransitionIdempotentClose(t *testing.T) {
	p := &Posting{Kind: KindJob, Status: StatusOpen}

	changed, err := p.Transition(StatusClosed)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = p.Transition(StatusClosed)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, StatusClosed, p.Status)
}

func TestRetiredPostingsAcceptNoTransitions(t *testing.T) {
	for _, from := range []Status{StatusClosed, StatusFilled, StatusCancelled} {
		p := &Posting{Kind: KindGuestSpot, Status: from}
		_, err := p.Transition(StatusOpen)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> open should be refused", from)
	}
}

func TestInvalidTransitionErrorDetail(t *testing.T) {
	p := &Posting{Kind: KindJob, Status: StatusClosed}

	_, err := p.Transition(StatusFilled)
	require.Error(t, err)

	var trErr *InvalidTransitionError
	require.True(t, errors.As(err, &trErr))
	assert.Equal(t, KindJob, trErr.Kind)
	assert.Equal(t, StatusClosed, trErr.From)
	assert.Equal(t, StatusFilled, trErr.To)
}

func TestIsOpen(t *testing.T) {
	assert.True(t, (&Posting{Status: StatusOpen}).IsOpen())
	assert.False(t, (&Posting{Status: StatusFilled}).IsOpen())
}
