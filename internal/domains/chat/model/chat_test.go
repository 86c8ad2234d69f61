package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Both sides of a pair must derive the same conversation id no matter
// who opens the thread; different pairs must never collide.
func TestConversationIDDeterministic(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	assert.Equal(t, ConversationID(a, b), ConversationID(b, a))
	assert.NotEqual(t, uuid.Nil, ConversationID(a, b))

	c := uuid.New()
	assert.NotEqual(t, ConversationID(a, b), ConversationID(a, c))
	assert.NotEqual(t, ConversationID(a, b), ConversationID(b, c))
}

func TestSortPairStable(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	lo, hi := SortPair(a, b)
	assert.Equal(t, a, lo)
	assert.Equal(t, b, hi)

	lo, hi = SortPair(b, a)
	assert.Equal(t, a, lo)
	assert.Equal(t, b, hi)
}

func TestConversationParticipantHelpers(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	lo, hi := SortPair(a, b)

	c := &Conversation{ParticipantA: lo, ParticipantB: hi, UnreadA: 2, UnreadB: 5}

	assert.True(t, c.HasParticipant(a))
	assert.True(t, c.HasParticipant(b))
	assert.False(t, c.HasParticipant(uuid.New()))

	assert.Equal(t, hi, c.OtherParticipant(lo))
	assert.Equal(t, lo, c.OtherParticipant(hi))

	assert.Equal(t, 2, c.UnreadFor(lo))
	assert.Equal(t, 5, c.UnreadFor(hi))
}
