package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, ConversationKey("L1", "uidA", "uidB"), ConversationKey("L1", "uidB", "uidA"))
	assert.NotEqual(t, ConversationKey("L1", "uidA", "uidB"), ConversationKey("L2", "uidA", "uidB"))
	assert.Equal(t, "L1_uidA_uidB", ConversationKey("L1", "uidB", "uidA"))
}

func TestSortedPairDeduplicates(t *testing.T) {
	assert.Equal(t, []string{"uidA"}, SortedPair("uidA", "uidA"))
	assert.Equal(t, []string{"uidA", "uidB"}, SortedPair("uidB", "uidA"))
}

func TestThreadMembership(t *testing.T) {
	thread := &Thread{Participants: []string{"uidA", "uidB"}}

	assert.True(t, thread.HasParticipant("uidA"))
	assert.False(t, thread.HasParticipant("uidC"))

	assert.Equal(t, "uidB", thread.Counterparty("uidA"))
	assert.Equal(t, "uidA", thread.Counterparty("uidB"))
	assert.Equal(t, "uidA", thread.Counterparty("uidC"))
}
