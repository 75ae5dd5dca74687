package entity

import (
	"sort"
	"strings"
	"time"
)

// Thread is a conversation scoped to one listing and exactly two
// participants. The document ID doubles as the conversation key, so a
// (listing, pair) combination maps to at most one document.
type Thread struct {
	ID           string   `json:"id" firestore:"id"`
	ListingID    string   `json:"listing_id" firestore:"listingId"`
	ListingTitle string   `json:"listing_title,omitempty" firestore:"listingTitle,omitempty"`
	Participants []string `json:"participants" firestore:"participants"`

	Messages []Message `json:"messages" firestore:"messages"`

	// UnreadCount maps participant id to messages received since that
	// participant last marked the thread read. Keys outside Participants
	// and negative values are stripped at the repository boundary.
	UnreadCount map[string]int `json:"unread_count" firestore:"unreadCount"`

	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`

	// Display snapshot taken at creation. Read paths serve live profile
	// data instead; this exists only so a thread renders before the first
	// profile lookup succeeds.
	CounterpartyName  string `json:"-" firestore:"counterpartyName,omitempty"`
	CounterpartyPhoto string `json:"-" firestore:"counterpartyPhoto,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

type Message struct {
	From string    `json:"from" firestore:"from"`
	Body string    `json:"body" firestore:"body"`
	At   time.Time `json:"at" firestore:"at"`
}

// HasParticipant reports whether uid is one of the two thread members.
func (t *Thread) HasParticipant(uid string) bool {
	for _, p := range t.Participants {
		if p == uid {
			return true
		}
	}
	return false
}

// Counterparty returns the first participant that is not uid. Callers check
// membership with HasParticipant before trusting the result.
func (t *Thread) Counterparty(uid string) string {
	for _, p := range t.Participants {
		if p != uid {
			return p
		}
	}
	return ""
}

// ConversationKey builds the natural key for a thread: the listing id plus
// the sorted, deduplicated participant pair. Order of a and b is irrelevant.
func ConversationKey(listingID, a, b string) string {
	pair := SortedPair(a, b)
	return listingID + "_" + strings.Join(pair, "_")
}

// SortedPair returns the two ids sorted and deduplicated.
func SortedPair(a, b string) []string {
	if a == b {
		return []string{a}
	}
	pair := []string{a, b}
	sort.Strings(pair)
	return pair
}
