package entity

import (
	"time"
)

// User holds the per-user profile data this service owns. Identity and
// credentials live in the external identity provider; ID is its uid.
type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username,omitempty" firestore:"username,omitempty"`
	PhotoURL string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
