package entity

import (
	"time"
)

type Listing struct {
	ID          string   `json:"id" firestore:"id"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Category    string   `json:"category,omitempty" firestore:"category,omitempty"`
	Price       float64  `json:"price" firestore:"price"`
	OwnerID     string   `json:"owner_id" firestore:"ownerId"`
	OwnerEmail  string   `json:"owner_email" firestore:"ownerEmail"`
	Images      []string `json:"images" firestore:"images"`

	Upvotes   int      `json:"upvotes" firestore:"upvotes"`
	Upvoters  []string `json:"-" firestore:"upvoters"`
	SaveCount int      `json:"save_count" firestore:"saveCount"`

	Sold    bool       `json:"sold" firestore:"sold"`
	BuyerID string     `json:"buyer_id,omitempty" firestore:"buyerId,omitempty"`
	SoldAt  *time.Time `json:"sold_at,omitempty" firestore:"soldAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// MaxListingImages caps the image URL list per listing.
const MaxListingImages = 10
