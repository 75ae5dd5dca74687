package repository

import (
	"context"
	"time"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Listing, int64, error)
	SearchByTitle(ctx context.Context, query string, limit, offset int) ([]*entity.Listing, int64, error)
	ListByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Listing, int64, error)
	// Update writes only the named field paths. Sale state and counters
	// are never addressable here, so a concurrent transactional write
	// survives an edit.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error

	// MarkSold transitions sold false -> true under a transaction. Exactly
	// one concurrent caller wins; the rest observe CONFLICT.
	MarkSold(ctx context.Context, id, buyerID string, soldAt time.Time) (*entity.Listing, error)

	// Upvote records userID as a voter and bumps the counter, once per
	// user. A repeat vote observes CONFLICT.
	Upvote(ctx context.Context, id, userID string) (*entity.Listing, error)

	// AdjustSaveCount moves the save counter by delta, clamped at zero.
	AdjustSaveCount(ctx context.Context, id string, delta int) error
}
