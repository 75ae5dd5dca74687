package repository

import (
	"context"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
)

type SaveRepository interface {
	// Add inserts the save row. added=false when it was already present.
	Add(ctx context.Context, userID, listingID string) (added bool, err error)

	// Remove deletes the save row. removed=false when it was not present.
	Remove(ctx context.Context, userID, listingID string) (removed bool, err error)

	IsSaved(ctx context.Context, userID, listingID string) (bool, error)

	// ListForUser returns the user's saves joined with their listings.
	// References to sold or deleted listings are filtered out here, at
	// read time; the rows themselves are never eagerly cleaned.
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]entity.SavedItemWithListing, int64, error)
}
