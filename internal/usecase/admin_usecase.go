package usecase

import (
	"context"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/repository"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/logger"
)

// AdminUseCase covers moderation actions available to allow-listed
// administrators. Account administration itself lives with the identity
// provider and is not wrapped here.
type AdminUseCase struct {
	listingRepo repository.ListingRepository
}

func NewAdminUseCase(listingRepo repository.ListingRepository) *AdminUseCase {
	return &AdminUseCase{
		listingRepo: listingRepo,
	}
}

// RemoveListing deletes any listing regardless of ownership.
func (uc *AdminUseCase) RemoveListing(ctx context.Context, adminEmail, listingID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}

	logger.Info("Admin %s removing listing %s (owner %s)", adminEmail, listingID, listing.OwnerID)
	return uc.listingRepo.Delete(ctx, listingID)
}

// ListAllListings pages through every listing, sold included.
func (uc *AdminUseCase) ListAllListings(ctx context.Context, page, limit int) ([]*entity.Listing, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.listingRepo.List(ctx, map[string]interface{}{}, "", limit, offset)
}
