package usecase

import (
	"context"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/repository"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/logger"
)

type SaveUseCase struct {
	saveRepo    repository.SaveRepository
	listingRepo repository.ListingRepository
}

func NewSaveUseCase(
	saveRepo repository.SaveRepository,
	listingRepo repository.ListingRepository,
) *SaveUseCase {
	return &SaveUseCase{
		saveRepo:    saveRepo,
		listingRepo: listingRepo,
	}
}

func (uc *SaveUseCase) Save(ctx context.Context, userID, listingID string) error {
	if _, err := uc.listingRepo.GetByID(ctx, listingID); err != nil {
		return err
	}

	added, err := uc.saveRepo.Add(ctx, userID, listingID)
	if err != nil {
		return err
	}

	// The counter only moves when the set actually changed; re-saving is a
	// full no-op.
	if added {
		if err := uc.listingRepo.AdjustSaveCount(ctx, listingID, 1); err != nil {
			logger.Warn("Save: counter bump failed for listing %s: %v", listingID, err)
		}
	}

	return nil
}

func (uc *SaveUseCase) Unsave(ctx context.Context, userID, listingID string) error {
	removed, err := uc.saveRepo.Remove(ctx, userID, listingID)
	if err != nil {
		return err
	}

	if removed {
		if err := uc.listingRepo.AdjustSaveCount(ctx, listingID, -1); err != nil {
			logger.Warn("Unsave: counter decrement failed for listing %s: %v", listingID, err)
		}
	}

	return nil
}

func (uc *SaveUseCase) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	return uc.saveRepo.IsSaved(ctx, userID, listingID)
}

func (uc *SaveUseCase) ListSaved(ctx context.Context, userID string, page, limit int) ([]entity.SavedItemWithListing, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.saveRepo.ListForUser(ctx, userID, limit, offset)
}
