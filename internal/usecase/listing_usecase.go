package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/repository"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/logger"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	threadRepo  repository.ThreadRepository
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	threadRepo repository.ThreadRepository,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		threadRepo:  threadRepo,
	}
}

type CreateListingInput struct {
	Title       string
	Description string
	Category    string
	Price       float64
	Images      []string
}

// UpdateListingInput carries the editable fields; nil means "leave alone".
// This is the whole allow-list: ownership, counters and sale state are not
// reachable through an edit.
type UpdateListingInput struct {
	Title       *string
	Description *string
	Category    *string
	Price       *float64
	Images      []string
}

type SellResult struct {
	Success  bool   `json:"success"`
	ThreadID string `json:"thread_id,omitempty"`
}

func validateImages(images []string) error {
	if len(images) > entity.MaxListingImages {
		return errors.BadRequest("A listing may carry at most 10 images", nil)
	}
	for _, url := range images {
		if !strings.HasPrefix(url, "https://") {
			return errors.BadRequest("Image URLs must use https", nil)
		}
	}
	return nil
}

func (uc *ListingUseCase) Create(ctx context.Context, ownerID, ownerEmail string, input CreateListingInput) (*entity.Listing, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if input.Price < 0 {
		return nil, errors.BadRequest("Price must not be negative", nil)
	}
	// Validation happens before any write; a bad image list never reaches
	// the store.
	if err := validateImages(input.Images); err != nil {
		return nil, err
	}

	listing := &entity.Listing{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		OwnerID:     ownerID,
		OwnerEmail:  ownerEmail,
		Images:      input.Images,
		Upvotes:     0,
		SaveCount:   0,
		Sold:        false,
		CreatedAt:   time.Now(),
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) Edit(ctx context.Context, requesterID, requesterEmail, listingID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !isOwner(listing, requesterID, requesterEmail) {
		return nil, errors.Forbidden("You don't have permission to edit this listing", nil)
	}

	// Only the fields named here ever reach the store; a concurrent sale
	// or counter bump committed after the read above stays intact.
	fields := make(map[string]interface{})
	if input.Title != nil {
		listing.Title = *input.Title
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
		fields["description"] = *input.Description
	}
	if input.Category != nil {
		listing.Category = *input.Category
		fields["category"] = *input.Category
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.BadRequest("Price must not be negative", nil)
		}
		listing.Price = *input.Price
		fields["price"] = *input.Price
	}
	if input.Images != nil {
		if err := validateImages(input.Images); err != nil {
			return nil, err
		}
		listing.Images = input.Images
		fields["images"] = input.Images
	}

	if len(fields) == 0 {
		return listing, nil
	}

	if err := uc.listingRepo.Update(ctx, listing.ID, fields); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) MarkSold(ctx context.Context, requesterID, listingID, buyerID string, soldAt time.Time) (*SellResult, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.OwnerID != requesterID {
		return nil, errors.Forbidden("Only the owner can mark a listing sold", nil)
	}

	if soldAt.IsZero() {
		soldAt = time.Now()
	}

	if _, err := uc.listingRepo.MarkSold(ctx, listingID, buyerID, soldAt); err != nil {
		return nil, err
	}

	result := &SellResult{Success: true}

	// Best-effort: surface the owner/buyer conversation for this listing
	// so the client can jump straight to it. No thread is not an error.
	if buyerID != "" {
		thread, err := uc.threadRepo.GetByKey(ctx, listingID, requesterID, buyerID)
		if err == nil {
			result.ThreadID = thread.ID
		} else if !errors.Is(err, "NOT_FOUND") {
			logger.Warn("MarkSold: thread lookup failed for listing %s: %v", listingID, err)
		}
	}

	return result, nil
}

func (uc *ListingUseCase) Upvote(ctx context.Context, userID, listingID string) (*entity.Listing, error) {
	return uc.listingRepo.Upvote(ctx, listingID, userID)
}

func (uc *ListingUseCase) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

type ListListingsFilter struct {
	Category    string
	MinPrice    float64
	MaxPrice    float64
	IncludeSold bool
	Sort        string
}

func (uc *ListingUseCase) List(ctx context.Context, filter ListListingsFilter, page, limit int) ([]*entity.Listing, int64, error) {
	query := make(map[string]interface{})
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if !filter.IncludeSold {
		query["sold"] = false
	}
	if filter.MinPrice > 0 {
		query["minPrice"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		query["maxPrice"] = filter.MaxPrice
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.listingRepo.List(ctx, query, filter.Sort, limit, offset)
}

func (uc *ListingUseCase) Search(ctx context.Context, query string, page, limit int) ([]*entity.Listing, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.listingRepo.SearchByTitle(ctx, query, limit, offset)
}

func (uc *ListingUseCase) ListByOwner(ctx context.Context, ownerID string, page, limit int) ([]*entity.Listing, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.listingRepo.ListByOwnerID(ctx, ownerID, limit, offset)
}

func (uc *ListingUseCase) Delete(ctx context.Context, requesterID, requesterEmail, listingID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}

	if !isOwner(listing, requesterID, requesterEmail) {
		return errors.Forbidden("You don't have permission to delete this listing", nil)
	}

	return uc.listingRepo.Delete(ctx, listingID)
}

// isOwner matches on the stored owner id, falling back to a
// case-insensitive match on the denormalized owner email.
func isOwner(listing *entity.Listing, requesterID, requesterEmail string) bool {
	if listing.OwnerID == requesterID {
		return true
	}
	return requesterEmail != "" && strings.EqualFold(listing.OwnerEmail, requesterEmail)
}
