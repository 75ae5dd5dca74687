package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/repository"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/logger"
)

type firestoreSaveRepository struct {
	client *firestore.Client
}

func NewFirestoreSaveRepository(client *firestore.Client) repository.SaveRepository {
	return &firestoreSaveRepository{client: client}
}

func saveDocID(userID, listingID string) string {
	return fmt.Sprintf("%s_%s", userID, listingID)
}

func (r *firestoreSaveRepository) Add(ctx context.Context, userID, listingID string) (bool, error) {
	item := entity.SavedItem{
		ID:        saveDocID(userID, listingID),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}

	// Insert-only write: saving an already-saved listing is a no-op, not
	// an error, and never double-counts.
	_, err := r.client.Collection("saves").Doc(item.ID).Create(ctx, item)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, errors.Internal("Failed to save listing", err)
	}

	return true, nil
}

func (r *firestoreSaveRepository) Remove(ctx context.Context, userID, listingID string) (bool, error) {
	docRef := r.client.Collection("saves").Doc(saveDocID(userID, listingID))

	_, err := docRef.Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound || status.Code(err) == codes.FailedPrecondition {
			return false, nil
		}
		return false, errors.Internal("Failed to remove saved listing", err)
	}

	return true, nil
}

func (r *firestoreSaveRepository) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	doc, err := r.client.Collection("saves").Doc(saveDocID(userID, listingID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check saved listing", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreSaveRepository) ListForUser(ctx context.Context, userID string, limit, offset int) ([]entity.SavedItemWithListing, int64, error) {
	query := r.client.Collection("saves").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to get saved listings", err)
	}

	var items []entity.SavedItem
	listingIDs := make([]string, 0, len(docs))
	for _, doc := range docs {
		var item entity.SavedItem
		if err := doc.DataTo(&item); err != nil {
			logger.Warn("Skipping unreadable save row %s: %v", doc.Ref.ID, err)
			continue
		}
		items = append(items, item)
		listingIDs = append(listingIDs, item.ListingID)
	}

	if len(listingIDs) == 0 {
		return []entity.SavedItemWithListing{}, 0, nil
	}

	// Batch fetch the referenced listings, 30 refs per GetAll.
	listingMap := make(map[string]*entity.Listing)
	for i := 0; i < len(listingIDs); i += 30 {
		end := i + 30
		if end > len(listingIDs) {
			end = len(listingIDs)
		}

		batch := listingIDs[i:end]
		docRefs := make([]*firestore.DocumentRef, len(batch))
		for j, id := range batch {
			docRefs[j] = r.client.Collection("listings").Doc(id)
		}

		listingDocs, err := r.client.GetAll(ctx, docRefs)
		if err != nil {
			logger.Warn("Error batch fetching listings for saves: %v", err)
			continue
		}

		for _, doc := range listingDocs {
			if doc == nil || !doc.Exists() {
				continue
			}
			var listing entity.Listing
			if err := doc.DataTo(&listing); err != nil {
				continue
			}
			listing.ID = doc.Ref.ID
			listingMap[doc.Ref.ID] = &listing
		}
	}

	// Sold and deleted listings are filtered here at read time; the save
	// rows stay behind and simply stop rendering.
	var result []entity.SavedItemWithListing
	var liveCount int64
	for _, item := range items {
		listing, exists := listingMap[item.ListingID]
		if !exists || listing.Sold {
			continue
		}
		liveCount++

		if int(liveCount) > offset && (limit <= 0 || len(result) < limit) {
			result = append(result, entity.SavedItemWithListing{
				ID:        item.ID,
				UserID:    item.UserID,
				ListingID: item.ListingID,
				Listing:   listing,
				CreatedAt: item.CreatedAt,
			})
		}
	}

	return result, liveCount, nil
}
