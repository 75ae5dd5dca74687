package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/repository"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		doc := r.client.Collection("listings").NewDoc()
		listing.ID = doc.ID
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	listing.ID = doc.Ref.ID

	return &listing, nil
}

func (r *firestoreListingRepository) List(ctx context.Context, filter map[string]interface{}, sortBy string, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.client.Collection("listings").Query

	// Price bounds are applied in memory below; Firestore range filters
	// would force the order-by onto the price field.
	minPrice, _ := filter["minPrice"].(float64)
	maxPrice, _ := filter["maxPrice"].(float64)
	for key, value := range filter {
		if key == "minPrice" || key == "maxPrice" {
			continue
		}
		query = query.Where(key, "==", value)
	}

	if sortBy != "" {
		parts := strings.Split(sortBy, "_")
		field := parts[0]
		order := firestore.Asc
		if len(parts) > 1 && parts[1] == "desc" {
			order = firestore.Desc
		}
		query = query.OrderBy(field, order)
	} else {
		query = query.OrderBy("createdAt", firestore.Desc)
	}

	iter := query.Documents(ctx)
	var matched []*entity.Listing

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate listings", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, 0, errors.Internal("Failed to parse listing data", err)
		}
		listing.ID = doc.Ref.ID

		if minPrice > 0 && listing.Price < minPrice {
			continue
		}
		if maxPrice > 0 && listing.Price > maxPrice {
			continue
		}
		matched = append(matched, &listing)
	}

	total := int64(len(matched))
	return paginateListings(matched, limit, offset), total, nil
}

func (r *firestoreListingRepository) SearchByTitle(ctx context.Context, query string, limit, offset int) ([]*entity.Listing, int64, error) {
	// Firestore has no full-text search; fetch and match in memory.
	query = strings.ToLower(query)

	docs, err := r.client.Collection("listings").Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to search listings", err)
	}

	var matched []*entity.Listing
	for _, doc := range docs {
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			continue
		}
		listing.ID = doc.Ref.ID

		if strings.Contains(strings.ToLower(listing.Title), query) ||
			strings.Contains(strings.ToLower(listing.Description), query) {
			matched = append(matched, &listing)
		}
	}

	total := int64(len(matched))
	return paginateListings(matched, limit, offset), total, nil
}

func (r *firestoreListingRepository) ListByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.client.Collection("listings").
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch owner listings", err)
	}

	var listings []*entity.Listing
	for _, doc := range docs {
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, 0, errors.Internal("Failed to parse listing data", err)
		}
		listing.ID = doc.Ref.ID
		listings = append(listings, &listing)
	}

	total := int64(len(listings))
	return paginateListings(listings, limit, offset), total, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})

	// Field-path updates leave everything outside the allow-list alone, so
	// a sale or counter bump committed between the caller's read and this
	// write is not reverted.
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.Internal("Failed to update listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) MarkSold(ctx context.Context, id, buyerID string, soldAt time.Time) (*entity.Listing, error) {
	docRef := r.client.Collection("listings").Doc(id)
	var updated entity.Listing

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return errors.Internal("Failed to parse listing data", err)
		}
		listing.ID = doc.Ref.ID

		// sold=false at write time is the condition of the transition;
		// the transaction makes the check-then-set atomic so exactly one
		// concurrent sale wins.
		if listing.Sold {
			return errors.Conflict("Listing is already sold")
		}

		now := time.Now()
		listing.Sold = true
		listing.BuyerID = buyerID
		listing.SoldAt = &soldAt
		listing.UpdatedAt = now
		updated = listing

		return tx.Update(docRef, []firestore.Update{
			{Path: "sold", Value: true},
			{Path: "buyerId", Value: buyerID},
			{Path: "soldAt", Value: soldAt},
			{Path: "updatedAt", Value: now},
		})
	})
	if err != nil {
		if appErr, ok := asAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.Internal("Failed to mark listing sold", err)
	}

	return &updated, nil
}

func (r *firestoreListingRepository) Upvote(ctx context.Context, id, userID string) (*entity.Listing, error) {
	docRef := r.client.Collection("listings").Doc(id)
	var updated entity.Listing

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return errors.Internal("Failed to parse listing data", err)
		}
		listing.ID = doc.Ref.ID

		for _, voter := range listing.Upvoters {
			if voter == userID {
				return errors.Conflict("You have already upvoted this listing")
			}
		}

		listing.Upvoters = append(listing.Upvoters, userID)
		listing.Upvotes = len(listing.Upvoters)
		listing.UpdatedAt = time.Now()
		updated = listing

		return tx.Update(docRef, []firestore.Update{
			{Path: "upvoters", Value: firestore.ArrayUnion(userID)},
			{Path: "upvotes", Value: firestore.Increment(1)},
			{Path: "updatedAt", Value: listing.UpdatedAt},
		})
	})
	if err != nil {
		if appErr, ok := asAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.Internal("Failed to upvote listing", err)
	}

	return &updated, nil
}

func (r *firestoreListingRepository) AdjustSaveCount(ctx context.Context, id string, delta int) error {
	docRef := r.client.Collection("listings").Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return errors.Internal("Failed to parse listing data", err)
		}

		// Clamp at zero on decrement; a stale save row must never drive
		// the counter negative.
		next := listing.SaveCount + delta
		if next < 0 {
			next = 0
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "saveCount", Value: next},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if appErr, ok := asAppError(err); ok {
			return appErr
		}
		return errors.Internal("Failed to adjust save counter", err)
	}

	return nil
}

func paginateListings(listings []*entity.Listing, limit, offset int) []*entity.Listing {
	start := offset
	if start > len(listings) {
		start = len(listings)
	}
	end := len(listings)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return listings[start:end]
}
