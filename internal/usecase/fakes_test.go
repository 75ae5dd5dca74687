package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
)

// In-memory repositories mirroring the Firestore implementations' contracts.

type fakeThreadRepo struct {
	threads map[string]*entity.Thread
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{threads: make(map[string]*entity.Thread)}
}

func (r *fakeThreadRepo) CreateIfAbsent(ctx context.Context, thread *entity.Thread) (*entity.Thread, bool, error) {
	key := entity.ConversationKey(thread.ListingID, thread.Participants[0], thread.Participants[len(thread.Participants)-1])
	if existing, ok := r.threads[key]; ok {
		return existing, false, nil
	}

	stored := *thread
	stored.ID = key
	r.threads[key] = &stored
	return &stored, true, nil
}

func (r *fakeThreadRepo) GetByID(ctx context.Context, id string) (*entity.Thread, error) {
	thread, ok := r.threads[id]
	if !ok {
		return nil, errors.NotFound("Thread", nil)
	}
	return thread, nil
}

func (r *fakeThreadRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Thread, error) {
	var out []*entity.Thread
	for _, t := range r.threads {
		if t.HasParticipant(userID) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return activityOf(out[i]).After(activityOf(out[j]))
	})
	return out, nil
}

func activityOf(t *entity.Thread) time.Time {
	if !t.LastMessageAt.IsZero() {
		return t.LastMessageAt
	}
	return t.CreatedAt
}

func (r *fakeThreadRepo) GetByKey(ctx context.Context, listingID, userA, userB string) (*entity.Thread, error) {
	return r.GetByID(ctx, entity.ConversationKey(listingID, userA, userB))
}

func (r *fakeThreadRepo) AppendMessage(ctx context.Context, threadID string, msg entity.Message, recipientID string) error {
	thread, ok := r.threads[threadID]
	if !ok {
		return errors.NotFound("Thread", nil)
	}

	thread.Messages = append(thread.Messages, msg)
	thread.LastMessage = msg.Body
	thread.LastMessageAt = msg.At
	if thread.UnreadCount == nil {
		thread.UnreadCount = make(map[string]int)
	}
	thread.UnreadCount[recipientID]++
	return nil
}

func (r *fakeThreadRepo) ResetUnread(ctx context.Context, threadID, userID string) error {
	thread, ok := r.threads[threadID]
	if !ok {
		return errors.NotFound("Thread", nil)
	}
	if thread.UnreadCount == nil {
		thread.UnreadCount = make(map[string]int)
	}
	thread.UnreadCount[userID] = 0
	return nil
}

func (r *fakeThreadRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.threads[id]; !ok {
		return errors.NotFound("Thread", nil)
	}
	delete(r.threads, id)
	return nil
}

type fakeListingRepo struct {
	listings    map[string]*entity.Listing
	createCalls int
	lastUpdate  map[string]interface{}

	// afterGet runs once a reader holds its snapshot, standing in for a
	// write that commits between a read and the follow-up update.
	afterGet func()
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*entity.Listing)}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.createCalls++
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	r.listings[listing.ID] = listing
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	// Readers get a snapshot, like a Firestore document read. Mutating the
	// returned value never touches the stored document.
	snapshot := *listing
	if r.afterGet != nil {
		r.afterGet()
	}
	return &snapshot, nil
}

func (r *fakeListingRepo) List(ctx context.Context, filter map[string]interface{}, sortBy string, limit, offset int) ([]*entity.Listing, int64, error) {
	var out []*entity.Listing
	for _, l := range r.listings {
		if sold, ok := filter["sold"].(bool); ok && l.Sold != sold {
			continue
		}
		if category, ok := filter["category"].(string); ok && l.Category != category {
			continue
		}
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) SearchByTitle(ctx context.Context, query string, limit, offset int) ([]*entity.Listing, int64, error) {
	var out []*entity.Listing
	for _, l := range r.listings {
		if strings.Contains(strings.ToLower(l.Title), strings.ToLower(query)) {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) ListByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Listing, int64, error) {
	var out []*entity.Listing
	for _, l := range r.listings {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	for path, value := range fields {
		switch path {
		case "title":
			listing.Title = value.(string)
		case "description":
			listing.Description = value.(string)
		case "category":
			listing.Category = value.(string)
		case "price":
			listing.Price = value.(float64)
		case "images":
			listing.Images = value.([]string)
		}
	}
	r.lastUpdate = fields
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return errors.NotFound("Listing", nil)
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) MarkSold(ctx context.Context, id, buyerID string, soldAt time.Time) (*entity.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	if listing.Sold {
		return nil, errors.Conflict("Listing is already sold")
	}
	listing.Sold = true
	listing.BuyerID = buyerID
	listing.SoldAt = &soldAt
	return listing, nil
}

func (r *fakeListingRepo) Upvote(ctx context.Context, id, userID string) (*entity.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	for _, voter := range listing.Upvoters {
		if voter == userID {
			return nil, errors.Conflict("You have already upvoted this listing")
		}
	}
	listing.Upvoters = append(listing.Upvoters, userID)
	listing.Upvotes++
	return listing, nil
}

func (r *fakeListingRepo) AdjustSaveCount(ctx context.Context, id string, delta int) error {
	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.SaveCount += delta
	if listing.SaveCount < 0 {
		listing.SaveCount = 0
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	if existing, ok := r.users[user.ID]; ok {
		if user.Email != "" {
			existing.Email = user.Email
		}
		return nil
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	r.users[user.ID] = user
	return nil
}

type fakeSaveRepo struct {
	saves    map[string]entity.SavedItem
	listings *fakeListingRepo
}

func newFakeSaveRepo(listings *fakeListingRepo) *fakeSaveRepo {
	return &fakeSaveRepo{
		saves:    make(map[string]entity.SavedItem),
		listings: listings,
	}
}

func (r *fakeSaveRepo) Add(ctx context.Context, userID, listingID string) (bool, error) {
	key := userID + "_" + listingID
	if _, ok := r.saves[key]; ok {
		return false, nil
	}
	r.saves[key] = entity.SavedItem{
		ID:        key,
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}
	return true, nil
}

func (r *fakeSaveRepo) Remove(ctx context.Context, userID, listingID string) (bool, error) {
	key := userID + "_" + listingID
	if _, ok := r.saves[key]; !ok {
		return false, nil
	}
	delete(r.saves, key)
	return true, nil
}

func (r *fakeSaveRepo) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	_, ok := r.saves[userID+"_"+listingID]
	return ok, nil
}

func (r *fakeSaveRepo) ListForUser(ctx context.Context, userID string, limit, offset int) ([]entity.SavedItemWithListing, int64, error) {
	var out []entity.SavedItemWithListing
	for _, item := range r.saves {
		if item.UserID != userID {
			continue
		}
		listing, ok := r.listings.listings[item.ListingID]
		if !ok || listing.Sold {
			continue
		}
		out = append(out, entity.SavedItemWithListing{
			ID:        item.ID,
			UserID:    item.UserID,
			ListingID: item.ListingID,
			Listing:   listing,
			CreatedAt: item.CreatedAt,
		})
	}
	return out, int64(len(out)), nil
}
