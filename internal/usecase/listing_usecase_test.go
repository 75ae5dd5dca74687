package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
)

func newListingUseCaseForTest() (*ListingUseCase, *fakeListingRepo, *fakeThreadRepo) {
	listingRepo := newFakeListingRepo()
	threadRepo := newFakeThreadRepo()
	return NewListingUseCase(listingRepo, threadRepo), listingRepo, threadRepo
}

func TestCreateListingValidatesBeforeWrite(t *testing.T) {
	uc, listingRepo, _ := newListingUseCaseForTest()
	ctx := context.Background()

	images := make([]string, entity.MaxListingImages+1)
	for i := range images {
		images[i] = "https://cdn.example.edu/img.png"
	}

	_, err := uc.Create(ctx, "uidA", "a@student.edu", CreateListingInput{Title: "Desk", Images: images})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, 0, listingRepo.createCalls, "nothing may be written when validation fails")

	_, err = uc.Create(ctx, "uidA", "a@student.edu", CreateListingInput{Title: "Desk", Images: []string{"http://cdn.example.edu/img.png"}})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, 0, listingRepo.createCalls)

	_, err = uc.Create(ctx, "uidA", "a@student.edu", CreateListingInput{Title: "  "})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.Create(ctx, "uidA", "a@student.edu", CreateListingInput{Title: "Desk", Price: -5})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	listing, err := uc.Create(ctx, "uidA", "a@student.edu", CreateListingInput{
		Title:  "Desk",
		Price:  40,
		Images: []string{"https://cdn.example.edu/img.png"},
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, listing.ID)
	assert.Equal(t, "uidA", listing.OwnerID)
}

func TestEditListingOwnership(t *testing.T) {
	uc, listingRepo, _ := newListingUseCaseForTest()
	ctx := context.Background()

	listingRepo.listings["L1"] = &entity.Listing{
		ID:         "L1",
		Title:      "Desk",
		OwnerID:    "uidA",
		OwnerEmail: "Owner@Student.EDU",
		Price:      40,
	}

	newTitle := "Standing desk"

	// Stranger is rejected.
	_, err := uc.Edit(ctx, "uidX", "x@student.edu", "L1", UpdateListingInput{Title: &newTitle})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// Owner by id.
	updated, err := uc.Edit(ctx, "uidA", "", "L1", UpdateListingInput{Title: &newTitle})
	assert.NoError(t, err)
	assert.Equal(t, "Standing desk", updated.Title)

	// Owner by email, case-insensitive.
	price := 35.0
	updated, err = uc.Edit(ctx, "other-uid", "owner@student.edu", "L1", UpdateListingInput{Price: &price})
	assert.NoError(t, err)
	assert.Equal(t, 35.0, updated.Price)
}

func TestEditListingAllowListOnly(t *testing.T) {
	uc, listingRepo, _ := newListingUseCaseForTest()
	ctx := context.Background()

	listingRepo.listings["L1"] = &entity.Listing{ID: "L1", Title: "Desk", OwnerID: "uidA", Upvotes: 3, SaveCount: 2}

	newTitle := "Desk v2"
	updated, err := uc.Edit(ctx, "uidA", "", "L1", UpdateListingInput{Title: &newTitle})
	assert.NoError(t, err)

	// Counters and sale state survive an edit untouched.
	assert.Equal(t, 3, updated.Upvotes)
	assert.Equal(t, 2, updated.SaveCount)
	assert.False(t, updated.Sold)

	badPrice := -1.0
	_, err = uc.Edit(ctx, "uidA", "", "L1", UpdateListingInput{Price: &badPrice})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.Edit(ctx, "uidA", "", "L1", UpdateListingInput{Images: []string{"ftp://nope"}})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestEditDoesNotRevertConcurrentSale(t *testing.T) {
	uc, listingRepo, _ := newListingUseCaseForTest()
	ctx := context.Background()

	listingRepo.listings["L1"] = &entity.Listing{ID: "L1", Title: "Desk", OwnerID: "uidA"}

	// A buyer wins the sale between the editor's read and its write.
	soldAt := time.Now()
	listingRepo.afterGet = func() {
		listingRepo.afterGet = nil
		_, err := listingRepo.MarkSold(ctx, "L1", "uidB", soldAt)
		assert.NoError(t, err)
	}

	newTitle := "Desk v2"
	_, err := uc.Edit(ctx, "uidA", "", "L1", UpdateListingInput{Title: &newTitle})
	assert.NoError(t, err)

	stored := listingRepo.listings["L1"]
	assert.Equal(t, "Desk v2", stored.Title)
	assert.True(t, stored.Sold, "an edit must not undo a sale that landed in between")
	assert.Equal(t, "uidB", stored.BuyerID)
	assert.NotNil(t, stored.SoldAt)
}

func TestEditWritesOnlyChangedFields(t *testing.T) {
	uc, listingRepo, _ := newListingUseCaseForTest()
	ctx := context.Background()

	listingRepo.listings["L1"] = &entity.Listing{ID: "L1", Title: "Desk", OwnerID: "uidA", Price: 40}

	price := 35.0
	_, err := uc.Edit(ctx, "uidA", "", "L1", UpdateListingInput{Price: &price})
	assert.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"price": 35.0}, listingRepo.lastUpdate)

	// An empty edit is a no-op, not a write.
	listingRepo.lastUpdate = nil
	_, err = uc.Edit(ctx, "uidA", "", "L1", UpdateListingInput{})
	assert.NoError(t, err)
	assert.Nil(t, listingRepo.lastUpdate)
}

func TestMarkSoldIsFirstWriterWins(t *testing.T) {
	uc, listingRepo, _ := newListingUseCaseForTest()
	ctx := context.Background()

	listingRepo.listings["L1"] = &entity.Listing{ID: "L1", OwnerID: "uidA"}

	_, err := uc.MarkSold(ctx, "uidX", "L1", "uidB", time.Now())
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	result, err := uc.MarkSold(ctx, "uidA", "L1", "uidB", time.Now())
	assert.NoError(t, err)
	assert.True(t, result.Success)

	_, err = uc.MarkSold(ctx, "uidA", "L1", "uidC", time.Now())
	assert.True(t, errors.Is(err, "CONFLICT"))

	stored := listingRepo.listings["L1"]
	assert.Equal(t, "uidB", stored.BuyerID, "the first sale sticks")
}

func TestMarkSoldSurfacesBuyerThread(t *testing.T) {
	uc, listingRepo, threadRepo := newListingUseCaseForTest()
	ctx := context.Background()

	listingRepo.listings["L1"] = &entity.Listing{ID: "L1", OwnerID: "uidA"}
	thread := &entity.Thread{
		ListingID:    "L1",
		Participants: entity.SortedPair("uidA", "uidB"),
	}
	stored, _, err := threadRepo.CreateIfAbsent(ctx, thread)
	assert.NoError(t, err)

	result, err := uc.MarkSold(ctx, "uidA", "L1", "uidB", time.Now())
	assert.NoError(t, err)
	assert.Equal(t, stored.ID, result.ThreadID)
}

func TestMarkSoldWithoutThreadStillSucceeds(t *testing.T) {
	uc, listingRepo, _ := newListingUseCaseForTest()
	ctx := context.Background()

	listingRepo.listings["L1"] = &entity.Listing{ID: "L1", OwnerID: "uidA"}

	result, err := uc.MarkSold(ctx, "uidA", "L1", "uidB", time.Now())
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.ThreadID)
}

func TestUpvoteCountsEachUserOnce(t *testing.T) {
	uc, listingRepo, _ := newListingUseCaseForTest()
	ctx := context.Background()

	listingRepo.listings["L1"] = &entity.Listing{ID: "L1", OwnerID: "uidA"}

	listing, err := uc.Upvote(ctx, "uidB", "L1")
	assert.NoError(t, err)
	assert.Equal(t, 1, listing.Upvotes)

	_, err = uc.Upvote(ctx, "uidB", "L1")
	assert.True(t, errors.Is(err, "CONFLICT"))
	assert.Equal(t, 1, listingRepo.listings["L1"].Upvotes)

	listing, err = uc.Upvote(ctx, "uidC", "L1")
	assert.NoError(t, err)
	assert.Equal(t, 2, listing.Upvotes)
}

func TestDeleteListingOwnership(t *testing.T) {
	uc, listingRepo, _ := newListingUseCaseForTest()
	ctx := context.Background()

	listingRepo.listings["L1"] = &entity.Listing{ID: "L1", OwnerID: "uidA"}

	err := uc.Delete(ctx, "uidX", "x@student.edu", "L1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	assert.NoError(t, uc.Delete(ctx, "uidA", "", "L1"))
	_, ok := listingRepo.listings["L1"]
	assert.False(t, ok)
}

func TestListExcludesSoldByDefault(t *testing.T) {
	uc, listingRepo, _ := newListingUseCaseForTest()
	ctx := context.Background()

	listingRepo.listings["L1"] = &entity.Listing{ID: "L1", Title: "Desk"}
	listingRepo.listings["L2"] = &entity.Listing{ID: "L2", Title: "Chair", Sold: true}

	listings, total, err := uc.List(ctx, ListListingsFilter{}, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "L1", listings[0].ID)

	_, total, err = uc.List(ctx, ListListingsFilter{IncludeSold: true}, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
