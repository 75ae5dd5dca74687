package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
)

func TestNormalizeUnread(t *testing.T) {
	participants := []string{"uidA", "uidB"}

	out := normalizeUnread(nil, participants)
	assert.Equal(t, map[string]int{"uidA": 0, "uidB": 0}, out)

	out = normalizeUnread(map[string]int{"uidA": 3, "uidB": -2, "stranger": 7}, participants)
	assert.Equal(t, 3, out["uidA"])
	assert.Equal(t, 0, out["uidB"], "negative counts clamp to zero")
	_, ok := out["stranger"]
	assert.False(t, ok, "keys outside the participant pair are dropped")
}

func TestLastActivityFallsBackToCreation(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	messaged := created.Add(time.Hour)

	quiet := &entity.Thread{CreatedAt: created}
	assert.Equal(t, created, lastActivity(quiet))

	active := &entity.Thread{CreatedAt: created, LastMessageAt: messaged}
	assert.Equal(t, messaged, lastActivity(active))
}

func TestPaginateListings(t *testing.T) {
	listings := []*entity.Listing{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	page := paginateListings(listings, 2, 1)
	assert.Len(t, page, 2)
	assert.Equal(t, "b", page[0].ID)

	assert.Empty(t, paginateListings(listings, 2, 5))
	assert.Len(t, paginateListings(listings, 10, 0), 3)
}
