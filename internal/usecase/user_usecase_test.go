package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
)

func newUserUseCaseForTest() (*UserUseCase, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	return NewUserUseCase(userRepo), userRepo
}

func TestEnsureUserCreatesOnce(t *testing.T) {
	uc, userRepo := newUserUseCaseForTest()
	ctx := context.Background()

	assert.NoError(t, uc.EnsureUser(ctx, "uidA", "a@student.edu"))
	userRepo.users["uidA"].Username = "alex"

	// A later touch must not wipe profile fields.
	assert.NoError(t, uc.EnsureUser(ctx, "uidA", "a@student.edu"))
	assert.Equal(t, "alex", userRepo.users["uidA"].Username)
}

func TestUpdateProfileUsernameUnique(t *testing.T) {
	uc, userRepo := newUserUseCaseForTest()
	ctx := context.Background()

	userRepo.Upsert(ctx, &entity.User{ID: "uidA", Email: "a@student.edu"})
	userRepo.Upsert(ctx, &entity.User{ID: "uidB", Email: "b@student.edu", Username: "brooke"})

	_, err := uc.UpdateProfile(ctx, "uidA", UpdateProfileInput{Username: "brooke"})
	assert.True(t, errors.Is(err, "CONFLICT"))

	user, err := uc.UpdateProfile(ctx, "uidA", UpdateProfileInput{Username: "alex"})
	assert.NoError(t, err)
	assert.Equal(t, "alex", user.Username)

	// Re-asserting your own username is not a conflict.
	user, err = uc.UpdateProfile(ctx, "uidA", UpdateProfileInput{Username: "alex", PhotoURL: "https://cdn.example.edu/a.png"})
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.edu/a.png", user.PhotoURL)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	uc, _ := newUserUseCaseForTest()
	ctx := context.Background()

	_, err := uc.UpdateProfile(ctx, "ghost", UpdateProfileInput{Username: "ghost"})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
