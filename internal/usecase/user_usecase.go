package usecase

import (
	"context"
	"time"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/repository"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

type UpdateProfileInput struct {
	Username string
	PhotoURL string
}

// EnsureUser records the authenticated identity on first touch so profile
// lookups have a document to resolve against.
func (uc *UserUseCase) EnsureUser(ctx context.Context, userID, email string) error {
	return uc.userRepo.Upsert(ctx, &entity.User{
		ID:    userID,
		Email: email,
	})
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" && input.Username != user.Username {
		// Usernames are globally unique once set.
		existing, err := uc.userRepo.GetByUsername(ctx, input.Username)
		if err != nil && !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, errors.Conflict("Username is already taken")
		}
		user.Username = input.Username
	}
	if input.PhotoURL != "" {
		user.PhotoURL = input.PhotoURL
	}

	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
