package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/repository"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

// Upsert merges the non-empty fields into the user document, creating it on
// first touch. Existing profile fields are not clobbered by empty input.
func (r *firestoreUserRepository) Upsert(ctx context.Context, user *entity.User) error {
	data := map[string]interface{}{
		"id":        user.ID,
		"updatedAt": time.Now(),
	}
	if user.Email != "" {
		data["email"] = user.Email
	}
	if user.Username != "" {
		data["username"] = user.Username
	}
	if user.PhotoURL != "" {
		data["photoURL"] = user.PhotoURL
	}

	doc, err := r.client.Collection("users").Doc(user.ID).Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return errors.Internal("Failed to get user", err)
	}
	if err != nil || !doc.Exists() {
		data["createdAt"] = time.Now()
	}

	_, err = r.client.Collection("users").Doc(user.ID).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to upsert user", err)
	}

	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := r.client.Collection("users").Where("username", "==", username).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("User", nil)
		}
		return nil, errors.Internal("Failed to query user by username", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	data := map[string]interface{}{
		"updatedAt": time.Now(),
	}
	if user.Username != "" {
		data["username"] = user.Username
	}
	if user.PhotoURL != "" {
		data["photoURL"] = user.PhotoURL
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}

	return nil
}
