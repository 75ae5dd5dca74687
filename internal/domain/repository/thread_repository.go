package repository

import (
	"context"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
)

type ThreadRepository interface {
	// CreateIfAbsent inserts the thread under its conversation key. When a
	// document with the same key already exists the insert is a no-op and
	// the stored thread is returned with created=false.
	CreateIfAbsent(ctx context.Context, thread *entity.Thread) (stored *entity.Thread, created bool, err error)

	GetByID(ctx context.Context, id string) (*entity.Thread, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Thread, error)

	// GetByKey looks a thread up by (listingID, participant pair).
	GetByKey(ctx context.Context, listingID, userA, userB string) (*entity.Thread, error)

	// AppendMessage atomically appends msg, refreshes the last-message
	// cache and bumps recipientID's unread counter by one.
	AppendMessage(ctx context.Context, threadID string, msg entity.Message, recipientID string) error

	// ResetUnread zeroes userID's own unread counter.
	ResetUnread(ctx context.Context, threadID, userID string) error

	Delete(ctx context.Context, id string) error
}
