package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/repository"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/logger"
)

type firestoreThreadRepository struct {
	client *firestore.Client
}

func NewFirestoreThreadRepository(client *firestore.Client) repository.ThreadRepository {
	return &firestoreThreadRepository{
		client: client,
	}
}

func (r *firestoreThreadRepository) CreateIfAbsent(ctx context.Context, thread *entity.Thread) (*entity.Thread, bool, error) {
	// The conversation key is the document ID. Create fails atomically on
	// an existing document, which is what makes concurrent starts for the
	// same (listing, pair) converge on one thread.
	key := entity.ConversationKey(thread.ListingID, thread.Participants[0], thread.Participants[len(thread.Participants)-1])
	thread.ID = key
	thread.Participants = entity.SortedPair(thread.Participants[0], thread.Participants[len(thread.Participants)-1])
	if thread.CreatedAt.IsZero() {
		thread.CreatedAt = time.Now()
	}
	thread.UnreadCount = normalizeUnread(thread.UnreadCount, thread.Participants)

	_, err := r.client.Collection("threads").Doc(key).Create(ctx, thread)
	if err == nil {
		return thread, true, nil
	}
	if status.Code(err) != codes.AlreadyExists {
		return nil, false, errors.Internal("Failed to create thread", err)
	}

	existing, err := r.GetByID(ctx, key)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *firestoreThreadRepository) GetByID(ctx context.Context, id string) (*entity.Thread, error) {
	doc, err := r.client.Collection("threads").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Thread", err)
		}
		return nil, errors.Internal("Failed to get thread", err)
	}

	return threadFromDoc(doc)
}

func (r *firestoreThreadRepository) GetByKey(ctx context.Context, listingID, userA, userB string) (*entity.Thread, error) {
	return r.GetByID(ctx, entity.ConversationKey(listingID, userA, userB))
}

func (r *firestoreThreadRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Thread, error) {
	query := r.client.Collection("threads").Where("participants", "array-contains", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching threads for user %s: %v", userID, err)
		return nil, errors.Internal("Failed to fetch threads", err)
	}

	var threads []*entity.Thread
	for _, doc := range docs {
		thread, err := threadFromDoc(doc)
		if err != nil {
			logger.Warn("Skipping unreadable thread %s: %v", doc.Ref.ID, err)
			continue
		}
		threads = append(threads, thread)
	}

	// Most recent activity first; creation time stands in for threads that
	// have no messages yet.
	sort.Slice(threads, func(i, j int) bool {
		return lastActivity(threads[i]).After(lastActivity(threads[j]))
	})

	return threads, nil
}

func lastActivity(t *entity.Thread) time.Time {
	if !t.LastMessageAt.IsZero() {
		return t.LastMessageAt
	}
	return t.CreatedAt
}

func (r *firestoreThreadRepository) AppendMessage(ctx context.Context, threadID string, msg entity.Message, recipientID string) error {
	// A single document update keeps append, last-message cache and unread
	// bump atomic. Writing through the field path also rebuilds the unread
	// map when the stored shape is not a map.
	_, err := r.client.Collection("threads").Doc(threadID).Update(ctx, []firestore.Update{
		{Path: "messages", Value: firestore.ArrayUnion(msg)},
		{Path: "lastMessage", Value: msg.Body},
		{Path: "lastMessageAt", Value: msg.At},
		{FieldPath: firestore.FieldPath{"unreadCount", recipientID}, Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Thread", err)
		}
		return errors.Internal("Failed to append message", err)
	}

	return nil
}

func (r *firestoreThreadRepository) ResetUnread(ctx context.Context, threadID, userID string) error {
	_, err := r.client.Collection("threads").Doc(threadID).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"unreadCount", userID}, Value: 0},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Thread", err)
		}
		return errors.Internal("Failed to reset unread counter", err)
	}

	return nil
}

func (r *firestoreThreadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("threads").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete thread", err)
	}

	return nil
}

// threadFromDoc decodes a thread document. Documents whose unreadCount got
// persisted in a non-map shape (legacy writers) fail the typed decode; those
// are rebuilt field by field with a fresh counter map rather than rejected.
func threadFromDoc(doc *firestore.DocumentSnapshot) (*entity.Thread, error) {
	var thread entity.Thread
	if err := doc.DataTo(&thread); err != nil {
		healed, healErr := healThread(doc)
		if healErr != nil {
			return nil, errors.Internal("Failed to parse thread data", err)
		}
		thread = *healed
	}

	thread.ID = doc.Ref.ID
	thread.UnreadCount = normalizeUnread(thread.UnreadCount, thread.Participants)
	return &thread, nil
}

func healThread(doc *firestore.DocumentSnapshot) (*entity.Thread, error) {
	raw := doc.Data()
	thread := &entity.Thread{
		ID:          doc.Ref.ID,
		UnreadCount: map[string]int{},
	}

	if v, ok := raw["listingId"].(string); ok {
		thread.ListingID = v
	}
	if v, ok := raw["listingTitle"].(string); ok {
		thread.ListingTitle = v
	}
	if v, ok := raw["participants"].([]interface{}); ok {
		for _, p := range v {
			if s, ok := p.(string); ok {
				thread.Participants = append(thread.Participants, s)
			}
		}
	}
	if v, ok := raw["lastMessage"].(string); ok {
		thread.LastMessage = v
	}
	if v, ok := raw["lastMessageAt"].(time.Time); ok {
		thread.LastMessageAt = v
	}
	if v, ok := raw["createdAt"].(time.Time); ok {
		thread.CreatedAt = v
	}
	if v, ok := raw["unreadCount"].(map[string]interface{}); ok {
		for uid, n := range v {
			if count, ok := n.(int64); ok {
				thread.UnreadCount[uid] = int(count)
			}
		}
	}
	if v, ok := raw["messages"].([]interface{}); ok {
		for _, m := range v {
			entry, ok := m.(map[string]interface{})
			if !ok {
				continue
			}
			var msg entity.Message
			if s, ok := entry["from"].(string); ok {
				msg.From = s
			}
			if s, ok := entry["body"].(string); ok {
				msg.Body = s
			}
			if at, ok := entry["at"].(time.Time); ok {
				msg.At = at
			}
			thread.Messages = append(thread.Messages, msg)
		}
	}

	if len(thread.Participants) == 0 {
		return nil, errors.Internal("Thread document has no participants", nil)
	}
	return thread, nil
}

// normalizeUnread keeps the counter map typed and sane: never nil, keys
// limited to participants, counts never negative. Malformed shapes therefore
// cannot survive a round trip through this repository.
func normalizeUnread(counts map[string]int, participants []string) map[string]int {
	out := make(map[string]int, len(participants))
	for _, p := range participants {
		if n, ok := counts[p]; ok && n > 0 {
			out[p] = n
		} else {
			out[p] = 0
		}
	}
	return out
}
