package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/entity"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/domain/repository"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/ratelimit"
	ws "github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/websocket"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/logger"
)

type ThreadUseCase struct {
	threadRepo  repository.ThreadRepository
	userRepo    repository.UserRepository
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewThreadUseCase(
	threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository,
	wsManager *ws.Manager,
) *ThreadUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ThreadUseCase{
		threadRepo:  threadRepo,
		userRepo:    userRepo,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

type StartConversationInput struct {
	ListingID      string
	CounterpartyID string
	ListingTitle   string
}

// ParticipantDisplay is the live profile projection attached to thread
// reads. It always reflects the current profile, never the snapshot taken
// at thread creation.
type ParticipantDisplay struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type ThreadResponse struct {
	*entity.Thread
	Counterparty *ParticipantDisplay  `json:"counterparty,omitempty"`
	Members      []ParticipantDisplay `json:"members,omitempty"`
}

func (uc *ThreadUseCase) StartConversation(ctx context.Context, requesterID string, input StartConversationInput) (*ThreadResponse, error) {
	if input.ListingID == "" || input.CounterpartyID == "" {
		return nil, errors.BadRequest("listing id and counterparty id are required", nil)
	}
	if input.CounterpartyID == requesterID {
		return nil, errors.BadRequest("You cannot start a conversation with yourself", nil)
	}

	allowed, waitTime := uc.rateLimiter.Allow(requesterID, "start_conversation")
	if !allowed {
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before starting another conversation", waitTime)
	}

	// Display snapshot for the new document; lookup failure degrades to an
	// empty snapshot rather than failing the create.
	counterparty := uc.displayFor(ctx, input.CounterpartyID)

	thread := &entity.Thread{
		ListingID:    input.ListingID,
		ListingTitle: input.ListingTitle,
		Participants: entity.SortedPair(requesterID, input.CounterpartyID),
		Messages:     []entity.Message{},
		UnreadCount: map[string]int{
			requesterID:          0,
			input.CounterpartyID: 1,
		},
		CounterpartyName:  counterparty.Username,
		CounterpartyPhoto: counterparty.PhotoURL,
		CreatedAt:         time.Now(),
	}

	stored, created, err := uc.threadRepo.CreateIfAbsent(ctx, thread)
	if err != nil {
		logger.Error("StartConversation: failed to create thread for listing %s: %v", input.ListingID, err)
		return nil, err
	}
	if !created {
		logger.Debug("StartConversation: reusing thread %s", stored.ID)
	}

	return &ThreadResponse{
		Thread:       stored,
		Counterparty: counterparty,
	}, nil
}

func (uc *ThreadUseCase) ListThreadsForUser(ctx context.Context, userID string) ([]*ThreadResponse, error) {
	threads, err := uc.threadRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Live profile per counterparty, one lookup per distinct uid.
	displays := make(map[string]*ParticipantDisplay)
	responses := make([]*ThreadResponse, 0, len(threads))
	for _, thread := range threads {
		otherID := thread.Counterparty(userID)
		display, ok := displays[otherID]
		if !ok {
			display = uc.displayFor(ctx, otherID)
			displays[otherID] = display
		}

		responses = append(responses, &ThreadResponse{
			Thread:       thread,
			Counterparty: display,
		})
	}

	return responses, nil
}

func (uc *ThreadUseCase) GetThread(ctx context.Context, userID, threadID string) (*ThreadResponse, error) {
	thread, err := uc.authorizedThread(ctx, userID, threadID)
	if err != nil {
		return nil, err
	}

	members := make([]ParticipantDisplay, 0, len(thread.Participants))
	for _, p := range thread.Participants {
		members = append(members, *uc.displayFor(ctx, p))
	}

	return &ThreadResponse{
		Thread:       thread,
		Counterparty: uc.displayFor(ctx, thread.Counterparty(userID)),
		Members:      members,
	}, nil
}

func (uc *ThreadUseCase) AppendMessage(ctx context.Context, userID, threadID, body string) ([]entity.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.BadRequest("Message body must not be empty", nil)
	}

	allowed, waitTime := uc.rateLimiter.Allow(userID, "send_message")
	if !allowed {
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message", waitTime)
	}

	thread, err := uc.authorizedThread(ctx, userID, threadID)
	if err != nil {
		return nil, err
	}

	msg := entity.Message{
		From: userID,
		Body: body,
		At:   time.Now(),
	}

	recipientID := thread.Counterparty(userID)
	if err := uc.threadRepo.AppendMessage(ctx, threadID, msg, recipientID); err != nil {
		logger.Error("AppendMessage: failed for thread %s: %v", threadID, err)
		return nil, err
	}

	updated, err := uc.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	uc.notifyNewMessage(updated, msg, recipientID)

	return updated.Messages, nil
}

func (uc *ThreadUseCase) MarkRead(ctx context.Context, userID, threadID string) error {
	if _, err := uc.authorizedThread(ctx, userID, threadID); err != nil {
		return err
	}

	return uc.threadRepo.ResetUnread(ctx, threadID, userID)
}

func (uc *ThreadUseCase) DeleteThread(ctx context.Context, userID, threadID string) error {
	if _, err := uc.authorizedThread(ctx, userID, threadID); err != nil {
		return err
	}

	return uc.threadRepo.Delete(ctx, threadID)
}

func (uc *ThreadUseCase) authorizedThread(ctx context.Context, userID, threadID string) (*entity.Thread, error) {
	thread, err := uc.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	if !thread.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return thread, nil
}

// displayFor resolves a participant's live display info. Best-effort: on
// lookup failure the uid stands in for the name and the request proceeds.
func (uc *ThreadUseCase) displayFor(ctx context.Context, userID string) *ParticipantDisplay {
	display := &ParticipantDisplay{ID: userID}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Debug("displayFor: profile lookup failed for %s: %v", userID, err)
		return display
	}

	display.Username = user.Username
	display.PhotoURL = user.PhotoURL
	return display
}

func (uc *ThreadUseCase) notifyNewMessage(thread *entity.Thread, msg entity.Message, recipientID string) {
	if uc.wsManager == nil || recipientID == "" {
		return
	}

	event := map[string]interface{}{
		"type":            "new_message",
		"thread_id":       thread.ID,
		"listing_id":      thread.ListingID,
		"from":            msg.From,
		"body":            msg.Body,
		"at":              msg.At.Format(time.RFC3339),
		"last_message":    thread.LastMessage,
		"last_message_at": thread.LastMessageAt.Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	uc.wsManager.SendToUser(recipientID, payload)
}
