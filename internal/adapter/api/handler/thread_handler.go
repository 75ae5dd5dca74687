package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/usecase"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/response"
)

type ThreadHandler struct {
	threadUseCase *usecase.ThreadUseCase
}

func NewThreadHandler(threadUseCase *usecase.ThreadUseCase) *ThreadHandler {
	return &ThreadHandler{
		threadUseCase: threadUseCase,
	}
}

type startConversationRequest struct {
	ListingID      string `json:"listing_id" validate:"required"`
	CounterpartyID string `json:"counterparty_id" validate:"required"`
	ListingTitle   string `json:"listing_title"`
}

type sendMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

func (h *ThreadHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	thread, err := h.threadUseCase.StartConversation(c.Request().Context(), uid, usecase.StartConversationInput{
		ListingID:      req.ListingID,
		CounterpartyID: req.CounterpartyID,
		ListingTitle:   req.ListingTitle,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, thread)
}

func (h *ThreadHandler) ListThreads(c echo.Context) error {
	uid := c.Get("uid").(string)

	threads, err := h.threadUseCase.ListThreadsForUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, threads)
}

func (h *ThreadHandler) GetThread(c echo.Context) error {
	uid := c.Get("uid").(string)

	thread, err := h.threadUseCase.GetThread(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, thread)
}

func (h *ThreadHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	messages, err := h.threadUseCase.AppendMessage(c.Request().Context(), uid, c.Param("id"), req.Body)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"messages": messages,
	})
}

func (h *ThreadHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.threadUseCase.MarkRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"read": true,
	})
}

func (h *ThreadHandler) DeleteThread(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.threadUseCase.DeleteThread(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"deleted": true,
	})
}
