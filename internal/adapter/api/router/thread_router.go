package router

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/handler"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/middleware"
)

func SetupThreadRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {

	threadHandler := handler.GetThreadHandler()

	messages := e.Group("/v1/messages")
	messages.Use(authMiddleware.Authenticate)
	messages.POST("/start", threadHandler.StartConversation)
	messages.GET("", threadHandler.ListThreads)
	messages.GET("/:id", threadHandler.GetThread)
	messages.POST("/:id/messages", threadHandler.SendMessage)
	messages.POST("/:id/read", threadHandler.MarkRead)
	messages.DELETE("/:id", threadHandler.DeleteThread)
}
