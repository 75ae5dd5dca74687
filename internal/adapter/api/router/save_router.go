package router

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/handler"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/middleware"
)

func SetupSaveRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {

	saveHandler := handler.GetSaveHandler()

	saved := e.Group("/v1/saved")
	saved.Use(authMiddleware.Authenticate)
	saved.GET("", saveHandler.ListSaved)

	listings := e.Group("/v1/listings")
	listings.Use(authMiddleware.Authenticate)
	listings.POST("/:id/save", saveHandler.SaveListing)
	listings.DELETE("/:id/save", saveHandler.UnsaveListing)
	listings.GET("/:id/saved", saveHandler.CheckSaved)
}
