package router

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/handler"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {

	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.RequireAdmin)
	admin.GET("/listings", adminHandler.ListAllListings)
	admin.DELETE("/listings/:id", adminHandler.RemoveListing)
	admin.GET("/policy", adminHandler.GetPolicy)
	admin.POST("/policy/reload", adminHandler.ReloadPolicy)
}
