package router

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/handler"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {

	listingHandler := handler.GetListingHandler()

	// Browsing is public; anything that writes requires a verified identity.
	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.ListListings)
	listings.GET("/search", listingHandler.SearchListings)
	listings.GET("/:id", listingHandler.GetListing)

	authed := e.Group("/v1/listings")
	authed.Use(authMiddleware.Authenticate)
	authed.POST("", listingHandler.CreateListing)
	authed.PATCH("/:id", listingHandler.UpdateListing)
	authed.DELETE("/:id", listingHandler.DeleteListing)
	authed.POST("/:id/sell", listingHandler.SellListing)
	authed.POST("/:id/upvote", listingHandler.UpvoteListing)

	myListings := e.Group("/v1/my-listings")
	myListings.Use(authMiddleware.Authenticate)
	myListings.GET("", listingHandler.ListMyListings)
}
