package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/usecase"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/response"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type createListingRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price" validate:"gte=0"`
	Images      []string `json:"images" validate:"omitempty,max=10,dive,url"`
}

type updateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Images      []string `json:"images"`
}

type sellListingRequest struct {
	BuyerID string    `json:"buyer_id"`
	SoldAt  time.Time `json:"sold_at"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	email, _ := c.Get("email").(string)

	listing, err := h.listingUseCase.Create(c.Request().Context(), uid, email, usecase.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Images:      req.Images,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	minPrice, _ := strconv.ParseFloat(c.QueryParam("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("max_price"), 64)
	includeSold, _ := strconv.ParseBool(c.QueryParam("include_sold"))

	listings, total, err := h.listingUseCase.List(c.Request().Context(), usecase.ListListingsFilter{
		Category:    c.QueryParam("category"),
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		IncludeSold: includeSold,
		Sort:        c.QueryParam("sort"),
	}, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) SearchListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.Search(c.Request().Context(), c.QueryParam("q"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	uid := c.Get("uid").(string)

	listings, total, err := h.listingUseCase.ListByOwner(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	email, _ := c.Get("email").(string)

	listing, err := h.listingUseCase.Edit(c.Request().Context(), uid, email, c.Param("id"), usecase.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Images:      req.Images,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) SellListing(c echo.Context) error {
	var req sellListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	// A zero sold_at falls back to the server clock downstream.
	result, err := h.listingUseCase.MarkSold(c.Request().Context(), uid, c.Param("id"), req.BuyerID, req.SoldAt)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *ListingHandler) UpvoteListing(c echo.Context) error {
	uid := c.Get("uid").(string)

	listing, err := h.listingUseCase.Upvote(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	uid := c.Get("uid").(string)
	email, _ := c.Get("email").(string)

	if err := h.listingUseCase.Delete(c.Request().Context(), uid, email, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"deleted": true,
	})
}
