package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/usecase"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/response"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/utils"
)

type SaveHandler struct {
	saveUseCase *usecase.SaveUseCase
}

func NewSaveHandler(saveUseCase *usecase.SaveUseCase) *SaveHandler {
	return &SaveHandler{
		saveUseCase: saveUseCase,
	}
}

func (h *SaveHandler) SaveListing(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.saveUseCase.Save(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"saved": true,
	})
}

func (h *SaveHandler) UnsaveListing(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.saveUseCase.Unsave(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"saved": false,
	})
}

func (h *SaveHandler) CheckSaved(c echo.Context) error {
	uid := c.Get("uid").(string)

	saved, err := h.saveUseCase.IsSaved(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"saved": saved,
	})
}

func (h *SaveHandler) ListSaved(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	uid := c.Get("uid").(string)

	items, total, err := h.saveUseCase.ListSaved(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}
