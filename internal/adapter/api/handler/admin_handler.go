package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/policy"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/usecase"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/response"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/utils"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
	adminPolicy  *policy.AdminPolicy
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase, adminPolicy *policy.AdminPolicy) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		adminPolicy:  adminPolicy,
	}
}

func (h *AdminHandler) ListAllListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.adminUseCase.ListAllListings(c.Request().Context(), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) RemoveListing(c echo.Context) error {
	email, _ := c.Get("email").(string)

	if err := h.adminUseCase.RemoveListing(c.Request().Context(), email, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"removed": true,
	})
}

func (h *AdminHandler) GetPolicy(c echo.Context) error {
	return response.Success(c, map[string]interface{}{
		"admins": h.adminPolicy.Emails(),
	})
}

func (h *AdminHandler) ReloadPolicy(c echo.Context) error {
	if err := h.adminPolicy.Reload(); err != nil {
		return response.Error(c, errors.Internal("Failed to reload admin policy", err))
	}

	return response.Success(c, map[string]interface{}{
		"admins": len(h.adminPolicy.Emails()),
	})
}
