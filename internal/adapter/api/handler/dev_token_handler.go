package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/firebase"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/response"
)

// DevTokenHandler mints custom tokens for local testing. Never mounted
// outside the development environment.
type DevTokenHandler struct {
	authClient *firebase.AuthClient
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(authClient *firebase.AuthClient) *DevTokenHandler {
	return &DevTokenHandler{
		authClient: authClient,
	}
}

func SetupDevTokenHandler(authClient *firebase.AuthClient) {
	devTokenHandler = NewDevTokenHandler(authClient)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		return response.Error(c, errors.BadRequest("uid query parameter is required", nil))
	}

	token, err := h.authClient.GenerateToken(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"token": token,
	})
}
