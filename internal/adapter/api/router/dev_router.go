package router

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/handler"
)

// SetupDevRouter mounts token minting for local testing. Only called when
// the environment is development.
func SetupDevRouter(e *echo.Echo) {

	devTokenHandler := handler.GetDevTokenHandler()

	e.GET("/dev/token", devTokenHandler.GenerateToken)
}
