package router

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/handler"
)

func SetupHealthRouter(e *echo.Echo) {

	healthHandler := handler.GetHealthHandler()

	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/health/policy", healthHandler.CheckPolicyHealth)
}
