package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/policy"
)

type HealthHandler struct {
	adminPolicy *policy.AdminPolicy
}

var healthHandler *HealthHandler

func NewHealthHandler(adminPolicy *policy.AdminPolicy) *HealthHandler {
	return &HealthHandler{
		adminPolicy: adminPolicy,
	}
}

func SetupHealthHandler(adminPolicy *policy.AdminPolicy) {
	healthHandler = NewHealthHandler(adminPolicy)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckPolicyHealth(c echo.Context) error {
	if err := h.adminPolicy.Reload(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "Admin policy reload failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "Admin policy loaded",
		"admins": len(h.adminPolicy.Emails()),
	})
}
