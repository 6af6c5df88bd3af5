package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// GET /healthz
func (h *HealthHandler) Check(c echo.Context) error {
	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
}
