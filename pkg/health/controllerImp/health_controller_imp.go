package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"yearplan/database"
)

var appStart = time.Now()

type HealthCtrl struct {
	store *database.Store
}

func NewHealthCtrl(store *database.Store) *HealthCtrl { return &HealthCtrl{store: store} }

// Status reports liveness plus current store connectivity. dbConnected
// requires both an online store handle and a successful live ping.
func (h *HealthCtrl) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	connected := false
	if db, err := h.store.DB(); err == nil {
		if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			connected = true
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":      "ok",
		"dbConnected": connected,
		"uptime_sec":  int(time.Since(appStart).Seconds()),
	})
}
