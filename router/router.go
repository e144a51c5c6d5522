package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	planCtrl interface {
		Get(echo.Context) error
		Save(echo.Context) error
		Backup(echo.Context) error
		Restore(echo.Context) error
		ClearData(echo.Context) error
	},
	healthCtrl interface{ Status(echo.Context) error },
) *echo.Echo {
	api := e.Group("/api")

	api.GET("/status", healthCtrl.Status)

	api.GET("/plan/:year", planCtrl.Get)
	api.POST("/plan/:year", planCtrl.Save)

	api.GET("/db/backup", planCtrl.Backup)
	api.POST("/db/restore", planCtrl.Restore)
	api.DELETE("/test/clear-data", planCtrl.ClearData)

	return e
}
