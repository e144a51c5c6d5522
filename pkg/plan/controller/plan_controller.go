package controller

import "github.com/labstack/echo/v4"

type PlanController interface {
	Get(c echo.Context) error
	Save(c echo.Context) error
	Backup(c echo.Context) error
	Restore(c echo.Context) error
	ClearData(c echo.Context) error
}
