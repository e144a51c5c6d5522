package main

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"yearplan/config"
	"yearplan/database"
	"yearplan/router"

	// Health
	healthCtrlImp "yearplan/pkg/health/controllerImp"

	// Plan
	planCtrlImp "yearplan/pkg/plan/controllerImp"
	planRepoImp "yearplan/pkg/plan/repositoryImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB — a failed connection is tolerated; data endpoints answer
	// 503 until the next restart.
	store := database.Connect(cfg.DB)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// Static frontend
	e.Static("/static", "static")
	e.File("/", "static/index.html")
	if _, err := os.Stat("static/index.html"); err != nil {
		log.Printf("WARN: static/index.html not found: %v", err)
	}

	// 4) Repos/Controllers
	pRepo := planRepoImp.New(store)
	plCtrl := planCtrlImp.New(pRepo)
	hCtrl := healthCtrlImp.NewHealthCtrl(store)

	// 5) Router
	r := router.New(e, plCtrl, hCtrl)

	// 6) Start
	log.Printf("listening on :%s (dbConnected=%v)", cfg.Port, store.Online())
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
