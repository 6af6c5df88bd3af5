package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/TheVinit/GFM-record-management-app-sub000/config"
	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/routes"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	e.Logger.Fatal(e.Start(":" + cfg.AppPort))
}
