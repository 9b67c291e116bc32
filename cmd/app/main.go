package main

import (
	"huddle/config"
	"huddle/di"
	"huddle/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	app.Sweeper.Run()
	defer app.Sweeper.Stop()

	app.HTTP.Serve()
}
