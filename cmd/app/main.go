package main

import (
	"zifaf/config"
	"zifaf/di"
	"zifaf/shared/logger"
)

// @title Zifaf API
// @version 1.0
// @description Wedding vendor marketplace backend.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
