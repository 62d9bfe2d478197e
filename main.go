package main

import (
	"log"

	"judgeapi/config"
	"judgeapi/database"
	"judgeapi/middleware"
	v1 "judgeapi/routes/v1"
	"judgeapi/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Judging API
// @version 1.0
// @description API for judging groups, judge sessions, scores and rankings
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	config.LoadConfig()
	database.InitDB()

	services.InitContent()
	services.InitNotes()
	services.InitNotifier()
	services.InitCache()

	// Periodic runtime gauges for Prometheus
	go middleware.UpdateSystemMetrics()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.ClientUrl}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	v1.Register(r)

	if err := r.Run(":" + config.ApiPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
