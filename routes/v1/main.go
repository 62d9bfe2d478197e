package v1

import (
	"judgeapi/handlers/auth"
	"judgeapi/handlers/criteria"
	"judgeapi/handlers/groups"
	"judgeapi/handlers/judges"
	"judgeapi/handlers/results"
	"judgeapi/handlers/scores"
	"judgeapi/middleware"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(10000, 1500)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	RegisterSupportRoutes(v1)
	auth.RegisterRoutes(v1)
	groups.RegisterRoutes(v1)
	judges.RegisterRoutes(v1)
	criteria.RegisterRoutes(v1)
	scores.RegisterRoutes(v1)
	results.RegisterRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
