package judges

import (
	"judgeapi/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to judges and their sessions
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	// Judge-facing routes, gated by session or surface password
	r.POST("/groups/:group_id/judges/register", middleware.OptionalAuthMiddleware(), RegisterJudge)
	r.GET("/judges/session/validate", ValidateSession)
	r.GET("/judges/session/fresh", CheckSessionFreshness)
	r.POST("/judges/session/ping", PingActivity)

	// Admin routes
	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("/groups/:group_id/judges", GetGroupJudges)
		admin.DELETE("/judges/:judge_id", DeleteJudge)
	}
}
