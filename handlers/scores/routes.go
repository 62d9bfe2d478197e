package scores

import (
	"judgeapi/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to scores and submission statuses
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	// Judge-facing routes, authenticated by session id in the payload
	r.POST("/scores", SubmitScore)
	r.GET("/scores/own/:story_id", GetOwnScores)
	r.POST("/scores/status/complete", MarkSubmissionCompleted)
	r.POST("/scores/status/skip", MarkSubmissionSkipped)
	r.POST("/scores/status/pending", MarkSubmissionPending)

	// Admin routes
	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("/scores/group/:group_id", GetGroupScores)
		admin.GET("/scores/group/:group_id/statuses", GetGroupStatuses)
		admin.GET("/scores/group/:group_id/ws", GroupScoreWebSocket)
		admin.PUT("/scores/:score_id", UpdateScore)
		admin.DELETE("/scores/:score_id", DeleteScore)
	}
}
