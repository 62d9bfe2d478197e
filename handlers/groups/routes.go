package groups

import (
	"judgeapi/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to judging groups
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	groups := r.Group("/groups")
	groups.Use(middleware.OptionalAuthMiddleware())
	{
		// Public reads and password gates
		groups.GET("/", GetAllGroups)
		groups.GET("/:group_id", GetGroup)
		groups.POST("/:group_id/validate-password", ValidateScoringPassword)
		groups.POST("/:group_id/validate-intake-password", ValidateIntakePassword)
		groups.POST("/:group_id/validate-results-password", ValidateResultsPassword)

		// Submission intake
		groups.GET("/:group_id/submissions", ListGroupSubmissions)
		groups.POST("/:group_id/submissions", AddGroupSubmission)
	}

	admin := r.Group("/groups")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.POST("/", CreateGroup)
		admin.PUT("/:group_id", UpdateGroup)
		admin.DELETE("/:group_id", DeleteGroup)
		admin.DELETE("/:group_id/submissions/:story_id", RemoveGroupSubmission)
	}
}
