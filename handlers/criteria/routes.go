package criteria

import (
	"judgeapi/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to scoring criteria
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/groups/:group_id/criteria", middleware.OptionalAuthMiddleware(), GetGroupCriteria)

	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.PUT("/groups/:group_id/criteria", SaveGroupCriteria)
		admin.PUT("/groups/:group_id/criteria/reorder", ReorderGroupCriteria)
		admin.DELETE("/criteria/:criteria_id", DeleteCriterion)
	}
}
