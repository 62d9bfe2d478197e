package results

import (
	"judgeapi/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to aggregated results
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	// Public results, gated per group by the results surface policy
	r.GET("/results/public/:slug/rankings", GetPublicRankings)
	r.GET("/results/public/:slug/summary", GetPublicSummary)

	// Admin routes
	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("/results/group/:group_id/summary", GetGroupSummary)
		admin.GET("/results/group/:group_id/rankings", GetGroupRankings)
		admin.GET("/results/group/:group_id/criteria", GetGroupCriteriaBreakdown)
		admin.GET("/results/group/:group_id/judges", GetGroupJudgeRollups)
		admin.GET("/results/group/:group_id/export/csv", ExportGroupCSV)
		admin.GET("/results/group/:group_id/export/xlsx", ExportGroupXLSX)
	}
}
