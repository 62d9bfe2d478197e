package results

import (
	"errors"
	"net/http"

	"judgeapi/middleware"
	"judgeapi/services"
	"judgeapi/utils/permissions"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

// GetGroupSummary returns the per-group score rollup
// @Summary Get a group summary
// @Description Score counts, overall average and completion percentage, admin only
// @Tags Results
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} services.GroupSummary
// @Failure 401,404 {object} response.ErrorResponse
// @Router /results/group/{group_id}/summary [get]
// @Security Bearer
func GetGroupSummary(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionView)
		return
	}

	summary, err := services.GetGroupSummary(c.Param("group_id"))
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			respondWithError(c, http.StatusNotFound, ErrGroupNotFound)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrFailedComputeResults)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetGroupRankings returns submissions ordered by total score
// @Summary Get group rankings
// @Description Submissions ranked by raw score total, ties broken by intake time
// @Tags Results
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} services.RankingEntry
// @Failure 401,404 {object} response.ErrorResponse
// @Router /results/group/{group_id}/rankings [get]
// @Security Bearer
func GetGroupRankings(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionView)
		return
	}

	rankings, err := services.GetRankings(c.Param("group_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedComputeResults)
		return
	}
	c.JSON(http.StatusOK, rankings)
}

// GetGroupCriteriaBreakdown returns per-criterion averages per submission
// @Summary Get the per-criterion breakdown
// @Description Average and count per (submission, criterion) cell, admin only
// @Tags Results
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} services.CriterionBreakdown
// @Failure 401,404 {object} response.ErrorResponse
// @Router /results/group/{group_id}/criteria [get]
// @Security Bearer
func GetGroupCriteriaBreakdown(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionView)
		return
	}

	breakdown, err := services.GetCriteriaBreakdown(c.Param("group_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedComputeResults)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// GetGroupJudgeRollups returns per-judge progress counters
// @Summary Get per-judge progress
// @Description Scores given, submissions covered and note counts per judge
// @Tags Results
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} services.JudgeRollup
// @Failure 401,404 {object} response.ErrorResponse
// @Router /results/group/{group_id}/judges [get]
// @Security Bearer
func GetGroupJudgeRollups(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionView)
		return
	}

	rollups, err := services.GetJudgeRollups(c.Param("group_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedComputeResults)
		return
	}
	c.JSON(http.StatusOK, rollups)
}
