package judges

import (
	"net/http"

	"judgeapi/middleware"
	"judgeapi/services"
	"judgeapi/utils/permissions"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

// GetGroupJudges lists the judges of a group with their score counts
// @Summary List judges of a group
// @Description Admin view of all judges with score counts
// @Tags Judges
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} services.JudgeOverview
// @Failure 401,404 {object} response.ErrorResponse
// @Router /groups/{group_id}/judges [get]
// @Security Bearer
func GetGroupJudges(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionView)
		return
	}

	groupID := c.Param("group_id")
	if _, err := services.GetGroup(groupID, true); err != nil {
		respondWithError(c, http.StatusNotFound, ErrGroupNotFound)
		return
	}

	judges, err := services.ListJudges(groupID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchJudges)
		return
	}
	c.JSON(http.StatusOK, judges)
}

// DeleteJudge removes a judge, their scores, and resets affected statuses
// @Summary Delete a judge
// @Description Delete a judge with cascade to scores and completed statuses
// @Tags Judges
// @Produce json
// @Param judge_id path string true "Judge ID"
// @Success 200 {object} map[string]string
// @Failure 401,404 {object} response.ErrorResponse
// @Router /judges/{judge_id} [delete]
// @Security Bearer
func DeleteJudge(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionDelete)
		return
	}

	judgeID := c.Param("judge_id")
	if err := services.DeleteJudge(judgeID); err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	services.Notifier.Publish("judge.deleted", map[string]interface{}{"judge_id": judgeID})
	c.JSON(http.StatusOK, gin.H{"message": "Judge deleted"})
}
