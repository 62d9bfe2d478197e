package scores

import (
	"net/http"

	"judgeapi/middleware"
	"judgeapi/realtime"
	"judgeapi/services"
	"judgeapi/utils/permissions"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

// GetGroupScores lists every score in a judging group
// @Summary Get all scores of a group
// @Description All scores with judge and criterion preloaded, admin only
// @Tags Scores
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} models.Score
// @Failure 401,404 {object} response.ErrorResponse
// @Router /scores/group/{group_id} [get]
// @Security Bearer
func GetGroupScores(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionView)
		return
	}

	rows, err := services.GetGroupScores(c.Param("group_id"))
	if err != nil {
		respondWithError(c, services.StatusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}

// UpdateScore edits or hides a score
// @Summary Update a score
// @Description Change value, comments or hidden flag; hiding re-checks submission statuses
// @Tags Scores
// @Accept json
// @Produce json
// @Param score_id path string true "Score ID"
// @Param request body ScoreUpdateRequest true "Fields to change"
// @Success 200 {object} models.Score
// @Failure 400,401,404 {object} response.ErrorResponse
// @Router /scores/{score_id} [put]
// @Security Bearer
func UpdateScore(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionManage)
		return
	}

	var req ScoreUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	score, err := services.AdminUpdateScore(c.Param("score_id"), services.ScoreUpdateInput{
		Value:   req.Value,
		Comment: req.Comment,
		Hidden:  req.Hidden,
	})
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	realtime.BroadcastScoreUpdate(realtime.ScoreUpdate{
		GroupID:    score.GroupID,
		StoryID:    score.StoryID,
		UpdateType: "moderated",
	})
	c.JSON(http.StatusOK, score)
}

// DeleteScore removes a score permanently
// @Summary Delete a score
// @Description Remove the score and re-check the submission status
// @Tags Scores
// @Produce json
// @Param score_id path string true "Score ID"
// @Success 204 "No Content"
// @Failure 401,404 {object} response.ErrorResponse
// @Router /scores/{score_id} [delete]
// @Security Bearer
func DeleteScore(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionManage)
		return
	}

	if err := services.AdminDeleteScore(c.Param("score_id")); err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// GetGroupStatuses lists per-judge submission statuses of a group
// @Summary Get submission statuses of a group
// @Description Every stored status row of the group, admin only
// @Tags Scores
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} models.SubmissionStatus
// @Failure 401,404 {object} response.ErrorResponse
// @Router /scores/group/{group_id}/statuses [get]
// @Security Bearer
func GetGroupStatuses(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionView)
		return
	}

	statuses, err := services.ListStatuses(c.Param("group_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchStatuses)
		return
	}
	c.JSON(http.StatusOK, statuses)
}
