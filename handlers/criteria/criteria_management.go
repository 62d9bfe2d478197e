package criteria

import (
	"net/http"

	"judgeapi/middleware"
	"judgeapi/services"
	"judgeapi/utils/permissions"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

// GetGroupCriteria lists a group's criteria in display order
// @Summary List criteria of a group
// @Description Ordered list of the group's scoring questions
// @Tags Criteria
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} models.Criterion
// @Failure 404 {object} response.ErrorResponse
// @Router /groups/{group_id}/criteria [get]
func GetGroupCriteria(c *gin.Context) {
	user := middleware.GetOptionalUser(c)
	groupID := c.Param("group_id")

	if _, err := services.GetGroup(groupID, permissions.IsAdmin(user)); err != nil {
		respondWithError(c, http.StatusNotFound, ErrGroupNotFound)
		return
	}

	list, err := services.ListCriteria(groupID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchCriteria)
		return
	}
	c.JSON(http.StatusOK, list)
}

// SaveGroupCriteria performs the all-or-nothing criteria replace
// @Summary Save criteria of a group
// @Description Full replace: patch entries with ids, insert new ones, delete absent ones unless scores reference them
// @Tags Criteria
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param request body SaveCriteriaRequest true "Criteria list"
// @Success 200 {array} models.Criterion
// @Failure 400,401,404,409 {object} response.ErrorResponse
// @Router /groups/{group_id}/criteria [put]
// @Security Bearer
func SaveGroupCriteria(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionManage)
		return
	}

	groupID := c.Param("group_id")
	if _, err := services.GetGroup(groupID, true); err != nil {
		respondWithError(c, http.StatusNotFound, ErrGroupNotFound)
		return
	}

	var req SaveCriteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := services.SaveCriteria(groupID, req.Criteria)
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ReorderGroupCriteria updates display order only
// @Summary Reorder criteria
// @Description Update the sort order of a group's criteria
// @Tags Criteria
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param request body ReorderRequest true "New order"
// @Success 200 {object} map[string]string
// @Failure 400,401,404 {object} response.ErrorResponse
// @Router /groups/{group_id}/criteria/reorder [put]
// @Security Bearer
func ReorderGroupCriteria(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionManage)
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := services.ReorderCriteria(c.Param("group_id"), req.Orders); err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Criteria reordered"})
}

// DeleteCriterion deletes a single criterion
// @Summary Delete a criterion
// @Description Delete one criterion; refused while scores reference it
// @Tags Criteria
// @Produce json
// @Param criteria_id path string true "Criterion ID"
// @Success 200 {object} map[string]string
// @Failure 401,404,409 {object} response.ErrorResponse
// @Router /criteria/{criteria_id} [delete]
// @Security Bearer
func DeleteCriterion(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionManage)
		return
	}

	if err := services.DeleteCriterion(c.Param("criteria_id")); err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Criterion deleted"})
}
