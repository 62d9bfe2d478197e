package groups

import (
	"net/http"

	"judgeapi/middleware"
	"judgeapi/models"
	"judgeapi/services"
	"judgeapi/utils/permissions"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

// AddSubmissionRequest model for linking a story into a group
type AddSubmissionRequest struct {
	StoryID  string `json:"story_id" binding:"required"`
	Password string `json:"password"`
}

// ListGroupSubmissions lists the story links of a group
// @Summary List group submissions
// @Description List stories linked into a judging group
// @Tags Groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} models.GroupSubmission
// @Failure 404 {object} response.ErrorResponse
// @Router /groups/{group_id}/submissions [get]
func ListGroupSubmissions(c *gin.Context) {
	user := middleware.GetOptionalUser(c)
	groupID := c.Param("group_id")

	if _, err := services.GetGroup(groupID, permissions.IsAdmin(user)); err != nil {
		respondWithError(c, http.StatusNotFound, ErrGroupNotFound)
		return
	}

	links, err := services.ListSubmissions(groupID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, links)
}

// AddGroupSubmission links a story into a group
// @Summary Add a submission to a group
// @Description Link a story into a group; public when the intake surface allows it
// @Tags Groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param request body AddSubmissionRequest true "Story to link"
// @Success 201 {object} models.GroupSubmission
// @Failure 400,401,404 {object} response.ErrorResponse
// @Router /groups/{group_id}/submissions [post]
func AddGroupSubmission(c *gin.Context) {
	user := middleware.GetOptionalUser(c)
	isAdmin := permissions.IsAdmin(user)
	groupID := c.Param("group_id")

	var req AddSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	group, err := services.GetGroup(groupID, isAdmin)
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrGroupNotFound)
		return
	}

	if !isAdmin {
		if group.IntakeAccess.Mode == models.AccessAdmin {
			response.Error(c, http.StatusUnauthorized, ErrSubmissionIntakeClosed)
			return
		}
		ok, err := services.ValidateSurfacePassword(groupID, services.SurfaceIntake, req.Password)
		if err != nil || !ok {
			response.Error(c, http.StatusUnauthorized, ErrSubmissionIntakeClosed)
			return
		}
	}

	var addedBy *string
	if user != nil {
		addedBy = &user.ID
	}
	link, err := services.AddSubmission(groupID, req.StoryID, addedBy)
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, link)
}

// RemoveGroupSubmission unlinks a story from a group
// @Summary Remove a submission from a group
// @Description Unlink a story with its scores and status, admin only
// @Tags Groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Param story_id path string true "Story ID"
// @Success 200 {object} map[string]string
// @Failure 401,404 {object} response.ErrorResponse
// @Router /groups/{group_id}/submissions/{story_id} [delete]
// @Security Bearer
func RemoveGroupSubmission(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionUpdate)
		return
	}

	if err := services.RemoveSubmission(c.Param("group_id"), c.Param("story_id")); err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Submission removed from group"})
}
