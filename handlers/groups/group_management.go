package groups

import (
	"net/http"

	"judgeapi/middleware"
	"judgeapi/services"
	"judgeapi/utils/permissions"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

// GetAllGroups retrieves all judging groups
// @Summary Get all judging groups
// @Description Admins see every group; everyone else only active ones
// @Tags Groups
// @Accept json
// @Produce json
// @Success 200 {array} PublicGroup
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /groups [get]
func GetAllGroups(c *gin.Context) {
	user := middleware.GetOptionalUser(c)
	isAdmin := permissions.IsAdmin(user)

	groups, err := services.ListGroups(isAdmin)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchGroups)
		return
	}

	public := make([]PublicGroup, 0, len(groups))
	for i := range groups {
		public = append(public, toPublicGroup(&groups[i]))
	}
	c.JSON(http.StatusOK, public)
}

// GetGroup retrieves a judging group by id or slug
// @Summary Get a judging group
// @Description Get a judging group; inactive groups are only visible to admins
// @Tags Groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID or slug"
// @Success 200 {object} PublicGroup
// @Failure 404 {object} response.ErrorResponse "Group not found"
// @Router /groups/{group_id} [get]
func GetGroup(c *gin.Context) {
	user := middleware.GetOptionalUser(c)
	isAdmin := permissions.IsAdmin(user)

	groupID := c.Param("group_id")
	group, err := services.GetGroup(groupID, isAdmin)
	if err != nil {
		// Fall back to slug lookup for public links
		group, err = services.GetGroupBySlug(groupID, isAdmin)
	}
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrGroupNotFound)
		return
	}

	c.JSON(http.StatusOK, toPublicGroup(group))
}

// CreateGroup creates a new judging group
// @Summary Create a judging group
// @Description Create a judging group, admin only
// @Tags Groups
// @Accept json
// @Produce json
// @Param group body CreateGroupRequest true "Group to create"
// @Success 201 {object} PublicGroup
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 401 {object} response.ErrorResponse "Unauthorized access"
// @Router /groups [post]
// @Security Bearer
func CreateGroup(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionCreate)
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	group, err := services.CreateGroup(services.GroupInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Scoring:     req.Scoring,
		Intake:      req.Intake,
		Results:     req.Results,
	}, &user.ID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	services.Notifier.Publish("group.created", map[string]interface{}{
		"group_id": group.ID,
		"slug":     group.Slug,
	})
	c.JSON(http.StatusCreated, toPublicGroup(group))
}

// UpdateGroup updates a judging group
// @Summary Update a judging group
// @Description Partially update a judging group, admin only
// @Tags Groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param group body UpdateGroupRequest true "Fields to update"
// @Success 200 {object} PublicGroup
// @Failure 400,401,404 {object} response.ErrorResponse
// @Router /groups/{group_id} [put]
// @Security Bearer
func UpdateGroup(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionUpdate)
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	group, err := services.UpdateGroup(c.Param("group_id"), services.GroupUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ClearStart:  req.ClearStart,
		ClearEnd:    req.ClearEnd,
		Scoring:     req.Scoring,
		Intake:      req.Intake,
		Results:     req.Results,
	})
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, toPublicGroup(group))
}

// DeleteGroup deletes a judging group and all its dependent records
// @Summary Delete a judging group
// @Description Delete a group with its scores, judges, submissions and criteria
// @Tags Groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} map[string]string
// @Failure 401,404 {object} response.ErrorResponse
// @Router /groups/{group_id} [delete]
// @Security Bearer
func DeleteGroup(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionDelete)
		return
	}

	groupID := c.Param("group_id")
	if err := services.DeleteGroupCascade(groupID); err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	services.Notifier.Publish("group.deleted", map[string]interface{}{"group_id": groupID})
	c.JSON(http.StatusOK, gin.H{"message": "Judging group deleted"})
}
