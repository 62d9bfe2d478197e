package groups

import (
	"net/http"

	"judgeapi/services"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

// validateSurface is shared by the three password-check endpoints. A wrong
// password is a valid=false answer, not an error.
func validateSurface(c *gin.Context, surface string) {
	var req ValidatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	valid, err := services.ValidateSurfacePassword(c.Param("group_id"), surface, req.Password)
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrGroupNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// ValidateScoringPassword checks the judge-interface password of a group
// @Summary Validate scoring password
// @Description Check a password against the group's judge scoring surface
// @Tags Groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param request body ValidatePasswordRequest true "Password"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.ErrorResponse
// @Router /groups/{group_id}/validate-password [post]
func ValidateScoringPassword(c *gin.Context) {
	validateSurface(c, services.SurfaceScoring)
}

// ValidateIntakePassword checks the submission-intake password of a group
// @Summary Validate submission page password
// @Description Check a password against the group's public intake surface
// @Tags Groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param request body ValidatePasswordRequest true "Password"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.ErrorResponse
// @Router /groups/{group_id}/validate-intake-password [post]
func ValidateIntakePassword(c *gin.Context) {
	validateSurface(c, services.SurfaceIntake)
}

// ValidateResultsPassword checks the public results password of a group
// @Summary Validate results password
// @Description Check a password against the group's public results surface
// @Tags Groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param request body ValidatePasswordRequest true "Password"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.ErrorResponse
// @Router /groups/{group_id}/validate-results-password [post]
func ValidateResultsPassword(c *gin.Context) {
	validateSurface(c, services.SurfaceResults)
}
