package judges

import (
	"net/http"

	"judgeapi/metrics"
	"judgeapi/middleware"
	"judgeapi/models"
	"judgeapi/services"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

// RegisterJudge registers a participant for a judging group
// @Summary Register as a judge
// @Description Register for a group and receive a session id; idempotent per identity and per name
// @Tags Judges
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param request body RegisterJudgeRequest true "Judge details"
// @Success 200 {object} services.RegisteredJudge
// @Failure 400,401,403,404 {object} response.ErrorResponse
// @Router /groups/{group_id}/judges/register [post]
func RegisterJudge(c *gin.Context) {
	groupID := c.Param("group_id")

	var req RegisterJudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	// Scoring surface gate: open groups need nothing, password groups the
	// scoring password, admin-only groups an admin login.
	user := middleware.GetOptionalUser(c)
	group, err := services.GetGroup(groupID, user != nil && user.IsAdmin)
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrGroupNotFound)
		return
	}
	if group.ScoringAccess.Mode != models.AccessOpen {
		if group.ScoringAccess.Mode == models.AccessAdmin {
			if user == nil || !user.IsAdmin {
				response.Error(c, http.StatusUnauthorized, ErrScoringPasswordWrong)
				return
			}
		} else {
			ok, err := services.ValidateSurfacePassword(groupID, services.SurfaceScoring, req.Password)
			if err != nil || !ok {
				response.Error(c, http.StatusUnauthorized, ErrScoringPasswordWrong)
				return
			}
		}
	}

	var userID *string
	if user != nil {
		userID = &user.ID
	}
	registered, err := services.RegisterJudge(groupID, req.Name, req.Email, userID)
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	metrics.JudgeRegistrations.Inc()
	c.JSON(http.StatusOK, registered)
}

// ValidateSession checks whether a session still resolves to an active group
// @Summary Validate a judge session
// @Description Check that the session's group exists, is active and inside its window
// @Tags Judges
// @Produce json
// @Param session query string true "Session ID"
// @Success 200 {object} SessionCheckResponse
// @Router /judges/session/validate [get]
func ValidateSession(c *gin.Context) {
	c.JSON(http.StatusOK, SessionCheckResponse{Valid: services.ValidateSession(c.Query("session"))})
}

// CheckSessionFreshness also applies the 24 hour staleness rule
// @Summary Check judge session freshness
// @Description ValidateSession plus the 24h inactivity staleness check
// @Tags Judges
// @Produce json
// @Param session query string true "Session ID"
// @Success 200 {object} SessionCheckResponse
// @Router /judges/session/fresh [get]
func CheckSessionFreshness(c *gin.Context) {
	c.JSON(http.StatusOK, SessionCheckResponse{Valid: services.IsSessionValid(c.Query("session"))})
}

// PingActivity records judge activity, throttled server-side
// @Summary Ping judge activity
// @Description Refresh the judge's last-activity timestamp; writes at most every 30s
// @Tags Judges
// @Produce json
// @Param session query string true "Session ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} response.ErrorResponse
// @Router /judges/session/ping [post]
func PingActivity(c *gin.Context) {
	if err := services.UpdateActivity(c.Query("session")); err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
