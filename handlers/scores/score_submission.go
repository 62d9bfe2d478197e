package scores

import (
	"net/http"

	"judgeapi/realtime"
	"judgeapi/services"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

// SubmitScore records one judge's rating for a submission criterion
// @Summary Submit a score
// @Description Upsert the judge's 1-5 rating for one (submission, criterion) pair
// @Tags Scores
// @Accept json
// @Produce json
// @Param request body SubmitScoreRequest true "Score"
// @Success 200 {object} models.Score
// @Failure 400,401,403,404 {object} response.ErrorResponse
// @Router /scores [post]
func SubmitScore(c *gin.Context) {
	var req SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	score, err := services.SubmitScore(req.SessionID, req.StoryID, req.CriterionID, req.Score, req.Comments)
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	judge, _, _ := services.ResolveSession(req.SessionID)
	if judge != nil {
		realtime.BroadcastScoreUpdate(realtime.ScoreUpdate{
			GroupID:    score.GroupID,
			StoryID:    score.StoryID,
			JudgeName:  judge.Name,
			UpdateType: "score",
		})
	}
	services.Notifier.Publish("score.submitted", map[string]interface{}{
		"group_id": score.GroupID,
		"story_id": score.StoryID,
	})

	c.JSON(http.StatusOK, score)
}

// GetOwnScores returns the calling judge's scores for one submission
// @Summary Get own scores for a submission
// @Description The judge's scores joined with criteria text, in criterion order
// @Tags Scores
// @Produce json
// @Param session query string true "Session ID"
// @Param story_id path string true "Story ID"
// @Success 200 {array} services.JudgeScoreRow
// @Failure 401 {object} response.ErrorResponse
// @Router /scores/own/{story_id} [get]
func GetOwnScores(c *gin.Context) {
	session := c.Query("session")
	if session == "" {
		response.Error(c, http.StatusUnauthorized, ErrSessionRequired)
		return
	}

	rows, err := services.GetJudgeScores(session, c.Param("story_id"))
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}

// MarkSubmissionCompleted marks a submission completed for the acting judge
// @Summary Mark a submission completed
// @Description Granted only when the judge has a non-hidden score for every criterion
// @Tags Scores
// @Accept json
// @Produce json
// @Param request body StatusChangeRequest true "Session and story"
// @Success 200 {object} models.SubmissionStatus
// @Failure 400,401,404,409 {object} response.ErrorResponse
// @Router /scores/status/complete [post]
func MarkSubmissionCompleted(c *gin.Context) {
	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	status, err := services.MarkCompleted(req.SessionID, req.StoryID)
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	judge, _, _ := services.ResolveSession(req.SessionID)
	if judge != nil {
		realtime.BroadcastScoreUpdate(realtime.ScoreUpdate{
			GroupID:    status.GroupID,
			StoryID:    status.StoryID,
			JudgeName:  judge.Name,
			UpdateType: "completed",
		})
	}
	c.JSON(http.StatusOK, status)
}

// MarkSubmissionSkipped marks a submission as explicitly deferred
// @Summary Skip a submission
// @Description Record that the judge deferred this submission; refused once completed
// @Tags Scores
// @Accept json
// @Produce json
// @Param request body StatusChangeRequest true "Session and story"
// @Success 200 {object} models.SubmissionStatus
// @Failure 400,401,404,409 {object} response.ErrorResponse
// @Router /scores/status/skip [post]
func MarkSubmissionSkipped(c *gin.Context) {
	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	status, err := services.MarkSkipped(req.SessionID, req.StoryID)
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	judge, _, _ := services.ResolveSession(req.SessionID)
	if judge != nil {
		realtime.BroadcastScoreUpdate(realtime.ScoreUpdate{
			GroupID:    status.GroupID,
			StoryID:    status.StoryID,
			JudgeName:  judge.Name,
			UpdateType: "skip",
		})
	}
	c.JSON(http.StatusOK, status)
}

// MarkSubmissionPending puts a skipped submission back into the queue
// @Summary Unskip a submission
// @Description Return a deferred submission to pending
// @Tags Scores
// @Accept json
// @Produce json
// @Param request body StatusChangeRequest true "Session and story"
// @Success 200 {object} models.SubmissionStatus
// @Failure 400,401,404,409 {object} response.ErrorResponse
// @Router /scores/status/pending [post]
func MarkSubmissionPending(c *gin.Context) {
	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	status, err := services.MarkPending(req.SessionID, req.StoryID)
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, status)
}
