package scores

import (
	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrGroupNotFound       = "Judging group not found"
	ErrScoreNotFound       = "Score not found"
	ErrNoPermissionView    = "User does not have permission to view group scores"
	ErrNoPermissionManage  = "User does not have permission to manage scores"
	ErrFailedFetchScores   = "Failed to fetch scores"
	ErrFailedSubmitScore   = "Failed to submit score"
	ErrFailedUpdateScore   = "Failed to update score"
	ErrFailedDeleteScore   = "Failed to delete score"
	ErrSessionRequired     = "A judge session is required"
	ErrFailedUpdateStatus  = "Failed to update submission status"
	ErrFailedFetchStatuses = "Failed to fetch submission statuses"
)

// SubmitScoreRequest model for a judge submitting one score
type SubmitScoreRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	StoryID     string `json:"story_id" binding:"required"`
	CriterionID string `json:"criterion_id" binding:"required"`
	Score       int    `json:"score" binding:"required"`
	Comments    string `json:"comments"`
}

// StatusChangeRequest model for judge-driven status transitions
type StatusChangeRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	StoryID   string `json:"story_id" binding:"required"`
}

// ScoreUpdateRequest model for the admin score edit, all fields optional
type ScoreUpdateRequest struct {
	Value   *int    `json:"value"`
	Comment *string `json:"comment"`
	Hidden  *bool   `json:"hidden"`
}

// respondWithError envoie une réponse d'erreur standardisée
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
