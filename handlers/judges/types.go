package judges

import (
	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrGroupNotFound        = "Judging group not found"
	ErrJudgeNotFound        = "Judge not found"
	ErrNoPermissionView     = "User does not have permission to view judges"
	ErrNoPermissionDelete   = "User does not have permission to delete judges"
	ErrFailedFetchJudges    = "Failed to fetch judges"
	ErrFailedRegisterJudge  = "Failed to register judge"
	ErrScoringPasswordWrong = "Scoring access denied for this group"
)

// RegisterJudgeRequest model for judge registration
type RegisterJudgeRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    *string `json:"email"`
	Password string  `json:"password"`
}

// SessionCheckResponse model for session validation endpoints
type SessionCheckResponse struct {
	Valid bool `json:"valid"`
}

// respondWithError envoie une réponse d'erreur standardisée
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
