package criteria

import (
	"judgeapi/services"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrGroupNotFound        = "Judging group not found"
	ErrCriterionNotFound    = "Criterion not found"
	ErrNoPermissionManage   = "User does not have permission to manage criteria"
	ErrFailedFetchCriteria  = "Failed to fetch criteria"
	ErrFailedSaveCriteria   = "Failed to save criteria"
	ErrFailedDeleteCriteria = "Failed to delete criterion"
)

// SaveCriteriaRequest model for the transactional full replace
type SaveCriteriaRequest struct {
	Criteria []services.CriterionInput `json:"criteria" binding:"required"`
}

// ReorderRequest model for reordering criteria
type ReorderRequest struct {
	Orders []services.CriterionOrder `json:"orders" binding:"required"`
}

// respondWithError envoie une réponse d'erreur standardisée
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
