package results

import (
	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrGroupNotFound        = "Judging group not found"
	ErrNoPermissionView     = "User does not have permission to view group results"
	ErrFailedComputeResults = "Failed to compute results"
	ErrFailedExport         = "Failed to export scores"
)

// respondWithError envoie une réponse d'erreur standardisée
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
