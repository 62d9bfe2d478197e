package groups

import (
	"time"

	"judgeapi/models"
	"judgeapi/services"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrGroupNotFound          = "Judging group not found"
	ErrNoPermissionView       = "User does not have permission to view judging groups"
	ErrNoPermissionCreate     = "User does not have permission to create judging groups"
	ErrNoPermissionUpdate     = "User does not have permission to update judging groups"
	ErrNoPermissionDelete     = "User does not have permission to delete judging groups"
	ErrFailedFetchGroups      = "Failed to fetch judging groups"
	ErrFailedCreateGroup      = "Failed to create judging group"
	ErrFailedUpdateGroup      = "Failed to update judging group"
	ErrFailedDeleteGroup      = "Failed to delete judging group"
	ErrInvalidRequest         = "Invalid request data"
	ErrSubmissionIntakeClosed = "Submission intake is closed for this group"
)

// CreateGroupRequest model for creating a judging group
type CreateGroupRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Active      bool                   `json:"active"`
	StartDate   *time.Time             `json:"start_date"`
	EndDate     *time.Time             `json:"end_date"`
	Scoring     *services.SurfaceInput `json:"scoring"`
	Intake      *services.SurfaceInput `json:"intake"`
	Results     *services.SurfaceInput `json:"results"`
}

// UpdateGroupRequest model for partially updating a judging group
type UpdateGroupRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Active      *bool                  `json:"active"`
	StartDate   *time.Time             `json:"start_date"`
	EndDate     *time.Time             `json:"end_date"`
	ClearStart  bool                   `json:"clear_start"`
	ClearEnd    bool                   `json:"clear_end"`
	Scoring     *services.SurfaceInput `json:"scoring"`
	Intake      *services.SurfaceInput `json:"intake"`
	Results     *services.SurfaceInput `json:"results"`
}

// ValidatePasswordRequest model for surface password checks
type ValidatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// PublicSurface exposes a surface's access mode without its hash
type PublicSurface struct {
	Mode        models.AccessMode `json:"mode"`
	HasPassword bool              `json:"has_password"`
}

// PublicGroup is the non-sensitive view of a judging group
type PublicGroup struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Active      bool          `json:"active"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	Scoring     PublicSurface `json:"scoring"`
	Intake      PublicSurface `json:"intake"`
	Results     PublicSurface `json:"results"`
}

func toPublicGroup(g *models.JudgingGroup) PublicGroup {
	return PublicGroup{
		ID:          g.ID,
		Name:        g.Name,
		Slug:        g.Slug,
		Description: g.Description,
		Active:      g.Active,
		StartDate:   g.StartDate,
		EndDate:     g.EndDate,
		Scoring:     PublicSurface{Mode: g.ScoringAccess.Mode, HasPassword: g.ScoringAccess.HasPassword()},
		Intake:      PublicSurface{Mode: g.IntakeAccess.Mode, HasPassword: g.IntakeAccess.HasPassword()},
		Results:     PublicSurface{Mode: g.ResultsAccess.Mode, HasPassword: g.ResultsAccess.HasPassword()},
	}
}

// respondWithError envoie une réponse d'erreur standardisée
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
