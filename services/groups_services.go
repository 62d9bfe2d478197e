package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"judgeapi/database"
	"judgeapi/models"
	"judgeapi/utils"

	"gorm.io/gorm"
)

// SurfaceInput describes the requested access policy for one group surface.
// Password is only consulted when Mode is "password".
type SurfaceInput struct {
	Mode     models.AccessMode `json:"mode"`
	Password *string           `json:"password"`
}

// GroupInput carries the fields an admin may set when creating a group
type GroupInput struct {
	Name        string
	Description string
	Active      bool
	StartDate   *time.Time
	EndDate     *time.Time
	Scoring     *SurfaceInput
	Intake      *SurfaceInput
	Results     *SurfaceInput
}

// GroupUpdateInput carries partial updates; nil fields are left untouched
type GroupUpdateInput struct {
	Name        *string
	Description *string
	Active      *bool
	StartDate   *time.Time
	EndDate     *time.Time
	ClearStart  bool
	ClearEnd    bool
	Scoring     *SurfaceInput
	Intake      *SurfaceInput
	Results     *SurfaceInput
}

// CreateGroup creates a judging group with a unique slug derived from its name
func CreateGroup(input GroupInput, creatorID *string) (*models.JudgingGroup, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("group name is required")
	}

	group := models.JudgingGroup{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Active:      input.Active,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedByID: creatorID,
	}

	for _, s := range []struct {
		in  *SurfaceInput
		out *models.AccessPolicy
	}{
		{input.Scoring, &group.ScoringAccess},
		{input.Intake, &group.IntakeAccess},
		{input.Results, &group.ResultsAccess},
	} {
		policy, err := buildAccessPolicy(s.in)
		if err != nil {
			return nil, err
		}
		*s.out = policy
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := generateUniqueSlug(tx, group.Name)
		if err != nil {
			return err
		}
		group.Slug = slug
		return tx.Create(&group).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

// UpdateGroup applies a partial update to a group
func UpdateGroup(groupID string, input GroupUpdateInput) (*models.JudgingGroup, error) {
	var group models.JudgingGroup
	if err := database.DB.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, ErrGroupNotFound
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		group.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		group.Description = *input.Description
	}
	if input.Active != nil {
		group.Active = *input.Active
	}
	if input.ClearStart {
		group.StartDate = nil
	} else if input.StartDate != nil {
		group.StartDate = input.StartDate
	}
	if input.ClearEnd {
		group.EndDate = nil
	} else if input.EndDate != nil {
		group.EndDate = input.EndDate
	}

	for _, s := range []struct {
		in  *SurfaceInput
		out *models.AccessPolicy
	}{
		{input.Scoring, &group.ScoringAccess},
		{input.Intake, &group.IntakeAccess},
		{input.Results, &group.ResultsAccess},
	} {
		if s.in == nil {
			continue
		}
		policy, err := buildAccessPolicy(s.in)
		if err != nil {
			return nil, err
		}
		// Keep the old hash when switching to password mode without a new one
		if policy.Mode == models.AccessPassword && policy.PasswordHash == "" {
			policy.PasswordHash = s.out.PasswordHash
		}
		*s.out = policy
	}

	if err := database.DB.Save(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return &group, nil
}

// DeleteGroupCascade removes a group and everything belonging to it.
// Order matters: scores, statuses and judges reference rows deleted later,
// and deleting the group first would orphan them with no way to find them again.
func DeleteGroupCascade(groupID string) error {
	var group models.JudgingGroup
	if err := database.DB.First(&group, "id = ?", groupID).Error; err != nil {
		return ErrGroupNotFound
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name  string
			model interface{}
		}{
			{"scores", &models.Score{}},
			{"submission statuses", &models.SubmissionStatus{}},
			{"judges", &models.Judge{}},
			{"submission links", &models.GroupSubmission{}},
			{"criteria", &models.Criterion{}},
		}
		for _, step := range steps {
			if err := tx.Where("group_id = ?", groupID).Delete(step.model).Error; err != nil {
				return fmt.Errorf("failed to delete %s: %w", step.name, err)
			}
		}
		if err := tx.Delete(&group).Error; err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		log.Printf("Deleted judging group %s (%s) and all dependent records", group.Slug, groupID)
		return nil
	})
}

// GetGroup fetches a group by id. Inactive groups are hidden from non-admins.
func GetGroup(groupID string, isAdmin bool) (*models.JudgingGroup, error) {
	var group models.JudgingGroup
	if err := database.DB.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, ErrGroupNotFound
	}
	if !group.Active && !isAdmin {
		return nil, ErrGroupNotFound
	}
	return &group, nil
}

// GetGroupBySlug fetches a group by slug with the same visibility rule as GetGroup
func GetGroupBySlug(slug string, isAdmin bool) (*models.JudgingGroup, error) {
	var group models.JudgingGroup
	if err := database.DB.First(&group, "slug = ?", slug).Error; err != nil {
		return nil, ErrGroupNotFound
	}
	if !group.Active && !isAdmin {
		return nil, ErrGroupNotFound
	}
	return &group, nil
}

// ListGroups returns all groups for admins, only active ones otherwise
func ListGroups(isAdmin bool) ([]models.JudgingGroup, error) {
	var groups []models.JudgingGroup
	q := database.DB.Order("created_at")
	if !isAdmin {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// Surface names accepted by ValidateSurfacePassword
const (
	SurfaceScoring = "scoring"
	SurfaceIntake  = "intake"
	SurfaceResults = "results"
)

// ValidateSurfacePassword checks a password against one surface of a group.
// Absence of access is expressed as false, never as an error: an open surface
// accepts anything, an admin-only surface accepts nothing.
func ValidateSurfacePassword(groupID, surface, password string) (bool, error) {
	var group models.JudgingGroup
	if err := database.DB.First(&group, "id = ?", groupID).Error; err != nil {
		return false, ErrGroupNotFound
	}

	var policy models.AccessPolicy
	switch surface {
	case SurfaceScoring:
		policy = group.ScoringAccess
	case SurfaceIntake:
		policy = group.IntakeAccess
	case SurfaceResults:
		policy = group.ResultsAccess
	default:
		return false, fmt.Errorf("unknown surface %q", surface)
	}

	switch policy.Mode {
	case models.AccessOpen:
		return true, nil
	case models.AccessPassword:
		return utils.CheckPasswordHash(password, policy.PasswordHash), nil
	default:
		return false, nil
	}
}

// AddSubmission links a story into a group for judging; adding the same story
// twice returns the existing link.
func AddSubmission(groupID, storyID string, addedBy *string) (*models.GroupSubmission, error) {
	if _, err := GetGroup(groupID, true); err != nil {
		return nil, err
	}

	var existing models.GroupSubmission
	err := database.DB.Where("group_id = ? AND story_id = ?", groupID, storyID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check submission link: %w", err)
	}

	link := models.GroupSubmission{
		GroupID:   groupID,
		StoryID:   storyID,
		AddedByID: addedBy,
		AddedAt:   time.Now(),
	}
	if err := database.DB.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to link submission: %w", err)
	}
	return &link, nil
}

// RemoveSubmission unlinks a story, its scores and its status from a group
func RemoveSubmission(groupID, storyID string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ? AND story_id = ?", groupID, storyID).Delete(&models.Score{}).Error; err != nil {
			return fmt.Errorf("failed to delete submission scores: %w", err)
		}
		if err := tx.Where("group_id = ? AND story_id = ?", groupID, storyID).Delete(&models.SubmissionStatus{}).Error; err != nil {
			return fmt.Errorf("failed to delete submission status: %w", err)
		}
		res := tx.Where("group_id = ? AND story_id = ?", groupID, storyID).Delete(&models.GroupSubmission{})
		if res.Error != nil {
			return fmt.Errorf("failed to unlink submission: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrSubmissionNotInGroup
		}
		return nil
	})
}

// ListSubmissions returns the story links of a group ordered by intake time
func ListSubmissions(groupID string) ([]models.GroupSubmission, error) {
	var links []models.GroupSubmission
	if err := database.DB.Where("group_id = ?", groupID).Order("added_at").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return links, nil
}

func buildAccessPolicy(input *SurfaceInput) (models.AccessPolicy, error) {
	if input == nil {
		return models.AccessPolicy{Mode: models.AccessOpen}, nil
	}
	switch input.Mode {
	case models.AccessOpen, models.AccessAdmin:
		return models.AccessPolicy{Mode: input.Mode}, nil
	case models.AccessPassword:
		policy := models.AccessPolicy{Mode: models.AccessPassword}
		if input.Password != nil && *input.Password != "" {
			hash, err := utils.HashPassword(*input.Password)
			if err != nil {
				return policy, fmt.Errorf("failed to hash password: %w", err)
			}
			policy.PasswordHash = hash
		}
		return policy, nil
	case "":
		return models.AccessPolicy{Mode: models.AccessOpen}, nil
	default:
		return models.AccessPolicy{}, fmt.Errorf("unknown access mode %q", input.Mode)
	}
}

// generateUniqueSlug derives a slug from the name, appending a unix timestamp
// suffix when the plain slug is already taken.
func generateUniqueSlug(tx *gorm.DB, name string) (string, error) {
	slug := utils.Slugify(name)
	if slug == "" {
		slug = "group"
	}

	var count int64
	if err := tx.Model(&models.JudgingGroup{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if count == 0 {
		return slug, nil
	}
	return fmt.Sprintf("%s-%d", slug, time.Now().Unix()), nil
}
