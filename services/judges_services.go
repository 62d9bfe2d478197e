package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"judgeapi/config"
	"judgeapi/database"
	"judgeapi/models"
	"judgeapi/utils"

	"gorm.io/gorm"
)

// RegisteredJudge is what RegisterJudge hands back to the client
type RegisteredJudge struct {
	JudgeID   string `json:"judge_id"`
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
}

// gateGroupForJudging checks that a group exists, is active and is inside its
// time window. Shared by registration and score submission.
func gateGroupForJudging(tx *gorm.DB, groupID string) (*models.JudgingGroup, error) {
	var group models.JudgingGroup
	if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, ErrGroupNotFound
	}
	if !group.Active {
		return nil, ErrGroupInactive
	}
	now := time.Now()
	if group.StartDate != nil && now.Before(*group.StartDate) {
		return nil, ErrGroupNotStarted
	}
	if group.EndDate != nil && now.After(*group.EndDate) {
		return nil, ErrGroupEnded
	}
	return &group, nil
}

// RegisterJudge registers a participant for a group and returns a session.
// The call is idempotent: per authenticated identity, and per trimmed name for
// anonymous judges, it always resolves to the same judge row.
func RegisterJudge(groupID, name string, email *string, userID *string) (*RegisteredJudge, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < config.DefaultJudgeSessionConfig.MinNameLength {
		return nil, ErrInvalidJudgeName
	}

	var result *RegisteredJudge
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := gateGroupForJudging(tx, groupID); err != nil {
			return err
		}

		// Branch 1: the authenticated identity already has a judge in this group
		if userID != nil {
			var linked models.Judge
			err := tx.Where("group_id = ? AND user_id = ?", groupID, *userID).First(&linked).Error
			if err == nil {
				refreshJudge(tx, &linked, trimmed, email)
				result = &RegisteredJudge{JudgeID: linked.ID, SessionID: linked.SessionID, Name: linked.Name}
				return nil
			}
			if err != gorm.ErrRecordNotFound {
				return fmt.Errorf("failed to look up linked judge: %w", err)
			}
		}

		// Branch 2: an existing judge with the same trimmed name
		var existing models.Judge
		err := tx.Where("group_id = ? AND name = ?", groupID, trimmed).First(&existing).Error
		if err == nil {
			if userID != nil && existing.UserID == nil {
				existing.UserID = userID
			}
			refreshJudge(tx, &existing, trimmed, email)
			result = &RegisteredJudge{JudgeID: existing.ID, SessionID: existing.SessionID, Name: existing.Name}
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to look up judge by name: %w", err)
		}

		// Branch 3: brand new judge with a fresh session
		session, err := utils.GenerateSessionToken()
		if err != nil {
			return fmt.Errorf("failed to generate session: %w", err)
		}
		judge := models.Judge{
			GroupID:    groupID,
			Name:       trimmed,
			Email:      email,
			SessionID:  session,
			LastActive: time.Now(),
			UserID:     userID,
		}
		if err := tx.Create(&judge).Error; err != nil {
			return fmt.Errorf("failed to create judge: %w", err)
		}
		result = &RegisteredJudge{JudgeID: judge.ID, SessionID: judge.SessionID, Name: judge.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// refreshJudge updates name/email/activity on re-registration. A name change is
// skipped if another judge in the group already holds the new name.
func refreshJudge(tx *gorm.DB, judge *models.Judge, name string, email *string) {
	if name != judge.Name {
		var count int64
		tx.Model(&models.Judge{}).
			Where("group_id = ? AND name = ? AND id <> ?", judge.GroupID, name, judge.ID).
			Count(&count)
		if count == 0 {
			judge.Name = name
		}
	}
	if email != nil {
		judge.Email = email
	}
	judge.LastActive = time.Now()
	if err := tx.Save(judge).Error; err != nil {
		log.Printf("Failed to refresh judge %s: %v", judge.ID, err)
	}
}

// ResolveSession loads the judge and group behind a session id, applying the
// same group gate as registration.
func ResolveSession(sessionID string) (*models.Judge, *models.JudgingGroup, error) {
	var judge models.Judge
	if err := database.DB.First(&judge, "session_id = ?", sessionID).Error; err != nil {
		return nil, nil, ErrSessionNotFound
	}
	group, err := gateGroupForJudging(database.DB, judge.GroupID)
	if err != nil {
		return nil, nil, err
	}
	return &judge, group, nil
}

// ValidateSession reports whether a session resolves to a judge in an active,
// in-window group. It never returns an error to the caller.
func ValidateSession(sessionID string) bool {
	_, _, err := ResolveSession(sessionID)
	return err == nil
}

// IsSessionValid is ValidateSession plus the 24-hour staleness check, evaluated
// lazily on each call rather than by a background sweep.
func IsSessionValid(sessionID string) bool {
	judge, _, err := ResolveSession(sessionID)
	if err != nil {
		return false
	}
	return time.Since(judge.LastActive) <= config.DefaultJudgeSessionConfig.SessionStaleness
}

// UpdateActivity records judge activity. Writes are throttled: the timestamp is
// only persisted when at least 30 seconds have passed since the recorded value,
// to bound write volume under frequent client polling.
func UpdateActivity(sessionID string) error {
	judge, _, err := ResolveSession(sessionID)
	if err != nil {
		return err
	}
	if time.Since(judge.LastActive) < config.DefaultJudgeSessionConfig.ActivityThrottle {
		return nil
	}
	return database.DB.Model(judge).Update("last_active", time.Now()).Error
}

// DeleteJudge removes a judge, their scores, and resets every submission status
// that had been completed under their assignment. The judge no longer exists,
// so the assignment cannot remain valid regardless of score counts.
func DeleteJudge(judgeID string) error {
	var judge models.Judge
	if err := database.DB.First(&judge, "id = ?", judgeID).Error; err != nil {
		return ErrJudgeNotFound
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("judge_id = ?", judgeID).Delete(&models.Score{}).Error; err != nil {
			return fmt.Errorf("failed to delete judge scores: %w", err)
		}
		err := tx.Model(&models.SubmissionStatus{}).
			Where("assigned_judge_id = ? AND status = ?", judgeID, models.StatusCompleted).
			Updates(map[string]interface{}{
				"status":            models.StatusPending,
				"assigned_judge_id": nil,
				"updated_at":        time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to reset submission statuses: %w", err)
		}
		if err := tx.Delete(&judge).Error; err != nil {
			return fmt.Errorf("failed to delete judge: %w", err)
		}
		log.Printf("Deleted judge %s (%s) from group %s", judge.Name, judgeID, judge.GroupID)
		return nil
	})
}

// JudgeOverview is the admin view of one judge
type JudgeOverview struct {
	models.Judge
	ScoreCount int64 `json:"score_count"`
}

// ListJudges returns all judges of a group with their score counts
func ListJudges(groupID string) ([]JudgeOverview, error) {
	var judges []models.Judge
	if err := database.DB.Where("group_id = ?", groupID).Order("created_at").Find(&judges).Error; err != nil {
		return nil, fmt.Errorf("failed to list judges: %w", err)
	}

	overviews := make([]JudgeOverview, 0, len(judges))
	for _, j := range judges {
		var count int64
		database.DB.Model(&models.Score{}).Where("judge_id = ?", j.ID).Count(&count)
		overviews = append(overviews, JudgeOverview{Judge: j, ScoreCount: count})
	}
	return overviews, nil
}
