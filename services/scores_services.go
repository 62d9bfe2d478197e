package services

import (
	"fmt"
	"time"

	"judgeapi/config"
	"judgeapi/database"
	"judgeapi/metrics"
	"judgeapi/models"

	"gorm.io/gorm"
)

// SubmitScore is the only judge-facing write path into scores. It validates,
// then upserts the (judge, submission, criterion) triple: an existing row has
// its value and comment overwritten in place.
func SubmitScore(sessionID, storyID, criterionID string, value int, comment string) (*models.Score, error) {
	if value < 1 || value > 5 {
		return nil, ErrInvalidScoreRange
	}

	judge, group, err := ResolveSession(sessionID)
	if err != nil {
		return nil, err
	}

	var score *models.Score
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var criterion models.Criterion
		if err := tx.First(&criterion, "id = ?", criterionID).Error; err != nil {
			return ErrCriterionNotFound
		}
		if criterion.GroupID != group.ID {
			return ErrCriterionGroupMismatch
		}
		if err := requireSubmissionInGroup(tx, group.ID, storyID); err != nil {
			return err
		}

		var existing models.Score
		err := tx.Where("judge_id = ? AND story_id = ? AND criterion_id = ?",
			judge.ID, storyID, criterionID).First(&existing).Error
		switch err {
		case nil:
			existing.Value = value
			existing.Comment = comment
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to update score: %w", err)
			}
			score = &existing
		case gorm.ErrRecordNotFound:
			created := models.Score{
				GroupID:     group.ID,
				JudgeID:     judge.ID,
				StoryID:     storyID,
				CriterionID: criterionID,
				Value:       value,
				Comment:     comment,
			}
			if err := tx.Create(&created).Error; err != nil {
				return fmt.Errorf("failed to create score: %w", err)
			}
			score = &created
		default:
			return fmt.Errorf("failed to look up score: %w", err)
		}

		// Scoring counts as activity, throttled like the ping endpoint
		if time.Since(judge.LastActive) >= config.DefaultJudgeSessionConfig.ActivityThrottle {
			if err := tx.Model(&models.Judge{}).Where("id = ?", judge.ID).
				Update("last_active", time.Now()).Error; err != nil {
				return fmt.Errorf("failed to refresh judge activity: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ScoresSubmitted.Inc()
	return score, nil
}

// JudgeScoreRow is one of a judge's own scores joined with its criterion
type JudgeScoreRow struct {
	CriterionID string `json:"criterion_id"`
	Question    string `json:"question"`
	SortOrder   int    `json:"sort_order"`
	Value       int    `json:"value"`
	Comment     string `json:"comment"`
}

// GetJudgeScores returns the calling judge's scores for one submission,
// joined with criterion text and ordered by criterion order.
func GetJudgeScores(sessionID, storyID string) ([]JudgeScoreRow, error) {
	judge, _, err := ResolveSession(sessionID)
	if err != nil {
		return nil, err
	}

	var rows []JudgeScoreRow
	err = database.DB.Model(&models.Score{}).
		Select("scores.criterion_id, criterions.question, criterions.sort_order, scores.value, scores.comment").
		Joins("JOIN criterions ON criterions.id = scores.criterion_id").
		Where("scores.judge_id = ? AND scores.story_id = ?", judge.ID, storyID).
		Order("criterions.sort_order").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch judge scores: %w", err)
	}
	return rows, nil
}

// GetGroupScores returns every score of a group for admins, hidden ones included
func GetGroupScores(groupID string) ([]models.Score, error) {
	var scores []models.Score
	err := database.DB.Where("group_id = ?", groupID).
		Preload("Judge").Preload("Criterion").
		Order("created_at").
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group scores: %w", err)
	}
	return scores, nil
}

// ScoreUpdateInput carries the admin-editable fields of a score
type ScoreUpdateInput struct {
	Value   *int    `json:"value"`
	Comment *string `json:"comment"`
	Hidden  *bool   `json:"hidden"`
}

// AdminUpdateScore is the privileged score mutation path. Hiding a score can
// invalidate a completed submission, so reconciliation runs in the same
// transaction as the update.
func AdminUpdateScore(scoreID string, input ScoreUpdateInput) (*models.Score, error) {
	if input.Value != nil && (*input.Value < 1 || *input.Value > 5) {
		return nil, ErrInvalidScoreRange
	}

	var score models.Score
	if err := database.DB.First(&score, "id = ?", scoreID).Error; err != nil {
		return nil, ErrScoreNotFound
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if input.Value != nil {
			score.Value = *input.Value
		}
		if input.Comment != nil {
			score.Comment = *input.Comment
		}
		hiddenChanged := false
		if input.Hidden != nil && *input.Hidden != score.Hidden {
			score.Hidden = *input.Hidden
			hiddenChanged = true
		}
		if err := tx.Save(&score).Error; err != nil {
			return fmt.Errorf("failed to update score: %w", err)
		}
		if hiddenChanged {
			ReconcileSubmissionStatus(tx, score.GroupID, score.StoryID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// AdminDeleteScore removes a score and reconciles the submission's status
func AdminDeleteScore(scoreID string) error {
	var score models.Score
	if err := database.DB.First(&score, "id = ?", scoreID).Error; err != nil {
		return ErrScoreNotFound
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&score).Error; err != nil {
			return fmt.Errorf("failed to delete score: %w", err)
		}
		ReconcileSubmissionStatus(tx, score.GroupID, score.StoryID)
		return nil
	})
}
