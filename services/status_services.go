package services

import (
	"fmt"
	"log"
	"time"

	"judgeapi/database"
	"judgeapi/metrics"
	"judgeapi/models"

	"gorm.io/gorm"
)

// GetSubmissionStatus returns the derived status row for (group, story),
// defaulting to pending when none has been recorded yet.
func GetSubmissionStatus(groupID, storyID string) (*models.SubmissionStatus, error) {
	var status models.SubmissionStatus
	err := database.DB.Where("group_id = ? AND story_id = ?", groupID, storyID).First(&status).Error
	if err == gorm.ErrRecordNotFound {
		return &models.SubmissionStatus{
			GroupID: groupID,
			StoryID: storyID,
			Status:  models.StatusPending,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load submission status: %w", err)
	}
	return &status, nil
}

// MarkCompleted transitions a submission to completed for the acting judge.
// The transition is only granted when the judge has a non-hidden score for
// every criterion in the group; it is never inferred from score writes alone.
func MarkCompleted(sessionID, storyID string) (*models.SubmissionStatus, error) {
	judge, group, err := ResolveSession(sessionID)
	if err != nil {
		return nil, err
	}

	var status *models.SubmissionStatus
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireSubmissionInGroup(tx, group.ID, storyID); err != nil {
			return err
		}

		covered, criteriaCount, err := judgeCoverage(tx, group.ID, judge.ID, storyID)
		if err != nil {
			return err
		}
		if criteriaCount == 0 || covered < criteriaCount {
			return fmt.Errorf("%w: %d of %d criteria scored",
				ErrIncompleteCoverage, covered, criteriaCount)
		}

		status, err = upsertStatus(tx, group.ID, storyID, models.StatusCompleted, &judge.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// MarkSkipped records that a judge explicitly deferred a submission. A
// completed submission cannot be skipped: only reconciliation or judge
// deletion takes a submission out of the completed state.
func MarkSkipped(sessionID, storyID string) (*models.SubmissionStatus, error) {
	_, group, err := ResolveSession(sessionID)
	if err != nil {
		return nil, err
	}

	var status *models.SubmissionStatus
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireSubmissionInGroup(tx, group.ID, storyID); err != nil {
			return err
		}
		if err := requireNotCompleted(tx, group.ID, storyID); err != nil {
			return err
		}
		status, err = upsertStatus(tx, group.ID, storyID, models.StatusSkip, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// MarkPending puts a skipped submission back into the queue. Like MarkSkipped
// it refuses to touch a completed submission.
func MarkPending(sessionID, storyID string) (*models.SubmissionStatus, error) {
	_, group, err := ResolveSession(sessionID)
	if err != nil {
		return nil, err
	}

	var status *models.SubmissionStatus
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireSubmissionInGroup(tx, group.ID, storyID); err != nil {
			return err
		}
		if err := requireNotCompleted(tx, group.ID, storyID); err != nil {
			return err
		}
		status, err = upsertStatus(tx, group.ID, storyID, models.StatusPending, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// ReconcileSubmissionStatus re-derives a completed status from the current
// non-hidden score set. It runs after every score hide/delete and never raises:
// inconsistencies are corrected silently, logging is the only signal.
// The previous completed state is never assumed to remain valid.
func ReconcileSubmissionStatus(tx *gorm.DB, groupID, storyID string) {
	var status models.SubmissionStatus
	err := tx.Where("group_id = ? AND story_id = ?", groupID, storyID).First(&status).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("Reconciliation read failed for group %s story %s: %v", groupID, storyID, err)
		}
		return
	}
	if status.Status != models.StatusCompleted {
		return
	}

	revert := false
	if status.AssignedJudgeID == nil {
		revert = true
	} else {
		var judgeCount int64
		tx.Model(&models.Judge{}).Where("id = ?", *status.AssignedJudgeID).Count(&judgeCount)
		if judgeCount == 0 {
			revert = true
		} else {
			covered, criteriaCount, err := judgeCoverage(tx, groupID, *status.AssignedJudgeID, storyID)
			if err != nil {
				log.Printf("Reconciliation count failed for group %s story %s: %v", groupID, storyID, err)
				return
			}
			if criteriaCount == 0 || covered < criteriaCount {
				revert = true
			}
		}
	}

	if !revert {
		return
	}

	err = tx.Model(&models.SubmissionStatus{}).
		Where("id = ?", status.ID).
		Updates(map[string]interface{}{
			"status":            models.StatusPending,
			"assigned_judge_id": nil,
			"updated_at":        time.Now(),
		}).Error
	if err != nil {
		log.Printf("Reconciliation update failed for group %s story %s: %v", groupID, storyID, err)
		return
	}
	metrics.StatusReconciliations.Inc()
	log.Printf("Submission %s in group %s reverted to pending: completed assignment no longer covered", storyID, groupID)
}

// ListStatuses returns every recorded status row for a group
func ListStatuses(groupID string) ([]models.SubmissionStatus, error) {
	var statuses []models.SubmissionStatus
	if err := database.DB.Where("group_id = ?", groupID).Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return statuses, nil
}

// judgeCoverage counts the judge's non-hidden scores for a story against the
// group's criteria count.
func judgeCoverage(tx *gorm.DB, groupID, judgeID, storyID string) (covered, criteria int64, err error) {
	if err = tx.Model(&models.Criterion{}).Where("group_id = ?", groupID).Count(&criteria).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count criteria: %w", err)
	}
	err = tx.Model(&models.Score{}).
		Where("group_id = ? AND judge_id = ? AND story_id = ? AND hidden = ?", groupID, judgeID, storyID, false).
		Count(&covered).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count scores: %w", err)
	}
	return covered, criteria, nil
}

func requireSubmissionInGroup(tx *gorm.DB, groupID, storyID string) error {
	var count int64
	if err := tx.Model(&models.GroupSubmission{}).
		Where("group_id = ? AND story_id = ?", groupID, storyID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check submission link: %w", err)
	}
	if count == 0 {
		return ErrSubmissionNotInGroup
	}
	return nil
}

// requireNotCompleted blocks judge-initiated transitions on a completed
// submission; completed only leaves via reconciliation or judge deletion.
func requireNotCompleted(tx *gorm.DB, groupID, storyID string) error {
	var count int64
	if err := tx.Model(&models.SubmissionStatus{}).
		Where("group_id = ? AND story_id = ? AND status = ?", groupID, storyID, models.StatusCompleted).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check submission status: %w", err)
	}
	if count > 0 {
		return ErrSubmissionCompleted
	}
	return nil
}

func upsertStatus(tx *gorm.DB, groupID, storyID, state string, judgeID *string) (*models.SubmissionStatus, error) {
	var status models.SubmissionStatus
	err := tx.Where("group_id = ? AND story_id = ?", groupID, storyID).First(&status).Error
	if err == gorm.ErrRecordNotFound {
		status = models.SubmissionStatus{GroupID: groupID, StoryID: storyID}
		if err := tx.Create(&status).Error; err != nil {
			return nil, fmt.Errorf("failed to create status: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load status: %w", err)
	}

	err = tx.Model(&models.SubmissionStatus{}).
		Where("id = ?", status.ID).
		Updates(map[string]interface{}{
			"status":            state,
			"assigned_judge_id": judgeID,
			"updated_at":        time.Now(),
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	status.Status = state
	status.AssignedJudgeID = judgeID
	return &status, nil
}
