package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission judging states
const (
	StatusPending   = "pending"
	StatusSkip      = "skip"
	StatusCompleted = "completed"
)

// SubmissionStatus is the derived judging state of one submission within one group.
// When completed it carries the judge whose full coverage justified the transition;
// it is reconciled against live score data rather than trusted at face value.
type SubmissionStatus struct {
	ID              string    `gorm:"type:uuid;primary_key" json:"id"`
	GroupID         string    `gorm:"type:uuid;not null;column:group_id;uniqueIndex:idx_status_group_story" json:"group_id"`
	StoryID         string    `gorm:"type:varchar(64);not null;column:story_id;uniqueIndex:idx_status_group_story" json:"story_id"`
	Status          string    `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	AssignedJudgeID *string   `gorm:"type:uuid;column:assigned_judge_id" json:"assigned_judge_id"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s *SubmissionStatus) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = StatusPending
	}
	return nil
}
