package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Score represents one judge's 1-5 rating for one submission against one criterion
type Score struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	GroupID     string    `gorm:"type:uuid;not null;column:group_id;index" json:"group_id"`
	JudgeID     string    `gorm:"type:uuid;not null;column:judge_id;uniqueIndex:idx_scores_triple" json:"judge_id"`
	StoryID     string    `gorm:"type:varchar(64);not null;column:story_id;uniqueIndex:idx_scores_triple" json:"story_id"`
	CriterionID string    `gorm:"type:uuid;not null;column:criterion_id;uniqueIndex:idx_scores_triple" json:"criterion_id"`
	Value       int       `gorm:"not null" json:"value"`
	Comment     string    `gorm:"type:text" json:"comment"`
	Hidden      bool      `gorm:"not null;default:false" json:"hidden"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Judge     *Judge     `gorm:"foreignKey:JudgeID" json:"judge,omitempty"`
	Criterion *Criterion `gorm:"foreignKey:CriterionID" json:"criterion,omitempty"`
}

func (s *Score) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
