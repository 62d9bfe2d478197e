package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupSubmission links a piece of content into a group for judging.
// The content itself lives in the external catalog; only the story id is kept here.
type GroupSubmission struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	GroupID   string    `gorm:"type:uuid;not null;column:group_id;uniqueIndex:idx_group_story" json:"group_id"`
	StoryID   string    `gorm:"type:varchar(64);not null;column:story_id;uniqueIndex:idx_group_story" json:"story_id"`
	AddedByID *string   `gorm:"type:uuid;column:added_by_id" json:"added_by_id"`
	AddedAt   time.Time `gorm:"not null;column:added_at" json:"added_at"`

	Group *JudgingGroup `gorm:"foreignKey:GroupID" json:"-"`
}

func (s *GroupSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.AddedAt.IsZero() {
		s.AddedAt = time.Now()
	}
	return nil
}
