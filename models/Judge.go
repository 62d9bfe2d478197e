package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Judge represents a session-authenticated participant who scores submissions within one group
type Judge struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	GroupID    string    `gorm:"type:uuid;not null;column:group_id;uniqueIndex:idx_judges_group_name" json:"group_id"`
	Name       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_judges_group_name" json:"name"`
	Email      *string   `gorm:"type:varchar(255)" json:"email"`
	SessionID  string    `gorm:"type:varchar(64);unique;not null;column:session_id" json:"-"`
	LastActive time.Time `gorm:"not null;column:last_active" json:"last_active"`
	UserID     *string   `gorm:"type:uuid;column:user_id" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`

	Group *JudgingGroup `gorm:"foreignKey:GroupID" json:"-"`
	User  *User         `gorm:"foreignKey:UserID" json:"-"`
}

func (j *Judge) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
