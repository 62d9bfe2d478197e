package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Criterion represents one weighted scoring question within a group
type Criterion struct {
	ID          string `gorm:"type:uuid;primary_key" json:"id"`
	GroupID     string `gorm:"type:uuid;not null;column:group_id;index" json:"group_id"`
	Question    string `gorm:"type:varchar(255);not null" json:"question"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	Weight      int    `gorm:"not null;default:1" json:"weight"`
	SortOrder   int    `gorm:"not null;default:0;column:sort_order" json:"sort_order"`

	Group *JudgingGroup `gorm:"foreignKey:GroupID" json:"-"`
}

func (c *Criterion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
