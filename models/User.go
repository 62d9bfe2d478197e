package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local shadow of the identity collaborator: enough to authenticate
// an admin and attribute actions, nothing more.
type User struct {
	ID            string     `gorm:"type:uuid;primary_key" json:"id"`
	Email         string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Name          string     `gorm:"type:varchar(100);not null" json:"name"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin       bool       `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	Blocked       bool       `gorm:"not null;default:false" json:"blocked"`
	LastConnected *time.Time `gorm:"column:last_connected" json:"last_connected"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
