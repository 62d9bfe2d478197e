package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessMode is the tagged variant controlling who may reach one public surface
// of a judging group.
type AccessMode string

const (
	AccessOpen     AccessMode = "open"
	AccessPassword AccessMode = "password"
	AccessAdmin    AccessMode = "admin"
)

// AccessPolicy protects one surface (scoring, intake or results) of a group.
// The hash is never serialized; clients only learn whether a password exists.
type AccessPolicy struct {
	Mode         AccessMode `gorm:"type:varchar(16);not null;default:'open'" json:"mode"`
	PasswordHash string     `gorm:"type:varchar(255)" json:"-"`
}

// HasPassword reports whether the surface is gated by a password.
func (p AccessPolicy) HasPassword() bool {
	return p.Mode == AccessPassword && p.PasswordHash != ""
}

// JudgingGroup represents one judging contest scope with its own criteria, judges and submissions
type JudgingGroup struct {
	ID          string     `gorm:"type:uuid;primary_key" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Slug        string     `gorm:"type:varchar(120);unique;not null" json:"slug"`
	Description string     `gorm:"type:varchar(255)" json:"description"`
	Active      bool       `gorm:"not null;default:false" json:"active"`
	StartDate   *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate     *time.Time `gorm:"column:end_date" json:"end_date"`

	ScoringAccess AccessPolicy `gorm:"embedded;embeddedPrefix:scoring_" json:"scoring_access"`
	IntakeAccess  AccessPolicy `gorm:"embedded;embeddedPrefix:intake_" json:"intake_access"`
	ResultsAccess AccessPolicy `gorm:"embedded;embeddedPrefix:results_" json:"results_access"`

	CreatedByID *string   `gorm:"type:uuid;column:created_by_id" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Judges      []*Judge           `gorm:"foreignKey:GroupID" json:"judges,omitempty"`
	Criteria    []*Criterion       `gorm:"foreignKey:GroupID" json:"criteria,omitempty"`
	Submissions []*GroupSubmission `gorm:"foreignKey:GroupID" json:"submissions,omitempty"`
}

func (g *JudgingGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// InWindow reports whether t falls inside the group's active window.
// A missing bound means unbounded on that side.
func (g *JudgingGroup) InWindow(t time.Time) bool {
	if g.StartDate != nil && t.Before(*g.StartDate) {
		return false
	}
	if g.EndDate != nil && t.After(*g.EndDate) {
		return false
	}
	return true
}
