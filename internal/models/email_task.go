package models

import (
	"time"

	"gorm.io/gorm"
)

// Email task statuses.
const (
	EmailQueued = "queued"
	EmailSent   = "sent"
	EmailFailed = "failed"
)

// EmailTask is a queued outbound email. Sends go through a worker that drains
// a Redis list of task IDs, so a crashed instance never silently drops mail.
type EmailTask struct {
	ID          string `gorm:"primaryKey"` // uuid
	To          string `gorm:"not null"`
	Subject     string `gorm:"not null"`
	HTML        string `gorm:"not null"`
	Status      string `gorm:"default:'queued';index"`
	Attempts    int    `gorm:"default:0"`
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
