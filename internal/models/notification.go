package models

import "gorm.io/gorm"

// Notification is a persisted per-user notification row. Read state lives in
// the database so any instance can answer unread-count queries.
type Notification struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Type   string // job | verification | chat
	Title  string
	Body   string
	Link   string
	Read   bool `gorm:"default:false;index"`
}
