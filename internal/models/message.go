package models

import "gorm.io/gorm"

type Message struct {
	gorm.Model
	SenderID   uint   `gorm:"index;not null"`
	ReceiverID uint   `gorm:"index;not null"`
	Type       string `gorm:"default:'text'"` // text | file
	Content    string
	FileURL    string
	FileName   string
}

// MessageView is the caller-facing shape of a chat message. From is "me" when
// the message was sent by the requesting user.
type MessageView struct {
	From      string `json:"from"`
	Type      string `json:"type"`
	Text      string `json:"text"`
	FileURL   string `json:"file_url,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	CreatedAt string `json:"created_at"`
}
