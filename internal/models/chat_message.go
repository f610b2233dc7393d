package models

import (
	"gorm.io/gorm"
)

// MaxChatMessageLength caps a single chat message.
const MaxChatMessageLength = 500

// ChatMessage represents one persisted chat line
type ChatMessage struct {
	ID         string `json:"id" gorm:"primaryKey"`
	Message    string `json:"message" gorm:"not null"`
	AuthorID   string `json:"-" gorm:"column:author_id;index"`
	AuthorName string `json:"authorName" gorm:"-"`
	gorm.Model
}

// TableName specifies the table name for ChatMessage Model
func (ChatMessage) TableName() string {
	return "chat_messages"
}
