package models

import (
	"time"

	"gorm.io/gorm"
)

// NoticePriority represents the priority of a notice
type NoticePriority string

const (
	PriorityNormal NoticePriority = "normal"
	PriorityMedium NoticePriority = "medium"
	PriorityHigh   NoticePriority = "high"
)

// DefaultNoticeTTL is how long a notice stays visible when no expiry is given.
const DefaultNoticeTTL = 7 * 24 * time.Hour

// Notice represents a board posting
type Notice struct {
	ID         string         `json:"id" gorm:"primaryKey"`
	Title      string         `json:"title" gorm:"not null"`
	Content    string         `json:"content" gorm:"not null"`
	AuthorID   string         `json:"-" gorm:"column:author_id;index"`
	Category   string         `json:"category" gorm:"default:'general';index"`
	Priority   NoticePriority `json:"priority" gorm:"default:'normal'"`
	IsPinned   bool           `json:"isPinned" gorm:"column:is_pinned;index"`
	ExpiresAt  time.Time      `json:"expiresAt" gorm:"column:expires_at;not null;index"`
	AuthorName string         `json:"authorName" gorm:"-"`
	gorm.Model
}

// TableName specifies the table name for Notice Model
func (Notice) TableName() string {
	return "notices"
}
