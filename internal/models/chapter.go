package models

import (
	"time"
)

// Chapter statuses
const (
	ChapterPending  = "pending"
	ChapterApproved = "approved"
)

type Chapter struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;unique" json:"name"`
	Description string    `gorm:"type:text" json:"description"` // markdown
	Country     string    `gorm:"not null;index" json:"country"`
	City        string    `gorm:"not null" json:"city"`
	Status      string    `gorm:"size:20;default:'pending';index" json:"status"`
	FoundedAt   time.Time `json:"founded_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
