package models

import (
	"time"
)

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"` // markdown
	ChapterID   *uint     `gorm:"index" json:"chapter_id"`
	Chapter     *Chapter  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"chapter,omitempty"`
	CreatedByID uint      `gorm:"not null;index" json:"created_by_id"`
	Location    string    `json:"location"`
	StartsAt    time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `gorm:"default:0" json:"capacity"` // 0 means unlimited
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRegistration links a member to an event. The confirmation code is
// generated at registration and echoed back in emails and check-in.
type EventRegistration struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	EventID          uint       `gorm:"not null;index:idx_event_user,unique" json:"event_id"`
	Event            Event      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"event"`
	UserID           uint       `gorm:"not null;index:idx_event_user,unique" json:"user_id"`
	User             User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ConfirmationCode string     `gorm:"size:36;uniqueIndex;not null" json:"confirmation_code"`
	AttendedAt       *time.Time `json:"attended_at"`
	FeedbackRating   *int       `json:"feedback_rating"` // 1-5, nil until submitted
	FeedbackComment  string     `gorm:"size:1000" json:"feedback_comment"`
	CreatedAt        time.Time  `json:"created_at"`
}
