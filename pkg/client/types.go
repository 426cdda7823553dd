package client

import "time"

// Response shapes mirror the server's JSON. Only fields the server actually
// emits for external callers are modeled; credential hashes and token
// digests never appear on the wire.

type User struct {
	ID              uint        `json:"id"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Email           string      `json:"email"`
	Avatar          string      `json:"avatar"`
	Bio             string      `json:"bio"`
	Country         string      `json:"country"`
	City            string      `json:"city"`
	Profession      string      `json:"profession"`
	Institution     string      `json:"institution"`
	Specialization  string      `json:"specialization"`
	LinkedIn        string      `json:"linked_in"`
	Twitter         string      `json:"twitter"`
	Role            string      `json:"role"`
	AuthProvider    string      `json:"auth_provider"`
	IsEmailVerified bool        `json:"is_email_verified"`
	IsActive        bool        `json:"is_active"`
	ChapterID       *uint       `json:"chapter_id"`
	Chapter         *Chapter    `json:"chapter,omitempty"`
	Badges          []UserBadge `json:"badges,omitempty"`
	JoinedAt        time.Time   `json:"joined_at"`
	LastActive      time.Time   `json:"last_active"`
	Stats           Stats       `json:"stats"`
	Preferences     Preferences `json:"preferences"`
}

type Stats struct {
	EventsAttended    int `json:"events_attended"`
	BadgesEarned      int `json:"badges_earned"`
	ContributionScore int `json:"contribution_score"`
}

type Preferences struct {
	EmailNotifications   bool   `json:"email_notifications"`
	PushNotifications    bool   `json:"push_notifications"`
	DesktopNotifications bool   `json:"desktop_notifications"`
	TwoFactorAuth        bool   `json:"two_factor_auth"`
	Language             string `json:"language"`
}

type Chapter struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Country     string    `json:"country"`
	City        string    `json:"city"`
	Status      string    `json:"status"`
	FoundedAt   time.Time `json:"founded_at"`
}

type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ChapterID   *uint     `json:"chapter_id"`
	Chapter     *Chapter  `json:"chapter,omitempty"`
	CreatedByID uint      `json:"created_by_id"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
}

type EventRegistration struct {
	ID               uint       `json:"id"`
	EventID          uint       `json:"event_id"`
	UserID           uint       `json:"user_id"`
	ConfirmationCode string     `json:"confirmation_code"`
	AttendedAt       *time.Time `json:"attended_at"`
	FeedbackRating   *int       `json:"feedback_rating"`
	FeedbackComment  string     `json:"feedback_comment"`
}

type Badge struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Category             string `json:"category"`
	Icon                 string `json:"icon"`
	MinEventsAttended    int    `json:"min_events_attended"`
	MinContributionScore int    `json:"min_contribution_score"`
}

type UserBadge struct {
	ID       uint      `json:"id"`
	UserID   uint      `json:"user_id"`
	BadgeID  uint      `json:"badge_id"`
	Badge    Badge     `json:"badge"`
	EarnedAt time.Time `json:"earned_at"`
}
