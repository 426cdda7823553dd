package models

import (
	"time"
)

// Badge categories
const (
	BadgeCategoryParticipation = "participation"
	BadgeCategoryContribution  = "contribution"
	BadgeCategoryLeadership    = "leadership"
	BadgeCategorySpecial       = "special"
)

type Badge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;unique" json:"name"`
	Description string `json:"description"`
	Category    string `gorm:"size:30;not null;index" json:"category"`
	Icon        string `gorm:"default:''" json:"icon"`

	// Auto-award criteria; zero means the axis is ignored. A badge with no
	// criteria can only be awarded manually.
	MinEventsAttended    int `gorm:"default:0" json:"min_events_attended"`
	MinContributionScore int `gorm:"default:0" json:"min_contribution_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Eligible reports whether the user's stats satisfy the badge criteria.
// Badges without criteria are never auto-eligible.
func (b *Badge) Eligible(s Stats) bool {
	if b.MinEventsAttended == 0 && b.MinContributionScore == 0 {
		return false
	}
	return s.EventsAttended >= b.MinEventsAttended &&
		s.ContributionScore >= b.MinContributionScore
}
