package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgeEligible(t *testing.T) {
	stats := Stats{EventsAttended: 5, ContributionScore: 100}

	manual := Badge{Name: "Founding Member"}
	assert.False(t, manual.Eligible(stats), "badges without criteria are manual-only")

	events := Badge{Name: "Regular", MinEventsAttended: 5}
	assert.True(t, events.Eligible(stats))
	assert.False(t, events.Eligible(Stats{EventsAttended: 4}))

	both := Badge{Name: "Pillar", MinEventsAttended: 5, MinContributionScore: 200}
	assert.False(t, both.Eligible(stats), "all criteria must be met")
	assert.True(t, both.Eligible(Stats{EventsAttended: 5, ContributionScore: 200}))
}
