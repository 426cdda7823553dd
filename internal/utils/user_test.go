package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetMemberTier(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "Newcomer"},
		{19, "Newcomer"},
		{20, "Bronze"},
		{100, "Silver"},
		{300, "Gold"},
		{999, "Gold"},
		{1000, "Platinum"},
	}
	for _, tc := range cases {
		name, icon := GetMemberTier(tc.score)
		assert.Equal(t, tc.want, name, "score %d", tc.score)
		assert.NotEmpty(t, icon)
	}
}

func TestGetDaysSinceJoined(t *testing.T) {
	assert.Equal(t, 0, GetDaysSinceJoined(time.Now()))
	assert.Equal(t, 10, GetDaysSinceJoined(time.Now().AddDate(0, 0, -10)))
}

func TestGetRandomEmoji(t *testing.T) {
	assert.NotEmpty(t, GetRandomEmoji())
}
