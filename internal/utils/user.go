package utils

import (
	"math/rand"
	"time"
)

// GetMemberTier maps a contribution score to a display tier.
func GetMemberTier(score int) (name string, icon string) {
	switch {
	case score >= 1000:
		return "Platinum", "🏆"
	case score >= 300:
		return "Gold", "🥇"
	case score >= 100:
		return "Silver", "🥈"
	case score >= 20:
		return "Bronze", "🥉"
	default:
		return "Newcomer", "🌱"
	}
}

// GetDaysSinceJoined returns whole days since the account joined.
func GetDaysSinceJoined(joinedAt time.Time) int {
	return int(time.Since(joinedAt).Hours() / 24)
}

// GetRandomEmoji returns a random emoji used as the default avatar.
func GetRandomEmoji() string {
	emojis := []string{"🩺", "🔬", "🧬", "💊", "🧪", "⚕️", "🫀", "🧠", "🦠", "🩻", "🌡️", "🚑"}
	return emojis[rand.Intn(len(emojis))]
}
