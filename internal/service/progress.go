package service

import (
	"time"

	"github.com/yourname/moveup/internal"
)

// ChallengeActive reports whether a challenge is still running.
func ChallengeActive(c internal.Challenge, now time.Time) bool {
	return c.EndDate.After(now)
}

// ProgressFraction returns totalProgress/goal clamped to [0, 1]. The clamp
// is display-only; raw progress stays untouched on the challenge record.
func ProgressFraction(totalProgress, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	fraction := totalProgress / goal
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// ProgressRemaining is the absolute amount still needed, never negative.
func ProgressRemaining(totalProgress, goal float64) float64 {
	remaining := goal - totalProgress
	if remaining < 0 {
		return 0
	}
	return remaining
}
