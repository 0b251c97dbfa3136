package util

import (
	"math"
	"time"
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// DayOffset returns whole calendar days between base and t.
func DayOffset(base, t time.Time) int {
	return int(t.Sub(base).Hours() / 24)
}

// Midnight truncates t to UTC midnight.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
