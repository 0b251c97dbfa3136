package util

import (
	"testing"
	"time"
)

func TestRound2(t *testing.T) {
	if got := Round2(42250.004); got != 42250.0 {
		t.Fatalf("unexpected round %v", got)
	}
	if got := Round2(-0.595238); got != -0.6 {
		t.Fatalf("unexpected round %v", got)
	}
}

func TestDayOffset(t *testing.T) {
	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	if got := DayOffset(base, base.AddDate(0, 0, 9)); got != 9 {
		t.Fatalf("unexpected offset %d", got)
	}
	if got := DayOffset(base, base); got != 0 {
		t.Fatalf("unexpected offset %d", got)
	}
}

func TestMidnight(t *testing.T) {
	ts := time.Date(2025, 7, 1, 13, 45, 2, 0, time.UTC)
	if got := Midnight(ts); !got.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected midnight %v", got)
	}
}
