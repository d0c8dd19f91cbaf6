package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreak_SameDayIsNoop(t *testing.T) {
	var s StreakData
	s, changed := s.Evaluate(true, "2024-01-01")
	assert.True(t, changed)
	assert.Equal(t, StreakData{Current: 1, Longest: 1, LastLogDate: "2024-01-01"}, s)

	again, changed := s.Evaluate(true, "2024-01-01")
	assert.False(t, changed)
	assert.Equal(t, s, again)

	// An off-track call on the same day must not reset either.
	again, changed = s.Evaluate(false, "2024-01-01")
	assert.False(t, changed)
	assert.Equal(t, 1, again.Current)
}

func TestStreak_NextDayIncrements(t *testing.T) {
	s := StreakData{Current: 4, Longest: 4, LastLogDate: "2024-01-01"}
	s, changed := s.Evaluate(true, "2024-01-02")
	assert.True(t, changed)
	assert.Equal(t, 5, s.Current)
	assert.Equal(t, 5, s.Longest)
	assert.Equal(t, "2024-01-02", s.LastLogDate)
}

func TestStreak_LongestKeptWhenBelow(t *testing.T) {
	s := StreakData{Current: 2, Longest: 9, LastLogDate: "2024-03-10"}
	s, _ = s.Evaluate(true, "2024-03-11")
	assert.Equal(t, 3, s.Current)
	assert.Equal(t, 9, s.Longest)
}

func TestStreak_OffTrackResets(t *testing.T) {
	for _, current := range []int{0, 1, 12} {
		s := StreakData{Current: current, Longest: 12, LastLogDate: "2024-01-01"}
		s, changed := s.Evaluate(false, "2024-01-02")
		assert.True(t, changed)
		assert.Zero(t, s.Current)
		assert.Equal(t, 12, s.Longest)
		assert.Equal(t, "2024-01-02", s.LastLogDate)
	}
}

// TestStreak_GapNotDetected: skipping days does not break the streak.
func TestStreak_GapNotDetected(t *testing.T) {
	s := StreakData{Current: 3, Longest: 3, LastLogDate: "2024-01-01"}
	s, _ = s.Evaluate(true, "2024-01-20")
	assert.Equal(t, 4, s.Current)
}

func TestStreak_EarlierDateIgnored(t *testing.T) {
	s := StreakData{Current: 3, Longest: 5, LastLogDate: "2024-02-10"}
	next, changed := s.Evaluate(false, "2024-02-09")
	assert.False(t, changed)
	assert.Equal(t, s, next)
}

func TestStreak_LongestNeverBelowCurrent(t *testing.T) {
	var s StreakData
	day := []string{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04", "2024-05-05", "2024-05-06"}
	track := []bool{true, true, false, true, true, true}
	for i, d := range day {
		s, _ = s.Evaluate(track[i], d)
		assert.GreaterOrEqual(t, s.Longest, s.Current)
	}
	assert.Equal(t, 3, s.Current)
	assert.Equal(t, 3, s.Longest)
}
