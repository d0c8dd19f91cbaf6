package store

import (
	"context"
	"testing"
	"time"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateDay(t *testing.T) {
	s, uid := newTestStore(t)
	ctx := context.Background()

	_, err := EvaluateDay(ctx, s, uid, "2024-03-01", "2024-03-01", health.DefaultStreakTolerance)
	assert.ErrorIs(t, err, ErrNotFound)

	p := health.UserProfile{
		Name: "Anna", Age: 34, Gender: health.Female, HeightCM: 168,
		CurrentWeightKG: 72, TargetWeightKG: 65, ActivityLevel: health.Moderate,
	}
	require.NoError(t, s.WriteProfile(ctx, uid, p))
	goal := health.CalculateDailyCalorieGoal(p)
	require.NoError(t, s.AppendFoodEntry(ctx, uid, "2024-03-01", health.FoodEntry{
		ID: "f1", Name: "Meals", Calories: goal, HealthScore: 6, Timestamp: time.Now(),
	}))

	t.Run("future day is rejected and leaves the streak alone", func(t *testing.T) {
		_, err := EvaluateDay(ctx, s, uid, "2099-12-31", "2024-03-01", health.DefaultStreakTolerance)
		var verr *health.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "date", verr.Field)

		st, err := s.ReadStreak(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, health.StreakData{}, st)
	})

	t.Run("today counts", func(t *testing.T) {
		ev, err := EvaluateDay(ctx, s, uid, "2024-03-01", "2024-03-01", health.DefaultStreakTolerance)
		require.NoError(t, err)
		assert.True(t, ev.OnTrack)
		assert.True(t, ev.Changed)
		assert.Equal(t, goal, ev.Balance.CalorieGoal)
		assert.Equal(t, health.StreakData{Current: 1, Longest: 1, LastLogDate: "2024-03-01"}, ev.Streak)
	})

	t.Run("same day again is a no-op", func(t *testing.T) {
		ev, err := EvaluateDay(ctx, s, uid, "2024-03-01", "2024-03-01", health.DefaultStreakTolerance)
		require.NoError(t, err)
		assert.False(t, ev.Changed)
		assert.Equal(t, 1, ev.Streak.Current)
	})
}
