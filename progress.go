package main

import (
	"math"
	"net/http"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/gin-gonic/gin"
)

// getProgress returns per-day balances and aggregate stats for a date range.
// GET /api/progress?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Only days with something logged are returned; every day is judged against
// the current profile's goal.
func (h *Handler) getProgress(c *gin.Context) {
	userID := c.GetInt("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	if health.ValidateDateKey(start) != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if health.ValidateDateKey(end) != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	p, ok := h.loadProfile(c)
	if !ok {
		return
	}
	goal := health.CalculateDailyCalorieGoal(p)

	logs, err := h.store.ReadDailyLogs(c, userID, start, end)
	if err != nil {
		storeError(c, err, "", "failed to fetch progress data")
		return
	}
	st, err := h.store.ReadStreak(c, userID)
	if err != nil {
		storeError(c, err, "", "failed to fetch streak")
		return
	}

	days := make([]progressDay, 0, len(logs))
	stats := progressStats{CurrentStreak: st.Current, LongestStreak: st.Longest}
	var consumed int
	for _, l := range logs {
		b := health.Aggregate(l, goal)
		status := b.Status(h.streakTolerance)
		days = append(days, progressDay{
			Date:          l.Date,
			Consumed:      b.CaloriesConsumed,
			Burned:        b.CaloriesBurned,
			Net:           b.NetCalories,
			Goal:          goal,
			FoodCount:     b.FoodCount,
			ExerciseCount: b.ExerciseCount,
			Status:        status,
		})
		stats.DaysLogged++
		if status == health.StatusOnTrack {
			stats.DaysOnTrack++
		}
		consumed += b.CaloriesConsumed
	}
	if stats.DaysLogged > 0 {
		stats.AvgCaloriesConsumed = int(math.Round(float64(consumed) / float64(stats.DaysLogged)))
	}

	c.JSON(http.StatusOK, progressResponse{Days: days, Stats: stats})
}
