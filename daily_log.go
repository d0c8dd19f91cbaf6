package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getDailyLog returns one day's entries and its energy balance.
// GET /api/daily-log?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailyLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	date, ok := h.dateParam(c)
	if !ok {
		return
	}

	dayLog, err := h.store.ReadDailyLog(c, userID, date)
	if err != nil {
		storeError(c, err, "", "failed to fetch daily log")
		return
	}

	// The log is readable before onboarding; totals then run against a zero goal.
	goal, hasProfile := 0, true
	p, err := h.store.ReadProfile(c, userID)
	switch {
	case err == nil:
		goal = health.CalculateDailyCalorieGoal(p)
	case errors.Is(err, store.ErrNotFound):
		hasProfile = false
	default:
		storeError(c, err, "", "failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, dailyLogResponse{
		DailyLog:   dayLog,
		Totals:     health.Aggregate(dayLog, goal),
		HasProfile: hasProfile,
	})
}

// addFood appends a food entry to a day.
// POST /api/daily-log/foods. Date defaults to today.
func (h *Handler) addFood(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body addFoodRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := health.FoodEntry{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(body.Name),
		Calories:    body.Calories,
		ProteinG:    body.ProteinG,
		CarbsG:      body.CarbsG,
		FatG:        body.FatG,
		HealthScore: body.HealthScore,
		Timestamp:   h.now().UTC(),
	}
	if body.FoodID != "" {
		item, ok := h.catalog.Food(body.FoodID)
		if !ok {
			apiError(c, http.StatusBadRequest, "unknown food_id")
			return
		}
		servings := body.Servings
		if servings == 0 {
			servings = 1
		}
		if servings < 0 {
			apiError(c, http.StatusBadRequest, "servings must be positive")
			return
		}
		id, ts := entry.ID, entry.Timestamp
		entry = item.Entry(servings)
		entry.ID, entry.Timestamp = id, ts
	}
	if err := health.ValidateFoodEntry(entry); err != nil {
		storeError(c, err, "", "")
		return
	}

	date := dateOr(body.Date, h.today())
	if err := h.store.AppendFoodEntry(c, userID, date, entry); err != nil {
		storeError(c, err, "", "failed to add food")
		return
	}
	h.metrics.entriesLogged.WithLabelValues("food").Inc()
	c.JSON(http.StatusCreated, entry)
}

// removeFood deletes a food entry by id from the given day. Other entries,
// exercises included, are untouched.
// DELETE /api/daily-log/foods/:id?date=YYYY-MM-DD.
func (h *Handler) removeFood(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	if err := h.store.RemoveFoodEntry(c, c.GetInt("user_id"), date, c.Param("id")); err != nil {
		storeError(c, err, "food entry not found", "failed to remove food")
		return
	}
	c.Status(http.StatusNoContent)
}

// addExercise appends an exercise entry. Calories burned are fixed here from
// MET, the profile's current weight and the duration.
// POST /api/daily-log/exercises.
func (h *Handler) addExercise(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body addExerciseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := health.ExerciseEntry{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(body.Name),
		DurationMin: body.DurationMin,
		Timestamp:   h.now().UTC(),
	}
	met := body.MET
	if body.ExerciseID != "" {
		act, ok := h.catalog.Exercise(body.ExerciseID)
		if !ok {
			apiError(c, http.StatusBadRequest, "unknown exercise_id")
			return
		}
		entry.Name = act.Name
		met = act.MET
	}

	if err := health.ValidateMET(met); err != nil {
		storeError(c, err, "", "")
		return
	}
	p, ok := h.loadProfile(c)
	if !ok {
		return
	}
	entry.CaloriesBurned = health.CalculateCaloriesBurned(met, p.CurrentWeightKG, entry.DurationMin)
	if err := health.ValidateExerciseEntry(entry); err != nil {
		storeError(c, err, "", "")
		return
	}

	date := dateOr(body.Date, h.today())
	if err := h.store.AppendExerciseEntry(c, userID, date, entry); err != nil {
		storeError(c, err, "", "failed to add exercise")
		return
	}
	h.metrics.entriesLogged.WithLabelValues("exercise").Inc()
	c.JSON(http.StatusCreated, entry)
}

// removeExercise deletes an exercise entry by id from the given day.
// DELETE /api/daily-log/exercises/:id?date=YYYY-MM-DD.
func (h *Handler) removeExercise(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	if err := h.store.RemoveExerciseEntry(c, c.GetInt("user_id"), date, c.Param("id")); err != nil {
		storeError(c, err, "exercise entry not found", "failed to remove exercise")
		return
	}
	c.Status(http.StatusNoContent)
}

// putWeight records the day's weigh-in, replacing an earlier one.
// PUT /api/daily-log/weight. Body: { "date": "YYYY-MM-DD", "weight_kg": 71.4 }.
func (h *Handler) putWeight(c *gin.Context) {
	var body weightRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := health.ValidateWeighIn(body.WeightKG); err != nil {
		storeError(c, err, "", "")
		return
	}
	date := dateOr(body.Date, h.today())
	if err := h.store.SetDailyWeight(c, c.GetInt("user_id"), date, body.WeightKG); err != nil {
		storeError(c, err, "", "failed to save weight")
		return
	}
	h.metrics.entriesLogged.WithLabelValues("weight").Inc()
	c.JSON(http.StatusOK, gin.H{"date": date, "weight_kg": body.WeightKG})
}

// putWater sets the day's glasses of water.
// PUT /api/daily-log/water. Body: { "date": "YYYY-MM-DD", "glasses": 6 }.
func (h *Handler) putWater(c *gin.Context) {
	var body waterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := health.ValidateWaterGlasses(body.Glasses); err != nil {
		storeError(c, err, "", "")
		return
	}
	date := dateOr(body.Date, h.today())
	if err := h.store.SetWaterIntake(c, c.GetInt("user_id"), date, body.Glasses); err != nil {
		storeError(c, err, "", "failed to save water intake")
		return
	}
	h.metrics.entriesLogged.WithLabelValues("water").Inc()
	c.JSON(http.StatusOK, gin.H{"date": date, "glasses": body.Glasses})
}
