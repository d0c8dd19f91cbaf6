package main

import (
	"time"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(health.DateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+health.DateLayout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// dateOr returns the key for d, or fallback when the field was omitted.
func dateOr(d *DateOnly, fallback string) string {
	if d == nil {
		return fallback
	}
	return health.DateKey(d.Time)
}

/* ─── Requests ───────────────────────────────────────────────────────── */

// profileRequest is the body for PUT /api/profile. created_at is kept from the
// stored profile, or set on first save.
type profileRequest struct {
	Name            string  `json:"name"`
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	HeightCM        float64 `json:"height_cm"`
	CurrentWeightKG float64 `json:"current_weight_kg"`
	TargetWeightKG  float64 `json:"target_weight_kg"`
	ActivityLevel   string  `json:"activity_level"`
}

// addFoodRequest is the body for POST /api/daily-log/foods. With food_id set
// the item is copied from the catalog (servings defaults to 1); otherwise the
// custom fields are used as given.
type addFoodRequest struct {
	Date        *DateOnly `json:"date"`
	FoodID      string    `json:"food_id"`
	Servings    float64   `json:"servings"`
	Name        string    `json:"name"`
	Calories    int       `json:"calories"`
	ProteinG    float64   `json:"protein_g"`
	CarbsG      float64   `json:"carbs_g"`
	FatG        float64   `json:"fat_g"`
	HealthScore int       `json:"health_score"`
}

// addExerciseRequest is the body for POST /api/daily-log/exercises. Either
// exercise_id or name+met is required.
type addExerciseRequest struct {
	Date        *DateOnly `json:"date"`
	ExerciseID  string    `json:"exercise_id"`
	Name        string    `json:"name"`
	MET         float64   `json:"met"`
	DurationMin int       `json:"duration_min"`
}

type weightRequest struct {
	Date     *DateOnly `json:"date"`
	WeightKG float64   `json:"weight_kg"`
}

type waterRequest struct {
	Date    *DateOnly `json:"date"`
	Glasses int       `json:"glasses"`
}

/* ─── Responses ──────────────────────────────────────────────────────── */

// dailyLogResponse is the response shape for GET /api/daily-log. Totals is
// computed against the profile goal, or a zero goal when no profile exists.
type dailyLogResponse struct {
	health.DailyLog
	Totals     health.EnergyBalance `json:"totals"`
	HasProfile bool                 `json:"has_profile"`
}

// progressDay is one logged day in GET /api/progress.
type progressDay struct {
	Date          string           `json:"date"`
	Consumed      int              `json:"consumed"`
	Burned        int              `json:"burned"`
	Net           int              `json:"net"`
	Goal          int              `json:"goal"`
	FoodCount     int              `json:"food_count"`
	ExerciseCount int              `json:"exercise_count"`
	Status        health.DayStatus `json:"status"`
}

type progressStats struct {
	DaysLogged          int `json:"days_logged"`
	DaysOnTrack         int `json:"days_on_track"`
	AvgCaloriesConsumed int `json:"avg_calories_consumed"`
	CurrentStreak       int `json:"current_streak"`
	LongestStreak       int `json:"longest_streak"`
}

type progressResponse struct {
	Days  []progressDay `json:"days"`
	Stats progressStats `json:"stats"`
}

// metricsResponse is the response for GET /api/metrics.
type metricsResponse struct {
	health.Metrics
	Profile health.UserProfile `json:"profile"`
}
