// Package health holds the calorie-accounting and coaching core: body metrics,
// the per-day energy balance, the rule-based coach and the on-track streak.
// Everything here is pure; callers pass dates and profiles in explicitly.
package health

import "time"

// Gender selects the Mifflin-St Jeor constant.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ActivityLevel keys into activityMultipliers.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

// UserProfile is the body profile the metrics are computed from. It is
// replaced wholesale when the user edits it.
type UserProfile struct {
	Name            string        `json:"name"`
	Age             int           `json:"age"`
	Gender          Gender        `json:"gender"`
	HeightCM        float64       `json:"height_cm"`
	CurrentWeightKG float64       `json:"current_weight_kg"`
	TargetWeightKG  float64       `json:"target_weight_kg"`
	ActivityLevel   ActivityLevel `json:"activity_level"`
	CreatedAt       time.Time     `json:"created_at"`
}

// FoodEntry is one logged food item, copied from the catalog or entered by hand.
type FoodEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Calories    int       `json:"calories"`
	ProteinG    float64   `json:"protein_g"`
	CarbsG      float64   `json:"carbs_g"`
	FatG        float64   `json:"fat_g"`
	HealthScore int       `json:"health_score"`
	Timestamp   time.Time `json:"timestamp"`
}

// ExerciseEntry is one logged workout. CaloriesBurned is fixed when the entry
// is created and never recomputed.
type ExerciseEntry struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DurationMin    int       `json:"duration_min"`
	CaloriesBurned int       `json:"calories_burned"`
	Timestamp      time.Time `json:"timestamp"`
}

// DailyLog is everything logged for one local calendar day. Entries keep
// insertion order for display; aggregation does not depend on it.
type DailyLog struct {
	Date         string          `json:"date"`
	Foods        []FoodEntry     `json:"foods"`
	Exercises    []ExerciseEntry `json:"exercises"`
	WeightKG     *float64        `json:"weight_kg,omitempty"`
	WaterGlasses int             `json:"water_glasses"`
}

// EmptyLog returns the log for a day with nothing recorded.
func EmptyLog(date string) DailyLog {
	return DailyLog{Date: date, Foods: []FoodEntry{}, Exercises: []ExerciseEntry{}}
}

// StreakData tracks consecutive on-track days. Longest >= Current always.
type StreakData struct {
	Current     int    `json:"current"`
	Longest     int    `json:"longest"`
	LastLogDate string `json:"last_log_date"`
}
