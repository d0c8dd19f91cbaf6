package health

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the local calendar-day key format.
const DateLayout = "2006-01-02"

// Plausible input ranges enforced before anything reaches the calculator.
const (
	MinAge      = 10
	MaxAge      = 120
	MinHeightCM = 50.0
	MaxHeightCM = 250.0
	MinWeightKG = 20.0
	MaxWeightKG = 400.0
)

// ValidationError is a rejected boundary input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DateKey formats t as a local calendar day. Two time zones can disagree on
// the key for the same instant.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidateDateKey rejects anything that is not a real YYYY-MM-DD date.
func ValidateDateKey(key string) error {
	if _, err := time.Parse(DateLayout, key); err != nil {
		return invalid("date", "must be a date in YYYY-MM-DD form")
	}
	return nil
}

// ValidateEvaluationDate rejects a streak evaluation for a day after today.
// The stored last evaluated day never moves back, so a future key would
// block every real day until the calendar reaches it.
func ValidateEvaluationDate(date, today string) error {
	if err := ValidateDateKey(date); err != nil {
		return err
	}
	if date > today {
		return invalid("date", "must not be after today (%s)", today)
	}
	return nil
}

// ValidateProfile checks a profile before it is stored or computed against.
func ValidateProfile(p UserProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", "is required")
	}
	if p.Age < MinAge || p.Age > MaxAge {
		return invalid("age", "must be between %d and %d", MinAge, MaxAge)
	}
	if p.Gender != Male && p.Gender != Female {
		return invalid("gender", "must be one of: male, female")
	}
	if p.HeightCM < MinHeightCM || p.HeightCM > MaxHeightCM {
		return invalid("height_cm", "must be between %.0f and %.0f", MinHeightCM, MaxHeightCM)
	}
	if p.CurrentWeightKG < MinWeightKG || p.CurrentWeightKG > MaxWeightKG {
		return invalid("current_weight_kg", "must be between %.0f and %.0f", MinWeightKG, MaxWeightKG)
	}
	if p.TargetWeightKG < MinWeightKG || p.TargetWeightKG > MaxWeightKG {
		return invalid("target_weight_kg", "must be between %.0f and %.0f", MinWeightKG, MaxWeightKG)
	}
	if _, ok := activityMultipliers[p.ActivityLevel]; !ok {
		return invalid("activity_level", "must be one of: sedentary, light, moderate, active, very_active")
	}
	return nil
}

// ValidateFoodEntry checks a food entry before it is stored.
func ValidateFoodEntry(f FoodEntry) error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "is required")
	}
	if f.Calories < 0 {
		return invalid("calories", "must not be negative")
	}
	if f.ProteinG < 0 || f.CarbsG < 0 || f.FatG < 0 {
		return invalid("macros", "must not be negative")
	}
	if f.HealthScore < 1 || f.HealthScore > 10 {
		return invalid("health_score", "must be between 1 and 10")
	}
	return nil
}

// ValidateExerciseEntry checks an exercise entry before it is stored.
func ValidateExerciseEntry(e ExerciseEntry) error {
	if strings.TrimSpace(e.Name) == "" {
		return invalid("name", "is required")
	}
	if e.DurationMin <= 0 {
		return invalid("duration_min", "must be greater than 0")
	}
	if e.CaloriesBurned < 0 {
		return invalid("calories_burned", "must not be negative")
	}
	return nil
}

// ValidateMET checks a MET value used to derive calories burned.
func ValidateMET(met float64) error {
	if met <= 0 || met > 25 {
		return invalid("met", "must be between 0 and 25")
	}
	return nil
}

// ValidateWeighIn checks a daily weigh-in against the profile weight range.
func ValidateWeighIn(weightKG float64) error {
	if weightKG < MinWeightKG || weightKG > MaxWeightKG {
		return invalid("weight_kg", "must be between %.0f and %.0f", MinWeightKG, MaxWeightKG)
	}
	return nil
}

// ValidateWaterGlasses checks a day's water count.
func ValidateWaterGlasses(glasses int) error {
	if glasses < 0 {
		return invalid("glasses", "must not be negative")
	}
	return nil
}
