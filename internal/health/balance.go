package health

import "math"

// DefaultStreakTolerance is the on-track band used by streaks and progress,
// as a fraction of the calorie goal. It is separate from the coach's fixed
// kcal bands on purpose.
const DefaultStreakTolerance = 0.1

// DayStatus labels a day against its goal for the progress view.
type DayStatus string

const (
	StatusOnTrack DayStatus = "on_track"
	StatusOver    DayStatus = "over"
	StatusUnder   DayStatus = "under"
)

// EnergyBalance is the reduction of one day's log against a calorie goal.
// Deviation is positive when over the goal. AvgHealthScore is 0 when no food
// was logged.
type EnergyBalance struct {
	FoodCount        int     `json:"food_count"`
	ExerciseCount    int     `json:"exercise_count"`
	CaloriesConsumed int     `json:"calories_consumed"`
	CaloriesBurned   int     `json:"calories_burned"`
	NetCalories      int     `json:"net_calories"`
	CalorieGoal      int     `json:"calorie_goal"`
	Deviation        int     `json:"deviation"`
	AvgHealthScore   float64 `json:"avg_health_score"`
	ProteinG         float64 `json:"protein_g"`
	CarbsG           float64 `json:"carbs_g"`
	FatG             float64 `json:"fat_g"`
}

// Aggregate sums a day's entries. It has no side effects and does not depend
// on entry order.
func Aggregate(log DailyLog, calorieGoal int) EnergyBalance {
	b := EnergyBalance{
		FoodCount:     len(log.Foods),
		ExerciseCount: len(log.Exercises),
		CalorieGoal:   calorieGoal,
	}
	var scoreSum int
	for _, f := range log.Foods {
		b.CaloriesConsumed += f.Calories
		b.ProteinG += f.ProteinG
		b.CarbsG += f.CarbsG
		b.FatG += f.FatG
		scoreSum += f.HealthScore
	}
	for _, e := range log.Exercises {
		b.CaloriesBurned += e.CaloriesBurned
	}
	b.NetCalories = b.CaloriesConsumed - b.CaloriesBurned
	b.Deviation = b.NetCalories - calorieGoal
	if b.FoodCount > 0 {
		b.AvgHealthScore = float64(scoreSum) / float64(b.FoodCount)
	}
	return b
}

// OnTrack reports whether |deviation| <= tolerance * goal.
func (b EnergyBalance) OnTrack(tolerance float64) bool {
	return math.Abs(float64(b.Deviation)) <= tolerance*float64(b.CalorieGoal)
}

// Status classifies the day for the progress history.
func (b EnergyBalance) Status(tolerance float64) DayStatus {
	switch {
	case b.OnTrack(tolerance):
		return StatusOnTrack
	case b.Deviation > 0:
		return StatusOver
	default:
		return StatusUnder
	}
}

// DayBalance aggregates a day against the profile's calorie goal and reports
// whether it is on track within tolerance.
func DayBalance(log DailyLog, p UserProfile, tolerance float64) (EnergyBalance, bool) {
	b := Aggregate(log, CalculateDailyCalorieGoal(p))
	return b, b.OnTrack(tolerance)
}
