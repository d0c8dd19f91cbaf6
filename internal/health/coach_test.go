package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	log := DailyLog{
		Date: "2024-01-01",
		Foods: []FoodEntry{
			{ID: "f1", Name: "Oats", Calories: 300, ProteinG: 10, CarbsG: 50, FatG: 5, HealthScore: 9},
			{ID: "f2", Name: "Cookie", Calories: 200, ProteinG: 2, CarbsG: 30, FatG: 9, HealthScore: 2},
		},
		Exercises: []ExerciseEntry{
			{ID: "e1", Name: "Walk", DurationMin: 30, CaloriesBurned: 100},
		},
	}

	b := Aggregate(log, 2000)
	assert.Equal(t, 500, b.CaloriesConsumed)
	assert.Equal(t, 100, b.CaloriesBurned)
	assert.Equal(t, 400, b.NetCalories)
	assert.Equal(t, -1600, b.Deviation)
	assert.Equal(t, 5.5, b.AvgHealthScore)
	assert.Equal(t, 2, b.FoodCount)
	assert.Equal(t, 1, b.ExerciseCount)
	assert.Equal(t, 12.0, b.ProteinG)
}

func TestAggregate_EmptyDay(t *testing.T) {
	b := Aggregate(EmptyLog("2024-01-01"), 1800)
	assert.Zero(t, b.CaloriesConsumed)
	assert.Zero(t, b.CaloriesBurned)
	assert.Zero(t, b.AvgHealthScore)
	assert.Equal(t, -1800, b.Deviation)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	a := FoodEntry{ID: "a", Name: "A", Calories: 123, HealthScore: 4}
	c := FoodEntry{ID: "c", Name: "C", Calories: 456, HealthScore: 8}
	x := Aggregate(DailyLog{Foods: []FoodEntry{a, c}}, 1000)
	y := Aggregate(DailyLog{Foods: []FoodEntry{c, a}}, 1000)
	assert.Equal(t, x, y)
}

func TestEnergyBalance_Status(t *testing.T) {
	cases := []struct {
		deviation int
		want      DayStatus
	}{
		{0, StatusOnTrack},
		{200, StatusOnTrack},
		{-200, StatusOnTrack},
		{201, StatusOver},
		{-201, StatusUnder},
	}
	for _, tc := range cases {
		b := EnergyBalance{CalorieGoal: 2000, Deviation: tc.deviation}
		assert.Equal(t, tc.want, b.Status(DefaultStreakTolerance), "deviation %d", tc.deviation)
	}
}

/* ─── Classifier ─────────────────────────────────────────────────────── */

func coachInput(deviation int, mut func(*CoachInput)) CoachInput {
	in := CoachInput{
		FoodCount:        3,
		ExerciseCount:    1,
		CaloriesConsumed: 2000 + deviation + 50,
		CaloriesBurned:   50,
		CalorieGoal:      2000,
		Deviation:        deviation,
		AvgHealthScore:   6,
		TargetWeightKG:   72.5,
	}
	in.NetCalories = in.CaloriesConsumed - in.CaloriesBurned
	if mut != nil {
		mut(&in)
	}
	return in
}

func TestClassify_EmptyDay(t *testing.T) {
	fb := Classify(CoachInput{CalorieGoal: 2000, Deviation: -2000})
	assert.Equal(t, CategoryInfo, fb.Category)
	assert.Equal(t, "Good morning. Log your first meal to start the day.", fb.Message)
	assert.Equal(t, []string{"empty-day"}, fb.Rules)
}

func TestClassify_OnTrackWithGoodNutrition(t *testing.T) {
	fb := Classify(coachInput(50, func(in *CoachInput) { in.AvgHealthScore = 8 }))
	assert.Equal(t, CategorySuccess, fb.Category)
	assert.Contains(t, fb.Message, "On track. Net 2050 kcal.")
	assert.Contains(t, fb.Message, "Strong nutrition choices today.")
	assert.Equal(t, []string{"on-track", "high-nutrition"}, fb.Rules)
	assert.Equal(t, 50, fb.Deviation)
	assert.Equal(t, 2000, fb.CalorieGoal)
}

// TestClassify_SlightlyOverPoorDayNoWorkout: the over-goal warning is not
// touched by either downgrade because they only apply from success.
func TestClassify_SlightlyOverPoorDayNoWorkout(t *testing.T) {
	fb := Classify(coachInput(150, func(in *CoachInput) {
		in.AvgHealthScore = 3
		in.ExerciseCount = 0
		in.CaloriesBurned = 0
	}))
	assert.Equal(t, CategoryWarning, fb.Category)
	assert.Equal(t, "Over goal by 150 kcal. Keep portions tight. "+
		"Nutrition quality is low. Add more whole grains and vegetables. "+
		"No workout logged yet. Plan at least 30 minutes of activity.", fb.Message)
	assert.Equal(t, []string{"slightly-over", "low-nutrition", "no-workout"}, fb.Rules)
}

func TestClassify_Downgrades(t *testing.T) {
	t.Run("low nutrition turns success into warning", func(t *testing.T) {
		fb := Classify(coachInput(0, func(in *CoachInput) { in.AvgHealthScore = 4.9 }))
		assert.Equal(t, CategoryWarning, fb.Category)
	})
	t.Run("scores of exactly 5 and 7 leave the category alone", func(t *testing.T) {
		for _, score := range []float64{5.0, 7.0} {
			fb := Classify(coachInput(0, func(in *CoachInput) { in.AvgHealthScore = score }))
			assert.Equal(t, CategorySuccess, fb.Category, "score %v", score)
			assert.NotContains(t, fb.Rules, "low-nutrition", "score %v", score)
			assert.NotContains(t, fb.Rules, "high-nutrition", "score %v", score)
		}
	})
	t.Run("missing workout turns success into info", func(t *testing.T) {
		fb := Classify(coachInput(0, func(in *CoachInput) {
			in.ExerciseCount = 0
			in.CaloriesBurned = 0
		}))
		assert.Equal(t, CategoryInfo, fb.Category)
		assert.Contains(t, fb.Message, "On track.")
	})
	t.Run("warning from nutrition is not further downgraded", func(t *testing.T) {
		fb := Classify(coachInput(0, func(in *CoachInput) {
			in.AvgHealthScore = 2
			in.ExerciseCount = 0
			in.CaloriesBurned = 0
		}))
		assert.Equal(t, CategoryWarning, fb.Category)
	})
	t.Run("danger is never downgraded", func(t *testing.T) {
		fb := Classify(coachInput(500, func(in *CoachInput) {
			in.AvgHealthScore = 2
			in.ExerciseCount = 0
		}))
		assert.Equal(t, CategoryDanger, fb.Category)
	})
}

func TestClassify_WayOverMentionsTarget(t *testing.T) {
	fb := Classify(coachInput(420, nil))
	assert.Equal(t, CategoryDanger, fb.Category)
	assert.Equal(t, "Clearly over goal: +420 kcal. Focus on your target weight of 72.5 kg.", fb.Message)
}

func TestClassify_Under(t *testing.T) {
	fb := Classify(coachInput(-250, nil))
	assert.Equal(t, CategoryWarning, fb.Category)
	assert.Equal(t, "Under goal by 250 kcal. Make sure you eat enough energy.", fb.Message)
}

// TestClassify_UnderGap: deviations in [-200, -100) match no primary rule.
func TestClassify_UnderGap(t *testing.T) {
	for _, d := range []int{-101, -150, -200} {
		fb := Classify(coachInput(d, nil))
		assert.Equal(t, CategoryInfo, fb.Category, "deviation %d", d)
		assert.Empty(t, fb.Message, "deviation %d", d)
		assert.Empty(t, fb.Rules, "deviation %d", d)
	}

	// Qualifiers still apply inside the gap.
	fb := Classify(coachInput(-150, func(in *CoachInput) { in.AvgHealthScore = 9 }))
	assert.Equal(t, CategoryInfo, fb.Category)
	assert.Equal(t, "Strong nutrition choices today.", fb.Message)
}

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		deviation int
		want      Category
		rule      string
	}{
		{100, CategorySuccess, "on-track"},
		{-100, CategorySuccess, "on-track"},
		{101, CategoryWarning, "slightly-over"},
		{300, CategoryWarning, "slightly-over"},
		{301, CategoryDanger, "way-over"},
		{-201, CategoryWarning, "under"},
	}
	for _, tc := range cases {
		fb := Classify(coachInput(tc.deviation, nil))
		assert.Equal(t, tc.want, fb.Category, "deviation %d", tc.deviation)
		require.NotEmpty(t, fb.Rules, "deviation %d", tc.deviation)
		assert.Equal(t, tc.rule, fb.Rules[0], "deviation %d", tc.deviation)
	}
}

func TestClassify_WorkoutDone(t *testing.T) {
	fb := Classify(coachInput(0, func(in *CoachInput) { in.CaloriesBurned = 350 }))
	assert.Equal(t, CategorySuccess, fb.Category)
	assert.Contains(t, fb.Message, "Workout done: 350 kcal burned.")

	fb = Classify(coachInput(0, func(in *CoachInput) { in.CaloriesBurned = 300 }))
	assert.NotContains(t, fb.Message, "Workout done")
}

// TestClassify_ExerciseOnlyDay: no food means no nutrition or no-workout
// qualifiers, but a big workout is still reported.
func TestClassify_ExerciseOnlyDay(t *testing.T) {
	in := CoachInput{ExerciseCount: 1, CaloriesBurned: 400, NetCalories: -400, CalorieGoal: 2000, Deviation: -2400}
	fb := Classify(in)
	assert.Equal(t, CategoryWarning, fb.Category)
	assert.Equal(t, []string{"under", "workout-done"}, fb.Rules)
}

func TestCoach(t *testing.T) {
	p := makeProfile(Male, 21, 160, 60, 60, Moderate) // goal 2325
	log := DailyLog{
		Foods:     []FoodEntry{{ID: "1", Name: "Meal", Calories: 2400, HealthScore: 6}},
		Exercises: []ExerciseEntry{{ID: "2", Name: "Run", DurationMin: 10, CaloriesBurned: 100}},
	}
	fb := Coach(log, p)
	assert.Equal(t, CategorySuccess, fb.Category)
	assert.Equal(t, -25, fb.Deviation)
	assert.Equal(t, 2300, fb.NetCalories)
}
