package health

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Category is the tone of a coaching message.
type Category string

const (
	CategoryInfo    Category = "info"
	CategorySuccess Category = "success"
	CategoryWarning Category = "warning"
	CategoryDanger  Category = "danger"
)

// Coach bands in kcal around the goal. These are not the streak tolerance.
const (
	CoachOnTrackBand = 100
	CoachOverBand    = 300
	CoachUnderBand   = 200

	lowNutritionScore  = 5.0
	highNutritionScore = 7.0
	workoutDoneKcal    = 300
)

// CoachInput is what the classifier looks at.
type CoachInput struct {
	FoodCount        int
	ExerciseCount    int
	CaloriesConsumed int
	CaloriesBurned   int
	NetCalories      int
	CalorieGoal      int
	Deviation        int
	AvgHealthScore   float64
	TargetWeightKG   float64
}

// NewCoachInput builds classifier input from a day's balance.
func NewCoachInput(b EnergyBalance, targetWeightKG float64) CoachInput {
	return CoachInput{
		FoodCount:        b.FoodCount,
		ExerciseCount:    b.ExerciseCount,
		CaloriesConsumed: b.CaloriesConsumed,
		CaloriesBurned:   b.CaloriesBurned,
		NetCalories:      b.NetCalories,
		CalorieGoal:      b.CalorieGoal,
		Deviation:        b.Deviation,
		AvgHealthScore:   b.AvgHealthScore,
		TargetWeightKG:   targetWeightKG,
	}
}

// Feedback is the classifier output. The numeric fields are passed through
// for display so callers never re-derive them.
type Feedback struct {
	Category         Category `json:"category"`
	Message          string   `json:"message"`
	CaloriesConsumed int      `json:"calories_consumed"`
	CaloriesBurned   int      `json:"calories_burned"`
	NetCalories      int      `json:"net_calories"`
	CalorieGoal      int      `json:"calorie_goal"`
	Deviation        int      `json:"deviation"`
	Rules            []string `json:"rules"`
}

// coachRule pairs a predicate with its effect on the feedback being built.
// Rules may read the category set by earlier rules, so order matters.
type coachRule struct {
	name  string
	when  func(in CoachInput, fb *feedbackBuilder) bool
	apply func(in CoachInput, fb *feedbackBuilder)
}

type feedbackBuilder struct {
	category Category
	parts    []string
	fired    []string
}

func (fb *feedbackBuilder) say(category Category, msg string) {
	fb.category = category
	fb.parts = append(fb.parts, msg)
}

func (fb *feedbackBuilder) add(msg string) {
	fb.parts = append(fb.parts, msg)
}

// primaryRules: first match wins. A deviation in [-200, -100) matches none
// of them and leaves an empty base message with category info.
var primaryRules = []coachRule{
	{
		name: "empty-day",
		when: func(in CoachInput, _ *feedbackBuilder) bool {
			return in.FoodCount == 0 && in.ExerciseCount == 0
		},
		apply: func(_ CoachInput, fb *feedbackBuilder) {
			fb.say(CategoryInfo, "Good morning. Log your first meal to start the day.")
		},
	},
	{
		name: "on-track",
		when: func(in CoachInput, _ *feedbackBuilder) bool {
			return abs(in.Deviation) <= CoachOnTrackBand
		},
		apply: func(in CoachInput, fb *feedbackBuilder) {
			fb.say(CategorySuccess, fmt.Sprintf("On track. Net %d kcal.", in.NetCalories))
		},
	},
	{
		name: "slightly-over",
		when: func(in CoachInput, _ *feedbackBuilder) bool {
			return in.Deviation > CoachOnTrackBand && in.Deviation <= CoachOverBand
		},
		apply: func(in CoachInput, fb *feedbackBuilder) {
			fb.say(CategoryWarning, fmt.Sprintf("Over goal by %d kcal. Keep portions tight.", in.Deviation))
		},
	},
	{
		name: "way-over",
		when: func(in CoachInput, _ *feedbackBuilder) bool {
			return in.Deviation > CoachOverBand
		},
		apply: func(in CoachInput, fb *feedbackBuilder) {
			fb.say(CategoryDanger, fmt.Sprintf("Clearly over goal: +%d kcal. Focus on your target weight of %s kg.",
				in.Deviation, strconv.FormatFloat(in.TargetWeightKG, 'f', -1, 64)))
		},
	},
	{
		name: "under",
		when: func(in CoachInput, _ *feedbackBuilder) bool {
			return in.Deviation < -CoachUnderBand
		},
		apply: func(in CoachInput, fb *feedbackBuilder) {
			fb.say(CategoryWarning, fmt.Sprintf("Under goal by %d kcal. Make sure you eat enough energy.", -in.Deviation))
		},
	},
}

// qualifierRules all run, in order, after the primary rule.
var qualifierRules = []coachRule{
	{
		name: "low-nutrition",
		when: func(in CoachInput, _ *feedbackBuilder) bool {
			return in.FoodCount > 0 && in.AvgHealthScore < lowNutritionScore
		},
		apply: func(_ CoachInput, fb *feedbackBuilder) {
			fb.add("Nutrition quality is low. Add more whole grains and vegetables.")
			if fb.category == CategorySuccess {
				fb.category = CategoryWarning
			}
		},
	},
	{
		name: "high-nutrition",
		when: func(in CoachInput, _ *feedbackBuilder) bool {
			return in.FoodCount > 0 && in.AvgHealthScore > highNutritionScore
		},
		apply: func(_ CoachInput, fb *feedbackBuilder) {
			fb.add("Strong nutrition choices today.")
		},
	},
	{
		name: "no-workout",
		when: func(in CoachInput, _ *feedbackBuilder) bool {
			return noWorkoutLogged(in)
		},
		apply: func(_ CoachInput, fb *feedbackBuilder) {
			fb.add("No workout logged yet. Plan at least 30 minutes of activity.")
			if fb.category == CategorySuccess {
				fb.category = CategoryInfo
			}
		},
	},
	{
		name: "workout-done",
		when: func(in CoachInput, _ *feedbackBuilder) bool {
			return !noWorkoutLogged(in) && in.CaloriesBurned > workoutDoneKcal
		},
		apply: func(in CoachInput, fb *feedbackBuilder) {
			fb.add(fmt.Sprintf("Workout done: %d kcal burned.", in.CaloriesBurned))
		},
	},
}

func noWorkoutLogged(in CoachInput) bool {
	return in.ExerciseCount == 0 && in.FoodCount > 0
}

// Classify runs the coaching rules over a day.
func Classify(in CoachInput) Feedback {
	fb := &feedbackBuilder{category: CategoryInfo}
	for _, r := range primaryRules {
		if r.when(in, fb) {
			r.apply(in, fb)
			fb.fired = append(fb.fired, r.name)
			break
		}
	}
	for _, r := range qualifierRules {
		if r.when(in, fb) {
			r.apply(in, fb)
			fb.fired = append(fb.fired, r.name)
		}
	}
	return Feedback{
		Category:         fb.category,
		Message:          strings.Join(fb.parts, " "),
		CaloriesConsumed: in.CaloriesConsumed,
		CaloriesBurned:   in.CaloriesBurned,
		NetCalories:      in.NetCalories,
		CalorieGoal:      in.CalorieGoal,
		Deviation:        in.Deviation,
		Rules:            fb.fired,
	}
}

// Coach is Aggregate followed by Classify.
func Coach(log DailyLog, p UserProfile) Feedback {
	b := Aggregate(log, CalculateDailyCalorieGoal(p))
	return Classify(NewCoachInput(b, p.TargetWeightKG))
}

func abs(v int) int {
	return int(math.Abs(float64(v)))
}
