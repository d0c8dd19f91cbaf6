package health

import "math"

// BMICategory is the WHO bucket a BMI falls into.
type BMICategory string

const (
	Underweight BMICategory = "underweight"
	Healthy     BMICategory = "healthy"
	Overweight  BMICategory = "overweight"
	Obese       BMICategory = "obese"
)

// activityMultipliers maps activity levels to their TDEE multiplier.
// ValidateProfile accepts exactly these levels.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

var activityLabels = map[ActivityLevel]string{
	Sedentary:  "Sedentary (little or no exercise)",
	Light:      "Lightly active (1-3 days/week)",
	Moderate:   "Moderately active (3-5 days/week)",
	Active:     "Active (6-7 days/week)",
	VeryActive: "Very active (twice a day)",
}

// Goal adjustment for a fixed ~0.5 kg/week change. The goal is static: it
// depends on the profile only, never on progress already made.
const goalAdjustment = 500

// CalculateBMI returns weight / height(m)^2 rounded to one decimal.
// Returns 0 when height is not positive.
func CalculateBMI(weightKG, heightCM float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	m := heightCM / 100
	return roundTo(weightKG/(m*m), 1)
}

// CategorizeBMI buckets a BMI. Each boundary belongs to the upper bucket, so
// exactly 18.5 is healthy and exactly 25 is overweight.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Healthy
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// CalculateBMR is Mifflin-St Jeor: 10*kg + 6.25*cm - 5*age, +5 for men and
// -161 for women, rounded to the nearest kcal.
func CalculateBMR(p UserProfile) int {
	bmr := 10*p.CurrentWeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == Male {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr))
}

// ActivityMultiplier returns the TDEE multiplier for level, or 0 for a level
// that never passed ValidateProfile.
func ActivityMultiplier(level ActivityLevel) float64 {
	return activityMultipliers[level]
}

// ActivityLabel is the human description of an activity level.
func ActivityLabel(level ActivityLevel) string {
	return activityLabels[level]
}

// CalculateTDEE scales the rounded BMR by the activity multiplier.
func CalculateTDEE(p UserProfile) int {
	return int(math.Round(float64(CalculateBMR(p)) * ActivityMultiplier(p.ActivityLevel)))
}

// CalculateDailyCalorieGoal is TDEE minus 500 when the user wants to lose
// weight, plus 500 to gain, and TDEE itself for maintenance.
func CalculateDailyCalorieGoal(p UserProfile) int {
	tdee := CalculateTDEE(p)
	switch {
	case p.TargetWeightKG < p.CurrentWeightKG:
		return tdee - goalAdjustment
	case p.TargetWeightKG > p.CurrentWeightKG:
		return tdee + goalAdjustment
	default:
		return tdee
	}
}

// CalculateCaloriesBurned is MET * kg * hours, rounded.
func CalculateCaloriesBurned(met, weightKG float64, durationMin int) int {
	return int(math.Round(met * weightKG * float64(durationMin) / 60))
}

// WeightToGo is the absolute distance to the target weight in kg, one decimal.
func WeightToGo(p UserProfile) float64 {
	return roundTo(math.Abs(p.TargetWeightKG-p.CurrentWeightKG), 1)
}

// Metrics bundles every derived figure for a profile.
type Metrics struct {
	BMI           float64     `json:"bmi"`
	BMICategory   BMICategory `json:"bmi_category"`
	BMR           int         `json:"bmr"`
	TDEE          int         `json:"tdee"`
	CalorieGoal   int         `json:"calorie_goal"`
	ActivityLabel string      `json:"activity_label"`
	WeightToGoKG  float64     `json:"weight_to_go"`
}

// ComputeMetrics runs the whole calculator over a validated profile.
func ComputeMetrics(p UserProfile) Metrics {
	bmi := CalculateBMI(p.CurrentWeightKG, p.HeightCM)
	return Metrics{
		BMI:           bmi,
		BMICategory:   CategorizeBMI(bmi),
		BMR:           CalculateBMR(p),
		TDEE:          CalculateTDEE(p),
		CalorieGoal:   CalculateDailyCalorieGoal(p),
		ActivityLabel: ActivityLabel(p.ActivityLevel),
		WeightToGoKG:  WeightToGo(p),
	}
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
