// Package catalog holds the reference foods and exercise activities users
// pick from when logging. The tables are embedded YAML.
package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"gopkg.in/yaml.v3"
)

//go:embed foods.yaml
var foodsYAML []byte

//go:embed exercises.yaml
var exercisesYAML []byte

var foodCategories = map[string]bool{
	"breakfast": true, "lunch": true, "dinner": true, "snacks": true, "drinks": true,
}

var exerciseCategories = map[string]bool{
	"cardio": true, "strength": true, "sport": true, "relaxation": true,
}

// FoodItem is one reference food with its nutrition per serving.
type FoodItem struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Category    string  `yaml:"category" json:"category"`
	Serving     string  `yaml:"serving" json:"serving"`
	Calories    int     `yaml:"calories" json:"calories"`
	ProteinG    float64 `yaml:"protein_g" json:"protein_g"`
	CarbsG      float64 `yaml:"carbs_g" json:"carbs_g"`
	FatG        float64 `yaml:"fat_g" json:"fat_g"`
	HealthScore int     `yaml:"health_score" json:"health_score"`
}

// Entry scales the item to a number of servings. ID and Timestamp are left
// for the caller.
func (f FoodItem) Entry(servings float64) health.FoodEntry {
	return health.FoodEntry{
		Name:        f.Name,
		Calories:    int(math.Round(float64(f.Calories) * servings)),
		ProteinG:    f.ProteinG * servings,
		CarbsG:      f.CarbsG * servings,
		FatG:        f.FatG * servings,
		HealthScore: f.HealthScore,
	}
}

// ExerciseActivity is a reference workout with its MET value.
type ExerciseActivity struct {
	ID       string  `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Category string  `yaml:"category" json:"category"`
	MET      float64 `yaml:"met" json:"met"`
}

// Catalog is read-only after Load and safe for concurrent use.
type Catalog struct {
	foods     []FoodItem
	exercises []ExerciseActivity
	foodByID  map[string]FoodItem
	exByID    map[string]ExerciseActivity
}

// Load parses and validates the embedded tables.
func Load() (*Catalog, error) {
	return parse(foodsYAML, exercisesYAML)
}

func parse(foodsData, exercisesData []byte) (*Catalog, error) {
	c := &Catalog{
		foodByID: map[string]FoodItem{},
		exByID:   map[string]ExerciseActivity{},
	}
	if err := yaml.Unmarshal(foodsData, &c.foods); err != nil {
		return nil, fmt.Errorf("parse foods: %w", err)
	}
	if err := yaml.Unmarshal(exercisesData, &c.exercises); err != nil {
		return nil, fmt.Errorf("parse exercises: %w", err)
	}

	for _, f := range c.foods {
		switch {
		case f.ID == "" || f.Name == "":
			return nil, fmt.Errorf("food %q: id and name are required", f.ID)
		case !foodCategories[f.Category]:
			return nil, fmt.Errorf("food %s: unknown category %q", f.ID, f.Category)
		case f.Calories < 0 || f.ProteinG < 0 || f.CarbsG < 0 || f.FatG < 0:
			return nil, fmt.Errorf("food %s: negative nutrient value", f.ID)
		case f.HealthScore < 1 || f.HealthScore > 10:
			return nil, fmt.Errorf("food %s: health_score %d out of range", f.ID, f.HealthScore)
		}
		if _, dup := c.foodByID[f.ID]; dup {
			return nil, fmt.Errorf("food %s: duplicate id", f.ID)
		}
		c.foodByID[f.ID] = f
	}

	for _, e := range c.exercises {
		switch {
		case e.ID == "" || e.Name == "":
			return nil, fmt.Errorf("exercise %q: id and name are required", e.ID)
		case !exerciseCategories[e.Category]:
			return nil, fmt.Errorf("exercise %s: unknown category %q", e.ID, e.Category)
		case e.MET <= 0:
			return nil, fmt.Errorf("exercise %s: met must be positive", e.ID)
		}
		if _, dup := c.exByID[e.ID]; dup {
			return nil, fmt.Errorf("exercise %s: duplicate id", e.ID)
		}
		c.exByID[e.ID] = e
	}
	return c, nil
}

// Foods filters by category (empty = all) and a case-insensitive name
// substring (empty = all), keeping table order.
func (c *Catalog) Foods(category, query string) []FoodItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []FoodItem{}
	for _, f := range c.foods {
		if category != "" && f.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(f.Name), q) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Exercises filters like Foods.
func (c *Catalog) Exercises(category, query string) []ExerciseActivity {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []ExerciseActivity{}
	for _, e := range c.exercises {
		if category != "" && e.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Food looks up a food by id.
func (c *Catalog) Food(id string) (FoodItem, bool) {
	f, ok := c.foodByID[id]
	return f, ok
}

// Exercise looks up an activity by id.
func (c *Catalog) Exercise(id string) (ExerciseActivity, bool) {
	e, ok := c.exByID[id]
	return e, ok
}

// HealthLabel is the badge shown next to a food's health score.
func HealthLabel(score int) string {
	switch {
	case score >= 8:
		return "very healthy"
	case score >= 6:
		return "healthy"
	case score >= 4:
		return "moderate"
	default:
		return "unhealthy"
	}
}
