package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, c.Foods("", ""))
	assert.NotEmpty(t, c.Exercises("", ""))

	for _, cat := range []string{"breakfast", "lunch", "dinner", "snacks", "drinks"} {
		assert.NotEmpty(t, c.Foods(cat, ""), cat)
	}
	for _, cat := range []string{"cardio", "strength", "sport", "relaxation"} {
		assert.NotEmpty(t, c.Exercises(cat, ""), cat)
	}
}

func TestFoods_Filter(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	apples := c.Foods("", "APPLE")
	require.NotEmpty(t, apples)
	for _, f := range apples {
		assert.Contains(t, f.Name, "pple")
	}

	snackApples := c.Foods("snacks", "apple")
	require.Len(t, snackApples, 1)
	assert.Equal(t, "snk_008", snackApples[0].ID)

	assert.Empty(t, c.Foods("dinner", "stroopwafel"))
	assert.NotNil(t, c.Foods("nope", ""))
}

func TestLookups(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	f, ok := c.Food("brk_018")
	require.True(t, ok)
	assert.Equal(t, "Oatmeal", f.Name)
	assert.Equal(t, 150, f.Calories)

	e, ok := c.Exercise("car_008")
	require.True(t, ok)
	assert.Equal(t, 6.8, e.MET)

	_, ok = c.Food("missing")
	assert.False(t, ok)
	_, ok = c.Exercise("brk_018")
	assert.False(t, ok)
}

func TestParse_RejectsBadRows(t *testing.T) {
	ex := []byte("- {id: car_001, name: Run, category: cardio, met: 8}\n")

	cases := map[string]string{
		"health score":   "- {id: x, name: X, category: lunch, calories: 10, health_score: 11}\n",
		"category":       "- {id: x, name: X, category: brunch, calories: 10, health_score: 5}\n",
		"negative kcal":  "- {id: x, name: X, category: lunch, calories: -1, health_score: 5}\n",
		"duplicate id":   "- {id: x, name: X, category: lunch, health_score: 5}\n- {id: x, name: Y, category: lunch, health_score: 5}\n",
		"missing name":   "- {id: x, category: lunch, health_score: 5}\n",
		"malformed yaml": "- {id: x, name: [\n",
	}
	for name, foods := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parse([]byte(foods), ex)
			assert.Error(t, err)
		})
	}

	_, err := parse([]byte("[]"), []byte("- {id: y, name: Y, category: cardio, met: 0}\n"))
	assert.Error(t, err, "met must be positive")
}

func TestHealthLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{10, "very healthy"},
		{8, "very healthy"},
		{7, "healthy"},
		{6, "healthy"},
		{5, "moderate"},
		{4, "moderate"},
		{3, "unhealthy"},
		{1, "unhealthy"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HealthLabel(tt.score), "score %d", tt.score)
	}
}

func TestFoodItem_Entry(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	f, ok := c.Food("brk_021") // apple, 52 kcal
	require.True(t, ok)

	e := f.Entry(1.5)
	assert.Equal(t, "Apple", e.Name)
	assert.Equal(t, 78, e.Calories)
	assert.Equal(t, 21.0, e.CarbsG)
	assert.Equal(t, 10, e.HealthScore)
	assert.Empty(t, e.ID)
}
