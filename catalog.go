package main

import (
	"net/http"

	"github.com/AndreKrottje-Dev/Gerda2/internal/catalog"
	"github.com/gin-gonic/gin"
)

// catalogFood adds the health badge shown next to each food.
type catalogFood struct {
	catalog.FoodItem
	HealthLabel string `json:"health_label"`
}

// listCatalogFoods searches the reference foods.
// GET /api/catalog/foods?category=lunch&q=soup. Both params optional.
func (h *Handler) listCatalogFoods(c *gin.Context) {
	items := h.catalog.Foods(c.Query("category"), c.Query("q"))
	out := make([]catalogFood, 0, len(items))
	for _, f := range items {
		out = append(out, catalogFood{FoodItem: f, HealthLabel: catalog.HealthLabel(f.HealthScore)})
	}
	c.JSON(http.StatusOK, out)
}

// listCatalogExercises searches the reference activities.
// GET /api/catalog/exercises?category=cardio&q=run.
func (h *Handler) listCatalogExercises(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Exercises(c.Query("category"), c.Query("q")))
}
