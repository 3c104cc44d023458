// Package view shapes service results for display.
package view

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/types"
)

// NutritionDisplay holds figures rounded for display: calories to whole
// numbers, macros to one decimal.
type NutritionDisplay struct {
	Calories      string `json:"calories"`
	Protein       string `json:"protein"`
	Fat           string `json:"fat"`
	Carbohydrates string `json:"carbohydrates"`
}

func FormatNutrition(n models.Nutrition) NutritionDisplay {
	return NutritionDisplay{
		Calories:      strconv.FormatFloat(n.Calories, 'f', 0, 64),
		Protein:       strconv.FormatFloat(n.Protein, 'f', 1, 64),
		Fat:           strconv.FormatFloat(n.Fat, 'f', 1, 64),
		Carbohydrates: strconv.FormatFloat(n.Carbohydrates, 'f', 1, 64),
	}
}

type ItemDisplay struct {
	Food         string           `json:"food"`
	PortionGrams string           `json:"portion_grams"`
	Nutrition    NutritionDisplay `json:"nutrition"`
}

// AnalysisDisplay is what the dashboard renders: the totals and one block
// per recognised food.
type AnalysisDisplay struct {
	Totals NutritionDisplay `json:"totals"`
	Items  []ItemDisplay    `json:"items"`
}

// AnalysisResponse is the body returned after a photo is analysed.
type AnalysisResponse struct {
	Status            string            `json:"status"`
	MealID            uuid.UUID         `json:"meal_id"`
	MealType          string            `json:"meal_type"`
	Date              string            `json:"date"`
	FoodItems         []string          `json:"food_items"`
	Nutrition         models.Nutrition  `json:"nutrition"`
	Breakdown         []models.MealItem `json:"breakdown"`
	PortionMultiplier float64           `json:"portion_multiplier"`
	Cached            bool              `json:"cached"`
	Display           AnalysisDisplay   `json:"display"`
}

func Analysis(a *types.MealAnalysis) AnalysisResponse {
	display := AnalysisDisplay{
		Totals: FormatNutrition(a.Nutrition),
		Items:  make([]ItemDisplay, 0, len(a.Breakdown)),
	}
	for _, item := range a.Breakdown {
		display.Items = append(display.Items, ItemDisplay{
			Food:         item.Food,
			PortionGrams: strconv.FormatFloat(item.PortionGrams, 'f', 0, 64),
			Nutrition:    FormatNutrition(item.Nutrition),
		})
	}

	return AnalysisResponse{
		Status:            types.StatusSuccess,
		MealID:            a.MealID,
		MealType:          a.MealType,
		Date:              a.Date,
		FoodItems:         a.FoodItems,
		Nutrition:         a.Nutrition,
		Breakdown:         a.Breakdown,
		PortionMultiplier: a.PortionMultiplier,
		Cached:            a.Cached,
		Display:           display,
	}
}
