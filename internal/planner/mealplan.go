package planner

import (
	"ah-mealplanner/internal/nutrition"
)

// ItemType distinguishes the two kinds of plan items.
type ItemType string

const (
	ItemRecipe  ItemType = "recipe"
	ItemProduct ItemType = "product"
)

// Item is one selected meal: a recipe serving or a product portion.
// For products one serving equals 100 units of the product's reference
// quantity, so Servings 1.5 on a per-100g product means 150 g.
type Item struct {
	Type      ItemType         `json:"item_type"`
	ItemID    int64            `json:"item_id"`
	Title     string           `json:"title"`
	Servings  float64          `json:"servings"`
	Nutrition nutrition.Values `json:"nutrition"` // already scaled by Servings
}

// MealPlan is one day's plan. Plans are immutable once saved; regenerating
// a date replaces the stored plan rather than editing it.
type MealPlan struct {
	ID             int64                  `json:"id,omitempty"`
	Date           string                 `json:"date"`
	TargetCalories float64                `json:"target_calories"`
	MealsPerDay    int                    `json:"meals_per_day"`
	MacroTargets   nutrition.MacroTargets `json:"macro_targets"`
	Items          []Item                 `json:"items"`
	Totals         nutrition.Values       `json:"totals"`
	TargetMet      bool                   `json:"target_met"`
}

// Request carries the user's planning parameters for one day.
type Request struct {
	TargetCalories float64
	MealsPerDay    int
	Exclusions     []string
	MacroSplit     *nutrition.MacroSplit // nil selects the default split
}

// DayResult is one entry of a range generation: either a plan or the error
// that prevented it. Failed days do not abort the rest of the range.
type DayResult struct {
	Date string
	Plan *MealPlan
	Err  error
}
