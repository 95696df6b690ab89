package catalog

import "ah-mealplanner/internal/nutrition"

// Product is a grocery product with nutrition per 100 units of its
// reference unit (usually grams or milliliters). Products are read-only to
// the planning core; re-import replaces them wholesale.
type Product struct {
	ID           int64            `json:"id"`
	SourceID     string           `json:"source_id,omitempty"`
	Name         string           `json:"name"`
	Brand        string           `json:"brand,omitempty"`
	Category     string           `json:"category,omitempty"`
	Unit         string           `json:"unit,omitempty"`
	PriceEUR     float64          `json:"price_eur,omitempty"`
	PerHundred   nutrition.Values `json:"per_100"`
	FiberPer100G float64          `json:"fiber_g_per_100,omitempty"`
	SaltPer100G  float64          `json:"salt_g_per_100,omitempty"`
	URL          string           `json:"url,omitempty"`
	ImageURL     string           `json:"image_url,omitempty"`
	LastSeen     string           `json:"last_seen,omitempty"`
}

// Ingredient is one line of a recipe. ProductID is an advisory link to a
// catalog product; zero means unlinked, which is a valid state. An
// ingredient counts as structured when it has a positive quantity and a
// unit; anything else is carried as free text in Raw.
type Ingredient struct {
	ID        int64   `json:"id"`
	RecipeID  int64   `json:"recipe_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	ProductID int64   `json:"product_id,omitempty"`
	Raw       string  `json:"raw,omitempty"`
}

// Structured reports whether the ingredient has a usable quantity and unit.
func (i Ingredient) Structured() bool {
	return i.Quantity > 0 && i.Unit != ""
}

// Recipe is a dish with per-serving nutrition, its ingredient list and tags.
type Recipe struct {
	ID              int64            `json:"id"`
	Source          string           `json:"source,omitempty"`
	SourceID        string           `json:"source_id,omitempty"`
	Title           string           `json:"title"`
	URL             string           `json:"url,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	Servings        int              `json:"servings,omitempty"`
	TotalTimeMin    int              `json:"total_time_min,omitempty"`
	PerServing      nutrition.Values `json:"per_serving"`
	FiberPerServing float64          `json:"fiber_g_per_serving,omitempty"`
	Instructions    string           `json:"instructions,omitempty"`
	Ingredients     []Ingredient     `json:"ingredients,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	LastSeen        string           `json:"last_seen,omitempty"`
}

// Index is an immutable in-memory snapshot of the full catalog, the view
// the planner and shopping aggregator operate on.
type Index struct {
	Recipes  []Recipe
	Products []Product
}

// Empty reports whether the index holds no candidates at all.
func (idx Index) Empty() bool {
	return len(idx.Recipes) == 0 && len(idx.Products) == 0
}

// RecipeByID returns the recipe with the given ID, or nil.
func (idx Index) RecipeByID(id int64) *Recipe {
	for i := range idx.Recipes {
		if idx.Recipes[i].ID == id {
			return &idx.Recipes[i]
		}
	}
	return nil
}

// ProductByID returns the product with the given ID, or nil.
func (idx Index) ProductByID(id int64) *Product {
	for i := range idx.Products {
		if idx.Products[i].ID == id {
			return &idx.Products[i]
		}
	}
	return nil
}
