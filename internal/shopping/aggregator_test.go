package shopping

import (
	"encoding/json"
	"testing"

	"ah-mealplanner/internal/catalog"
	"ah-mealplanner/internal/nutrition"
	"ah-mealplanner/internal/planner"
)

func testIndex() catalog.Index {
	return catalog.Index{
		Recipes: []catalog.Recipe{
			{
				ID:    1,
				Title: "Pannenkoeken",
				Ingredients: []catalog.Ingredient{
					{Name: "bloem", Quantity: 200, Unit: "g"},
					{Name: "melk", Quantity: 300, Unit: "ml"},
					{Name: "zout", Raw: "snufje zout"},
				},
			},
			{
				ID:    2,
				Title: "Cake",
				Ingredients: []catalog.Ingredient{
					{Name: "Bloem", Quantity: 200, Unit: "gram"},
					{Name: "suiker", Quantity: 150, Unit: "g"},
				},
			},
			{
				ID:    3,
				Title: "Yoghurt met muesli",
				Ingredients: []catalog.Ingredient{
					{Name: "yoghurt", Quantity: 150, Unit: "ml", ProductID: 10},
					{Name: "volle yoghurt", Quantity: 100, Unit: "ml", ProductID: 10},
				},
			},
		},
		Products: []catalog.Product{
			{ID: 10, Name: "Griekse yoghurt", Unit: "ml"},
			{ID: 11, Name: "Pindakaas", Unit: "g", PerHundred: nutrition.Values{Calories: 590}},
		},
	}
}

func planWith(items ...planner.Item) planner.MealPlan {
	return planner.MealPlan{Date: "2025-03-10", Items: items}
}

func TestAggregateMergesSameNameAndUnit(t *testing.T) {
	idx := testIndex()
	plans := []planner.MealPlan{
		planWith(planner.Item{Type: planner.ItemRecipe, ItemID: 1, Servings: 1}),
		planWith(planner.Item{Type: planner.ItemRecipe, ItemID: 2, Servings: 1}),
	}

	list := Aggregate(plans, idx)

	var bloem *Line
	for i := range list.Lines {
		if list.Lines[i].Name == "bloem" {
			bloem = &list.Lines[i]
		}
	}
	if bloem == nil {
		t.Fatal("expected a merged line for bloem")
	}
	if bloem.Quantity != 400 {
		t.Errorf("expected 200 g + 200 gram to merge into 400, got %v", bloem.Quantity)
	}
	if bloem.Unit != "g" {
		t.Errorf("expected normalized unit g, got %q", bloem.Unit)
	}
	if bloem.UnitMismatch {
		t.Errorf("same-unit merge should not be flagged")
	}
}

func TestAggregateScalesByServings(t *testing.T) {
	idx := testIndex()
	plans := []planner.MealPlan{
		planWith(planner.Item{Type: planner.ItemRecipe, ItemID: 1, Servings: 1.5}),
	}

	list := Aggregate(plans, idx)
	for _, line := range list.Lines {
		switch line.Name {
		case "bloem":
			if line.Quantity != 300 {
				t.Errorf("expected bloem scaled to 300, got %v", line.Quantity)
			}
		case "melk":
			if line.Quantity != 450 {
				t.Errorf("expected melk scaled to 450, got %v", line.Quantity)
			}
		}
	}
}

func TestAggregateFlagsUnitMismatch(t *testing.T) {
	idx := catalog.Index{
		Recipes: []catalog.Recipe{
			{
				ID: 1,
				Ingredients: []catalog.Ingredient{
					{Name: "kokosmelk", Quantity: 200, Unit: "ml"},
				},
			},
			{
				ID: 2,
				Ingredients: []catalog.Ingredient{
					{Name: "kokosmelk", Quantity: 1, Unit: "blik"},
				},
			},
		},
	}
	plans := []planner.MealPlan{
		planWith(
			planner.Item{Type: planner.ItemRecipe, ItemID: 1, Servings: 1},
			planner.Item{Type: planner.ItemRecipe, ItemID: 2, Servings: 1},
		),
	}

	list := Aggregate(plans, idx)
	if len(list.Lines) != 2 {
		t.Fatalf("expected 2 separate lines for mismatched units, got %d", len(list.Lines))
	}
	for _, line := range list.Lines {
		if !line.UnitMismatch {
			t.Errorf("line %v %s should be flagged as unit mismatch", line.Quantity, line.Unit)
		}
	}
}

func TestAggregateMergesByLinkedProduct(t *testing.T) {
	idx := testIndex()
	plans := []planner.MealPlan{
		planWith(planner.Item{Type: planner.ItemRecipe, ItemID: 3, Servings: 1}),
	}

	list := Aggregate(plans, idx)
	if len(list.Lines) != 1 {
		t.Fatalf("differently named ingredients linked to one product should merge, got %d lines", len(list.Lines))
	}
	line := list.Lines[0]
	if line.ProductID != 10 || line.Name != "Griekse yoghurt" {
		t.Errorf("expected the product identity, got %+v", line)
	}
	if line.Quantity != 250 {
		t.Errorf("expected 150 + 100 ml, got %v", line.Quantity)
	}
}

func TestAggregateCollectsUnresolved(t *testing.T) {
	idx := testIndex()
	plans := []planner.MealPlan{
		planWith(planner.Item{Type: planner.ItemRecipe, ItemID: 1, Servings: 1}),
		planWith(planner.Item{Type: planner.ItemRecipe, ItemID: 1, Servings: 2}),
	}

	list := Aggregate(plans, idx)
	if len(list.Unresolved) != 1 || list.Unresolved[0] != "snufje zout" {
		t.Errorf("expected a single unresolved entry, got %v", list.Unresolved)
	}
}

func TestAggregateProductItems(t *testing.T) {
	idx := testIndex()
	plans := []planner.MealPlan{
		planWith(planner.Item{Type: planner.ItemProduct, ItemID: 11, Servings: 0.5}),
		planWith(planner.Item{Type: planner.ItemProduct, ItemID: 11, Servings: 1}),
	}

	list := Aggregate(plans, idx)
	if len(list.Lines) != 1 {
		t.Fatalf("expected one merged product line, got %d", len(list.Lines))
	}
	line := list.Lines[0]
	if line.Quantity != 150 || line.Unit != "g" {
		t.Errorf("expected 0.5 and 1 servings of 100 g to merge into 150 g, got %v %s", line.Quantity, line.Unit)
	}
	if line.ProductID != 11 {
		t.Errorf("expected product ID 11, got %d", line.ProductID)
	}
}

func TestAggregateOrdersByDescendingQuantity(t *testing.T) {
	idx := testIndex()
	plans := []planner.MealPlan{
		planWith(
			planner.Item{Type: planner.ItemRecipe, ItemID: 1, Servings: 1},
			planner.Item{Type: planner.ItemRecipe, ItemID: 2, Servings: 1},
		),
	}

	list := Aggregate(plans, idx)
	for i := 1; i < len(list.Lines); i++ {
		if list.Lines[i].Quantity > list.Lines[i-1].Quantity {
			t.Errorf("lines out of order at %d: %v after %v",
				i, list.Lines[i].Quantity, list.Lines[i-1].Quantity)
		}
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	idx := testIndex()
	plans := []planner.MealPlan{
		planWith(
			planner.Item{Type: planner.ItemRecipe, ItemID: 1, Servings: 1},
			planner.Item{Type: planner.ItemRecipe, ItemID: 2, Servings: 1.5},
			planner.Item{Type: planner.ItemProduct, ItemID: 11, Servings: 1},
		),
		planWith(planner.Item{Type: planner.ItemRecipe, ItemID: 3, Servings: 1}),
	}

	first, err := json.Marshal(Aggregate(plans, idx))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	second, err := json.Marshal(Aggregate(plans, idx))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("identical input produced different output:\n%s\n%s", first, second)
	}
}

func TestAggregateConservesQuantity(t *testing.T) {
	idx := testIndex()
	plans := []planner.MealPlan{
		planWith(planner.Item{Type: planner.ItemRecipe, ItemID: 1, Servings: 2}),
		planWith(planner.Item{Type: planner.ItemRecipe, ItemID: 2, Servings: 1}),
	}

	// Two servings of Pannenkoeken (400 bloem + 600 melk) plus one Cake
	// (200 bloem + 150 suiker). Merging must not create or lose quantity.
	want := 400.0 + 600.0 + 200.0 + 150.0

	list := Aggregate(plans, idx)
	var got float64
	for _, line := range list.Lines {
		got += line.Quantity
	}
	if got != want {
		t.Errorf("expected total quantity %v across lines, got %v", want, got)
	}
}

func TestAggregateEmptyPlans(t *testing.T) {
	list := Aggregate(nil, testIndex())
	if len(list.Lines) != 0 || len(list.Unresolved) != 0 {
		t.Errorf("expected an empty list, got %+v", list)
	}
}
