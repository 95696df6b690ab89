package telegram

import (
	"strings"
	"testing"

	"ah-mealplanner/internal/nutrition"
	"ah-mealplanner/internal/planner"
	"ah-mealplanner/internal/shopping"
)

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		input   string
		command string
		args    []string
	}{
		{"/plan", "/plan", nil},
		{"/plan 2025-03-10", "/plan", []string{"2025-03-10"}},
		{"/plan@meal_bot 2025-03-10", "/plan", []string{"2025-03-10"}},
		{"/set exclude noten, vis", "/set", []string{"exclude", "noten,", "vis"}},
		{"  ", "", nil},
	}

	for _, c := range cases {
		command, args := splitCommand(c.input)
		if command != c.command {
			t.Errorf("splitCommand(%q) command = %q, want %q", c.input, command, c.command)
		}
		if len(args) != len(c.args) {
			t.Errorf("splitCommand(%q) args = %v, want %v", c.input, args, c.args)
			continue
		}
		for i := range args {
			if args[i] != c.args[i] {
				t.Errorf("splitCommand(%q) args = %v, want %v", c.input, args, c.args)
				break
			}
		}
	}
}

func TestSplitTerms(t *testing.T) {
	terms := splitTerms("noten, vis , ,pinda")
	want := []string{"noten", "vis", "pinda"}
	if len(terms) != len(want) {
		t.Fatalf("splitTerms = %v, want %v", terms, want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("splitTerms = %v, want %v", terms, want)
		}
	}
}

func TestFormatPlan(t *testing.T) {
	plan := &planner.MealPlan{
		Date: "2025-03-10",
		Items: []planner.Item{
			{Title: "Stamppot", Servings: 1, Nutrition: nutrition.Values{Calories: 700}},
			{Title: "Lasagne", Servings: 1.5, Nutrition: nutrition.Values{Calories: 1125}},
		},
		Totals:    nutrition.Values{Calories: 1825, ProteinG: 95, CarbsG: 160, FatG: 78},
		TargetMet: true,
	}

	out := formatPlan(plan)

	if !strings.Contains(out, "*2025-03-10*") {
		t.Error("Missing date header")
	}
	if !strings.Contains(out, "1. Stamppot (1 servings, 700 kcal)") {
		t.Error("Missing first meal line")
	}
	if !strings.Contains(out, "2. Lasagne (1.5 servings, 1125 kcal)") {
		t.Error("Missing second meal line")
	}
	if !strings.Contains(out, "on target") {
		t.Error("Missing target status")
	}
}

func TestFormatShoppingList(t *testing.T) {
	list := &shopping.ShoppingList{
		Lines: []shopping.Line{
			{Name: "bloem", Quantity: 400, Unit: "g"},
			{Name: "kokosmelk", Quantity: 200, Unit: "ml", UnitMismatch: true},
		},
		Unresolved: []string{"snufje zout"},
	}

	out := formatShoppingList(list)

	if !strings.Contains(out, "🛒 *Shopping List*") {
		t.Error("Missing shopping list header")
	}
	if !strings.Contains(out, "• 400 g bloem") {
		t.Error("Missing merged line")
	}
	if !strings.Contains(out, "• 200 ml kokosmelk ⚠️") {
		t.Error("Missing unit mismatch marker")
	}
	if !strings.Contains(out, "• snufje zout") {
		t.Error("Missing unresolved entry")
	}
}
