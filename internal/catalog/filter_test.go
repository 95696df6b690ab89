package catalog

import (
	"errors"
	"testing"

	"ah-mealplanner/internal/nutrition"
)

func testIndex() Index {
	return Index{
		Recipes: []Recipe{
			{
				ID:    1,
				Title: "Notentaart",
				Tags:  []string{"dessert"},
				Ingredients: []Ingredient{
					{Name: "walnoten", Quantity: 200, Unit: "g"},
				},
			},
			{
				ID:    2,
				Title: "Kipsalade",
				Tags:  []string{"lunch", "salade"},
				Ingredients: []Ingredient{
					{Name: "kipfilet", Quantity: 300, Unit: "g"},
					{Name: "sla", Quantity: 1, Unit: "st"},
				},
			},
			{
				ID:    3,
				Title: "Pasta pesto",
				Tags:  []string{"diner"},
				Ingredients: []Ingredient{
					{Name: "pasta", Quantity: 400, Unit: "g"},
					{Name: "pijnboompitten", Quantity: 50, Unit: "g"},
				},
			},
		},
		Products: []Product{
			{ID: 1, Name: "Pindakaas", Category: "broodbeleg"},
			{ID: 2, Name: "Griekse yoghurt", Category: "zuivel"},
		},
	}
}

func TestFilterEmptyExclusions(t *testing.T) {
	idx := testIndex()
	got, err := Filter(idx, nil)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(got.Recipes) != 3 || len(got.Products) != 2 {
		t.Errorf("expected index unchanged, got %d recipes, %d products", len(got.Recipes), len(got.Products))
	}
}

func TestFilterByTitleTagAndIngredient(t *testing.T) {
	idx := testIndex()

	t.Run("Title", func(t *testing.T) {
		got, err := Filter(idx, []string{"noten"})
		if err != nil {
			t.Fatalf("Filter failed: %v", err)
		}
		for _, r := range got.Recipes {
			if r.ID == 1 {
				t.Errorf("recipe 'Notentaart' should be excluded by 'noten'")
			}
		}
	})

	t.Run("Tag", func(t *testing.T) {
		got, err := Filter(idx, []string{"SALADE"})
		if err != nil {
			t.Fatalf("Filter failed: %v", err)
		}
		for _, r := range got.Recipes {
			if r.ID == 2 {
				t.Errorf("recipe tagged 'salade' should be excluded case-insensitively")
			}
		}
	})

	t.Run("Ingredient", func(t *testing.T) {
		got, err := Filter(idx, []string{"pijnboom"})
		if err != nil {
			t.Fatalf("Filter failed: %v", err)
		}
		for _, r := range got.Recipes {
			if r.ID == 3 {
				t.Errorf("recipe containing 'pijnboompitten' should be excluded")
			}
		}
	})

	t.Run("ProductName", func(t *testing.T) {
		got, err := Filter(idx, []string{"pinda"})
		if err != nil {
			t.Fatalf("Filter failed: %v", err)
		}
		for _, p := range got.Products {
			if p.ID == 1 {
				t.Errorf("product 'Pindakaas' should be excluded by 'pinda'")
			}
		}
	})
}

func TestFilterRemovesEverything(t *testing.T) {
	idx := Index{
		Recipes: []Recipe{
			{ID: 1, Title: "Notentaart"},
			{ID: 2, Title: "Notenmix salade"},
		},
	}
	_, err := Filter(idx, []string{"noten"})
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestFilterEmptyIndex(t *testing.T) {
	_, err := Filter(Index{}, nil)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates for empty index, got %v", err)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	idx := testIndex()
	_, err := Filter(idx, []string{"noten", "pinda"})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(idx.Recipes) != 3 || len(idx.Products) != 2 {
		t.Errorf("input index was mutated")
	}
}

func TestMatchProduct(t *testing.T) {
	products := []Product{
		{ID: 5, Name: "AH Kipfilet naturel", PerHundred: nutrition.Values{Calories: 107}},
		{ID: 3, Name: "Kipfilet", PerHundred: nutrition.Values{Calories: 105}},
		{ID: 9, Name: "Tomaten"},
	}

	t.Run("PrefersShortestName", func(t *testing.T) {
		m := MatchProduct("kipfilet", products)
		if m == nil || m.ID != 3 {
			t.Fatalf("expected product 3, got %+v", m)
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		if m := MatchProduct("couscous", products); m != nil {
			t.Fatalf("expected no match, got %+v", m)
		}
	})

	t.Run("EmptyName", func(t *testing.T) {
		if m := MatchProduct("  ", products); m != nil {
			t.Fatalf("expected no match for blank name, got %+v", m)
		}
	})
}
