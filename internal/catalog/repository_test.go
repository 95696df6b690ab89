package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"ah-mealplanner/internal/database"
	"ah-mealplanner/internal/nutrition"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.SQL)
}

func TestUpsertProductIsIdempotent(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	p := Product{
		SourceID:   "wi12345",
		Name:       "Halfvolle melk",
		Unit:       "ml",
		PerHundred: nutrition.Values{Calories: 46, ProteinG: 3.4, CarbsG: 4.7, FatG: 1.5},
	}

	id1, err := repo.UpsertProduct(ctx, p)
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	// Insert another product so the conflict path below cannot get away
	// with returning the connection's last insert rowid.
	otherID, err := repo.UpsertProduct(ctx, Product{SourceID: "wi99999", Name: "Volle melk"})
	if err != nil {
		t.Fatalf("failed to insert second product: %v", err)
	}
	if otherID == id1 {
		t.Fatalf("distinct products share id %d", id1)
	}

	p.Name = "Halfvolle melk 1L"
	id2, err := repo.UpsertProduct(ctx, p)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("upsert by source_id should reuse the row, got ids %d and %d", id1, id2)
	}

	idx, err := repo.LoadIndex(ctx)
	if err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}
	if len(idx.Products) != 2 {
		t.Fatalf("expected 2 products after double upsert, got %d", len(idx.Products))
	}
	if idx.Products[0].Name != "Halfvolle melk 1L" {
		t.Errorf("upsert should update the name, got %q", idx.Products[0].Name)
	}
}

func TestInsertRecipeAndLoadIndex(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	rec := Recipe{
		Source:     "test",
		SourceID:   "r1",
		Title:      "Pannenkoeken",
		Servings:   4,
		PerServing: nutrition.Values{Calories: 350, ProteinG: 12, CarbsG: 45, FatG: 13},
		Ingredients: []Ingredient{
			{Name: "bloem", Quantity: 200, Unit: "g"},
			{Name: "zout", Raw: "snufje zout"},
		},
		Tags: []string{"ontbijt", "zoet"},
	}

	id, err := repo.InsertRecipe(ctx, rec)
	if err != nil {
		t.Fatalf("InsertRecipe failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero recipe ID")
	}

	idx, err := repo.LoadIndex(ctx)
	if err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}
	if len(idx.Recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(idx.Recipes))
	}

	loaded := idx.Recipes[0]
	if loaded.Title != "Pannenkoeken" || loaded.PerServing.Calories != 350 {
		t.Errorf("unexpected recipe: %+v", loaded)
	}
	if len(loaded.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(loaded.Ingredients))
	}
	if !loaded.Ingredients[0].Structured() {
		t.Errorf("bloem should be structured: %+v", loaded.Ingredients[0])
	}
	if loaded.Ingredients[1].Structured() {
		t.Errorf("snufje zout should not be structured: %+v", loaded.Ingredients[1])
	}
	if len(loaded.Tags) != 2 {
		t.Errorf("expected 2 tags, got %v", loaded.Tags)
	}
}

func TestLinkIngredientsAndComputeNutrition(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if _, err := repo.UpsertProduct(ctx, Product{
		SourceID:   "wi1",
		Name:       "bloem",
		Unit:       "g",
		PerHundred: nutrition.Values{Calories: 360, ProteinG: 10, CarbsG: 75, FatG: 1},
	}); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	recipeID, err := repo.InsertRecipe(ctx, Recipe{
		Source:   "test",
		SourceID: "r1",
		Title:    "Bloemmix",
		Servings: 2,
		Ingredients: []Ingredient{
			{Name: "tarwebloem", Quantity: 200, Unit: "g"},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}

	linked, err := repo.LinkIngredients(ctx)
	if err != nil {
		t.Fatalf("LinkIngredients failed: %v", err)
	}
	if linked != 1 {
		t.Errorf("expected 1 linked ingredient, got %d", linked)
	}

	values, err := repo.ComputeRecipeNutrition(ctx, recipeID)
	if err != nil {
		t.Fatalf("ComputeRecipeNutrition failed: %v", err)
	}
	// 200 g of 360 kcal per 100 g over 2 servings.
	if values.Calories != 360 {
		t.Errorf("expected 360 kcal per serving, got %v", values.Calories)
	}

	idx, err := repo.LoadIndex(ctx)
	if err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}
	if idx.Recipes[0].PerServing.Calories != 360 {
		t.Errorf("computed nutrition should be persisted, got %v", idx.Recipes[0].PerServing.Calories)
	}
	if idx.Recipes[0].Ingredients[0].ProductID == 0 {
		t.Error("ingredient should be linked to the product")
	}
}
