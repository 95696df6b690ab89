package planner

import (
	"context"
	"path/filepath"
	"testing"

	"ah-mealplanner/internal/database"
	"ah-mealplanner/internal/nutrition"
)

func testPlanRepo(t *testing.T) *PlanRepository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPlanRepository(db.SQL)
}

func storedPlan(date string) *MealPlan {
	return &MealPlan{
		Date:           date,
		TargetCalories: 2200,
		MealsPerDay:    2,
		Totals:         nutrition.Values{Calories: 2150, ProteinG: 160, CarbsG: 190, FatG: 85},
		TargetMet:      true,
		Items: []Item{
			{Type: ItemRecipe, ItemID: 1, Title: "Stamppot", Servings: 1},
			{Type: ItemRecipe, ItemID: 2, Title: "Lasagne", Servings: 1.5},
		},
	}
}

func TestPlanRepositorySaveAndGetByDate(t *testing.T) {
	repo := testPlanRepo(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, storedPlan("2025-03-10"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero plan ID")
	}

	plan, err := repo.GetByDate(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("GetByDate failed: %v", err)
	}
	if plan == nil {
		t.Fatal("expected a plan, got nil")
	}
	if plan.TargetCalories != 2200 || !plan.TargetMet {
		t.Errorf("unexpected plan: %+v", plan)
	}
	if len(plan.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(plan.Items))
	}
	if plan.Items[0].Title != "Stamppot" || plan.Items[1].Servings != 1.5 {
		t.Errorf("items came back out of order or mangled: %+v", plan.Items)
	}
}

func TestPlanRepositoryGetByDateMissing(t *testing.T) {
	repo := testPlanRepo(t)

	plan, err := repo.GetByDate(context.Background(), "2025-03-10")
	if err != nil {
		t.Fatalf("GetByDate failed: %v", err)
	}
	if plan != nil {
		t.Errorf("expected nil for a date without a plan, got %+v", plan)
	}
}

func TestPlanRepositorySaveReplacesExistingDate(t *testing.T) {
	repo := testPlanRepo(t)
	ctx := context.Background()

	id1, err := repo.Save(ctx, storedPlan("2025-03-10"))
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	replacement := storedPlan("2025-03-10")
	replacement.TargetCalories = 1800
	replacement.Items = replacement.Items[:1]
	id2, err := repo.Save(ctx, replacement)
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("replacing a date should reuse the row, got ids %d and %d", id1, id2)
	}

	plan, err := repo.GetByDate(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("GetByDate failed: %v", err)
	}
	if plan.TargetCalories != 1800 {
		t.Errorf("expected replaced target 1800, got %v", plan.TargetCalories)
	}
	if len(plan.Items) != 1 {
		t.Errorf("old items should be gone, got %d items", len(plan.Items))
	}
}

func TestPlanRepositoryGetByDateRange(t *testing.T) {
	repo := testPlanRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2025-03-12", "2025-03-10", "2025-03-20"} {
		if _, err := repo.Save(ctx, storedPlan(date)); err != nil {
			t.Fatalf("failed to save plan for %s: %v", date, err)
		}
	}

	plans, err := repo.GetByDateRange(ctx, "2025-03-10", 7)
	if err != nil {
		t.Fatalf("GetByDateRange failed: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans in range, got %d", len(plans))
	}
	if plans[0].Date != "2025-03-10" || plans[1].Date != "2025-03-12" {
		t.Errorf("plans should be ordered by date: %s, %s", plans[0].Date, plans[1].Date)
	}

	if _, err := repo.GetByDateRange(ctx, "not-a-date", 7); err == nil {
		t.Error("expected an error for a malformed start date")
	}
}
