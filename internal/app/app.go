package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ah-mealplanner/internal/catalog"
	"ah-mealplanner/internal/config"
	"ah-mealplanner/internal/database"
	"ah-mealplanner/internal/importer"
	"ah-mealplanner/internal/metrics"
	"ah-mealplanner/internal/planner"
	"ah-mealplanner/internal/shopping"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	db           *database.DB
	catalogRepo  *catalog.Repository
	planRepo     *planner.PlanRepository
	shoppingRepo *shopping.Repository
	metricsStore *metrics.Store
	mealPlanner  *planner.Planner
	fileImporter *importer.Importer
}

// NewApp creates and initializes a new App instance.
func NewApp(cfg *config.Config, db *database.DB) *App {
	catalogRepo := catalog.NewRepository(db.SQL)
	return &App{
		cfg:          cfg,
		db:           db,
		catalogRepo:  catalogRepo,
		planRepo:     planner.NewPlanRepository(db.SQL),
		shoppingRepo: shopping.NewRepository(db.SQL),
		metricsStore: metrics.NewStore(db.SQL),
		mealPlanner:  planner.NewPlanner(planner.DefaultConfig()),
		fileImporter: importer.NewImporter(catalogRepo),
	}
}

// CatalogRepo exposes the catalog repository for surfaces that read the
// index directly.
func (a *App) CatalogRepo() *catalog.Repository {
	return a.catalogRepo
}

// MetricsStore exposes the metrics store.
func (a *App) MetricsStore() *metrics.Store {
	return a.metricsStore
}

// DefaultRequest builds a planning request from the configured defaults.
func (a *App) DefaultRequest() planner.Request {
	split := a.cfg.MacroSplit
	return planner.Request{
		TargetCalories: a.cfg.DefaultCalories,
		MealsPerDay:    a.cfg.MealsPerDay,
		MacroSplit:     &split,
	}
}

// PlanDay generates a plan for one date, saves it and prints it.
func (a *App) PlanDay(ctx context.Context, date string, req planner.Request) error {
	idx, err := a.catalogRepo.LoadIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	started := time.Now()
	plan, err := a.mealPlanner.GenerateDay(idx, date, req)
	if err != nil {
		return err
	}

	id, err := a.planRepo.Save(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	plan.ID = id

	if err := a.metricsStore.Record(ctx, metrics.PlanMetric{
		PlanDate:         plan.Date,
		TargetCalories:   req.TargetCalories,
		AchievedCalories: plan.Totals.Calories,
		ItemCount:        len(plan.Items),
		TargetMet:        plan.TargetMet,
		DurationMS:       time.Since(started).Milliseconds(),
	}); err != nil {
		log.Printf("Warning: failed to record plan metrics: %v", err)
	}

	printPlan(plan)
	return nil
}

// PlanWeek generates plans for a run of consecutive dates. Days that cannot
// be planned are reported but do not fail the run as long as at least one
// day succeeds.
func (a *App) PlanWeek(ctx context.Context, start string, days int, req planner.Request) error {
	idx, err := a.catalogRepo.LoadIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	started := time.Now()
	results, err := a.mealPlanner.GenerateRange(idx, start, days, req)
	if err != nil {
		return err
	}

	planned := 0
	for _, res := range results {
		if res.Err != nil {
			log.Printf("Could not plan %s: %v", res.Date, res.Err)
			continue
		}
		id, err := a.planRepo.Save(ctx, res.Plan)
		if err != nil {
			return fmt.Errorf("failed to save meal plan for %s: %w", res.Date, err)
		}
		res.Plan.ID = id
		planned++

		if err := a.metricsStore.Record(ctx, metrics.PlanMetric{
			PlanDate:         res.Plan.Date,
			TargetCalories:   req.TargetCalories,
			AchievedCalories: res.Plan.Totals.Calories,
			ItemCount:        len(res.Plan.Items),
			TargetMet:        res.Plan.TargetMet,
			DurationMS:       time.Since(started).Milliseconds(),
		}); err != nil {
			log.Printf("Warning: failed to record plan metrics: %v", err)
		}
	}
	if planned == 0 {
		return fmt.Errorf("no days could be planned in range starting %s", start)
	}

	for _, res := range results {
		if res.Plan != nil {
			printPlan(res.Plan)
		}
	}
	fmt.Printf("\nPlanned %d of %d days.\n", planned, len(results))
	return nil
}

// ShoppingList aggregates saved plans in the date range into a shopping
// list, saves it and prints it.
func (a *App) ShoppingList(ctx context.Context, start string, days int) error {
	plans, err := a.planRepo.GetByDateRange(ctx, start, days)
	if err != nil {
		return fmt.Errorf("failed to load meal plans: %w", err)
	}
	if len(plans) == 0 {
		return fmt.Errorf("no saved meal plans in range starting %s", start)
	}

	idx, err := a.catalogRepo.LoadIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	list := shopping.Aggregate(plans, idx)
	list.StartDate = start
	list.Days = days

	if _, err := a.shoppingRepo.Save(ctx, list); err != nil {
		log.Printf("Warning: failed to save shopping list: %v", err)
	}

	fmt.Printf("\n=== SHOPPING LIST (%s, %d days) ===\n", start, days)
	for _, line := range list.Lines {
		flag := ""
		if line.UnitMismatch {
			flag = "  [check unit]"
		}
		fmt.Printf("- %g %s %s%s\n", line.Quantity, line.Unit, line.Name, flag)
	}
	if len(list.Unresolved) > 0 {
		fmt.Println("\nTo taste / unresolved:")
		for _, u := range list.Unresolved {
			fmt.Printf("- %s\n", u)
		}
	}
	return nil
}

// ImportProducts loads products from a JSON or CSV export file.
func (a *App) ImportProducts(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var count int
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		count, err = a.fileImporter.ImportProductsCSV(ctx, f)
	default:
		count, err = a.fileImporter.ImportProductsJSON(ctx, f)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d products from %s.\n", count, path)
	return nil
}

// ImportRecipes loads recipes from a JSON export file.
func (a *App) ImportRecipes(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	count, err := a.fileImporter.ImportRecipesJSON(ctx, f)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d recipes from %s.\n", count, path)
	return nil
}

// LinkProducts matches ingredients to catalog products by name and fills in
// nutrition for recipes that have none, derived from the linked products.
func (a *App) LinkProducts(ctx context.Context) error {
	linked, err := a.catalogRepo.LinkIngredients(ctx)
	if err != nil {
		return fmt.Errorf("failed to link ingredients: %w", err)
	}
	fmt.Printf("Linked %d ingredients to products.\n", linked)

	idx, err := a.catalogRepo.LoadIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	computed := 0
	for _, rec := range idx.Recipes {
		if rec.PerServing.Calories > 0 {
			continue
		}
		values, err := a.catalogRepo.ComputeRecipeNutrition(ctx, rec.ID)
		if err != nil {
			log.Printf("Warning: could not compute nutrition for '%s': %v", rec.Title, err)
			continue
		}
		if values.Calories > 0 {
			computed++
		}
	}
	fmt.Printf("Computed nutrition for %d recipes.\n", computed)
	return nil
}

// MetricsSummary prints plan generation stats for the last N days.
func (a *App) MetricsSummary(ctx context.Context, days int) error {
	summaries, err := a.metricsStore.GetDailySummary(ctx, days)
	if err != nil {
		return fmt.Errorf("failed to load metrics: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No plan metrics recorded.")
		return nil
	}

	fmt.Println("\n=== PLAN METRICS ===")
	for _, s := range summaries {
		fmt.Printf("%s: %d runs, %d on target, avg deviation %.0f kcal, avg %.0f ms\n",
			s.PlanDate, s.Runs, s.TargetMetRuns, s.AvgDeviation, s.AvgDurationMS)
	}
	return nil
}

// MetricsCleanup removes plan metrics older than the given number of days.
func (a *App) MetricsCleanup(ctx context.Context, olderThanDays int) error {
	deleted, err := a.metricsStore.Cleanup(ctx, olderThanDays)
	if err != nil {
		return fmt.Errorf("failed to clean up metrics: %w", err)
	}
	fmt.Printf("Deleted %d metric records older than %d days.\n", deleted, olderThanDays)
	return nil
}

// ShoppingCleanup removes saved shopping lists older than the given number of days.
func (a *App) ShoppingCleanup(ctx context.Context, olderThanDays int) error {
	deleted, err := a.shoppingRepo.DeleteOlderThan(ctx, time.Now().AddDate(0, 0, -olderThanDays))
	if err != nil {
		return fmt.Errorf("failed to clean up shopping lists: %w", err)
	}
	fmt.Printf("Deleted %d shopping lists older than %d days.\n", deleted, olderThanDays)
	return nil
}

func printPlan(plan *planner.MealPlan) {
	fmt.Printf("\n=== MEAL PLAN %s ===\n", plan.Date)
	for i, item := range plan.Items {
		fmt.Printf("Meal %d: %s (%.2g servings, %.0f kcal)\n",
			i+1, item.Title, item.Servings, item.Nutrition.Calories)
	}
	status := "off target"
	if plan.TargetMet {
		status = "on target"
	}
	fmt.Printf("Total: %.0f kcal, %.0f g protein, %.0f g carbs, %.0f g fat (%s)\n",
		plan.Totals.Calories, plan.Totals.ProteinG, plan.Totals.CarbsG, plan.Totals.FatG, status)
}
