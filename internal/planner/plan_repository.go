package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ah-mealplanner/internal/nutrition"
	plandb "ah-mealplanner/internal/planner/db"
)

// PlanRepository is a database-backed repository for meal plans. A date
// holds at most one plan; saving an existing date replaces the old plan
// wholesale (plans are immutable-by-replacement).
type PlanRepository struct {
	queries *plandb.Queries
	db      *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{
		queries: plandb.New(d),
		db:      d,
	}
}

// macrosBlock is the JSON stored in meal_plans.macros_json.
type macrosBlock struct {
	Targets nutrition.MacroTargets `json:"targets"`
	Actual  nutrition.Values       `json:"actual"`
}

// Save stores a plan, replacing any existing plan for the same date.
// Returns the plan's database ID.
func (r *PlanRepository) Save(ctx context.Context, plan *MealPlan) (int64, error) {
	macrosJSON, err := json.Marshal(macrosBlock{Targets: plan.MacroTargets, Actual: plan.Totals})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal macros: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	var targetMet int64
	if plan.TargetMet {
		targetMet = 1
	}
	planID, err := qtx.UpsertMealPlan(ctx, plandb.UpsertMealPlanParams{
		Date:           plan.Date,
		TargetCalories: plan.TargetCalories,
		MealsPerDay:    int64(plan.MealsPerDay),
		MacrosJson:     string(macrosJSON),
		TotalCalories:  plan.Totals.Calories,
		TotalProtein:   plan.Totals.ProteinG,
		TotalCarbs:     plan.Totals.CarbsG,
		TotalFat:       plan.Totals.FatG,
		TargetMet:      targetMet,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save meal plan for %s: %w", plan.Date, err)
	}

	if err := qtx.DeleteMealPlanItems(ctx, planID); err != nil {
		return 0, fmt.Errorf("failed to clear plan items for %s: %w", plan.Date, err)
	}
	for i, item := range plan.Items {
		err := qtx.InsertMealPlanItem(ctx, plandb.InsertMealPlanItemParams{
			MealPlanID: planID,
			MealIndex:  int64(i),
			ItemType:   string(item.Type),
			ItemID:     item.ItemID,
			Servings:   item.Servings,
			Title:      item.Title,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert plan item %q: %w", item.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit meal plan for %s: %w", plan.Date, err)
	}
	return planID, nil
}

// GetByDate retrieves the plan for a single date, or nil when none exists.
func (r *PlanRepository) GetByDate(ctx context.Context, date string) (*MealPlan, error) {
	plans, err := r.GetByDateRange(ctx, date, 1)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, nil
	}
	return &plans[0], nil
}

// GetByDateRange retrieves all plans with start <= date < start+days,
// ordered by date, each with its items in meal order.
func (r *PlanRepository) GetByDateRange(ctx context.Context, start string, days int) ([]MealPlan, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date %q: %w", start, err)
	}
	end := startDate.AddDate(0, 0, days).Format("2006-01-02")

	dbPlans, err := r.queries.ListMealPlansBetween(ctx, plandb.ListMealPlansBetweenParams{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}

	var plans []MealPlan
	for _, p := range dbPlans {
		plan := MealPlan{
			ID:             p.ID,
			Date:           p.Date,
			TargetCalories: p.TargetCalories,
			MealsPerDay:    int(p.MealsPerDay),
			Totals: nutrition.Values{
				Calories: p.TotalCalories,
				ProteinG: p.TotalProtein,
				CarbsG:   p.TotalCarbs,
				FatG:     p.TotalFat,
			},
			TargetMet: p.TargetMet != 0,
		}
		if p.MacrosJson != "" {
			var block macrosBlock
			if err := json.Unmarshal([]byte(p.MacrosJson), &block); err != nil {
				return nil, fmt.Errorf("failed to unmarshal macros for %s: %w", plan.Date, err)
			}
			plan.MacroTargets = block.Targets
		}

		dbItems, err := r.queries.ListMealPlanItems(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to query plan items for %s: %w", plan.Date, err)
		}
		for _, it := range dbItems {
			plan.Items = append(plan.Items, Item{
				Type:     ItemType(it.ItemType),
				ItemID:   it.ItemID,
				Servings: it.Servings,
				Title:    it.Title,
			})
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
