package planner

import (
	"fmt"
	"math"
	"sort"
	"time"

	"ah-mealplanner/internal/catalog"
	"ah-mealplanner/internal/nutrition"
)

// Config holds the scoring weights and bounds of the greedy selection.
// The defaults are documented, tunable values rather than fixed law.
type Config struct {
	CalorieWeight float64 // weight of the per-slot calorie deviation
	MacroWeight   float64 // weight of each macro gram deviation, summed over the three macros
	RepeatPenalty float64 // penalty per prior use of a candidate that day, times CalorieWeight
	Tolerance     float64 // fraction of the target that still counts as met
	MinMultiplier float64 // lower bound for serving scaling
	MaxMultiplier float64 // upper bound for serving scaling
}

// DefaultConfig returns the standard planner configuration.
func DefaultConfig() Config {
	return Config{
		CalorieWeight: 1.0,
		MacroWeight:   0.33,
		RepeatPenalty: 0.5,
		Tolerance:     0.05,
		MinMultiplier: 0.5,
		MaxMultiplier: 2.0,
	}
}

// Planner selects meal items to approximate daily calorie and macro
// targets. It is stateless between calls and safe for concurrent use; all
// selection happens over the immutable index snapshot it is handed.
type Planner struct {
	cfg Config
}

// NewPlanner creates a Planner with the given configuration.
func NewPlanner(cfg Config) *Planner {
	return &Planner{cfg: cfg}
}

// candidate is a selectable item with its single-serving nutrition.
type candidate struct {
	itemType ItemType
	id       int64
	title    string
	values   nutrition.Values
}

func (c candidate) key() string {
	return fmt.Sprintf("%s:%d", c.itemType, c.id)
}

// GenerateDay builds one day's plan from the index. The request is
// validated first; a malformed target aborts before any selection. When
// exclusion filtering leaves no candidates the day fails with
// InsufficientCandidatesError rather than producing an empty plan.
func (p *Planner) GenerateDay(idx catalog.Index, date string, req Request) (*MealPlan, error) {
	split, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	filtered, err := catalog.Filter(idx, req.Exclusions)
	if err != nil {
		return nil, &InsufficientCandidatesError{Date: date, Exclusions: req.Exclusions}
	}

	recipes, products := buildCandidates(filtered)
	if len(recipes) == 0 && len(products) == 0 {
		return nil, &InsufficientCandidatesError{Date: date, Exclusions: req.Exclusions}
	}

	budgets := slotBudgets(req.TargetCalories, req.MealsPerDay)
	dayTargets := nutrition.TargetsFor(req.TargetCalories, split)
	perMeal := dayTargets.Divide(req.MealsPerDay)

	plan := &MealPlan{
		Date:           date,
		TargetCalories: req.TargetCalories,
		MealsPerDay:    req.MealsPerDay,
		MacroTargets:   dayTargets,
	}

	uses := make(map[string]int)
	for _, budget := range budgets {
		// Recipes win over raw products whenever any recipe is viable.
		chosen, servings := p.pickForSlot(recipes, budget, perMeal, uses)
		if chosen == nil {
			chosen, servings = p.pickForSlot(products, budget, perMeal, uses)
		}
		if chosen == nil {
			return nil, &InsufficientCandidatesError{Date: date, Exclusions: req.Exclusions}
		}

		plan.Items = append(plan.Items, Item{
			Type:      chosen.itemType,
			ItemID:    chosen.id,
			Title:     chosen.title,
			Servings:  servings,
			Nutrition: round1Values(chosen.values.Scale(servings)),
		})
		uses[chosen.key()]++
	}

	for _, it := range plan.Items {
		plan.Totals = plan.Totals.Add(it.Nutrition)
	}
	plan.Totals = round1Values(plan.Totals)
	plan.TargetMet = math.Abs(plan.Totals.Calories-req.TargetCalories) <= p.cfg.Tolerance*req.TargetCalories

	return plan, nil
}

// GenerateRange plans each date of a consecutive range independently.
// A malformed request aborts the whole call; an individual day running out
// of candidates is recorded in its DayResult and the range continues.
func (p *Planner) GenerateRange(idx catalog.Index, start string, days int, req Request) ([]DayResult, error) {
	if _, err := validateRequest(req); err != nil {
		return nil, err
	}
	if days <= 0 {
		return nil, &InvalidTargetError{Reason: fmt.Sprintf("day count must be positive, got %d", days)}
	}
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, &InvalidTargetError{Reason: fmt.Sprintf("start date %q is not an ISO date", start)}
	}

	results := make([]DayResult, 0, days)
	for i := 0; i < days; i++ {
		date := startDate.AddDate(0, 0, i).Format("2006-01-02")
		plan, err := p.GenerateDay(idx, date, req)
		results = append(results, DayResult{Date: date, Plan: plan, Err: err})
	}
	return results, nil
}

// pickForSlot returns the pool candidate minimizing the slot score, with
// its serving multiplier. The first pass scores everything at one serving;
// if the winner's calories fall outside the slot tolerance a second pass
// re-scores with a bounded multiplier fitted to the budget.
func (p *Planner) pickForSlot(pool []candidate, budget float64, perMeal nutrition.MacroTargets, uses map[string]int) (*candidate, float64) {
	best := p.bestOf(pool, budget, perMeal, uses, func(candidate) float64 { return 1.0 })
	if best == nil {
		return nil, 0
	}

	if math.Abs(best.values.Calories-budget) <= p.cfg.Tolerance*budget {
		return best, 1.0
	}

	scaled := p.bestOf(pool, budget, perMeal, uses, func(c candidate) float64 {
		m := budget / c.values.Calories
		return math.Round(clamp(m, p.cfg.MinMultiplier, p.cfg.MaxMultiplier)*100) / 100
	})
	if scaled == nil {
		return best, 1.0
	}
	m := math.Round(clamp(budget/scaled.values.Calories, p.cfg.MinMultiplier, p.cfg.MaxMultiplier)*100) / 100
	return scaled, m
}

// bestOf scans the pool in ascending ID order so equal scores resolve to
// the lowest identifier. Candidates without calories are never selected.
func (p *Planner) bestOf(pool []candidate, budget float64, perMeal nutrition.MacroTargets, uses map[string]int, multiplier func(candidate) float64) *candidate {
	var best *candidate
	bestScore := math.Inf(1)
	for i := range pool {
		c := pool[i]
		if c.values.Calories <= 0 {
			continue
		}
		v := c.values.Scale(multiplier(c))
		score := p.cfg.CalorieWeight*math.Abs(budget-v.Calories) +
			p.cfg.MacroWeight*(math.Abs(perMeal.ProteinG-v.ProteinG)+
				math.Abs(perMeal.FatG-v.FatG)+
				math.Abs(perMeal.CarbsG-v.CarbsG)) +
			p.cfg.RepeatPenalty*p.cfg.CalorieWeight*float64(uses[c.key()])
		if score < bestScore {
			best = &pool[i]
			bestScore = score
		}
	}
	return best
}

func validateRequest(req Request) (nutrition.MacroSplit, error) {
	if req.TargetCalories <= 0 {
		return nutrition.MacroSplit{}, &InvalidTargetError{
			Reason: fmt.Sprintf("calorie target must be positive, got %g", req.TargetCalories)}
	}
	if req.MealsPerDay <= 0 {
		return nutrition.MacroSplit{}, &InvalidTargetError{
			Reason: fmt.Sprintf("meal count must be positive, got %d", req.MealsPerDay)}
	}
	split := nutrition.DefaultMacroSplit
	if req.MacroSplit != nil {
		split = *req.MacroSplit
		if split.Total() <= 0 || split.Protein < 0 || split.Fat < 0 || split.Carbs < 0 {
			return nutrition.MacroSplit{}, &InvalidTargetError{
				Reason: fmt.Sprintf("macro ratios must sum to a positive total, got %+v", split)}
		}
	}
	return split, nil
}

// buildCandidates converts the filtered index into scoring candidates,
// sorted by ID for reproducible tie-breaking. A product candidate's single
// serving is 100 units of its reference quantity.
func buildCandidates(idx catalog.Index) (recipes, products []candidate) {
	for _, r := range idx.Recipes {
		recipes = append(recipes, candidate{
			itemType: ItemRecipe,
			id:       r.ID,
			title:    r.Title,
			values:   r.PerServing,
		})
	}
	for _, p := range idx.Products {
		products = append(products, candidate{
			itemType: ItemProduct,
			id:       p.ID,
			title:    p.Name,
			values:   p.PerHundred,
		})
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].id < recipes[j].id })
	sort.Slice(products, func(i, j int) bool { return products[i].id < products[j].id })
	return recipes, products
}

// slotBudgets splits the daily target into whole-kcal per-meal budgets,
// handing the remainder to the first meals.
func slotBudgets(target float64, meals int) []float64 {
	total := int(math.Round(target))
	base := total / meals
	rem := total % meals

	budgets := make([]float64, meals)
	for i := range budgets {
		budgets[i] = float64(base)
		if i < rem {
			budgets[i]++
		}
	}
	return budgets
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round1Values(v nutrition.Values) nutrition.Values {
	return nutrition.Values{
		Calories: round1(v.Calories),
		ProteinG: round1(v.ProteinG),
		CarbsG:   round1(v.CarbsG),
		FatG:     round1(v.FatG),
	}
}
