package nutrition

// Calories per gram of each macro-nutrient.
const (
	KcalPerGramProtein = 4.0
	KcalPerGramCarbs   = 4.0
	KcalPerGramFat     = 9.0
)

// Values holds nutrition figures for one serving or one reference quantity.
type Values struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Add returns the element-wise sum of two nutrition values.
func (v Values) Add(o Values) Values {
	return Values{
		Calories: v.Calories + o.Calories,
		ProteinG: v.ProteinG + o.ProteinG,
		CarbsG:   v.CarbsG + o.CarbsG,
		FatG:     v.FatG + o.FatG,
	}
}

// Scale multiplies all figures by the given factor.
func (v Values) Scale(factor float64) Values {
	return Values{
		Calories: v.Calories * factor,
		ProteinG: v.ProteinG * factor,
		CarbsG:   v.CarbsG * factor,
		FatG:     v.FatG * factor,
	}
}

// MacroSplit expresses target macro ratios as fractions of total calories.
type MacroSplit struct {
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Carbs   float64 `json:"carbs"`
}

// DefaultMacroSplit is the 30% protein / 35% fat / 35% carbs default.
var DefaultMacroSplit = MacroSplit{Protein: 0.30, Fat: 0.35, Carbs: 0.35}

// Total returns the sum of the three ratios.
func (m MacroSplit) Total() float64 {
	return m.Protein + m.Fat + m.Carbs
}

// MacroTargets holds daily gram targets for each macro-nutrient.
type MacroTargets struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// TargetsFor derives gram targets from a calorie target and a macro split:
// grams = calories x ratio / kcal-per-gram of the macro.
func TargetsFor(calories float64, split MacroSplit) MacroTargets {
	return MacroTargets{
		ProteinG: calories * split.Protein / KcalPerGramProtein,
		FatG:     calories * split.Fat / KcalPerGramFat,
		CarbsG:   calories * split.Carbs / KcalPerGramCarbs,
	}
}

// Divide splits the daily targets evenly across a number of meals.
func (t MacroTargets) Divide(meals int) MacroTargets {
	if meals < 1 {
		meals = 1
	}
	n := float64(meals)
	return MacroTargets{
		ProteinG: t.ProteinG / n,
		CarbsG:   t.CarbsG / n,
		FatG:     t.FatG / n,
	}
}
