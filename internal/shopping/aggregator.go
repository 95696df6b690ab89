package shopping

import (
	"fmt"
	"sort"
	"strings"

	"ah-mealplanner/internal/catalog"
	"ah-mealplanner/internal/nutrition"
	"ah-mealplanner/internal/planner"
)

// productReferenceGrams is the quantity one product serving stands for.
const productReferenceGrams = 100.0

type lineKey struct {
	identity string
	unit     string
}

// Aggregate merges the ingredients of the given plans into shopping list
// lines. Lines merge on (identity, unit) where identity is the linked
// product ID when available and the normalized ingredient name otherwise.
// The same identity appearing under different units is kept as separate
// lines flagged with UnitMismatch. Output order is descending quantity,
// then identity, then unit, so identical input always yields an identical
// list.
func Aggregate(plans []planner.MealPlan, idx catalog.Index) *ShoppingList {
	merged := make(map[lineKey]*Line)
	unresolvedSeen := make(map[string]bool)
	var unresolved []string

	addLine := func(identity string, productID int64, name string, qty float64, unit string) {
		key := lineKey{identity: identity, unit: unit}
		if line, ok := merged[key]; ok {
			line.Quantity += qty
			return
		}
		merged[key] = &Line{
			ProductID: productID,
			Name:      name,
			Quantity:  qty,
			Unit:      unit,
		}
	}

	for _, plan := range plans {
		for _, item := range plan.Items {
			switch item.Type {
			case planner.ItemRecipe:
				recipe := idx.RecipeByID(item.ItemID)
				if recipe == nil {
					continue
				}
				for _, ing := range recipe.Ingredients {
					if !ing.Structured() {
						text := strings.TrimSpace(ing.Raw)
						if text == "" {
							text = strings.TrimSpace(ing.Name)
						}
						if text != "" && !unresolvedSeen[text] {
							unresolvedSeen[text] = true
							unresolved = append(unresolved, text)
						}
						continue
					}

					qty := ing.Quantity * item.Servings
					unit := nutrition.NormalizeUnit(ing.Unit)
					identity := normalizeName(ing.Name)
					name := identity
					var productID int64
					if ing.ProductID > 0 {
						productID = ing.ProductID
						identity = fmt.Sprintf("product:%d", ing.ProductID)
						if p := idx.ProductByID(ing.ProductID); p != nil {
							name = p.Name
						}
					}
					addLine(identity, productID, name, qty, unit)
				}
			case planner.ItemProduct:
				product := idx.ProductByID(item.ItemID)
				if product == nil {
					continue
				}
				unit := nutrition.NormalizeUnit(product.Unit)
				if unit == "" {
					unit = "g"
				}
				identity := fmt.Sprintf("product:%d", product.ID)
				addLine(identity, product.ID, product.Name, item.Servings*productReferenceGrams, unit)
			}
		}
	}

	unitsPerIdentity := make(map[string]map[string]bool)
	for key := range merged {
		if unitsPerIdentity[key.identity] == nil {
			unitsPerIdentity[key.identity] = make(map[string]bool)
		}
		unitsPerIdentity[key.identity][key.unit] = true
	}

	type entry struct {
		key  lineKey
		line Line
	}
	entries := make([]entry, 0, len(merged))
	for key, line := range merged {
		if len(unitsPerIdentity[key.identity]) > 1 {
			line.UnitMismatch = true
		}
		entries = append(entries, entry{key: key, line: *line})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].line.Quantity != entries[j].line.Quantity {
			return entries[i].line.Quantity > entries[j].line.Quantity
		}
		if entries[i].key.identity != entries[j].key.identity {
			return entries[i].key.identity < entries[j].key.identity
		}
		return entries[i].key.unit < entries[j].key.unit
	})

	lines := make([]Line, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.line)
	}
	sort.Strings(unresolved)

	return &ShoppingList{Lines: lines, Unresolved: unresolved}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
