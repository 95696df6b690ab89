package nutrition

import "strings"

// unitAliases maps canonical unit names to their accepted spellings.
// Dutch kitchen units included because most ingested recipes use them.
var unitAliases = map[string][]string{
	"g":    {"g", "gram", "grams", "gr", "gr."},
	"kg":   {"kg", "kilogram", "kilo"},
	"ml":   {"ml", "milliliter", "milliliters"},
	"l":    {"l", "liter", "liters"},
	"el":   {"el", "eetlepel", "eetlepels", "tbsp"},
	"tl":   {"tl", "theelepel", "theelepels", "tsp"},
	"st":   {"st", "stuk", "stuks", "stuk(s)", "stukje", "stukjes"},
	"blik": {"blik", "blikje", "blikjes"},
	"pak":  {"pak", "pakje", "pakjes"},
}

// NormalizeUnit lowercases a unit and folds known aliases onto a canonical
// name. Unknown units are returned lowercased rather than rejected.
func NormalizeUnit(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	if u == "" {
		return ""
	}
	for canonical, aliases := range unitAliases {
		for _, a := range aliases {
			if u == a {
				return canonical
			}
		}
	}
	return u
}

// UnitToGrams converts a quantity in the given unit to grams. Volume units
// assume a density of 1 g/ml. Piece and pack units have no known weight and
// return false; callers must treat those as unresolvable.
func UnitToGrams(quantity float64, unit string) (float64, bool) {
	switch NormalizeUnit(unit) {
	case "g":
		return quantity, true
	case "kg":
		return quantity * 1000.0, true
	case "ml":
		return quantity, true
	case "l":
		return quantity * 1000.0, true
	case "el":
		return quantity * 15.0, true
	case "tl":
		return quantity * 5.0, true
	default:
		return 0, false
	}
}
