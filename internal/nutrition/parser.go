package nutrition

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedIngredient is the structured form of a free-text ingredient line.
// Quantity and Unit are zero-valued when the line could not be parsed.
type ParsedIngredient struct {
	Name     string
	Quantity float64
	Unit     string
	HasQty   bool
}

var (
	decimalComma = regexp.MustCompile(`(\d),(\d)`)
	rangePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[-–]\s*(\d+(?:\.\d+)?)[^\w]?\s*(.*)$`)
	qtyUnitName  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-zÀ-ÿ\.]+)\b\s*(.*)$`)
	qtyName      = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(.*)$`)
	wordRest     = regexp.MustCompile(`^(\w+)\b\s*(.*)$`)
)

// ParseIngredientLine parses an ingredient line such as "200 g kipfilet",
// "2 el olijfolie" or "1-2 tenen knoflook" into name, quantity and unit.
// Ranges average out ("1-2" becomes 1.5), decimal commas become dots, and a
// bare quantity defaults to pieces. Lines with no leading quantity come back
// as name-only.
func ParseIngredientLine(raw string) ParsedIngredient {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ParsedIngredient{Name: raw}
	}

	t := decimalComma.ReplaceAllString(text, "$1.$2")

	if m := rangePattern.FindStringSubmatch(t); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		qty := (lo + hi) / 2.0
		rest := strings.TrimSpace(m[3])
		name := rest
		unit := ""
		if m2 := wordRest.FindStringSubmatch(rest); m2 != nil {
			unit = NormalizeUnit(m2[1])
			if n := strings.TrimSpace(m2[2]); n != "" {
				name = n
			}
		}
		if name == "" {
			name = raw
		}
		return ParsedIngredient{Name: name, Quantity: qty, Unit: unit, HasQty: true}
	}

	if m := qtyUnitName.FindStringSubmatch(t); m != nil {
		qty, _ := strconv.ParseFloat(m[1], 64)
		unit := NormalizeUnit(strings.TrimSuffix(m[2], "."))
		name := strings.TrimSpace(m[3])
		if name == "" {
			name = raw
		}
		return ParsedIngredient{Name: name, Quantity: qty, Unit: unit, HasQty: true}
	}

	if m := qtyName.FindStringSubmatch(t); m != nil {
		qty, _ := strconv.ParseFloat(m[1], 64)
		name := strings.TrimSpace(m[2])
		if name == "" {
			name = raw
		}
		return ParsedIngredient{Name: name, Quantity: qty, Unit: "st", HasQty: true}
	}

	return ParsedIngredient{Name: text}
}
