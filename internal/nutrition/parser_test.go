package nutrition

import "testing"

func TestParseIngredientLine(t *testing.T) {
	cases := []struct {
		raw    string
		name   string
		qty    float64
		unit   string
		hasQty bool
	}{
		{"200 g kipfilet", "kipfilet", 200, "g", true},
		{"500 ml water", "water", 500, "ml", true},
		{"2 el olijfolie", "olijfolie", 2, "el", true},
		{"1,5 kg aardappelen", "aardappelen", 1.5, "kg", true},
		{"1-2 tenen knoflook", "knoflook", 1.5, "tenen", true},
		{"1 blikje tomatenblokjes (400 g)", "tomatenblokjes (400 g)", 1, "blik", true},
		{"snufje zout", "snufje zout", 0, "", false},
		{"", "", 0, "", false},
	}

	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			got := ParseIngredientLine(c.raw)
			if got.Name != c.name {
				t.Errorf("name: expected %q, got %q", c.name, got.Name)
			}
			if got.HasQty != c.hasQty {
				t.Errorf("hasQty: expected %v, got %v", c.hasQty, got.HasQty)
			}
			if c.hasQty && got.Quantity != c.qty {
				t.Errorf("quantity: expected %v, got %v", c.qty, got.Quantity)
			}
			if got.Unit != c.unit {
				t.Errorf("unit: expected %q, got %q", c.unit, got.Unit)
			}
		})
	}
}

func TestUnitToGrams(t *testing.T) {
	cases := []struct {
		qty   float64
		unit  string
		grams float64
		ok    bool
	}{
		{200, "g", 200, true},
		{1.5, "kg", 1500, true},
		{250, "ml", 250, true},
		{1, "l", 1000, true},
		{2, "el", 30, true},
		{3, "tl", 15, true},
		{2, "st", 0, false},
		{1, "blik", 0, false},
		{1, "pak", 0, false},
	}
	for _, c := range cases {
		grams, ok := UnitToGrams(c.qty, c.unit)
		if ok != c.ok {
			t.Errorf("%v %s: expected ok=%v, got %v", c.qty, c.unit, c.ok, ok)
			continue
		}
		if ok && grams != c.grams {
			t.Errorf("%v %s: expected %v grams, got %v", c.qty, c.unit, c.grams, grams)
		}
	}
}

func TestNormalizeUnit(t *testing.T) {
	if NormalizeUnit("Eetlepels") != "el" {
		t.Errorf("expected 'eetlepels' to normalize to 'el'")
	}
	if NormalizeUnit("gr.") != "g" {
		t.Errorf("expected 'gr.' to normalize to 'g'")
	}
	if NormalizeUnit("cups") != "cups" {
		t.Errorf("expected unknown unit to pass through lowercased")
	}
}
