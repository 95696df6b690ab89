package importer

import (
	"context"
	"strings"
	"testing"

	"ah-mealplanner/internal/catalog"
)

type mockStore struct {
	products []catalog.Product
	recipes  []catalog.Recipe
	failWith error
}

func (m *mockStore) UpsertProduct(ctx context.Context, p catalog.Product) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	m.products = append(m.products, p)
	return int64(len(m.products)), nil
}

func (m *mockStore) InsertRecipe(ctx context.Context, rec catalog.Recipe) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	m.recipes = append(m.recipes, rec)
	return int64(len(m.recipes)), nil
}

func TestImportProductsJSON(t *testing.T) {
	input := `[
		{"source_id": "wi12345", "name": "Halfvolle melk", "brand": "AH", "unit": "ml",
		 "kcal_per_100": 46, "protein_g_per_100": 3.4, "carbs_g_per_100": 4.7, "fat_g_per_100": 1.5},
		{"id": "wi67890", "name": "Pindakaas", "kcal_per_100": 590},
		{"name": "geen id"},
		{"source_id": "wi99999"}
	]`

	store := &mockStore{}
	count, err := NewImporter(store).ImportProductsJSON(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportProductsJSON failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 imported products, got %d", count)
	}
	if len(store.products) != 2 {
		t.Fatalf("expected 2 stored products, got %d", len(store.products))
	}

	melk := store.products[0]
	if melk.SourceID != "wi12345" || melk.Name != "Halfvolle melk" {
		t.Errorf("unexpected first product: %+v", melk)
	}
	if melk.PerHundred.Calories != 46 || melk.PerHundred.ProteinG != 3.4 {
		t.Errorf("unexpected nutrition: %+v", melk.PerHundred)
	}

	if store.products[1].SourceID != "wi67890" {
		t.Errorf("expected id to fall back to source_id, got %q", store.products[1].SourceID)
	}
}

func TestImportProductsCSV(t *testing.T) {
	input := strings.Join([]string{
		"source_id,name,brand,unit,kcal_per_100,protein_g_per_100",
		"wi111,Griekse yoghurt,AH,gram,120,\"6,5\"",
		"wi222,Kipfilet,,g,107,22",
		",Naamloos,,,100,",
	}, "\n")

	store := &mockStore{}
	count, err := NewImporter(store).ImportProductsCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportProductsCSV failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 imported products, got %d", count)
	}

	yoghurt := store.products[0]
	if yoghurt.Unit != "g" {
		t.Errorf("expected unit normalized to g, got %q", yoghurt.Unit)
	}
	if yoghurt.PerHundred.ProteinG != 6.5 {
		t.Errorf("expected decimal comma parsed as 6.5, got %v", yoghurt.PerHundred.ProteinG)
	}
}

func TestImportProductsCSVBadHeader(t *testing.T) {
	store := &mockStore{}
	_, err := NewImporter(store).ImportProductsCSV(context.Background(), strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error for empty CSV")
	}
}

func TestImportRecipesJSON(t *testing.T) {
	input := `[
		{
			"source": "eatthismuch",
			"source_id": "4242",
			"title": "Kip teriyaki met rijst",
			"servings": 2,
			"total_time_min": 35,
			"kcal_per_serving": 650,
			"protein_g_per_serving": 45,
			"carbs_g_per_serving": 70,
			"fat_g_per_serving": 18,
			"ingredients": [
				{"name": "kipfilet", "quantity": 300, "unit": "gram"},
				{"name": "", "raw": "200 g rijst"},
				{"name": "sojasaus", "raw": "scheutje sojasaus"}
			],
			"tags": ["dinner", "high_protein"]
		},
		{"source": "x", "source_id": "1", "title": "   "}
	]`

	store := &mockStore{}
	count, err := NewImporter(store).ImportRecipesJSON(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportRecipesJSON failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 imported recipe, got %d", count)
	}

	rec := store.recipes[0]
	if rec.Title != "Kip teriyaki met rijst" || rec.PerServing.Calories != 650 {
		t.Errorf("unexpected recipe: %+v", rec)
	}
	if rec.Servings != 2 || rec.TotalTimeMin != 35 {
		t.Errorf("expected 2 servings in 35 minutes, got %d servings in %d", rec.Servings, rec.TotalTimeMin)
	}
	if len(rec.Ingredients) != 3 {
		t.Fatalf("expected 3 ingredients, got %d", len(rec.Ingredients))
	}

	kip := rec.Ingredients[0]
	if kip.Quantity != 300 || kip.Unit != "g" {
		t.Errorf("expected 300 g kipfilet, got %+v", kip)
	}

	rijst := rec.Ingredients[1]
	if rijst.Quantity != 200 || rijst.Unit != "g" || rijst.Name != "rijst" {
		t.Errorf("expected parsed 200 g rijst, got %+v", rijst)
	}

	saus := rec.Ingredients[2]
	if saus.Structured() {
		t.Errorf("free-text ingredient should stay unstructured: %+v", saus)
	}
	if len(rec.Tags) != 2 {
		t.Errorf("expected 2 tags, got %v", rec.Tags)
	}
}
