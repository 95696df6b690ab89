package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ah-mealplanner/internal/catalog"
	"ah-mealplanner/internal/nutrition"
)

// CatalogStore is the subset of the catalog repository the importer writes to.
type CatalogStore interface {
	UpsertProduct(ctx context.Context, p catalog.Product) (int64, error)
	InsertRecipe(ctx context.Context, rec catalog.Recipe) (int64, error)
}

// Importer loads products and recipes from exported files into the catalog.
type Importer struct {
	store CatalogStore
}

// NewImporter creates a new file importer backed by the given store.
func NewImporter(store CatalogStore) *Importer {
	return &Importer{store: store}
}

// productRecord mirrors the export format for products. All nutrition fields
// are per 100 g or 100 ml. Any subset of fields may be present.
type productRecord struct {
	SourceID string   `json:"source_id"`
	AltID    string   `json:"id"`
	Name     string   `json:"name"`
	Brand    string   `json:"brand"`
	Category string   `json:"category"`
	Unit     string   `json:"unit"`
	PriceEUR *float64 `json:"price_eur"`
	Kcal     *float64 `json:"kcal_per_100"`
	Protein  *float64 `json:"protein_g_per_100"`
	Carbs    *float64 `json:"carbs_g_per_100"`
	Fat      *float64 `json:"fat_g_per_100"`
	Fiber    *float64 `json:"fiber_g_per_100"`
	Salt     *float64 `json:"salt_g_per_100"`
	URL      string   `json:"url"`
	ImageURL string   `json:"image_url"`
}

func (rec productRecord) toProduct() (catalog.Product, error) {
	sourceID := rec.SourceID
	if sourceID == "" {
		sourceID = rec.AltID
	}
	if sourceID == "" {
		return catalog.Product{}, fmt.Errorf("product %q has no source_id", rec.Name)
	}
	if strings.TrimSpace(rec.Name) == "" {
		return catalog.Product{}, fmt.Errorf("product %s has no name", sourceID)
	}
	return catalog.Product{
		SourceID: sourceID,
		Name:     rec.Name,
		Brand:    rec.Brand,
		Category: rec.Category,
		Unit:     nutrition.NormalizeUnit(rec.Unit),
		PriceEUR: deref(rec.PriceEUR),
		PerHundred: nutrition.Values{
			Calories: deref(rec.Kcal),
			ProteinG: deref(rec.Protein),
			CarbsG:   deref(rec.Carbs),
			FatG:     deref(rec.Fat),
		},
		FiberPer100G: deref(rec.Fiber),
		SaltPer100G:  deref(rec.Salt),
		URL:          rec.URL,
		ImageURL:     rec.ImageURL,
	}, nil
}

// ImportProductsJSON reads a JSON array of product records and upserts each
// into the catalog. Records without a source ID or name are skipped; the
// returned count is the number of products stored.
func (im *Importer) ImportProductsJSON(ctx context.Context, r io.Reader) (int, error) {
	var records []productRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("failed to decode products JSON: %w", err)
	}
	return im.upsertProducts(ctx, records)
}

// ImportProductsCSV reads a CSV export with a header row and upserts each
// product. Column names match the JSON field names; unknown columns are
// ignored and unparseable numbers are treated as absent.
func (im *Importer) ImportProductsCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var records []productRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV row: %w", err)
		}
		field := func(name string) string {
			i, ok := colIndex[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		records = append(records, productRecord{
			SourceID: field("source_id"),
			AltID:    field("id"),
			Name:     field("name"),
			Brand:    field("brand"),
			Category: field("category"),
			Unit:     field("unit"),
			PriceEUR: parseFloat(field("price_eur")),
			Kcal:     parseFloat(field("kcal_per_100")),
			Protein:  parseFloat(field("protein_g_per_100")),
			Carbs:    parseFloat(field("carbs_g_per_100")),
			Fat:      parseFloat(field("fat_g_per_100")),
			Fiber:    parseFloat(field("fiber_g_per_100")),
			Salt:     parseFloat(field("salt_g_per_100")),
			URL:      field("url"),
			ImageURL: field("image_url"),
		})
	}
	return im.upsertProducts(ctx, records)
}

func (im *Importer) upsertProducts(ctx context.Context, records []productRecord) (int, error) {
	count := 0
	for _, rec := range records {
		product, err := rec.toProduct()
		if err != nil {
			continue
		}
		if _, err := im.store.UpsertProduct(ctx, product); err != nil {
			return count, fmt.Errorf("failed to upsert product %s: %w", product.SourceID, err)
		}
		count++
	}
	return count, nil
}

// recipeRecord mirrors the export format for recipes.
type recipeRecord struct {
	Source       string             `json:"source"`
	SourceID     string             `json:"source_id"`
	Title        string             `json:"title"`
	URL          string             `json:"url"`
	ImageURL     string             `json:"image_url"`
	Servings     *float64           `json:"servings"`
	TotalTimeMin *float64           `json:"total_time_min"`
	Kcal         *float64           `json:"kcal_per_serving"`
	Protein      *float64           `json:"protein_g_per_serving"`
	Carbs        *float64           `json:"carbs_g_per_serving"`
	Fat          *float64           `json:"fat_g_per_serving"`
	Fiber        *float64           `json:"fiber_g_per_serving"`
	Instructions string             `json:"instructions"`
	Ingredients  []ingredientRecord `json:"ingredients"`
	Tags         []string           `json:"tags"`
}

type ingredientRecord struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Raw      string   `json:"raw"`
}

// ImportRecipesJSON reads a JSON array of recipe records and inserts each
// with its ingredients and tags. Ingredients without an explicit quantity
// are run through the free-text line parser to recover quantity and unit
// where possible.
func (im *Importer) ImportRecipesJSON(ctx context.Context, r io.Reader) (int, error) {
	var records []recipeRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("failed to decode recipes JSON: %w", err)
	}

	count := 0
	for _, rec := range records {
		if strings.TrimSpace(rec.Title) == "" {
			continue
		}
		recipe := catalog.Recipe{
			Source:       rec.Source,
			SourceID:     rec.SourceID,
			Title:        rec.Title,
			URL:          rec.URL,
			ImageURL:     rec.ImageURL,
			Servings:     int(deref(rec.Servings)),
			TotalTimeMin: int(deref(rec.TotalTimeMin)),
			PerServing: nutrition.Values{
				Calories: deref(rec.Kcal),
				ProteinG: deref(rec.Protein),
				CarbsG:   deref(rec.Carbs),
				FatG:     deref(rec.Fat),
			},
			FiberPerServing: deref(rec.Fiber),
			Instructions:    rec.Instructions,
			Tags:            rec.Tags,
		}
		for _, ing := range rec.Ingredients {
			recipe.Ingredients = append(recipe.Ingredients, toIngredient(ing))
		}
		if _, err := im.store.InsertRecipe(ctx, recipe); err != nil {
			return count, fmt.Errorf("failed to insert recipe %q: %w", rec.Title, err)
		}
		count++
	}
	return count, nil
}

func toIngredient(rec ingredientRecord) catalog.Ingredient {
	ing := catalog.Ingredient{
		Name:     rec.Name,
		Quantity: deref(rec.Quantity),
		Unit:     nutrition.NormalizeUnit(rec.Unit),
		Raw:      rec.Raw,
	}
	if ing.Quantity > 0 && ing.Unit != "" {
		return ing
	}

	line := rec.Raw
	if line == "" {
		line = rec.Name
	}
	parsed := nutrition.ParseIngredientLine(line)
	if parsed.HasQty {
		ing.Quantity = parsed.Quantity
		ing.Unit = nutrition.NormalizeUnit(parsed.Unit)
	}
	if ing.Name == "" {
		ing.Name = parsed.Name
	}
	if ing.Raw == "" {
		ing.Raw = line
	}
	return ing
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	// Exports occasionally carry decimal commas.
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
