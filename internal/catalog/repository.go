package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	catalogdb "ah-mealplanner/internal/catalog/db"
	"ah-mealplanner/internal/nutrition"
)

// Repository is the database-backed store for products and recipes.
type Repository struct {
	queries *catalogdb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: catalogdb.New(d),
		db:      d,
	}
}

// UpsertProduct inserts a product or replaces the existing row with the
// same source ID. Returns the product's database ID.
func (r *Repository) UpsertProduct(ctx context.Context, p Product) (int64, error) {
	id, err := r.queries.UpsertProduct(ctx, catalogdb.UpsertProductParams{
		SourceID:       sql.NullString{String: p.SourceID, Valid: p.SourceID != ""},
		Name:           p.Name,
		Brand:          p.Brand,
		Category:       p.Category,
		Unit:           p.Unit,
		PriceEur:       p.PriceEUR,
		KcalPer100:     p.PerHundred.Calories,
		ProteinGPer100: p.PerHundred.ProteinG,
		CarbsGPer100:   p.PerHundred.CarbsG,
		FatGPer100:     p.PerHundred.FatG,
		FiberGPer100:   p.FiberPer100G,
		SaltGPer100:    p.SaltPer100G,
		Url:            p.URL,
		ImageUrl:       p.ImageURL,
		LastSeen:       p.LastSeen,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert product %q: %w", p.Name, err)
	}
	return id, nil
}

// InsertRecipe stores a recipe together with its ingredients and tags in a
// single transaction. Returns the recipe's database ID.
func (r *Repository) InsertRecipe(ctx context.Context, rec Recipe) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	recipeID, err := qtx.InsertRecipe(ctx, catalogdb.InsertRecipeParams{
		Source:             rec.Source,
		SourceID:           rec.SourceID,
		Title:              rec.Title,
		Url:                rec.URL,
		ImageUrl:           rec.ImageURL,
		Servings:           int64(rec.Servings),
		TotalTimeMin:       int64(rec.TotalTimeMin),
		KcalPerServing:     rec.PerServing.Calories,
		ProteinGPerServing: rec.PerServing.ProteinG,
		CarbsGPerServing:   rec.PerServing.CarbsG,
		FatGPerServing:     rec.PerServing.FatG,
		FiberGPerServing:   rec.FiberPerServing,
		Instructions:       rec.Instructions,
		LastSeen:           rec.LastSeen,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert recipe %q: %w", rec.Title, err)
	}

	for _, ing := range rec.Ingredients {
		var productID sql.NullInt64
		if ing.ProductID > 0 {
			productID = sql.NullInt64{Int64: ing.ProductID, Valid: true}
		}
		err := qtx.InsertIngredient(ctx, catalogdb.InsertIngredientParams{
			RecipeID:  recipeID,
			Name:      ing.Name,
			Quantity:  ing.Quantity,
			Unit:      ing.Unit,
			ProductID: productID,
			Raw:       ing.Raw,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert ingredient %q: %w", ing.Name, err)
		}
	}

	for _, tag := range rec.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		err := qtx.InsertRecipeTag(ctx, catalogdb.InsertRecipeTagParams{
			RecipeID: recipeID,
			Tag:      tag,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit recipe %q: %w", rec.Title, err)
	}
	return recipeID, nil
}

// LoadIndex reads the full catalog into an in-memory snapshot, ordered by
// ID so repeated loads produce identical indexes.
func (r *Repository) LoadIndex(ctx context.Context) (Index, error) {
	var idx Index

	dbProducts, err := r.queries.ListProducts(ctx)
	if err != nil {
		return idx, fmt.Errorf("failed to query products: %w", err)
	}
	for _, p := range dbProducts {
		idx.Products = append(idx.Products, Product{
			ID:       p.ID,
			SourceID: p.SourceID.String,
			Name:     p.Name,
			Brand:    p.Brand,
			Category: p.Category,
			Unit:     p.Unit,
			PriceEUR: p.PriceEur,
			PerHundred: nutrition.Values{
				Calories: p.KcalPer100,
				ProteinG: p.ProteinGPer100,
				CarbsG:   p.CarbsGPer100,
				FatG:     p.FatGPer100,
			},
			FiberPer100G: p.FiberGPer100,
			SaltPer100G:  p.SaltGPer100,
			URL:          p.Url,
			ImageURL:     p.ImageUrl,
			LastSeen:     p.LastSeen,
		})
	}

	dbRecipes, err := r.queries.ListRecipes(ctx)
	if err != nil {
		return idx, fmt.Errorf("failed to query recipes: %w", err)
	}
	byID := make(map[int64]int)
	for _, rec := range dbRecipes {
		byID[rec.ID] = len(idx.Recipes)
		idx.Recipes = append(idx.Recipes, Recipe{
			ID:           rec.ID,
			Source:       rec.Source,
			SourceID:     rec.SourceID,
			Title:        rec.Title,
			URL:          rec.Url,
			ImageURL:     rec.ImageUrl,
			Servings:     int(rec.Servings),
			TotalTimeMin: int(rec.TotalTimeMin),
			PerServing: nutrition.Values{
				Calories: rec.KcalPerServing,
				ProteinG: rec.ProteinGPerServing,
				CarbsG:   rec.CarbsGPerServing,
				FatG:     rec.FatGPerServing,
			},
			FiberPerServing: rec.FiberGPerServing,
			Instructions:    rec.Instructions,
			LastSeen:        rec.LastSeen,
		})
	}

	dbIngredients, err := r.queries.ListIngredients(ctx)
	if err != nil {
		return idx, fmt.Errorf("failed to query ingredients: %w", err)
	}
	for _, ing := range dbIngredients {
		i, ok := byID[ing.RecipeID]
		if !ok {
			continue
		}
		idx.Recipes[i].Ingredients = append(idx.Recipes[i].Ingredients, Ingredient{
			ID:        ing.ID,
			RecipeID:  ing.RecipeID,
			Name:      ing.Name,
			Quantity:  ing.Quantity,
			Unit:      ing.Unit,
			ProductID: ing.ProductID.Int64,
			Raw:       ing.Raw,
		})
	}

	dbTags, err := r.queries.ListRecipeTags(ctx)
	if err != nil {
		return idx, fmt.Errorf("failed to query recipe tags: %w", err)
	}
	for _, t := range dbTags {
		if i, ok := byID[t.RecipeID]; ok {
			idx.Recipes[i].Tags = append(idx.Recipes[i].Tags, t.Tag)
		}
	}

	return idx, nil
}

// LinkIngredients fills in advisory ingredient->product links by name.
// Only unlinked ingredients are touched; the match is best-effort and may
// leave ingredients unlinked. Returns the number of new links.
func (r *Repository) LinkIngredients(ctx context.Context) (int, error) {
	idx, err := r.LoadIndex(ctx)
	if err != nil {
		return 0, err
	}

	linked := 0
	for _, rec := range idx.Recipes {
		for _, ing := range rec.Ingredients {
			if ing.ProductID > 0 || ing.Name == "" {
				continue
			}
			match := MatchProduct(ing.Name, idx.Products)
			if match == nil {
				continue
			}
			err := r.queries.UpdateIngredientProduct(ctx, catalogdb.UpdateIngredientProductParams{
				ProductID: sql.NullInt64{Int64: match.ID, Valid: true},
				ID:        ing.ID,
			})
			if err != nil {
				return linked, fmt.Errorf("failed to link ingredient %q: %w", ing.Name, err)
			}
			linked++
		}
	}
	return linked, nil
}

// MatchProduct finds the best product for an ingredient name: the product
// whose name contains the ingredient name (or the reverse), preferring the
// shortest name and then the lowest ID so repeated runs are stable.
func MatchProduct(name string, products []Product) *Product {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	var best *Product
	for i := range products {
		p := &products[i]
		pname := strings.ToLower(p.Name)
		if pname == "" {
			continue
		}
		if !strings.Contains(pname, needle) && !strings.Contains(needle, pname) {
			continue
		}
		if best == nil ||
			len(p.Name) < len(best.Name) ||
			(len(p.Name) == len(best.Name) && p.ID < best.ID) {
			best = p
		}
	}
	return best
}

// ComputeRecipeNutrition derives per-serving nutrition for a recipe from
// its linked products and quantities, then fills in any missing figures on
// the recipe row. Ingredients without a product link or a gram-convertible
// quantity are skipped.
func (r *Repository) ComputeRecipeNutrition(ctx context.Context, recipeID int64) (nutrition.Values, error) {
	idx, err := r.LoadIndex(ctx)
	if err != nil {
		return nutrition.Values{}, err
	}
	rec := idx.RecipeByID(recipeID)
	if rec == nil {
		return nutrition.Values{}, fmt.Errorf("recipe %d not found", recipeID)
	}

	var total nutrition.Values
	for _, ing := range rec.Ingredients {
		if ing.ProductID == 0 || !ing.Structured() {
			continue
		}
		grams, ok := nutrition.UnitToGrams(ing.Quantity, ing.Unit)
		if !ok {
			continue
		}
		p := idx.ProductByID(ing.ProductID)
		if p == nil {
			continue
		}
		total = total.Add(p.PerHundred.Scale(grams / 100.0))
	}

	perServing := total
	if rec.Servings > 0 {
		perServing = total.Scale(1.0 / float64(rec.Servings))
	}

	if rec.PerServing.Calories == 0 {
		err := r.queries.UpdateRecipeNutrition(ctx, catalogdb.UpdateRecipeNutritionParams{
			KcalPerServing:     perServing.Calories,
			ProteinGPerServing: perServing.ProteinG,
			CarbsGPerServing:   perServing.CarbsG,
			FatGPerServing:     perServing.FatG,
			ID:                 recipeID,
		})
		if err != nil {
			return perServing, fmt.Errorf("failed to update recipe nutrition: %w", err)
		}
	}
	return perServing, nil
}

// SortedTags returns the distinct tags in the index, sorted. Used by the
// command surfaces to show what can be filtered on.
func (idx Index) SortedTags() []string {
	seen := make(map[string]struct{})
	for _, r := range idx.Recipes {
		for _, t := range r.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
