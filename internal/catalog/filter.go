package catalog

import (
	"errors"
	"strings"
)

// ErrNoCandidates is returned by Filter when exclusions remove every recipe
// and product, or when the source index is already empty.
var ErrNoCandidates = errors.New("no candidates left after exclusion filtering")

// Filter returns the subset of the index containing no excluded term in any
// name, ingredient name or tag. Matching is a case-insensitive substring
// check. An empty exclusion set returns the index unchanged. Filter is a
// pure function; the input index is never modified.
func Filter(idx Index, exclusions []string) (Index, error) {
	terms := make([]string, 0, len(exclusions))
	for _, ex := range exclusions {
		ex = strings.ToLower(strings.TrimSpace(ex))
		if ex != "" {
			terms = append(terms, ex)
		}
	}

	if len(terms) == 0 {
		if idx.Empty() {
			return idx, ErrNoCandidates
		}
		return idx, nil
	}

	out := Index{}
	for _, r := range idx.Recipes {
		if !recipeExcluded(r, terms) {
			out.Recipes = append(out.Recipes, r)
		}
	}
	for _, p := range idx.Products {
		if !productExcluded(p, terms) {
			out.Products = append(out.Products, p)
		}
	}

	if out.Empty() {
		return out, ErrNoCandidates
	}
	return out, nil
}

func recipeExcluded(r Recipe, terms []string) bool {
	if containsAny(r.Title, terms) {
		return true
	}
	for _, tag := range r.Tags {
		if containsAny(tag, terms) {
			return true
		}
	}
	for _, ing := range r.Ingredients {
		if containsAny(ing.Name, terms) {
			return true
		}
	}
	return false
}

func productExcluded(p Product, terms []string) bool {
	return containsAny(p.Name, terms) || containsAny(p.Category, terms)
}

func containsAny(s string, terms []string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
