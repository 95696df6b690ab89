package shopping

import "time"

// Line is one aggregated entry on a shopping list. Identity is the linked
// product ID when an ingredient resolves to a catalog product, otherwise the
// normalized ingredient name.
type Line struct {
	ProductID    int64   `json:"product_id,omitempty"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitMismatch bool    `json:"unit_mismatch,omitempty"`
}

// ShoppingList holds the merged ingredient lines for a run of meal plans.
// Unresolved carries free-form ingredient text that had no usable quantity
// or unit and could not be merged.
type ShoppingList struct {
	ID         int64     `json:"id"`
	StartDate  string    `json:"start_date"`
	Days       int       `json:"days"`
	Lines      []Line    `json:"lines"`
	Unresolved []string  `json:"unresolved,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
