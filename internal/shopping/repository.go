package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	shoppingdb "ah-mealplanner/internal/shopping/db"
)

// Repository handles persistence of shopping lists.
type Repository struct {
	queries *shoppingdb.Queries
	db      *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: shoppingdb.New(d),
		db:      d,
	}
}

type itemsBlock struct {
	Lines      []Line   `json:"lines"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// Save stores a shopping list and returns its ID.
func (r *Repository) Save(ctx context.Context, list *ShoppingList) (int64, error) {
	itemsJSON, err := json.Marshal(itemsBlock{Lines: list.Lines, Unresolved: list.Unresolved})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal shopping list items: %w", err)
	}

	id, err := r.queries.InsertShoppingList(ctx, shoppingdb.InsertShoppingListParams{
		StartDate: list.StartDate,
		Days:      int64(list.Days),
		Items:     string(itemsJSON),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert shopping list: %w", err)
	}
	return id, nil
}

// GetLatestByStartDate retrieves the most recent shopping list generated for
// the given start date. Returns nil when none exists.
func (r *Repository) GetLatestByStartDate(ctx context.Context, startDate string) (*ShoppingList, error) {
	dbList, err := r.queries.GetLatestShoppingListByStartDate(ctx, startDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	var block itemsBlock
	if err := json.Unmarshal([]byte(dbList.Items), &block); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}

	return &ShoppingList{
		ID:         dbList.ID,
		StartDate:  dbList.StartDate,
		Days:       int(dbList.Days),
		Lines:      block.Lines,
		Unresolved: block.Unresolved,
		CreatedAt:  dbList.CreatedAt,
	}, nil
}

// DeleteOlderThan removes shopping lists created before the cutoff and
// returns how many were deleted.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := r.queries.DeleteShoppingListsOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old shopping lists: %w", err)
	}
	return deleted, nil
}
