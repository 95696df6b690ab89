package telegram

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sessiondb "ah-mealplanner/internal/telegram/db"
)

// Preferences holds per-chat planning overrides, stored as JSON.
type Preferences struct {
	Calories   float64  `json:"calories,omitempty"`
	Meals      int      `json:"meals,omitempty"`
	Exclusions []string `json:"exclusions,omitempty"`
}

// SessionRepository persists per-chat preferences.
type SessionRepository struct {
	queries *sessiondb.Queries
	db      *sql.DB
}

// NewSessionRepository creates a new SessionRepository instance.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{
		queries: sessiondb.New(db),
		db:      db,
	}
}

// Get returns the stored preferences for a chat, or empty preferences when
// the chat has none yet.
func (sr *SessionRepository) Get(ctx context.Context, chatID int64) (Preferences, error) {
	raw, err := sr.queries.GetTelegramSession(ctx, chatID)
	if err != nil {
		if err == sql.ErrNoRows {
			return Preferences{}, nil
		}
		return Preferences{}, fmt.Errorf("failed to get session: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return Preferences{}, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return prefs, nil
}

// Save stores the preferences for a chat, replacing any previous values.
func (sr *SessionRepository) Save(ctx context.Context, chatID int64, prefs Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	err = sr.queries.UpsertTelegramSession(ctx, sessiondb.UpsertTelegramSessionParams{
		ChatID:      chatID,
		Preferences: string(raw),
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the stored preferences for a chat.
func (sr *SessionRepository) Delete(ctx context.Context, chatID int64) error {
	if err := sr.queries.DeleteTelegramSession(ctx, chatID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
