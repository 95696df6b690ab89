package config

import (
	"fmt"
	"os"
	"strconv"

	"ah-mealplanner/internal/nutrition"
)

// Config holds the configuration for the application.
type Config struct {
	DBPath string

	// Planning defaults, used when a request does not override them.
	DefaultCalories float64
	MealsPerDay     int
	MacroSplit      nutrition.MacroSplit

	// HTTP Config
	HTTPAddr string

	// Telegram Config (Optional for CLI, required for Bot)
	TelegramBotToken    string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/mealplanner.db"
	}

	calories, err := envFloat("DEFAULT_CALORIES", 2200)
	if err != nil {
		return nil, err
	}
	if calories <= 0 {
		return nil, fmt.Errorf("DEFAULT_CALORIES must be positive, got %v", calories)
	}

	meals, err := envInt("MEALS_PER_DAY", 3)
	if err != nil {
		return nil, err
	}
	if meals < 1 {
		return nil, fmt.Errorf("MEALS_PER_DAY must be at least 1, got %d", meals)
	}

	proteinPct, err := envFloat("MACRO_PROTEIN_PCT", 30)
	if err != nil {
		return nil, err
	}
	fatPct, err := envFloat("MACRO_FAT_PCT", 35)
	if err != nil {
		return nil, err
	}
	carbsPct, err := envFloat("MACRO_CARBS_PCT", 35)
	if err != nil {
		return nil, err
	}
	total := proteinPct + fatPct + carbsPct
	if total < 99.0 || total > 101.0 {
		return nil, fmt.Errorf("macro percentages must sum to 100, got %v", total)
	}

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	var telegramAllowUserID int64
	if s := os.Getenv("TELEGRAM_ALLOW_USER_ID"); s != "" {
		telegramAllowUserID, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ALLOW_USER_ID must be numeric: %w", err)
		}
	}

	return &Config{
		DBPath:          dbPath,
		DefaultCalories: calories,
		MealsPerDay:     meals,
		MacroSplit: nutrition.MacroSplit{
			Protein: proteinPct / 100.0,
			Fat:     fatPct / 100.0,
			Carbs:   carbsPct / 100.0,
		},
		HTTPAddr:            httpAddr,
		TelegramBotToken:    telegramBotToken,
		TelegramAllowUserID: telegramAllowUserID,
	}, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric: %w", key, err)
	}
	return v, nil
}

func envInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}
