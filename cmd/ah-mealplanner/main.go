package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ah-mealplanner/internal/app"
	"ah-mealplanner/internal/config"
	"ah-mealplanner/internal/database"
	"ah-mealplanner/internal/planner"

	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	application := app.NewApp(cfg, db)

	switch os.Args[1] {
	case "init-db":
		// NewDB already ran the migrations.
		fmt.Printf("Database initialized at %s.\n", cfg.DBPath)

	case "import-products":
		cmd := flag.NewFlagSet("import-products", flag.ExitOnError)
		file := cmd.String("file", "", "Path to a JSON or CSV product export")
		cmd.Parse(os.Args[2:])
		if *file == "" {
			log.Fatal("import-products requires -file")
		}
		if err := application.ImportProducts(ctx, *file); err != nil {
			log.Fatalf("Import failed: %v", err)
		}

	case "import-recipes":
		cmd := flag.NewFlagSet("import-recipes", flag.ExitOnError)
		file := cmd.String("file", "", "Path to a JSON recipe export")
		cmd.Parse(os.Args[2:])
		if *file == "" {
			log.Fatal("import-recipes requires -file")
		}
		if err := application.ImportRecipes(ctx, *file); err != nil {
			log.Fatalf("Import failed: %v", err)
		}

	case "link-products":
		if err := application.LinkProducts(ctx); err != nil {
			log.Fatalf("Linking failed: %v", err)
		}

	case "plan-day":
		cmd := flag.NewFlagSet("plan-day", flag.ExitOnError)
		date := cmd.String("date", todayISO(), "Plan date (YYYY-MM-DD)")
		req := requestFlags(cmd, application)
		cmd.Parse(os.Args[2:])
		if err := application.PlanDay(ctx, *date, req()); err != nil {
			log.Fatalf("Planning failed: %v", err)
		}

	case "plan-week":
		cmd := flag.NewFlagSet("plan-week", flag.ExitOnError)
		start := cmd.String("start", todayISO(), "First plan date (YYYY-MM-DD)")
		days := cmd.Int("days", 7, "Number of consecutive days")
		req := requestFlags(cmd, application)
		cmd.Parse(os.Args[2:])
		if err := application.PlanWeek(ctx, *start, *days, req()); err != nil {
			log.Fatalf("Planning failed: %v", err)
		}

	case "shopping-list":
		cmd := flag.NewFlagSet("shopping-list", flag.ExitOnError)
		start := cmd.String("start", todayISO(), "First plan date (YYYY-MM-DD)")
		days := cmd.Int("days", 7, "Number of consecutive days")
		cmd.Parse(os.Args[2:])
		if err := application.ShoppingList(ctx, *start, *days); err != nil {
			log.Fatalf("Shopping list failed: %v", err)
		}

	case "metrics":
		cmd := flag.NewFlagSet("metrics", flag.ExitOnError)
		days := cmd.Int("days", 7, "Report on the last N days")
		cmd.Parse(os.Args[2:])
		if err := application.MetricsSummary(ctx, *days); err != nil {
			log.Fatalf("Metrics failed: %v", err)
		}

	case "metrics-cleanup":
		cmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cmd.Int("days", 30, "Keep records for the last N days")
		cmd.Parse(os.Args[2:])
		if err := application.MetricsCleanup(ctx, *days); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}

	case "shopping-cleanup":
		cmd := flag.NewFlagSet("shopping-cleanup", flag.ExitOnError)
		days := cmd.Int("days", 30, "Keep lists for the last N days")
		cmd.Parse(os.Args[2:])
		if err := application.ShoppingCleanup(ctx, *days); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// requestFlags registers the shared planning flags and returns a closure that
// builds the request after flag parsing.
func requestFlags(cmd *flag.FlagSet, application *app.App) func() planner.Request {
	defaults := application.DefaultRequest()
	calories := cmd.Float64("calories", defaults.TargetCalories, "Daily calorie target")
	meals := cmd.Int("meals", defaults.MealsPerDay, "Meals per day")
	exclude := cmd.String("exclude", "", "Comma-separated ingredient terms to exclude")

	return func() planner.Request {
		req := defaults
		req.TargetCalories = *calories
		req.MealsPerDay = *meals
		req.Exclusions = splitTerms(*exclude)
		return req
	}
}

func todayISO() string {
	return time.Now().Format("2006-01-02")
}

func splitTerms(s string) []string {
	var terms []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

func printUsage() {
	fmt.Println("Usage: ah-mealplanner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  init-db            Create the database and run migrations")
	fmt.Println("  import-products    Import products from a JSON or CSV export")
	fmt.Println("  import-recipes     Import recipes from a JSON export")
	fmt.Println("  link-products      Link ingredients to products and derive missing nutrition")
	fmt.Println("  plan-day           Generate and save a meal plan for one date")
	fmt.Println("  plan-week          Generate and save plans for a run of dates")
	fmt.Println("  shopping-list      Aggregate saved plans into a shopping list")
	fmt.Println("  metrics            Show plan generation stats")
	fmt.Println("  metrics-cleanup    Remove old metric records")
	fmt.Println("  shopping-cleanup   Remove old saved shopping lists")
}
