package telegram

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ah-mealplanner/internal/catalog"
	"ah-mealplanner/internal/config"
	"ah-mealplanner/internal/database"
	"ah-mealplanner/internal/metrics"
	"ah-mealplanner/internal/planner"
	"ah-mealplanner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API and the planning engine.
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.Config
	mealPlanner  *planner.Planner
	catalogRepo  *catalog.Repository
	planRepo     *planner.PlanRepository
	shoppingRepo *shopping.Repository
	metricsStore *metrics.Store
	sessions     *SessionRepository
}

// NewBot initializes the Telegram Bot using long polling.
func NewBot(cfg *config.Config, db *database.DB) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:          api,
		cfg:          cfg,
		mealPlanner:  planner.NewPlanner(planner.DefaultConfig()),
		catalogRepo:  catalog.NewRepository(db.SQL),
		planRepo:     planner.NewPlanRepository(db.SQL),
		shoppingRepo: shopping.NewRepository(db.SQL),
		metricsStore: metrics.NewStore(db.SQL),
		sessions:     NewSessionRepository(db.SQL),
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			if !b.allowed(update.Message.From.ID) {
				log.Printf("Unauthorized access attempt from UserID: %d (@%s)",
					update.Message.From.ID, update.Message.From.UserName)
				continue
			}
			go b.processMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) allowed(userID int64) bool {
	return b.cfg.TelegramAllowUserID == 0 || b.cfg.TelegramAllowUserID == userID
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	command, args := splitCommand(msg.Text)

	switch command {
	case "/start", "/help":
		b.reply(msg.Chat.ID, helpText)
	case "/plan":
		b.handlePlan(ctx, msg.Chat.ID, args)
	case "/week":
		b.handleWeek(ctx, msg.Chat.ID, args)
	case "/shopping":
		b.handleShopping(ctx, msg.Chat.ID, args)
	case "/set":
		b.handleSet(ctx, msg.Chat.ID, args)
	case "/metrics":
		b.handleMetrics(ctx, msg.Chat.ID)
	default:
		b.reply(msg.Chat.ID, "Unknown command. Send /help for usage.")
	}
}

const helpText = `🍽 *Meal planner*

/plan [date] - plan one day (default today)
/week [date] - plan 7 days from date (default today)
/shopping [date] [days] - shopping list for saved plans
/set calories <kcal> - set calorie target
/set meals <n> - set meals per day
/set exclude <term,term> - set excluded ingredients
/set reset - clear preferences
/metrics - usage report`

func (b *Bot) handlePlan(ctx context.Context, chatID int64, args []string) {
	date := time.Now().Format("2006-01-02")
	if len(args) > 0 {
		date = args[0]
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		b.reply(chatID, fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD.", date))
		return
	}

	req, err := b.requestFor(ctx, chatID)
	if err != nil {
		log.Printf("Failed to load preferences for chat %d: %v", chatID, err)
	}

	idx, err := b.catalogRepo.LoadIndex(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	started := time.Now()
	plan, err := b.mealPlanner.GenerateDay(idx, date, req)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	if _, err := b.planRepo.Save(ctx, plan); err != nil {
		log.Printf("Warning: failed to save meal plan: %v", err)
	}
	if err := b.metricsStore.Record(ctx, metrics.PlanMetric{
		PlanDate:         plan.Date,
		TargetCalories:   req.TargetCalories,
		AchievedCalories: plan.Totals.Calories,
		ItemCount:        len(plan.Items),
		TargetMet:        plan.TargetMet,
		DurationMS:       time.Since(started).Milliseconds(),
	}); err != nil {
		log.Printf("Warning: failed to record plan metrics: %v", err)
	}

	b.reply(chatID, formatPlan(plan))
}

func (b *Bot) handleWeek(ctx context.Context, chatID int64, args []string) {
	start := time.Now().Format("2006-01-02")
	if len(args) > 0 {
		start = args[0]
	}

	req, err := b.requestFor(ctx, chatID)
	if err != nil {
		log.Printf("Failed to load preferences for chat %d: %v", chatID, err)
	}

	idx, err := b.catalogRepo.LoadIndex(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	results, err := b.mealPlanner.GenerateRange(idx, start, 7, req)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	var sb strings.Builder
	sb.WriteString("📅 *Weekly meal plan*\n")
	for _, res := range results {
		if res.Err != nil {
			sb.WriteString(fmt.Sprintf("\n*%s*: could not plan (%v)\n", res.Date, res.Err))
			continue
		}
		if _, err := b.planRepo.Save(ctx, res.Plan); err != nil {
			log.Printf("Warning: failed to save meal plan for %s: %v", res.Date, err)
		}
		sb.WriteString("\n" + formatPlan(res.Plan))
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleShopping(ctx context.Context, chatID int64, args []string) {
	start := time.Now().Format("2006-01-02")
	days := 7
	if len(args) > 0 {
		start = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			b.reply(chatID, fmt.Sprintf("Invalid day count %q.", args[1]))
			return
		}
		days = n
	}

	plans, err := b.planRepo.GetByDateRange(ctx, start, days)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(plans) == 0 {
		b.reply(chatID, fmt.Sprintf("No saved plans from %s. Generate one with /plan or /week first.", start))
		return
	}

	idx, err := b.catalogRepo.LoadIndex(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	list := shopping.Aggregate(plans, idx)
	list.StartDate = start
	list.Days = days
	if _, err := b.shoppingRepo.Save(ctx, list); err != nil {
		log.Printf("Warning: failed to save shopping list: %v", err)
	}

	b.reply(chatID, formatShoppingList(list))
}

func (b *Bot) handleSet(ctx context.Context, chatID int64, args []string) {
	if len(args) == 0 {
		b.reply(chatID, "Usage: /set calories <kcal> | /set meals <n> | /set exclude <term,term> | /set reset")
		return
	}

	if args[0] == "reset" {
		if err := b.sessions.Delete(ctx, chatID); err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, "Preferences cleared.")
		return
	}

	if len(args) < 2 {
		b.reply(chatID, "Missing value. Send /help for usage.")
		return
	}

	prefs, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	switch args[0] {
	case "calories":
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil || v <= 0 {
			b.reply(chatID, fmt.Sprintf("Invalid calorie target %q.", args[1]))
			return
		}
		prefs.Calories = v
	case "meals":
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			b.reply(chatID, fmt.Sprintf("Invalid meal count %q.", args[1]))
			return
		}
		prefs.Meals = n
	case "exclude":
		prefs.Exclusions = splitTerms(strings.Join(args[1:], " "))
	default:
		b.reply(chatID, fmt.Sprintf("Unknown setting %q.", args[0]))
		return
	}

	if err := b.sessions.Save(ctx, chatID, prefs); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Saved. Calories: %s, meals: %s, excluded: %s.",
		orDefault(prefs.Calories), orDefaultInt(prefs.Meals), orDefaultList(prefs.Exclusions)))
}

func (b *Bot) handleMetrics(ctx context.Context, chatID int64) {
	summaries, err := b.metricsStore.GetDailySummary(ctx, 7)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	health := metrics.GetSysHealth(filepath.Dir(b.cfg.DBPath))

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent plan runs*\n")
	if len(summaries) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, s := range summaries {
		sb.WriteString(fmt.Sprintf("• *%s*: %d runs, %d on target, avg deviation %.0f kcal\n",
			s.PlanDate, s.Runs, s.TargetMetRuns, s.AvgDeviation))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DatabaseSize))

	b.reply(chatID, sb.String())
}

// requestFor builds a planning request from the configured defaults plus
// stored chat preferences.
func (b *Bot) requestFor(ctx context.Context, chatID int64) (planner.Request, error) {
	split := b.cfg.MacroSplit
	req := planner.Request{
		TargetCalories: b.cfg.DefaultCalories,
		MealsPerDay:    b.cfg.MealsPerDay,
		MacroSplit:     &split,
	}

	prefs, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		return req, err
	}
	if prefs.Calories > 0 {
		req.TargetCalories = prefs.Calories
	}
	if prefs.Meals > 0 {
		req.MealsPerDay = prefs.Meals
	}
	req.Exclusions = prefs.Exclusions
	return req, nil
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) replyError(chatID int64, err error) {
	log.Printf("Error handling command for chat %d: %v", chatID, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.reply(chatID, fmt.Sprintf("❌ *Error:*\n```\n%v\n```", safeErr))
}

func splitCommand(text string) (string, []string) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return "", nil
	}
	// Strip a bot mention like /plan@my_bot.
	command := fields[0]
	if i := strings.Index(command, "@"); i > 0 {
		command = command[:i]
	}
	return command, fields[1:]
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

func formatPlan(plan *planner.MealPlan) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🍽 *%s*\n", plan.Date))
	for i, item := range plan.Items {
		sb.WriteString(fmt.Sprintf("%d. %s (%.2g servings, %.0f kcal)\n",
			i+1, item.Title, item.Servings, item.Nutrition.Calories))
	}
	status := "off target"
	if plan.TargetMet {
		status = "on target"
	}
	sb.WriteString(fmt.Sprintf("_Total: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat (%s)_\n",
		plan.Totals.Calories, plan.Totals.ProteinG, plan.Totals.CarbsG, plan.Totals.FatG, status))
	return sb.String()
}

func formatShoppingList(list *shopping.ShoppingList) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, line := range list.Lines {
		sb.WriteString(fmt.Sprintf("• %g %s %s", line.Quantity, line.Unit, line.Name))
		if line.UnitMismatch {
			sb.WriteString(" ⚠️")
		}
		sb.WriteString("\n")
	}
	if len(list.Unresolved) > 0 {
		sb.WriteString("\n_To taste / unresolved:_\n")
		for _, u := range list.Unresolved {
			sb.WriteString(fmt.Sprintf("• %s\n", u))
		}
	}
	return sb.String()
}

func orDefault(v float64) string {
	if v <= 0 {
		return "default"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefaultInt(v int) string {
	if v <= 0 {
		return "default"
	}
	return strconv.Itoa(v)
}

func orDefaultList(terms []string) string {
	if len(terms) == 0 {
		return "none"
	}
	return strings.Join(terms, ", ")
}
