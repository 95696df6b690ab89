package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ah-mealplanner/internal/catalog"
	"ah-mealplanner/internal/metrics"
	"ah-mealplanner/internal/nutrition"
	"ah-mealplanner/internal/planner"
	"ah-mealplanner/internal/shopping"

	"github.com/gorilla/mux"
)

type planRequest struct {
	Date       string   `json:"date"`
	Start      string   `json:"start"`
	Days       int      `json:"days"`
	Calories   float64  `json:"calories"`
	Meals      int      `json:"meals"`
	Exclusions []string `json:"exclusions"`
}

// buildRequest fills unset fields from the stored settings and the
// configured defaults.
func (s *Server) buildRequest(ctx context.Context, body planRequest) planner.Request {
	split := s.macroSplit(ctx)
	req := planner.Request{
		TargetCalories: body.Calories,
		MealsPerDay:    body.Meals,
		Exclusions:     body.Exclusions,
		MacroSplit:     &split,
	}
	if req.TargetCalories == 0 {
		req.TargetCalories = s.cfg.DefaultCalories
	}
	if req.MealsPerDay == 0 {
		req.MealsPerDay = s.cfg.MealsPerDay
	}
	return req
}

// macroSplit returns the macro split stored via the settings endpoint,
// falling back to the configured split when the table holds nothing usable.
func (s *Server) macroSplit(ctx context.Context) nutrition.MacroSplit {
	read := func(key string) (float64, error) {
		raw, err := s.settings.Get(ctx, key, "")
		if err != nil || raw == "" {
			return 0, fmt.Errorf("setting %s unavailable", key)
		}
		return strconv.ParseFloat(raw, 64)
	}

	p, errP := read("macro_p")
	f, errF := read("macro_f")
	c, errC := read("macro_c")
	if errP != nil || errF != nil || errC != nil {
		return s.cfg.MacroSplit
	}
	if total := p + f + c; total < 99.0 || total > 101.0 {
		return s.cfg.MacroSplit
	}
	return nutrition.MacroSplit{Protein: p / 100.0, Fat: f / 100.0, Carbs: c / 100.0}
}

func planStatus(err error) int {
	var invalid *planner.InvalidTargetError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	var insufficient *planner.InsufficientCandidatesError
	if errors.As(err, &insufficient) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string            `json:"status"`
		Sys    metrics.SysHealth `json:"sys"`
	}{
		Status: "ok",
		Sys:    metrics.GetSysHealth(s.dataDir),
	})
}

func (s *Server) handlePlanDay(w http.ResponseWriter, r *http.Request) {
	var body planRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	date := body.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	idx, err := s.catalogRepo.LoadIndex(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	req := s.buildRequest(r.Context(), body)
	started := time.Now()
	plan, err := s.mealPlanner.GenerateDay(idx, date, req)
	if err != nil {
		writeError(w, planStatus(err), err)
		return
	}

	if id, err := s.planRepo.Save(r.Context(), plan); err == nil {
		plan.ID = id
	} else {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	err = s.metricsStore.Record(r.Context(), metrics.PlanMetric{
		PlanDate:         plan.Date,
		TargetCalories:   req.TargetCalories,
		AchievedCalories: plan.Totals.Calories,
		ItemCount:        len(plan.Items),
		TargetMet:        plan.TargetMet,
		DurationMS:       time.Since(started).Milliseconds(),
	})
	if err != nil {
		log.Printf("Warning: failed to record plan metric: %v", err)
	}

	writeJSON(w, http.StatusOK, plan)
}

type dayResultResponse struct {
	Date  string            `json:"date"`
	Plan  *planner.MealPlan `json:"plan,omitempty"`
	Error string            `json:"error,omitempty"`
}

func (s *Server) handlePlanWeek(w http.ResponseWriter, r *http.Request) {
	var body planRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	start := body.Start
	if start == "" {
		start = time.Now().Format("2006-01-02")
	}
	days := body.Days
	if days == 0 {
		days = 7
	}

	idx, err := s.catalogRepo.LoadIndex(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	results, err := s.mealPlanner.GenerateRange(idx, start, days, s.buildRequest(r.Context(), body))
	if err != nil {
		writeError(w, planStatus(err), err)
		return
	}

	out := make([]dayResultResponse, 0, len(results))
	for _, res := range results {
		entry := dayResultResponse{Date: res.Date}
		if res.Err != nil {
			entry.Error = res.Err.Error()
			out = append(out, entry)
			continue
		}
		if id, err := s.planRepo.Save(r.Context(), res.Plan); err == nil {
			res.Plan.ID = id
		}
		entry.Plan = res.Plan
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	plan, err := s.planRepo.GetByDate(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no plan for %s", date))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	if start == "" {
		start = time.Now().Format("2006-01-02")
	}
	days := 7
	if d := r.URL.Query().Get("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid days %q", d))
			return
		}
		days = n
	}

	// cached=1 returns the last list generated for this start date instead
	// of aggregating the saved plans again.
	if r.URL.Query().Get("cached") == "1" {
		list, err := s.shoppingRepo.GetLatestByStartDate(r.Context(), start)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if list == nil {
			writeError(w, http.StatusNotFound, fmt.Errorf("no saved shopping list for %s", start))
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	plans, err := s.planRepo.GetByDateRange(r.Context(), start, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(plans) == 0 {
		writeError(w, http.StatusNotFound, fmt.Errorf("no saved plans in range starting %s", start))
		return
	}

	idx, err := s.catalogRepo.LoadIndex(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	list := shopping.Aggregate(plans, idx)
	list.StartDate = start
	list.Days = days
	if _, err := s.shoppingRepo.Save(r.Context(), list); err != nil {
		log.Printf("Warning: failed to save shopping list: %v", err)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	idx, err := s.catalogRepo.LoadIndex(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	tag := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("tag")))

	out := make([]catalog.Recipe, 0)
	for _, rec := range idx.Recipes {
		if q != "" && !strings.Contains(strings.ToLower(rec.Title), q) {
			continue
		}
		if tag != "" && !hasTag(rec, tag) {
			continue
		}
		out = append(out, rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func hasTag(rec catalog.Recipe, tag string) bool {
	for _, t := range rec.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	idx, err := s.catalogRepo.LoadIndex(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	out := make([]catalog.Product, 0)
	for _, p := range idx.Products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}
	writeJSON(w, http.StatusOK, out)
}

type settingsResponse struct {
	MacroProteinPct string `json:"macro_protein_pct"`
	MacroFatPct     string `json:"macro_fat_pct"`
	MacroCarbsPct   string `json:"macro_carbs_pct"`
	DefaultServings string `json:"default_servings"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := s.settings.Get(ctx, "macro_p", "30")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	f, _ := s.settings.Get(ctx, "macro_f", "35")
	c, _ := s.settings.Get(ctx, "macro_c", "35")
	servings, _ := s.settings.Get(ctx, "default_servings", "1.0")

	writeJSON(w, http.StatusOK, settingsResponse{
		MacroProteinPct: p,
		MacroFatPct:     f,
		MacroCarbsPct:   c,
		DefaultServings: servings,
	})
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var body settingsResponse
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	pct := func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}
	p, errP := pct(body.MacroProteinPct)
	f, errF := pct(body.MacroFatPct)
	c, errC := pct(body.MacroCarbsPct)
	if errP != nil || errF != nil || errC != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("macro percentages must be numeric"))
		return
	}
	if p < 0 || f < 0 || c < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("macro percentages must not be negative"))
		return
	}
	if total := p + f + c; total < 99.0 || total > 101.0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("macro percentages must sum to 100, got %v", total))
		return
	}

	ctx := r.Context()
	for key, value := range map[string]string{
		"macro_p": body.MacroProteinPct,
		"macro_f": body.MacroFatPct,
		"macro_c": body.MacroCarbsPct,
	} {
		if err := s.settings.Save(ctx, key, value); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	if body.DefaultServings != "" {
		if err := s.settings.Save(ctx, "default_servings", body.DefaultServings); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	s.handleGetSettings(w, r)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	days := 7
	if d := r.URL.Query().Get("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid days %q", d))
			return
		}
		days = n
	}

	summaries, err := s.metricsStore.GetDailySummary(r.Context(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}
