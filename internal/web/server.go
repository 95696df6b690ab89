package web

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"ah-mealplanner/internal/catalog"
	"ah-mealplanner/internal/config"
	"ah-mealplanner/internal/database"
	"ah-mealplanner/internal/metrics"
	"ah-mealplanner/internal/planner"
	"ah-mealplanner/internal/shopping"

	"github.com/gorilla/mux"
)

// Server exposes the planner over a JSON HTTP API.
type Server struct {
	cfg          *config.Config
	catalogRepo  *catalog.Repository
	planRepo     *planner.PlanRepository
	shoppingRepo *shopping.Repository
	metricsStore *metrics.Store
	settings     *database.SettingsRepository
	mealPlanner  *planner.Planner
	dataDir      string
}

// NewServer creates a Server wired to the given database.
func NewServer(cfg *config.Config, d *sql.DB, dataDir string) *Server {
	return &Server{
		cfg:          cfg,
		catalogRepo:  catalog.NewRepository(d),
		planRepo:     planner.NewPlanRepository(d),
		shoppingRepo: shopping.NewRepository(d),
		metricsStore: metrics.NewStore(d),
		settings:     database.NewSettingsRepository(d),
		mealPlanner:  planner.NewPlanner(planner.DefaultConfig()),
		dataDir:      dataDir,
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/plan-day", s.handlePlanDay).Methods(http.MethodPost)
	api.HandleFunc("/plan-week", s.handlePlanWeek).Methods(http.MethodPost)
	api.HandleFunc("/plan/{date}", s.handleGetPlan).Methods(http.MethodGet)
	api.HandleFunc("/shopping-list", s.handleShoppingList).Methods(http.MethodGet)
	api.HandleFunc("/recipes", s.handleRecipes).Methods(http.MethodGet)
	api.HandleFunc("/products", s.handleProducts).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handlePutSettings).Methods(http.MethodPut)
	api.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
