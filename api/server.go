package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/wildgrid/patrolsim/patrol/engine"
	"github.com/wildgrid/patrolsim/patrol/service"
	"github.com/wildgrid/patrolsim/transport/websocket"
)

// Server represents the REST API server.
type Server struct {
	service service.PatrolService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server.
func NewServer(patrolService service.PatrolService, hub *websocket.Hub) *Server {
	s := &Server{
		service: patrolService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Plan management
	api.HandleFunc("/plans", s.handleCreatePlan).Methods("POST")
	api.HandleFunc("/plans", s.handleListPlans).Methods("GET")
	api.HandleFunc("/plans/{id}", s.handleGetPlan).Methods("GET")
	api.HandleFunc("/plans/{id}", s.handleDeletePlan).Methods("DELETE")
	api.HandleFunc("/plans/{id}/recompute", s.handleRecompute).Methods("POST")

	// Plan data
	api.HandleFunc("/plans/{id}/routes", s.handleGetRoutes).Methods("GET")
	api.HandleFunc("/plans/{id}/coverage", s.handleGetCoverage).Methods("GET")
	api.HandleFunc("/plans/{id}/stats", s.handleGetStats).Methods("GET")

	// Scenarios
	api.HandleFunc("/scenarios", s.handleListScenarios).Methods("GET")
	api.HandleFunc("/scenarios", s.handleCreateScenario).Methods("POST")
	api.HandleFunc("/scenarios/{name}", s.handleGetScenario).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// planErrorStatus maps computation failures to HTTP statuses: rejected
// inputs are the caller's fault, everything else is ours.
func planErrorStatus(err error) int {
	if errors.Is(err, engine.ErrInvalidParameters) || errors.Is(err, engine.ErrNoPassableCells) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Plan Handlers

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req service.PlanRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	plan, err := s.service.CreatePlan(r.Context(), &req)
	if err != nil {
		respondError(w, planErrorStatus(err), err.Error())
		return
	}

	s.hub.BroadcastEvent(plan.ID, "plan_created", plan)
	respondJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.service.ListPlans(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Newest first for display consumers
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})

	respondJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID := vars["id"]

	plan, err := s.service.GetPlan(r.Context(), planID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID := vars["id"]

	if err := s.service.DeletePlan(r.Context(), planID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Plan deleted"})
}

func (s *Server) handleRecompute(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID := vars["id"]

	var req struct {
		Seed *int64 `json:"seed,omitempty"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	plan, err := s.service.Recompute(r.Context(), planID, req.Seed)
	if err != nil {
		respondError(w, planErrorStatus(err), err.Error())
		return
	}

	// Push the replacement result to anyone watching this plan
	s.hub.BroadcastToPlan(plan.ID, plan.Result)

	respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleGetRoutes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	routes, err := s.service.GetRoutes(r.Context(), vars["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, routes)
}

func (s *Server) handleGetCoverage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	coverage, err := s.service.GetCoverage(r.Context(), vars["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, coverage)
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stats, err := s.service.GetStats(r.Context(), vars["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// Scenario Handlers

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.service.ListScenarios(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, scenarios)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	scenario, err := s.service.LoadScenario(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, scenario)
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string           `json:"name"`
		Scenario *engine.Scenario `json:"scenario"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Scenario == nil {
		respondError(w, http.StatusBadRequest, "name and scenario are required")
		return
	}

	if err := s.service.SaveScenario(r.Context(), req.Name, req.Scenario); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Scenario saved", "scenario_id": req.Name})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	planID := r.URL.Query().Get("plan")
	if planID == "" {
		respondError(w, http.StatusBadRequest, "plan query parameter is required")
		return
	}

	s.hub.ServeWS(w, r, planID)
}
