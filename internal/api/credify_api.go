package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/credify-app/credify/internal/domain"
)

// ─── Computed views ──────────────────────────────────────────────────────────

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Profile())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Summary(date))
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"streaks": s.engine.Streaks(),
		"stats":   s.engine.StreakStats(),
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	weeks := 0
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "weeks must be a positive integer")
			return
		}
		weeks = n
	}
	days := s.engine.Calendar(weeks)
	if days == nil {
		days = []domain.DaySummary{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days": days,
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": s.engine.Achievements(),
	})
}

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	challenges := s.engine.Challenges(date)
	if challenges == nil {
		challenges = []domain.DailyChallenge{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"challenges": challenges,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"expense_categories": domain.ExpenseCategories,
		"workout_types":      domain.WorkoutTypes,
		"mood_options":       domain.MoodOptions,
	})
}

// ─── Activity logging ────────────────────────────────────────────────────────

type expenseRequest struct {
	Amount      float64     `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        domain.Date `json:"date,omitempty"`
}

func (s *Server) handleLogExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	exp, err := s.engine.LogExpense(req.Amount, req.Category, req.Description, req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exp)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.engine.DeleteExpense(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

type workoutRequest struct {
	Type     string      `json:"type"`
	Duration int         `json:"duration"`
	Calories int         `json:"calories"`
	Notes    string      `json:"notes"`
	Date     domain.Date `json:"date,omitempty"`
}

func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	workout, err := s.engine.LogWorkout(req.Type, req.Duration, req.Calories, req.Notes, req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

type waterRequest struct {
	Glasses int         `json:"glasses"`
	Date    domain.Date `json:"date,omitempty"`
}

func (s *Server) handleLogWater(w http.ResponseWriter, r *http.Request) {
	var req waterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log, err := s.engine.LogWater(req.Glasses, req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

type mealRequest struct {
	Type        domain.MealType `json:"type"`
	Description string          `json:"description"`
	Calories    int             `json:"calories"`
	Date        domain.Date     `json:"date,omitempty"`
}

func (s *Server) handleLogMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	meal, err := s.engine.LogMeal(req.Type, req.Description, req.Calories, req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}

type meditationRequest struct {
	Duration int                   `json:"duration"`
	Type     domain.MeditationType `json:"type"`
	Notes    string                `json:"notes"`
	Date     domain.Date           `json:"date,omitempty"`
}

func (s *Server) handleLogMeditation(w http.ResponseWriter, r *http.Request) {
	var req meditationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	med, err := s.engine.LogMeditation(req.Duration, req.Type, req.Notes, req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, med)
}

type journalRequest struct {
	Content string      `json:"content"`
	Mood    string      `json:"mood"`
	Date    domain.Date `json:"date,omitempty"`
}

func (s *Server) handleLogJournal(w http.ResponseWriter, r *http.Request) {
	var req journalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entry, err := s.engine.LogJournal(req.Content, req.Mood, req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type gratitudeRequest struct {
	Items []string    `json:"items"`
	Date  domain.Date `json:"date,omitempty"`
}

func (s *Server) handleLogGratitude(w http.ResponseWriter, r *http.Request) {
	var req gratitudeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log, err := s.engine.LogGratitude(req.Items, req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

type moodRequest struct {
	Mood  string      `json:"mood"`
	Notes string      `json:"notes"`
	Date  domain.Date `json:"date,omitempty"`
}

func (s *Server) handleLogMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entry, err := s.engine.LogMood(req.Mood, req.Notes, req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ─── Budgets and goals ───────────────────────────────────────────────────────

type budgetRequest struct {
	Category string              `json:"category"`
	Amount   float64             `json:"amount"`
	Period   domain.BudgetPeriod `json:"period"`
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	budget, err := s.engine.SetBudget(req.Category, req.Amount, req.Period)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

type goalRequest struct {
	Title    string      `json:"title"`
	Target   float64     `json:"target"`
	Deadline domain.Date `json:"deadline,omitempty"`
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := s.engine.AddGoal(req.Title, req.Target, req.Deadline)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

type goalProgressRequest struct {
	Current float64 `json:"current"`
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	var req goalProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := s.engine.UpdateGoalProgress(chi.URLParam(r, "id"), req.Current)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// ─── Settings ────────────────────────────────────────────────────────────────

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Settings())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.engine.UpdateSettings(req))
}

// ─── Lifecycle ───────────────────────────────────────────────────────────────

func (s *Server) handleReevaluate(w http.ResponseWriter, r *http.Request) {
	s.engine.Reevaluate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.engine.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="credify-backup.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 32<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.Import(data); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "reset requires ?confirm=true")
		return
	}
	if err := s.engine.Reset(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
