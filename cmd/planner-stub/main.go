package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"fitplanner/internal/config"
	"fitplanner/internal/models"
	"fitplanner/internal/models/sample"
)

func routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /generate-meals", func(w http.ResponseWriter, r *http.Request) {
		var req models.GenerateMealsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		target := calorieTarget(req.Plan)
		slog.Info("Generating meals",
			"request_id", r.Header.Get("X-Request-ID"), "goal_mode", req.Plan.GoalMode, "calorie_target", target)

		writeJSON(w, sample.Plan(target, req.Plan.TrainingDaysPerWeek))
	})

	mux.HandleFunc("POST /weekly-checkin", func(w http.ResponseWriter, r *http.Request) {
		var req models.WeeklyCheckinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if req.PreviousWeightKg <= 0 {
			http.Error(w, "previous_weight_kg must be positive", http.StatusUnprocessableEntity)
			return
		}

		resp := weeklyAdjustment(req)
		slog.Info("Weekly check-in",
			"request_id", r.Header.Get("X-Request-ID"), "change_percent", resp.WeeklyChangePercent, "adjustment_kcal", resp.AdjustmentKcal)

		writeJSON(w, resp)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	addr := fmt.Sprintf(":%s", cfg.StubPort)

	slog.Info("Planner stub listening", "addr", addr)
	if err := http.ListenAndServe(addr, routes()); err != nil {
		slog.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}
}
