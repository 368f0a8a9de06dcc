package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"fitplanner/internal/app"
	"fitplanner/internal/auth"
	"fitplanner/internal/models"
	"fitplanner/internal/planner"
	"fitplanner/internal/screens"
	"fitplanner/internal/validation"
)

const maxBodyBytes = 1 << 20

type RateLimiter interface {
	IsRateLimited(ctx context.Context, ip string, limit int, window time.Duration) bool
}

type RateLimit struct {
	Max    int
	Window time.Duration
}

type Handler struct {
	sessions *app.Registry
	limiter  RateLimiter
	limit    RateLimit
}

// NewHandler builds the screen handlers. limiter may be nil to disable rate
// limiting.
func NewHandler(sessions *app.Registry, limiter RateLimiter, limit RateLimit) *Handler {
	return &Handler{
		sessions: sessions,
		limiter:  limiter,
		limit:    limit,
	}
}

// Routes registers every screen endpoint behind rate limiting and authMW.
func (h *Handler) Routes(authMW *auth.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	protected := func(fn http.HandlerFunc) http.Handler {
		return h.RateLimited(authMW.ValidateToken(fn))
	}

	mux.Handle("GET /api/onboarding", protected(h.GetOnboarding))
	mux.Handle("PUT /api/onboarding/profile", protected(h.PutProfile))
	mux.Handle("PUT /api/onboarding/units", protected(h.PutUnits))
	mux.Handle("PUT /api/onboarding/display", protected(h.PutDisplay))
	mux.Handle("POST /api/onboarding/submit", protected(h.SubmitProfile))

	mux.Handle("GET /api/dashboard", protected(h.GetDashboard))
	mux.Handle("PUT /api/dashboard/day-mode", protected(h.PutDayMode))
	mux.Handle("POST /api/dashboard/compliance", protected(h.PostCompliance))
	mux.Handle("PUT /api/dashboard/checkin", protected(h.PutCheckinForm))
	mux.Handle("POST /api/dashboard/checkin", protected(h.SubmitCheckin))

	mux.Handle("GET /api/meal-plan", protected(h.GetMealPlan))
	mux.Handle("GET /api/grocery", protected(h.GetGrocery))
	mux.Handle("GET /api/brands", protected(h.GetBrands))
	mux.Handle("GET /api/progress", protected(h.GetProgress))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

func (h *Handler) RateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter != nil {
			clientIP := clientIP(r)
			if h.limiter.IsRateLimited(r.Context(), clientIP, h.limit.Max, h.limit.Window) {
				slog.Warn("Rate limit exceeded", "ip", clientIP)
				writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) session(r *http.Request) *app.Session {
	return h.sessions.Session(r.Context(), auth.UserID(r.Context()))
}

func (h *Handler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session(r).Onboarding.State())
}

func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if !decodeBody(w, r, &profile) {
		return
	}
	s := h.session(r)
	s.Onboarding.SetProfile(profile)
	writeJSON(w, http.StatusOK, s.Onboarding.State())
}

type unitsRequest struct {
	HeightUnit models.HeightUnit `json:"height_unit"`
	WeightUnit models.WeightUnit `json:"weight_unit"`
}

func (h *Handler) PutUnits(w http.ResponseWriter, r *http.Request) {
	var req unitsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s := h.session(r)
	if err := s.Onboarding.SetUnits(req.HeightUnit, req.WeightUnit); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.Onboarding.State())
}

type displayRequest struct {
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

func (h *Handler) PutDisplay(w http.ResponseWriter, r *http.Request) {
	var req displayRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s := h.session(r)
	if req.Height != nil {
		s.Onboarding.SetDisplayHeight(*req.Height)
	}
	if req.Weight != nil {
		s.Onboarding.SetDisplayWeight(*req.Weight)
	}
	writeJSON(w, http.StatusOK, s.Onboarding.State())
}

func (h *Handler) SubmitProfile(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	start := time.Now()

	_, err := s.Onboarding.Submit(r.Context())
	switch {
	case err == nil:
		slog.Info("Plan generated", "user_id", s.UserID, "duration", time.Since(start))
		writeJSON(w, http.StatusOK, s.Dashboard.State())
	case validation.IsRuleError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, screens.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, screens.ErrNoClient):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writePlannerError(w, s.Onboarding.State().ErrorMessage, err)
	}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session(r).Dashboard.State())
}

type dayModeRequest struct {
	DayMode screens.DayMode `json:"day_mode"`
}

func (h *Handler) PutDayMode(w http.ResponseWriter, r *http.Request) {
	var req dayModeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s := h.session(r)
	if err := s.Dashboard.SetDayMode(req.DayMode); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.Dashboard.State())
}

type complianceRequest struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

func (h *Handler) PostCompliance(w http.ResponseWriter, r *http.Request) {
	var req complianceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	compliance, ok := h.session(r).Dashboard.UpdateCompliance(req.ProteinG, req.CarbsG, req.FatG)
	if !ok {
		writeError(w, http.StatusConflict, screens.ErrNoPlan.Error())
		return
	}
	writeJSON(w, http.StatusOK, compliance)
}

func (h *Handler) PutCheckinForm(w http.ResponseWriter, r *http.Request) {
	var form screens.CheckinForm
	if !decodeBody(w, r, &form) {
		return
	}
	s := h.session(r)
	s.Dashboard.SetCheckinForm(form)
	writeJSON(w, http.StatusOK, s.Dashboard.State())
}

func (h *Handler) SubmitCheckin(w http.ResponseWriter, r *http.Request) {
	state, err := h.session(r).Dashboard.SubmitCheckin(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, state)
	case errors.Is(err, screens.ErrNoPlan), errors.Is(err, screens.ErrCheckinInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, screens.ErrNoClient):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writePlannerError(w, err.Error(), err)
	}
}

func (h *Handler) GetMealPlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"days": h.session(r).MealPlan.Items()})
}

func (h *Handler) GetGrocery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.session(r).Grocery.Items()})
}

func (h *Handler) GetBrands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"brands": h.session(r).Brands.Items()})
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	s := h.session(r)
	entries, err := s.Progress(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list progress", "user_id", s.UserID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Progress log unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writePlannerError(w http.ResponseWriter, message string, err error) {
	body := map[string]string{"error": message}
	var pe *planner.Error
	if errors.As(err, &pe) {
		body["kind"] = pe.Kind.String()
	}
	writeJSON(w, http.StatusBadGateway, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("JSON marshal error", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
