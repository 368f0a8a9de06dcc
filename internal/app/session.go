// Package app wires the screen controllers of one user into a session.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fitplanner/internal/models"
	"fitplanner/internal/planner"
	"fitplanner/internal/screens"
	"fitplanner/internal/store"
)

const storeTimeout = 3 * time.Second

type Planner interface {
	screens.PlanGenerator
	screens.CheckinSubmitter
}

// Session is the composition root for one user. The onboarding controller is
// the only writer of plans; every successful plan is handed to the other
// controllers once.
type Session struct {
	UserID     string
	Onboarding *screens.Onboarding
	Dashboard  *screens.Dashboard
	MealPlan   *screens.MealPlan
	Grocery    *screens.Grocery
	Brands     *screens.BrandSuggestions

	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewSession builds and wires a session. st may be nil, in which case nothing
// is persisted.
func NewSession(userID string, client Planner, st store.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("user_id", userID)

	s := &Session{
		UserID:     userID,
		Onboarding: screens.NewOnboarding(client, logger),
		Dashboard:  screens.NewDashboard(client, logger),
		MealPlan:   screens.NewSlice[models.DayMealPlan](),
		Grocery:    screens.NewSlice[models.GroceryItem](),
		Brands:     screens.NewSlice[models.BrandSuggestion](),
		store:      st,
		logger:     logger,
		now:        time.Now,
	}
	s.Onboarding.OnPlanGenerated(s.planGenerated)
	s.Dashboard.OnCheckinCompleted(s.checkinCompleted)
	return s
}

func (s *Session) planGenerated(plan models.PlanResponse, profile models.Profile) {
	s.Dashboard.Apply(plan, profile)
	s.MealPlan.Apply(plan.MealPlan.Days)
	s.Grocery.Apply(plan.GroceryList)
	s.Brands.Apply(models.BrandSuggestionsFromGrocery(plan.GroceryList))

	s.logger.Info("Plan applied",
		"days", len(plan.MealPlan.Days), "grocery_items", len(plan.GroceryList), "calorie_target", plan.Calories.Target)

	if s.store == nil {
		return
	}
	snap, err := store.NewProfileSnapshot(profile, s.now())
	if err != nil {
		s.logger.Error("Failed to encode profile snapshot", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := s.store.SaveProfile(ctx, s.UserID, snap); err != nil {
		s.logger.Warn("Failed to save profile snapshot", "error", err)
	}
}

func (s *Session) checkinCompleted(in planner.CheckinInput, _ models.WeeklyCheckinResponse) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	entry := store.ProgressEntry{Date: s.now(), WeightKg: in.CurrentWeightKg}
	if err := s.store.AppendProgress(ctx, s.UserID, entry); err != nil {
		s.logger.Warn("Failed to append progress entry", "error", err)
	}
}

// Restore loads the latest saved profile into the onboarding form. A missing
// snapshot is not an error.
func (s *Session) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	snap, err := s.store.LatestProfile(ctx, s.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	profile, err := snap.Profile()
	if err != nil {
		return err
	}
	s.Onboarding.SetProfile(profile)
	return nil
}

// Progress lists the user's logged weights, oldest first.
func (s *Session) Progress(ctx context.Context, limit int) ([]store.ProgressEntry, error) {
	if s.store == nil {
		return []store.ProgressEntry{}, nil
	}
	return s.store.ListProgress(ctx, s.UserID, limit)
}

const defaultMaxSessions = 10000

type registryEntry struct {
	session  *Session
	lastSeen time.Time
}

// Registry keeps one session per user. When full, the least recently used
// session is dropped; its profile comes back from the store on the next
// request.
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*registryEntry
	maxSessions int
	client      Planner
	store       store.Store
	logger      *slog.Logger
	now         func() time.Time
}

func NewRegistry(client Planner, st store.Store, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		sessions:    make(map[string]*registryEntry),
		maxSessions: defaultMaxSessions,
		client:      client,
		store:       st,
		logger:      logger,
		now:         time.Now,
	}
}

// WithMaxSessions caps the number of cached sessions. n <= 0 keeps the default.
func (r *Registry) WithMaxSessions(n int) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > 0 {
		r.maxSessions = n
	}
	return r
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Session returns the user's session, creating and restoring it on first use.
// Restore runs outside the registry lock and is not bound to the caller's
// cancellation. A session whose restore failed is not cached, so the next
// request tries again.
func (r *Registry) Session(ctx context.Context, userID string) *Session {
	if s, ok := r.lookup(userID); ok {
		return s
	}

	s := NewSession(userID, r.client, r.store, r.logger)
	restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()
	if err := s.Restore(restoreCtx); err != nil {
		r.logger.Warn("Failed to restore profile", "user_id", userID, "error", err)
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[userID]; ok {
		e.lastSeen = r.now()
		return e.session
	}
	if len(r.sessions) >= r.maxSessions {
		r.evictOldest()
	}
	r.sessions[userID] = &registryEntry{session: s, lastSeen: r.now()}
	return s
}

func (r *Registry) lookup(userID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[userID]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.session, true
}

func (r *Registry) evictOldest() {
	var (
		oldest     string
		oldestSeen time.Time
		found      bool
	)
	for id, e := range r.sessions {
		if !found || e.lastSeen.Before(oldestSeen) {
			oldest, oldestSeen, found = id, e.lastSeen, true
		}
	}
	delete(r.sessions, oldest)
	r.logger.Debug("Evicted idle session", "user_id", oldest)
}
