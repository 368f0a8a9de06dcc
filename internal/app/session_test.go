package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitplanner/internal/config"
	"fitplanner/internal/models"
	"fitplanner/internal/models/sample"
	"fitplanner/internal/planner"
	"fitplanner/internal/screens"
	"fitplanner/internal/store"
)

func plannerServer(t *testing.T, handler http.HandlerFunc) *planner.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return planner.NewClient(&config.Config{PlannerBaseURL: server.URL})
}

func TestSessionFansOutPlan(t *testing.T) {
	plan := sample.Plan(2300, 4)
	client := plannerServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(plan)
	})
	st := store.NewMemory()
	s := NewSession("u1", client, st, nil)

	p := models.DefaultProfile()
	p.CountryCode = "us"
	s.Onboarding.SetProfile(p)

	_, err := s.Onboarding.Submit(context.Background())
	require.NoError(t, err)

	target, ok := s.Dashboard.SelectedMacroTarget()
	require.True(t, ok)
	assert.Equal(t, plan.Macros.TrainingDay, target)
	assert.Equal(t, screens.DayTraining, s.Dashboard.DayMode())

	assert.Equal(t, plan.MealPlan.Days, s.MealPlan.Items())
	assert.Equal(t, plan.GroceryList, s.Grocery.Items())

	brands := s.Brands.Items()
	require.Len(t, brands, 2)
	assert.Equal(t, "Ashfields", brands[0].Brand)

	state := s.Dashboard.State()
	require.NotNil(t, state.Profile)
	assert.Equal(t, "US", state.Profile.CountryCode)

	snap, err := st.LatestProfile(context.Background(), "u1")
	require.NoError(t, err)
	saved, err := snap.Profile()
	require.NoError(t, err)
	assert.Equal(t, "US", saved.CountryCode)
}

func TestSessionPlanFailureLeavesScreensUntouched(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"bad status": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"meal_plan":`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			st := store.NewMemory()
			s := NewSession("u1", plannerServer(t, handler), st, nil)

			_, err := s.Onboarding.Submit(context.Background())
			require.Error(t, err)
			assert.NotEmpty(t, s.Onboarding.State().ErrorMessage)

			_, ok := s.Dashboard.SelectedMacroTarget()
			assert.False(t, ok)
			assert.Zero(t, s.MealPlan.Len())
			assert.Zero(t, s.Grocery.Len())
			assert.Zero(t, s.Brands.Len())

			_, err = st.LatestProfile(context.Background(), "u1")
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestSessionPlanBadStatusKind(t *testing.T) {
	s := NewSession("u1", plannerServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), nil, nil)

	_, err := s.Onboarding.Submit(context.Background())
	var pe *planner.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, planner.KindBadStatus, pe.Kind)
	assert.Equal(t, 500, pe.StatusCode)
}

func TestSessionCheckinAppendsProgress(t *testing.T) {
	client := plannerServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/generate-meals":
			json.NewEncoder(w).Encode(sample.Plan(2300, 4))
		case "/weekly-checkin":
			w.Write([]byte(`{"weekly_change_percent":0.7,"adjustment_kcal":0,"new_calorie_target":2300,"note":"ok"}`))
		}
	})
	st := store.NewMemory()
	s := NewSession("u1", client, st, nil)
	fixed := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, err := s.Onboarding.Submit(context.Background())
	require.NoError(t, err)

	s.Dashboard.SetCheckinForm(screens.CheckinForm{PreviousWeightKg: 71, CurrentWeightKg: 70.5})
	state, err := s.Dashboard.SubmitCheckin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, screens.CheckinSucceeded, state.Status)

	entries, err := s.Progress(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 70.5, entries[0].WeightKg)
	assert.True(t, entries[0].Date.Equal(fixed))
}

func TestSessionWithoutStore(t *testing.T) {
	s := NewSession("u1", nil, nil, nil)
	assert.NoError(t, s.Restore(context.Background()))
	entries, err := s.Progress(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRegistryRestoresProfile(t *testing.T) {
	st := store.NewMemory()
	saved := models.DefaultProfile()
	saved.Age = 44
	snap, err := store.NewProfileSnapshot(saved, time.Now())
	require.NoError(t, err)
	require.NoError(t, st.SaveProfile(context.Background(), "u1", snap))

	reg := NewRegistry(nil, st, nil)
	s := reg.Session(context.Background(), "u1")
	assert.Equal(t, 44, s.Onboarding.Profile().Age)
	assert.Same(t, s, reg.Session(context.Background(), "u1"))

	other := reg.Session(context.Background(), "u2")
	assert.NotSame(t, s, other)
	assert.Equal(t, models.DefaultProfile(), other.Onboarding.Profile())
}

type flakyStore struct {
	*store.Memory
	failing atomic.Bool
}

func (f *flakyStore) LatestProfile(ctx context.Context, userID string) (store.ProfileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return store.ProfileSnapshot{}, err
	}
	if f.failing.Load() {
		return store.ProfileSnapshot{}, errors.New("connection refused")
	}
	return f.Memory.LatestProfile(ctx, userID)
}

func savedProfileStore(t *testing.T, age int) *flakyStore {
	t.Helper()
	st := &flakyStore{Memory: store.NewMemory()}
	saved := models.DefaultProfile()
	saved.Age = age
	snap, err := store.NewProfileSnapshot(saved, time.Now())
	require.NoError(t, err)
	require.NoError(t, st.SaveProfile(context.Background(), "u1", snap))
	return st
}

func TestRegistryRetriesFailedRestore(t *testing.T) {
	st := savedProfileStore(t, 44)
	st.failing.Store(true)
	reg := NewRegistry(nil, st, nil)

	first := reg.Session(context.Background(), "u1")
	assert.Equal(t, 31, first.Onboarding.Profile().Age)
	assert.Zero(t, reg.Len())

	st.failing.Store(false)
	second := reg.Session(context.Background(), "u1")
	assert.NotSame(t, first, second)
	assert.Equal(t, 44, second.Onboarding.Profile().Age)
	assert.Same(t, second, reg.Session(context.Background(), "u1"))
}

func TestRegistryRestoreIgnoresCallerCancellation(t *testing.T) {
	st := savedProfileStore(t, 44)
	reg := NewRegistry(nil, st, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := reg.Session(ctx, "u1")
	assert.Equal(t, 44, s.Onboarding.Profile().Age)
	assert.Same(t, s, reg.Session(context.Background(), "u1"))
}

func TestRegistryEvictsLeastRecentlyUsed(t *testing.T) {
	reg := NewRegistry(nil, store.NewMemory(), nil).WithMaxSessions(2)
	clock := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	reg.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	a := reg.Session(context.Background(), "a")
	b := reg.Session(context.Background(), "b")
	assert.Same(t, a, reg.Session(context.Background(), "a"))

	reg.Session(context.Background(), "c")
	assert.Equal(t, 2, reg.Len())

	assert.Same(t, a, reg.Session(context.Background(), "a"))
	assert.NotSame(t, b, reg.Session(context.Background(), "b"))
}
