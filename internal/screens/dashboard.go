package screens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fitplanner/internal/models"
	"fitplanner/internal/planner"
)

var (
	ErrNoPlan          = errors.New("no plan has been generated yet")
	ErrCheckinInFlight = errors.New("a check-in is already in progress")
	ErrUnknownDayMode  = errors.New("unknown day mode")
)

const complianceCap = 1.5

type DayMode string

const (
	DayTraining DayMode = "training"
	DayRest     DayMode = "rest"
)

type CheckinStatus int

const (
	CheckinNone CheckinStatus = iota
	CheckinSucceeded
	CheckinFailed
)

func (s CheckinStatus) String() string {
	switch s {
	case CheckinSucceeded:
		return "success"
	case CheckinFailed:
		return "failed"
	default:
		return "none"
	}
}

// CheckinState is the outcome of the latest check-in. A failure drops the
// previous response rather than showing stale numbers.
type CheckinState struct {
	Status   CheckinStatus
	Response *models.WeeklyCheckinResponse
	Err      error
}

func (c CheckinState) MarshalJSON() ([]byte, error) {
	out := struct {
		Status   string                        `json:"status"`
		Response *models.WeeklyCheckinResponse `json:"response,omitempty"`
		Error    string                        `json:"error,omitempty"`
	}{Status: c.Status.String(), Response: c.Response}
	if c.Err != nil {
		out.Error = c.Err.Error()
	}
	return json.Marshal(out)
}

type Compliance struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type CheckinForm struct {
	PreviousWeightKg float64  `json:"previous_weight_kg"`
	CurrentWeightKg  float64  `json:"current_weight_kg"`
	WaistCm          *float64 `json:"waist_cm,omitempty"`
}

type CheckinSubmitter interface {
	WeeklyCheckin(ctx context.Context, in planner.CheckinInput) (models.WeeklyCheckinResponse, error)
}

// CheckinCompletedFunc is called after a successful check-in.
type CheckinCompletedFunc func(in planner.CheckinInput, resp models.WeeklyCheckinResponse)

type DashboardState struct {
	Plan            *models.PlanResponse `json:"plan,omitempty"`
	Profile         *models.Profile      `json:"profile,omitempty"`
	DayMode         DayMode              `json:"day_mode"`
	SelectedTarget  *models.MacroTargets `json:"selected_target,omitempty"`
	Compliance      Compliance           `json:"compliance"`
	CheckinForm     CheckinForm          `json:"checkin_form"`
	Checkin         CheckinState         `json:"checkin"`
	CheckinInFlight bool                 `json:"checkin_in_flight"`
}

type Dashboard struct {
	mu              sync.Mutex
	plan            *models.PlanResponse
	profile         *models.Profile
	dayMode         DayMode
	compliance      Compliance
	form            CheckinForm
	checkin         CheckinState
	checkinInFlight bool

	client      CheckinSubmitter
	onCompleted CheckinCompletedFunc
	logger      *slog.Logger
}

func NewDashboard(client CheckinSubmitter, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		dayMode: DayTraining,
		form:    CheckinForm{PreviousWeightKg: 71, CurrentWeightKg: 70.5},
		client:  client,
		logger:  logger,
	}
}

func (d *Dashboard) OnCheckinCompleted(fn CheckinCompletedFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onCompleted = fn
}

// Apply installs a new plan and seeds both check-in weights from the profile.
func (d *Dashboard) Apply(plan models.PlanResponse, profile models.Profile) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.plan = &plan
	d.profile = &profile
	d.form.PreviousWeightKg = profile.WeightKg
	d.form.CurrentWeightKg = profile.WeightKg
}

func (d *Dashboard) SetDayMode(mode DayMode) error {
	if mode != DayTraining && mode != DayRest {
		return fmt.Errorf("%w: %q", ErrUnknownDayMode, mode)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dayMode = mode
	return nil
}

func (d *Dashboard) DayMode() DayMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dayMode
}

// SelectedMacroTarget returns the macro target for the current day mode. The
// second result is false until a plan has been applied.
func (d *Dashboard) SelectedMacroTarget() (models.MacroTargets, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selectedMacroTarget()
}

func (d *Dashboard) selectedMacroTarget() (models.MacroTargets, bool) {
	if d.plan == nil {
		return models.MacroTargets{}, false
	}
	if d.dayMode == DayRest {
		return d.plan.Macros.RestDay, true
	}
	return d.plan.Macros.TrainingDay, true
}

// UpdateCompliance recomputes all three ratios against the selected target.
// It does nothing before a plan is applied.
func (d *Dashboard) UpdateCompliance(proteinG, carbsG, fatG float64) (Compliance, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	target, ok := d.selectedMacroTarget()
	if !ok {
		return d.compliance, false
	}
	d.compliance = Compliance{
		Protein: ratio(proteinG, target.ProteinG),
		Carbs:   ratio(carbsG, target.CarbsG),
		Fat:     ratio(fatG, target.FatG),
	}
	return d.compliance, true
}

func ratio(consumed float64, target int) float64 {
	return min(complianceCap, consumed/float64(max(target, 1)))
}

func (d *Dashboard) Compliance() Compliance {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.compliance
}

func (d *Dashboard) SetCheckinForm(form CheckinForm) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if form.WaistCm != nil {
		w := *form.WaistCm
		form.WaistCm = &w
	}
	d.form = form
}

func (d *Dashboard) Checkin() CheckinState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.checkin
}

// SubmitCheckin sends the check-in form with the held plan's calorie target.
// Without a plan it returns ErrNoPlan and changes nothing.
func (d *Dashboard) SubmitCheckin(ctx context.Context) (CheckinState, error) {
	d.mu.Lock()
	if d.plan == nil {
		d.mu.Unlock()
		return CheckinState{}, ErrNoPlan
	}
	if d.checkinInFlight {
		d.mu.Unlock()
		return CheckinState{}, ErrCheckinInFlight
	}
	if d.client == nil {
		d.checkin = CheckinState{Status: CheckinFailed, Err: ErrNoClient}
		state := d.checkin
		d.mu.Unlock()
		return state, ErrNoClient
	}
	in := planner.CheckinInput{
		PreviousWeightKg:      d.form.PreviousWeightKg,
		CurrentWeightKg:       d.form.CurrentWeightKg,
		PreviousCalorieTarget: d.plan.Calories.Target,
		WaistCm:               d.form.WaistCm,
	}
	d.checkinInFlight = true
	d.mu.Unlock()

	resp, err := d.client.WeeklyCheckin(ctx, in)

	d.mu.Lock()
	d.checkinInFlight = false
	if err != nil {
		d.logger.Warn("Weekly check-in failed", "error", err)
		d.checkin = CheckinState{Status: CheckinFailed, Err: err}
		state := d.checkin
		d.mu.Unlock()
		return state, err
	}
	d.checkin = CheckinState{Status: CheckinSucceeded, Response: &resp}
	state := d.checkin
	onCompleted := d.onCompleted
	d.mu.Unlock()

	d.logger.Info("Weekly check-in completed",
		"adjustment_kcal", resp.AdjustmentKcal, "new_calorie_target", resp.NewCalorieTarget)
	if onCompleted != nil {
		onCompleted(in, resp)
	}
	return state, nil
}

func (d *Dashboard) State() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := DashboardState{
		Plan:            d.plan,
		Profile:         d.profile,
		DayMode:         d.dayMode,
		Compliance:      d.compliance,
		CheckinForm:     d.form,
		Checkin:         d.checkin,
		CheckinInFlight: d.checkinInFlight,
	}
	if target, ok := d.selectedMacroTarget(); ok {
		state.SelectedTarget = &target
	}
	return state
}
