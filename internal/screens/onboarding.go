package screens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"fitplanner/internal/models"
	"fitplanner/internal/planner"
	"fitplanner/internal/validation"
)

var (
	ErrSubmitInFlight = errors.New("a plan request is already in progress")
	ErrNoClient       = errors.New("API client unavailable.")
	ErrUnknownUnit    = errors.New("unknown unit")
)

const genericPlanError = "Failed to generate plan. Check backend URL and try again."

type PlanGenerator interface {
	GeneratePlan(ctx context.Context, profile models.Profile) (models.PlanResponse, error)
}

// PlanGeneratedFunc receives the new plan and the profile it was generated from.
type PlanGeneratedFunc func(plan models.PlanResponse, profile models.Profile)

type OnboardingState struct {
	Profile       models.Profile    `json:"profile"`
	HeightUnit    models.HeightUnit `json:"height_unit"`
	WeightUnit    models.WeightUnit `json:"weight_unit"`
	DisplayHeight float64           `json:"display_height"`
	DisplayWeight float64           `json:"display_weight"`
	ErrorMessage  string            `json:"error_message,omitempty"`
	Loading       bool              `json:"loading"`
}

// Onboarding owns the editable profile and submits it for planning.
type Onboarding struct {
	mu           sync.Mutex
	profile      models.Profile
	heightUnit   models.HeightUnit
	weightUnit   models.WeightUnit
	errorMessage string
	loading      bool
	submissionID string

	client      PlanGenerator
	onGenerated PlanGeneratedFunc
	logger      *slog.Logger
}

func NewOnboarding(client PlanGenerator, logger *slog.Logger) *Onboarding {
	if logger == nil {
		logger = slog.Default()
	}
	return &Onboarding{
		profile:    models.DefaultProfile(),
		heightUnit: models.HeightCm,
		weightUnit: models.WeightKg,
		client:     client,
		logger:     logger,
	}
}

func (o *Onboarding) OnPlanGenerated(fn PlanGeneratedFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onGenerated = fn
}

func (o *Onboarding) Profile() models.Profile {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.profile
}

func (o *Onboarding) SetProfile(p models.Profile) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.profile = p
}

func (o *Onboarding) SetUnits(h models.HeightUnit, w models.WeightUnit) error {
	if h != models.HeightCm && h != models.HeightIn {
		return fmt.Errorf("%w: height %q", ErrUnknownUnit, h)
	}
	if w != models.WeightKg && w != models.WeightLb {
		return fmt.Errorf("%w: weight %q", ErrUnknownUnit, w)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.heightUnit = h
	o.weightUnit = w
	return nil
}

func (o *Onboarding) DisplayHeight() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.displayHeight()
}

func (o *Onboarding) displayHeight() float64 {
	if o.heightUnit == models.HeightIn {
		return models.CmToInches(o.profile.HeightCm)
	}
	return o.profile.HeightCm
}

// SetDisplayHeight stores v, given in the current height unit, as centimetres.
func (o *Onboarding) SetDisplayHeight(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.heightUnit == models.HeightIn {
		v = models.InchesToCm(v)
	}
	o.profile.HeightCm = v
}

func (o *Onboarding) DisplayWeight() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.displayWeight()
}

func (o *Onboarding) displayWeight() float64 {
	if o.weightUnit == models.WeightLb {
		return models.KgToLb(o.profile.WeightKg)
	}
	return o.profile.WeightKg
}

// SetDisplayWeight stores v, given in the current weight unit, as kilograms.
func (o *Onboarding) SetDisplayWeight(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.weightUnit == models.WeightLb {
		v = models.LbToKg(v)
	}
	o.profile.WeightKg = v
}

func (o *Onboarding) State() OnboardingState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return OnboardingState{
		Profile:       o.profile,
		HeightUnit:    o.heightUnit,
		WeightUnit:    o.weightUnit,
		DisplayHeight: o.displayHeight(),
		DisplayWeight: o.displayWeight(),
		ErrorMessage:  o.errorMessage,
		Loading:       o.loading,
	}
}

// Submit normalizes and validates the profile, then requests a plan. Only one
// submission runs at a time; a concurrent call returns ErrSubmitInFlight and
// leaves the state untouched.
func (o *Onboarding) Submit(ctx context.Context) (models.PlanResponse, error) {
	o.mu.Lock()
	if o.submissionID != "" {
		o.mu.Unlock()
		return models.PlanResponse{}, ErrSubmitInFlight
	}

	o.profile.CountryCode = strings.ToUpper(o.profile.CountryCode)
	if err := validation.Validate(o.profile); err != nil {
		o.errorMessage = err.Error()
		o.mu.Unlock()
		return models.PlanResponse{}, err
	}
	if o.client == nil {
		o.errorMessage = ErrNoClient.Error()
		o.mu.Unlock()
		return models.PlanResponse{}, ErrNoClient
	}

	submissionID := uuid.NewString()
	o.submissionID = submissionID
	o.loading = true
	profile := o.profile
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		if o.submissionID == submissionID {
			o.submissionID = ""
			o.loading = false
		}
		o.mu.Unlock()
	}()

	o.logger.Info("Generating plan", "submission_id", submissionID, "goal_mode", profile.GoalMode())
	plan, err := o.client.GeneratePlan(ctx, profile)
	if err != nil {
		o.logger.Warn("Plan generation failed", "submission_id", submissionID, "error", err)
		o.mu.Lock()
		o.errorMessage = userMessage(err)
		o.mu.Unlock()
		return models.PlanResponse{}, err
	}

	o.mu.Lock()
	o.errorMessage = ""
	onGenerated := o.onGenerated
	o.mu.Unlock()

	if onGenerated != nil {
		onGenerated(plan, profile)
	}
	return plan, nil
}

func userMessage(err error) string {
	var pe *planner.Error
	if errors.As(err, &pe) {
		return pe.Error()
	}
	return genericPlanError
}
