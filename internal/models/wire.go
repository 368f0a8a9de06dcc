package models

// PreferredRetailers is sent with every generate-meals request.
var PreferredRetailers = []string{"aldi", "lidl", "tesco"}

type GenerateMealsRequest struct {
	Plan PlanPayload `json:"plan"`
}

type PlanPayload struct {
	HeightCm             float64       `json:"height_cm"`
	WeightKg             float64       `json:"weight_kg"`
	Age                  int           `json:"age"`
	Gender               Gender        `json:"gender"`
	BodyFatPercent       float64       `json:"body_fat_percent"`
	TargetBodyFatPercent float64       `json:"target_body_fat_percent"`
	ActivityLevel        ActivityLevel `json:"activity_level"`
	TrainingDaysPerWeek  int           `json:"training_days_per_week"`
	TimelineWeeks        int           `json:"timeline_weeks"`
	CountryCode          string        `json:"country_code"`
	PreferredRetailers   []string      `json:"preferred_retailers"`
	GoalMode             string        `json:"goal_mode"`
}

func NewGenerateMealsRequest(p Profile) GenerateMealsRequest {
	retailers := make([]string, len(PreferredRetailers))
	copy(retailers, PreferredRetailers)

	return GenerateMealsRequest{
		Plan: PlanPayload{
			HeightCm:             p.HeightCm,
			WeightKg:             p.WeightKg,
			Age:                  p.Age,
			Gender:               p.Gender,
			BodyFatPercent:       p.BodyFatPercent,
			TargetBodyFatPercent: p.TargetBodyFatPercent,
			ActivityLevel:        p.ActivityLevel,
			TrainingDaysPerWeek:  p.TrainingDaysPerWeek,
			TimelineWeeks:        p.TimelineWeeks,
			CountryCode:          p.CountryCode,
			PreferredRetailers:   retailers,
			GoalMode:             p.GoalMode(),
		},
	}
}

// WeeklyCheckinRequest omits waist_cm entirely when WaistCm is nil.
type WeeklyCheckinRequest struct {
	PreviousWeightKg      float64  `json:"previous_weight_kg"`
	CurrentWeightKg       float64  `json:"current_weight_kg"`
	PreviousCalorieTarget int      `json:"previous_calorie_target"`
	WaistCm               *float64 `json:"waist_cm,omitempty"`
}
