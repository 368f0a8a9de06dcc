package models

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityHigh      ActivityLevel = "high"
	ActivityAthlete   ActivityLevel = "athlete"
)

type Goal string

const (
	GoalMuscleGain    Goal = "muscle_gain"
	GoalFatLoss       Goal = "fat_loss"
	GoalRecomposition Goal = "recomposition"
)

type DietaryPreference string

const (
	DietNone        DietaryPreference = "none"
	DietVegetarian  DietaryPreference = "vegetarian"
	DietVegan       DietaryPreference = "vegan"
	DietHighProtein DietaryPreference = "high_protein"
	DietLowCarb     DietaryPreference = "low_carb"
)

type HeightUnit string

const (
	HeightCm HeightUnit = "cm"
	HeightIn HeightUnit = "in"
)

type WeightUnit string

const (
	WeightKg WeightUnit = "kg"
	WeightLb WeightUnit = "lb"
)

const (
	CmPerInch = 2.54
	LbPerKg   = 2.20462
)

type Profile struct {
	HeightCm             float64           `json:"height_cm"`
	WeightKg             float64           `json:"weight_kg"`
	Age                  int               `json:"age"`
	Gender               Gender            `json:"gender"`
	BodyFatPercent       float64           `json:"body_fat_percent"`
	TargetBodyFatPercent float64           `json:"target_body_fat_percent"`
	ActivityLevel        ActivityLevel     `json:"activity_level"`
	Goal                 Goal              `json:"goal"`
	TimelineWeeks        int               `json:"timeline_weeks"`
	TrainingDaysPerWeek  int               `json:"training_days_per_week"`
	CountryCode          string            `json:"country_code"`
	DietaryPreference    DietaryPreference `json:"dietary_preference"`
}

// DefaultProfile is the form state a new session starts from.
func DefaultProfile() Profile {
	return Profile{
		HeightCm:             171,
		WeightKg:             71,
		Age:                  31,
		Gender:               GenderMale,
		BodyFatPercent:       18,
		TargetBodyFatPercent: 15,
		ActivityLevel:        ActivityModerate,
		Goal:                 GoalRecomposition,
		TimelineWeeks:        16,
		TrainingDaysPerWeek:  4,
		CountryCode:          "US",
		DietaryPreference:    DietNone,
	}
}

// GoalMode is the planning mode sent to the planner. Muscle gain is planned as
// recomposition.
func (p Profile) GoalMode() string {
	if p.Goal == GoalFatLoss {
		return string(GoalFatLoss)
	}
	return string(GoalRecomposition)
}

func CmToInches(cm float64) float64 { return cm / CmPerInch }

func InchesToCm(in float64) float64 { return in * CmPerInch }

func KgToLb(kg float64) float64 { return kg * LbPerKg }

func LbToKg(lb float64) float64 { return lb / LbPerKg }
