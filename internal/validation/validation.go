// Package validation checks a profile before it is sent to the planner.
package validation

import (
	"errors"

	"github.com/rivo/uniseg"

	"fitplanner/internal/models"
)

var (
	ErrHeightRange        = errors.New("Height must be between 90-250 cm.")
	ErrWeightRange        = errors.New("Weight must be between 30-300 kg.")
	ErrAgeRange           = errors.New("Age must be between 14-90.")
	ErrBodyFatRange       = errors.New("Body fat must be between 3-70%.")
	ErrTargetBodyFatRange = errors.New("Target body fat must be between 3-70%.")
	ErrTargetAboveBodyFat = errors.New("Target body fat should be less than or equal to current body fat.")
	ErrTrainingDaysRange  = errors.New("Training days must be between 0-7.")
	ErrCountryCodeLength  = errors.New("Country code must be 2 letters.")
)

type rule struct {
	ok  func(p models.Profile) bool
	err error
}

// Rules are evaluated in order; the first failing one is reported.
var rules = []rule{
	{func(p models.Profile) bool { return inRange(p.HeightCm, 90, 250) }, ErrHeightRange},
	{func(p models.Profile) bool { return inRange(p.WeightKg, 30, 300) }, ErrWeightRange},
	{func(p models.Profile) bool { return p.Age >= 14 && p.Age <= 90 }, ErrAgeRange},
	{func(p models.Profile) bool { return inRange(p.BodyFatPercent, 3, 70) }, ErrBodyFatRange},
	{func(p models.Profile) bool { return inRange(p.TargetBodyFatPercent, 3, 70) }, ErrTargetBodyFatRange},
	{func(p models.Profile) bool { return p.TargetBodyFatPercent <= p.BodyFatPercent }, ErrTargetAboveBodyFat},
	{func(p models.Profile) bool { return p.TrainingDaysPerWeek >= 0 && p.TrainingDaysPerWeek <= 7 }, ErrTrainingDaysRange},
	{func(p models.Profile) bool { return uniseg.GraphemeClusterCount(p.CountryCode) == 2 }, ErrCountryCodeLength},
}

// Validate returns the error of the first violated rule, or nil.
func Validate(p models.Profile) error {
	for _, r := range rules {
		if !r.ok(p) {
			return r.err
		}
	}
	return nil
}

// NaN fails every range.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// IsRuleError reports whether err came from one of the profile rules.
func IsRuleError(err error) bool {
	for _, r := range rules {
		if errors.Is(err, r.err) {
			return true
		}
	}
	return false
}
