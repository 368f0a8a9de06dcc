package main

import (
	"math"

	"fitplanner/internal/models"
)

var activityMultiplier = map[models.ActivityLevel]float64{
	models.ActivitySedentary: 1.2,
	models.ActivityLight:     1.375,
	models.ActivityModerate:  1.55,
	models.ActivityHigh:      1.725,
	models.ActivityAthlete:   1.9,
}

const minCalorieTarget = 1200

// calorieTarget uses Mifflin-St Jeor with a fixed deficit per goal mode.
func calorieTarget(p models.PlanPayload) int {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == models.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	multiplier, ok := activityMultiplier[p.ActivityLevel]
	if !ok {
		multiplier = activityMultiplier[models.ActivityModerate]
	}
	tdee := int(math.Round(bmr * multiplier))

	delta := -250
	if p.GoalMode == "fat_loss" {
		delta = -450
	}
	return max(minCalorieTarget, tdee+delta)
}

func weeklyAdjustment(req models.WeeklyCheckinRequest) models.WeeklyCheckinResponse {
	change := (req.PreviousWeightKg - req.CurrentWeightKg) / req.PreviousWeightKg * 100

	var adjustment int
	var note string
	switch {
	case change < 0.3:
		adjustment = -100
		note = "Progress below 0.3%/week. Decrease calories by 100 kcal."
	case change > 1.2:
		adjustment = 100
		note = "Progress above 1.2%/week. Increase calories by 100 kcal to reduce aggressiveness."
	default:
		note = "Progress within target band. Keep calories unchanged."
	}

	return models.WeeklyCheckinResponse{
		WeeklyChangePercent: math.Round(change*100) / 100,
		AdjustmentKcal:      adjustment,
		NewCalorieTarget:    req.PreviousCalorieTarget + adjustment,
		Note:                note,
	}
}
