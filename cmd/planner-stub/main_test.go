package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitplanner/internal/config"
	"fitplanner/internal/models"
	"fitplanner/internal/planner"
)

func TestWeeklyAdjustment(t *testing.T) {
	cases := []struct {
		name       string
		prev, cur  float64
		adjustment int
		change     float64
	}{
		{"stalled", 80, 80, -100, 0},
		{"gained", 80, 81, -100, -1.25},
		{"slow but in band", 100, 99.6, 0, 0.4},
		{"in band", 71, 70.5, 0, 0.7},
		{"fast but in band", 100, 98.9, 0, 1.1},
		{"too fast", 80, 78, 100, 2.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := weeklyAdjustment(models.WeeklyCheckinRequest{
				PreviousWeightKg:      tc.prev,
				CurrentWeightKg:       tc.cur,
				PreviousCalorieTarget: 2000,
			})
			assert.Equal(t, tc.adjustment, resp.AdjustmentKcal)
			assert.Equal(t, 2000+tc.adjustment, resp.NewCalorieTarget)
			assert.InDelta(t, tc.change, resp.WeeklyChangePercent, 1e-9)
			assert.NotEmpty(t, resp.Note)
		})
	}
}

func TestCalorieTarget(t *testing.T) {
	p := models.NewGenerateMealsRequest(models.DefaultProfile()).Plan
	// 10*71 + 6.25*171 - 5*31 + 5 = 1628.75; * 1.55 = 2524.56
	assert.Equal(t, 2525-250, calorieTarget(p))

	p.GoalMode = "fat_loss"
	assert.Equal(t, 2525-450, calorieTarget(p))

	p.WeightKg, p.HeightCm, p.Age, p.Gender = 35, 120, 80, models.GenderFemale
	assert.Equal(t, minCalorieTarget, calorieTarget(p))
}

func TestStubSatisfiesPlannerClient(t *testing.T) {
	srv := httptest.NewServer(routes())
	t.Cleanup(srv.Close)

	client := planner.NewClient(&config.Config{PlannerBaseURL: srv.URL})

	plan, err := client.GeneratePlan(context.Background(), models.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, 2275, plan.Calories.Target)
	assert.Len(t, plan.MealPlan.Days, 7)
	assert.Equal(t, "training", plan.MealPlan.Days[3].DayType)
	assert.Equal(t, "rest", plan.MealPlan.Days[4].DayType)

	resp, err := client.WeeklyCheckin(context.Background(), planner.CheckinInput{
		PreviousWeightKg:      71,
		CurrentWeightKg:       70.5,
		PreviousCalorieTarget: plan.Calories.Target,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AdjustmentKcal)
	assert.Equal(t, 2275, resp.NewCalorieTarget)
}
