// Package sample holds a canned plan used by the development planner stub and
// by tests across the module.
package sample

import "fitplanner/internal/models"

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func strPtr(s string) *string { return &s }

func chicken() *models.RetailProduct {
	return &models.RetailProduct{
		ProductName:       "Chicken Breast Fillets",
		Brand:             "Ashfields",
		Retailer:          strPtr("aldi"),
		NutrimentsPer100g: map[string]float64{"energy-kcal": 106, "proteins": 24, "carbohydrates": 0, "fat": 1.1},
		NutriscoreGrade:   strPtr("a"),
		EstimatedPrice:    strPtr("4.49"),
		Source:            "openfoodfacts",
	}
}

func oats() *models.RetailProduct {
	return &models.RetailProduct{
		ProductName:       "Rolled Oats",
		Brand:             "Crownfield",
		Retailer:          strPtr("lidl"),
		NutrimentsPer100g: map[string]float64{"energy-kcal": 372, "proteins": 11, "carbohydrates": 60, "fat": 7},
		Source:            "openfoodfacts",
	}
}

// Plan returns a freshly built plan for the given calorie target and training
// days. Each call returns new slices and maps.
func Plan(target, trainingDays int) models.PlanResponse {
	training := models.MacroTargets{Calories: target + 150, ProteinG: 160, CarbsG: 250, FatG: 65, FiberG: 35}
	rest := models.MacroTargets{Calories: target - 200, ProteinG: 160, CarbsG: 160, FatG: 70, FiberG: 30}
	baseline := models.MacroTargets{Calories: target, ProteinG: 160, CarbsG: 210, FatG: 67, FiberG: 32}

	breakfast := models.MealEntry{
		Name: "Breakfast",
		Ingredients: []models.IngredientAllocation{
			{Ingredient: "oats", Grams: 80, BrandHint: strPtr("Crownfield"), RetailProduct: oats()},
			{Ingredient: "greek yogurt", Grams: 200},
		},
		Calories: 520, ProteinG: 32, CarbsG: 62, FatG: 14, FiberG: 8,
	}
	lunch := models.MealEntry{
		Name: "Lunch",
		Ingredients: []models.IngredientAllocation{
			{Ingredient: "chicken breast", Grams: 200, RetailProduct: chicken()},
			{Ingredient: "rice", Grams: 120},
		},
		Calories: 640, ProteinG: 54, CarbsG: 94, FatG: 5, FiberG: 2,
	}
	totals := models.MacroTargets{Calories: 1160, ProteinG: 86, CarbsG: 156, FatG: 19, FiberG: 10}

	days := make([]models.DayMealPlan, 0, len(weekdays))
	for i, day := range weekdays {
		dayType, targetMacros := "rest", rest
		if i < trainingDays {
			dayType, targetMacros = "training", training
		}
		days = append(days, models.DayMealPlan{
			Day:          day,
			DayType:      dayType,
			TargetMacros: targetMacros,
			Meals:        []models.MealEntry{breakfast, lunch},
			Totals:       totals,
		})
	}

	weekly := make([]models.WeeklyWeightTarget, 0, 4)
	for w := 1; w <= 4; w++ {
		weekly = append(weekly, models.WeeklyWeightTarget{Week: w, ExpectedWeightKg: 71 - 0.25*float64(w)})
	}

	return models.PlanResponse{
		BodyComposition: models.BodyComposition{
			LeanBodyMassKg: 58.22, FatMassKg: 12.78, TargetWeightKg: 68.49, FatLossRequiredKg: 2.51,
		},
		Calories: models.CaloriesPlan{
			BMR: 1667, TDEE: 2584, DailyDeficit: 300, Target: target,
			TrainingDay: training.Calories, RestDay: rest.Calories,
		},
		Macros: models.MacroPlan{Baseline: baseline, TrainingDay: training, RestDay: rest},
		Projection: models.Projection{
			WeeksToGoal:         10.04,
			WeeklyLossKg:        0.25,
			WeeklyWeightTargets: weekly,
			MonthlyMilestones:   []models.MonthlyMilestone{{Month: 1, ExpectedWeightKg: 70}},
		},
		MealPlan: models.WeeklyMealPlan{Days: days},
		GroceryList: []models.GroceryItem{
			{Ingredient: "chicken breast", TotalNeededG: 1400, PackageSizeG: 500, PackagesToBuy: 3, LeftoverG: 100, RetailProduct: chicken()},
			{Ingredient: "greek yogurt", TotalNeededG: 1400, PackageSizeG: 1000, PackagesToBuy: 2, LeftoverG: 600},
			{Ingredient: "oats", TotalNeededG: 560, PackageSizeG: 500, PackagesToBuy: 2, LeftoverG: 440, RetailProduct: oats()},
			{Ingredient: "rice", TotalNeededG: 840, PackageSizeG: 1000, PackagesToBuy: 1, LeftoverG: 160},
		},
	}
}
