package models

type MacroTargets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
	FiberG   int `json:"fiber_g"`
}

type BodyComposition struct {
	LeanBodyMassKg    float64 `json:"lean_body_mass_kg"`
	FatMassKg         float64 `json:"fat_mass_kg"`
	TargetWeightKg    float64 `json:"target_weight_kg"`
	FatLossRequiredKg float64 `json:"fat_loss_required_kg"`
}

type CaloriesPlan struct {
	BMR          int `json:"bmr"`
	TDEE         int `json:"tdee"`
	DailyDeficit int `json:"daily_deficit"`
	Target       int `json:"target"`
	TrainingDay  int `json:"training_day"`
	RestDay      int `json:"rest_day"`
}

type MacroPlan struct {
	Baseline    MacroTargets `json:"baseline"`
	TrainingDay MacroTargets `json:"training_day"`
	RestDay     MacroTargets `json:"rest_day"`
}

type WeeklyWeightTarget struct {
	Week             int     `json:"week"`
	ExpectedWeightKg float64 `json:"expected_weight_kg"`
}

type MonthlyMilestone struct {
	Month            int     `json:"month"`
	ExpectedWeightKg float64 `json:"expected_weight_kg"`
}

type Projection struct {
	WeeksToGoal         float64              `json:"weeks_to_goal"`
	WeeklyLossKg        float64              `json:"weekly_loss_kg"`
	WeeklyWeightTargets []WeeklyWeightTarget `json:"weekly_weight_targets"`
	MonthlyMilestones   []MonthlyMilestone   `json:"monthly_milestones,omitempty"`
}

type RetailProduct struct {
	ProductName       string             `json:"product_name"`
	Brand             string             `json:"brand"`
	Retailer          *string            `json:"retailer,omitempty"`
	NutrimentsPer100g map[string]float64 `json:"nutriments_per_100g"`
	NutriscoreGrade   *string            `json:"nutriscore_grade,omitempty"`
	EstimatedPrice    *string            `json:"estimated_price,omitempty"`
	Source            string             `json:"source"`
}

type IngredientAllocation struct {
	Ingredient    string         `json:"ingredient"`
	Grams         int            `json:"grams"`
	BrandHint     *string        `json:"brand_hint,omitempty"`
	RetailProduct *RetailProduct `json:"retail_product,omitempty"`
}

type MealEntry struct {
	Name        string                 `json:"name"`
	Ingredients []IngredientAllocation `json:"ingredients"`
	Calories    int                    `json:"calories"`
	ProteinG    int                    `json:"protein_g"`
	CarbsG      int                    `json:"carbs_g"`
	FatG        int                    `json:"fat_g"`
	FiberG      int                    `json:"fiber_g"`
}

type DayMealPlan struct {
	Day          string       `json:"day"`
	DayType      string       `json:"day_type"`
	TargetMacros MacroTargets `json:"target_macros"`
	Meals        []MealEntry  `json:"meals"`
	Totals       MacroTargets `json:"totals"`
}

type WeeklyMealPlan struct {
	Days []DayMealPlan `json:"days"`
}

type GroceryItem struct {
	Ingredient    string         `json:"ingredient"`
	TotalNeededG  int            `json:"total_needed_g"`
	PackageSizeG  int            `json:"package_size_g"`
	PackagesToBuy int            `json:"packages_to_buy"`
	LeftoverG     int            `json:"leftover_g"`
	RetailProduct *RetailProduct `json:"retail_product,omitempty"`
}

type BrandSuggestion struct {
	Brand          string             `json:"brand"`
	ProductName    string             `json:"product_name"`
	MacrosPer100g  map[string]float64 `json:"macros_per_100g"`
	EstimatedPrice *string            `json:"estimated_price,omitempty"`
}

// PlanResponse is the result of one generate-meals call. It is shared
// read-only between the screen controllers once applied.
type PlanResponse struct {
	BodyComposition BodyComposition `json:"body_composition"`
	Calories        CaloriesPlan    `json:"calories"`
	Macros          MacroPlan       `json:"macros"`
	Projection      Projection      `json:"projection"`
	MealPlan        WeeklyMealPlan  `json:"meal_plan"`
	GroceryList     []GroceryItem   `json:"grocery_list"`
}

type WeeklyCheckinResponse struct {
	WeeklyChangePercent float64 `json:"weekly_change_percent"`
	AdjustmentKcal      int     `json:"adjustment_kcal"`
	NewCalorieTarget    int     `json:"new_calorie_target"`
	Note                string  `json:"note"`
}
