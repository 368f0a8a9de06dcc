package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var ErrInvalidJSON = errors.New("response body is not valid JSON")

// MissingFieldError reports a required field absent from a response body.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Path)
}

type field struct {
	name     string
	optional bool
	fields   []field
}

func req(name string, fields ...field) field {
	return field{name: name, fields: fields}
}

func opt(name string, fields ...field) field {
	return field{name: name, optional: true, fields: fields}
}

var (
	macroTargetsFields = []field{
		req("calories"), req("protein_g"), req("carbs_g"), req("fat_g"), req("fiber_g"),
	}

	retailProductFields = []field{
		req("product_name"),
		req("brand"),
		opt("retailer"),
		req("nutriments_per_100g"),
		opt("nutriscore_grade"),
		opt("estimated_price"),
		req("source"),
	}

	planResponseFields = []field{
		req("body_composition",
			req("lean_body_mass_kg"), req("fat_mass_kg"), req("target_weight_kg"), req("fat_loss_required_kg")),
		req("calories",
			req("bmr"), req("tdee"), req("daily_deficit"), req("target"), req("training_day"), req("rest_day")),
		req("macros",
			req("baseline", macroTargetsFields...),
			req("training_day", macroTargetsFields...),
			req("rest_day", macroTargetsFields...)),
		req("projection",
			req("weeks_to_goal"),
			req("weekly_loss_kg"),
			req("weekly_weight_targets", req("week"), req("expected_weight_kg")),
			opt("monthly_milestones", req("month"), req("expected_weight_kg"))),
		req("meal_plan",
			req("days",
				req("day"),
				req("day_type"),
				req("target_macros", macroTargetsFields...),
				req("meals",
					req("name"),
					req("ingredients",
						req("ingredient"),
						req("grams"),
						opt("brand_hint"),
						opt("retail_product", retailProductFields...)),
					req("calories"), req("protein_g"), req("carbs_g"), req("fat_g"), req("fiber_g")),
				req("totals", macroTargetsFields...))),
		req("grocery_list",
			req("ingredient"),
			req("total_needed_g"),
			req("package_size_g"),
			req("packages_to_buy"),
			req("leftover_g"),
			opt("retail_product", retailProductFields...)),
	}

	checkinResponseFields = []field{
		req("weekly_change_percent"), req("adjustment_kcal"), req("new_calorie_target"), req("note"),
	}
)

// DecodePlanResponse parses a generate-meals response body. Unknown fields are
// ignored; a missing or null required field is an error.
func DecodePlanResponse(data []byte) (PlanResponse, error) {
	var resp PlanResponse
	if err := decodeStrict(data, planResponseFields, &resp); err != nil {
		return PlanResponse{}, err
	}
	return resp, nil
}

// DecodeCheckinResponse parses a weekly-checkin response body.
func DecodeCheckinResponse(data []byte) (WeeklyCheckinResponse, error) {
	var resp WeeklyCheckinResponse
	if err := decodeStrict(data, checkinResponseFields, &resp); err != nil {
		return WeeklyCheckinResponse{}, err
	}
	return resp, nil
}

func decodeStrict(data []byte, fields []field, target any) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("expected a JSON object, got %s", root.Type)
	}
	if err := checkFields(root, "", fields); err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func checkFields(v gjson.Result, path string, fields []field) error {
	for _, f := range fields {
		p := f.name
		if path != "" {
			p = path + "." + f.name
		}

		child := v.Get(f.name)
		if !child.Exists() || child.Type == gjson.Null {
			if f.optional {
				continue
			}
			return &MissingFieldError{Path: p}
		}
		if len(f.fields) == 0 {
			continue
		}

		if !child.IsArray() {
			if err := checkFields(child, p, f.fields); err != nil {
				return err
			}
			continue
		}

		var err error
		i := 0
		child.ForEach(func(_, el gjson.Result) bool {
			err = checkFields(el, fmt.Sprintf("%s[%d]", p, i), f.fields)
			i++
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
