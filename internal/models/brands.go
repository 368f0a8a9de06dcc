package models

import "maps"

// BrandSuggestionsFromGrocery lists the retail products matched on a grocery
// list, one per brand and product name, in grocery order.
func BrandSuggestionsFromGrocery(items []GroceryItem) []BrandSuggestion {
	seen := make(map[string]struct{})
	suggestions := make([]BrandSuggestion, 0, len(items))

	for _, item := range items {
		p := item.RetailProduct
		if p == nil {
			continue
		}
		key := p.Brand + "\x00" + p.ProductName
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		var price *string
		if p.EstimatedPrice != nil {
			v := *p.EstimatedPrice
			price = &v
		}
		suggestions = append(suggestions, BrandSuggestion{
			Brand:          p.Brand,
			ProductName:    p.ProductName,
			MacrosPer100g:  maps.Clone(p.NutrimentsPer100g),
			EstimatedPrice: price,
		})
	}
	return suggestions
}
