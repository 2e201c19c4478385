package recipe

import (
	"strings"

	"pantry-tracker/internal/core/inventory"
)

// Match annotates each recipe with the inventory items it can use and a
// match score. An inventory item matches an ingredient when either name
// contains the other, case-insensitively. Ordering is left to the caller.
func Match(recipes []Recipe, items []inventory.FoodItem) []Recipe {
	out := make([]Recipe, len(recipes))
	copy(out, recipes)

	for i := range out {
		matched := make([]string, 0)
		seen := make(map[string]bool)

		for _, ing := range out[i].AvailableIngredients {
			for _, item := range items {
				if seen[item.ID] || !namesOverlap(ing.Name, item.Name) {
					continue
				}
				seen[item.ID] = true
				matched = append(matched, item.Name)
			}
		}

		declared := len(out[i].AvailableIngredients)
		if declared < 1 {
			declared = 1
		}

		out[i].MatchedIngredients = matched
		out[i].MatchScore = float64(len(matched)) / float64(declared)
	}

	return out
}

func namesOverlap(a, b string) bool {
	la, lb := strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
