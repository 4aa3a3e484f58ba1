// Package recipe turns user preferences into recipes. It treats the
// generative model as an untrusted text source: the reply is parsed and
// validated, and any failure resolves to a fixed fallback set so callers
// always receive something they can render.
package recipe

import "github.com/hammamikhairi/mealbot/internal/domain"

const fallbackName = "Simple Vegetable Rice"

// FallbackRecipes returns the static recipes served when generation fails.
// Each call returns a fresh slice the caller may modify.
func FallbackRecipes() []domain.Recipe {
	base := func(name string) domain.Recipe {
		return domain.Recipe{
			Name:        name,
			SearchQuery: fallbackName,
			Ingredients: []string{"rice", "mixed vegetables", "oil", "spices"},
			Steps:       []string{"Cook rice", "Sauté vegetables", "Mix together", "Serve hot"},
			Macros:      domain.Macros{Calories: 350, Protein: 8, Carbs: 65, Fat: 8},
			CookingTime: "20 minutes",
			Servings:    2,
		}
	}
	return []domain.Recipe{
		base(fallbackName),
		base(fallbackName + " (Variation 1)"),
		base(fallbackName + " (Variation 2)"),
	}
}
