package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaxRecipes is the upper bound on recipes produced by one generation.
const MaxRecipes = 3

// Recipe is one generated (or fallback) recipe. The JSON layout matches
// the output contract given to the model, plus the enrichment link.
type Recipe struct {
	Name        string   `json:"name"`
	SearchQuery string   `json:"search_query,omitempty"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Macros      Macros   `json:"macros"`
	CookingTime string   `json:"cookingTime"`
	Servings    int      `json:"servings"`
	VideoURL    string   `json:"youtubeUrl,omitempty"`
}

// Macros holds per-serving nutrition values.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Valid reports whether the recipe is fit to show a user: a name, at least
// one ingredient and one step, non-negative macros, and positive calories.
func (r Recipe) Valid() bool {
	if strings.TrimSpace(r.Name) == "" || len(r.Ingredients) == 0 || len(r.Steps) == 0 {
		return false
	}
	m := r.Macros
	if m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 {
		return false
	}
	return m.Calories > 0
}

// VideoQuery is the text used to look up a video for the recipe.
func (r Recipe) VideoQuery() string {
	if q := strings.TrimSpace(r.SearchQuery); q != "" {
		return q
	}
	return r.Name
}

// EncodeRecipes serializes a recipe list for storage inside a Session.
func EncodeRecipes(recipes []Recipe) (string, error) {
	if len(recipes) == 0 {
		return "", nil
	}
	b, err := json.Marshal(recipes)
	if err != nil {
		return "", fmt.Errorf("encoding recipes: %w", err)
	}
	return string(b), nil
}

// DecodeRecipes is the inverse of EncodeRecipes. An empty string yields an
// empty list.
func DecodeRecipes(s string) ([]Recipe, error) {
	if s == "" {
		return nil, nil
	}
	var out []Recipe
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decoding recipes: %w", err)
	}
	return out, nil
}
