package recipe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hammamikhairi/mealbot/internal/domain"
)

const (
	defaultCookingTime = "30 minutes"
	defaultServings    = 2
)

// requiredFields must be present on every recipe object or the whole
// batch is rejected.
var requiredFields = []string{"name", "ingredients", "steps", "macros"}

// stripCodeFence removes a surrounding ``` fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// ExtractArray returns the span from the first '[' to the last ']' of
// text. Greedy on purpose: nested arrays inside the objects stay intact.
func ExtractArray(text string) (string, error) {
	text = stripCodeFence(text)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return "", fmt.Errorf("recipe: no JSON array in reply: %w", domain.ErrMalformedResponse)
	}
	return text[start : end+1], nil
}

// ParseRecipes extracts, validates and coerces the model's reply. It fails
// when no array can be decoded or any element lacks a required field;
// otherwise every element becomes a Recipe, with lenient coercion of
// numbers and lists.
func ParseRecipes(text string) ([]domain.Recipe, error) {
	raw, err := ExtractArray(text)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("recipe: decoding array: %v: %w", err, domain.ErrMalformedResponse)
	}

	out := make([]domain.Recipe, 0, len(items))
	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("recipe: element %d is not an object: %w", i, domain.ErrMalformedResponse)
		}
		for _, f := range requiredFields {
			if _, ok := fields[f]; !ok {
				return nil, fmt.Errorf("recipe: element %d has no %q: %w", i, f, domain.ErrMalformedResponse)
			}
		}
		var macros map[string]json.RawMessage
		if err := json.Unmarshal(fields["macros"], &macros); err != nil || macros == nil {
			return nil, fmt.Errorf("recipe: element %d macros is not an object: %w", i, domain.ErrMalformedResponse)
		}

		out = append(out, domain.Recipe{
			Name:        strings.TrimSpace(coerceString(fields["name"])),
			SearchQuery: strings.TrimSpace(stringOrEmpty(fields["search_query"])),
			Ingredients: coerceList(fields["ingredients"]),
			Steps:       coerceList(fields["steps"]),
			Macros: domain.Macros{
				Calories: coerceNumber(macros["calories"]),
				Protein:  coerceNumber(macros["protein"]),
				Carbs:    coerceNumber(macros["carbs"]),
				Fat:      coerceNumber(macros["fat"]),
			},
			CookingTime: coerceCookingTime(fields["cookingTime"]),
			Servings:    coerceServings(fields["servings"]),
		})
	}
	return out, nil
}

// coerceString returns a JSON string's value, or the raw JSON text for any
// other value.
func coerceString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func stringOrEmpty(raw json.RawMessage) string {
	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// coerceList maps a JSON array to strings; anything else yields an empty
// list.
func coerceList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(coerceString(it)); s != "" && s != "null" {
			out = append(out, s)
		}
	}
	return out
}

// coerceNumber accepts a JSON number or a numeric string. Anything else,
// including NaN and infinities, yields 0.
func coerceNumber(raw json.RawMessage) float64 {
	if raw == nil {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceCookingTime(raw json.RawMessage) string {
	if raw == nil {
		return defaultCookingTime
	}
	s := strings.TrimSpace(coerceString(raw))
	if s == "" || s == "null" || s == "0" || s == "false" {
		return defaultCookingTime
	}
	return s
}

func coerceServings(raw json.RawMessage) int {
	n := int(math.Round(coerceNumber(raw)))
	if n <= 0 {
		return defaultServings
	}
	return n
}
