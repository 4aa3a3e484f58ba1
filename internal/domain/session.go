// Package domain defines the core types and interfaces for the meal bot.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"slices"
	"strings"
	"time"
)

// Session is the per-user conversation state. It is persisted as a flat
// JSON document keyed by UserID.
type Session struct {
	UserID           string    `json:"userId"`
	Step             Step      `json:"step"`
	Language         string    `json:"language"`
	Choice           Choice    `json:"choice,omitempty"`
	MealType         MealType  `json:"mealType,omitempty"`
	DietType         DietType  `json:"dietType,omitempty"`
	Cuisine          Cuisine   `json:"cuisine,omitempty"`
	Ingredients      []string  `json:"ingredients"`
	CustomIngredient string    `json:"customIngredient,omitempty"`
	DirectMealName   string    `json:"directMealName,omitempty"`
	Recipes          string    `json:"recipes,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// NewSession returns the default session for a user: language step,
// baseline locale, no selections.
func NewSession(userID string, now time.Time) *Session {
	return &Session{
		UserID:      userID,
		Step:        StepLanguage,
		Language:    LanguageDefault,
		Ingredients: []string{},
		Timestamp:   now,
	}
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (s *Session) Clone() *Session {
	c := *s
	c.Ingredients = slices.Clone(s.Ingredients)
	if c.Ingredients == nil {
		c.Ingredients = []string{}
	}
	return &c
}

// Normalize repairs fields a decoded record may carry in an illegal state.
func (s *Session) Normalize() {
	if !s.Step.Valid() {
		s.Step = StepLanguage
	}
	if !ValidLanguage(s.Language) {
		s.Language = LanguageDefault
	}
	if s.Ingredients == nil {
		s.Ingredients = []string{}
	}
}

// HasIngredient reports whether name is selected (case-insensitive).
func (s *Session) HasIngredient(name string) bool {
	return indexFold(s.Ingredients, name) >= 0
}

// ToggleIngredient appends name if absent and removes it if present.
// Returns true if the ingredient is selected afterwards.
func (s *Session) ToggleIngredient(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if i := indexFold(s.Ingredients, name); i >= 0 {
		s.Ingredients = slices.Delete(s.Ingredients, i, i+1)
		return false
	}
	s.Ingredients = append(s.Ingredients, name)
	return true
}

// AddIngredient appends name unless it is already selected.
func (s *Session) AddIngredient(name string) {
	name = strings.TrimSpace(name)
	if name == "" || s.HasIngredient(name) {
		return
	}
	s.Ingredients = append(s.Ingredients, name)
}

// Preferences extracts the guided-generation inputs.
func (s *Session) Preferences() Preferences {
	return Preferences{
		MealType:         s.MealType,
		DietType:         s.DietType,
		Ingredients:      slices.Clone(s.Ingredients),
		Cuisine:          s.Cuisine,
		Language:         s.Language,
		CustomIngredient: s.CustomIngredient,
	}
}

// Preferences are the inputs to guided recipe generation.
type Preferences struct {
	MealType         MealType
	DietType         DietType
	Ingredients      []string
	Cuisine          Cuisine
	Language         string
	CustomIngredient string
}

// WithDefaults fills unset fields with the values the conversation would
// have produced for an undecided user.
func (p Preferences) WithDefaults() Preferences {
	if !p.MealType.Valid() {
		p.MealType = MealLunch
	}
	if !p.DietType.Valid() {
		p.DietType = DietVegetarian
	}
	if !p.Cuisine.Valid() {
		p.Cuisine = CuisineSurprise
	}
	if !ValidLanguage(p.Language) {
		p.Language = LanguageDefault
	}
	return p
}

func indexFold(list []string, name string) int {
	for i, v := range list {
		if strings.EqualFold(v, name) {
			return i
		}
	}
	return -1
}
