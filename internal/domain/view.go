package domain

import (
	"errors"
	"fmt"
	"slices"
)

// StepView is a read-only projection of a Session exposing only the fields
// that are legal at its step. Use a type switch on the result of
// Session.View.
type StepView interface {
	Step() Step
}

// LanguageView is the view at StepLanguage.
type LanguageView struct{}

// ChoiceView is the view at StepChoice.
type ChoiceView struct {
	Language string
}

// MealView is the view at StepMeal.
type MealView struct {
	Language string
}

// DietView is the view at StepDiet.
type DietView struct {
	Language string
	Meal     MealType
}

// IngredientsView is the view at StepIngredients.
type IngredientsView struct {
	Language string
	Meal     MealType
	Diet     DietType
	Selected []string
}

// CuisineView is the view at StepCuisine.
type CuisineView struct {
	Language    string
	Meal        MealType
	Diet        DietType
	Ingredients []string
}

// RecipesView is the view at StepRecipes. In direct mode Preferences is the
// zero value and DirectName holds the dish (empty until the user types it).
type RecipesView struct {
	Language    string
	Choice      Choice
	Preferences Preferences
	DirectName  string
	Recipes     []Recipe
}

func (LanguageView) Step() Step    { return StepLanguage }
func (ChoiceView) Step() Step      { return StepChoice }
func (MealView) Step() Step        { return StepMeal }
func (DietView) Step() Step        { return StepDiet }
func (IngredientsView) Step() Step { return StepIngredients }
func (CuisineView) Step() Step     { return StepCuisine }
func (RecipesView) Step() Step     { return StepRecipes }

// View projects the session onto its current step. Fields that should have
// been set by an earlier step but are missing are replaced by safe defaults;
// the returned error (wrapping ErrMissingField) lists them so tests can
// catch contract violations while production keeps the conversation alive.
func (s *Session) View() (StepView, error) {
	lang := s.Language
	if !ValidLanguage(lang) {
		lang = LanguageDefault
	}

	var missing []string
	meal := s.MealType
	if !meal.Valid() {
		meal = MealLunch
		missing = append(missing, "mealType")
	}
	diet := s.DietType
	if !diet.Valid() {
		diet = DietVegetarian
		missing = append(missing, "dietType")
	}
	selected := slices.Clone(s.Ingredients)

	var v StepView
	switch s.Step {
	case StepChoice:
		v, missing = ChoiceView{Language: lang}, nil
	case StepMeal:
		v, missing = MealView{Language: lang}, nil
	case StepDiet:
		v = DietView{Language: lang, Meal: meal}
		missing = slices.DeleteFunc(missing, func(f string) bool { return f != "mealType" })
	case StepIngredients:
		v = IngredientsView{Language: lang, Meal: meal, Diet: diet, Selected: selected}
	case StepCuisine:
		v = CuisineView{Language: lang, Meal: meal, Diet: diet, Ingredients: selected}
	case StepRecipes:
		rv := RecipesView{Language: lang, Choice: s.Choice, DirectName: s.DirectMealName}
		if s.Choice == ChoiceDirect {
			missing = nil
		} else {
			p := s.Preferences()
			if !p.Cuisine.Valid() {
				missing = append(missing, "cuisine")
			}
			p.Language = lang
			rv.Preferences = p.WithDefaults()
		}
		recipes, err := DecodeRecipes(s.Recipes)
		if err != nil {
			missing = append(missing, "recipes")
		}
		rv.Recipes = recipes
		v = rv
	default:
		v, missing = LanguageView{}, nil
	}

	if len(missing) > 0 {
		return v, fmt.Errorf("%w at step %s: %v", ErrMissingField, s.Step, missing)
	}
	return v, nil
}

// IsMissingField reports whether err came from View degrading a field.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}
