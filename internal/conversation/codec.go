package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/mealbot/internal/domain"
)

// MaxCallbackBytes is Telegram's limit on inline button data.
const MaxCallbackBytes = 64

// Callback categories. Data is "<category>:<value>".
const (
	catLanguage    = "lang"
	catChoice      = "choice"
	catMeal        = "meal"
	catDiet        = "diet"
	catIngredient  = "ing"
	catIngredients = "ingredients"
	catCuisine     = "cuisine"
	catRecipe      = "recipe"
)

const (
	ingredientsDone   = "done"
	ingredientsSkip   = "skip"
	ingredientsCustom = "custom"
	ingredientsCancel = "cancel"
	recipeRegenerate  = "regenerate"
	recipeBack        = "back"
)

// legacyPrefixes are the underscore-separated forms older keyboards used
// ("lang_en", "ingredient_done", "recipe_0"). Still accepted so buttons
// sent before an upgrade keep working.
var legacyPrefixes = []string{"lang", "choice", "meal", "diet", "ingredient", "cuisine", "recipe"}

// ParseCallback decodes button data into a command. Unknown categories and
// invalid values yield an error wrapping domain.ErrUnknownCommand.
func ParseCallback(data string) (domain.Command, error) {
	data = strings.TrimSpace(data)
	cat, val, ok := strings.Cut(data, ":")
	if !ok {
		cat, val, ok = cutLegacy(data)
	}
	if !ok || val == "" {
		return nil, unknown(data)
	}

	switch cat {
	case catLanguage:
		if domain.ValidLanguage(val) {
			return domain.CmdLanguage{Code: val}, nil
		}
	case catChoice:
		switch val {
		case "suggestion", "suggestions":
			return domain.CmdChoice{Choice: domain.ChoiceSuggestion}, nil
		case "direct":
			return domain.CmdChoice{Choice: domain.ChoiceDirect}, nil
		}
	case catMeal:
		if m := domain.MealType(val); m.Valid() {
			return domain.CmdMeal{Meal: m}, nil
		}
	case catDiet:
		if d := domain.DietType(val); d.Valid() {
			return domain.CmdDiet{Diet: d}, nil
		}
	case catIngredient:
		return domain.CmdToggleIngredient{Name: val}, nil
	case catIngredients:
		switch val {
		case ingredientsDone:
			return domain.CmdIngredientsDone{}, nil
		case ingredientsSkip:
			return domain.CmdIngredientsSkip{}, nil
		case ingredientsCustom:
			return domain.CmdCustomIngredientPrompt{}, nil
		case ingredientsCancel:
			return domain.CmdCustomIngredientCancel{}, nil
		}
	case catCuisine:
		if c := domain.Cuisine(val); c.Valid() {
			return domain.CmdCuisine{Cuisine: c}, nil
		}
	case catRecipe:
		switch val {
		case recipeRegenerate:
			return domain.CmdRegenerate{}, nil
		case recipeBack:
			return domain.CmdBack{}, nil
		}
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			return domain.CmdSelectRecipe{Index: n}, nil
		}
	}
	return nil, unknown(data)
}

func cutLegacy(data string) (cat, val string, ok bool) {
	for _, p := range legacyPrefixes {
		rest, found := strings.CutPrefix(data, p+"_")
		if !found {
			continue
		}
		if p != "ingredient" {
			return p, rest, true
		}
		switch rest {
		case ingredientsDone, ingredientsSkip, ingredientsCustom, ingredientsCancel:
			return catIngredients, rest, true
		}
		return catIngredient, rest, true
	}
	return "", "", false
}

func unknown(data string) error {
	return fmt.Errorf("conversation: callback %q: %w", data, domain.ErrUnknownCommand)
}

// EncodeCommand is the inverse of ParseCallback.
func EncodeCommand(c domain.Command) string {
	switch c := c.(type) {
	case domain.CmdLanguage:
		return catLanguage + ":" + c.Code
	case domain.CmdChoice:
		return catChoice + ":" + string(c.Choice)
	case domain.CmdMeal:
		return catMeal + ":" + string(c.Meal)
	case domain.CmdDiet:
		return catDiet + ":" + string(c.Diet)
	case domain.CmdToggleIngredient:
		return catIngredient + ":" + c.Name
	case domain.CmdIngredientsDone:
		return catIngredients + ":" + ingredientsDone
	case domain.CmdIngredientsSkip:
		return catIngredients + ":" + ingredientsSkip
	case domain.CmdCustomIngredientPrompt:
		return catIngredients + ":" + ingredientsCustom
	case domain.CmdCustomIngredientCancel:
		return catIngredients + ":" + ingredientsCancel
	case domain.CmdCuisine:
		return catCuisine + ":" + string(c.Cuisine)
	case domain.CmdSelectRecipe:
		return catRecipe + ":" + strconv.Itoa(c.Index)
	case domain.CmdRegenerate:
		return catRecipe + ":" + recipeRegenerate
	case domain.CmdBack:
		return catRecipe + ":" + recipeBack
	default:
		return ""
	}
}

// Button builds an option for a command.
func Button(label string, c domain.Command) Option {
	return Option{Label: label, Data: EncodeCommand(c)}
}
