package domain

// Command is a structured user selection. The set of implementations is
// closed: transports produce one via the conversation codec and the engine
// consumes it with a type switch.
type Command interface {
	isCommand()
}

// CmdLanguage picks the conversation language.
type CmdLanguage struct{ Code string }

// CmdChoice picks guided suggestions or a direct dish name.
type CmdChoice struct{ Choice Choice }

// CmdMeal picks the meal type.
type CmdMeal struct{ Meal MealType }

// CmdDiet picks the diet type.
type CmdDiet struct{ Diet DietType }

// CmdToggleIngredient selects or deselects one ingredient.
type CmdToggleIngredient struct{ Name string }

// CmdIngredientsDone finishes ingredient selection keeping the selection.
type CmdIngredientsDone struct{}

// CmdIngredientsSkip finishes ingredient selection clearing the selection.
type CmdIngredientsSkip struct{}

// CmdCustomIngredientPrompt asks the user to type an ingredient.
type CmdCustomIngredientPrompt struct{}

// CmdCustomIngredientCancel returns from the custom prompt to the list.
type CmdCustomIngredientCancel struct{}

// CmdCuisine picks the cuisine and triggers generation.
type CmdCuisine struct{ Cuisine Cuisine }

// CmdSelectRecipe shows one stored recipe (0-based index).
type CmdSelectRecipe struct{ Index int }

// CmdRegenerate asks for a fresh generation with the same inputs.
type CmdRegenerate struct{}

// CmdBack returns from a recipe detail to the stored list.
type CmdBack struct{}

func (CmdLanguage) isCommand()               {}
func (CmdChoice) isCommand()                 {}
func (CmdMeal) isCommand()                   {}
func (CmdDiet) isCommand()                   {}
func (CmdToggleIngredient) isCommand()       {}
func (CmdIngredientsDone) isCommand()        {}
func (CmdIngredientsSkip) isCommand()        {}
func (CmdCustomIngredientPrompt) isCommand() {}
func (CmdCustomIngredientCancel) isCommand() {}
func (CmdCuisine) isCommand()                {}
func (CmdSelectRecipe) isCommand()           {}
func (CmdRegenerate) isCommand()             {}
func (CmdBack) isCommand()                   {}

// CommandStep returns the step at which a command is legal.
func CommandStep(c Command) Step {
	switch c.(type) {
	case CmdLanguage:
		return StepLanguage
	case CmdChoice:
		return StepChoice
	case CmdMeal:
		return StepMeal
	case CmdDiet:
		return StepDiet
	case CmdToggleIngredient, CmdIngredientsDone, CmdIngredientsSkip,
		CmdCustomIngredientPrompt, CmdCustomIngredientCancel:
		return StepIngredients
	case CmdCuisine:
		return StepCuisine
	default:
		return StepRecipes
	}
}
