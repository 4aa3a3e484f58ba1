package engine

import (
	"fmt"

	"github.com/hammamikhairi/mealbot/internal/catalog"
	"github.com/hammamikhairi/mealbot/internal/conversation"
	"github.com/hammamikhairi/mealbot/internal/display"
	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/locale"
)

func languageReply() conversation.Reply {
	opts := make([]conversation.Option, 0, len(domain.Languages))
	for _, code := range domain.Languages {
		opts = append(opts, conversation.Button(catalog.LanguageLabels[code], domain.CmdLanguage{Code: code}))
	}
	return conversation.Reply{
		Text:    locale.Get(locale.Welcome, domain.LanguageDefault),
		Options: conversation.Column(opts...),
	}
}

func choiceReply(lang string) conversation.Reply {
	return conversation.Reply{
		Text: locale.Get(locale.ChoiceSelection, lang),
		Options: conversation.Column(
			conversation.Button(locale.Get(locale.NeedSuggestions, lang), domain.CmdChoice{Choice: domain.ChoiceSuggestion}),
			conversation.Button(locale.Get(locale.KnowRecipe, lang), domain.CmdChoice{Choice: domain.ChoiceDirect}),
		),
		Edit: true,
	}
}

func mealReply(lang string) conversation.Reply {
	opts := make([]conversation.Option, 0, len(domain.MealTypes))
	for _, m := range domain.MealTypes {
		opts = append(opts, conversation.Button(catalog.MealLabels[m], domain.CmdMeal{Meal: m}))
	}
	return conversation.Reply{Text: locale.Get(locale.MealSelection, lang), Options: conversation.Column(opts...), Edit: true}
}

func dietReply(lang string) conversation.Reply {
	opts := make([]conversation.Option, 0, len(domain.DietTypes))
	for _, d := range domain.DietTypes {
		opts = append(opts, conversation.Button(catalog.DietLabels[d], domain.CmdDiet{Diet: d}))
	}
	return conversation.Reply{Text: locale.Get(locale.DietSelection, lang), Options: conversation.Column(opts...), Edit: true}
}

func (e *Engine) ingredientsReplyFor(s *domain.Session, edit bool) conversation.Reply {
	view, err := s.View()
	if err != nil {
		e.log.Warn("session %s: %v", s.UserID, err)
	}
	v, ok := view.(domain.IngredientsView)
	if !ok {
		return guidance(s.Language)
	}
	return e.ingredientsReply(v.Language, v.Meal, v.Diet, v.Selected, edit)
}

// ingredientsReply lists the catalog for the meal and diet, marking the
// selected items, followed by custom, done and skip.
func (e *Engine) ingredientsReply(lang string, meal domain.MealType, diet domain.DietType, selected []string, edit bool) conversation.Reply {
	s := domain.Session{Ingredients: selected}
	base := catalog.Ingredients(diet, meal)
	opts := make([]conversation.Option, 0, len(base))
	for _, name := range base {
		opts = append(opts, conversation.Button(display.IngredientLabel(name, s.HasIngredient(name)), domain.CmdToggleIngredient{Name: name}))
	}

	rows := conversation.Grid(opts, e.ingredientColumns)
	rows = append(rows,
		[]conversation.Option{conversation.Button("✏️ "+locale.Get(locale.CustomIngredient, lang), domain.CmdCustomIngredientPrompt{})},
		[]conversation.Option{conversation.Button("✅ "+locale.Get(locale.Done, lang), domain.CmdIngredientsDone{})},
		[]conversation.Option{conversation.Button("⏭️ "+locale.Get(locale.SkipIngredients, lang), domain.CmdIngredientsSkip{})},
	)
	return conversation.Reply{Text: display.IngredientPrompt(lang, selected), Options: rows, Edit: edit}
}

func customPromptReply(lang string) conversation.Reply {
	return conversation.Reply{
		Text:    locale.Get(locale.CustomPrompt, lang),
		Options: conversation.Column(conversation.Button(locale.Get(locale.Cancel, lang), domain.CmdCustomIngredientCancel{})),
		Edit:    true,
	}
}

func cuisineReply(lang string) conversation.Reply {
	opts := make([]conversation.Option, 0, len(domain.Cuisines))
	for _, c := range domain.Cuisines {
		label := catalog.CuisineLabels[c]
		if c == domain.CuisineSurprise {
			label = "🎲 " + locale.Get(locale.SurpriseMe, lang)
		}
		opts = append(opts, conversation.Button(label, domain.CmdCuisine{Cuisine: c}))
	}
	return conversation.Reply{Text: locale.Get(locale.CuisineSelection, lang), Options: conversation.Column(opts...), Edit: true}
}

func tryAgain(lang string) []conversation.Option {
	return []conversation.Option{conversation.Button(locale.Get(locale.TryAgain, lang), domain.CmdRegenerate{})}
}

func listReply(recipes []domain.Recipe, lang string) conversation.Reply {
	if len(recipes) == 0 {
		return conversation.Reply{Text: locale.Get(locale.NoRecipes, lang), Options: [][]conversation.Option{tryAgain(lang)}, Edit: true}
	}
	rows := make([][]conversation.Option, 0, len(recipes)+1)
	for i, r := range recipes {
		rows = append(rows, []conversation.Option{conversation.Button(fmt.Sprintf("%d. %s", i+1, r.Name), domain.CmdSelectRecipe{Index: i})})
	}
	rows = append(rows, tryAgain(lang))
	return conversation.Reply{Text: display.RecipeList(recipes, lang), Options: rows, Edit: true}
}

// detailReply shows one recipe. withBack adds the return-to-list button,
// which direct mode has no use for.
func detailReply(r domain.Recipe, lang string, withBack bool) conversation.Reply {
	var rows [][]conversation.Option
	if withBack {
		rows = append(rows, []conversation.Option{conversation.Button(locale.Get(locale.Back, lang), domain.CmdBack{})})
	}
	rows = append(rows, tryAgain(lang))
	return conversation.Reply{Text: display.Recipe(r, lang), Options: rows, Edit: withBack}
}
