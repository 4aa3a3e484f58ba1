package engine

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/mealbot/internal/conversation"
	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/locale"
)

// Every handler finishes its fallible work before calling store.Update,
// and sets the next step in that same Update.

func (e *Engine) pickLanguage(ctx context.Context, userID string, cmd domain.CmdLanguage) (conversation.Reply, error) {
	e.store.Update(ctx, userID, func(s *domain.Session) {
		s.Language = cmd.Code
		s.Step = domain.StepChoice
	})
	return choiceReply(cmd.Code), nil
}

func (e *Engine) pickChoice(ctx context.Context, userID string, v domain.ChoiceView, cmd domain.CmdChoice) (conversation.Reply, error) {
	if cmd.Choice == domain.ChoiceDirect {
		e.store.Update(ctx, userID, func(s *domain.Session) {
			s.Choice = domain.ChoiceDirect
			s.DirectMealName = ""
			s.Recipes = ""
			s.Step = domain.StepRecipes
		})
		return conversation.Reply{Text: locale.Get(locale.DirectPrompt, v.Language), Edit: true}, nil
	}

	e.store.Update(ctx, userID, func(s *domain.Session) {
		s.Choice = domain.ChoiceSuggestion
		s.Step = domain.StepMeal
	})
	return mealReply(v.Language), nil
}

func (e *Engine) pickMeal(ctx context.Context, userID string, v domain.MealView, cmd domain.CmdMeal) (conversation.Reply, error) {
	e.store.Update(ctx, userID, func(s *domain.Session) {
		s.MealType = cmd.Meal
		s.Step = domain.StepDiet
	})
	return dietReply(v.Language), nil
}

func (e *Engine) pickDiet(ctx context.Context, userID string, v domain.DietView, cmd domain.CmdDiet) (conversation.Reply, error) {
	sess := e.store.Update(ctx, userID, func(s *domain.Session) {
		s.DietType = cmd.Diet
		s.Step = domain.StepIngredients
	})
	return e.ingredientsReply(v.Language, v.Meal, cmd.Diet, sess.Ingredients, true), nil
}

func (e *Engine) toggleIngredient(ctx context.Context, userID string, cmd domain.CmdToggleIngredient) (conversation.Reply, error) {
	var selected bool
	sess := e.store.Update(ctx, userID, func(s *domain.Session) {
		selected = s.ToggleIngredient(cmd.Name)
	})
	e.log.Debug("%s toggled %q (selected=%v, total=%d)", userID, cmd.Name, selected, len(sess.Ingredients))
	return e.ingredientsReplyFor(sess, true), nil
}

func (e *Engine) customIngredient(ctx context.Context, userID, name string) (conversation.Reply, error) {
	sess := e.store.Update(ctx, userID, func(s *domain.Session) {
		s.AddIngredient(name)
		s.CustomIngredient = name
	})
	e.log.Debug("%s added custom ingredient %q", userID, name)
	return e.ingredientsReplyFor(sess, false), nil
}

func (e *Engine) finishIngredients(ctx context.Context, userID string, skip bool) (conversation.Reply, error) {
	sess := e.store.Update(ctx, userID, func(s *domain.Session) {
		if skip {
			s.Ingredients = []string{}
			s.CustomIngredient = ""
		}
		s.Step = domain.StepCuisine
	})
	return cuisineReply(sess.Language), nil
}

func (e *Engine) pickCuisine(ctx context.Context, ev Event, sess *domain.Session, cmd domain.CmdCuisine) (conversation.Reply, error) {
	prefs := sess.Preferences()
	prefs.Cuisine = cmd.Cuisine
	lang := sess.Language

	progress(ev, lang)
	recipes := e.recipes.Suggest(ctx, prefs)
	encoded, err := domain.EncodeRecipes(recipes)
	if err != nil {
		return conversation.Reply{}, fmt.Errorf("engine: storing recipes for %s: %w", ev.UserID, err)
	}

	e.store.Update(ctx, ev.UserID, func(s *domain.Session) {
		s.Cuisine = cmd.Cuisine
		s.Recipes = encoded
		s.Step = domain.StepRecipes
	})
	return listReply(recipes, lang), nil
}

func (e *Engine) selectRecipe(v domain.RecipesView, cmd domain.CmdSelectRecipe) (conversation.Reply, error) {
	if cmd.Index < 0 || cmd.Index >= len(v.Recipes) {
		e.log.Debug("recipe index %d out of range (%d stored)", cmd.Index, len(v.Recipes))
		return guidance(v.Language), nil
	}
	return detailReply(v.Recipes[cmd.Index], v.Language, true), nil
}

func (e *Engine) back(v domain.RecipesView) (conversation.Reply, error) {
	if len(v.Recipes) == 0 {
		return guidance(v.Language), nil
	}
	return listReply(v.Recipes, v.Language), nil
}

func (e *Engine) regenerate(ctx context.Context, ev Event, v domain.RecipesView) (conversation.Reply, error) {
	if v.Choice == domain.ChoiceDirect {
		if v.DirectName == "" {
			return conversation.Reply{Text: locale.Get(locale.DirectPrompt, v.Language)}, nil
		}
		reply, err := e.generateDirect(ctx, ev, v.Language, v.DirectName)
		reply.Edit = true
		return reply, err
	}

	progress(ev, v.Language)
	recipes := e.recipes.Suggest(ctx, v.Preferences)
	encoded, err := domain.EncodeRecipes(recipes)
	if err != nil {
		return conversation.Reply{}, fmt.Errorf("engine: storing recipes for %s: %w", ev.UserID, err)
	}
	e.store.Update(ctx, ev.UserID, func(s *domain.Session) {
		s.Recipes = encoded
	})
	return listReply(recipes, v.Language), nil
}

func (e *Engine) direct(ctx context.Context, ev Event, dish string) (conversation.Reply, error) {
	lang := e.store.Get(ctx, ev.UserID).Language
	return e.generateDirect(ctx, ev, lang, dish)
}

// generateDirect asks for a named dish and shows the first result in full.
func (e *Engine) generateDirect(ctx context.Context, ev Event, lang, dish string) (conversation.Reply, error) {
	progress(ev, lang)
	recipes := e.recipes.Direct(ctx, dish, lang)
	if len(recipes) == 0 {
		return conversation.Reply{Text: locale.Get(locale.NoRecipes, lang)}, nil
	}
	encoded, err := domain.EncodeRecipes(recipes)
	if err != nil {
		return conversation.Reply{}, fmt.Errorf("engine: storing recipes for %s: %w", ev.UserID, err)
	}

	e.store.Update(ctx, ev.UserID, func(s *domain.Session) {
		s.DirectMealName = dish
		s.Recipes = encoded
	})
	return detailReply(recipes[0], lang, false), nil
}
