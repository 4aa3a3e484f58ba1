// Package engine implements the conversation state machine. It depends
// only on the session store and a recipe source and is fully testable
// with fakes.
package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"

	"github.com/hammamikhairi/mealbot/internal/conversation"
	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/locale"
	"github.com/hammamikhairi/mealbot/internal/logger"
	"github.com/hammamikhairi/mealbot/internal/storage"
)

// RecipeSource produces recipes. Implementations never fail; they fall
// back to a static set.
type RecipeSource interface {
	Suggest(ctx context.Context, prefs domain.Preferences) []domain.Recipe
	Direct(ctx context.Context, dish, lang string) []domain.Recipe
}

// Option configures the engine.
type Option func(*Engine)

// WithIngredientColumns sets how many ingredient buttons share a row.
func WithIngredientColumns(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.ingredientColumns = n
		}
	}
}

// Engine drives one conversation per user. Events for the same user are
// handled one at a time; different users proceed in parallel.
type Engine struct {
	store   *storage.Store
	recipes RecipeSource
	log     *logger.Logger
	locks   storage.KeyLocks

	ingredientColumns int
}

// New creates an engine with the given dependencies and options.
func New(store *storage.Store, recipes RecipeSource, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:             store,
		recipes:           recipes,
		log:               log,
		ingredientColumns: 3,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle processes one event and returns the reply to show. It never
// panics: handler errors and panics are logged and answered with the
// localized generic error, leaving the session as it was before the event.
func (e *Engine) Handle(ctx context.Context, ev Event) (reply conversation.Reply) {
	unlock := e.locks.Lock(ev.UserID)
	defer unlock()

	id := uuid.NewString()[:8]
	e.log.Debug("event %s: user=%s kind=%s text=%q", id, ev.UserID, ev.Kind, ev.Text)

	defer func() {
		if r := recover(); r != nil {
			e.log.Error("event %s: panic handling %s for %s: %v\n%s", id, ev.Kind, ev.UserID, r, debug.Stack())
			reply = e.errorReply(ctx, ev.UserID)
		}
	}()

	var err error
	switch ev.Kind {
	case EventReset:
		reply, err = e.reset(ctx, ev.UserID)
	case EventText:
		if isStart(ev.Text) {
			reply, err = e.reset(ctx, ev.UserID)
			break
		}
		reply, err = e.handleText(ctx, ev)
	case EventCommand:
		reply, err = e.handleCommand(ctx, ev)
	default:
		err = fmt.Errorf("engine: unknown event kind %d", ev.Kind)
	}
	if err != nil {
		e.log.Error("event %s: %v", id, err)
		return e.errorReply(ctx, ev.UserID)
	}
	return reply
}

// ── Entry points ─────────────────────────────────────────────────

func (e *Engine) reset(ctx context.Context, userID string) (conversation.Reply, error) {
	e.store.Clear(ctx, userID)
	e.log.Info("conversation reset for %s", userID)
	return languageReply(), nil
}

func (e *Engine) handleText(ctx context.Context, ev Event) (conversation.Reply, error) {
	sess := e.store.Get(ctx, ev.UserID)
	text := strings.TrimSpace(ev.Text)
	lang := sess.Language

	if text == "" || strings.HasPrefix(text, "/") {
		return guidance(lang), nil
	}

	switch {
	case sess.Step == domain.StepIngredients:
		return e.customIngredient(ctx, ev.UserID, text)
	case sess.Step == domain.StepRecipes && sess.Choice == domain.ChoiceDirect:
		return e.direct(ctx, ev, text)
	default:
		e.log.Debug("ignoring text from %s at step %s", ev.UserID, sess.Step)
		return guidance(lang), nil
	}
}

func (e *Engine) handleCommand(ctx context.Context, ev Event) (conversation.Reply, error) {
	sess := e.store.Get(ctx, ev.UserID)
	if ev.Command == nil {
		e.log.Warn("undecodable callback %q from %s", ev.Text, ev.UserID)
		return guidance(sess.Language), nil
	}
	if want := domain.CommandStep(ev.Command); want != sess.Step {
		e.log.Debug("ignoring %T from %s: legal at %s, session at %s", ev.Command, ev.UserID, want, sess.Step)
		return guidance(sess.Language), nil
	}

	view, err := sess.View()
	if err != nil {
		e.log.Warn("session %s: %v", ev.UserID, err)
	}

	switch cmd := ev.Command.(type) {
	case domain.CmdLanguage:
		return e.pickLanguage(ctx, ev.UserID, cmd)
	case domain.CmdChoice:
		return e.pickChoice(ctx, ev.UserID, view.(domain.ChoiceView), cmd)
	case domain.CmdMeal:
		return e.pickMeal(ctx, ev.UserID, view.(domain.MealView), cmd)
	case domain.CmdDiet:
		return e.pickDiet(ctx, ev.UserID, view.(domain.DietView), cmd)
	case domain.CmdToggleIngredient:
		return e.toggleIngredient(ctx, ev.UserID, cmd)
	case domain.CmdIngredientsDone:
		return e.finishIngredients(ctx, ev.UserID, false)
	case domain.CmdIngredientsSkip:
		return e.finishIngredients(ctx, ev.UserID, true)
	case domain.CmdCustomIngredientPrompt:
		return customPromptReply(view.(domain.IngredientsView).Language), nil
	case domain.CmdCustomIngredientCancel:
		v := view.(domain.IngredientsView)
		return e.ingredientsReply(v.Language, v.Meal, v.Diet, v.Selected, true), nil
	case domain.CmdCuisine:
		return e.pickCuisine(ctx, ev, sess, cmd)
	case domain.CmdSelectRecipe:
		return e.selectRecipe(view.(domain.RecipesView), cmd)
	case domain.CmdBack:
		return e.back(view.(domain.RecipesView))
	case domain.CmdRegenerate:
		return e.regenerate(ctx, ev, view.(domain.RecipesView))
	default:
		return conversation.Reply{}, fmt.Errorf("engine: %w: %T", domain.ErrUnknownCommand, cmd)
	}
}

func (e *Engine) errorReply(ctx context.Context, userID string) conversation.Reply {
	lang := domain.LanguageDefault
	func() {
		defer func() { recover() }()
		lang = e.store.Get(ctx, userID).Language
	}()
	return conversation.Reply{Text: locale.Get(locale.ErrorMessage, lang)}
}

func guidance(lang string) conversation.Reply {
	return conversation.Reply{Text: locale.Get(locale.Guidance, lang)}
}

func progress(ev Event, lang string) {
	if ev.Progress != nil {
		ev.Progress(locale.Get(locale.GeneratingRecipes, lang))
	}
}
