package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

// Option configures the Generator.
type Option func(*Generator)

// WithTimeout bounds one whole generation, retries included.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRetries sets how many extra model calls are made after an adapter
// error. Parse failures are never retried.
func WithRetries(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.retries = n
		}
	}
}

// WithBackoff sets the pause between retries.
func WithBackoff(d time.Duration) Option {
	return func(g *Generator) { g.backoff = d }
}

// Generator asks the model for recipes and guarantees a usable answer.
type Generator struct {
	model   domain.Completer
	log     *logger.Logger
	timeout time.Duration
	retries int
	backoff time.Duration
}

// NewGenerator creates a generator. Defaults: 45s timeout, 1 retry, 500ms
// backoff.
func NewGenerator(model domain.Completer, log *logger.Logger, opts ...Option) *Generator {
	g := &Generator{
		model:   model,
		log:     log,
		timeout: 45 * time.Second,
		retries: 1,
		backoff: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// outcome is the result of talking to the model, before the fallback
// decision.
type outcome struct {
	recipes []domain.Recipe
	err     error
}

// Generate returns 1 to 3 valid recipes for the preferences. It never
// fails: any model or parse problem yields FallbackRecipes.
func (g *Generator) Generate(ctx context.Context, prefs domain.Preferences) []domain.Recipe {
	prefs = prefs.WithDefaults()
	g.log.Info("generating %s %s recipes (cuisine=%s, %d ingredients)",
		prefs.DietType, prefs.MealType, prefs.Cuisine, len(prefs.Ingredients))
	return g.resolve(g.attempt(ctx, BuildPrompt(prefs)))
}

// GenerateDirect returns 1 to 3 valid recipes for a named dish, the
// classic version first. It never fails.
func (g *Generator) GenerateDirect(ctx context.Context, dish, lang string) []domain.Recipe {
	g.log.Info("generating direct recipe for %q", dish)
	return g.resolve(g.attempt(ctx, BuildDirectPrompt(dish, lang)))
}

// attempt calls the model, retrying adapter errors, then parses the reply.
func (g *Generator) attempt(ctx context.Context, prompt string) outcome {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var (
		text string
		err  error
	)
	for try := 0; try <= g.retries; try++ {
		if try > 0 {
			g.log.Warn("model call failed (attempt %d/%d): %v", try, g.retries+1, err)
			select {
			case <-ctx.Done():
				return outcome{err: fmt.Errorf("recipe: %w (last error: %v)", ctx.Err(), err)}
			case <-time.After(g.backoff):
			}
		}
		text, err = g.model.Complete(ctx, prompt)
		if err == nil || ctx.Err() != nil || errors.Is(err, domain.ErrNoCredential) {
			break
		}
	}
	if err != nil {
		return outcome{err: fmt.Errorf("recipe: model call: %w", err)}
	}

	parsed, err := ParseRecipes(text)
	if err != nil {
		return outcome{err: err}
	}

	valid := make([]domain.Recipe, 0, len(parsed))
	for _, r := range parsed {
		if !r.Valid() {
			g.log.Debug("dropping invalid recipe %q", r.Name)
			continue
		}
		valid = append(valid, r)
	}
	if len(valid) > domain.MaxRecipes {
		valid = valid[:domain.MaxRecipes]
	}
	return outcome{recipes: valid}
}

// resolve is the single point where a failed or empty outcome degrades to
// the fallback set.
func (g *Generator) resolve(o outcome) []domain.Recipe {
	switch {
	case o.err != nil:
		g.log.Warn("using fallback recipes: %v", o.err)
		return FallbackRecipes()
	case len(o.recipes) == 0:
		g.log.Warn("using fallback recipes: model returned no valid recipe")
		return FallbackRecipes()
	default:
		g.log.Info("generated %d recipes", len(o.recipes))
		return o.recipes
	}
}
