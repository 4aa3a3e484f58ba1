package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/hammamikhairi/mealbot/internal/conversation"
	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/locale"
	"github.com/hammamikhairi/mealbot/internal/logger"
	"github.com/hammamikhairi/mealbot/internal/recipe"
	"github.com/hammamikhairi/mealbot/internal/storage"
)

// ── Fakes ────────────────────────────────────────────────────────

type fakeSource struct {
	mu        sync.Mutex
	recipes   []domain.Recipe
	suggested []domain.Preferences
	direct    []string
	panicMsg  string
}

func (f *fakeSource) Suggest(_ context.Context, prefs domain.Preferences) []domain.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.suggested = append(f.suggested, prefs)
	return append([]domain.Recipe(nil), f.recipes...)
}

func (f *fakeSource) Direct(_ context.Context, dish, _ string) []domain.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.direct = append(f.direct, dish)
	return append([]domain.Recipe(nil), f.recipes...)
}

type failingModel struct{}

func (failingModel) Complete(context.Context, string) (string, error) {
	return "", errors.New("upstream 500")
}

// cannedModel answers every prompt with the same reply.
type cannedModel struct{ reply string }

func (m cannedModel) Complete(context.Context, string) (string, error) {
	return m.reply, nil
}

const fourRecipes = `[
 {"name":"Veg Pulao","ingredients":["rice","onion"],"steps":["Fry","Simmer"],"macros":{"calories":320,"protein":7,"carbs":60,"fat":6}},
 {"name":"Onion Rice","ingredients":["rice","onion"],"steps":["Fry","Mix"],"macros":{"calories":300,"protein":6,"carbs":58,"fat":5}},
 {"name":"Lemon Rice","ingredients":["rice","lemon"],"steps":["Cook","Temper"],"macros":{"calories":280,"protein":5,"carbs":55,"fat":5}},
 {"name":"Curd Rice","ingredients":["rice","yogurt"],"steps":["Cook","Mix"],"macros":{"calories":260,"protein":8,"carbs":45,"fat":6}}
]`

func sampleRecipes(n int) []domain.Recipe {
	out := make([]domain.Recipe, n)
	for i := range out {
		out[i] = domain.Recipe{
			Name:        fmt.Sprintf("Dish %d", i+1),
			Ingredients: []string{"rice"},
			Steps:       []string{"cook"},
			Macros:      domain.Macros{Calories: 100},
			CookingTime: "20 minutes",
			Servings:    2,
		}
	}
	return out
}

func newEngine(src RecipeSource) (*Engine, *storage.Store) {
	store := storage.NewStore(storage.NewMemoryBackend(logger.Nop()), logger.Nop())
	return New(store, src, logger.Nop()), store
}

func press(t *testing.T, e *Engine, user string, cmd domain.Command) conversation.Reply {
	t.Helper()
	return e.Handle(context.Background(), CallbackEvent(user, conversation.EncodeCommand(cmd)))
}

func say(e *Engine, user, text string) conversation.Reply {
	return e.Handle(context.Background(), TextEvent(user, text))
}

func hasOption(r conversation.Reply, data string) bool {
	for _, o := range r.Flatten() {
		if o.Data == data {
			return true
		}
	}
	return false
}

// walkToCuisine drives a user through the guided steps up to CUISINE.
func walkToCuisine(t *testing.T, e *Engine, user string) {
	t.Helper()
	say(e, user, "/start")
	press(t, e, user, domain.CmdLanguage{Code: "en"})
	press(t, e, user, domain.CmdChoice{Choice: domain.ChoiceSuggestion})
	press(t, e, user, domain.CmdMeal{Meal: domain.MealLunch})
	press(t, e, user, domain.CmdDiet{Diet: domain.DietVegetarian})
	press(t, e, user, domain.CmdToggleIngredient{Name: "Paneer"})
	press(t, e, user, domain.CmdIngredientsDone{})
}

// ── Guided flow ──────────────────────────────────────────────────

func TestGuidedFlow(t *testing.T) {
	src := &fakeSource{recipes: sampleRecipes(3)}
	e, store := newEngine(src)
	ctx := context.Background()
	const user = "u1"

	r := say(e, user, "/start")
	if !hasOption(r, "lang:en") || !hasOption(r, "lang:hinglish") {
		t.Fatalf("language keyboard missing options: %+v", r.Options)
	}
	if got := store.Get(ctx, user).Step; got != domain.StepLanguage {
		t.Fatalf("after /start step = %s", got)
	}

	steps := []struct {
		cmd      domain.Command
		wantStep domain.Step
		wantOpt  string
	}{
		{domain.CmdLanguage{Code: "en"}, domain.StepChoice, "choice:direct"},
		{domain.CmdChoice{Choice: domain.ChoiceSuggestion}, domain.StepMeal, "meal:dinner"},
		{domain.CmdMeal{Meal: domain.MealLunch}, domain.StepDiet, "diet:eggitarian"},
		{domain.CmdDiet{Diet: domain.DietVegetarian}, domain.StepIngredients, "ing:Paneer"},
		{domain.CmdToggleIngredient{Name: "Paneer"}, domain.StepIngredients, "ingredients:done"},
		{domain.CmdIngredientsDone{}, domain.StepCuisine, "cuisine:thai"},
	}
	for _, s := range steps {
		r := press(t, e, user, s.cmd)
		if got := store.Get(ctx, user).Step; got != s.wantStep {
			t.Fatalf("%T: step = %s, want %s", s.cmd, got, s.wantStep)
		}
		if !hasOption(r, s.wantOpt) {
			t.Fatalf("%T: reply lacks %q: %+v", s.cmd, s.wantOpt, r.Options)
		}
	}

	var progressed string
	ev := CallbackEvent(user, conversation.EncodeCommand(domain.CmdCuisine{Cuisine: domain.CuisineThai}))
	ev.Progress = func(text string) { progressed = text }
	r = e.Handle(ctx, ev)

	if progressed != locale.Get(locale.GeneratingRecipes, "en") {
		t.Fatalf("progress message = %q", progressed)
	}
	sess := store.Get(ctx, user)
	if sess.Step != domain.StepRecipes || sess.Cuisine != domain.CuisineThai {
		t.Fatalf("after cuisine: step=%s cuisine=%s", sess.Step, sess.Cuisine)
	}
	stored, err := domain.DecodeRecipes(sess.Recipes)
	if err != nil || len(stored) == 0 || len(stored) > domain.MaxRecipes {
		t.Fatalf("stored recipes = %d, err %v", len(stored), err)
	}
	if !strings.Contains(r.Text, "Dish 1") || !hasOption(r, "recipe:0") || !hasOption(r, "recipe:regenerate") {
		t.Fatalf("list reply = %+v", r)
	}

	got := src.suggested[0]
	if got.MealType != domain.MealLunch || got.DietType != domain.DietVegetarian ||
		got.Cuisine != domain.CuisineThai || !reflect.DeepEqual(got.Ingredients, []string{"Paneer"}) {
		t.Fatalf("preferences passed = %+v", got)
	}
}

func TestGuidedScenarios(t *testing.T) {
	tests := []struct {
		name    string
		meal    domain.MealType
		diet    domain.DietType
		toggles []string
		cuisine domain.Cuisine
		want    []string
	}{
		{
			name:    "lunch vegetarian rice onion surprise",
			meal:    domain.MealLunch,
			diet:    domain.DietVegetarian,
			toggles: []string{"Rice", "Onion"},
			cuisine: domain.CuisineSurprise,
			want:    []string{"Rice", "Onion"},
		},
		{
			name:    "dinner non-veg toggled off",
			meal:    domain.MealDinner,
			diet:    domain.DietNonVegetarian,
			toggles: []string{"Chicken", "Rice", "Chicken"},
			cuisine: domain.CuisineThai,
			want:    []string{"Rice"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := recipe.NewGenerator(cannedModel{reply: fourRecipes}, logger.Nop())
			e, store := newEngine(recipe.NewService(gen, nil, logger.Nop()))
			ctx := context.Background()
			const user = "u1"

			say(e, user, "/start")
			press(t, e, user, domain.CmdLanguage{Code: "en"})
			press(t, e, user, domain.CmdChoice{Choice: domain.ChoiceSuggestion})
			press(t, e, user, domain.CmdMeal{Meal: tt.meal})
			press(t, e, user, domain.CmdDiet{Diet: tt.diet})
			for _, name := range tt.toggles {
				press(t, e, user, domain.CmdToggleIngredient{Name: name})
			}
			if got := store.Get(ctx, user).Ingredients; !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ingredients = %v, want %v", got, tt.want)
			}

			press(t, e, user, domain.CmdIngredientsDone{})
			r := press(t, e, user, domain.CmdCuisine{Cuisine: tt.cuisine})

			sess := store.Get(ctx, user)
			if sess.Step != domain.StepRecipes || sess.Cuisine != tt.cuisine {
				t.Fatalf("step=%s cuisine=%s", sess.Step, sess.Cuisine)
			}
			stored, err := domain.DecodeRecipes(sess.Recipes)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(stored) != domain.MaxRecipes || stored[0].Name != "Veg Pulao" {
				t.Fatalf("stored %d recipes (first %q), want %d generated", len(stored), stored[0].Name, domain.MaxRecipes)
			}
			if hasOption(r, "recipe:3") || !hasOption(r, "recipe:2") {
				t.Fatalf("list buttons = %+v", r.Options)
			}
		})
	}
}

func TestFailingModelYieldsFallback(t *testing.T) {
	gen := recipe.NewGenerator(failingModel{}, logger.Nop(), recipe.WithRetries(0))
	e, store := newEngine(recipe.NewService(gen, nil, logger.Nop()))
	ctx := context.Background()

	walkToCuisine(t, e, "u1")
	press(t, e, "u1", domain.CmdCuisine{Cuisine: domain.CuisineItalian})

	stored, err := domain.DecodeRecipes(store.Get(ctx, "u1").Recipes)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(stored, recipe.FallbackRecipes()) {
		t.Fatalf("stored %+v, want the fallback set", stored)
	}
}

func TestTextAtCuisineKeepsStep(t *testing.T) {
	e, store := newEngine(&fakeSource{recipes: sampleRecipes(1)})
	walkToCuisine(t, e, "u1")

	r := say(e, "u1", "something spicy")
	if r.Text != locale.Get(locale.Guidance, "en") {
		t.Fatalf("reply = %q, want guidance", r.Text)
	}
	if got := store.Get(context.Background(), "u1").Step; got != domain.StepCuisine {
		t.Fatalf("step = %s, want CUISINE", got)
	}
}

func TestOutOfStepCommandIgnored(t *testing.T) {
	src := &fakeSource{recipes: sampleRecipes(2)}
	e, store := newEngine(src)
	ctx := context.Background()

	say(e, "u1", "/start")
	press(t, e, "u1", domain.CmdLanguage{Code: "hi"})
	before := store.Get(ctx, "u1")

	tests := []domain.Command{
		domain.CmdMeal{Meal: domain.MealDinner},
		domain.CmdCuisine{Cuisine: domain.CuisineThai},
		domain.CmdSelectRecipe{Index: 0},
		domain.CmdIngredientsSkip{},
	}
	for _, cmd := range tests {
		r := press(t, e, "u1", cmd)
		if r.Text != locale.Get(locale.Guidance, "hi") {
			t.Fatalf("%T: reply %q, want guidance", cmd, r.Text)
		}
	}

	after := store.Get(ctx, "u1")
	if after.Step != before.Step || after.MealType != "" || after.Cuisine != "" {
		t.Fatalf("session changed: %+v", after)
	}
	if len(src.suggested) != 0 {
		t.Fatalf("generation ran for an out-of-step command")
	}
}

func TestSkipClearsIngredients(t *testing.T) {
	e, store := newEngine(&fakeSource{})
	ctx := context.Background()

	say(e, "u1", "/start")
	press(t, e, "u1", domain.CmdLanguage{Code: "en"})
	press(t, e, "u1", domain.CmdChoice{Choice: domain.ChoiceSuggestion})
	press(t, e, "u1", domain.CmdMeal{Meal: domain.MealDinner})
	press(t, e, "u1", domain.CmdDiet{Diet: domain.DietNonVegetarian})
	press(t, e, "u1", domain.CmdToggleIngredient{Name: "Chicken"})
	press(t, e, "u1", domain.CmdCustomIngredientPrompt{})
	say(e, "u1", "saffron")

	if got := store.Get(ctx, "u1").Ingredients; !reflect.DeepEqual(got, []string{"Chicken", "saffron"}) {
		t.Fatalf("ingredients before skip = %v", got)
	}

	press(t, e, "u1", domain.CmdIngredientsSkip{})
	sess := store.Get(ctx, "u1")
	if sess.Step != domain.StepCuisine || len(sess.Ingredients) != 0 || sess.CustomIngredient != "" {
		t.Fatalf("after skip: %+v", sess)
	}
}

func TestToggleMarksSelection(t *testing.T) {
	e, _ := newEngine(&fakeSource{})
	say(e, "u1", "/start")
	press(t, e, "u1", domain.CmdLanguage{Code: "en"})
	press(t, e, "u1", domain.CmdChoice{Choice: domain.ChoiceSuggestion})
	press(t, e, "u1", domain.CmdMeal{Meal: domain.MealBreakfast})
	press(t, e, "u1", domain.CmdDiet{Diet: domain.DietEggitarian})

	r := press(t, e, "u1", domain.CmdToggleIngredient{Name: "Eggs"})
	found := false
	for _, o := range r.Flatten() {
		if o.Data == "ing:Eggs" {
			found = o.Label == "✅ Eggs"
		}
	}
	if !found || !r.Edit {
		t.Fatalf("selected ingredient not marked: %+v", r)
	}

	r = press(t, e, "u1", domain.CmdToggleIngredient{Name: "Eggs"})
	for _, o := range r.Flatten() {
		if o.Data == "ing:Eggs" && o.Label != "Eggs" {
			t.Fatalf("deselected label = %q", o.Label)
		}
	}
}

// ── Direct mode ──────────────────────────────────────────────────

func TestDirectMode(t *testing.T) {
	src := &fakeSource{recipes: sampleRecipes(3)}
	e, store := newEngine(src)
	ctx := context.Background()

	say(e, "u1", "/start")
	press(t, e, "u1", domain.CmdLanguage{Code: "en"})
	r := press(t, e, "u1", domain.CmdChoice{Choice: domain.ChoiceDirect})
	if r.Text != locale.Get(locale.DirectPrompt, "en") {
		t.Fatalf("direct prompt = %q", r.Text)
	}

	r = say(e, "u1", "rajma chawal")
	if len(src.direct) != 1 || src.direct[0] != "rajma chawal" {
		t.Fatalf("direct calls = %v", src.direct)
	}
	if !strings.Contains(r.Text, "Dish 1") || hasOption(r, "recipe:back") {
		t.Fatalf("direct reply = %+v", r)
	}
	sess := store.Get(ctx, "u1")
	if sess.Step != domain.StepRecipes || sess.DirectMealName != "rajma chawal" {
		t.Fatalf("session after direct = %+v", sess)
	}

	press(t, e, "u1", domain.CmdRegenerate{})
	if len(src.direct) != 2 || src.direct[1] != "rajma chawal" {
		t.Fatalf("regenerate did not reuse dish: %v", src.direct)
	}
}

// ── Recipe list ──────────────────────────────────────────────────

func TestSelectBackRegenerate(t *testing.T) {
	src := &fakeSource{recipes: sampleRecipes(3)}
	e, _ := newEngine(src)
	walkToCuisine(t, e, "u1")
	press(t, e, "u1", domain.CmdCuisine{Cuisine: domain.CuisineChinese})

	r := press(t, e, "u1", domain.CmdSelectRecipe{Index: 1})
	if !strings.Contains(r.Text, "Dish 2") || !hasOption(r, "recipe:back") {
		t.Fatalf("detail reply = %+v", r)
	}

	r = press(t, e, "u1", domain.CmdSelectRecipe{Index: 7})
	if r.Text != locale.Get(locale.Guidance, "en") {
		t.Fatalf("out-of-range select = %q", r.Text)
	}

	r = press(t, e, "u1", domain.CmdBack{})
	if !hasOption(r, "recipe:2") {
		t.Fatalf("back reply = %+v", r)
	}

	press(t, e, "u1", domain.CmdRegenerate{})
	if len(src.suggested) != 2 || src.suggested[1].Cuisine != domain.CuisineChinese {
		t.Fatalf("regenerate preferences = %+v", src.suggested)
	}
}

// ── Failure handling ─────────────────────────────────────────────

func TestPanicLeavesSessionUntouched(t *testing.T) {
	src := &fakeSource{recipes: sampleRecipes(1)}
	e, store := newEngine(src)
	ctx := context.Background()
	walkToCuisine(t, e, "u1")
	before := store.Get(ctx, "u1")

	src.panicMsg = "boom"
	r := press(t, e, "u1", domain.CmdCuisine{Cuisine: domain.CuisineThai})
	if r.Text != locale.Get(locale.ErrorMessage, "en") {
		t.Fatalf("reply = %q, want error message", r.Text)
	}

	after := store.Get(ctx, "u1")
	if after.Step != before.Step || after.Cuisine != before.Cuisine || after.Recipes != "" {
		t.Fatalf("session mutated by failed event: %+v", after)
	}

	// The lock was released: the next event is handled normally.
	src.panicMsg = ""
	press(t, e, "u1", domain.CmdCuisine{Cuisine: domain.CuisineThai})
	if got := store.Get(ctx, "u1").Step; got != domain.StepRecipes {
		t.Fatalf("step after recovery = %s", got)
	}
}

func TestUndecodableCallback(t *testing.T) {
	e, store := newEngine(&fakeSource{})
	say(e, "u1", "/start")

	r := e.Handle(context.Background(), CallbackEvent("u1", "bogus:thing"))
	if r.Text != locale.Get(locale.Guidance, "en") {
		t.Fatalf("reply = %q", r.Text)
	}
	if got := store.Get(context.Background(), "u1").Step; got != domain.StepLanguage {
		t.Fatalf("step = %s", got)
	}
}

func TestStartResets(t *testing.T) {
	e, store := newEngine(&fakeSource{recipes: sampleRecipes(1)})
	walkToCuisine(t, e, "u1")

	tests := []string{"/start", "/start@meal_bot", "  /START  "}
	for _, text := range tests {
		if ev := TextEvent("u1", text); ev.Kind != EventReset {
			t.Fatalf("TextEvent(%q).Kind = %s", text, ev.Kind)
		}
	}

	say(e, "u1", "/start@meal_bot")
	sess := store.Get(context.Background(), "u1")
	if sess.Step != domain.StepLanguage || len(sess.Ingredients) != 0 || sess.MealType != "" {
		t.Fatalf("session after reset = %+v", sess)
	}
}

func TestUsersAreIndependent(t *testing.T) {
	e, store := newEngine(&fakeSource{recipes: sampleRecipes(1)})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			walkToCuisine(t, e, user)
		}(fmt.Sprintf("u%d", i))
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		sess := store.Get(ctx, fmt.Sprintf("u%d", i))
		if sess.Step != domain.StepCuisine || !reflect.DeepEqual(sess.Ingredients, []string{"Paneer"}) {
			t.Fatalf("user %d: %+v", i, sess)
		}
	}
}
