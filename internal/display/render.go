// Package display renders recipes and prompts as Telegram-flavoured
// Markdown text. Every function is pure.
package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/locale"
)

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// Escape protects model- or user-supplied text from being read as
// Markdown entities.
func Escape(s string) string {
	return markdownEscaper.Replace(s)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Recipe renders one recipe in full.
func Recipe(r domain.Recipe, lang string) string {
	t := func(k locale.Key) string { return locale.Get(k, lang) }

	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ *%s*", Escape(r.Name))
	if r.Servings > 0 {
		fmt.Fprintf(&b, " (%s %d)", t(locale.Serves), r.Servings)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "⏱️ *%s:* %s\n\n", t(locale.CookingTime), Escape(r.CookingTime))

	fmt.Fprintf(&b, "🥘 *%s:*\n", t(locale.IngredientsLabel))
	for i, ing := range r.Ingredients {
		fmt.Fprintf(&b, "   %d. %s\n", i+1, Escape(ing))
	}

	fmt.Fprintf(&b, "\n👨‍🍳 *%s:*\n", t(locale.StepsLabel))
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "   *%d.* %s\n\n", i+1, Escape(step))
	}

	fmt.Fprintf(&b, "📊 *%s:*\n", t(locale.NutritionLabel))
	fmt.Fprintf(&b, "🔥 *%s %s*\n", num(r.Macros.Calories), t(locale.Calories))
	fmt.Fprintf(&b, "💪 %s: %sg\n", t(locale.Protein), num(r.Macros.Protein))
	fmt.Fprintf(&b, "🌾 %s: %sg\n", t(locale.Carbs), num(r.Macros.Carbs))
	fmt.Fprintf(&b, "🥑 %s: %sg\n", t(locale.Fat), num(r.Macros.Fat))

	if r.VideoURL != "" {
		fmt.Fprintf(&b, "\n📺 *%s:* %s", t(locale.VideoLabel), r.VideoURL)
	}
	return b.String()
}

// RecipeList renders the numbered summary shown after generation.
func RecipeList(recipes []domain.Recipe, lang string) string {
	var b strings.Builder
	b.WriteString(locale.Get(locale.RecipeListHeader, lang))
	b.WriteString("\n\n")
	for i, r := range recipes {
		fmt.Fprintf(&b, "%d. *%s* (%s cal)\n", i+1, Escape(r.Name), num(r.Macros.Calories))
	}
	b.WriteString("\n")
	b.WriteString(locale.Get(locale.RecipeListFooter, lang))
	return b.String()
}

// IngredientPrompt renders the ingredient question followed by the
// current selection, in selection order.
func IngredientPrompt(lang string, selected []string) string {
	base := locale.Get(locale.IngredientSelection, lang)
	if len(selected) == 0 {
		return base
	}
	escaped := make([]string, len(selected))
	for i, s := range selected {
		escaped[i] = Escape(s)
	}
	return fmt.Sprintf("%s\n\n%s: %s", base, locale.Get(locale.Selected, lang), strings.Join(escaped, ", "))
}

// IngredientLabel is the button text for one ingredient.
func IngredientLabel(name string, selected bool) string {
	if selected {
		return "✅ " + name
	}
	return name
}
