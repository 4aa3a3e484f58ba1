package recipe

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/mealbot/internal/domain"
)

var languageNames = map[string]string{
	domain.LanguageEnglish:  "English",
	domain.LanguageHindi:    "Hindi (Devanagari script)",
	domain.LanguageHinglish: "Hinglish (Hindi written in Latin script)",
}

const outputContract = `Output format:
Return ONLY a valid JSON array with this exact structure (no extra text):
[
  {
    "name": "Recipe Name",
    "search_query": "Search query/keywords for a YouTube video of the same recipe",
    "ingredients": [
      "2 cups rice",
      "1 tbsp oil",
      "1 large onion, chopped",
      "2 tomatoes, diced"
    ],
    "steps": [
      "Heat 1 tbsp oil in a pan over medium heat (2 minutes)",
      "Add chopped onions and sauté until golden brown (5-7 minutes)",
      "Add diced tomatoes and cook until soft (4-5 minutes)"
    ],
    "macros": {
      "calories": 400,
      "protein": 25,
      "carbs": 45,
      "fat": 12
    },
    "cookingTime": "25 minutes",
    "servings": 2
  }
]

Important:
- Output must be valid JSON, no markdown, no extra text before or after the array
- Steps must include timing and temperatures where needed
- Be specific about cooking techniques (chop, dice, sauté, simmer)
- Nutritional values are numbers per serving and must be realistic
`

func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

func languageLine(lang string) string {
	name, ok := languageNames[lang]
	if !ok {
		name = languageNames[domain.LanguageDefault]
	}
	return fmt.Sprintf("- Write recipe names, ingredients and steps in %s; keep the JSON keys in English\n", name)
}

// BuildPrompt renders the guided-generation prompt. The output depends
// only on p.
func BuildPrompt(p domain.Preferences) string {
	p = p.WithDefaults()

	ingredients := "any available ingredients"
	if len(p.Ingredients) > 0 {
		ingredients = strings.Join(p.Ingredients, ", ")
	}
	custom := ""
	if c := strings.TrimSpace(p.CustomIngredient); c != "" {
		custom = ", and specifically include " + c
	}
	cuisine := humanize(string(p.Cuisine))
	if p.Cuisine == domain.CuisineSurprise {
		cuisine = "any cuisine (surprise me)"
	}

	var b strings.Builder
	b.WriteString("You are a helpful meal planner assistant.\n\n")
	fmt.Fprintf(&b, "Generate exactly %d %s %s recipes for %s cuisine using these ingredients: %s%s.\n\n",
		domain.MaxRecipes, humanize(string(p.DietType)), p.MealType, cuisine, ingredients, custom)
	b.WriteString("Requirements:\n")
	b.WriteString("- Each recipe must use at least 1 of the provided ingredients\n")
	b.WriteString("- Include ALL necessary ingredients with exact quantities (not just the user's ingredients)\n")
	b.WriteString("- Provide detailed step-by-step instructions with timing and quantities\n")
	b.WriteString("- Calculate accurate nutritional values per serving\n")
	b.WriteString("- Make recipes practical for home cooking\n")
	b.WriteString("- Ensure cuisine authenticity (don't mix incompatible ingredients with the wrong cuisine)\n")
	b.WriteString("- Include the best possible search query for a YouTube video of the same recipe\n")
	b.WriteString(languageLine(p.Language))
	b.WriteString("\n")
	b.WriteString(outputContract)
	fmt.Fprintf(&b, "- If you cannot generate %d recipes, return as many as possible in the same format.", domain.MaxRecipes)
	return b.String()
}

// BuildDirectPrompt renders the prompt for a dish the user named.
func BuildDirectPrompt(dish, lang string) string {
	dish = strings.TrimSpace(dish)

	var b strings.Builder
	b.WriteString("You are a helpful meal planner assistant.\n\n")
	fmt.Fprintf(&b, "The user wants to cook %q. Generate between 1 and %d recipes for it.\n\n", dish, domain.MaxRecipes)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- The first recipe must be the classic home-style version of %q\n", dish)
	b.WriteString("- Any further recipes are popular variations of the same dish\n")
	b.WriteString("- Include ALL necessary ingredients with exact quantities\n")
	b.WriteString("- Provide detailed step-by-step instructions with timing and quantities\n")
	b.WriteString("- Calculate accurate nutritional values per serving\n")
	b.WriteString("- Include the best possible search query for a YouTube video of the same recipe\n")
	b.WriteString(languageLine(lang))
	b.WriteString("\n")
	b.WriteString(outputContract)
	return b.String()
}
