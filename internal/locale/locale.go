// Package locale holds the user-facing message table. Lookups fall back
// to English for missing keys and to the key itself when English lacks it
// too.
package locale

import "github.com/hammamikhairi/mealbot/internal/domain"

// Key identifies a localized message.
type Key string

const (
	Welcome             Key = "welcome"
	ChoiceSelection     Key = "choice_selection"
	NeedSuggestions     Key = "need_suggestions"
	KnowRecipe          Key = "know_recipe"
	MealSelection       Key = "meal_selection"
	DietSelection       Key = "diet_selection"
	IngredientSelection Key = "ingredient_selection"
	Selected            Key = "selected"
	SkipIngredients     Key = "skip_ingredients"
	CustomIngredient    Key = "custom_ingredient"
	CustomPrompt        Key = "custom_prompt"
	Cancel              Key = "cancel"
	CuisineSelection    Key = "cuisine_selection"
	DirectPrompt        Key = "direct_prompt"
	GeneratingRecipes   Key = "generating_recipes"
	RecipeListHeader    Key = "recipe_list_header"
	RecipeListFooter    Key = "recipe_list_footer"
	NoRecipes           Key = "no_recipes"
	ErrorMessage        Key = "error_message"
	Guidance            Key = "guidance"
	TryAgain            Key = "try_again"
	Back                Key = "back"
	Done                Key = "done"
	SurpriseMe          Key = "surprise_me"
	Serves              Key = "serves"
	CookingTime         Key = "cooking_time"
	IngredientsLabel    Key = "ingredients_label"
	StepsLabel          Key = "steps_label"
	NutritionLabel      Key = "nutrition_label"
	Calories            Key = "calories"
	Protein             Key = "protein"
	Carbs               Key = "carbs"
	Fat                 Key = "fat"
	VideoLabel          Key = "video_label"
)

var messages = map[string]map[Key]string{
	domain.LanguageEnglish: {
		Welcome:             "Hi! 👩‍🍳 Let's help you decide what to cook today.\nFirst, please select your preferred language:",
		ChoiceSelection:     "How would you like to proceed?",
		NeedSuggestions:     "💡 Need suggestions",
		KnowRecipe:          "📝 I know what to cook",
		MealSelection:       "Which meal are you planning?",
		DietSelection:       "What's your meal type today?",
		IngredientSelection: "Select what you have in the kitchen (Atleast 1):",
		Selected:            "Selected",
		SkipIngredients:     "Skip",
		CustomIngredient:    "Enter custom ingredient",
		CustomPrompt:        "Please type your custom ingredient and send it as a message:",
		Cancel:              "Cancel",
		CuisineSelection:    "What cuisine matches your ingredients? 🤔\n(Pick something that makes sense with what you have - let's not confuse the chef! 👨‍🍳)",
		DirectPrompt:        "Please tell me what you want to cook (e.g., paneer bhurji, rajma chawal, etc.):",
		GeneratingRecipes:   "🍳 Generating delicious recipes for you...",
		RecipeListHeader:    "Here are some delicious recipes for you:",
		RecipeListFooter:    "Tap a recipe number to see full details! 👆",
		NoRecipes:           "Sorry, no recipes could be generated. Please try again.",
		ErrorMessage:        "Sorry, something went wrong. Please try again by sending /start",
		Guidance:            "Please use the buttons above, or send /start to begin again.",
		TryAgain:            "Try Again",
		Back:                "Back",
		Done:                "Done",
		SurpriseMe:          "Surprise Me",
		Serves:              "Serves",
		CookingTime:         "Cooking Time",
		IngredientsLabel:    "Ingredients",
		StepsLabel:          "Step-by-Step Instructions",
		NutritionLabel:      "NUTRITION INFO (per serving)",
		Calories:            "Calories",
		Protein:             "Protein",
		Carbs:               "Carbs",
		Fat:                 "Fat",
		VideoLabel:          "Watch How to Cook",
	},
	domain.LanguageHindi: {
		Welcome:             "नमस्ते! 👩‍🍳 आज आप क्या बनाना चाहते हैं, मैं आपकी मदद करूंगी।\nपहले अपनी पसंदीदा भाषा चुनें:",
		ChoiceSelection:     "आप कैसे आगे बढ़ना चाहेंगे?",
		NeedSuggestions:     "💡 सुझाव चाहिए",
		KnowRecipe:          "📝 मुझे पता है क्या बनाना है",
		MealSelection:       "आप कौन सा खाना बनाने की योजना बना रहे हैं?",
		DietSelection:       "आज आपका खाना कैसा होगा?",
		IngredientSelection: "रसोई में आपके पास क्या है उसे चुनें:",
		Selected:            "चुना गया",
		SkipIngredients:     "छोड़ें",
		CustomIngredient:    "अपनी सामग्री लिखें",
		CustomPrompt:        "कृपया अपनी सामग्री लिखकर संदेश के रूप में भेजें:",
		Cancel:              "रद्द करें",
		CuisineSelection:    "कौन सा cuisine आपके ingredients के साथ match करेगा? 🤔\n(कुछ ऐसा चुनें जो आपके पास की चीज़ों से बन सके - chef को confuse न करें! 👨‍🍳)",
		DirectPrompt:        "कृपया बताएं कि आप क्या बनाना चाहते हैं (जैसे: पनीर भुर्जी, राजमा चावल, आदि):",
		GeneratingRecipes:   "🍳 आपके लिए स्वादिष्ट रेसिपी तैयार की जा रही है...",
		RecipeListHeader:    "यहाँ आपके लिए कुछ रेसिपी सुझाव हैं:",
		ErrorMessage:        "क्षमा करें, कुछ गलत हुआ। कृपया /start भेजकर फिर से कोशिश करें",
		TryAgain:            "फिर कोशिश करें",
		Back:                "वापस",
		Done:                "हो गया",
		SurpriseMe:          "मुझे सरप्राइज़ करें",
	},
	domain.LanguageHinglish: {
		Welcome:             "Hi! 👩‍🍳 Aaj aap kya banana chahte hain, main aapki help karungi.\nPehle apni favorite language choose kariye:",
		ChoiceSelection:     "Aap kaise aage badhna chahenge?",
		NeedSuggestions:     "💡 Suggestions chahiye",
		KnowRecipe:          "📝 Mujhe pata hai kya banana hai",
		MealSelection:       "Aap konsa meal plan kar rahe hain?",
		DietSelection:       "Aaj aapka khana kaisa hoga?",
		IngredientSelection: "Kitchen mein aapke paas kya hai select kariye:",
		SkipIngredients:     "Skip kariye",
		CustomIngredient:    "Apna ingredient likhiye",
		CustomPrompt:        "Apna ingredient type karke message bhejiye:",
		CuisineSelection:    "Konsa cuisine aapke ingredients ke saath match karega? 🤔\n(Kuch aisa choose kariye jo aapke paas ki cheezon se ban sake - chef ko confuse na kariye! 👨‍🍳)",
		DirectPrompt:        "Please batayein ki aap kya banana chahte hain (jaise: paneer bhurji, rajma chawal, etc.):",
		GeneratingRecipes:   "🍳 Aapke liye tasty recipes ready ki ja rahi hain...",
		RecipeListHeader:    "Yahan aapke liye kuch recipe suggestions hain:",
		ErrorMessage:        "Sorry, kuch galat hua. Please /start bhejkar phir try kariye",
		TryAgain:            "Phir Try Kariye",
		Back:                "Wapas",
		Done:                "Ho Gaya",
		SurpriseMe:          "Mujhe Surprise Kariye",
	},
}

// Get returns the message for key in lang.
func Get(key Key, lang string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[domain.LanguageEnglish][key]; ok {
		return s
	}
	return string(key)
}
