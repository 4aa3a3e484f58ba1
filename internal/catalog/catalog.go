// Package catalog holds the static option lists offered to users: common
// ingredients per diet and meal, and button labels for every enum.
package catalog

import "github.com/hammamikhairi/mealbot/internal/domain"

var ingredients = map[domain.DietType]map[domain.MealType][]string{
	domain.DietVegetarian: {
		domain.MealBreakfast: {
			"Oats", "Milk", "Eggs", "Bread", "Butter", "Honey", "Banana", "Apple",
			"Yogurt", "Cheese", "Tomato", "Onion", "Green Chili", "Ginger", "Potato",
			"Paneer", "Rice", "Semolina", "Coconut", "Jaggery",
		},
		domain.MealLunch: {
			"Rice", "Wheat Flour", "Lentils", "Chickpeas", "Kidney Beans", "Paneer",
			"Potato", "Cauliflower", "Spinach", "Tomato", "Onion", "Garlic", "Ginger",
			"Green Chili", "Coriander", "Cumin", "Turmeric", "Red Chili", "Yogurt", "Oil",
		},
		domain.MealSnacks: {
			"Chickpea Flour", "Potato", "Onion", "Green Chili", "Ginger", "Chat Masala",
			"Tamarind", "Mint", "Coriander", "Puffed Rice", "Sev", "Bread", "Cheese",
			"Butter", "Tea Leaves", "Milk", "Biscuits", "Nuts", "Dates", "Coconut",
		},
		domain.MealDinner: {
			"Rice", "Wheat Flour", "Lentils", "Mixed Vegetables", "Paneer", "Mushroom",
			"Bell Pepper", "Broccoli", "Carrot", "Peas", "Tomato", "Onion", "Garlic",
			"Ginger", "Spinach", "Fenugreek", "Cauliflower", "Eggplant", "Yogurt", "Ghee",
		},
	},
	domain.DietEggitarian: {
		domain.MealBreakfast: {
			"Eggs", "Bread", "Milk", "Butter", "Cheese", "Tomato", "Onion", "Bell Pepper",
			"Spinach", "Mushroom", "Ham", "Bacon", "Oats", "Banana", "Honey", "Yogurt",
			"Avocado", "Olive Oil", "Salt", "Black Pepper",
		},
		domain.MealLunch: {
			"Eggs", "Rice", "Pasta", "Bread", "Cheese", "Vegetables", "Lentils", "Quinoa",
			"Potato", "Sweet Potato", "Broccoli", "Zucchini", "Tomato", "Onion", "Garlic",
			"Herbs", "Olive Oil", "Vinegar", "Nuts", "Seeds",
		},
		domain.MealSnacks: {
			"Eggs", "Bread", "Crackers", "Cheese", "Avocado", "Hummus", "Vegetables",
			"Nuts", "Yogurt", "Berries", "Dark Chocolate", "Protein Powder", "Milk",
			"Peanut Butter", "Banana", "Apple", "Carrots", "Celery", "Cucumber", "Olives",
		},
		domain.MealDinner: {
			"Eggs", "Rice", "Pasta", "Quinoa", "Vegetables", "Legumes", "Tofu", "Tempeh",
			"Sweet Potato", "Broccoli", "Asparagus", "Brussels Sprouts", "Kale", "Spinach",
			"Tomato", "Onion", "Garlic", "Ginger", "Herbs", "Spices",
		},
	},
	domain.DietNonVegetarian: {
		domain.MealBreakfast: {
			"Eggs", "Chicken", "Turkey", "Bacon", "Sausage", "Salmon", "Bread", "Butter",
			"Cheese", "Milk", "Tomato", "Onion", "Bell Pepper", "Spinach", "Mushroom",
			"Hash Browns", "Oats", "Yogurt", "Honey", "Berries",
		},
		domain.MealLunch: {
			"Chicken", "Beef", "Pork", "Fish", "Shrimp", "Rice", "Pasta", "Bread",
			"Potato", "Vegetables", "Salad Greens", "Tomato", "Onion", "Garlic", "Ginger",
			"Lemon", "Olive Oil", "Herbs", "Spices", "Cheese",
		},
		domain.MealSnacks: {
			"Chicken Wings", "Fish Fingers", "Meat Balls", "Jerky", "Cheese", "Crackers",
			"Nuts", "Olives", "Eggs", "Avocado", "Hummus", "Vegetables", "Fruits",
			"Yogurt", "Dark Chocolate", "Protein Bar", "Smoothie", "Milk", "Honey", "Berries",
		},
		domain.MealDinner: {
			"Chicken", "Beef", "Pork", "Lamb", "Fish", "Seafood", "Rice", "Pasta", "Potato",
			"Vegetables", "Salad", "Broccoli", "Asparagus", "Green Beans", "Carrots",
			"Onion", "Garlic", "Herbs", "Spices", "Wine",
		},
	},
}

// Ingredients returns the common ingredients for a diet and meal, or nil
// when the pair is unknown. The returned slice must not be modified.
func Ingredients(diet domain.DietType, meal domain.MealType) []string {
	return ingredients[diet][meal]
}

// LanguageLabels are the language buttons, shown before a language exists.
var LanguageLabels = map[string]string{
	domain.LanguageEnglish:  "🇺🇸 English",
	domain.LanguageHindi:    "🇮🇳 हिंदी",
	domain.LanguageHinglish: "🇮🇳 Hinglish",
}

// MealLabels are the meal-type buttons.
var MealLabels = map[domain.MealType]string{
	domain.MealBreakfast: "🌅 Breakfast",
	domain.MealLunch:     "🍽 Lunch",
	domain.MealSnacks:    "🍿 Snacks",
	domain.MealDinner:    "🌙 Dinner",
}

// DietLabels are the diet-type buttons.
var DietLabels = map[domain.DietType]string{
	domain.DietVegetarian:    "🥬 Vegetarian",
	domain.DietEggitarian:    "🥚 Eggitarian",
	domain.DietNonVegetarian: "🍗 Non Vegetarian",
}

// CuisineLabels are the cuisine buttons.
var CuisineLabels = map[domain.Cuisine]string{
	domain.CuisineNorthIndian:   "🇮🇳 North Indian",
	domain.CuisineSouthIndian:   "🌶️ South Indian",
	domain.CuisineThai:          "🇹🇭 Thai",
	domain.CuisineMexican:       "🇲🇽 Mexican",
	domain.CuisineItalian:       "🇮🇹 Italian",
	domain.CuisineContinental:   "🍽️ Continental",
	domain.CuisineMediterranean: "🫒 Mediterranean",
	domain.CuisineChinese:       "🇨🇳 Chinese",
	domain.CuisineSurprise:      "🎲 Surprise Me",
}
