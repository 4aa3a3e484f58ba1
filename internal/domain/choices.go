package domain

import "slices"

// Choice distinguishes the guided suggestion flow from direct dish lookup.
type Choice string

const (
	ChoiceNone       Choice = ""
	ChoiceSuggestion Choice = "suggestion"
	ChoiceDirect     Choice = "direct"
)

// Valid reports whether c is a selectable choice.
func (c Choice) Valid() bool {
	return c == ChoiceSuggestion || c == ChoiceDirect
}

// MealType is the meal being planned.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnacks    MealType = "snacks"
	MealDinner    MealType = "dinner"
)

// MealTypes lists meal types in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealSnacks, MealDinner}

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool { return slices.Contains(MealTypes, m) }

// DietType is the dietary constraint.
type DietType string

const (
	DietVegetarian    DietType = "vegetarian"
	DietEggitarian    DietType = "eggitarian"
	DietNonVegetarian DietType = "non_vegetarian"
)

// DietTypes lists diet types in display order.
var DietTypes = []DietType{DietVegetarian, DietEggitarian, DietNonVegetarian}

// Valid reports whether d is a known diet type.
func (d DietType) Valid() bool { return slices.Contains(DietTypes, d) }

// Cuisine is the cuisine constraint. CuisineSurprise means unconstrained.
type Cuisine string

const (
	CuisineNorthIndian   Cuisine = "north_indian"
	CuisineSouthIndian   Cuisine = "south_indian"
	CuisineThai          Cuisine = "thai"
	CuisineMexican       Cuisine = "mexican"
	CuisineItalian       Cuisine = "italian"
	CuisineContinental   Cuisine = "continental"
	CuisineMediterranean Cuisine = "mediterranean"
	CuisineChinese       Cuisine = "chinese"
	CuisineSurprise      Cuisine = "surprise_me"
)

// Cuisines lists cuisines in display order.
var Cuisines = []Cuisine{
	CuisineNorthIndian, CuisineSouthIndian, CuisineThai, CuisineMexican,
	CuisineItalian, CuisineContinental, CuisineMediterranean, CuisineChinese,
	CuisineSurprise,
}

// Valid reports whether c is a known cuisine.
func (c Cuisine) Valid() bool { return slices.Contains(Cuisines, c) }

// Supported language codes. LanguageDefault is the baseline locale.
const (
	LanguageEnglish  = "en"
	LanguageHindi    = "hi"
	LanguageHinglish = "hinglish"
	LanguageDefault  = LanguageEnglish
)

// Languages lists supported language codes in display order.
var Languages = []string{LanguageEnglish, LanguageHindi, LanguageHinglish}

// ValidLanguage reports whether code is supported.
func ValidLanguage(code string) bool { return slices.Contains(Languages, code) }
