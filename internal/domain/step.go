package domain

// Step is the current stage of one user's conversation.
type Step int

const (
	StepLanguage Step = iota
	StepChoice
	StepMeal
	StepDiet
	StepIngredients
	StepCuisine
	StepRecipes
)

var stepNames = map[Step]string{
	StepLanguage:    "language",
	StepChoice:      "choice",
	StepMeal:        "meal",
	StepDiet:        "diet",
	StepIngredients: "ingredients",
	StepCuisine:     "cuisine",
	StepRecipes:     "recipes",
}

// String returns the persisted name of the step.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s is one of the defined steps.
func (s Step) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

// StepFromString converts a persisted step name. Unknown names map to
// StepLanguage so a corrupt record restarts the conversation instead of
// leaving it in an undefined state.
func StepFromString(name string) Step {
	for s, n := range stepNames {
		if n == name {
			return s
		}
	}
	return StepLanguage
}

// MarshalText implements encoding.TextMarshaler.
func (s Step) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return []byte(StepLanguage.String()), nil
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (s *Step) UnmarshalText(b []byte) error {
	*s = StepFromString(string(b))
	return nil
}
