package recipe

// Difficulty levels a recipe can declare.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// NormalizeDifficulty validates a difficulty value, falling back to medium.
func NormalizeDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s)
	default:
		return DifficultyMedium
	}
}

// Priority orders recipes by how urgently they should be cooked.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// NormalizePriority validates a priority value, falling back to medium.
func NormalizePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// Source tags where a recipe came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// AvailableIngredient is an ingredient the recipe expects the user to have.
type AvailableIngredient struct {
	Name      string   `json:"name"`
	Amount    string   `json:"amount"`
	Available bool     `json:"available"`
	Priority  Priority `json:"priority"`
}

// MissingIngredient is an ingredient the recipe needs but the inventory
// lacks. Essential ingredients cannot be substituted away.
type MissingIngredient struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	Essential  bool   `json:"essential"`
	Substitute string `json:"substitute,omitempty"`
}

// Recipe is a suggestion shown to the user. Records are ephemeral,
// recomputed per request and never persisted.
type Recipe struct {
	ID                   string                `json:"id"`
	Title                string                `json:"title"`
	Difficulty           Difficulty            `json:"difficulty"`
	Time                 string                `json:"time"`
	Servings             int                   `json:"servings,omitempty"`
	Priority             Priority              `json:"priority"`
	Description          string                `json:"description"`
	AvailableIngredients []AvailableIngredient `json:"available_ingredients"`
	MissingIngredients   []MissingIngredient   `json:"missing_ingredients"`
	Instructions         []string              `json:"instructions"`
	Tips                 string                `json:"tips,omitempty"`
	Source               Source                `json:"source"`

	// Computed against the current inventory, never authoritative input.
	MatchedIngredients []string `json:"matched_ingredients"`
	MatchScore         float64  `json:"match_score"`
	PriorityScore      int      `json:"priority_score"`
	Makeable           bool     `json:"makeable"`
}
