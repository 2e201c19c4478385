package recipe

import (
	"fmt"
	"sort"
	"strings"
)

// Token-budget limits. The ingredient list is truncated and the requested
// recipe count kept small so a single completion stays within budget.
const (
	maxPromptIngredients = 10
	defaultRecipeCount   = 3
)

// PromptIngredient is one inventory entry as seen by the prompt builder.
type PromptIngredient struct {
	Name            string
	Quantity        int
	DaysUntilExpiry int
}

// Preferences shape the generation request.
type Preferences struct {
	Difficulty Difficulty
	MaxRecipes int
}

// BuildPrompt renders the generation request for a prioritized ingredient
// list. Ingredients closest to expiry come first and the model is told to
// answer with a bare JSON array only. Deterministic for identical input.
func BuildPrompt(ingredients []PromptIngredient, prefs Preferences) string {
	sorted := make([]PromptIngredient, len(ingredients))
	copy(sorted, ingredients)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DaysUntilExpiry < sorted[j].DaysUntilExpiry
	})
	if len(sorted) > maxPromptIngredients {
		sorted = sorted[:maxPromptIngredients]
	}

	count := prefs.MaxRecipes
	if count <= 0 {
		count = defaultRecipeCount
	}

	var sb strings.Builder
	sb.WriteString("Du er en kokkeassistent. Foreslå ")
	sb.WriteString(fmt.Sprintf("%d oppskrifter basert på disse ingrediensene:\n\n", count))

	for _, ing := range sorted {
		switch {
		case ing.DaysUntilExpiry < 0:
			sb.WriteString(fmt.Sprintf("- %s (%d stk, utløpt)\n", ing.Name, ing.Quantity))
		case ing.DaysUntilExpiry == 0:
			sb.WriteString(fmt.Sprintf("- %s (%d stk, utløper i dag)\n", ing.Name, ing.Quantity))
		default:
			sb.WriteString(fmt.Sprintf("- %s (%d stk, utløper om %d dager)\n", ing.Name, ing.Quantity, ing.DaysUntilExpiry))
		}
	}

	sb.WriteString("\nPrioriter ingredienser med færrest dager til utløp.\n")
	sb.WriteString(difficultyPhrase(prefs.Difficulty))
	sb.WriteString("\nSvar KUN med en JSON-array, ingen annen tekst. Hvert objekt har feltene:\n")
	sb.WriteString(`{"title": string, "difficulty": "easy"|"medium"|"hard", "time": string, ` +
		`"servings": number, "priority": "high"|"medium"|"low", "description": string, ` +
		`"available_ingredients": [{"name": string, "amount": string}], ` +
		`"missing_ingredients": [{"name": string, "amount": string, "essential": boolean, "substitute": string}], ` +
		`"instructions": [string], "tips": string}`)
	sb.WriteString("\nSvar på norsk.")

	return sb.String()
}

func difficultyPhrase(d Difficulty) string {
	switch d {
	case DifficultyEasy:
		return "Oppskriftene skal være enkle og raske å lage.\n"
	case DifficultyMedium:
		return "Oppskriftene skal ha middels vanskelighetsgrad.\n"
	case DifficultyHard:
		return "Oppskriftene kan gjerne være avanserte og utfordrende.\n"
	default:
		return "Velg en passende vanskelighetsgrad.\n"
	}
}
