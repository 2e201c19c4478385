package recipe

// FallbackCatalog returns the hand-authored recipes used when generation is
// disabled or fails. The catalog is small on purpose; it exists so the
// suggestions screen never comes up empty.
func FallbackCatalog() []Recipe {
	return []Recipe{
		{
			ID:          "fallback_omelett",
			Title:       "Omelett med ost",
			Difficulty:  DifficultyEasy,
			Time:        "10 min",
			Servings:    2,
			Priority:    PriorityHigh,
			Description: "Rask omelett som bruker opp egg og osterester.",
			AvailableIngredients: []AvailableIngredient{
				{Name: "Egg", Amount: "3 stk"},
				{Name: "Ost", Amount: "50 g"},
				{Name: "Smør", Amount: "1 ss"},
			},
			MissingIngredients: []MissingIngredient{},
			Instructions: []string{
				"Visp eggene med litt salt og pepper.",
				"Smelt smør i en stekepanne på middels varme.",
				"Hell i eggene og la dem stivne nesten helt.",
				"Dryss over revet ost og brett omeletten sammen.",
			},
			Tips:   "Tilsett gjerne rester av grønnsaker eller skinke.",
			Source: SourceFallback,
		},
		{
			ID:          "fallback_pasta",
			Title:       "Pasta med tomatsaus",
			Difficulty:  DifficultyEasy,
			Time:        "20 min",
			Servings:    4,
			Priority:    PriorityMedium,
			Description: "Enkel hverdagspasta med hermetiske tomater.",
			AvailableIngredients: []AvailableIngredient{
				{Name: "Pasta", Amount: "400 g"},
				{Name: "Hermetiske tomater", Amount: "1 boks"},
				{Name: "Løk", Amount: "1 stk"},
				{Name: "Hvitløk", Amount: "2 fedd"},
			},
			MissingIngredients: []MissingIngredient{
				{Name: "Parmesan", Amount: "50 g", Essential: false, Substitute: "annen fast ost"},
			},
			Instructions: []string{
				"Kok pastaen etter anvisningen på pakken.",
				"Fres finhakket løk og hvitløk blanke i olje.",
				"Tilsett tomatene og la sausen småkoke i 10 minutter.",
				"Vend pastaen inn i sausen og smak til med salt og pepper.",
			},
			Tips:   "En klunk pastavann gjør sausen blankere.",
			Source: SourceFallback,
		},
		{
			ID:          "fallback_restesuppe",
			Title:       "Restesuppe med grønnsaker",
			Difficulty:  DifficultyEasy,
			Time:        "30 min",
			Servings:    4,
			Priority:    PriorityMedium,
			Description: "Suppe som redder grønnsaker på vei ut av datoen.",
			AvailableIngredients: []AvailableIngredient{
				{Name: "Gulrot", Amount: "3 stk"},
				{Name: "Potet", Amount: "4 stk"},
				{Name: "Løk", Amount: "1 stk"},
				{Name: "Buljong", Amount: "1 l"},
			},
			MissingIngredients: []MissingIngredient{},
			Instructions: []string{
				"Skrell og grovhakk grønnsakene.",
				"Fres løken blank i en gryte.",
				"Tilsett resten av grønnsakene og buljongen.",
				"La suppen koke til grønnsakene er møre, cirka 20 minutter.",
			},
			Tips:   "Alle grønnsaker i skuffen kan gå i gryta.",
			Source: SourceFallback,
		},
		{
			ID:          "fallback_kyllingwok",
			Title:       "Kyllingwok",
			Difficulty:  DifficultyMedium,
			Time:        "25 min",
			Servings:    3,
			Priority:    PriorityMedium,
			Description: "Rask wok med kylling og sprø grønnsaker.",
			AvailableIngredients: []AvailableIngredient{
				{Name: "Kyllingfilet", Amount: "400 g"},
				{Name: "Paprika", Amount: "1 stk"},
				{Name: "Brokkoli", Amount: "1 stk"},
				{Name: "Ris", Amount: "3 dl"},
			},
			MissingIngredients: []MissingIngredient{
				{Name: "Soyasaus", Amount: "3 ss", Essential: true},
			},
			Instructions: []string{
				"Kok risen etter anvisningen på pakken.",
				"Stek kyllingen i strimler på høy varme.",
				"Tilsett grønnsakene og wok videre i noen minutter.",
				"Smak til med soyasaus og server over risen.",
			},
			Source: SourceFallback,
		},
	}
}
