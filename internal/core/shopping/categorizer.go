package shopping

import "strings"

// CategoryMatch is the result of categorizing an ingredient name.
type CategoryMatch struct {
	Name string
	Icon string
}

// Default category for names no rule claims.
var defaultCategory = CategoryMatch{Name: "Other", Icon: "cart"}

// Categorize maps a free-text item name to a shopping category. Matching is
// case-insensitive on trimmed input; rules are tested in a fixed priority
// order and the first rule with any matching keyword substring wins.
func Categorize(name string) CategoryMatch {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return defaultCategory
	}

	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(needle, keyword) {
				return CategoryMatch{Name: rule.name, Icon: rule.icon}
			}
		}
	}

	return defaultCategory
}

type categoryRule struct {
	name     string
	icon     string
	keywords []string
}

// Rule order matters: meat claims "kylling"/"chicken" before the generic
// rules get a chance, frozen goods before vegetables, and so on.
var categoryRules = []categoryRule{
	{
		name: "Meat & Fish",
		icon: "fish",
		keywords: []string{
			"kylling", "chicken", "kjøttdeig", "biff", "beef", "svin", "pork",
			"bacon", "pølse", "sausage", "skinke", "ham", "laks", "salmon",
			"torsk", "cod", "fisk", "fish", "reke", "shrimp", "tunfisk", "tuna",
			"kalkun", "turkey", "lam", "lamb", "kjøtt",
		},
	},
	{
		name: "Frozen",
		icon: "snowflake",
		keywords: []string{
			"frossen", "frosne", "frozen", "frys", "iskrem", "ice cream",
		},
	},
	{
		name: "Dairy & Eggs",
		icon: "drop",
		keywords: []string{
			"melk", "milk", "ost", "cheese", "yoghurt", "yogurt", "smør",
			"butter", "fløte", "cream", "rømme", "egg", "kefir",
		},
	},
	{
		name: "Fruit & Vegetables",
		icon: "leaf",
		keywords: []string{
			"eple", "apple", "banan", "banana", "appelsin", "orange", "tomat",
			"tomato", "agurk", "cucumber", "salat", "lettuce", "løk", "onion",
			"hvitløk", "garlic", "potet", "potato", "gulrot", "carrot",
			"paprika", "pepper", "brokkoli", "broccoli", "spinat", "spinach",
			"sopp", "mushroom", "sitron", "lemon", "bær", "berry", "frukt",
			"fruit", "grønnsak", "avokado", "avocado", "squash",
		},
	},
	{
		name: "Bakery",
		icon: "birthday.cake",
		keywords: []string{
			"brød", "bread", "rundstykke", "bagel", "bolle", "bun",
			"knekkebrød", "tortilla", "lompe", "croissant", "baguette",
		},
	},
	{
		name: "Pantry",
		icon: "cabinet",
		keywords: []string{
			"ris", "rice", "pasta", "spaghetti", "nudler", "noodle", "mel",
			"flour", "sukker", "sugar", "salt", "krydder", "spice", "olje",
			"oil", "eddik", "vinegar", "saus", "sauce", "hermetikk", "canned",
			"bønner", "bean", "linser", "lentil", "havregryn", "oat", "müsli",
			"cereal", "honning", "honey", "syltetøy", "jam", "buljong",
			"broth", "suppe", "soup", "tacokrydder",
		},
	},
	{
		name: "Drinks",
		icon: "cup.straw",
		keywords: []string{
			"vann", "water", "juice", "saft", "kaffe", "coffee", "tea",
			"brus", "soda", "øl", "beer", "vin", "wine", "drikke",
		},
	},
	{
		name: "Snacks",
		icon: "popcorn",
		keywords: []string{
			"sjokolade", "chocolate", "chips", "kjeks", "cracker", "cookie",
			"godteri", "candy", "nøtter", "nut", "popcorn", "snack",
		},
	},
}
