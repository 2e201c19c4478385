package recipe_test

import (
	"testing"
	"time"

	"pantry-tracker/internal/core/inventory"
	"pantry-tracker/internal/core/recipe"
)

func item(name string, expiry inventory.Date) inventory.FoodItem {
	return inventory.FoodItem{ID: name, Name: name, Quantity: 1, ExpiryDate: expiry}
}

func TestMatch_BidirectionalSubstring(t *testing.T) {
	recipes := []recipe.Recipe{{
		Title: "Wok",
		AvailableIngredients: []recipe.AvailableIngredient{
			{Name: "kylling"},  // inventory "Kyllingfilet" contains this
			{Name: "Paprika i strimler"}, // contains inventory "paprika"
			{Name: "Soyasaus"},
		},
	}}
	items := []inventory.FoodItem{
		item("Kyllingfilet", inventory.NewDate(2030, time.March, 15)),
		item("paprika", inventory.NewDate(2030, time.March, 15)),
		item("Melk", inventory.NewDate(2030, time.March, 15)),
	}

	matched := recipe.Match(recipes, items)

	got := matched[0].MatchedIngredients
	if len(got) != 2 {
		t.Fatalf("want 2 matches, got %v", got)
	}
	wantScore := 2.0 / 3.0
	if diff := matched[0].MatchScore - wantScore; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("want score %.3f, got %.3f", wantScore, matched[0].MatchScore)
	}
}

func TestMatch_NoDeclaredIngredients(t *testing.T) {
	recipes := []recipe.Recipe{{Title: "Tom"}}
	items := []inventory.FoodItem{item("Melk", inventory.NewDate(2030, time.March, 15))}

	matched := recipe.Match(recipes, items)
	if matched[0].MatchScore != 0 {
		t.Fatalf("want score 0 with no declared ingredients, got %f", matched[0].MatchScore)
	}
	if len(matched[0].MatchedIngredients) != 0 {
		t.Fatalf("want no matches, got %v", matched[0].MatchedIngredients)
	}
}

func TestMatch_DoesNotReorder(t *testing.T) {
	recipes := []recipe.Recipe{
		{Title: "A"},
		{Title: "B", AvailableIngredients: []recipe.AvailableIngredient{{Name: "melk"}}},
	}
	items := []inventory.FoodItem{item("Melk", inventory.NewDate(2030, time.March, 15))}

	matched := recipe.Match(recipes, items)
	if matched[0].Title != "A" || matched[1].Title != "B" {
		t.Fatal("matcher must preserve input order")
	}
}

func TestMatch_EachItemCountedOnce(t *testing.T) {
	recipes := []recipe.Recipe{{
		AvailableIngredients: []recipe.AvailableIngredient{
			{Name: "melk"},
			{Name: "lettmelk"},
		},
	}}
	items := []inventory.FoodItem{item("Melk", inventory.NewDate(2030, time.March, 15))}

	matched := recipe.Match(recipes, items)
	if len(matched[0].MatchedIngredients) != 1 {
		t.Fatalf("want one inventory item matched once, got %v", matched[0].MatchedIngredients)
	}
}
