package recipe_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pantry-tracker/internal/core/inventory"
	"pantry-tracker/internal/core/recipe"
	"pantry-tracker/internal/infrastructure/config"
	"pantry-tracker/internal/pkg/common"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func genConfig(fallback bool) config.GenerationConfig {
	return config.GenerationConfig{
		Endpoint:   "https://example.openai.azure.com",
		Deployment: "gpt-4o-mini",
		APIKey:     "test-key",
		APIVersion: "2024-02-15-preview",
		MaxTokens:  2000,
		Timeout:    100 * time.Millisecond,
		Fallback:   fallback,
	}
}

func fixedNow() time.Time {
	return time.Date(2030, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func TestSuggest_GenerationPath(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return `[
			{"title":"Lite treff","available_ingredients":[{"name":"ananas"},{"name":"kokos"}]},
			{"title":"Stort treff","available_ingredients":[{"name":"melk"},{"name":"egg"}]}
		]`, nil
	})

	orch := recipe.NewOrchestratorAt(genConfig(true), gen, fixedNow)
	items := []inventory.FoodItem{
		{ID: "1", Name: "Melk", ExpiryDate: inventory.NewDate(2030, time.March, 11)},
		{ID: "2", Name: "Egg", ExpiryDate: inventory.NewDate(2030, time.April, 1)},
	}

	recipes, err := orch.Suggest(context.Background(), items, recipe.Preferences{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recipes) != 2 {
		t.Fatalf("want 2 recipes, got %d", len(recipes))
	}

	best := recipes[0]
	if best.Title != "Stort treff" {
		t.Fatalf("want best match first, got %q", best.Title)
	}
	// 2 matches + urgency 3 (expires tomorrow) + urgency 1 (far future)
	if best.PriorityScore != 6 {
		t.Fatalf("want priority score 6, got %d", best.PriorityScore)
	}
	if !best.Makeable {
		t.Fatal("want recipe with all ingredients matched flagged makeable")
	}
	if recipes[1].Makeable {
		t.Fatal("want recipe with no matches not makeable")
	}
}

func TestSuggest_TimeoutFallsBack(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	orch := recipe.NewOrchestratorAt(genConfig(true), gen, fixedNow)

	recipes, err := orch.Suggest(context.Background(), nil, recipe.Preferences{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recipes) == 0 {
		t.Fatal("want fallback catalog on timeout")
	}
	for _, r := range recipes {
		if r.Source != recipe.SourceFallback {
			t.Fatalf("want fallback source, got %q", r.Source)
		}
	}
}

func TestSuggest_FailureWithFallbackDisabled(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("boom")
	})

	orch := recipe.NewOrchestratorAt(genConfig(false), gen, fixedNow)

	_, err := orch.Suggest(context.Background(), nil, recipe.Preferences{})
	if err == nil {
		t.Fatal("want error when fallback disabled")
	}
	ce, ok := err.(*common.CustomError)
	if !ok || ce.Code != common.ErrGenerationFailed.Code {
		t.Fatalf("want generation-failed error, got %v", err)
	}
}

func TestSuggest_ParseFailureFallsBack(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "not json at all", nil
	})

	orch := recipe.NewOrchestratorAt(genConfig(true), gen, fixedNow)

	recipes, err := orch.Suggest(context.Background(), nil, recipe.Preferences{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recipes) == 0 || recipes[0].Source != recipe.SourceFallback {
		t.Fatal("want fallback catalog on parse failure")
	}
}

func TestSuggest_NotConfigured(t *testing.T) {
	cfg := config.GenerationConfig{Fallback: true, Timeout: time.Second}
	orch := recipe.NewOrchestratorAt(cfg, nil, fixedNow)

	recipes, err := orch.Suggest(context.Background(), nil, recipe.Preferences{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recipes) == 0 {
		t.Fatal("want fallback catalog when generation is not configured")
	}

	// with fallback also disabled there is nothing to serve
	cfg.Fallback = false
	orch = recipe.NewOrchestratorAt(cfg, nil, fixedNow)
	if _, err := orch.Suggest(context.Background(), nil, recipe.Preferences{}); err == nil {
		t.Fatal("want error when neither generation nor fallback is available")
	}
}

func TestSuggest_FallbackMatchedAgainstInventory(t *testing.T) {
	cfg := config.GenerationConfig{Fallback: true, Timeout: time.Second}
	orch := recipe.NewOrchestratorAt(cfg, nil, fixedNow)

	items := []inventory.FoodItem{
		{ID: "1", Name: "Egg", ExpiryDate: inventory.NewDate(2030, time.March, 11)},
		{ID: "2", Name: "Ost", ExpiryDate: inventory.NewDate(2030, time.March, 11)},
		{ID: "3", Name: "Smør", ExpiryDate: inventory.NewDate(2030, time.March, 11)},
	}

	recipes, err := orch.Suggest(context.Background(), items, recipe.Preferences{})
	if err != nil {
		t.Fatal(err)
	}

	if recipes[0].Title != "Omelett med ost" {
		t.Fatalf("want the recipe using the urgent items first, got %q", recipes[0].Title)
	}
	if !recipes[0].Makeable {
		t.Fatal("want fully matched fallback recipe flagged makeable")
	}
}
