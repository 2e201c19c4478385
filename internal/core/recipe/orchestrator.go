package recipe

import (
	"context"
	"sort"
	"time"

	"pantry-tracker/internal/core/inventory"
	"pantry-tracker/internal/infrastructure/config"
	"pantry-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator performs the external completion call.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Urgency weights for the priority score: items closest to expiry make a
// recipe using them more attractive.
const (
	urgencyImminent = 3 // expires within 2 days
	urgencySoon     = 2 // expires within 5 days
	urgencyNormal   = 1
)

// Orchestrator composes prompt building, the generation call, parsing and
// matching into one suggestion pipeline. When generation is not configured
// or fails, it falls back to the static catalog unless fallback is disabled.
type Orchestrator struct {
	cfg config.GenerationConfig
	gen Generator
	now func() time.Time
}

// NewOrchestrator wires the pipeline. gen may be nil when generation is not
// configured.
func NewOrchestrator(cfg config.GenerationConfig, gen Generator) *Orchestrator {
	return &Orchestrator{
		cfg: cfg,
		gen: gen,
		now: time.Now,
	}
}

// NewOrchestratorAt is NewOrchestrator with an injected clock.
func NewOrchestratorAt(cfg config.GenerationConfig, gen Generator, now func() time.Time) *Orchestrator {
	return &Orchestrator{
		cfg: cfg,
		gen: gen,
		now: now,
	}
}

// Suggest returns recipes for the current inventory, ordered by descending
// priority score, then descending match count.
func (o *Orchestrator) Suggest(ctx context.Context, items []inventory.FoodItem, prefs Preferences) ([]Recipe, error) {
	if o.cfg.Configured() && o.gen != nil {
		recipes, err := o.generate(ctx, items, prefs)
		if err == nil {
			return o.finalize(recipes, items), nil
		}

		common.LogWarn("recipe generation failed", zap.Error(err))
		if !o.cfg.Fallback {
			return nil, common.NewError(common.ErrGenerationFailed.Code, common.ErrGenerationFailed.Message, common.ErrGenerationFailed.Status, err)
		}
	} else if !o.cfg.Fallback {
		return nil, common.ErrGenerationUnavailable
	}

	common.LogInfo("serving fallback recipe catalog")
	return o.finalize(FallbackCatalog(), items), nil
}

// generate runs the generation path under the configured timeout.
func (o *Orchestrator) generate(ctx context.Context, items []inventory.FoodItem, prefs Preferences) ([]Recipe, error) {
	now := o.now()
	ingredients := make([]PromptIngredient, 0, len(items))
	for _, item := range items {
		ingredients = append(ingredients, PromptIngredient{
			Name:            item.Name,
			Quantity:        item.Quantity,
			DaysUntilExpiry: item.ExpiryDate.DaysUntil(now),
		})
	}

	prompt := BuildPrompt(ingredients, prefs)

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	raw, err := o.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return Parse(raw)
}

// finalize matches, scores, flags and orders the recipes.
func (o *Orchestrator) finalize(recipes []Recipe, items []inventory.FoodItem) []Recipe {
	matched := Match(recipes, items)

	now := o.now()
	byName := make(map[string]inventory.FoodItem, len(items))
	for _, item := range items {
		byName[common.NormalizeName(item.Name)] = item
	}

	for i := range matched {
		r := &matched[i]

		score := len(r.MatchedIngredients)
		for _, name := range r.MatchedIngredients {
			item, ok := byName[common.NormalizeName(name)]
			if !ok {
				score += urgencyNormal
				continue
			}
			switch days := item.ExpiryDate.DaysUntil(now); {
			case days <= 2:
				score += urgencyImminent
			case days <= 5:
				score += urgencySoon
			default:
				score += urgencyNormal
			}
		}
		r.PriorityScore = score

		declared := len(r.AvailableIngredients)
		r.Makeable = declared > 0 && len(r.MatchedIngredients) >= (declared+1)/2
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].PriorityScore != matched[j].PriorityScore {
			return matched[i].PriorityScore > matched[j].PriorityScore
		}
		return len(matched[i].MatchedIngredients) > len(matched[j].MatchedIngredients)
	})

	return matched
}
