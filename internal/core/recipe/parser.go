package recipe

import (
	"encoding/json"
	"errors"
	"strings"

	"pantry-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

// Defaults used when the model omits or mangles a field.
const (
	defaultTitle       = "Untitled recipe"
	defaultInstruction = "Se beskrivelsen"
)

// Parse turns raw model output into canonical recipes. The extraction step
// strips code fences and slices the text down to the outermost JSON array,
// so prose around the payload is tolerated. A bare object is wrapped into a
// single-element array. Only total JSON-structure failure is fatal; a single
// malformed field is replaced by its default instead of failing the parse.
func Parse(raw string) ([]Recipe, error) {
	elements, err := decodeElements(raw)
	if err != nil {
		common.LogWarn("generated payload did not decode", zap.Error(err))
		return nil, common.NewError(common.ErrMalformedAIResponse.Code, common.ErrMalformedAIResponse.Message, common.ErrMalformedAIResponse.Status, err)
	}

	recipes := make([]Recipe, 0, len(elements))
	for _, element := range elements {
		recipes = append(recipes, normalizeRecipe(element))
	}
	return recipes, nil
}

// decodeElements locates the JSON payload and decodes it into loose maps.
// A bare object usually carries array-valued fields (instructions,
// ingredient lists), so the array slice is only trusted when a '[' opens
// before the first '{'; otherwise the object is wrapped into a
// single-element array.
func decodeElements(raw string) ([]map[string]interface{}, error) {
	cleaned := common.StripCodeFences(raw)
	objStart := strings.Index(cleaned, "{")
	arrStart := strings.Index(cleaned, "[")

	var arrayErr error
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		if txt, ok := common.ExtractJSONArray(raw); ok {
			var elements []map[string]interface{}
			if arrayErr = common.ParseJSON(txt, &elements); arrayErr == nil {
				return elements, nil
			}
		}
	}

	if obj, ok := common.ExtractJSONObject(raw); ok {
		var elements []map[string]interface{}
		if err := common.ParseJSON("["+obj+"]", &elements); err != nil {
			if arrayErr != nil {
				return nil, arrayErr
			}
			return nil, err
		}
		return elements, nil
	}

	if arrayErr != nil {
		return nil, arrayErr
	}
	return nil, errors.New("no JSON payload in response")
}

// normalizeRecipe fills the canonical shape from a decoded element,
// defaulting every unknown or mistyped field.
func normalizeRecipe(element map[string]interface{}) Recipe {
	r := Recipe{
		ID:          stringField(element, "id", "ai_"+common.GenerateUUID()),
		Title:       stringField(element, "title", defaultTitle),
		Difficulty:  NormalizeDifficulty(stringField(element, "difficulty", "")),
		Time:        stringField(element, "time", ""),
		Servings:    intField(element, "servings"),
		Priority:    NormalizePriority(stringField(element, "priority", "")),
		Description: stringField(element, "description", ""),
		Tips:        stringField(element, "tips", ""),
		Source:      SourceGenerated,
	}

	r.Instructions = stringListField(element, "instructions")
	if len(r.Instructions) == 0 {
		r.Instructions = []string{defaultInstruction}
	}

	r.AvailableIngredients = availableIngredientsField(element, "available_ingredients")
	r.MissingIngredients = missingIngredientsField(element, "missing_ingredients")

	return r
}

func stringField(m map[string]interface{}, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func boolField(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func intField(m map[string]interface{}, key string) int {
	if n, ok := m[key].(json.Number); ok {
		if v, err := n.Int64(); err == nil {
			return int(v)
		}
	}
	return 0
}

func stringListField(m map[string]interface{}, key string) []string {
	list, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, entry := range list {
		if s, ok := entry.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func availableIngredientsField(m map[string]interface{}, key string) []AvailableIngredient {
	list, ok := m[key].([]interface{})
	if !ok {
		return []AvailableIngredient{}
	}
	out := make([]AvailableIngredient, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		name := stringField(obj, "name", "")
		if name == "" {
			continue
		}
		out = append(out, AvailableIngredient{
			Name:      name,
			Amount:    stringField(obj, "amount", ""),
			Available: boolField(obj, "available"),
			Priority:  NormalizePriority(stringField(obj, "priority", "")),
		})
	}
	return out
}

func missingIngredientsField(m map[string]interface{}, key string) []MissingIngredient {
	list, ok := m[key].([]interface{})
	if !ok {
		return []MissingIngredient{}
	}
	out := make([]MissingIngredient, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		name := stringField(obj, "name", "")
		if name == "" {
			continue
		}
		out = append(out, MissingIngredient{
			Name:       name,
			Amount:     stringField(obj, "amount", ""),
			Essential:  boolField(obj, "essential"),
			Substitute: stringField(obj, "substitute", ""),
		})
	}
	return out
}
