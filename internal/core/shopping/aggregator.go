package shopping

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"pantry-tracker/internal/core/recipe"
	"pantry-tracker/internal/infrastructure/store"
	"pantry-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

// Priority orders shopping entries, high > medium > low.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// maxPriority returns the higher of two priorities.
func maxPriority(a, b Priority) Priority {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// Source tags where a shopping entry came from.
type Source string

const (
	SourceManual Source = "manual"
	SourceRecipe Source = "recipe"
)

// Item is a single shopping-list entry. The trimmed, case-insensitive name
// is its identity: at most one entry per identity exists at any time.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Amount       string    `json:"amount"`
	Category     string    `json:"category"`
	CategoryIcon string    `json:"category_icon"`
	IsChecked    bool      `json:"is_checked"`
	Priority     Priority  `json:"priority"`
	AddedDate    time.Time `json:"added_date"`
	Source       Source    `json:"source"`
	RecipeID     string    `json:"recipe_id,omitempty"`
	RecipeName   string    `json:"recipe_name,omitempty"`
	Essential    bool      `json:"essential"`
}

// AddRequest describes an entry to add or merge.
type AddRequest struct {
	Name         string   `json:"name"`
	Amount       string   `json:"amount"`
	Category     string   `json:"category"`
	CategoryIcon string   `json:"category_icon"`
	Priority     Priority `json:"priority"`
	Essential    bool     `json:"essential"`
	Source       Source   `json:"source"`
	RecipeID     string   `json:"recipe_id"`
	RecipeName   string   `json:"recipe_name"`
}

// Group is a display grouping of entries sharing a category.
type Group struct {
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Items    []Item `json:"items"`
}

// Stats summarizes the list state.
type Stats struct {
	Total              int `json:"total"`
	Checked            int `json:"checked"`
	Unchecked          int `json:"unchecked"`
	UncheckedEssential int `json:"unchecked_essential"`
	Progress           int `json:"progress"`
}

// AddFromRecipeResult reports how a recipe import went.
type AddFromRecipeResult struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

// Defaults applied when an add request leaves fields empty.
const (
	defaultAmount       = "1 stk"
	defaultItemCategory = "Andre"
	defaultCategoryIcon = "cart"
)

const emptyListText = "Handlelisten er tom"

// Aggregator owns the shopping-list collection. Every mutating operation
// persists the full collection before returning; a persistence failure is
// surfaced without rolling back the in-memory state.
type Aggregator struct {
	mu    sync.Mutex
	now   func() time.Time
	store *store.Store

	items []Item
}

// NewAggregator loads the persisted list.
func NewAggregator(st *store.Store) (*Aggregator, error) {
	a := &Aggregator{
		now:   time.Now,
		store: st,
	}
	if _, err := st.Load(store.KeyShoppingList, &a.items); err != nil {
		return nil, err
	}
	common.LogInfo("shopping list loaded", zap.Int("items", len(a.items)))
	return a, nil
}

// Add merges the request into an existing entry with the same identity, or
// creates a new one. Returns the resulting entry and whether it was newly
// created.
func (a *Aggregator) Add(req AddRequest) (Item, bool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Item{}, false, common.NewValidationError("item name is required")
	}

	a.mu.Lock()
	item, created := a.merge(name, req)
	err := a.persist()
	a.mu.Unlock()

	if err != nil {
		return item, created, err
	}
	return item, created, nil
}

// merge applies the merge-or-create policy. Caller holds the lock.
func (a *Aggregator) merge(name string, req AddRequest) (Item, bool) {
	key := common.NormalizeName(name)

	for i := range a.items {
		if common.NormalizeName(a.items[i].Name) != key {
			continue
		}

		existing := &a.items[i]
		newAmount := strings.TrimSpace(req.Amount)
		if newAmount != "" && newAmount != existing.Amount {
			// Display-only concatenation, no unit arithmetic.
			existing.Amount = fmt.Sprintf("%s + %s", existing.Amount, newAmount)
		}
		existing.Priority = maxPriority(existing.Priority, req.Priority)
		existing.Essential = existing.Essential || req.Essential
		// Re-adding a satisfied want un-satisfies it.
		existing.IsChecked = false
		existing.AddedDate = a.now()

		return *existing, false
	}

	item := Item{
		ID:           common.GenerateUUID(),
		Name:         name,
		Amount:       strings.TrimSpace(req.Amount),
		Category:     req.Category,
		CategoryIcon: req.CategoryIcon,
		Priority:     req.Priority,
		AddedDate:    a.now(),
		Source:       req.Source,
		RecipeID:     req.RecipeID,
		RecipeName:   req.RecipeName,
		Essential:    req.Essential,
	}
	if item.Amount == "" {
		item.Amount = defaultAmount
	}
	if item.Category == "" {
		item.Category = defaultItemCategory
		item.CategoryIcon = defaultCategoryIcon
	}
	if item.CategoryIcon == "" {
		item.CategoryIcon = defaultCategoryIcon
	}
	if item.Priority == "" {
		item.Priority = PriorityMedium
	}
	if item.Source == "" {
		item.Source = SourceManual
	}

	a.items = append(a.items, item)
	return item, true
}

// AddFromRecipe adds every missing ingredient of the recipe, categorized by
// the keyword table. Essential ingredients come in with high priority.
// Fails with ErrNoMissingIngredients when the recipe has nothing missing.
func (a *Aggregator) AddFromRecipe(r recipe.Recipe) (AddFromRecipeResult, error) {
	if len(r.MissingIngredients) == 0 {
		return AddFromRecipeResult{}, common.ErrNoMissingIngredients
	}

	a.mu.Lock()
	added := 0
	for _, ing := range r.MissingIngredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}

		priority := PriorityMedium
		if ing.Essential {
			priority = PriorityHigh
		}
		match := Categorize(name)

		_, created := a.merge(name, AddRequest{
			Name:         name,
			Amount:       ing.Amount,
			Category:     match.Name,
			CategoryIcon: match.Icon,
			Priority:     priority,
			Essential:    ing.Essential,
			Source:       SourceRecipe,
			RecipeID:     r.ID,
			RecipeName:   r.Title,
		})
		if created {
			added++
		}
	}
	total := len(a.items)
	err := a.persist()
	a.mu.Unlock()

	if err != nil {
		return AddFromRecipeResult{Added: added, Total: total}, err
	}

	common.LogInfo("recipe ingredients added to shopping list",
		zap.String("recipe", r.Title),
		zap.Int("added", added),
		zap.Int("total", total),
	)

	return AddFromRecipeResult{Added: added, Total: total}, nil
}

// Toggle flips the checked flag of the entry with the given id. Unknown ids
// are a no-op, not an error.
func (a *Aggregator) Toggle(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.items {
		if a.items[i].ID == id {
			a.items[i].IsChecked = !a.items[i].IsChecked
			return a.persist()
		}
	}
	return nil
}

// Remove deletes the entry with the given id. Unknown ids are a no-op.
func (a *Aggregator) Remove(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.items {
		if a.items[i].ID == id {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return a.persist()
		}
	}
	return nil
}

// ClearChecked removes all checked entries.
func (a *Aggregator) ClearChecked() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	remaining := a.items[:0]
	for _, item := range a.items {
		if !item.IsChecked {
			remaining = append(remaining, item)
		}
	}
	a.items = remaining
	return a.persist()
}

// ClearAll empties the list.
func (a *Aggregator) ClearAll() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.items = nil
	return a.persist()
}

// Items returns a snapshot of all entries.
func (a *Aggregator) Items() []Item {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Item, len(a.items))
	copy(out, a.items)
	return out
}

// GroupByCategory partitions entries into category groups. Entries inside a
// group sort unchecked before checked, then by descending priority, then by
// ascending case-insensitive name. Groups sort by descending count of
// unchecked entries; ties keep first-seen order.
func (a *Aggregator) GroupByCategory() []Group {
	items := a.Items()

	order := make([]string, 0)
	grouped := make(map[string]*Group)
	for _, item := range items {
		g, ok := grouped[item.Category]
		if !ok {
			g = &Group{Category: item.Category, Icon: item.CategoryIcon}
			grouped[item.Category] = g
			order = append(order, item.Category)
		}
		g.Items = append(g.Items, item)
	}

	groups := make([]Group, 0, len(order))
	for _, category := range order {
		g := grouped[category]
		sort.SliceStable(g.Items, func(i, j int) bool {
			if g.Items[i].IsChecked != g.Items[j].IsChecked {
				return !g.Items[i].IsChecked
			}
			if g.Items[i].Priority.rank() != g.Items[j].Priority.rank() {
				return g.Items[i].Priority.rank() > g.Items[j].Priority.rank()
			}
			return strings.ToLower(g.Items[i].Name) < strings.ToLower(g.Items[j].Name)
		})
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return uncheckedCount(groups[i].Items) > uncheckedCount(groups[j].Items)
	})

	return groups
}

func uncheckedCount(items []Item) int {
	n := 0
	for _, item := range items {
		if !item.IsChecked {
			n++
		}
	}
	return n
}

// Stats returns list totals and the completion percentage. Progress is 0
// for an empty list.
func (a *Aggregator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats := Stats{Total: len(a.items)}
	for _, item := range a.items {
		if item.IsChecked {
			stats.Checked++
		} else {
			stats.Unchecked++
			if item.Essential {
				stats.UncheckedEssential++
			}
		}
	}
	if stats.Total > 0 {
		stats.Progress = int(math.Round(float64(stats.Checked) / float64(stats.Total) * 100))
	}
	return stats
}

// ExportAsText renders a grouped plain-text summary of the list.
func (a *Aggregator) ExportAsText() string {
	groups := a.GroupByCategory()
	if len(groups) == 0 {
		return emptyListText
	}
	stats := a.Stats()

	var sb strings.Builder
	sb.WriteString("Handleliste\n")

	for _, group := range groups {
		sb.WriteString("\n")
		sb.WriteString(strings.ToUpper(group.Category))
		sb.WriteString("\n")
		for _, item := range group.Items {
			glyph := "☐"
			if item.IsChecked {
				glyph = "☑"
			}
			sb.WriteString(fmt.Sprintf("%s %s – %s", glyph, item.Name, item.Amount))
			if item.Essential {
				sb.WriteString(" ⭐")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\nFremdrift: %d/%d (%d%%)\n", stats.Checked, stats.Total, stats.Progress))
	return sb.String()
}

// persist writes the full collection. Caller holds the lock.
func (a *Aggregator) persist() error {
	if err := a.store.Save(store.KeyShoppingList, a.items); err != nil {
		common.LogError("failed to persist shopping list", zap.Error(err))
		return common.NewError(common.ErrStoreFailure.Code, common.ErrStoreFailure.Message, common.ErrStoreFailure.Status, err)
	}
	return nil
}
