package inventory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"pantry-tracker/internal/infrastructure/store"
	"pantry-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

// Service owns the food items and categories. It loads both collections on
// startup, hands out snapshots by value and persists on every mutation.
// Persistence failures surface to the caller without rolling back the
// in-memory state.
type Service struct {
	mu        sync.Mutex
	store     *store.Store
	scheduler Scheduler

	items      []FoodItem
	categories []Category
}

// AddItemRequest is the input for adding a food item.
type AddItemRequest struct {
	Name       string
	Quantity   int
	ExpiryDate Date
	CategoryID string
	Barcode    string
	ImageURL   string
}

// NewService loads the persisted collections and seeds the default
// categories on first start.
func NewService(st *store.Store, scheduler Scheduler) (*Service, error) {
	s := &Service{
		store:     st,
		scheduler: scheduler,
	}

	if _, err := st.Load(store.KeyItems, &s.items); err != nil {
		return nil, err
	}

	found, err := st.Load(store.KeyCategories, &s.categories)
	if err != nil {
		return nil, err
	}
	if !found || len(s.categories) == 0 {
		s.categories = defaultCategories()
		if err := st.Save(store.KeyCategories, s.categories); err != nil {
			return nil, err
		}
		common.LogInfo("seeded default categories")
	}

	common.LogInfo("inventory loaded",
		zap.Int("items", len(s.items)),
		zap.Int("categories", len(s.categories)),
	)

	return s, nil
}

// Items returns a snapshot of all food items sorted by expiry date.
func (s *Service) Items() []FoodItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]FoodItem, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiryDate.Before(out[j].ExpiryDate.Time)
	})
	return out
}

// ExpiringWithin returns items expiring in at most days days, soonest first.
func (s *Service) ExpiringWithin(days int, now time.Time) []FoodItem {
	out := make([]FoodItem, 0)
	for _, item := range s.Items() {
		if item.ExpiryDate.DaysUntil(now) <= days {
			out = append(out, item)
		}
	}
	return out
}

// AddItem validates the request, creates the item, schedules a reminder
// when possible and persists the collection.
func (s *Service) AddItem(req AddItemRequest) (FoodItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return FoodItem{}, common.NewValidationError("item name is required")
	}
	if req.ExpiryDate.IsZero() {
		return FoodItem{}, common.NewValidationError("expiry date is required")
	}
	if req.Quantity < 0 {
		return FoodItem{}, common.NewValidationError("quantity cannot be negative")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	categoryID := req.CategoryID
	if categoryID == "" || !s.categoryExists(categoryID) {
		categoryID = DefaultCategoryID
	}

	item := FoodItem{
		ID:         common.GenerateUUID(),
		Name:       name,
		Quantity:   quantity,
		ExpiryDate: req.ExpiryDate,
		CategoryID: categoryID,
		Barcode:    req.Barcode,
		ImageURL:   req.ImageURL,
	}

	if id, ok := s.scheduler.Schedule(item); ok {
		item.NotificationID = id
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	err := s.store.Save(store.KeyItems, s.items)
	s.mu.Unlock()

	if err != nil {
		common.LogError("failed to persist items", zap.Error(err))
		return item, common.NewError(common.ErrStoreFailure.Code, common.ErrStoreFailure.Message, common.ErrStoreFailure.Status, err)
	}

	common.LogInfo("item added",
		zap.String("item", item.Name),
		zap.String("category", item.CategoryID),
	)

	return item, nil
}

// DeleteItem removes an item and cancels its reminder. Unknown ids are a
// no-op.
func (s *Service) DeleteItem(id string) error {
	s.mu.Lock()
	var removed *FoodItem
	for i := range s.items {
		if s.items[i].ID == id {
			removed = &s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if removed == nil {
		s.mu.Unlock()
		return nil
	}
	notificationID := removed.NotificationID
	err := s.store.Save(store.KeyItems, s.items)
	s.mu.Unlock()

	s.scheduler.Cancel(notificationID)

	if err != nil {
		common.LogError("failed to persist items", zap.Error(err))
		return common.NewError(common.ErrStoreFailure.Code, common.ErrStoreFailure.Message, common.ErrStoreFailure.Status, err)
	}
	return nil
}

// Categories returns a snapshot of all categories, defaults first.
func (s *Service) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := IsDefaultCategory(out[i].ID), IsDefaultCategory(out[j].ID)
		if di != dj {
			return di
		}
		return false
	})
	return out
}

// AddCategory creates a user-defined category.
func (s *Service) AddCategory(name, icon string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, common.NewValidationError("category name is required")
	}
	if len([]rune(name)) > MaxCategoryNameLen {
		return Category{}, common.NewValidationError("category name is too long")
	}
	if icon == "" {
		icon = "🗄️"
	}

	category := Category{
		ID:   common.GenerateUUID(),
		Name: name,
		Icon: icon,
	}

	s.mu.Lock()
	s.categories = append(s.categories, category)
	err := s.store.Save(store.KeyCategories, s.categories)
	s.mu.Unlock()

	if err != nil {
		common.LogError("failed to persist categories", zap.Error(err))
		return category, common.NewError(common.ErrStoreFailure.Code, common.ErrStoreFailure.Message, common.ErrStoreFailure.Status, err)
	}
	return category, nil
}

// DeleteCategory removes a non-default category. All items referencing it
// are reassigned to the default category before the record goes away, so
// orphaned references never persist.
func (s *Service) DeleteCategory(id string) error {
	if IsDefaultCategory(id) {
		return common.ErrDefaultCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.categories {
		if s.categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	reassigned := 0
	for i := range s.items {
		if s.items[i].CategoryID == id {
			s.items[i].CategoryID = DefaultCategoryID
			reassigned++
		}
	}
	if reassigned > 0 {
		if err := s.store.Save(store.KeyItems, s.items); err != nil {
			common.LogError("failed to persist items", zap.Error(err))
			return common.NewError(common.ErrStoreFailure.Code, common.ErrStoreFailure.Message, common.ErrStoreFailure.Status, err)
		}
	}

	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)
	if err := s.store.Save(store.KeyCategories, s.categories); err != nil {
		common.LogError("failed to persist categories", zap.Error(err))
		return common.NewError(common.ErrStoreFailure.Code, common.ErrStoreFailure.Message, common.ErrStoreFailure.Status, err)
	}

	common.LogInfo("category deleted",
		zap.String("category_id", id),
		zap.Int("items_reassigned", reassigned),
	)

	return nil
}

func (s *Service) categoryExists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
