package inventory_test

import (
	"testing"
	"time"

	"pantry-tracker/internal/core/inventory"
	"pantry-tracker/internal/infrastructure/store"
	"pantry-tracker/internal/pkg/common"
)

func memstore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func newService(t *testing.T) (*inventory.Service, *store.Store) {
	t.Helper()
	st := memstore(t)
	svc, err := inventory.NewService(st, inventory.NewLocalScheduler())
	if err != nil {
		t.Fatal(err)
	}
	return svc, st
}

func TestNewService_SeedsDefaultCategories(t *testing.T) {
	svc, _ := newService(t)

	categories := svc.Categories()
	if len(categories) != 2 {
		t.Fatalf("want 2 default categories, got %d", len(categories))
	}
	if categories[0].ID != inventory.DefaultCategoryID || categories[1].ID != inventory.FreezerCategoryID {
		t.Fatalf("want defaults first, got %+v", categories)
	}
}

func TestAddItem_Defaults(t *testing.T) {
	svc, _ := newService(t)

	item, err := svc.AddItem(inventory.AddItemRequest{
		Name:       "Melk",
		ExpiryDate: inventory.NewDate(2030, time.March, 15),
	})
	if err != nil {
		t.Fatal(err)
	}

	if item.Quantity != 1 {
		t.Fatalf("want default quantity 1, got %d", item.Quantity)
	}
	if item.CategoryID != inventory.DefaultCategoryID {
		t.Fatalf("want default category, got %q", item.CategoryID)
	}
	if item.ID == "" {
		t.Fatal("want generated id")
	}
	if item.NotificationID == "" {
		t.Fatal("want reminder scheduled for a far-future expiry")
	}
}

func TestAddItem_Validation(t *testing.T) {
	svc, _ := newService(t)

	cases := []struct {
		name string
		req  inventory.AddItemRequest
	}{
		{"empty name", inventory.AddItemRequest{ExpiryDate: inventory.NewDate(2030, time.March, 15)}},
		{"missing date", inventory.AddItemRequest{Name: "Melk"}},
		{"negative quantity", inventory.AddItemRequest{Name: "Melk", Quantity: -1, ExpiryDate: inventory.NewDate(2030, time.March, 15)}},
	}

	for _, tc := range cases {
		if _, err := svc.AddItem(tc.req); !common.IsValidationError(err) {
			t.Fatalf("%s: want validation error, got %v", tc.name, err)
		}
	}

	if len(svc.Items()) != 0 {
		t.Fatal("rejected requests must not mutate state")
	}
}

func TestAddItem_UnknownCategoryFallsBack(t *testing.T) {
	svc, _ := newService(t)

	item, err := svc.AddItem(inventory.AddItemRequest{
		Name:       "Ost",
		ExpiryDate: inventory.NewDate(2030, time.March, 15),
		CategoryID: "no-such-category",
	})
	if err != nil {
		t.Fatal(err)
	}
	if item.CategoryID != inventory.DefaultCategoryID {
		t.Fatalf("want fallback to default category, got %q", item.CategoryID)
	}
}

func TestItems_SortedByExpiry(t *testing.T) {
	svc, _ := newService(t)

	for _, it := range []struct {
		name string
		date inventory.Date
	}{
		{"Senere", inventory.NewDate(2030, time.June, 1)},
		{"Først", inventory.NewDate(2030, time.January, 1)},
		{"Midten", inventory.NewDate(2030, time.March, 1)},
	} {
		if _, err := svc.AddItem(inventory.AddItemRequest{Name: it.name, ExpiryDate: it.date}); err != nil {
			t.Fatal(err)
		}
	}

	items := svc.Items()
	if items[0].Name != "Først" || items[1].Name != "Midten" || items[2].Name != "Senere" {
		t.Fatalf("want expiry order, got %v", []string{items[0].Name, items[1].Name, items[2].Name})
	}
}

func TestDeleteItem_CancelsReminderAndIgnoresUnknown(t *testing.T) {
	st := memstore(t)
	scheduler := inventory.NewLocalScheduler()
	svc, err := inventory.NewService(st, scheduler)
	if err != nil {
		t.Fatal(err)
	}

	item, err := svc.AddItem(inventory.AddItemRequest{
		Name:       "Kylling",
		ExpiryDate: inventory.NewDate(2030, time.March, 15),
	})
	if err != nil {
		t.Fatal(err)
	}
	if scheduler.Pending() != 1 {
		t.Fatalf("want 1 pending reminder, got %d", scheduler.Pending())
	}

	if err := svc.DeleteItem(item.ID); err != nil {
		t.Fatal(err)
	}
	if scheduler.Pending() != 0 {
		t.Fatalf("want reminder cancelled, got %d pending", scheduler.Pending())
	}
	if len(svc.Items()) != 0 {
		t.Fatal("want item removed")
	}

	// unknown id is a no-op
	if err := svc.DeleteItem("missing"); err != nil {
		t.Fatalf("want nil for unknown id, got %v", err)
	}
}

func TestDeleteCategory_ReassignsItems(t *testing.T) {
	svc, st := newService(t)

	category, err := svc.AddCategory("Skap", "")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.AddItem(inventory.AddItemRequest{
			Name:       "Vare",
			ExpiryDate: inventory.NewDate(2030, time.March, 15),
			CategoryID: category.ID,
		}); err != nil {
			t.Fatal(err)
		}
	}

	if err := svc.DeleteCategory(category.ID); err != nil {
		t.Fatal(err)
	}

	for _, item := range svc.Items() {
		if item.CategoryID != inventory.DefaultCategoryID {
			t.Fatalf("want items reassigned to default, got %q", item.CategoryID)
		}
	}
	for _, c := range svc.Categories() {
		if c.ID == category.ID {
			t.Fatal("want category removed")
		}
	}

	// the reassignment must be persisted, not just in memory
	var persisted []inventory.FoodItem
	if _, err := st.Load(store.KeyItems, &persisted); err != nil {
		t.Fatal(err)
	}
	for _, item := range persisted {
		if item.CategoryID != inventory.DefaultCategoryID {
			t.Fatalf("want persisted reassignment, got %q", item.CategoryID)
		}
	}
}

func TestDeleteCategory_RejectsDefaults(t *testing.T) {
	svc, _ := newService(t)

	for _, id := range []string{inventory.DefaultCategoryID, inventory.FreezerCategoryID} {
		err := svc.DeleteCategory(id)
		if err == nil {
			t.Fatalf("want error deleting %q", id)
		}
		ce, ok := err.(*common.CustomError)
		if !ok || ce.Code != common.ErrDefaultCategory.Code {
			t.Fatalf("want default-category error, got %v", err)
		}
	}

	if len(svc.Categories()) != 2 {
		t.Fatal("defaults must survive delete attempts")
	}
}

func TestAddCategory_Validation(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.AddCategory("  ", ""); !common.IsValidationError(err) {
		t.Fatalf("want validation error for blank name, got %v", err)
	}
	if _, err := svc.AddCategory("altfor langt kategorinavn her", ""); !common.IsValidationError(err) {
		t.Fatalf("want validation error for long name, got %v", err)
	}

	category, err := svc.AddCategory("Skap", "")
	if err != nil {
		t.Fatal(err)
	}
	if category.Icon == "" {
		t.Fatal("want default icon")
	}
}

func TestExpiringWithin(t *testing.T) {
	svc, _ := newService(t)
	now := time.Date(2030, time.March, 10, 12, 0, 0, 0, time.UTC)

	if _, err := svc.AddItem(inventory.AddItemRequest{Name: "Snart", ExpiryDate: inventory.NewDate(2030, time.March, 12)}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddItem(inventory.AddItemRequest{Name: "Lenge", ExpiryDate: inventory.NewDate(2030, time.April, 20)}); err != nil {
		t.Fatal(err)
	}

	expiring := svc.ExpiringWithin(3, now)
	if len(expiring) != 1 || expiring[0].Name != "Snart" {
		t.Fatalf("want only the soon-expiring item, got %+v", expiring)
	}
}

func TestNewService_LoadsPersistedState(t *testing.T) {
	st := memstore(t)

	svc, err := inventory.NewService(st, inventory.NewLocalScheduler())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddItem(inventory.AddItemRequest{Name: "Melk", ExpiryDate: inventory.NewDate(2030, time.March, 15)}); err != nil {
		t.Fatal(err)
	}

	reloaded, err := inventory.NewService(st, inventory.NewLocalScheduler())
	if err != nil {
		t.Fatal(err)
	}
	items := reloaded.Items()
	if len(items) != 1 || items[0].Name != "Melk" {
		t.Fatalf("want persisted item after reload, got %+v", items)
	}
}
