package store_test

import (
	"testing"

	"pantry-tracker/internal/infrastructure/store"
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

func TestStore_SaveAndLoad(t *testing.T) {
	st := memstore(t)

	want := []string{"melk", "brød"}
	if err := st.Save(store.KeyShoppingList, want); err != nil {
		t.Fatal(err)
	}

	var got []string
	found, err := st.Load(store.KeyShoppingList, &got)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("want found=true after save")
	}
	if len(got) != 2 || got[0] != "melk" || got[1] != "brød" {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestStore_LoadMissingKey(t *testing.T) {
	st := memstore(t)

	var got []string
	found, err := st.Load(store.KeyItems, &got)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("want found=false for missing key")
	}
	if got != nil {
		t.Fatalf("want untouched destination, got %v", got)
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	st := memstore(t)

	if err := st.Save(store.KeyItems, []int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(store.KeyItems, []int{9}); err != nil {
		t.Fatal(err)
	}

	var got []int
	if _, err := st.Load(store.KeyItems, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 9 {
		t.Fatalf("want [9], got %v", got)
	}
}

func TestStore_Clear(t *testing.T) {
	st := memstore(t)

	if err := st.Save(store.KeyCategories, []string{"x"}); err != nil {
		t.Fatal(err)
	}
	if err := st.Clear(store.KeyCategories); err != nil {
		t.Fatal(err)
	}

	var got []string
	found, err := st.Load(store.KeyCategories, &got)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("want found=false after clear")
	}
}
