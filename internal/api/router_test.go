package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pantry-tracker/internal/api"
	"pantry-tracker/internal/core/inventory"
	"pantry-tracker/internal/core/product"
	"pantry-tracker/internal/core/recipe"
	"pantry-tracker/internal/core/shopping"
	"pantry-tracker/internal/infrastructure/config"
	"pantry-tracker/internal/infrastructure/store"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	inv, err := inventory.NewService(st, inventory.NewLocalScheduler())
	if err != nil {
		t.Fatal(err)
	}
	list, err := shopping.NewAggregator(st)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		App:        config.AppConfig{Version: "test"},
		Generation: config.GenerationConfig{Fallback: true, Timeout: time.Second},
		Lookup:     config.LookupConfig{Timeout: time.Second},
	}

	return api.SetupRouter(cfg, api.Services{
		Inventory:    inv,
		ShoppingList: list,
		Orchestrator: recipe.NewOrchestrator(cfg.Generation, nil),
		Lookup:       product.NewLookup(cfg.Lookup),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestItemLifecycle(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/items",
		`{"name":"Melk","expiry_date":"2030-03-15"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", w.Code, w.Body.String())
	}

	var created inventory.FoodItem
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Quantity != 1 || created.CategoryID != inventory.DefaultCategoryID {
		t.Fatalf("want defaults applied, got %+v", created)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/items", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Melk") {
		t.Fatalf("want listed item, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/items/"+created.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", w.Code)
	}
}

func TestAddItem_BadDate(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/items",
		`{"name":"Melk","expiry_date":"soon"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestDeleteDefaultCategory(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodDelete, "/api/v1/categories/freezer", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for default category, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "DEFAULT_CATEGORY") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestShoppingMergeOverHTTP(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/shopping", `{"name":"Milk","amount":"1L"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/shopping", `{"name":"milk ","amount":"2L"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200 for merge, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "1L + 2L") {
		t.Fatalf("want merged amount, got %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/shopping/stats", "")
	if !strings.Contains(w.Body.String(), `"total":1`) {
		t.Fatalf("want single entry after merge, got %s", w.Body.String())
	}
}

func TestShoppingFromRecipe_Validation(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/shopping/from-recipe",
		`{"id":"r1","title":"Tom","missing_ingredients":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for empty missing ingredients, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "NO_MISSING_INGREDIENTS") {
		t.Fatalf("want NO_MISSING_INGREDIENTS code, got %s", w.Body.String())
	}
}

func TestRecipeSuggest_FallbackWhenUnconfigured(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/suggest", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Recipes []recipe.Recipe `json:"recipes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Recipes) == 0 {
		t.Fatal("want fallback recipes")
	}
	for _, r := range resp.Recipes {
		if r.Source != recipe.SourceFallback {
			t.Fatalf("want fallback source, got %q", r.Source)
		}
	}
}

func TestShoppingExport(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/shopping/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if w.Body.String() != "Handlelisten er tom" {
		t.Fatalf("want empty-list text, got %q", w.Body.String())
	}
}
