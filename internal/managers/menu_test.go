package managers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"menuhub/internal/domain"
	"menuhub/internal/result"
)

var menuForPointResp = map[string]any{
	"menuForPoint": map[string]any{
		"categories": []any{
			categoryNode("c-food", "", "Food", 2),
			categoryNode("c-empty", "", "Seasonal", 0),
		},
		"products": []any{latteNode, testProductNode},
	},
}

func newMenuManager(t *testing.T, srv *httptest.Server, defaults Defaults) *MenuManager {
	t.Helper()
	cfg := testConfig(t, srv, defaults)
	return NewMenuManager(cfg, NewProductManager(cfg), NewCategoryManager(cfg))
}

func TestMenuGet_Success(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "MenuForPoint", data: menuForPointResp},
	})
	m := newMenuManager(t, srv, fullContext)

	res := m.Get(context.Background(), Scope{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	menu := res.Data
	if menu.BrandID != "brand-1" || menu.PointID != "point-1" || menu.OrderType != "DELIVERY" {
		t.Errorf("menu context not stamped: %+v", menu)
	}
	// Empty categories are hidden in menu contexts.
	if len(menu.Categories) != 1 || menu.Categories[0].ID != "c-food" {
		t.Errorf("expected only the non-empty category, got %+v", menu.Categories)
	}
	if len(menu.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(menu.Products))
	}
	if menu.Products[0].EffectivePrice == nil || *menu.Products[0].EffectivePrice != 4.5 {
		t.Errorf("latte effective price: want 4.5, got %v", menu.Products[0].EffectivePrice)
	}
}

// TestMenuGet_SecondCallServedFromCache verifies that one context hits the
// network exactly once; the repeat read comes from the cache.
func TestMenuGet_SecondCallServedFromCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": menuForPointResp})
	}))
	t.Cleanup(srv.Close)

	m := newMenuManager(t, srv, fullContext)

	first := m.Get(context.Background(), Scope{})
	if first.Err != nil {
		t.Fatalf("first get: %v", first.Err)
	}
	second := m.Get(context.Background(), Scope{})
	if second.Err != nil {
		t.Fatalf("second get: %v", second.Err)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 network call, got %d", calls)
	}
	if len(second.Data.Products) != len(first.Data.Products) {
		t.Errorf("cached menu differs from the fetched one")
	}
}

// TestMenuGet_ContextsAreIsolated fetches two different order types and makes
// sure each context keeps its own cache entry.
func TestMenuGet_ContextsAreIsolated(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": menuForPointResp})
	}))
	t.Cleanup(srv.Close)

	m := newMenuManager(t, srv, fullContext)

	if res := m.Get(context.Background(), Scope{OrderType: "DELIVERY"}); res.Err != nil {
		t.Fatalf("delivery menu: %v", res.Err)
	}
	if res := m.Get(context.Background(), Scope{OrderType: "PICKUP"}); res.Err != nil {
		t.Fatalf("pickup menu: %v", res.Err)
	}
	if calls != 2 {
		t.Errorf("distinct contexts must fetch separately, got %d calls", calls)
	}
}

func TestMenuGet_MissingScope(t *testing.T) {
	srv := routingServer(t, nil) // no requests expected
	m := newMenuManager(t, srv, Defaults{BrandID: "brand-1"})

	res := m.Get(context.Background(), Scope{})
	if res.Err == nil {
		t.Fatal("expected configuration error, got nil")
	}
	var cfgErr *result.ConfigurationError
	if !errors.As(res.Err, &cfgErr) {
		t.Fatalf("expected *result.ConfigurationError, got %T", res.Err)
	}
	if res.Err.Error() != "pointId and orderType are required" {
		t.Errorf("unexpected message: %q", res.Err.Error())
	}
}

func TestMenuGet_NotAvailable(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "MenuForPoint", data: map[string]any{"menuForPoint": nil}},
	})
	m := newMenuManager(t, srv, fullContext)

	res := m.Get(context.Background(), Scope{})
	if res.Err == nil {
		t.Fatal("expected error for unavailable menu, got nil")
	}
	var vErr *result.ValidationError
	if !errors.As(res.Err, &vErr) {
		t.Fatalf("expected *result.ValidationError, got %T", res.Err)
	}
}

func TestMenuSearch_FiltersProducts(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "MenuForPoint", data: menuForPointResp},
	})
	m := newMenuManager(t, srv, fullContext)

	res := m.Search(context.Background(), domain.ProductFilter{SearchTerm: "latte"}, Scope{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Data) != 1 || res.Data[0].ID != "p-latte" {
		t.Errorf("expected only the latte, got %+v", res.Data)
	}
	if res.Total != 1 {
		t.Errorf("total must reflect the filtered size, got %d", res.Total)
	}
}
