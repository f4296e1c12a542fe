package managers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"menuhub/internal/domain"
	"menuhub/internal/gqlclient"
	"menuhub/internal/result"
)

// TestAggregate_SharedCacheAcrossManagers writes through one manager and
// reads the invalidation through another: a product write must drop the
// cached menu.
func TestAggregate_SharedCacheAcrossManagers(t *testing.T) {
	menuCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		var req struct {
			Query string `json:"query"`
		}
		_ = json.Unmarshal(b, &req)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(req.Query, "MenuForPoint"):
			menuCalls++
			_ = json.NewEncoder(w).Encode(map[string]any{"data": menuForPointResp})
		case strings.Contains(req.Query, "ProductCreate"):
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
				"productCreate": map[string]any{"product": latteNode, "errors": []map[string]any{}},
			}})
		default:
			http.Error(w, "unexpected", 500)
		}
	}))
	t.Cleanup(srv.Close)

	app := NewAggregate(gqlclient.New(srv.URL, "test-token"), AggregateOptions{
		Defaults: fullContext,
	})

	if res := app.Menu.Get(context.Background(), Scope{}); res.Err != nil {
		t.Fatalf("menu get: %v", res.Err)
	}
	if res := app.Products.Create(context.Background(), ProductInput{Name: "Latte"}, Scope{}); !res.Success {
		t.Fatalf("product create: %v", res.Err)
	}
	if res := app.Menu.Get(context.Background(), Scope{}); res.Err != nil {
		t.Fatalf("menu get after invalidation: %v", res.Err)
	}

	// The product write invalidated the cached menu, so the second get must
	// hit the network again.
	if menuCalls != 2 {
		t.Errorf("expected 2 menu fetches around the invalidating write, got %d", menuCalls)
	}
}

func TestAggregate_MetricsRegistration(t *testing.T) {
	srv := routingServer(t, nil)
	reg := prometheus.NewRegistry()

	app := NewAggregate(gqlclient.New(srv.URL, "test-token"), AggregateOptions{
		Registerer: reg,
	})

	// A failing call must still be observed without panicking.
	res := app.Products.GetByID(context.Background(), "p-1", Scope{})
	if res.Err == nil {
		t.Fatal("expected configuration error with no defaults")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "menuhub_operation_duration_seconds" {
			found = true
		}
	}
	if !found {
		t.Error("expected the operation duration metric to be registered and observed")
	}
}

func TestAggregate_ResetCache(t *testing.T) {
	srv := routingServer(t, nil)
	app := NewAggregate(gqlclient.New(srv.URL, "test-token"), AggregateOptions{})

	app.cache.WriteEntity("Product", "p-1", domain.Product{ID: "p-1"})
	app.ResetCache()
	if _, ok := app.cache.ReadEntity("Product", "p-1"); ok {
		t.Error("expected the cache to be empty after reset")
	}
}

// ---------------------------------------------------------------------------
// Remaining façades — scope guards
// ---------------------------------------------------------------------------

func TestBrandGetForAccount_MissingAccount(t *testing.T) {
	srv := routingServer(t, nil)
	m := NewBrandManager(testConfig(t, srv, Defaults{}))

	res := m.GetForAccount(context.Background(), Scope{})
	if res.Err == nil || res.Err.Error() != "accountId is required" {
		t.Errorf("unexpected error: %v", res.Err)
	}
}

func TestBrandGetByID_FallsBackToDefault(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "BrandById", data: map[string]any{
			"brand": map[string]any{"id": "brand-1", "name": "Coffee Co"},
		}},
	})
	m := NewBrandManager(testConfig(t, srv, Defaults{BrandID: "brand-1"}))

	// No explicit id: the configured default brand is fetched.
	res := m.GetByID(context.Background(), "", Scope{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Data.ID != "brand-1" {
		t.Errorf("unexpected brand: %+v", res.Data)
	}
}

func TestBrandUpdate_MissingID(t *testing.T) {
	srv := routingServer(t, nil)
	m := NewBrandManager(testConfig(t, srv, Defaults{}))

	res := m.Update(context.Background(), BrandUpdateInput{}, Scope{})
	var vErr *result.ValidationError
	if !errors.As(res.Err, &vErr) || vErr.Error() != "Id is required" {
		t.Errorf("unexpected error: %v", res.Err)
	}
}

func TestUserCurrent_MissingAccount(t *testing.T) {
	srv := routingServer(t, nil)
	m := NewUserManager(testConfig(t, srv, Defaults{}))

	res := m.Current(context.Background(), Scope{})
	if res.Err == nil || res.Err.Error() != "accountId is required" {
		t.Errorf("unexpected error: %v", res.Err)
	}
}

func TestUserCurrent_Success(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "CurrentUser", data: map[string]any{
			"currentUser": map[string]any{"id": "u-1", "accountId": "acc-1", "name": "Sam"},
		}},
	})
	m := NewUserManager(testConfig(t, srv, Defaults{AccountID: "acc-1"}))

	res := m.Current(context.Background(), Scope{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Data.ID != "u-1" {
		t.Errorf("unexpected user: %+v", res.Data)
	}
}

func TestPointGetForCity_MissingCity(t *testing.T) {
	srv := routingServer(t, nil)
	m := NewPointManager(testConfig(t, srv, Defaults{BrandID: "brand-1"}))

	res := m.GetForCity(context.Background(), Scope{})
	if res.Err == nil || res.Err.Error() != "cityId is required" {
		t.Errorf("unexpected error: %v", res.Err)
	}
}

func TestCityGetForBrand_SearchTerm(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "CitiesForBrand", data: map[string]any{
			"citiesForBrand": map[string]any{
				"items": []any{
					map[string]any{"id": "city-1", "brandId": "brand-1", "name": "Bern", "isActive": true},
					map[string]any{"id": "city-2", "brandId": "brand-1", "name": "Basel", "isActive": true},
				},
				"total": 2,
			},
		}},
	})
	m := NewCityManager(testConfig(t, srv, Defaults{BrandID: "brand-1"}))

	res := m.GetForBrand(context.Background(), domain.CityFilter{SearchTerm: "basel"}, Scope{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Data) != 1 || res.Data[0].ID != "city-2" {
		t.Errorf("expected only Basel, got %+v", res.Data)
	}
}
