package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuhub/internal/domain"
)

func products(ids ...string) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Product{ID: id, Name: "Product " + id})
	}
	return out
}

func TestWriteQuery_PagesMergeIntoOneList(t *testing.T) {
	c := New(Options{})
	args := func(offset int) Args {
		return Args{"brandId": "brand-1", "filter": "admin", "offset": offset, "limit": 2}
	}

	c.WriteQuery("products", args(0), products("p1", "p2"))
	merged := c.WriteQuery("products", args(2), products("p3", "p4"))

	list, ok := merged.([]domain.Product)
	require.True(t, ok)
	require.Len(t, list, 4)
	assert.Equal(t, "p1", list[0].ID)
	assert.Equal(t, "p4", list[3].ID)

	// Offset and limit are not key arguments, so both pages landed on the
	// same entry and a read with either page's args sees the whole list.
	stored, ok := c.ReadQuery("products", args(0))
	require.True(t, ok)
	assert.Len(t, stored.([]domain.Product), 4)
}

func TestWriteQuery_RefetchOverwritesWindow(t *testing.T) {
	c := New(Options{})
	args := Args{"brandId": "brand-1", "filter": "admin", "offset": 0}

	c.WriteQuery("products", args, products("old-1", "old-2"))
	merged := c.WriteQuery("products", args, products("new-1", "new-2"))

	list := merged.([]domain.Product)
	require.Len(t, list, 2)
	assert.Equal(t, "new-1", list[0].ID)
}

func TestWriteQuery_DistinctFiltersKeepSeparateEntries(t *testing.T) {
	c := New(Options{})

	c.WriteQuery("products", Args{"brandId": "brand-1", "filter": "a"}, products("p1"))
	c.WriteQuery("products", Args{"brandId": "brand-1", "filter": "b"}, products("p2"))

	a, ok := c.ReadQuery("products", Args{"brandId": "brand-1", "filter": "a"})
	require.True(t, ok)
	assert.Equal(t, "p1", a.([]domain.Product)[0].ID)

	b, ok := c.ReadQuery("products", Args{"brandId": "brand-1", "filter": "b"})
	require.True(t, ok)
	assert.Equal(t, "p2", b.([]domain.Product)[0].ID)
}

func TestWriteQuery_MenuContextUnion(t *testing.T) {
	c := New(Options{})
	args := Args{"brandId": "brand-1", "pointId": "point-1", "orderType": "DELIVERY"}

	c.WriteQuery("menu", args, domain.Menu{
		BrandID:  "brand-1",
		Products: products("p1"),
	})
	merged := c.WriteQuery("menu", args, domain.Menu{
		Categories: []domain.Category{{ID: "c1"}},
	})

	menu, ok := merged.(domain.Menu)
	require.True(t, ok)
	// The partial second response must not erase the first one's products.
	assert.Equal(t, "brand-1", menu.BrandID)
	require.Len(t, menu.Products, 1)
	require.Len(t, menu.Categories, 1)
}

func TestWriteQuery_MenuContextsAreIsolated(t *testing.T) {
	c := New(Options{})

	c.WriteQuery("menu", Args{"brandId": "b", "pointId": "p1", "orderType": "DELIVERY"},
		domain.Menu{PointID: "p1"})
	c.WriteQuery("menu", Args{"brandId": "b", "pointId": "p2", "orderType": "DELIVERY"},
		domain.Menu{PointID: "p2"})

	got, ok := c.ReadQuery("menu", Args{"brandId": "b", "pointId": "p1", "orderType": "DELIVERY"})
	require.True(t, ok)
	assert.Equal(t, "p1", got.(domain.Menu).PointID)
}

func TestWriteEntity_SortsProductImages(t *testing.T) {
	c := New(Options{})

	c.WriteEntity("Product", "p1", domain.Product{
		ID: "p1",
		Images: []domain.ProductImage{
			{URL: "b.jpg", Priority: 2},
			{URL: "a.jpg", Priority: 1},
		},
	})

	v, ok := c.ReadEntity("Product", "p1")
	require.True(t, ok)
	p := v.(domain.Product)
	assert.Equal(t, "a.jpg", p.Images[0].URL)
}

func TestResolveField_EffectivePriceCascade(t *testing.T) {
	c := New(Options{})
	price := 42.0
	p := domain.Product{
		ID:    "p1",
		Price: domain.PriceSettings{Kind: domain.PriceFlat, Flat: &price},
	}

	v := c.ResolveField("Product", "price", p, Args{"pointId": "point-1", "orderType": "DELIVERY"})
	resolved, ok := v.(*float64)
	require.True(t, ok)
	require.NotNil(t, resolved)
	assert.Equal(t, 42.0, *resolved)
}

func TestResolveField_MalformedStoredDegradesToNil(t *testing.T) {
	c := New(Options{})

	v := c.ResolveField("Product", "price", "not a product", Args{})
	resolved, ok := v.(*float64)
	require.True(t, ok)
	assert.Nil(t, resolved)
}

func TestCallerPolicyOverridesBuiltin(t *testing.T) {
	c := New(Options{
		Policies: map[string]FieldPolicy{
			"Query.products": {
				KeyArgs: []string{"brandId"},
				Merge: func(_, incoming any, _ Args) any {
					// Last write wins regardless of offset.
					return incoming
				},
			},
		},
	})
	args := Args{"brandId": "brand-1", "offset": 2}

	c.WriteQuery("products", args, products("p1", "p2"))
	merged := c.WriteQuery("products", args, products("p3"))

	list := merged.([]domain.Product)
	require.Len(t, list, 1)
	assert.Equal(t, "p3", list[0].ID)
}

func TestEvictQuery_DropsOnlyMatchingField(t *testing.T) {
	c := New(Options{})

	c.WriteQuery("products", Args{"brandId": "b"}, products("p1"))
	c.WriteQuery("categories", Args{"brandId": "b"}, []domain.Category{{ID: "c1"}})

	c.EvictQuery("products")

	_, ok := c.ReadQuery("products", Args{"brandId": "b"})
	assert.False(t, ok)
	_, ok = c.ReadQuery("categories", Args{"brandId": "b"})
	assert.True(t, ok)
}

func TestEvictEntityAndReset(t *testing.T) {
	c := New(Options{})

	c.WriteEntity("Product", "p1", domain.Product{ID: "p1"})
	c.EvictEntity("Product", "p1")
	_, ok := c.ReadEntity("Product", "p1")
	assert.False(t, ok)

	c.WriteEntity("Product", "p2", domain.Product{ID: "p2"})
	c.WriteQuery("products", Args{"brandId": "b"}, products("p2"))
	c.Reset()

	_, ok = c.ReadEntity("Product", "p2")
	assert.False(t, ok)
	_, ok = c.ReadQuery("products", Args{"brandId": "b"})
	assert.False(t, ok)
}

func TestEntityStoreEvictsOldestWhenFull(t *testing.T) {
	c := New(Options{MaxEntities: 2})

	c.WriteEntity("Product", "p1", domain.Product{ID: "p1"})
	c.WriteEntity("Product", "p2", domain.Product{ID: "p2"})
	c.WriteEntity("Product", "p3", domain.Product{ID: "p3"})

	_, ok := c.ReadEntity("Product", "p1")
	assert.False(t, ok)
	_, ok = c.ReadEntity("Product", "p3")
	assert.True(t, ok)
}
