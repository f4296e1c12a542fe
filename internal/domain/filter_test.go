package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []Product {
	return []Product{
		{
			ID:          "p1",
			Name:        "Margherita Pizza",
			Description: "Tomato and mozzarella",
			IsActive:    true,
			CategoryIDs: []string{"c-pizza"},
			Price:       PriceSettings{Kind: PriceFlat, Flat: fp(12)},
		},
		{
			ID:          "p2",
			Name:        "Test Product 2",
			IsActive:    false,
			CategoryIDs: []string{"c-other"},
			Tags:        []Tag{{ID: "t1", Name: "Seasonal"}},
			Price:       PriceSettings{Kind: PriceFlat, Flat: fp(30)},
		},
	}
}

func TestFilterProducts_SearchFoldsCase(t *testing.T) {
	got := FilterProducts(sampleProducts(), ProductFilter{SearchTerm: "TEST"}, "", "")
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestFilterProducts_SearchMatchesTagName(t *testing.T) {
	got := FilterProducts(sampleProducts(), ProductFilter{SearchTerm: "seasonal"}, "", "")
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestFilterProducts_ActiveFlag(t *testing.T) {
	active := true
	got := FilterProducts(sampleProducts(), ProductFilter{IsActive: &active}, "", "")
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestFilterProducts_CategoryIntersection(t *testing.T) {
	got := FilterProducts(sampleProducts(), ProductFilter{CategoryIDs: []string{"c-pizza", "c-unknown"}}, "", "")
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestFilterProducts_PriceBoundsUseContextCascade(t *testing.T) {
	products := []Product{
		{
			ID: "cheap-at-point",
			Price: PriceSettings{
				Kind: PriceByPoint,
				Flat: fp(20),
				OrderTypes: []OrderTypePrice{
					{OrderType: "DELIVERY", Points: []PointPrice{{PointID: "point-1", Value: fp(8)}}},
				},
			},
		},
	}

	max := 10.0
	// At point-1 the effective price is 8, inside the bound.
	got := FilterProducts(products, ProductFilter{MaxPrice: &max}, "point-1", "DELIVERY")
	assert.Len(t, got, 1)

	// At another point the cascade falls back to the flat 20, outside it.
	got = FilterProducts(products, ProductFilter{MaxPrice: &max}, "point-9", "DELIVERY")
	assert.Empty(t, got)
}

func TestFilterProducts_UnpricedFailsBounds(t *testing.T) {
	min := 1.0
	got := FilterProducts([]Product{{ID: "free"}}, ProductFilter{MinPrice: &min}, "", "")
	assert.Empty(t, got)
}

func TestFilterCategories_HideEmptyAndSearch(t *testing.T) {
	cats := []Category{
		{ID: "c1", Name: "Pizza", ProductsCount: 5},
		{ID: "c2", Name: "Pizza Specials", ProductsCount: 0},
		{ID: "c3", Name: "Drinks", ProductsCount: 3},
	}

	got := FilterCategories(cats, CategoryFilter{SearchTerm: "pizza", HideEmpty: true})
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}

func TestFilterCities(t *testing.T) {
	active := true
	cities := []City{
		{ID: "c1", Name: "Bern", IsActive: true},
		{ID: "c2", Name: "Basel", IsActive: false},
	}

	got := FilterCities(cities, CityFilter{IsActive: &active})
	require.Len(t, got, 1)
	assert.Equal(t, "Bern", got[0].Name)
}
