package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// Client-side post-filtering. The network operations do not support these
// predicates natively, so managers apply them to returned collections. The
// resulting Total reflects the filtered size, not the server-reported count.

var fold = cases.Fold()

func containsFold(haystack, needle string) bool {
	return strings.Contains(fold.String(haystack), fold.String(needle))
}

// ProductFilter combines server-side pagination arguments (Offset, Limit,
// passed through to the network operation) with predicates evaluated on the
// client.
type ProductFilter struct {
	SearchTerm  string
	MinPrice    *float64
	MaxPrice    *float64
	IsActive    *bool
	CategoryIDs []string
	Offset      int
	Limit       int
}

// Match reports whether the product passes every configured predicate.
// Price bounds are evaluated against the effective price for the supplied
// (pointID, orderType) context; a product with no resolvable price fails any
// configured bound.
func (f ProductFilter) Match(p Product, pointID, orderType string) bool {
	if f.IsActive != nil && p.IsActive != *f.IsActive {
		return false
	}
	if len(f.CategoryIDs) > 0 && !intersects(p.CategoryIDs, f.CategoryIDs) {
		return false
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := p.Price.Resolve(pointID, orderType)
		if price == nil {
			return false
		}
		if f.MinPrice != nil && *price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && *price > *f.MaxPrice {
			return false
		}
	}
	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		if !matchesSearch(p, term) {
			return false
		}
	}
	return true
}

func matchesSearch(p Product, term string) bool {
	if containsFold(p.Name, term) || containsFold(p.Description, term) {
		return true
	}
	for _, t := range p.Tags {
		if containsFold(t.Name, term) {
			return true
		}
	}
	return false
}

// FilterProducts applies f to every product in list.
func FilterProducts(list []Product, f ProductFilter, pointID, orderType string) []Product {
	out := make([]Product, 0, len(list))
	for _, p := range list {
		if f.Match(p, pointID, orderType) {
			out = append(out, p)
		}
	}
	return out
}

type CategoryFilter struct {
	SearchTerm string
	IsActive   *bool
	// HideEmpty drops categories with no products, used in menu contexts.
	HideEmpty bool
	Offset    int
	Limit     int
}

func (f CategoryFilter) Match(c Category) bool {
	if f.IsActive != nil && c.IsActive != *f.IsActive {
		return false
	}
	if f.HideEmpty && c.ProductsCount == 0 {
		return false
	}
	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		if !containsFold(c.Name, term) && !containsFold(c.Description, term) {
			return false
		}
	}
	return true
}

func FilterCategories(list []Category, f CategoryFilter) []Category {
	out := make([]Category, 0, len(list))
	for _, c := range list {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

type CityFilter struct {
	SearchTerm string
	IsActive   *bool
}

func FilterCities(list []City, f CityFilter) []City {
	out := make([]City, 0, len(list))
	for _, c := range list {
		if f.IsActive != nil && c.IsActive != *f.IsActive {
			continue
		}
		if term := strings.TrimSpace(f.SearchTerm); term != "" && !containsFold(c.Name, term) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
