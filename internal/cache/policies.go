package cache

import (
	"menuhub/internal/domain"
)

// BuiltinPolicies returns the field-policy set the platform relies on:
//
//   - Query.products / Query.categories: windowed fetches for the same
//     (brandId, filter) key accumulate into one ordered list, each page
//     written at its request offset.
//   - Query.menu: one entry per (brandId, pointId, orderType) context,
//     merged by shallow field union so partial responses never erase
//     previously fetched fields.
//   - Product.images: re-sorted ascending by priority on every merge so
//     readers never observe unsorted images.
//   - Product.price: the effective price is derived at read time from the
//     stored price settings and the (pointId, orderType) arguments, so one
//     cached settings structure serves every context.
func BuiltinPolicies() map[string]FieldPolicy {
	return map[string]FieldPolicy{
		"Query.products": {
			KeyArgs: []string{"brandId", "filter"},
			Merge:   mergeProductWindow,
		},
		"Query.categories": {
			KeyArgs: []string{"brandId", "filter"},
			Merge:   mergeCategoryWindow,
		},
		"Query.menu": {
			KeyArgs: []string{"brandId", "pointId", "orderType"},
			Merge:   mergeMenuContext,
		},
		"Product.images": {
			Merge: mergeSortedImages,
		},
		"Product.price": {
			Read: readEffectivePrice,
		},
	}
}

func argInt(args Args, name string) int {
	switch v := args[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func argString(args Args, name string) string {
	s, _ := args[name].(string)
	return s
}

// spliceAt writes incoming into existing starting at offset, overwriting any
// previously cached entries at those positions. Gaps left by out-of-order
// pages hold zero values until the missing window arrives.
func spliceAt[T any](existing, incoming []T, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	size := len(existing)
	if offset+len(incoming) > size {
		size = offset + len(incoming)
	}
	out := make([]T, size)
	copy(out, existing)
	copy(out[offset:], incoming)
	return out
}

func mergeProductWindow(existing, incoming any, args Args) any {
	in, ok := incoming.([]domain.Product)
	if !ok {
		return incoming
	}
	prev, _ := existing.([]domain.Product)
	return spliceAt(prev, in, argInt(args, "offset"))
}

func mergeCategoryWindow(existing, incoming any, args Args) any {
	in, ok := incoming.([]domain.Category)
	if !ok {
		return incoming
	}
	prev, _ := existing.([]domain.Category)
	return spliceAt(prev, in, argInt(args, "offset"))
}

// mergeMenuContext unions incoming over existing field by field: newer
// non-empty fields overwrite, absent fields are preserved.
func mergeMenuContext(existing, incoming any, _ Args) any {
	in, ok := incoming.(domain.Menu)
	if !ok {
		return incoming
	}
	prev, ok := existing.(domain.Menu)
	if !ok {
		return in
	}
	merged := prev
	if in.BrandID != "" {
		merged.BrandID = in.BrandID
	}
	if in.PointID != "" {
		merged.PointID = in.PointID
	}
	if in.OrderType != "" {
		merged.OrderType = in.OrderType
	}
	if in.Categories != nil {
		merged.Categories = in.Categories
	}
	if in.Products != nil {
		merged.Products = in.Products
	}
	return merged
}

func mergeSortedImages(_, incoming any, _ Args) any {
	images, ok := incoming.([]domain.ProductImage)
	if !ok {
		return incoming
	}
	return domain.SortImages(images)
}

// readEffectivePrice accepts either a product or its bare price settings and
// resolves the cascade for the (pointId, orderType) arguments. Anything else
// degrades to nil rather than failing the read.
func readEffectivePrice(stored any, args Args) any {
	var settings domain.PriceSettings
	switch v := stored.(type) {
	case domain.PriceSettings:
		settings = v
	case *domain.PriceSettings:
		if v == nil {
			return (*float64)(nil)
		}
		settings = *v
	case domain.Product:
		settings = v.Price
	case *domain.Product:
		if v == nil {
			return (*float64)(nil)
		}
		settings = v.Price
	default:
		return (*float64)(nil)
	}
	return settings.Resolve(argString(args, "pointId"), argString(args, "orderType"))
}

// normalizeEntity applies per-type field merge policies before an entity
// record is stored.
func normalizeEntity(typename string, v any, policies map[string]FieldPolicy) any {
	if typename != "Product" {
		return v
	}
	pol, ok := policies["Product.images"]
	if !ok || pol.Merge == nil {
		return v
	}
	switch p := v.(type) {
	case domain.Product:
		if sorted, ok := pol.Merge(nil, p.Images, nil).([]domain.ProductImage); ok {
			p.Images = sorted
		}
		return p
	case *domain.Product:
		if p == nil {
			return v
		}
		clone := *p
		if sorted, ok := pol.Merge(nil, clone.Images, nil).([]domain.ProductImage); ok {
			clone.Images = sorted
		}
		return &clone
	default:
		return v
	}
}
