package domain

import "sort"

// Product is identified by (BrandID, ID). Images are always presented sorted
// ascending by priority regardless of server-returned order; the cache merge
// policy enforces the same invariant for cached reads.
type Product struct {
	ID          string         `json:"id"`
	BrandID     string         `json:"brandId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	IsActive    bool           `json:"isActive"`
	Images      []ProductImage `json:"images"`
	Price       PriceSettings  `json:"price"`
	CategoryIDs []string       `json:"categoryIds"`
	PointIDs    []string       `json:"pointIds"`
	Tags        []Tag          `json:"tags"`

	// EffectivePrice is derived client-side from Price for the call's
	// (pointId, orderType) context; the server never sends it.
	EffectivePrice *float64 `json:"effectivePrice,omitempty"`
}

type ProductImage struct {
	URL      string `json:"url"`
	Priority int    `json:"priority"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SortImages returns a copy of images ordered ascending by priority.
func SortImages(images []ProductImage) []ProductImage {
	out := make([]ProductImage, len(images))
	copy(out, images)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// ---------------------------------------------------------------------------
// Price settings
// ---------------------------------------------------------------------------

// PriceKind tags the shape of a product's price representation.
type PriceKind string

const (
	PriceUnset       PriceKind = ""
	PriceFlat        PriceKind = "FLAT"
	PriceByOrderType PriceKind = "ORDER_TYPE"
	PriceByPoint     PriceKind = "POINT"
)

// PriceSettings is the tagged union of the price representations the platform
// returns: a flat value, per-order-type values, or per-order-type values
// overridden at individual points.
type PriceSettings struct {
	Kind       PriceKind        `json:"kind"`
	Flat       *float64         `json:"flat,omitempty"`
	OrderTypes []OrderTypePrice `json:"orderTypes,omitempty"`
}

type OrderTypePrice struct {
	OrderType string       `json:"orderType"`
	Common    *float64     `json:"common,omitempty"`
	Points    []PointPrice `json:"points,omitempty"`
}

type PointPrice struct {
	PointID string   `json:"pointId"`
	Value   *float64 `json:"value,omitempty"`
}

// Resolve computes the effective price for (pointID, orderType) by cascading
// from the most specific configured value to the least specific: point-level
// price within the order type, then the order-type common price, then the
// flat price. Returns nil when no level yields a value. Malformed or partial
// settings degrade to the next level instead of failing.
func (ps PriceSettings) Resolve(pointID, orderType string) *float64 {
	for _, ot := range ps.OrderTypes {
		if ot.OrderType != orderType {
			continue
		}
		for _, pp := range ot.Points {
			if pp.PointID == pointID && pp.Value != nil {
				return pp.Value
			}
		}
		if ot.Common != nil {
			return ot.Common
		}
		break
	}
	return ps.Flat
}
