package managers

import (
	"context"
	"time"

	"menuhub/internal/cache"
	"menuhub/internal/domain"
	"menuhub/internal/ops"
	"menuhub/internal/result"
)

// MenuManager serves the per-context menu aggregate. It composes the
// product and category managers for search and client-side filtering, and
// keeps one cached entry per (brandId, pointId, orderType) context.
type MenuManager struct {
	cfg        Config
	products   *ProductManager
	categories *CategoryManager
}

func NewMenuManager(cfg Config, products *ProductManager, categories *CategoryManager) *MenuManager {
	return &MenuManager{cfg: cfg.normalized(), products: products, categories: categories}
}

// Get returns the menu for the resolved context, served from the cache when
// a previous fetch populated it.
func (m *MenuManager) Get(ctx context.Context, scope Scope) (res result.Read[*domain.Menu]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("menu", "get", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(
		scopeField{"brandId", sc.BrandID},
		scopeField{"pointId", sc.PointID},
		scopeField{"orderType", sc.OrderType},
	); err != nil {
		return result.FailRead[*domain.Menu](err)
	}

	args := cache.Args{"brandId": sc.BrandID, "pointId": sc.PointID, "orderType": sc.OrderType}
	if cached, ok := m.cfg.Cache.ReadQuery("menu", args); ok {
		if menu, ok := cached.(domain.Menu); ok {
			m.cfg.Logger.Debug("menu served from cache")
			return result.OkRead(&menu, len(menu.Products))
		}
	}

	var resp struct {
		MenuForPoint *struct {
			Categories []domain.Category `json:"categories"`
			Products   []domain.Product  `json:"products"`
		} `json:"menuForPoint"`
	}
	if err := m.cfg.Client.Do(ctx, ops.MenuForPoint, map[string]any(args), &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("menu get failed")
		return result.FailRead[*domain.Menu](err)
	}
	if resp.MenuForPoint == nil {
		return result.FailRead[*domain.Menu](&result.ValidationError{Reason: "menu not available for this point"})
	}

	menu := domain.Menu{
		BrandID:    sc.BrandID,
		PointID:    sc.PointID,
		OrderType:  sc.OrderType,
		Categories: domain.FilterCategories(resp.MenuForPoint.Categories, domain.CategoryFilter{HideEmpty: true}),
		Products:   m.products.storeProducts(resp.MenuForPoint.Products, sc),
	}
	for _, c := range menu.Categories {
		m.cfg.Cache.WriteEntity("Category", c.ID, c)
	}

	merged := m.cfg.Cache.WriteQuery("menu", args, menu)
	if mergedMenu, ok := merged.(domain.Menu); ok {
		menu = mergedMenu
	}
	return result.OkRead(&menu, len(menu.Products))
}

// Search applies the product filter to the context's menu collection. The
// menu operation has no native search; matching happens client-side over
// name, description and tag names.
func (m *MenuManager) Search(ctx context.Context, f domain.ProductFilter, scope Scope) (res result.Read[[]domain.Product]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("menu", "search", start, res.Err) }()

	menu := m.Get(ctx, scope)
	if menu.Err != nil {
		return result.FailRead[[]domain.Product](menu.Err)
	}

	sc := m.cfg.scope(scope)
	filtered := domain.FilterProducts(menu.Data.Products, f, sc.PointID, sc.OrderType)
	return result.OkRead(filtered, len(filtered))
}
