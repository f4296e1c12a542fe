package managers

import (
	"context"
	"fmt"
	"time"

	"menuhub/internal/cache"
	"menuhub/internal/domain"
	"menuhub/internal/ops"
	"menuhub/internal/result"
)

// ProductManager is the façade over the product network operations.
type ProductManager struct {
	cfg Config
}

func NewProductManager(cfg Config) *ProductManager {
	return &ProductManager{cfg: cfg.normalized()}
}

// ---------------------------------------------------------------------------
// Inputs
// ---------------------------------------------------------------------------

type ProductInput struct {
	BrandID     string
	Name        string
	Description string
	IsActive    *bool
	Price       domain.PriceSettings
	Images      []domain.ProductImage
	CategoryIDs []string
}

type ProductUpdateInput struct {
	ID          string
	BrandID     string
	Name        *string
	Description *string
	IsActive    *bool
	Price       *domain.PriceSettings
}

// BatchResult aggregates the per-item envelopes of a batch update. Items run
// strictly sequentially; a failing item never aborts the ones after it.
type BatchResult struct {
	Results      []result.Write[*domain.Product]
	SuccessCount int
	ErrorCount   int
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func (m *ProductManager) GetByID(ctx context.Context, id string, scope Scope) (res result.Read[*domain.Product]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("product", "getById", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailRead[*domain.Product](err)
	}

	var resp struct {
		Product *domain.Product `json:"product"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "id": id}
	if err := m.cfg.Client.Do(ctx, ops.ProductByID, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("product getById failed")
		return result.FailRead[*domain.Product](err)
	}
	if resp.Product == nil {
		return result.FailRead[*domain.Product](fmt.Errorf("product %s not found", id))
	}

	p := *resp.Product
	p.Images = domain.SortImages(p.Images)
	m.cfg.Cache.WriteEntity("Product", p.ID, p)
	if sc.PointID != "" && sc.OrderType != "" {
		p.EffectivePrice = m.effectivePrice(p, sc)
	}
	return result.OkRead(&p, 1)
}

// GetForMenu fetches the products visible on the menu for the resolved
// (brandId, pointId, orderType) context and applies the client-side filter.
// Total reflects the filtered size, not the server-reported count.
func (m *ProductManager) GetForMenu(ctx context.Context, f domain.ProductFilter, scope Scope) (res result.Read[[]domain.Product]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("product", "getForMenu", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(
		scopeField{"brandId", sc.BrandID},
		scopeField{"pointId", sc.PointID},
		scopeField{"orderType", sc.OrderType},
	); err != nil {
		return result.FailRead[[]domain.Product](err)
	}

	var resp struct {
		ProductsForMenu listPayload[domain.Product] `json:"productsForMenu"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "pointId": sc.PointID, "orderType": sc.OrderType}
	if err := m.cfg.Client.Do(ctx, ops.ProductsForMenu, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("product getForMenu failed")
		return result.FailRead[[]domain.Product](err)
	}

	items := m.storeProducts(resp.ProductsForMenu.Items, sc)
	m.cfg.Cache.WriteQuery("products", cache.Args{
		"brandId": sc.BrandID,
		"filter":  menuFilterKey(sc),
		"offset":  0,
	}, items)

	filtered := domain.FilterProducts(items, f, sc.PointID, sc.OrderType)
	return result.OkRead(filtered, len(filtered))
}

// GetForAdmin fetches one pagination window of the brand's full product
// list. Consecutive windows for the same brand accumulate into one cached
// list via the offset merge policy.
func (m *ProductManager) GetForAdmin(ctx context.Context, f domain.ProductFilter, scope Scope) (res result.Read[[]domain.Product]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("product", "getForAdmin", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailRead[[]domain.Product](err)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	var resp struct {
		ProductsForAdmin listPayload[domain.Product] `json:"productsForAdmin"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "offset": f.Offset, "limit": limit}
	if err := m.cfg.Client.Do(ctx, ops.ProductsForAdmin, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("product getForAdmin failed")
		return result.FailRead[[]domain.Product](err)
	}

	items := m.storeProducts(resp.ProductsForAdmin.Items, sc)
	m.cfg.Cache.WriteQuery("products", cache.Args{
		"brandId": sc.BrandID,
		"filter":  "admin",
		"offset":  f.Offset,
	}, items)

	filtered := domain.FilterProducts(items, f, sc.PointID, sc.OrderType)
	return result.OkRead(filtered, len(filtered))
}

// Search runs the menu read and keeps only products matching the filter's
// search term and bounds. The network operation has no native search.
func (m *ProductManager) Search(ctx context.Context, f domain.ProductFilter, scope Scope) result.Read[[]domain.Product] {
	return m.GetForMenu(ctx, f, scope)
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

func (m *ProductManager) Create(ctx context.Context, input ProductInput, scope Scope) (res result.Write[*domain.Product]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("product", "create", start, res.Err) }()

	sc := m.cfg.scope(scope)
	brandID := pick(input.BrandID, sc.BrandID)
	if input.Name == "" || brandID == "" {
		m.cfg.Logger.Warn("product create rejected: missing name or brandId")
		return result.FailWrite[*domain.Product](&result.ValidationError{Reason: "Name and brandId are required"})
	}

	in := map[string]any{
		"brandId":     brandID,
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"categoryIds": input.CategoryIDs,
		"images":      domain.SortImages(input.Images),
	}
	if input.IsActive != nil {
		in["isActive"] = *input.IsActive
	}

	var resp struct {
		ProductCreate struct {
			Product *domain.Product `json:"product"`
			Errors  []mutationError `json:"errors"`
		} `json:"productCreate"`
	}
	if err := m.cfg.Client.Do(ctx, ops.ProductCreate, map[string]any{"input": in}, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("product create failed")
		return result.FailWrite[*domain.Product](err)
	}
	if err := payloadErr(ops.ProductCreate, resp.ProductCreate.Errors); err != nil {
		return result.FailWrite[*domain.Product](err)
	}
	if resp.ProductCreate.Product == nil {
		return result.FailWrite[*domain.Product](fmt.Errorf("%s: no product returned", ops.ProductCreate.Name))
	}

	p := *resp.ProductCreate.Product
	m.cfg.Cache.WriteEntity("Product", p.ID, p)
	m.invalidateProductQueries()
	return result.OkWrite(&p)
}

func (m *ProductManager) Update(ctx context.Context, input ProductUpdateInput, scope Scope) (res result.Write[*domain.Product]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("product", "update", start, res.Err) }()
	return m.update(ctx, input, scope)
}

// update carries the shared body of Update, ToggleActive and BatchUpdate so
// the batch path is not double-counted in the metrics.
func (m *ProductManager) update(ctx context.Context, input ProductUpdateInput, scope Scope) result.Write[*domain.Product] {
	sc := m.cfg.scope(scope)
	brandID := pick(input.BrandID, sc.BrandID)
	if input.ID == "" || brandID == "" {
		m.cfg.Logger.Warn("product update rejected: missing id or brandId")
		return result.FailWrite[*domain.Product](&result.ValidationError{Reason: "Id and brandId are required"})
	}

	in := map[string]any{"id": input.ID, "brandId": brandID}
	if input.Name != nil {
		in["name"] = *input.Name
	}
	if input.Description != nil {
		in["description"] = *input.Description
	}
	if input.IsActive != nil {
		in["isActive"] = *input.IsActive
	}
	if input.Price != nil {
		in["price"] = *input.Price
	}

	var resp struct {
		ProductUpdate struct {
			Product *domain.Product `json:"product"`
			Errors  []mutationError `json:"errors"`
		} `json:"productUpdate"`
	}
	if err := m.cfg.Client.Do(ctx, ops.ProductUpdate, map[string]any{"input": in}, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("product update failed")
		return result.FailWrite[*domain.Product](err)
	}
	if err := payloadErr(ops.ProductUpdate, resp.ProductUpdate.Errors); err != nil {
		return result.FailWrite[*domain.Product](err)
	}
	if resp.ProductUpdate.Product == nil {
		return result.FailWrite[*domain.Product](fmt.Errorf("%s: no product returned", ops.ProductUpdate.Name))
	}

	p := *resp.ProductUpdate.Product
	m.cfg.Cache.WriteEntity("Product", p.ID, p)
	m.invalidateProductQueries()
	return result.OkWrite(&p)
}

func (m *ProductManager) Delete(ctx context.Context, id string, scope Scope) (res result.Write[string]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("product", "delete", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailWrite[string](err)
	}

	var resp struct {
		ProductDelete struct {
			DeletedID string          `json:"deletedId"`
			Errors    []mutationError `json:"errors"`
		} `json:"productDelete"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "id": id}
	if err := m.cfg.Client.Do(ctx, ops.ProductDelete, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("product delete failed")
		return result.FailWrite[string](err)
	}
	if err := payloadErr(ops.ProductDelete, resp.ProductDelete.Errors); err != nil {
		return result.FailWrite[string](err)
	}

	m.cfg.Cache.EvictEntity("Product", id)
	m.invalidateProductQueries()
	return result.OkWrite(resp.ProductDelete.DeletedID)
}

// ToggleActive reads the current entity, negates its active flag and issues
// the write. The sequence is not atomic: a concurrent toggle between the
// read and the write can lose an update, because the platform's write
// operations carry no concurrency token.
func (m *ProductManager) ToggleActive(ctx context.Context, id string, scope Scope) (res result.Write[*domain.Product]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("product", "toggleActive", start, res.Err) }()

	current := m.GetByID(ctx, id, scope)
	if current.Err != nil {
		return result.FailWrite[*domain.Product](current.Err)
	}

	negated := !current.Data.IsActive
	return m.update(ctx, ProductUpdateInput{
		ID:       id,
		BrandID:  current.Data.BrandID,
		IsActive: &negated,
	}, scope)
}

// BatchUpdate issues one write per item sequentially. Partial failure is
// expected and surfaced per item; successCount+errorCount always equals the
// number of items.
func (m *ProductManager) BatchUpdate(ctx context.Context, items []ProductUpdateInput, scope Scope) BatchResult {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("product", "batchUpdate", start, nil) }()

	out := BatchResult{Results: make([]result.Write[*domain.Product], 0, len(items))}
	for _, item := range items {
		r := m.update(ctx, item, scope)
		out.Results = append(out.Results, r)
		if r.Success {
			out.SuccessCount++
		} else {
			out.ErrorCount++
		}
	}
	return out
}

// AssignCategories replaces the product's category bindings.
func (m *ProductManager) AssignCategories(ctx context.Context, id string, categoryIDs []string, scope Scope) (res result.Write[*domain.Product]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("product", "assignCategories", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailWrite[*domain.Product](err)
	}

	var resp struct {
		ProductAssignCategories struct {
			Product *domain.Product `json:"product"`
			Errors  []mutationError `json:"errors"`
		} `json:"productAssignCategories"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "id": id, "categoryIds": categoryIDs}
	if err := m.cfg.Client.Do(ctx, ops.ProductAssignCategories, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("product assignCategories failed")
		return result.FailWrite[*domain.Product](err)
	}
	if err := payloadErr(ops.ProductAssignCategories, resp.ProductAssignCategories.Errors); err != nil {
		return result.FailWrite[*domain.Product](err)
	}
	if resp.ProductAssignCategories.Product == nil {
		return result.FailWrite[*domain.Product](fmt.Errorf("%s: no product returned", ops.ProductAssignCategories.Name))
	}

	p := *resp.ProductAssignCategories.Product
	m.cfg.Cache.WriteEntity("Product", p.ID, p)
	m.invalidateProductQueries()
	return result.OkWrite(&p)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// storeProducts normalizes each fetched product into the cache and annotates
// the effective price for the call's context via the derived read policy.
func (m *ProductManager) storeProducts(items []domain.Product, sc Scope) []domain.Product {
	args := cache.Args{"pointId": sc.PointID, "orderType": sc.OrderType}
	out := make([]domain.Product, 0, len(items))
	for _, p := range items {
		p.Images = domain.SortImages(p.Images)
		m.cfg.Cache.WriteEntity("Product", p.ID, p)
		p.EffectivePrice, _ = m.cfg.Cache.ResolveField("Product", "price", p, args).(*float64)
		out = append(out, p)
	}
	return out
}

func (m *ProductManager) effectivePrice(p domain.Product, sc Scope) *float64 {
	args := cache.Args{"pointId": sc.PointID, "orderType": sc.OrderType}
	price, _ := m.cfg.Cache.ResolveField("Product", "price", p, args).(*float64)
	return price
}

// invalidateProductQueries marks the cached product and menu reads stale
// after a successful write. Best effort, not transactional.
func (m *ProductManager) invalidateProductQueries() {
	m.cfg.Cache.EvictQuery("products")
	m.cfg.Cache.EvictQuery("menu")
}

func menuFilterKey(sc Scope) string {
	return "menu/" + sc.PointID + "/" + sc.OrderType
}
