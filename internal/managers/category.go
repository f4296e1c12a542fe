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

// CategoryManager is the façade over the category network operations plus
// the hierarchy helpers built from the flat category list.
type CategoryManager struct {
	cfg Config
}

func NewCategoryManager(cfg Config) *CategoryManager {
	return &CategoryManager{cfg: cfg.normalized()}
}

type CategoryInput struct {
	BrandID     string
	ParentID    string
	Name        string
	Description string
	IsActive    *bool
	Priority    int
}

type CategoryUpdateInput struct {
	ID          string
	BrandID     string
	ParentID    *string
	Name        *string
	Description *string
	IsActive    *bool
	Priority    *int
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func (m *CategoryManager) GetByID(ctx context.Context, id string, scope Scope) (res result.Read[*domain.Category]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("category", "getById", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailRead[*domain.Category](err)
	}

	var resp struct {
		Category *domain.Category `json:"category"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "id": id}
	if err := m.cfg.Client.Do(ctx, ops.CategoryByID, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("category getById failed")
		return result.FailRead[*domain.Category](err)
	}
	if resp.Category == nil {
		return result.FailRead[*domain.Category](fmt.Errorf("category %s not found", id))
	}

	m.cfg.Cache.WriteEntity("Category", resp.Category.ID, *resp.Category)
	return result.OkRead(resp.Category, 1)
}

// GetForMenu returns the categories shown on the menu for the resolved
// context. Empty categories (productsCount == 0) are always dropped in menu
// contexts, on top of whatever the caller's filter requests.
func (m *CategoryManager) GetForMenu(ctx context.Context, f domain.CategoryFilter, scope Scope) (res result.Read[[]domain.Category]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("category", "getForMenu", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(
		scopeField{"brandId", sc.BrandID},
		scopeField{"pointId", sc.PointID},
		scopeField{"orderType", sc.OrderType},
	); err != nil {
		return result.FailRead[[]domain.Category](err)
	}

	var resp struct {
		CategoriesForMenu listPayload[domain.Category] `json:"categoriesForMenu"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "pointId": sc.PointID, "orderType": sc.OrderType}
	if err := m.cfg.Client.Do(ctx, ops.CategoriesForMenu, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("category getForMenu failed")
		return result.FailRead[[]domain.Category](err)
	}

	items := resp.CategoriesForMenu.Items
	for _, c := range items {
		m.cfg.Cache.WriteEntity("Category", c.ID, c)
	}
	m.cfg.Cache.WriteQuery("categories", cache.Args{
		"brandId": sc.BrandID,
		"filter":  menuFilterKey(sc),
		"offset":  0,
	}, items)

	f.HideEmpty = true
	filtered := domain.FilterCategories(items, f)
	return result.OkRead(filtered, len(filtered))
}

// GetForAdmin fetches one pagination window of the brand's full category
// list; windows accumulate into one cached list via the offset merge policy.
func (m *CategoryManager) GetForAdmin(ctx context.Context, f domain.CategoryFilter, scope Scope) (res result.Read[[]domain.Category]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("category", "getForAdmin", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailRead[[]domain.Category](err)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	var resp struct {
		CategoriesForAdmin listPayload[domain.Category] `json:"categoriesForAdmin"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "offset": f.Offset, "limit": limit}
	if err := m.cfg.Client.Do(ctx, ops.CategoriesForAdmin, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("category getForAdmin failed")
		return result.FailRead[[]domain.Category](err)
	}

	items := resp.CategoriesForAdmin.Items
	for _, c := range items {
		m.cfg.Cache.WriteEntity("Category", c.ID, c)
	}
	m.cfg.Cache.WriteQuery("categories", cache.Args{
		"brandId": sc.BrandID,
		"filter":  "admin",
		"offset":  f.Offset,
	}, items)

	filtered := domain.FilterCategories(items, f)
	return result.OkRead(filtered, len(filtered))
}

// Search filters the admin category list by the filter's search term.
func (m *CategoryManager) Search(ctx context.Context, f domain.CategoryFilter, scope Scope) result.Read[[]domain.Category] {
	return m.GetForAdmin(ctx, f, scope)
}

// Tree fetches the brand's categories and groups them into a forest.
func (m *CategoryManager) Tree(ctx context.Context, scope Scope) (res result.Read[[]*domain.CategoryNode]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("category", "tree", start, res.Err) }()

	list := m.GetForAdmin(ctx, domain.CategoryFilter{Limit: 500}, scope)
	if list.Err != nil {
		return result.FailRead[[]*domain.CategoryNode](list.Err)
	}
	roots := domain.BuildCategoryTree(list.Data)
	return result.OkRead(roots, len(roots))
}

// ValidateStructure fetches the brand's categories and reports structural
// problems: self-references, orphaned parents, cycles and excessive depth.
func (m *CategoryManager) ValidateStructure(ctx context.Context, scope Scope) (res result.Read[domain.StructureReport]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("category", "validateStructure", start, res.Err) }()

	list := m.GetForAdmin(ctx, domain.CategoryFilter{Limit: 500}, scope)
	if list.Err != nil {
		return result.FailRead[domain.StructureReport](list.Err)
	}
	report := domain.ValidateCategoryStructure(list.Data)
	if !report.IsValid {
		m.cfg.Logger.WithField("issues", len(report.Issues)).Warn("category structure has issues")
	}
	return result.OkRead(report, len(report.Issues))
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

func (m *CategoryManager) Create(ctx context.Context, input CategoryInput, scope Scope) (res result.Write[*domain.Category]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("category", "create", start, res.Err) }()

	sc := m.cfg.scope(scope)
	brandID := pick(input.BrandID, sc.BrandID)
	if input.Name == "" || brandID == "" {
		m.cfg.Logger.Warn("category create rejected: missing name or brandId")
		return result.FailWrite[*domain.Category](&result.ValidationError{Reason: "Name and brandId are required"})
	}

	in := map[string]any{
		"brandId":     brandID,
		"name":        input.Name,
		"description": input.Description,
		"priority":    input.Priority,
	}
	if input.ParentID != "" {
		in["parentId"] = input.ParentID
	}
	if input.IsActive != nil {
		in["isActive"] = *input.IsActive
	}

	var resp struct {
		CategoryCreate struct {
			Category *domain.Category `json:"category"`
			Errors   []mutationError  `json:"errors"`
		} `json:"categoryCreate"`
	}
	if err := m.cfg.Client.Do(ctx, ops.CategoryCreate, map[string]any{"input": in}, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("category create failed")
		return result.FailWrite[*domain.Category](err)
	}
	if err := payloadErr(ops.CategoryCreate, resp.CategoryCreate.Errors); err != nil {
		return result.FailWrite[*domain.Category](err)
	}
	if resp.CategoryCreate.Category == nil {
		return result.FailWrite[*domain.Category](fmt.Errorf("%s: no category returned", ops.CategoryCreate.Name))
	}

	c := *resp.CategoryCreate.Category
	m.cfg.Cache.WriteEntity("Category", c.ID, c)
	m.invalidateCategoryQueries()
	return result.OkWrite(&c)
}

func (m *CategoryManager) Update(ctx context.Context, input CategoryUpdateInput, scope Scope) (res result.Write[*domain.Category]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("category", "update", start, res.Err) }()
	return m.update(ctx, input, scope)
}

func (m *CategoryManager) update(ctx context.Context, input CategoryUpdateInput, scope Scope) result.Write[*domain.Category] {
	sc := m.cfg.scope(scope)
	brandID := pick(input.BrandID, sc.BrandID)
	if input.ID == "" || brandID == "" {
		m.cfg.Logger.Warn("category update rejected: missing id or brandId")
		return result.FailWrite[*domain.Category](&result.ValidationError{Reason: "Id and brandId are required"})
	}

	in := map[string]any{"id": input.ID, "brandId": brandID}
	if input.ParentID != nil {
		in["parentId"] = *input.ParentID
	}
	if input.Name != nil {
		in["name"] = *input.Name
	}
	if input.Description != nil {
		in["description"] = *input.Description
	}
	if input.IsActive != nil {
		in["isActive"] = *input.IsActive
	}
	if input.Priority != nil {
		in["priority"] = *input.Priority
	}

	var resp struct {
		CategoryUpdate struct {
			Category *domain.Category `json:"category"`
			Errors   []mutationError  `json:"errors"`
		} `json:"categoryUpdate"`
	}
	if err := m.cfg.Client.Do(ctx, ops.CategoryUpdate, map[string]any{"input": in}, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("category update failed")
		return result.FailWrite[*domain.Category](err)
	}
	if err := payloadErr(ops.CategoryUpdate, resp.CategoryUpdate.Errors); err != nil {
		return result.FailWrite[*domain.Category](err)
	}
	if resp.CategoryUpdate.Category == nil {
		return result.FailWrite[*domain.Category](fmt.Errorf("%s: no category returned", ops.CategoryUpdate.Name))
	}

	c := *resp.CategoryUpdate.Category
	m.cfg.Cache.WriteEntity("Category", c.ID, c)
	m.invalidateCategoryQueries()
	return result.OkWrite(&c)
}

func (m *CategoryManager) Delete(ctx context.Context, id string, scope Scope) (res result.Write[string]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("category", "delete", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailWrite[string](err)
	}

	var resp struct {
		CategoryDelete struct {
			DeletedID string          `json:"deletedId"`
			Errors    []mutationError `json:"errors"`
		} `json:"categoryDelete"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "id": id}
	if err := m.cfg.Client.Do(ctx, ops.CategoryDelete, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("category delete failed")
		return result.FailWrite[string](err)
	}
	if err := payloadErr(ops.CategoryDelete, resp.CategoryDelete.Errors); err != nil {
		return result.FailWrite[string](err)
	}

	m.cfg.Cache.EvictEntity("Category", id)
	m.invalidateCategoryQueries()
	return result.OkWrite(resp.CategoryDelete.DeletedID)
}

// ToggleActive reads the current category and writes the negated active
// flag. Same non-atomic read-then-write caveat as the product manager.
func (m *CategoryManager) ToggleActive(ctx context.Context, id string, scope Scope) (res result.Write[*domain.Category]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("category", "toggleActive", start, res.Err) }()

	current := m.GetByID(ctx, id, scope)
	if current.Err != nil {
		return result.FailWrite[*domain.Category](current.Err)
	}

	negated := !current.Data.IsActive
	return m.update(ctx, CategoryUpdateInput{
		ID:       id,
		BrandID:  current.Data.BrandID,
		IsActive: &negated,
	}, scope)
}

func (m *CategoryManager) invalidateCategoryQueries() {
	m.cfg.Cache.EvictQuery("categories")
	m.cfg.Cache.EvictQuery("menu")
}
