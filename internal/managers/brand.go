package managers

import (
	"context"
	"fmt"
	"time"

	"menuhub/internal/domain"
	"menuhub/internal/ops"
	"menuhub/internal/result"
)

// BrandManager is the façade over the brand network operations.
type BrandManager struct {
	cfg Config
}

func NewBrandManager(cfg Config) *BrandManager {
	return &BrandManager{cfg: cfg.normalized()}
}

type BrandUpdateInput struct {
	ID          string
	Name        *string
	Description *string
	IsActive    *bool
}

func (m *BrandManager) GetByID(ctx context.Context, id string, scope Scope) (res result.Read[*domain.Brand]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("brand", "getById", start, res.Err) }()

	sc := m.cfg.scope(scope)
	brandID := pick(id, sc.BrandID)
	if err := requireScope(scopeField{"brandId", brandID}); err != nil {
		return result.FailRead[*domain.Brand](err)
	}

	var resp struct {
		Brand *domain.Brand `json:"brand"`
	}
	if err := m.cfg.Client.Do(ctx, ops.BrandByID, map[string]any{"id": brandID}, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("brand getById failed")
		return result.FailRead[*domain.Brand](err)
	}
	if resp.Brand == nil {
		return result.FailRead[*domain.Brand](fmt.Errorf("brand %s not found", brandID))
	}

	m.cfg.Cache.WriteEntity("Brand", resp.Brand.ID, *resp.Brand)
	return result.OkRead(resp.Brand, 1)
}

// GetForAccount lists the brands owned by the resolved account.
func (m *BrandManager) GetForAccount(ctx context.Context, scope Scope) (res result.Read[[]domain.Brand]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("brand", "getForAccount", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"accountId", sc.AccountID}); err != nil {
		return result.FailRead[[]domain.Brand](err)
	}

	var resp struct {
		BrandsForAccount listPayload[domain.Brand] `json:"brandsForAccount"`
	}
	vars := map[string]any{"accountId": sc.AccountID}
	if err := m.cfg.Client.Do(ctx, ops.BrandsForAccount, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("brand getForAccount failed")
		return result.FailRead[[]domain.Brand](err)
	}

	for _, b := range resp.BrandsForAccount.Items {
		m.cfg.Cache.WriteEntity("Brand", b.ID, b)
	}
	return result.OkRead(resp.BrandsForAccount.Items, len(resp.BrandsForAccount.Items))
}

func (m *BrandManager) Update(ctx context.Context, input BrandUpdateInput, scope Scope) (res result.Write[*domain.Brand]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("brand", "update", start, res.Err) }()

	sc := m.cfg.scope(scope)
	brandID := pick(input.ID, sc.BrandID)
	if brandID == "" {
		return result.FailWrite[*domain.Brand](&result.ValidationError{Reason: "Id is required"})
	}

	in := map[string]any{"id": brandID}
	if input.Name != nil {
		in["name"] = *input.Name
	}
	if input.Description != nil {
		in["description"] = *input.Description
	}
	if input.IsActive != nil {
		in["isActive"] = *input.IsActive
	}

	var resp struct {
		BrandUpdate struct {
			Brand  *domain.Brand   `json:"brand"`
			Errors []mutationError `json:"errors"`
		} `json:"brandUpdate"`
	}
	if err := m.cfg.Client.Do(ctx, ops.BrandUpdate, map[string]any{"input": in}, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("brand update failed")
		return result.FailWrite[*domain.Brand](err)
	}
	if err := payloadErr(ops.BrandUpdate, resp.BrandUpdate.Errors); err != nil {
		return result.FailWrite[*domain.Brand](err)
	}
	if resp.BrandUpdate.Brand == nil {
		return result.FailWrite[*domain.Brand](fmt.Errorf("%s: no brand returned", ops.BrandUpdate.Name))
	}

	b := *resp.BrandUpdate.Brand
	m.cfg.Cache.WriteEntity("Brand", b.ID, b)
	return result.OkWrite(&b)
}
