package managers

import (
	"context"
	"fmt"
	"time"

	"menuhub/internal/domain"
	"menuhub/internal/ops"
	"menuhub/internal/result"
)

// CityManager is the façade over the city network operations.
type CityManager struct {
	cfg Config
}

func NewCityManager(cfg Config) *CityManager {
	return &CityManager{cfg: cfg.normalized()}
}

func (m *CityManager) GetByID(ctx context.Context, id string, scope Scope) (res result.Read[*domain.City]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("city", "getById", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailRead[*domain.City](err)
	}

	var resp struct {
		City *domain.City `json:"city"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "id": id}
	if err := m.cfg.Client.Do(ctx, ops.CityByID, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("city getById failed")
		return result.FailRead[*domain.City](err)
	}
	if resp.City == nil {
		return result.FailRead[*domain.City](fmt.Errorf("city %s not found", id))
	}

	m.cfg.Cache.WriteEntity("City", resp.City.ID, *resp.City)
	return result.OkRead(resp.City, 1)
}

// GetForBrand lists the brand's cities, optionally post-filtered by name
// substring and active flag.
func (m *CityManager) GetForBrand(ctx context.Context, f domain.CityFilter, scope Scope) (res result.Read[[]domain.City]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("city", "getForBrand", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailRead[[]domain.City](err)
	}

	var resp struct {
		CitiesForBrand listPayload[domain.City] `json:"citiesForBrand"`
	}
	vars := map[string]any{"brandId": sc.BrandID}
	if err := m.cfg.Client.Do(ctx, ops.CitiesForBrand, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("city getForBrand failed")
		return result.FailRead[[]domain.City](err)
	}

	for _, c := range resp.CitiesForBrand.Items {
		m.cfg.Cache.WriteEntity("City", c.ID, c)
	}
	filtered := domain.FilterCities(resp.CitiesForBrand.Items, f)
	return result.OkRead(filtered, len(filtered))
}

// Search is GetForBrand with a search term.
func (m *CityManager) Search(ctx context.Context, term string, scope Scope) result.Read[[]domain.City] {
	return m.GetForBrand(ctx, domain.CityFilter{SearchTerm: term}, scope)
}
