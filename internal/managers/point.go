package managers

import (
	"context"
	"fmt"
	"time"

	"menuhub/internal/domain"
	"menuhub/internal/ops"
	"menuhub/internal/result"
)

// PointManager is the façade over the point (physical location) operations.
type PointManager struct {
	cfg Config
}

func NewPointManager(cfg Config) *PointManager {
	return &PointManager{cfg: cfg.normalized()}
}

func (m *PointManager) GetByID(ctx context.Context, id string, scope Scope) (res result.Read[*domain.Point]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("point", "getById", start, res.Err) }()

	sc := m.cfg.scope(scope)
	pointID := pick(id, sc.PointID)
	if err := requireScope(
		scopeField{"brandId", sc.BrandID},
		scopeField{"pointId", pointID},
	); err != nil {
		return result.FailRead[*domain.Point](err)
	}

	var resp struct {
		Point *domain.Point `json:"point"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "id": pointID}
	if err := m.cfg.Client.Do(ctx, ops.PointByID, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("point getById failed")
		return result.FailRead[*domain.Point](err)
	}
	if resp.Point == nil {
		return result.FailRead[*domain.Point](fmt.Errorf("point %s not found", pointID))
	}

	m.cfg.Cache.WriteEntity("Point", resp.Point.ID, *resp.Point)
	return result.OkRead(resp.Point, 1)
}

func (m *PointManager) GetForBrand(ctx context.Context, scope Scope) (res result.Read[[]domain.Point]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("point", "getForBrand", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailRead[[]domain.Point](err)
	}

	var resp struct {
		PointsForBrand listPayload[domain.Point] `json:"pointsForBrand"`
	}
	vars := map[string]any{"brandId": sc.BrandID}
	if err := m.cfg.Client.Do(ctx, ops.PointsForBrand, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("point getForBrand failed")
		return result.FailRead[[]domain.Point](err)
	}

	for _, p := range resp.PointsForBrand.Items {
		m.cfg.Cache.WriteEntity("Point", p.ID, p)
	}
	return result.OkRead(resp.PointsForBrand.Items, len(resp.PointsForBrand.Items))
}

func (m *PointManager) GetForCity(ctx context.Context, scope Scope) (res result.Read[[]domain.Point]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("point", "getForCity", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(
		scopeField{"brandId", sc.BrandID},
		scopeField{"cityId", sc.CityID},
	); err != nil {
		return result.FailRead[[]domain.Point](err)
	}

	var resp struct {
		PointsForCity listPayload[domain.Point] `json:"pointsForCity"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "cityId": sc.CityID}
	if err := m.cfg.Client.Do(ctx, ops.PointsForCity, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("point getForCity failed")
		return result.FailRead[[]domain.Point](err)
	}

	for _, p := range resp.PointsForCity.Items {
		m.cfg.Cache.WriteEntity("Point", p.ID, p)
	}
	return result.OkRead(resp.PointsForCity.Items, len(resp.PointsForCity.Items))
}
