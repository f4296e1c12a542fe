package managers

import (
	"context"
	"fmt"
	"time"

	"menuhub/internal/domain"
	"menuhub/internal/ops"
	"menuhub/internal/result"
)

// OrderManager is the façade over the order network operations.
type OrderManager struct {
	cfg Config
}

func NewOrderManager(cfg Config) *OrderManager {
	return &OrderManager{cfg: cfg.normalized()}
}

type OrderInput struct {
	BrandID   string
	PointID   string
	OrderType string
	AccountID string
	Comment   string
	Items     []domain.OrderItem
}

func (m *OrderManager) GetByID(ctx context.Context, id string, scope Scope) (res result.Read[*domain.Order]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("order", "getById", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailRead[*domain.Order](err)
	}

	var resp struct {
		Order *domain.Order `json:"order"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "id": id}
	if err := m.cfg.Client.Do(ctx, ops.OrderByID, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("order getById failed")
		return result.FailRead[*domain.Order](err)
	}
	if resp.Order == nil {
		return result.FailRead[*domain.Order](fmt.Errorf("order %s not found", id))
	}

	m.cfg.Cache.WriteEntity("Order", resp.Order.ID, *resp.Order)
	return result.OkRead(resp.Order, 1)
}

func (m *OrderManager) GetForAccount(ctx context.Context, scope Scope) (res result.Read[[]domain.Order]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("order", "getForAccount", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(
		scopeField{"brandId", sc.BrandID},
		scopeField{"accountId", sc.AccountID},
	); err != nil {
		return result.FailRead[[]domain.Order](err)
	}

	var resp struct {
		OrdersForAccount listPayload[domain.Order] `json:"ordersForAccount"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "accountId": sc.AccountID}
	if err := m.cfg.Client.Do(ctx, ops.OrdersForAccount, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("order getForAccount failed")
		return result.FailRead[[]domain.Order](err)
	}

	for _, o := range resp.OrdersForAccount.Items {
		m.cfg.Cache.WriteEntity("Order", o.ID, o)
	}
	return result.OkRead(resp.OrdersForAccount.Items, len(resp.OrdersForAccount.Items))
}

// Create validates business rules locally before any network call: the item
// list must not be empty and every quantity must be positive.
func (m *OrderManager) Create(ctx context.Context, input OrderInput, scope Scope) (res result.Write[*domain.Order]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("order", "create", start, res.Err) }()

	sc := m.cfg.scope(scope)
	brandID := pick(input.BrandID, sc.BrandID)
	pointID := pick(input.PointID, sc.PointID)
	orderType := pick(input.OrderType, sc.OrderType)
	if err := requireScope(
		scopeField{"brandId", brandID},
		scopeField{"pointId", pointID},
		scopeField{"orderType", orderType},
	); err != nil {
		return result.FailWrite[*domain.Order](err)
	}
	if len(input.Items) == 0 {
		m.cfg.Logger.Warn("order create rejected: empty item list")
		return result.FailWrite[*domain.Order](&result.ValidationError{Reason: "items must not be empty"})
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return result.FailWrite[*domain.Order](result.Validationf("item quantity must be >= 1, got %d for product %s", item.Quantity, item.ProductID))
		}
	}

	items := make([]map[string]any, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, map[string]any{
			"productId": item.ProductID,
			"quantity":  item.Quantity,
		})
	}
	in := map[string]any{
		"brandId":   brandID,
		"pointId":   pointID,
		"orderType": orderType,
		"comment":   input.Comment,
		"items":     items,
	}
	if accountID := pick(input.AccountID, sc.AccountID); accountID != "" {
		in["accountId"] = accountID
	}

	var resp struct {
		OrderCreate struct {
			Order  *domain.Order   `json:"order"`
			Errors []mutationError `json:"errors"`
		} `json:"orderCreate"`
	}
	if err := m.cfg.Client.Do(ctx, ops.OrderCreate, map[string]any{"input": in}, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("order create failed")
		return result.FailWrite[*domain.Order](err)
	}
	if err := payloadErr(ops.OrderCreate, resp.OrderCreate.Errors); err != nil {
		return result.FailWrite[*domain.Order](err)
	}
	if resp.OrderCreate.Order == nil {
		return result.FailWrite[*domain.Order](fmt.Errorf("%s: no order returned", ops.OrderCreate.Name))
	}

	o := *resp.OrderCreate.Order
	m.cfg.Cache.WriteEntity("Order", o.ID, o)
	return result.OkWrite(&o)
}

func (m *OrderManager) Cancel(ctx context.Context, id string, scope Scope) (res result.Write[*domain.Order]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("order", "cancel", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"brandId", sc.BrandID}); err != nil {
		return result.FailWrite[*domain.Order](err)
	}

	var resp struct {
		OrderCancel struct {
			Order  *domain.Order   `json:"order"`
			Errors []mutationError `json:"errors"`
		} `json:"orderCancel"`
	}
	vars := map[string]any{"brandId": sc.BrandID, "id": id}
	if err := m.cfg.Client.Do(ctx, ops.OrderCancel, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("order cancel failed")
		return result.FailWrite[*domain.Order](err)
	}
	if err := payloadErr(ops.OrderCancel, resp.OrderCancel.Errors); err != nil {
		return result.FailWrite[*domain.Order](err)
	}
	if resp.OrderCancel.Order == nil {
		return result.FailWrite[*domain.Order](fmt.Errorf("%s: no order returned", ops.OrderCancel.Name))
	}

	o := *resp.OrderCancel.Order
	m.cfg.Cache.WriteEntity("Order", o.ID, o)
	return result.OkWrite(&o)
}
