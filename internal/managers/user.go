package managers

import (
	"context"
	"fmt"
	"time"

	"menuhub/internal/domain"
	"menuhub/internal/ops"
	"menuhub/internal/result"
)

// UserManager is the façade over the user network operations.
type UserManager struct {
	cfg Config
}

func NewUserManager(cfg Config) *UserManager {
	return &UserManager{cfg: cfg.normalized()}
}

type UserUpdateInput struct {
	ID    string
	Name  *string
	Phone *string
	Email *string
}

func (m *UserManager) GetByID(ctx context.Context, id string, scope Scope) (res result.Read[*domain.User]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("user", "getById", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"accountId", sc.AccountID}); err != nil {
		return result.FailRead[*domain.User](err)
	}

	var resp struct {
		User *domain.User `json:"user"`
	}
	vars := map[string]any{"accountId": sc.AccountID, "id": id}
	if err := m.cfg.Client.Do(ctx, ops.UserByID, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("user getById failed")
		return result.FailRead[*domain.User](err)
	}
	if resp.User == nil {
		return result.FailRead[*domain.User](fmt.Errorf("user %s not found", id))
	}

	m.cfg.Cache.WriteEntity("User", resp.User.ID, *resp.User)
	return result.OkRead(resp.User, 1)
}

// Current returns the user attached to the resolved account.
func (m *UserManager) Current(ctx context.Context, scope Scope) (res result.Read[*domain.User]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("user", "current", start, res.Err) }()

	sc := m.cfg.scope(scope)
	if err := requireScope(scopeField{"accountId", sc.AccountID}); err != nil {
		return result.FailRead[*domain.User](err)
	}

	var resp struct {
		CurrentUser *domain.User `json:"currentUser"`
	}
	vars := map[string]any{"accountId": sc.AccountID}
	if err := m.cfg.Client.Do(ctx, ops.CurrentUser, vars, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("user current failed")
		return result.FailRead[*domain.User](err)
	}
	if resp.CurrentUser == nil {
		return result.FailRead[*domain.User](fmt.Errorf("no user for account %s", sc.AccountID))
	}

	m.cfg.Cache.WriteEntity("User", resp.CurrentUser.ID, *resp.CurrentUser)
	return result.OkRead(resp.CurrentUser, 1)
}

func (m *UserManager) Update(ctx context.Context, input UserUpdateInput, scope Scope) (res result.Write[*domain.User]) {
	start := time.Now()
	defer func() { m.cfg.Metrics.ObserveOperation("user", "update", start, res.Err) }()

	if input.ID == "" {
		return result.FailWrite[*domain.User](&result.ValidationError{Reason: "Id is required"})
	}

	in := map[string]any{"id": input.ID}
	if input.Name != nil {
		in["name"] = *input.Name
	}
	if input.Phone != nil {
		in["phone"] = *input.Phone
	}
	if input.Email != nil {
		in["email"] = *input.Email
	}

	var resp struct {
		UserUpdate struct {
			User   *domain.User    `json:"user"`
			Errors []mutationError `json:"errors"`
		} `json:"userUpdate"`
	}
	if err := m.cfg.Client.Do(ctx, ops.UserUpdate, map[string]any{"input": in}, &resp); err != nil {
		m.cfg.Logger.WithError(err).Error("user update failed")
		return result.FailWrite[*domain.User](err)
	}
	if err := payloadErr(ops.UserUpdate, resp.UserUpdate.Errors); err != nil {
		return result.FailWrite[*domain.User](err)
	}
	if resp.UserUpdate.User == nil {
		return result.FailWrite[*domain.User](fmt.Errorf("%s: no user returned", ops.UserUpdate.Name))
	}

	u := *resp.UserUpdate.User
	m.cfg.Cache.WriteEntity("User", u.ID, u)
	return result.OkWrite(&u)
}
