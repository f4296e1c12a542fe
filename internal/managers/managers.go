// Package managers holds the domain façades of the data-access layer. Each
// manager binds one domain entity's network operations to a shared client,
// cache and default scoping configuration, applies client-side
// post-filtering the operations do not support natively, and wraps every
// outcome in the uniform result envelope. Nothing is thrown across the
// manager boundary: transport and validation failures come back inside the
// envelope.
package managers

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"menuhub/internal/cache"
	"menuhub/internal/gqlclient"
	"menuhub/internal/metrics"
	"menuhub/internal/ops"
	"menuhub/internal/result"
)

// Defaults are the per-manager scoping identifiers resolved against
// call-site arguments: an explicit argument always wins, the default fills
// the gap. Changing defaults means constructing a new manager.
type Defaults struct {
	BrandID    string
	PointID    string
	OrderType  string
	CityID     string
	AccountID  string
	EmployeeID string
}

// Scope carries the call-site scoping overrides. The zero value defers
// entirely to the manager's defaults.
type Scope struct {
	BrandID    string
	PointID    string
	OrderType  string
	CityID     string
	AccountID  string
	EmployeeID string
}

// Config is the immutable construction record shared by every manager.
// Construction never validates: defaults may be legitimately absent for
// operations that do not need them.
type Config struct {
	Client   *gqlclient.Client
	Cache    *cache.Cache
	Logger   *logrus.Logger
	Metrics  *metrics.Metrics
	Defaults Defaults
}

// normalized fills the optional collaborators so manager code can use them
// unconditionally.
func (c Config) normalized() Config {
	if c.Logger == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		c.Logger = log
	}
	if c.Cache == nil {
		c.Cache = cache.New(cache.Options{})
	}
	return c
}

// scope resolves call-site overrides against the configured defaults.
func (c Config) scope(s Scope) Scope {
	d := c.Defaults
	return Scope{
		BrandID:    pick(s.BrandID, d.BrandID),
		PointID:    pick(s.PointID, d.PointID),
		OrderType:  pick(s.OrderType, d.OrderType),
		CityID:     pick(s.CityID, d.CityID),
		AccountID:  pick(s.AccountID, d.AccountID),
		EmployeeID: pick(s.EmployeeID, d.EmployeeID),
	}
}

func pick(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	return fallback
}

type scopeField struct {
	name  string
	value string
}

// requireScope guards against issuing network calls with missing scoping
// identifiers, which could silently return incorrect cross-tenant data. The
// returned ConfigurationError names every missing field.
func requireScope(fields ...scopeField) error {
	var missing []string
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &result.ConfigurationError{Missing: missing}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Shared network payload shapes
// ---------------------------------------------------------------------------

type listPayload[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type mutationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// payloadErr converts a mutation-level error list into a single descriptive
// error, mirroring how the platform surfaces structured failures.
func payloadErr(op ops.Operation, errs []mutationError) error {
	if len(errs) == 0 {
		return nil
	}
	return &result.NetworkError{Op: op.Name, Err: errors.New(errs[0].Message)}
}
