package managers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"menuhub/internal/cache"
	"menuhub/internal/gqlclient"
	"menuhub/internal/metrics"
)

// Aggregate is the composition root: one instance per tenant session, every
// domain manager wired against the same client, cache, defaults and metrics.
type Aggregate struct {
	Products   *ProductManager
	Categories *CategoryManager
	Menu       *MenuManager
	Brands     *BrandManager
	Cities     *CityManager
	Points     *PointManager
	Orders     *OrderManager
	Users      *UserManager

	cache *cache.Cache
}

type AggregateOptions struct {
	Defaults Defaults
	// Cache overrides the default cache, letting callers extend the built-in
	// field policies (caller policies win on conflicting type/field keys).
	Cache  *cache.Cache
	Logger *logrus.Logger
	// Registerer receives the operation and cache metrics; nil disables
	// instrumentation.
	Registerer prometheus.Registerer
}

func NewAggregate(client *gqlclient.Client, opts AggregateOptions) *Aggregate {
	var mts *metrics.Metrics
	if opts.Registerer != nil {
		mts = metrics.New(opts.Registerer)
	}
	store := opts.Cache
	if store == nil {
		store = cache.New(cache.Options{Logger: opts.Logger, Metrics: mts})
	}

	cfg := Config{
		Client:   client,
		Cache:    store,
		Logger:   opts.Logger,
		Metrics:  mts,
		Defaults: opts.Defaults,
	}.normalized()

	products := NewProductManager(cfg)
	categories := NewCategoryManager(cfg)

	return &Aggregate{
		Products:   products,
		Categories: categories,
		Menu:       NewMenuManager(cfg, products, categories),
		Brands:     NewBrandManager(cfg),
		Cities:     NewCityManager(cfg),
		Points:     NewPointManager(cfg),
		Orders:     NewOrderManager(cfg),
		Users:      NewUserManager(cfg),
		cache:      store,
	}
}

// ---------------------------------------------------------------------------
// Cache utilities. Best effort: eviction is not transactional with the
// write that triggered it.
// ---------------------------------------------------------------------------

// EvictQueries drops the cached entries of the named query fields
// ("products", "categories", "menu", ...).
func (a *Aggregate) EvictQueries(fields ...string) {
	for _, f := range fields {
		a.cache.EvictQuery(f)
	}
}

func (a *Aggregate) EvictEntity(typename, id string) {
	a.cache.EvictEntity(typename, id)
}

// ResetCache clears every cached query and entity.
func (a *Aggregate) ResetCache() {
	a.cache.Reset()
}
