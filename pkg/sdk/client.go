package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/catalog/internal/clock"
	dbRedis "github.com/kailas-cloud/catalog/internal/db/redis"
	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/query/projection"
	"github.com/kailas-cloud/catalog/internal/domain/query/request"
	"github.com/kailas-cloud/catalog/internal/domain/query/result"
	itemrepo "github.com/kailas-cloud/catalog/internal/repository/item"
	"github.com/kailas-cloud/catalog/internal/repository/snapshot"
	cataloguc "github.com/kailas-cloud/catalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/catalog/internal/usecase/health"
	itemuc "github.com/kailas-cloud/catalog/internal/usecase/item"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultRedisKey         = "catalog:items"
	defaultSampleSize       = 1000
	defaultRandomSeed       = 42
)

// Internal interfaces for substitution in tests.
type catalogUseCase interface {
	List(ctx context.Context, spec *request.Spec) result.Page
	Get(ctx context.Context, id string, fields projection.Fields) (any, error)
	Related(ctx context.Context, id string, q *request.Related) (result.Related, error)
}

type itemUseCase interface {
	Create(ctx context.Context, in *itemuc.CreateInput) (domitem.Item, error)
}

type storePinger interface {
	Ping(ctx context.Context) error
	Len() int
}

// Client is the catalog SDK entry point.
type Client struct {
	store      storePinger
	catalogSvc catalogUseCase
	itemSvc    itemUseCase
	healthSvc  healthUseCase
	limits     request.Limits
	closeFn    func()
	obs        *observer
}

// New creates a Client and restores the catalog from the configured backend.
// The provided context bounds the readiness check and the initial load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:     driverMemory,
		key:        defaultRedisKey,
		sampleSize: defaultSampleSize,
		randomSeed: defaultRandomSeed,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	limits, err := cfg.limits()
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	persister, closeFn, err := createPersister(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := itemrepo.New(persister, itemrepo.SeedConfig{
		Size: cfg.sampleSize,
		Seed: cfg.randomSeed,
	})
	seeded, err := store.Load(ctx)
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("catalog: load items: %w", err)
	}
	if seeded && cfg.logger != nil {
		cfg.logger.Info("generated sample catalog",
			"items", store.Len(),
			"seed", cfg.randomSeed,
		)
	}

	return wireClient(store, limits, closeFn, obs), nil
}

func (c *clientConfig) limits() (request.Limits, error) {
	lim := request.DefaultLimits()
	if c.defaultPageSize > 0 {
		lim.DefaultPageSize = c.defaultPageSize
	}
	if c.maxPageSize > 0 {
		lim.MaxPageSize = c.maxPageSize
	}
	if lim.MaxPageSize < lim.DefaultPageSize {
		return request.Limits{}, fmt.Errorf(
			"catalog: max page size %d is below default page size %d",
			lim.MaxPageSize, lim.DefaultPageSize,
		)
	}
	return lim, nil
}

func createPersister(ctx context.Context, cfg *clientConfig) (itemrepo.Persister, func(), error) {
	switch cfg.driver {
	case driverMemory:
		return &memoryPersister{}, func() {}, nil
	case driverFile:
		if cfg.path == "" {
			return nil, nil, fmt.Errorf("catalog: file path required (use WithFile)")
		}
		return snapshot.NewFile(cfg.path), func() {}, nil
	case driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("catalog: create redis store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("catalog: redis not ready: %w", err)
		}
		return snapshot.NewRedis(s, cfg.key), s.Close, nil
	default:
		return nil, nil, fmt.Errorf("catalog: unknown driver %q", cfg.driver)
	}
}

func wireClient(store *itemrepo.Store, limits request.Limits, closeFn func(), obs *observer) *Client {
	return &Client{
		store:      store,
		catalogSvc: cataloguc.New(store),
		itemSvc:    itemuc.New(store, clock.Real{}),
		healthSvc:  healthuc.New(store, store),
		limits:     limits,
		closeFn:    closeFn,
		obs:        obs,
	}
}

// Close releases backend connections.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// Ping checks the persistence backend.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Len returns the number of items in the catalog.
func (c *Client) Len() int {
	return c.store.Len()
}

// Items returns the item query and creation service.
func (c *Client) Items() *ItemService {
	return &ItemService{
		catalog: c.catalogSvc,
		items:   c.itemSvc,
		limits:  c.limits,
		obs:     c.obs,
	}
}
