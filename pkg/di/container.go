package di

import (
	"time"

	"github.com/goliatone/go-tenant-cache/cache"
	"github.com/goliatone/go-tenant-cache/entity"
	"github.com/goliatone/go-tenant-cache/resolvercache"
	"go.uber.org/zap"
)

// Container owns the long-lived snapshot cache instance for each entity
// kind. The application constructs one Container at startup and passes the
// per-kind caches to its resolvers, instead of reaching for package-level
// singletons.
type Container struct {
	config cache.Config
	logger *zap.Logger
	clock  func() time.Time

	members           *cache.SnapshotCache[entity.Member]
	families          *cache.SnapshotCache[entity.Family]
	carePlans         *cache.SnapshotCache[entity.CarePlan]
	discipleshipPlans *cache.SnapshotCache[entity.DiscipleshipPlan]
}

// Option configures optional container behavior.
type Option func(*Container)

// WithLogger sets the structured logger shared by the resolvers this
// container wires. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the clock of every cache the container owns.
// Intended for tests that need deterministic TTL behavior.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.clock = now
	}
}

// NewContainer creates a container holding one snapshot cache per entity
// kind, all sharing the provided configuration. The configuration is
// validated once, up front.
func NewContainer(config cache.Config, opts ...Option) (*Container, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Container{config: config, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	var cacheOpts []cache.Option
	if c.clock != nil {
		cacheOpts = append(cacheOpts, cache.WithClock(c.clock))
	}

	var err error
	if c.members, err = cache.New[entity.Member](config, cacheOpts...); err != nil {
		return nil, err
	}
	if c.families, err = cache.New[entity.Family](config, cacheOpts...); err != nil {
		return nil, err
	}
	if c.carePlans, err = cache.New[entity.CarePlan](config, cacheOpts...); err != nil {
		return nil, err
	}
	if c.discipleshipPlans, err = cache.New[entity.DiscipleshipPlan](config, cacheOpts...); err != nil {
		return nil, err
	}

	return c, nil
}

// NewContainerWithDefaults creates a container using the default cache
// configuration. Convenience constructor for typical use.
func NewContainerWithDefaults(opts ...Option) (*Container, error) {
	return NewContainer(cache.DefaultConfig(), opts...)
}

// Members returns the singleton member snapshot cache.
func (c *Container) Members() *cache.SnapshotCache[entity.Member] {
	return c.members
}

// Families returns the singleton family snapshot cache.
func (c *Container) Families() *cache.SnapshotCache[entity.Family] {
	return c.families
}

// CarePlans returns the singleton care plan snapshot cache.
func (c *Container) CarePlans() *cache.SnapshotCache[entity.CarePlan] {
	return c.carePlans
}

// DiscipleshipPlans returns the singleton discipleship plan snapshot cache.
func (c *Container) DiscipleshipPlans() *cache.SnapshotCache[entity.DiscipleshipPlan] {
	return c.discipleshipPlans
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// Logger returns the logger shared by resolvers wired through this container.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// ClearAll resets every cache the container owns. Meant for test teardown
// and global resets, never for request-serving code.
func (c *Container) ClearAll() {
	c.members.Clear()
	c.families.Clear()
	c.carePlans.Clear()
	c.discipleshipPlans.Clear()
}

// NewResolver wires a fetcher, a decryptor, and one of the container-owned
// caches into a read-through resolver carrying the container's logger.
//
// Since Go methods cannot have type parameters, this is a package-level
// function. Example: NewResolver(c, entity.KindMember, fetcher, decryptor, c.Members()).
func NewResolver[R, T any](c *Container, kind string, fetcher resolvercache.Fetcher[R], decryptor resolvercache.Decryptor[R, T], snapshots *cache.SnapshotCache[T]) *resolvercache.CachedResolver[R, T] {
	return resolvercache.New(kind, fetcher, decryptor, snapshots, resolvercache.WithLogger(c.logger))
}
