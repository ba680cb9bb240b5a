package catalog

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

const (
	driverMemory = "memory"
	driverFile   = "file"
	driverRedis  = "redis"
)

type clientConfig struct {
	driver   string // "memory", "file" or "redis"
	path     string
	addrs    []string
	password string
	key      string

	sampleSize int
	randomSeed int64

	defaultPageSize int
	maxPageSize     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithMemory keeps items in memory only. This is the default.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverMemory
	})
}

// WithFile persists the catalog as a JSON array in the file at path.
func WithFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverFile
		c.path = path
	})
}

// WithRedis persists the catalog under a single Redis key.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisKey overrides the Redis key holding the snapshot.
// Default: "catalog:items".
func WithRedisKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.key = key
	})
}

// WithSeed sets the size and random seed of the sample catalog generated
// when no snapshot exists. Defaults: 1000 items, seed 42.
func WithSeed(size int, seed int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.sampleSize = size
		c.randomSeed = seed
	})
}

// WithPageSize sets the default and maximum page size for list queries.
// Defaults: 25 and 100.
func WithPageSize(defaultSize, maxSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPageSize = defaultSize
		c.maxPageSize = maxSize
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
