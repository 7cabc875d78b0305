package cache

import "github.com/guttosm/quantity-service/internal/repository"

// Cache defines the interface for constraint-profile cache operations,
// keyed by product ID.
type Cache interface {
	Get(productID string) (repository.ConstraintProfile, bool)
	Set(productID string, profile repository.ConstraintProfile)
	Invalidate(productID string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
