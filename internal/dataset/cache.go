package dataset

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sells-group/ev-dashboard/internal/model"
)

// Status is the lifecycle of a Cache.
type Status int

const (
	// StatusIdle means no load has been requested yet.
	StatusIdle Status = iota
	// StatusLoading means a load is in flight.
	StatusLoading
	// StatusReady means rows are available.
	StatusReady
	// StatusFailed means the load failed; the error is kept for the session.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// LoadFunc produces the dataset.
type LoadFunc func(ctx context.Context) ([]model.Vehicle, error)

// Cache loads the dataset at most once per process. Concurrent Get calls
// share one in-flight load and later calls get the memoized outcome,
// including a failure.
type Cache struct {
	load  LoadFunc
	group singleflight.Group

	mu     sync.Mutex
	status Status
	rows   []model.Vehicle
	err    error
}

// NewCache wraps a load function. Nothing is loaded until Get.
func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load}
}

// Get returns the dataset, triggering the load on first use. The returned
// slice is shared and must not be modified.
func (c *Cache) Get(ctx context.Context) ([]model.Vehicle, error) {
	c.mu.Lock()
	switch c.status {
	case StatusReady, StatusFailed:
		rows, err := c.rows, c.err
		c.mu.Unlock()
		return rows, err
	}
	c.status = StatusLoading
	c.mu.Unlock()

	v, err, _ := c.group.Do("dataset", func() (any, error) {
		c.mu.Lock()
		if c.status == StatusReady || c.status == StatusFailed {
			rows, err := c.rows, c.err
			c.mu.Unlock()
			return rows, err
		}
		c.mu.Unlock()

		rows, err := c.load(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.rows, c.err = rows, err
		c.status = StatusReady
		if err != nil {
			c.rows = nil
			c.status = StatusFailed
		}
		return c.rows, c.err
	})
	rows, _ := v.([]model.Vehicle)
	return rows, err
}

// Status reports where the cache is in its lifecycle.
func (c *Cache) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
