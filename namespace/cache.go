package namespace

import "sync"

// Cache is the instance-local slot table holding namespace objects bound to
// a single host instance. Host types embed a Cache by value; the zero value
// is ready for use. The cache lives exactly as long as the host instance and
// is never shared between instances.
type Cache struct {
	mu     sync.RWMutex
	values map[string]any
}

// get returns the bound value for name, if present.
func (c *Cache) get(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[name]

	return v, ok
}

// bind stores the result of build under name, constructing at most once even
// when racing accessors hit an unbound name concurrently. The write lock is
// held across build; a second goroutine re-checks after acquiring it and
// returns the already-bound value. Nothing is stored when build fails.
func (c *Cache) bind(name string, build func() (any, error)) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.values[name]; ok {
		return v, nil
	}

	v, err := build()
	if err != nil {
		return nil, err
	}

	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[name] = v

	return v, nil
}
