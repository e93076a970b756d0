// Package memo provides a derived-value cache keyed by a single dependency.
//
// A Cache holds at most one (dependency, result) pair: the most recent one.
// Calling Get with a dependency equal to the held one returns the held result
// without invoking the compute function. Any other dependency recomputes and
// replaces the pair, so no eviction policy is needed.
//
// A Cache is not safe for concurrent use.
package memo

// Stats counts how a Cache has been used since creation.
type Stats struct {
	Computations int `json:"computations"`
	Hits         int `json:"hits"`
}

type Cache[D comparable, R any] struct {
	f func(D) R

	held bool
	dep  D
	res  R

	stats Stats
}

// New wraps a pure function f. f must be deterministic for equal inputs.
func New[D comparable, R any](f func(D) R) *Cache[D, R] {
	if f == nil {
		panic("memo: nil compute function")
	}
	return &Cache[D, R]{f: f}
}

// Get returns f(d), reusing the held result when d equals the last dependency.
func (c *Cache[D, R]) Get(d D) R {
	if c.held && c.dep == d {
		c.stats.Hits++
		return c.res
	}

	r := c.f(d)
	c.dep = d
	c.res = r
	c.held = true
	c.stats.Computations++
	return r
}

// Peek returns the held pair without computing anything.
func (c *Cache[D, R]) Peek() (D, R, bool) {
	return c.dep, c.res, c.held
}

// Reset drops the held pair. Counters survive a reset.
func (c *Cache[D, R]) Reset() {
	var zd D
	var zr R
	c.dep = zd
	c.res = zr
	c.held = false
}

func (c *Cache[D, R]) Stats() Stats {
	return c.stats
}
