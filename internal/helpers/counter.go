package helpers

import "fmt"

// DefaultMaxKeys bounds the number of distinct counters of one render.
const DefaultMaxKeys = 50

// Counters is the variable storage behind incrementVar. One instance lives for the
// duration of a single render and is not safe for concurrent use.
type Counters struct {
	max  int
	vars map[string]int
}

// NewCounters creates a storage holding at most maxKeys counters. A non-positive
// maxKeys selects DefaultMaxKeys.
func NewCounters(maxKeys int) *Counters {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	return &Counters{max: maxKeys, vars: make(map[string]int)}
}

// Increment returns 0 the first time key is seen and the previous value plus one after.
func (c *Counters) Increment(key interface{}) (int, error) {
	k, ok := key.(string)
	if !ok {
		return 0, invalid("incrementVar", "key must be a string")
	}

	if v, exists := c.vars[k]; exists {
		c.vars[k] = v + 1
		return v + 1, nil
	}

	if len(c.vars) >= c.max {
		return 0, invalid("incrementVar", fmt.Sprintf("unique keys in variable storage may not exceed %d in total", c.max))
	}
	c.vars[k] = 0
	return 0, nil
}

// Len returns the number of counters in use.
func (c *Counters) Len() int {
	return len(c.vars)
}
