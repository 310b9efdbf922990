// Package idgen issues unique, human-readable transaction identifiers.
package idgen

import (
	"strconv"
	"sync/atomic"
)

// seedFloor keeps generated ids clear of seed and fixture data.
const seedFloor = 1000

// Generator hands out strictly increasing ids per process. Safe for
// concurrent use; no two calls ever return the same value.
type Generator struct {
	counter atomic.Int64
}

func New() *Generator {
	g := &Generator{}
	g.counter.Store(seedFloor)
	return g
}

// Next returns prefix concatenated with the next counter value.
func (g *Generator) Next(prefix string) string {
	n := g.counter.Add(1) - 1
	return prefix + strconv.FormatInt(n, 10)
}
