package resilience

import "sync"

// Gate serializes critical sections per key. The production snapshot replace
// is not safe under interleaving, so every sync request for the same target
// table runs strictly one after another.
type Gate struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// Acquire blocks until the caller owns the key and returns the release func.
func (g *Gate) Acquire(key string) func() {
	g.mu.Lock()
	if g.locks == nil {
		g.locks = make(map[string]*entry)
	}
	e, ok := g.locks[key]
	if !ok {
		e = &entry{}
		g.locks[key] = e
	}
	e.refs++
	g.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		g.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(g.locks, key)
		}
		g.mu.Unlock()
	}
}
