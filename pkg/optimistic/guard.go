package optimistic

import "sync"

type guardKey struct {
	id     string
	action Action
}

// Guard keeps at most one mutation per (entity, action) pair in flight
type Guard struct {
	mu   sync.Mutex
	held map[guardKey]struct{}
}

// NewGuard creates an idle guard
func NewGuard() *Guard {
	return &Guard{held: make(map[guardKey]struct{})}
}

// TryAcquire marks the pair held. It returns false if it already was.
func (g *Guard) TryAcquire(id string, action Action) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := guardKey{id: id, action: action}
	if _, busy := g.held[key]; busy {
		return false
	}
	g.held[key] = struct{}{}
	return true
}

// Release clears the held marker for the pair
func (g *Guard) Release(id string, action Action) {
	g.mu.Lock()
	delete(g.held, guardKey{id: id, action: action})
	g.mu.Unlock()
}

// Held reports whether the pair is currently in flight
func (g *Guard) Held(id string, action Action) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.held[guardKey{id: id, action: action}]
	return busy
}
