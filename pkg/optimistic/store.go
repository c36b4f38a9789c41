package optimistic

import (
	"sort"
	"sync"
)

// Op identifies the store operation that produced a change notification
type Op string

const (
	OpSeed   Op = "seed"
	OpPatch  Op = "patch"
	OpRemove Op = "remove"
)

// Change describes a completed store write
type Change struct {
	Op  Op
	IDs []string
}

// Listener is notified synchronously after every successful write
type Listener func(Change)

// Store holds the known flag/counter state of every visible entity. It is the
// only shared mutable state; readers always receive copies.
type Store struct {
	mu       sync.RWMutex
	entities map[string]*Entity

	listenersMu sync.RWMutex
	listeners   map[int]Listener
	nextID      int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		entities:  make(map[string]*Entity),
		listeners: make(map[int]Listener),
	}
}

// Seed inserts or overwrites entities by id. When the same id appears more
// than once the last one wins.
func (s *Store) Seed(entities ...Entity) {
	if len(entities) == 0 {
		return
	}

	s.mu.Lock()
	seen := make(map[string]struct{}, len(entities))
	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		dup := e.Clone()
		for k, v := range dup.Counters {
			dup.Counters[k] = clampCount(v)
		}
		s.entities[e.ID] = &dup
		if _, ok := seen[e.ID]; !ok {
			seen[e.ID] = struct{}{}
			ids = append(ids, e.ID)
		}
	}
	s.mu.Unlock()

	s.notify(Change{Op: OpSeed, IDs: ids})
}

// Get returns a copy of the entity, or false when the id is unknown
func (s *Store) Get(id string) (Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[id]
	if !ok {
		return Entity{}, false
	}
	return e.Clone(), true
}

// ApplyPatch merges patch into the entity and returns the pre-patch snapshot.
// An unknown id is a no-op that returns false.
func (s *Store) ApplyPatch(id string, patch Patch) (Entity, bool) {
	s.mu.Lock()
	e, ok := s.entities[id]
	if !ok {
		s.mu.Unlock()
		return Entity{}, false
	}
	previous := e.Clone()
	patch.apply(e)
	s.mu.Unlock()

	s.notify(Change{Op: OpPatch, IDs: []string{id}})
	return previous, true
}

// applyDerived computes a patch from the current state and applies it in one
// critical section, returning the pre-patch snapshot and the applied patch
func (s *Store) applyDerived(id string, derive func(Entity) Patch) (Entity, Patch, bool) {
	s.mu.Lock()
	e, ok := s.entities[id]
	if !ok {
		s.mu.Unlock()
		return Entity{}, Patch{}, false
	}
	previous := e.Clone()
	patch := derive(previous)
	patch.apply(e)
	s.mu.Unlock()

	s.notify(Change{Op: OpPatch, IDs: []string{id}})
	return previous, patch, true
}

// AddCounter moves a counter by delta under the store lock, clamping at zero
func (s *Store) AddCounter(id, counter string, delta int) (int, bool) {
	s.mu.Lock()
	e, ok := s.entities[id]
	if !ok {
		s.mu.Unlock()
		return 0, false
	}
	if e.Counters == nil {
		e.Counters = make(map[string]int)
	}
	next := clampCount(e.Counters[counter] + delta)
	e.Counters[counter] = next
	s.mu.Unlock()

	s.notify(Change{Op: OpPatch, IDs: []string{id}})
	return next, true
}

// revert restores the fields touched by patch to their snapshot values
func (s *Store) revert(id string, patch Patch, snapshot Entity) bool {
	s.mu.Lock()
	e, ok := s.entities[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	patch.revert(e, snapshot)
	s.mu.Unlock()

	s.notify(Change{Op: OpPatch, IDs: []string{id}})
	return true
}

// Remove deletes the entity. Removing an unknown id does nothing.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	_, ok := s.entities[id]
	delete(s.entities, id)
	s.mu.Unlock()

	if ok {
		s.notify(Change{Op: OpRemove, IDs: []string{id}})
	}
}

// Len returns the number of tracked entities
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// IDs returns the tracked ids of the given kind in sorted order. An empty kind
// matches everything.
func (s *Store) IDs(kind Kind) []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.entities))
	for id, e := range s.entities {
		if kind == "" || e.Kind == kind {
			ids = append(ids, id)
		}
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Subscribe registers a listener and returns the function that removes it
func (s *Store) Subscribe(listener Listener) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// notify runs outside the entity lock so listeners may read the store
func (s *Store) notify(change Change) {
	s.listenersMu.RLock()
	keys := make([]int, 0, len(s.listeners))
	for k := range s.listeners {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	callbacks := make([]Listener, 0, len(keys))
	for _, k := range keys {
		callbacks = append(callbacks, s.listeners[k])
	}
	s.listenersMu.RUnlock()

	for _, cb := range callbacks {
		cb(change)
	}
}
