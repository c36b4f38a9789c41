package optimistic

// Kind tags what an entity represents and which flags/counters matter for it
type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
	KindFollow  Kind = "follow"
)

// Flag and counter names shared by the store, the controller and the gateway
const (
	FlagLiked     = "liked"
	FlagSaved     = "saved"
	FlagHidden    = "hidden"
	FlagFollowing = "following"
	FlagEdited    = "edited"
	FlagDeleted   = "deleted"

	CounterLikes     = "likeCount"
	CounterSaves     = "saveCount"
	CounterComments  = "commentCount"
	CounterFollowers = "followerCount"
)

// Entity is the locally tracked, mutable state of a server-backed record
type Entity struct {
	ID       string
	Kind     Kind
	ParentID string // post id for comments, empty otherwise
	Flags    map[string]bool
	Counters map[string]int
}

// NewEntity creates an entity with empty flag and counter maps
func NewEntity(id string, kind Kind) Entity {
	return Entity{
		ID:       id,
		Kind:     kind,
		Flags:    make(map[string]bool),
		Counters: make(map[string]int),
	}
}

// Flag returns the value of a boolean flag (false when unset)
func (e Entity) Flag(name string) bool {
	return e.Flags[name]
}

// Counter returns the value of a counter (0 when unset)
func (e Entity) Counter(name string) int {
	return e.Counters[name]
}

// Clone returns a deep copy so callers can never reach the store's maps
func (e Entity) Clone() Entity {
	dup := e
	dup.Flags = make(map[string]bool, len(e.Flags))
	for k, v := range e.Flags {
		dup.Flags[k] = v
	}
	dup.Counters = make(map[string]int, len(e.Counters))
	for k, v := range e.Counters {
		dup.Counters[k] = v
	}
	return dup
}

// Patch is a partial update of an entity's flags and counters
type Patch struct {
	Flags    map[string]bool
	Counters map[string]int
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return len(p.Flags) == 0 && len(p.Counters) == 0
}

// apply merges the patch into e, clamping counters at zero
func (p Patch) apply(e *Entity) {
	if e.Flags == nil {
		e.Flags = make(map[string]bool, len(p.Flags))
	}
	if e.Counters == nil {
		e.Counters = make(map[string]int, len(p.Counters))
	}
	for k, v := range p.Flags {
		e.Flags[k] = v
	}
	for k, v := range p.Counters {
		e.Counters[k] = clampCount(v)
	}
}

// revert puts every field touched by p back to how it was in snapshot; fields
// the snapshot never had are dropped again
func (p Patch) revert(e *Entity, snapshot Entity) {
	for k := range p.Flags {
		if v, ok := snapshot.Flags[k]; ok {
			e.Flags[k] = v
		} else {
			delete(e.Flags, k)
		}
	}
	for k := range p.Counters {
		if v, ok := snapshot.Counters[k]; ok {
			e.Counters[k] = v
		} else {
			delete(e.Counters, k)
		}
	}
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
