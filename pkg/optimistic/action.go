package optimistic

// Action is a mutation the backend knows how to perform
type Action string

const (
	ActionLike          Action = "like"
	ActionSave          Action = "save"
	ActionHide          Action = "hide"
	ActionFollow        Action = "follow"
	ActionCommentCreate Action = "comment_create"
	ActionCommentEdit   Action = "comment_edit"
	ActionCommentDelete Action = "comment_delete"
	ActionCommentLike   Action = "comment_like"
)

// pairing links a toggle flag to the counter that moves with it
type pairing struct {
	flag    string
	counter string // empty when the flag has no counter
}

var toggles = map[Action]pairing{
	ActionLike:        {flag: FlagLiked, counter: CounterLikes},
	ActionSave:        {flag: FlagSaved, counter: CounterSaves},
	ActionHide:        {flag: FlagHidden},
	ActionFollow:      {flag: FlagFollowing, counter: CounterFollowers},
	ActionCommentLike: {flag: FlagLiked, counter: CounterLikes},
}

// IsToggle reports whether the action flips a boolean flag
func (a Action) IsToggle() bool {
	_, ok := toggles[a]
	return ok
}

// ToggleFlag returns the flag an action flips, or "" for non-toggle actions
func (a Action) ToggleFlag() string {
	return toggles[a].flag
}

// Valid reports whether a is one of the known actions
func (a Action) Valid() bool {
	switch a {
	case ActionLike, ActionSave, ActionHide, ActionFollow,
		ActionCommentCreate, ActionCommentEdit, ActionCommentDelete, ActionCommentLike:
		return true
	}
	return false
}

// Predict derives the optimistic patch for an action from the entity's
// current state
func Predict(action Action, current Entity) Patch {
	if p, ok := toggles[action]; ok {
		wasSet := current.Flag(p.flag)
		patch := Patch{Flags: map[string]bool{p.flag: !wasSet}}
		if p.counter != "" {
			count := current.Counter(p.counter)
			if wasSet {
				count = clampCount(count - 1)
			} else {
				count++
			}
			patch.Counters = map[string]int{p.counter: count}
		}
		return patch
	}

	switch action {
	case ActionCommentCreate:
		return Patch{Counters: map[string]int{CounterComments: current.Counter(CounterComments) + 1}}
	case ActionCommentEdit:
		return Patch{Flags: map[string]bool{FlagEdited: true}}
	case ActionCommentDelete:
		return Patch{Flags: map[string]bool{FlagDeleted: true}}
	}
	return Patch{}
}
