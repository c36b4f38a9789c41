package optimistic

// Status classifies how a mutation ended
type Status string

const (
	StatusOK               Status = "ok"
	StatusBusy             Status = "busy"
	StatusNotFound         Status = "not_found"
	StatusRejected         Status = "rejected"
	StatusTransportFailure Status = "transport_failure"
)

const (
	busyMessage     = "busy"
	notFoundMessage = "not found"
	rejectedMessage = "request rejected"
)

// Request asks the controller to mutate one entity
type Request struct {
	EntityID string
	Action   Action
	// Patch overrides the predicted change. When nil the prediction is
	// derived from the action and the entity's current state.
	Patch  *Patch
	Params map[string]string
}

// Outcome is what the caller gets back for user-facing messaging
type Outcome struct {
	Status       Status
	ErrorMessage string
	// ErrorCode is the gateway's rejection code, if it gave one
	ErrorCode string
	// Entity is the entity's state once the mutation settled. It is the zero
	// value for NotFound and for entities removed on success.
	Entity  Entity
	Payload interface{}
}

// OK reports whether the backend confirmed the mutation
func (o Outcome) OK() bool {
	return o.Status == StatusOK
}

// RolledBack reports whether the optimistic change was undone
func (o Outcome) RolledBack() bool {
	return o.Status == StatusRejected || o.Status == StatusTransportFailure
}
