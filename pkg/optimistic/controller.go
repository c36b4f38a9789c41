package optimistic

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/zfogg/creatorhub/cli/pkg/logger"
)

// Observer is told about every settled mutation, including skipped ones
type Observer interface {
	ObserveMutation(action Action, status Status, elapsed time.Duration)
}

// Option configures a Controller
type Option func(*Controller)

// WithGuard shares an in-flight guard between controllers
func WithGuard(g *Guard) Option {
	return func(c *Controller) {
		c.guard = g
	}
}

// WithObserver adds an observer
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, o)
	}
}

// Controller applies predicted changes immediately, confirms them with the
// backend and rolls them back when the backend disagrees or is unreachable
type Controller struct {
	store     *Store
	guard     *Guard
	gateway   Gateway
	observers []Observer
}

// NewController creates a controller over store and gateway
func NewController(store *Store, gateway Gateway, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		gateway: gateway,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.guard == nil {
		c.guard = NewGuard()
	}
	return c
}

// Store returns the store the controller mutates
func (c *Controller) Store() *Store {
	return c.store
}

// Toggle flips the action's flag on the entity
func (c *Controller) Toggle(ctx context.Context, entityID string, action Action) Outcome {
	return c.Perform(ctx, Request{EntityID: entityID, Action: action})
}

// Perform runs one optimistic mutation to completion
func (c *Controller) Perform(ctx context.Context, req Request) (out Outcome) {
	start := time.Now()
	defer func() {
		logger.Debug("Mutation settled",
			"action", req.Action,
			"entity_id", req.EntityID,
			"status", out.Status,
			"elapsed_ms", time.Since(start).Milliseconds())
		for _, o := range c.observers {
			o.ObserveMutation(req.Action, out.Status, time.Since(start))
		}
	}()

	if !c.guard.TryAcquire(req.EntityID, req.Action) {
		return Outcome{Status: StatusBusy, ErrorMessage: busyMessage}
	}
	defer c.guard.Release(req.EntityID, req.Action)

	snapshot, patch, ok := c.store.applyDerived(req.EntityID, func(current Entity) Patch {
		if req.Patch != nil {
			return *req.Patch
		}
		return Predict(req.Action, current)
	})
	if !ok {
		return Outcome{Status: StatusNotFound, ErrorMessage: notFoundMessage}
	}

	res, err := c.execute(ctx, req, withDesired(req, patch))
	if err != nil {
		c.store.revert(req.EntityID, patch, snapshot)
		logger.Warn("Mutation rolled back", "action", req.Action, "entity_id", req.EntityID, "error", err)
		return c.settled(req.EntityID, Outcome{Status: StatusTransportFailure, ErrorMessage: err.Error()})
	}
	if !res.OK {
		c.store.revert(req.EntityID, patch, snapshot)
		msg := res.Message
		if msg == "" {
			msg = rejectedMessage
		}
		logger.Debug("Mutation rejected", "action", req.Action, "entity_id", req.EntityID, "message", msg)
		return c.settled(req.EntityID, Outcome{Status: StatusRejected, ErrorMessage: msg, ErrorCode: res.Code})
	}

	if req.Action == ActionCommentDelete {
		c.store.Remove(req.EntityID)
		if snapshot.ParentID != "" {
			c.settleParentCount(snapshot.ParentID, res)
		}
		return Outcome{Status: StatusOK, Payload: res.Payload}
	}

	if server := (Patch{Flags: res.Flags, Counters: res.Counters}); !server.IsEmpty() {
		c.store.ApplyPatch(req.EntityID, server)
	}

	return c.settled(req.EntityID, Outcome{Status: StatusOK, Payload: res.Payload})
}

// settleParentCount updates the post a deleted comment belonged to. The
// server's comment count wins; without one the count drops by one.
func (c *Controller) settleParentCount(parentID string, res Result) {
	if n, ok := res.Counters[CounterComments]; ok {
		c.store.ApplyPatch(parentID, Patch{Counters: map[string]int{CounterComments: n}})
		return
	}
	c.store.AddCounter(parentID, CounterComments, -1)
}

// execute calls the gateway; a panic inside it counts as a transport fault
func (c *Controller) execute(ctx context.Context, req Request, params map[string]string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gateway panic: %v", r)
		}
	}()
	return c.gateway.Execute(ctx, req.Action, req.EntityID, params)
}

// withDesired copies the request params and records the flag value a toggle
// is moving to, so the gateway can pick between e.g. like and unlike
func withDesired(req Request, applied Patch) map[string]string {
	params := make(map[string]string, len(req.Params)+1)
	for k, v := range req.Params {
		params[k] = v
	}
	if flag := req.Action.ToggleFlag(); flag != "" {
		if v, ok := applied.Flags[flag]; ok {
			params[ParamDesired] = strconv.FormatBool(v)
		}
	}
	return params
}

func (c *Controller) settled(id string, out Outcome) Outcome {
	if e, ok := c.store.Get(id); ok {
		out.Entity = e
	}
	return out
}
