package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
)

// Params read by the gateway for comment actions
const (
	ParamContent        = "content"
	ParamParentID       = "parent_id"
	ParamIdempotencyKey = "idempotency_key"
)

// Gateway runs optimistic mutations against the REST API.
//
// A non-2xx answer or a body with "success": false becomes a rejected result;
// only errors that never produced a response are returned as errors.
type Gateway struct{}

// NewGateway creates a REST gateway using the shared HTTP client
func NewGateway() *Gateway {
	return &Gateway{}
}

type toggleCalls struct {
	on  func(context.Context, string) (*MutationResponse, error)
	off func(context.Context, string) (*MutationResponse, error)
}

var toggleEndpoints = map[optimistic.Action]toggleCalls{
	optimistic.ActionLike:        {on: LikePost, off: UnlikePost},
	optimistic.ActionSave:        {on: SavePost, off: UnsavePost},
	optimistic.ActionHide:        {on: HidePost, off: UnhidePost},
	optimistic.ActionCommentLike: {on: LikeComment, off: UnlikeComment},
	optimistic.ActionFollow: {
		on: func(ctx context.Context, id string) (*MutationResponse, error) {
			return Follow(ctx, UsernameFromEntityID(id))
		},
		off: func(ctx context.Context, id string) (*MutationResponse, error) {
			return Unfollow(ctx, UsernameFromEntityID(id))
		},
	},
}

// Execute implements optimistic.Gateway
func (g *Gateway) Execute(ctx context.Context, action optimistic.Action, entityID string, params map[string]string) (optimistic.Result, error) {
	if calls, ok := toggleEndpoints[action]; ok {
		call := calls.on
		if params[optimistic.ParamDesired] == "false" {
			call = calls.off
		}
		resp, err := call(ctx, entityID)
		if err != nil {
			return failure(err)
		}
		return resp.result(), nil
	}

	switch action {
	case optimistic.ActionCommentCreate:
		content := strings.TrimSpace(params[ParamContent])
		if content == "" {
			return optimistic.Result{Message: "comment cannot be empty"}, nil
		}
		req := CreateCommentRequest{Content: content}
		if parent := params[ParamParentID]; parent != "" {
			req.ParentID = &parent
		}
		comment, err := CreateComment(ctx, entityID, req, params[ParamIdempotencyKey])
		if err != nil {
			return failure(err)
		}
		return optimistic.Result{OK: true, Payload: comment}, nil

	case optimistic.ActionCommentEdit:
		content := strings.TrimSpace(params[ParamContent])
		if content == "" {
			return optimistic.Result{Message: "comment cannot be empty"}, nil
		}
		comment, err := UpdateComment(ctx, entityID, UpdateCommentRequest{Content: content})
		if err != nil {
			return failure(err)
		}
		return optimistic.Result{
			OK:      true,
			Flags:   map[string]bool{optimistic.FlagEdited: true},
			Payload: comment,
		}, nil

	case optimistic.ActionCommentDelete:
		resp, err := DeleteComment(ctx, entityID)
		if err != nil {
			return failure(err)
		}
		return resp.result(), nil
	}

	return optimistic.Result{Message: fmt.Sprintf("unsupported action %q", action)}, nil
}

// failure splits server refusals from transport faults
func failure(err error) (optimistic.Result, error) {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return optimistic.Result{}, err
	}
	msg := apiErr.Message
	if msg == "" {
		msg = http.StatusText(apiErr.StatusCode)
	}
	code := apiErr.Code
	if apiErr.StatusCode == http.StatusConflict {
		code = optimistic.CodeConflict
	}
	return optimistic.Result{Message: msg, Code: code}, nil
}

// result converts the server's answer into authoritative store values
func (r *MutationResponse) result() optimistic.Result {
	if r.Success != nil && !*r.Success {
		return optimistic.Result{Message: r.Message}
	}

	res := optimistic.Result{OK: true, Flags: map[string]bool{}, Counters: map[string]int{}}
	setFlag := func(name string, v *bool) {
		if v != nil {
			res.Flags[name] = *v
		}
	}
	setCounter := func(name string, v *int) {
		if v != nil {
			res.Counters[name] = *v
		}
	}
	setFlag(optimistic.FlagLiked, r.IsLiked)
	setFlag(optimistic.FlagSaved, r.IsSaved)
	setFlag(optimistic.FlagHidden, r.IsHidden)
	setFlag(optimistic.FlagFollowing, r.IsFollowing)
	setCounter(optimistic.CounterLikes, r.LikeCount)
	setCounter(optimistic.CounterSaves, r.SaveCount)
	setCounter(optimistic.CounterComments, r.CommentCount)
	setCounter(optimistic.CounterFollowers, r.FollowerCount)
	return res
}

var _ optimistic.Gateway = (*Gateway)(nil)
