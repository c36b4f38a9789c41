package service

import (
	"context"
	"fmt"

	"github.com/zfogg/creatorhub/cli/pkg/api"
	clierrors "github.com/zfogg/creatorhub/cli/pkg/errors"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
	"github.com/zfogg/creatorhub/cli/pkg/output"
	"github.com/zfogg/creatorhub/cli/pkg/session"
)

const defaultPageSize = 20

// Deps are the collaborators every service shares
type Deps struct {
	Controller *optimistic.Controller
	Session    *session.State
	Out        *output.Printer
	PageSize   int
}

func (d Deps) pageSize() int {
	if d.PageSize > 0 {
		return d.PageSize
	}
	return defaultPageSize
}

func (d Deps) store() *optimistic.Store {
	return d.Controller.Store()
}

// busy marks a request in flight on the session; call the result when done
func (d Deps) busy() func() {
	if d.Session == nil {
		return func() {}
	}
	return d.Session.Begin()
}

// ensurePost seeds the post into the store unless it is already tracked
func (d Deps) ensurePost(postID string) error {
	if _, ok := d.store().Get(postID); ok {
		return nil
	}
	defer d.busy()()

	post, err := api.GetPost(postID)
	if err != nil {
		return fmt.Errorf("failed to fetch post: %w", err)
	}
	d.store().Seed(api.PostEntity(*post))
	return nil
}

// ensureFollow seeds the follow relationship with username from their profile
func (d Deps) ensureFollow(username string) (*api.User, error) {
	defer d.busy()()

	user, err := api.GetUserProfile(username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if _, ok := d.store().Get(api.FollowEntityID(username)); !ok {
		d.store().Seed(api.FollowEntity(*user))
	}
	return user, nil
}

// perform runs a mutation through the controller while marking the session busy
func (d Deps) perform(ctx context.Context, req optimistic.Request) optimistic.Outcome {
	defer d.busy()()
	return d.Controller.Perform(ctx, req)
}

// settle turns a mutation outcome into the command's error
func (d Deps) settle(what string, out optimistic.Outcome) error {
	if cliErr := clierrors.MutationError(what, out); cliErr != nil {
		logger.Debug("Mutation failed", "what", what, "status", out.Status, "message", out.ErrorMessage)
		return cliErr
	}
	return nil
}

func seedPosts(store *optimistic.Store, posts []api.Post) {
	entities := make([]optimistic.Entity, 0, len(posts))
	for _, p := range posts {
		entities = append(entities, api.PostEntity(p))
	}
	store.Seed(entities...)
}

func seedUsers(store *optimistic.Store, users []api.User) {
	entities := make([]optimistic.Entity, 0, len(users))
	for _, u := range users {
		entities = append(entities, api.FollowEntity(u))
	}
	store.Seed(entities...)
}
