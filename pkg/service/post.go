package service

import (
	"context"
	"fmt"

	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/formatter"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
	"github.com/zfogg/creatorhub/cli/pkg/output"
)

// PostService provides post viewing and the like/save/hide toggles
type PostService struct {
	Deps
}

// NewPostService creates a new post service
func NewPostService(deps Deps) *PostService {
	return &PostService{Deps: deps}
}

// View fetches a post, seeds it and prints it
func (ps *PostService) View(postID string) error {
	logger.Debug("Viewing post", "post_id", postID)
	end := ps.busy()
	post, err := api.GetPost(postID)
	end()
	if err != nil {
		return fmt.Errorf("failed to fetch post: %w", err)
	}
	ps.store().Seed(api.PostEntity(*post))

	fields := []output.Field{
		{Key: "ID", Value: post.ID},
		{Key: "Author", Value: post.AuthorUsername},
		{Key: "Title", Value: post.Title},
		{Key: "Description", Value: post.Description},
		{Key: "Likes", Value: post.LikeCount},
		{Key: "Saves", Value: post.SaveCount},
		{Key: "Comments", Value: post.CommentCount},
		{Key: "Liked", Value: post.IsLiked},
		{Key: "Saved", Value: post.IsSaved},
	}
	if post.IsPremium {
		fields = append(fields, output.Field{Key: "Premium", Value: true})
	}
	return ps.Out.Record("Post", fields, post)
}

// Like toggles the like on a post
func (ps *PostService) Like(ctx context.Context, postID string) error {
	return ps.toggle(ctx, postID, optimistic.ActionLike)
}

// Save toggles the bookmark on a post
func (ps *PostService) Save(ctx context.Context, postID string) error {
	return ps.toggle(ctx, postID, optimistic.ActionSave)
}

// Hide toggles whether a post is hidden from feeds
func (ps *PostService) Hide(ctx context.Context, postID string) error {
	return ps.toggle(ctx, postID, optimistic.ActionHide)
}

func (ps *PostService) toggle(ctx context.Context, postID string, action optimistic.Action) error {
	if err := ps.ensurePost(postID); err != nil {
		return err
	}

	out := ps.perform(ctx, optimistic.Request{EntityID: postID, Action: action})
	if err := ps.settle(toggleNoun(action), out); err != nil {
		return err
	}
	return printToggle(ps.Out, action, out.Entity)
}

// Saved lists the user's saved posts
func (ps *PostService) Saved(page int) error {
	return ps.listPosts("saved", api.ListSavedPosts, page)
}

// Hidden lists the posts the user has hidden
func (ps *PostService) Hidden(page int) error {
	return ps.listPosts("hidden", api.ListHiddenPosts, page)
}

func (ps *PostService) listPosts(what string, fetch func(page, pageSize int) (*api.PostListResponse, error), page int) error {
	end := ps.busy()
	list, err := fetch(page, ps.pageSize())
	end()
	if err != nil {
		return fmt.Errorf("failed to fetch %s posts: %w", what, err)
	}
	seedPosts(ps.store(), list.Posts)

	if len(list.Posts) == 0 {
		ps.Out.Info("No %s posts.", what)
		return nil
	}
	return printPosts(ps.Deps, list.Posts, list)
}

// Unhide makes a hidden post visible again. Once the server confirms, the
// post leaves the store since it no longer belongs to the hidden list.
func (ps *PostService) Unhide(ctx context.Context, postID string) error {
	if err := ps.ensurePost(postID); err != nil {
		return err
	}

	out := ps.perform(ctx, optimistic.Request{
		EntityID: postID,
		Action:   optimistic.ActionHide,
		Patch:    &optimistic.Patch{Flags: map[string]bool{optimistic.FlagHidden: false}},
	})
	if err := ps.settle("Unhide", out); err != nil {
		return err
	}
	ps.store().Remove(postID)

	ps.Out.Success("✓ Post %s is visible again", postID)
	return nil
}

func toggleNoun(action optimistic.Action) string {
	switch action {
	case optimistic.ActionLike:
		return "Like"
	case optimistic.ActionSave:
		return "Save"
	case optimistic.ActionHide:
		return "Hide"
	case optimistic.ActionFollow:
		return "Follow"
	case optimistic.ActionCommentLike:
		return "Comment like"
	}
	return string(action)
}

// toggleResult is the JSON shape of a settled toggle
type toggleResult struct {
	ID       string          `json:"id"`
	Action   string          `json:"action"`
	Flags    map[string]bool `json:"flags"`
	Counters map[string]int  `json:"counters"`
}

// printToggle reports the settled state, e.g. "♥ Liked post p1 (13 likes)"
func printToggle(out *output.Printer, action optimistic.Action, e optimistic.Entity) error {
	if out.Format() == output.FormatJSON {
		return out.JSON(toggleResult{ID: e.ID, Action: string(action), Flags: e.Flags, Counters: e.Counters})
	}

	on := e.Flag(action.ToggleFlag())
	var msg string
	switch action {
	case optimistic.ActionLike:
		msg = fmt.Sprintf("%s post %s (%s)", pick(on, "♥ Liked", "Unliked"), e.ID, formatter.Noun(e.Counter(optimistic.CounterLikes), "like"))
	case optimistic.ActionSave:
		msg = fmt.Sprintf("%s post %s (%s)", pick(on, "★ Saved", "Removed from saved:"), e.ID, formatter.Noun(e.Counter(optimistic.CounterSaves), "save"))
	case optimistic.ActionHide:
		msg = fmt.Sprintf("%s post %s", pick(on, "Hid", "Unhid"), e.ID)
	case optimistic.ActionFollow:
		msg = fmt.Sprintf("%s %s (%s)", pick(on, "✓ Following", "Unfollowed"), api.UsernameFromEntityID(e.ID), formatter.Noun(e.Counter(optimistic.CounterFollowers), "follower"))
	case optimistic.ActionCommentLike:
		msg = fmt.Sprintf("%s comment %s (%s)", pick(on, "♥ Liked", "Unliked"), e.ID, formatter.Noun(e.Counter(optimistic.CounterLikes), "like"))
	default:
		msg = fmt.Sprintf("%s %s", action, e.ID)
	}
	out.Success("%s", msg)
	return nil
}

func pick(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}
