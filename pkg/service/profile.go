package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/formatter"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
	"github.com/zfogg/creatorhub/cli/pkg/output"
)

// ProfileService provides profiles and the follow relationship
type ProfileService struct {
	Deps
}

// NewProfileService creates a new profile service
func NewProfileService(deps Deps) *ProfileService {
	return &ProfileService{Deps: deps}
}

// View prints a user's profile
func (s *ProfileService) View(username string) error {
	username = normalizeUsername(username)
	user, err := s.ensureFollow(username)
	if err != nil {
		return err
	}

	// the store may know a newer follow state than the profile response
	e, _ := s.store().Get(api.FollowEntityID(username))

	fields := []output.Field{
		{Key: "Username", Value: user.Username},
		{Key: "Display Name", Value: user.DisplayName},
		{Key: "Bio", Value: user.Bio},
		{Key: "Followers", Value: e.Counter(optimistic.CounterFollowers)},
		{Key: "Following", Value: user.FollowingCount},
		{Key: "Posts", Value: user.PostCount},
		{Key: "You follow", Value: e.Flag(optimistic.FlagFollowing)},
	}
	if user.IsVerified {
		fields = append(fields, output.Field{Key: "Verified", Value: "✓"})
	}
	if user.IsCreator {
		fields = append(fields, output.Field{Key: "Creator", Value: "✓"})
	}
	return s.Out.Record("Profile", fields, user)
}

// ToggleFollow follows username, or unfollows when already following
func (s *ProfileService) ToggleFollow(ctx context.Context, username string) error {
	out, err := s.Follow(ctx, username)
	if err != nil {
		return err
	}
	if err := s.settle(toggleNoun(optimistic.ActionFollow), out); err != nil {
		return err
	}
	return printToggle(s.Out, optimistic.ActionFollow, out.Entity)
}

// Follow flips the follow relationship with username, loading it first when
// the store does not track it yet
func (s *ProfileService) Follow(ctx context.Context, username string) (optimistic.Outcome, error) {
	username = normalizeUsername(username)
	if s.Session != nil && s.Session.Snapshot().Username == username {
		return optimistic.Outcome{}, fmt.Errorf("you cannot follow yourself")
	}

	id := api.FollowEntityID(username)
	if _, ok := s.store().Get(id); !ok {
		if _, err := s.ensureFollow(username); err != nil {
			return optimistic.Outcome{}, err
		}
	}
	return s.perform(ctx, optimistic.Request{EntityID: id, Action: optimistic.ActionFollow}), nil
}

// Followers lists who follows username
func (s *ProfileService) Followers(username string, page int) error {
	return s.listRelation("followers", api.GetFollowers, username, page)
}

// Following lists who username follows
func (s *ProfileService) Following(username string, page int) error {
	return s.listRelation("following", api.GetFollowing, username, page)
}

type relationList struct {
	Users      []api.User `json:"users"`
	TotalCount int        `json:"total_count"`
	Page       int        `json:"page"`
}

func (s *ProfileService) listRelation(relation string, fetch func(string, int, int) ([]api.User, int, error), username string, page int) error {
	username = normalizeUsername(username)
	end := s.busy()
	users, total, err := fetch(username, page, s.pageSize())
	end()
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", relation, err)
	}
	seedUsers(s.store(), users)

	if len(users) == 0 {
		s.Out.Info("No %s.", relation)
		return nil
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.Username,
			u.DisplayName,
			formatter.Count(u.FollowerCount),
			formatter.Mark(u.IsFollowing, "✓"),
		})
	}
	if err := s.Out.List([]string{"Username", "Name", "Followers", "Following"}, rows, relationList{Users: users, TotalCount: total, Page: page}); err != nil {
		return err
	}
	if s.Out.Format() != output.FormatJSON && total > len(users) {
		s.Out.Info("Showing %d of %s", len(users), formatter.Noun(total, "user"))
	}
	return nil
}

func normalizeUsername(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}
