package api

import (
	"strings"

	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
)

const followPrefix = "user:"

// FollowEntityID is the store id of the follow relationship with username.
// The prefix keeps usernames from colliding with post or comment ids.
func FollowEntityID(username string) string {
	return followPrefix + username
}

// UsernameFromEntityID reverses FollowEntityID
func UsernameFromEntityID(id string) string {
	return strings.TrimPrefix(id, followPrefix)
}

// PostEntity converts a post into its tracked state
func PostEntity(p Post) optimistic.Entity {
	e := optimistic.NewEntity(p.ID, optimistic.KindPost)
	e.Flags[optimistic.FlagLiked] = p.IsLiked
	e.Flags[optimistic.FlagSaved] = p.IsSaved
	e.Flags[optimistic.FlagHidden] = p.IsHidden
	e.Counters[optimistic.CounterLikes] = p.LikeCount
	e.Counters[optimistic.CounterSaves] = p.SaveCount
	e.Counters[optimistic.CounterComments] = p.CommentCount
	return e
}

// CommentEntity converts a comment into its tracked state
func CommentEntity(c Comment) optimistic.Entity {
	e := optimistic.NewEntity(c.ID, optimistic.KindComment)
	e.ParentID = c.PostID
	e.Flags[optimistic.FlagLiked] = c.IsLiked
	e.Flags[optimistic.FlagEdited] = c.IsEdited
	e.Flags[optimistic.FlagDeleted] = c.IsDeleted
	e.Counters[optimistic.CounterLikes] = c.LikeCount
	return e
}

// FollowEntity converts a user profile into the follow relationship state
func FollowEntity(u User) optimistic.Entity {
	e := optimistic.NewEntity(FollowEntityID(u.Username), optimistic.KindFollow)
	e.Flags[optimistic.FlagFollowing] = u.IsFollowing
	e.Counters[optimistic.CounterFollowers] = u.FollowerCount
	return e
}
