package api

import (
	"testing"

	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
)

func TestPostEntity(t *testing.T) {
	e := PostEntity(Post{ID: "p1", IsLiked: true, LikeCount: 4, SaveCount: 1, CommentCount: 2})

	if e.ID != "p1" || e.Kind != optimistic.KindPost {
		t.Fatalf("unexpected identity %+v", e)
	}
	if !e.Flag(optimistic.FlagLiked) || e.Flag(optimistic.FlagSaved) || e.Flag(optimistic.FlagHidden) {
		t.Errorf("unexpected flags %v", e.Flags)
	}
	if e.Counter(optimistic.CounterLikes) != 4 || e.Counter(optimistic.CounterSaves) != 1 || e.Counter(optimistic.CounterComments) != 2 {
		t.Errorf("unexpected counters %v", e.Counters)
	}
}

func TestCommentEntityKeepsParent(t *testing.T) {
	e := CommentEntity(Comment{ID: "c1", PostID: "p1", IsEdited: true, LikeCount: 3})

	if e.Kind != optimistic.KindComment || e.ParentID != "p1" {
		t.Errorf("unexpected identity %+v", e)
	}
	if !e.Flag(optimistic.FlagEdited) || e.Counter(optimistic.CounterLikes) != 3 {
		t.Errorf("unexpected state %+v", e)
	}
}

func TestFollowEntityID(t *testing.T) {
	e := FollowEntity(User{Username: "alice", IsFollowing: true, FollowerCount: 10})

	if e.ID != "user:alice" || e.Kind != optimistic.KindFollow {
		t.Errorf("unexpected identity %+v", e)
	}
	if UsernameFromEntityID(e.ID) != "alice" {
		t.Errorf("round trip failed: %s", UsernameFromEntityID(e.ID))
	}
	if !e.Flag(optimistic.FlagFollowing) || e.Counter(optimistic.CounterFollowers) != 10 {
		t.Errorf("unexpected state %+v", e)
	}
}
