package service

import (
	"fmt"
	"time"

	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/formatter"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
)

// FeedService provides feed-related operations
type FeedService struct {
	Deps
}

// NewFeedService creates a new feed service
func NewFeedService(deps Deps) *FeedService {
	return &FeedService{Deps: deps}
}

// ValidFeedType reports whether the backend serves feedType
func ValidFeedType(feedType string) bool {
	switch feedType {
	case api.FeedTimeline, api.FeedTrending, api.FeedLatest:
		return true
	}
	return false
}

// Load fetches one page of a feed and seeds its posts into the store
func (fs *FeedService) Load(feedType string, page int) (*api.FeedResponse, error) {
	if !ValidFeedType(feedType) {
		return nil, fmt.Errorf("unknown feed %q (use timeline, trending or latest)", feedType)
	}
	logger.Debug("Loading feed", "type", feedType, "page", page)
	defer fs.busy()()

	feed, err := api.GetFeed(feedType, page, fs.pageSize())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s feed: %w", feedType, err)
	}
	seedPosts(fs.store(), feed.Posts)
	return feed, nil
}

// List prints one page of a feed
func (fs *FeedService) List(feedType string, page int) error {
	feed, err := fs.Load(feedType, page)
	if err != nil {
		return err
	}

	if len(feed.Posts) == 0 {
		fs.Out.Info("No posts in the %s feed.", feedType)
		return nil
	}

	if err := printPosts(fs.Deps, feed.Posts, feed); err != nil {
		return err
	}
	if feed.HasMore {
		fs.Out.Info("More posts: --page %d", page+1)
	}
	return nil
}

var postHeaders = []string{"ID", "Author", "Title", "Likes", "Saves", "Comments", "Flags", "Posted"}

// printPosts renders posts using the store's current state for each one
func printPosts(d Deps, posts []api.Post, data interface{}) error {
	now := time.Now()
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		e, ok := d.store().Get(p.ID)
		if !ok {
			e = api.PostEntity(p)
		}
		rows = append(rows, []string{
			p.ID,
			p.AuthorUsername,
			formatter.Truncate(p.Title, 40),
			formatter.Count(e.Counter(optimistic.CounterLikes)),
			formatter.Count(e.Counter(optimistic.CounterSaves)),
			formatter.Count(e.Counter(optimistic.CounterComments)),
			postFlags(e),
			formatter.Ago(p.CreatedAt, now),
		})
	}
	return d.Out.List(postHeaders, rows, data)
}

// postFlags renders liked/saved/hidden as a fixed-width marker column
func postFlags(e optimistic.Entity) string {
	return formatter.Mark(e.Flag(optimistic.FlagLiked), "♥") +
		formatter.Mark(e.Flag(optimistic.FlagSaved), "★") +
		formatter.Mark(e.Flag(optimistic.FlagHidden), "⊘")
}
