package api

import (
	"fmt"

	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
)

// Feed types understood by the backend
const (
	FeedTimeline = "timeline"
	FeedTrending = "trending"
	FeedLatest   = "latest"
)

// GetFeed retrieves a feed by type with pagination
func GetFeed(feedType string, page, pageSize int) (*FeedResponse, error) {
	logger.Debug("Fetching feed", "type", feedType, "page", page)

	var response FeedResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(pageParams(page, pageSize)).
		Get(fmt.Sprintf("/api/v1/feed/%s", feedType))

	if err := decode(resp, err, &response); err != nil {
		return nil, err
	}

	return &response, nil
}
