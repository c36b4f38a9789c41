package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
)

func pageParams(page, pageSize int) map[string]string {
	return map[string]string{
		"page":      strconv.Itoa(page),
		"page_size": strconv.Itoa(pageSize),
	}
}

// GetPost retrieves a post by ID
func GetPost(postID string) (*Post, error) {
	logger.Debug("Fetching post", "post_id", postID)

	var response struct {
		Post Post `json:"post"`
	}

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/api/v1/posts/%s", postID))

	if err := decode(resp, err, &response); err != nil {
		return nil, err
	}

	return &response.Post, nil
}

// ListSavedPosts retrieves saved posts with pagination
func ListSavedPosts(page, pageSize int) (*PostListResponse, error) {
	logger.Debug("Listing saved posts", "page", page, "page_size", pageSize)
	return listPosts("/api/v1/posts/saved", page, pageSize)
}

// ListHiddenPosts retrieves posts the user hid from their feed
func ListHiddenPosts(page, pageSize int) (*PostListResponse, error) {
	logger.Debug("Listing hidden posts", "page", page, "page_size", pageSize)
	return listPosts("/api/v1/posts/hidden", page, pageSize)
}

func listPosts(path string, page, pageSize int) (*PostListResponse, error) {
	var response PostListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(pageParams(page, pageSize)).
		Get(path)

	if err := decode(resp, err, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// LikePost adds a like to a post
func LikePost(ctx context.Context, postID string) (*MutationResponse, error) {
	logger.Debug("Liking post", "post_id", postID)
	return mutate(ctx, "POST", fmt.Sprintf("/api/v1/posts/%s/like", postID), nil)
}

// UnlikePost removes a like from a post
func UnlikePost(ctx context.Context, postID string) (*MutationResponse, error) {
	logger.Debug("Unliking post", "post_id", postID)
	return mutate(ctx, "DELETE", fmt.Sprintf("/api/v1/posts/%s/like", postID), nil)
}

// SavePost saves a post
func SavePost(ctx context.Context, postID string) (*MutationResponse, error) {
	logger.Debug("Saving post", "post_id", postID)
	return mutate(ctx, "POST", fmt.Sprintf("/api/v1/posts/%s/save", postID), nil)
}

// UnsavePost unsaves a post
func UnsavePost(ctx context.Context, postID string) (*MutationResponse, error) {
	logger.Debug("Unsaving post", "post_id", postID)
	return mutate(ctx, "DELETE", fmt.Sprintf("/api/v1/posts/%s/save", postID), nil)
}

// HidePost hides a post from the user's feed
func HidePost(ctx context.Context, postID string) (*MutationResponse, error) {
	logger.Debug("Hiding post", "post_id", postID)
	return mutate(ctx, "POST", fmt.Sprintf("/api/v1/posts/%s/hide", postID), nil)
}

// UnhidePost puts a hidden post back into the feed
func UnhidePost(ctx context.Context, postID string) (*MutationResponse, error) {
	logger.Debug("Unhiding post", "post_id", postID)
	return mutate(ctx, "DELETE", fmt.Sprintf("/api/v1/posts/%s/hide", postID), nil)
}

// mutate sends a state-changing request and decodes the common mutation body.
// An empty 2xx body decodes to a zero MutationResponse.
func mutate(ctx context.Context, method, path string, body interface{}) (*MutationResponse, error) {
	req := client.GetClient().R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)

	var response MutationResponse
	if err := decode(resp, err, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
