package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
)

// Comment represents a post comment
type Comment struct {
	ID        string  `json:"id"`
	PostID    string  `json:"post_id"`
	UserID    string  `json:"user_id"`
	User      User    `json:"user,omitempty"`
	Content   string  `json:"content"`
	ParentID  *string `json:"parent_id,omitempty"`
	LikeCount int     `json:"like_count"`
	IsLiked   bool    `json:"is_liked"`
	IsEdited  bool    `json:"is_edited"`
	IsDeleted bool    `json:"is_deleted"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CreateCommentRequest is the request to create a comment
type CreateCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
}

// UpdateCommentRequest is the request to update a comment
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// CommentsListResponse represents a list of comments
type CommentsListResponse struct {
	Comments []Comment `json:"comments"`
	Meta     struct {
		Total  int `json:"total"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	} `json:"meta"`
}

// CreateComment creates a new comment on a post
// idempotencyKey lets the server drop a repeated submission of the same
// comment; it may be empty.
func CreateComment(ctx context.Context, postID string, req CreateCommentRequest, idempotencyKey string) (*Comment, error) {
	logger.Debug("Creating comment", "post_id", postID, "idempotency_key", idempotencyKey)

	var response struct {
		Comment Comment `json:"comment"`
	}

	r := client.GetClient().
		R().
		SetContext(ctx).
		SetBody(req)
	if idempotencyKey != "" {
		r.SetHeader("Idempotency-Key", idempotencyKey)
	}
	resp, err := r.Post(fmt.Sprintf("/api/v1/posts/%s/comments", postID))

	if err := decode(resp, err, &response); err != nil {
		return nil, err
	}

	return &response.Comment, nil
}

// GetComments retrieves comments on a post
func GetComments(postID string, limit, offset int) (*CommentsListResponse, error) {
	logger.Debug("Getting comments", "post_id", postID, "limit", limit, "offset", offset)

	var response CommentsListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetQueryParam("offset", strconv.Itoa(offset)).
		Get(fmt.Sprintf("/api/v1/posts/%s/comments", postID))

	if err := decode(resp, err, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// UpdateComment edits a comment's content
func UpdateComment(ctx context.Context, commentID string, req UpdateCommentRequest) (*Comment, error) {
	logger.Debug("Updating comment", "comment_id", commentID)

	var response struct {
		Comment Comment `json:"comment"`
	}

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetBody(req).
		Put(fmt.Sprintf("/api/v1/comments/%s", commentID))

	if err := decode(resp, err, &response); err != nil {
		return nil, err
	}

	return &response.Comment, nil
}

// DeleteComment deletes a comment
func DeleteComment(ctx context.Context, commentID string) (*MutationResponse, error) {
	logger.Debug("Deleting comment", "comment_id", commentID)
	return mutate(ctx, "DELETE", fmt.Sprintf("/api/v1/comments/%s", commentID), nil)
}

// LikeComment likes a comment
func LikeComment(ctx context.Context, commentID string) (*MutationResponse, error) {
	logger.Debug("Liking comment", "comment_id", commentID)
	return mutate(ctx, "POST", fmt.Sprintf("/api/v1/comments/%s/like", commentID), nil)
}

// UnlikeComment removes a like from a comment
func UnlikeComment(ctx context.Context, commentID string) (*MutationResponse, error) {
	logger.Debug("Unliking comment", "comment_id", commentID)
	return mutate(ctx, "DELETE", fmt.Sprintf("/api/v1/comments/%s/like", commentID), nil)
}
