package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zfogg/creatorhub/cli/pkg/api"
	clierrors "github.com/zfogg/creatorhub/cli/pkg/errors"
	"github.com/zfogg/creatorhub/cli/pkg/formatter"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
	"github.com/zfogg/creatorhub/cli/pkg/output"
)

// Looking up a single comment reads at most commentScanPages pages of
// commentScanLimit comments
const (
	commentScanLimit = 100
	commentScanPages = 10
)

// CommentService provides comment listing and mutations
type CommentService struct {
	Deps
}

// NewCommentService creates a new comment service
func NewCommentService(deps Deps) *CommentService {
	return &CommentService{Deps: deps}
}

// List prints one page of a post's comments
func (cs *CommentService) List(postID string, page int) error {
	if page < 1 {
		page = 1
	}
	end := cs.busy()
	resp, err := api.GetComments(postID, cs.pageSize(), (page-1)*cs.pageSize())
	end()
	if err != nil {
		return fmt.Errorf("failed to fetch comments: %w", err)
	}
	cs.seedComments(resp.Comments)

	if len(resp.Comments) == 0 {
		cs.Out.Info("No comments yet.")
		return nil
	}

	rows := make([][]string, 0, len(resp.Comments))
	for _, c := range resp.Comments {
		rows = append(rows, []string{
			c.ID,
			c.User.Username,
			formatter.Truncate(c.Content, 60),
			formatter.Count(c.LikeCount),
			formatter.Mark(c.IsLiked, "♥") + formatter.Mark(c.IsEdited, "✎"),
		})
	}
	return cs.Out.List([]string{"ID", "Author", "Comment", "Likes", "Flags"}, rows, resp)
}

// Add posts a comment on a post. Each call carries a fresh idempotency key
// so the server can drop a duplicate of this submission.
func (cs *CommentService) Add(ctx context.Context, postID, content, parentID string) (*api.Comment, error) {
	if err := cs.ensurePost(postID); err != nil {
		return nil, err
	}

	params := map[string]string{
		api.ParamContent:        content,
		api.ParamIdempotencyKey: uuid.NewString(),
	}
	if parentID != "" {
		params[api.ParamParentID] = parentID
	}
	out := cs.perform(ctx, optimistic.Request{
		EntityID: postID,
		Action:   optimistic.ActionCommentCreate,
		Params:   params,
	})
	if err := cs.settle("Comment", out); err != nil {
		return nil, err
	}

	comment, ok := out.Payload.(*api.Comment)
	if !ok || comment == nil {
		return nil, fmt.Errorf("comment posted but the server did not return it")
	}
	cs.store().Seed(api.CommentEntity(*comment))
	logger.Debug("Comment created", "comment_id", comment.ID, "post_id", postID)

	if cs.Out.Format() == output.FormatJSON {
		return comment, cs.Out.JSON(comment)
	}
	cs.Out.Success("✓ Comment posted (%s)", comment.ID)
	return comment, nil
}

// Edit replaces a comment's content
func (cs *CommentService) Edit(ctx context.Context, postID, commentID, content string) error {
	if err := cs.ensureComment(postID, commentID); err != nil {
		return err
	}

	out := cs.perform(ctx, optimistic.Request{
		EntityID: commentID,
		Action:   optimistic.ActionCommentEdit,
		Params:   map[string]string{api.ParamContent: content},
	})
	if err := cs.settle("Edit", out); err != nil {
		return err
	}

	if comment, ok := out.Payload.(*api.Comment); ok && cs.Out.Format() == output.FormatJSON {
		return cs.Out.JSON(comment)
	}
	cs.Out.Success("✓ Comment %s updated", commentID)
	return nil
}

// Delete removes a comment
func (cs *CommentService) Delete(ctx context.Context, postID, commentID string) error {
	if err := cs.ensureComment(postID, commentID); err != nil {
		return err
	}

	out := cs.perform(ctx, optimistic.Request{
		EntityID: commentID,
		Action:   optimistic.ActionCommentDelete,
	})
	if err := cs.settle("Delete", out); err != nil {
		return err
	}

	cs.Out.Success("✓ Comment %s deleted", commentID)
	return nil
}

// Like toggles the like on a comment
func (cs *CommentService) Like(ctx context.Context, postID, commentID string) error {
	if err := cs.ensureComment(postID, commentID); err != nil {
		return err
	}

	out := cs.perform(ctx, optimistic.Request{EntityID: commentID, Action: optimistic.ActionCommentLike})
	if err := cs.settle(toggleNoun(optimistic.ActionCommentLike), out); err != nil {
		return err
	}
	return printToggle(cs.Out, optimistic.ActionCommentLike, out.Entity)
}

// ensureComment loads the post and pages through its comments until
// commentID is tracked
func (cs *CommentService) ensureComment(postID, commentID string) error {
	if _, ok := cs.store().Get(commentID); ok {
		return nil
	}
	if err := cs.ensurePost(postID); err != nil {
		return err
	}
	defer cs.busy()()

	for page := 0; page < commentScanPages; page++ {
		resp, err := api.GetComments(postID, commentScanLimit, page*commentScanLimit)
		if err != nil {
			return fmt.Errorf("failed to fetch comments: %w", err)
		}
		cs.seedComments(resp.Comments)
		if _, ok := cs.store().Get(commentID); ok {
			return nil
		}
		if len(resp.Comments) < commentScanLimit {
			return clierrors.NotFoundError("Comment", commentID)
		}
	}
	logger.Debug("Comment lookup gave up", "post_id", postID, "comment_id", commentID, "pages", commentScanPages)
	return clierrors.NotFoundError("Comment", commentID).
		WithSuggestion(fmt.Sprintf("Only the first %d comments are searched.", commentScanPages*commentScanLimit))
}

func (cs *CommentService) seedComments(comments []api.Comment) {
	entities := make([]optimistic.Entity, 0, len(comments))
	for _, c := range comments {
		entities = append(entities, api.CommentEntity(c))
	}
	cs.store().Seed(entities...)
}
