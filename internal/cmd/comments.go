package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zfogg/creatorhub/cli/pkg/service"
)

var (
	commentPage    int
	commentReplyTo string
	commentText    string
	commentYes     bool
)

var commentCmd = &cobra.Command{
	Use:     "comment",
	Aliases: []string{"comments"},
	Short:   "Comment commands",
	Long:    "List, post, edit, delete and like comments on a post",
}

var commentListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "List comments on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewCommentService(rt.deps()).List(args[0], commentPage)
	},
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id> [text]",
	Short: "Comment on a post",
	Long:  "Post a comment. Without text on the command line you are prompted for it.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := commentContent(args[1:])
		if err != nil {
			return err
		}
		_, err = service.NewCommentService(rt.deps()).Add(cmd.Context(), args[0], content, commentReplyTo)
		return err
	},
}

var commentEditCmd = &cobra.Command{
	Use:   "edit <post-id> <comment-id> [text]",
	Short: "Edit one of your comments",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := commentContent(args[2:])
		if err != nil {
			return err
		}
		return service.NewCommentService(rt.deps()).Edit(cmd.Context(), args[0], args[1], content)
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <post-id> <comment-id>",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !commentYes {
			ok, err := rt.prompter().Confirm(fmt.Sprintf("Delete comment %s?", args[1]))
			if err != nil {
				return err
			}
			if !ok {
				rt.out.Info("Cancelled")
				return nil
			}
		}
		return service.NewCommentService(rt.deps()).Delete(cmd.Context(), args[0], args[1])
	},
}

var commentLikeCmd = &cobra.Command{
	Use:   "like <post-id> <comment-id>",
	Short: "Like or unlike a comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewCommentService(rt.deps()).Like(cmd.Context(), args[0], args[1])
	},
}

// commentContent joins the remaining args or falls back to a multiline prompt
func commentContent(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if commentText != "" {
		return commentText, nil
	}
	return rt.prompter().Multiline("Comment (empty line to finish):", 20)
}

func init() {
	commentListCmd.Flags().IntVarP(&commentPage, "page", "p", 1, "Page number")
	commentAddCmd.Flags().StringVar(&commentReplyTo, "reply-to", "", "Reply to this comment ID")
	commentAddCmd.Flags().StringVarP(&commentText, "message", "m", "", "Comment text")
	commentEditCmd.Flags().StringVarP(&commentText, "message", "m", "", "New comment text")
	commentDeleteCmd.Flags().BoolVarP(&commentYes, "yes", "y", false, "Skip confirmation")

	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentEditCmd)
	commentCmd.AddCommand(commentDeleteCmd)
	commentCmd.AddCommand(commentLikeCmd)
}
