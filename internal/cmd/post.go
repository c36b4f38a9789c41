package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/creatorhub/cli/pkg/service"
)

var postPage int

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post commands",
	Long:  "View, like, save and hide posts",
}

var postViewCmd = &cobra.Command{
	Use:   "view <post-id>",
	Short: "Show a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService(rt.deps()).View(args[0])
	},
}

var postLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService(rt.deps()).Like(cmd.Context(), args[0])
	},
}

var postSaveCmd = &cobra.Command{
	Use:   "save <post-id>",
	Short: "Save or unsave a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService(rt.deps()).Save(cmd.Context(), args[0])
	},
}

var postHideCmd = &cobra.Command{
	Use:   "hide <post-id>",
	Short: "Hide or unhide a post from your feeds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService(rt.deps()).Hide(cmd.Context(), args[0])
	},
}

var postUnhideCmd = &cobra.Command{
	Use:   "unhide <post-id>",
	Short: "Show a hidden post in your feeds again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService(rt.deps()).Unhide(cmd.Context(), args[0])
	},
}

var postSavedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List your saved posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService(rt.deps()).Saved(postPage)
	},
}

var postHiddenCmd = &cobra.Command{
	Use:   "hidden",
	Short: "List posts you have hidden",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService(rt.deps()).Hidden(postPage)
	},
}

func init() {
	postSavedCmd.Flags().IntVarP(&postPage, "page", "p", 1, "Page number")
	postHiddenCmd.Flags().IntVarP(&postPage, "page", "p", 1, "Page number")

	postCmd.AddCommand(postViewCmd)
	postCmd.AddCommand(postLikeCmd)
	postCmd.AddCommand(postSaveCmd)
	postCmd.AddCommand(postHideCmd)
	postCmd.AddCommand(postUnhideCmd)
	postCmd.AddCommand(postSavedCmd)
	postCmd.AddCommand(postHiddenCmd)
}
