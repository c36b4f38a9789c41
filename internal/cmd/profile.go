package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/creatorhub/cli/pkg/service"
)

var followPage int

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "User profile commands",
	Long:  "View user profiles",
}

var profileViewCmd = &cobra.Command{
	Use:   "view <username>",
	Short: "View a user profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(rt.deps()).View(args[0])
	},
}

var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "Follow commands",
	Long:  "Follow creators and see who follows whom",
}

var followToggleCmd = &cobra.Command{
	Use:   "toggle <username>",
	Short: "Follow a user, or unfollow if you already do",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(rt.deps()).ToggleFollow(cmd.Context(), args[0])
	},
}

var followersCmd = &cobra.Command{
	Use:   "followers <username>",
	Short: "List a user's followers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(rt.deps()).Followers(args[0], followPage)
	},
}

var followingCmd = &cobra.Command{
	Use:   "following <username>",
	Short: "List who a user follows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(rt.deps()).Following(args[0], followPage)
	},
}

func init() {
	profileCmd.AddCommand(profileViewCmd)

	followCmd.PersistentFlags().IntVarP(&followPage, "page", "p", 1, "Page number")
	followCmd.AddCommand(followToggleCmd)
	followCmd.AddCommand(followersCmd)
	followCmd.AddCommand(followingCmd)
}
