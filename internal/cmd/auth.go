package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/creatorhub/cli/pkg/service"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage your CreatorHub session",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to CreatorHub",
	Long:  "Authenticate with CreatorHub using email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(rt.deps(), rt.prompter()).Login()
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from CreatorHub",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(rt.deps(), rt.prompter()).Logout()
	},
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"me"},
	Short:   "Display current authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(rt.deps(), rt.prompter()).Status()
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
}
