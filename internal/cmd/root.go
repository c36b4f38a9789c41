package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zfogg/creatorhub/cli/pkg/config"
	clierrors "github.com/zfogg/creatorhub/cli/pkg/errors"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
	"github.com/zfogg/creatorhub/cli/pkg/output"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

// annotationOffline marks commands that never talk to the API
const annotationOffline = "offline"

// rt is built once the config is loaded and shared by every subcommand
var rt *runtime

var rootCmd = &cobra.Command{
	Use:   "creatorhub",
	Short: "CreatorHub CLI - Follow creators, like and save their posts",
	Long: `CreatorHub CLI is a command-line client for the CreatorHub creator
platform. Browse feeds, like, save and comment on posts, follow creators
and manage your wallet directly from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		logger.Init(verbose)

		if cmd.Flags().Changed("output") {
			if !output.ValidateOutputFormat(outputFmt) {
				return fmt.Errorf("invalid output format %q (use text, json or table)", outputFmt)
			}
			config.Override("output.format", outputFmt)
		}

		if cmd.Annotations[annotationOffline] == "true" {
			return nil
		}

		var err error
		rt, err = newRuntime(cmd.OutOrStdout())
		return err
	},
}

// Execute runs the root command until it finishes or the user interrupts it
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.SetOut(color.Output)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, clierrors.FormatError(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/creatorhub/cli/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json, table")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(followCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(kycCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
