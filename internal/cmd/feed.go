package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zfogg/creatorhub/cli/internal/tui"
	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/service"
)

var (
	feedType string
	feedPage int
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse feeds",
	Long:  "View the timeline, trending and latest feeds",
}

var feedListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of a feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !service.ValidFeedType(feedType) {
			return fmt.Errorf("unknown feed type %q (use timeline, trending or latest)", feedType)
		}
		return service.NewFeedService(rt.deps()).List(feedType, feedPage)
	},
}

var feedBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse a feed interactively",
	Long: `Open an interactive feed browser. Likes, saves, hides and follows
show up immediately and are rolled back if the server refuses them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !service.ValidFeedType(feedType) {
			return fmt.Errorf("unknown feed type %q (use timeline, trending or latest)", feedType)
		}

		ctx := cmd.Context()
		deps := rt.deps()
		feeds := service.NewFeedService(deps)
		profiles := service.NewProfileService(deps)

		stopMetrics := rt.serveMetrics(ctx)
		defer stopMetrics()
		stopRealtime := rt.startRealtime()
		defer stopRealtime()

		return tui.Run(tui.Options{
			Context:    ctx,
			Controller: rt.controller,
			Session:    rt.session,
			FeedType:   feedType,
			Load: func(page int) (*api.FeedResponse, error) {
				return feeds.Load(feedType, page)
			},
			Follow: profiles.Follow,
		})
	},
}

func init() {
	feedCmd.PersistentFlags().StringVarP(&feedType, "type", "t", "timeline", "Feed type: timeline, trending, latest")
	feedListCmd.Flags().IntVarP(&feedPage, "page", "p", 1, "Page number")

	feedCmd.AddCommand(feedListCmd)
	feedCmd.AddCommand(feedBrowseCmd)
}
