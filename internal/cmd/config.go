package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/creatorhub/cli/pkg/config"
	"github.com/zfogg/creatorhub/cli/pkg/output"
)

type effectiveConfig struct {
	APIBaseURL      string `json:"api_base_url"`
	APITimeout      int    `json:"api_timeout"`
	OutputFormat    string `json:"output_format"`
	FeedPageSize    int    `json:"feed_page_size"`
	RealtimeEnabled bool   `json:"realtime_enabled"`
	RealtimeURL     string `json:"realtime_url"`
	LogLevel        string `json:"log_level"`
	MetricsAddr     string `json:"metrics_addr"`
	ConfigDir       string `json:"config_dir"`
	CredentialsPath string `json:"credentials_path"`
}

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show the effective configuration",
	Annotations: map[string]string{annotationOffline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig{
			APIBaseURL:      config.GetString("api.base_url"),
			APITimeout:      config.GetInt("api.timeout"),
			OutputFormat:    config.GetString("output.format"),
			FeedPageSize:    config.GetInt("feed.page_size"),
			RealtimeEnabled: config.GetBool("realtime.enabled"),
			RealtimeURL:     config.GetString("realtime.url"),
			LogLevel:        config.GetString("log.level"),
			MetricsAddr:     config.GetString("metrics.addr"),
			ConfigDir:       config.GetConfigDir(),
			CredentialsPath: config.GetCredentialsPath(),
		}

		out := output.New(cmd.OutOrStdout(), output.GetOutputFormat())
		return out.Record("Configuration", []output.Field{
			{Key: "API Base URL", Value: c.APIBaseURL},
			{Key: "API Timeout", Value: c.APITimeout},
			{Key: "Output Format", Value: c.OutputFormat},
			{Key: "Feed Page Size", Value: c.FeedPageSize},
			{Key: "Realtime", Value: c.RealtimeEnabled},
			{Key: "Realtime URL", Value: c.RealtimeURL},
			{Key: "Log Level", Value: c.LogLevel},
			{Key: "Metrics Addr", Value: c.MetricsAddr},
			{Key: "Config Dir", Value: c.ConfigDir},
			{Key: "Credentials", Value: c.CredentialsPath},
		}, c)
	},
}
