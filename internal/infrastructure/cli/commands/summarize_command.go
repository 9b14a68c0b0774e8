package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/yoyaktube/yyt/internal/app"
)

// NewSummarizeCommand creates the summarize command.
func NewSummarizeCommand(session *app.Session) *cobra.Command {
	var (
		provider  string
		model     string
		languages []string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "summarize <video URL or ID>",
		Short: "Summarize a video from its captions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := session.PickProvider(provider)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if timeout := session.Settings.Preferences.TimeoutSeconds; timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
				defer cancel()
			}
			req := session.SummaryRequest(cfg, model, args[0], languages)
			result, err := session.SummaryService.Summarize(ctx, req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, summaryMarkdown(result))
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Provider to use (default from settings)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name")
	cmd.Flags().StringSliceVarP(&languages, "languages", "l", nil, "Caption language priority (default from settings)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
