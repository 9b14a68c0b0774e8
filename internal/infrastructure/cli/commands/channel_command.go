package commands

import (
	"github.com/spf13/cobra"

	"github.com/yoyaktube/yyt/internal/app"
	"github.com/yoyaktube/yyt/internal/application/channel"
)

// NewChannelCommand creates the channel digest command.
func NewChannelCommand(session *app.Session) *cobra.Command {
	var (
		provider  string
		model     string
		languages []string
		output    string
		maxVideos int
	)

	cmd := &cobra.Command{
		Use:   "channel <channel URL> <date range>",
		Short: "Summarize a channel's recent uploads",
		Long: "Summarize every upload inside the date range. The range is today, yesterday,\n" +
			"a day count (7), a single day (20250101), or a span (20250101-20250131).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := session.PickProvider(provider)
			if err != nil {
				return err
			}
			req := channel.Request{
				ChannelURL: args[0],
				DateExpr:   args[1],
				MaxVideos:  maxVideos,
				Base:       session.SummaryRequest(cfg, model, "", languages),
			}
			digest, err := session.ChannelService.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, digestMarkdown(digest, string(cfg.Name), req.Base.Model))
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Provider to use (default from settings)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name")
	cmd.Flags().StringSliceVarP(&languages, "languages", "l", nil, "Caption language priority (default from settings)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().IntVar(&maxVideos, "max-videos", 10, "Cap on videos fetched from the channel")
	return cmd
}
