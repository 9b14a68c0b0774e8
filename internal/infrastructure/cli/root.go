// Package cli wires the cobra command tree on top of the session
// container.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yoyaktube/yyt/internal/app"
	"github.com/yoyaktube/yyt/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	session, err := app.NewSession(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "yyt",
		Short: "YoYakTube - summarize YouTube videos from their captions",
		Long:  "yyt fetches a video's caption track and produces a structured summary through a configured LLM provider.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(commands.NewTranscriptCommand(session))
	root.AddCommand(commands.NewSummarizeCommand(session))
	root.AddCommand(commands.NewChatCommand(session))
	root.AddCommand(commands.NewChannelCommand(session))
	root.AddCommand(commands.NewModelsCommand(session))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}
