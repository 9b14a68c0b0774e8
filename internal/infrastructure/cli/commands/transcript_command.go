package commands

import (
	"github.com/spf13/cobra"

	"github.com/yoyaktube/yyt/internal/app"
	"github.com/yoyaktube/yyt/internal/domain"
)

// NewTranscriptCommand creates the transcript command.
func NewTranscriptCommand(session *app.Session) *cobra.Command {
	var (
		languages []string
		output    string
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "transcript <video URL or ID>",
		Short: "Fetch a video's caption track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := domain.ExtractVideoID(args[0])
			if err != nil {
				return err
			}
			langs := languages
			if len(langs) == 0 {
				langs = session.Settings.Preferences.Languages
			}
			transcript, err := session.Transcripts.Fetch(cmd.Context(), videoID, langs)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, transcriptText(transcript, plain))
		},
	}

	cmd.Flags().StringSliceVarP(&languages, "languages", "l", nil, "Caption language priority (default from settings)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&plain, "plain", false, "Omit cue timestamps")
	return cmd
}
