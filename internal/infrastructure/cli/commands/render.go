package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yoyaktube/yyt/internal/application/channel"
	"github.com/yoyaktube/yyt/internal/application/summary"
	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/pkg/timeutil"
)

// writeOutput writes content to the --output path when given, otherwise
// to the command's stdout.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", path)
	return nil
}

// summaryMarkdown renders one summary with its video link and a
// provider/model footer.
func summaryMarkdown(result summary.Result) string {
	var b strings.Builder
	b.WriteString("# 요약\n\n")
	if result.Metadata.Title != "" {
		b.WriteString("**" + result.Metadata.Title + "**\n\n")
	}
	b.WriteString(result.Summary + "\n\n")
	b.WriteString("[영상 링크](" + domain.WatchURL(result.VideoID) + ")\n")
	b.WriteString(metaFooter(string(result.Provider), result.Model))
	return b.String()
}

// digestMarkdown renders a channel digest as one combined document.
func digestMarkdown(digest channel.Digest, provider, model string) string {
	var b strings.Builder
	b.WriteString("# 채널 요약\n\n")
	b.WriteString("- Channel: " + digest.ChannelURL + "\n")
	// Range.End is exclusive; show the last included day.
	b.WriteString(fmt.Sprintf("- Range: %s - %s\n", digest.Range.Start.Format("20060102"), digest.Range.End.AddDate(0, 0, -1).Format("20060102")))
	b.WriteString(fmt.Sprintf("- Videos: %d\n", len(digest.Items)))
	for _, item := range digest.Items {
		title := item.Listing.Title
		if title == "" {
			title = item.Listing.VideoID
		}
		b.WriteString("\n## " + title + "\n\n")
		b.WriteString("- Video: " + domain.WatchURL(item.Listing.VideoID) + "\n")
		if item.Listing.UploadDate != "" {
			b.WriteString("- Uploaded: " + item.Listing.UploadDate + "\n")
		}
		if item.Err != nil {
			b.WriteString("\n" + domain.UserMessage(item.Err) + "\n")
			continue
		}
		b.WriteString("\n" + item.Result.Summary + "\n")
	}
	b.WriteString(metaFooter(provider, model))
	return b.String()
}

// transcriptText renders a transcript, with or without cue timestamps.
func transcriptText(transcript domain.Transcript, plain bool) string {
	if plain {
		return transcript.PlainText()
	}
	var b strings.Builder
	for _, line := range transcript.Lines {
		b.WriteString("[" + timeutil.FormatHMS(line.Start) + "] " + line.Text + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func metaFooter(provider, model string) string {
	return fmt.Sprintf("\n---\n_meta_: provider=%s, model=%s\n", provider, model)
}
