package summary

import (
	"strings"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/pkg/timeutil"
)

// BuildContext assembles the structured block handed to the model. The
// metadata sections are skipped when their values are absent; the
// transcript section is always present.
func BuildContext(meta domain.VideoMetadata, transcript domain.Transcript) string {
	var b strings.Builder
	if meta.SourceURL != "" {
		b.WriteString("[SOURCE] " + meta.SourceURL + "\n")
	}
	if meta.Duration > 0 {
		b.WriteString("[DURATION] " + timeutil.FormatHMS(meta.Duration) + "\n")
	}
	if meta.UploadDate != "" {
		b.WriteString("[UPLOAD_DATE] " + meta.UploadDate + "\n")
	}
	b.WriteString("[TRANSCRIPT]\n")
	if len(transcript.Lines) == 0 {
		b.WriteString("(no captions)")
		return b.String()
	}
	for _, line := range transcript.Lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		b.WriteString("[" + timeutil.FormatHMS(line.Start) + "] " + text + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// BuildQAContext joins the prior summary with the full transcript so
// chat answers can cite both.
func BuildQAContext(summaryText string, transcript domain.Transcript) string {
	var parts []string
	if summaryText != "" {
		parts = append(parts, summaryText)
	}
	if text := transcript.PlainText(); text != "" {
		parts = append(parts, "[TRANSCRIPT]\n"+text)
	}
	return strings.Join(parts, "\n\n")
}
