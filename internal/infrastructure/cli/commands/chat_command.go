package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yoyaktube/yyt/internal/app"
	"github.com/yoyaktube/yyt/internal/domain"
)

// NewChatCommand creates the chat command. It summarizes the video
// first, then answers questions against the summary plus the full
// transcript.
func NewChatCommand(session *app.Session) *cobra.Command {
	var (
		provider  string
		model     string
		languages []string
		question  string
	)

	cmd := &cobra.Command{
		Use:   "chat <video URL or ID>",
		Short: "Ask questions about a video's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := session.PickProvider(provider)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			req := session.SummaryRequest(cfg, model, args[0], languages)

			result, err := session.SummaryService.Summarize(ctx, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Summary)
			fmt.Fprintln(out)

			if question != "" {
				resp, err := session.SummaryService.Ask(ctx, req, result, nil, question)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, resp.Content)
				return nil
			}

			var history []domain.ChatMessage
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "질문: ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}
				if isExitWord(input) {
					fmt.Fprintln(out, "채팅을 종료합니다.")
					return nil
				}
				resp, err := session.SummaryService.Ask(ctx, req, result, history, input)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), domain.UserMessage(err))
					continue
				}
				fmt.Fprintln(out, resp.Content)
				fmt.Fprintln(out)
				history = append(history,
					domain.ChatMessage{Role: domain.RoleUser, Content: input},
					domain.ChatMessage{Role: domain.RoleAssistant, Content: resp.Content},
				)
			}
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Provider to use (default from settings)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name")
	cmd.Flags().StringSliceVarP(&languages, "languages", "l", nil, "Caption language priority (default from settings)")
	cmd.Flags().StringVarP(&question, "question", "q", "", "Ask one question and exit")
	return cmd
}

func isExitWord(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit", "종료", "나가기":
		return true
	}
	return false
}
