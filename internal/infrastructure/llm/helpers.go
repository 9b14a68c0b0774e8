package llm

import "github.com/yoyaktube/yyt/internal/domain"

func modelOrDefault(model string, def string) string {
	if model == "" {
		return def
	}
	return model
}

// appendTurn copies history before appending so the caller's slice is
// never mutated through shared backing storage.
func appendTurn(history []domain.ChatMessage, turn domain.ChatMessage) []domain.ChatMessage {
	messages := make([]domain.ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	return append(messages, turn)
}
