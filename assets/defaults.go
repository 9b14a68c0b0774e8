// Package assets embeds the prompt templates shipped with the binary.
package assets

import (
	_ "embed"
)

// SummaryPromptTmpl contains the embedded summarization prompt template.
//
//go:embed prompts/summary.tmpl
var SummaryPromptTmpl string

// ChatSystemPromptTmpl contains the embedded Q&A system prompt template.
//
//go:embed prompts/chat_system.tmpl
var ChatSystemPromptTmpl string
