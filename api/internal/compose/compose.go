// Package compose drafts short reply texts for the campaign through an LLM.
package compose

import (
	"context"
	"fmt"
	"strings"
)

// ReplyInput is the thread context handed to an engine.
type ReplyInput struct {
	PostTitle   string
	PostContent string
	Comment     string
	Persona     string
}

// Engine drafts one reply. Implementations live in the subpackages.
type Engine interface {
	Name() string
	Reply(ctx context.Context, in ReplyInput) (string, error)
}

const defaultPersona = "a friendly, concise community member; reply in 2-4 sentences, no hashtags, no emoji spam"

// SystemPrompt and UserPrompt are shared by the engine implementations so
// both backends draft from the same instructions.
func SystemPrompt(persona string) string {
	if strings.TrimSpace(persona) == "" {
		persona = defaultPersona
	}
	return "You write replies to comments on a community forum. You are " + persona + ". " +
		"Reply to the comment directly, stay on the post's topic, never mention being an assistant."
}

func UserPrompt(in ReplyInput) string {
	return fmt.Sprintf("Post title: %s\n\nPost:\n%s\n\nComment to reply to:\n%s",
		in.PostTitle, in.PostContent, in.Comment)
}
