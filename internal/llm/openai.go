package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentpilot/viral-formats-bot/internal/models"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const polishSystemPrompt = `You are an expert social-media copywriter. Rewrite the draft post you are given so it reads naturally in the platform's voice. Keep the hook, structure and call to action intact. Return only the rewritten post text.`

// Polisher rewrites assembled drafts through a hosted completion endpoint.
// It is a black box: one request, no retries, caller-supplied context.
type Polisher struct {
	client *openai.Client
	model  string
}

// NewPolisher creates a Polisher. An empty API key returns nil, which
// callers treat as "polish disabled".
func NewPolisher(apiKey, model string) *Polisher {
	if apiKey == "" {
		return nil
	}
	return &Polisher{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Polish rewrites the draft content in the platform voice. On failure the
// draft is returned unchanged so generation never depends on the endpoint.
func (p *Polisher) Polish(ctx context.Context, draft models.Draft) models.Draft {
	if p == nil {
		return draft
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: polishSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Platform: %s\nTopic: %s\n\n%s", draft.Platform, draft.Topic, draft.Content)},
		},
	})
	if err != nil {
		logrus.Warnf("Draft polish failed, returning raw draft: %v", err)
		return draft
	}
	if len(resp.Choices) == 0 {
		return draft
	}

	polished := strings.TrimSpace(resp.Choices[0].Message.Content)
	if polished == "" {
		return draft
	}

	draft.Content = polished
	draft.Polished = true
	return draft
}
