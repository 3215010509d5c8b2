package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// batchSeparator delimits segment texts inside one batched translation
// prompt so a whole language group costs a single completion call.
const batchSeparator = "\n<<<SEG>>>\n"

// Translator renders text into English via chat completions.
type Translator struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

// NewTranslator creates an OpenAI-backed translator. An empty model
// defaults to gpt-4o-mini.
func NewTranslator(client *openai.Client, chatModel string, log *zap.Logger) *Translator {
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Translator{client: client, model: chatModel, log: log}
}

// Translate translates one text from sourceLang into English.
func (t *Translator) Translate(ctx context.Context, text, sourceLang string) (string, error) {
	return t.complete(ctx, text, sourceLang)
}

// TranslateBatch translates texts in order with a single completion call
// per language group. The delimiter must survive the round trip; a count
// mismatch is reported as an error so the caller can fall back.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, sourceLang string) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}
	if len(texts) == 1 {
		out, err := t.complete(ctx, texts[0], sourceLang)
		if err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	joined, err := t.complete(ctx, strings.Join(texts, batchSeparator), sourceLang)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(joined, strings.TrimSpace(batchSeparator))
	if len(parts) != len(texts) {
		return nil, fmt.Errorf("batch translation returned %d parts for %d texts", len(parts), len(texts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func (t *Translator) complete(ctx context.Context, text, sourceLang string) (string, error) {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"You are a translation engine. Translate the user's text from %q to English. "+
						"Preserve the literal %q separators exactly where they appear. "+
						"Output only the translation, nothing else.",
					sourceLang, strings.TrimSpace(batchSeparator)),
			},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("createChatCompletion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translation returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
