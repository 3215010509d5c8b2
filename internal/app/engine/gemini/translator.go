package gemini

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const batchSeparator = "\n<<<SEG>>>\n"

// Translator renders text into English through the Gemini API. It is the
// drop-in alternative to the OpenAI translator, selected by engine
// configuration.
type Translator struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewTranslator creates a Gemini-backed translator. An empty model
// defaults to gemini-2.0-flash.
func NewTranslator(ctx context.Context, apiKey, geminiModel string, log *zap.Logger) (*Translator, error) {
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash"
	}
	if log == nil {
		log = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Translator{client: client, model: geminiModel, log: log}, nil
}

// Translate translates one text from sourceLang into English.
func (t *Translator) Translate(ctx context.Context, text, sourceLang string) (string, error) {
	return t.generate(ctx, text, sourceLang)
}

// TranslateBatch translates texts in order with a single generation call.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, sourceLang string) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}
	if len(texts) == 1 {
		out, err := t.generate(ctx, texts[0], sourceLang)
		if err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	joined, err := t.generate(ctx, strings.Join(texts, batchSeparator), sourceLang)
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

func (t *Translator) generate(ctx context.Context, text, sourceLang string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following text from %q to English. "+
			"Preserve the literal %q separators exactly where they appear. "+
			"Output only the translation, nothing else.\n\n%s",
		sourceLang, strings.TrimSpace(batchSeparator), text)

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generateContent: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
