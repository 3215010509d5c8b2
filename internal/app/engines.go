package app

import (
	"context"
	"fmt"

	openaiapi "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	appconfig "voxi/internal/app/config"
	"voxi/internal/app/engine"
	"voxi/internal/app/engine/energy"
	"voxi/internal/app/engine/gemini"
	"voxi/internal/app/engine/openai"
	"voxi/internal/app/engine/pyannote"
	"voxi/internal/app/engine/whisperserver"
	"voxi/internal/config"
)

const (
	defaultWhisperModel = "whisper-1"
	defaultChatModel    = "gpt-4o-mini"
	defaultGeminiModel  = "gemini-2.0-flash"
)

// buildRegistry registers every engine this deployment can serve.
// Factories run lazily, so registering an engine without credentials is
// fine as long as configuration never selects it.
func buildRegistry(cfg *config.Config, engCfg *appconfig.EnginesConfig, log *zap.Logger) (*engine.Registry, error) {
	registry := engine.NewRegistry()

	if err := registry.RegisterDiarizer("energy", func() (engine.Diarizer, error) {
		return energy.NewDiarizer(), nil
	}); err != nil {
		return nil, err
	}

	if err := registry.RegisterDiarizer("pyannote", func() (engine.Diarizer, error) {
		section := engCfg.Diarizer
		pyCfg := pyannote.Config{
			BaseURL:     cfg.PyannoteURL,
			AuthToken:   cfg.PyannoteAuthToken,
			NumSpeakers: section.NumSpeakers,
			Timeout:     section.Timeout,
		}
		if section.BaseURL != "" {
			pyCfg.BaseURL = section.BaseURL
		}
		if section.AuthToken != "" {
			pyCfg.AuthToken = section.AuthToken
		}
		return pyannote.NewDiarizer(pyCfg, log), nil
	}); err != nil {
		return nil, err
	}

	if err := registry.RegisterTranscriber("openai", func() (engine.Transcriber, error) {
		if cfg.APIKeys.OpenAI == "" {
			return nil, fmt.Errorf("openai transcriber requires OPENAI_API_KEY")
		}
		model := defaultWhisperModel
		if engCfg.Transcriber.Model != "" {
			model = engCfg.Transcriber.Model
		}
		return openai.NewTranscriber(openaiapi.NewClient(cfg.APIKeys.OpenAI), model, log), nil
	}); err != nil {
		return nil, err
	}

	if err := registry.RegisterTranscriber("whisperserver", func() (engine.Transcriber, error) {
		wsCfg := whisperserver.Config{
			BaseURL: cfg.WhisperServerURL,
			Timeout: engCfg.Transcriber.Timeout,
		}
		if engCfg.Transcriber.BaseURL != "" {
			wsCfg.BaseURL = engCfg.Transcriber.BaseURL
		}
		return whisperserver.NewTranscriber(wsCfg, log), nil
	}); err != nil {
		return nil, err
	}

	if err := registry.RegisterTranslator("openai", func() (engine.Translator, error) {
		if cfg.APIKeys.OpenAI == "" {
			return nil, fmt.Errorf("openai translator requires OPENAI_API_KEY")
		}
		model := defaultChatModel
		if engCfg.Translator.Model != "" {
			model = engCfg.Translator.Model
		}
		return openai.NewTranslator(openaiapi.NewClient(cfg.APIKeys.OpenAI), model, log), nil
	}); err != nil {
		return nil, err
	}

	if err := registry.RegisterTranslator("gemini", func() (engine.Translator, error) {
		if cfg.APIKeys.Gemini == "" {
			return nil, fmt.Errorf("gemini translator requires GEMINI_API_KEY")
		}
		model := defaultGeminiModel
		if engCfg.Translator.Model != "" {
			model = engCfg.Translator.Model
		}
		return gemini.NewTranslator(context.Background(), cfg.APIKeys.Gemini, model, log)
	}); err != nil {
		return nil, err
	}

	// "none" disables translation; the pipeline passes source text through.
	if err := registry.RegisterTranslator("none", func() (engine.Translator, error) {
		return nil, nil
	}); err != nil {
		return nil, err
	}

	return registry, nil
}
