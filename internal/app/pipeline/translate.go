package pipeline

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"voxi/internal/app/model"
)

// languageGroup collects the turn indexes sharing one source language so
// the translation engine is invoked once per language rather than once
// per segment.
type languageGroup struct {
	lang    string
	indexes []int
}

// translate fills the Translation field of every turn and returns the
// English rendition of the full transcript. English, unknown-language
// and empty turns pass their source text through; "unknown" means skip
// translation, never guess a default. Any engine failure degrades to the
// source text and is never surfaced as a request failure.
func (p *Pipeline) translate(ctx context.Context, turns []model.Segment, transcript, docLang string, opts Options) string {
	// Passthrough defaults keep every field populated even when the
	// translation stage is skipped or degrades.
	for i := range turns {
		turns[i].Translation = turns[i].Text
	}
	if !opts.Translate || p.translator == nil {
		return transcript
	}

	groups := groupByLanguage(turns)
	var wg sync.WaitGroup
	for _, group := range groups {
		wg.Add(1)
		go func(g languageGroup) {
			defer wg.Done()
			p.translateGroup(ctx, turns, g)
		}(group)
	}
	wg.Wait()

	return p.translateDocument(ctx, transcript, docLang)
}

// groupByLanguage buckets translatable turns by source language in
// first-encountered order. English, unknown and empty turns are skipped.
func groupByLanguage(turns []model.Segment) []languageGroup {
	byLang := make(map[string]int)
	groups := make([]languageGroup, 0, 2)
	for i, turn := range turns {
		lang := NormalizeLanguage(turn.Language)
		if lang == "en" || lang == model.LanguageUnknown || turn.Text == "" {
			continue
		}
		at, seen := byLang[lang]
		if !seen {
			at = len(groups)
			byLang[lang] = at
			groups = append(groups, languageGroup{lang: lang})
		}
		groups[at].indexes = append(groups[at].indexes, i)
	}
	return groups
}

// translateGroup issues one batched call for a language group and writes
// results back into the originating turns by index. A failed group keeps
// its passthrough defaults.
func (p *Pipeline) translateGroup(ctx context.Context, turns []model.Segment, group languageGroup) {
	texts := make([]string, len(group.indexes))
	for i, idx := range group.indexes {
		texts[i] = turns[idx].Text
	}

	translated, err := p.translator.TranslateBatch(ctx, texts, group.lang)
	p.metrics.RecordEngineCall("translator", "translate_batch", err)
	if err != nil || len(translated) != len(texts) {
		p.log.Warn("language group translation failed",
			zap.String("language", group.lang),
			zap.Int("segments", len(texts)),
			zap.Error(err))
		return
	}
	for i, idx := range group.indexes {
		if out := strings.TrimSpace(translated[i]); out != "" {
			turns[idx].Translation = out
		}
	}
}

// translateDocument translates the concatenated transcript against the
// resolved document language. An empty result with script-level evidence
// of a different language triggers one corrected retry before falling
// back to the source text.
func (p *Pipeline) translateDocument(ctx context.Context, transcript, docLang string) string {
	if transcript == "" || docLang == "en" || docLang == model.LanguageUnknown {
		return transcript
	}

	out, err := p.translator.Translate(ctx, transcript, docLang)
	p.metrics.RecordEngineCall("translator", "translate", err)
	if err != nil {
		p.log.Warn("full transcript translation failed",
			zap.String("language", docLang),
			zap.Error(err))
		return transcript
	}
	if strings.TrimSpace(out) != "" {
		return out
	}

	if corrected := scriptLanguage(transcript); corrected != "" && corrected != docLang {
		p.log.Info("retrying full translation with script-corrected language",
			zap.String("assumed", docLang),
			zap.String("corrected", corrected))
		retry, err := p.translator.Translate(ctx, transcript, corrected)
		p.metrics.RecordEngineCall("translator", "translate", err)
		if err == nil && strings.TrimSpace(retry) != "" {
			return retry
		}
	}
	return transcript
}
