package pipeline

import (
	"strings"

	"voxi/internal/app/model"
)

// NormalizeLanguage lower-cases a language code and strips any locale
// suffix ("en-US" and "en_GB" both become "en"). Empty input normalizes
// to the unknown sentinel.
func NormalizeLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	if code == "" {
		return model.LanguageUnknown
	}
	return code
}

// resolveDocumentLanguage majority-votes the per-turn language signals
// into one document language. Unknown and empty votes are dropped; ties
// break toward the first-encountered code; no usable vote at all
// resolves to unknown.
func resolveDocumentLanguage(turns []model.Segment) string {
	counts := make(map[string]int)
	order := make([]string, 0, len(turns))

	for _, turn := range turns {
		code := NormalizeLanguage(turn.Language)
		if code == model.LanguageUnknown {
			continue
		}
		if _, seen := counts[code]; !seen {
			order = append(order, code)
		}
		counts[code]++
	}

	best := model.LanguageUnknown
	bestCount := 0
	for _, code := range order {
		if counts[code] > bestCount {
			best = code
			bestCount = counts[code]
		}
	}
	return best
}
