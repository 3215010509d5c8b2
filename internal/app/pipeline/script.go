package pipeline

import "unicode"

// scriptHints maps a dominant Unicode script to the language code it is
// strong evidence for. Used only to correct an obviously wrong document
// language before retrying a failed full-transcript translation.
var scriptHints = []struct {
	lang  string
	table *unicode.RangeTable
}{
	{"hi", unicode.Devanagari},
	{"ar", unicode.Arabic},
	{"ru", unicode.Cyrillic},
	{"zh", unicode.Han},
	{"ja", unicode.Hiragana},
	{"ja", unicode.Katakana},
	{"ko", unicode.Hangul},
	{"el", unicode.Greek},
	{"he", unicode.Hebrew},
	{"th", unicode.Thai},
}

// scriptLanguage returns the language suggested by the dominant script
// of text, or "" when no single script covers a majority of its letters.
func scriptLanguage(text string) string {
	counts := make(map[string]int, len(scriptHints))
	letters := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for _, hint := range scriptHints {
			if unicode.Is(hint.table, r) {
				counts[hint.lang]++
				break
			}
		}
	}
	if letters == 0 {
		return ""
	}
	for lang, n := range counts {
		if n*2 > letters {
			return lang
		}
	}
	return ""
}
