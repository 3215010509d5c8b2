package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxi/internal/app/model"
)

func seg(label string, start, end float64, text, lang string) model.Segment {
	return model.Segment{
		SpeakerLabel: label,
		Start:        start,
		End:          end,
		Text:         text,
		Language:     lang,
		Stage:        model.StageEnriched,
	}
}

func TestMergeTurns(t *testing.T) {
	t.Run("collapses_consecutive_same_speaker", func(t *testing.T) {
		segments := []model.Segment{
			seg("Speaker A", 0, 5, "hello", "en"),
			seg("Speaker A", 5, 8, "there", "en"),
			seg("Speaker B", 8, 12, "hi", "en"),
		}
		turns := mergeTurns(segments)

		require.Len(t, turns, 2)
		assert.Equal(t, "Speaker A", turns[0].SpeakerLabel)
		assert.Equal(t, 0.0, turns[0].Start)
		assert.Equal(t, 8.0, turns[0].End)
		assert.Equal(t, "hello there", turns[0].Text)
		assert.Equal(t, "Speaker B", turns[1].SpeakerLabel)
		assert.Equal(t, "hi", turns[1].Text)
	})

	t.Run("non_adjacent_same_speaker_stays_separate", func(t *testing.T) {
		segments := []model.Segment{
			seg("Speaker A", 0, 2, "one", "en"),
			seg("Speaker B", 2, 4, "two", "en"),
			seg("Speaker A", 4, 6, "three", "en"),
		}
		turns := mergeTurns(segments)

		require.Len(t, turns, 3)
		for i := 1; i < len(turns); i++ {
			assert.NotEqual(t, turns[i-1].SpeakerLabel, turns[i].SpeakerLabel)
		}
	})

	t.Run("empty_chunks_do_not_pad_joins", func(t *testing.T) {
		segments := []model.Segment{
			seg("Speaker A", 0, 1, "", model.LanguageUnknown),
			seg("Speaker A", 1, 2, "words", "fr"),
			seg("Speaker A", 2, 3, "", model.LanguageUnknown),
		}
		turns := mergeTurns(segments)

		require.Len(t, turns, 1)
		assert.Equal(t, "words", turns[0].Text)
		assert.Equal(t, 3.0, turns[0].End)
	})

	t.Run("unknown_language_adopts_first_known", func(t *testing.T) {
		segments := []model.Segment{
			seg("Speaker A", 0, 1, "a", model.LanguageUnknown),
			seg("Speaker A", 1, 2, "b", "de"),
			seg("Speaker A", 2, 3, "c", "fr"),
		}
		turns := mergeTurns(segments)

		require.Len(t, turns, 1)
		assert.Equal(t, "de", turns[0].Language)
	})

	t.Run("empty_input", func(t *testing.T) {
		assert.Empty(t, mergeTurns(nil))
	})

	t.Run("marks_merged_stage", func(t *testing.T) {
		turns := mergeTurns([]model.Segment{
			seg("Speaker A", 0, 1, "x", "en"),
			seg("Speaker B", 1, 2, "y", "en"),
		})
		for _, turn := range turns {
			assert.Equal(t, model.StageMerged, turn.Stage)
		}
	})
}
