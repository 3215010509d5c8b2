package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"voxi/internal/app/model"
)

func TestAssignSpeakerLabels(t *testing.T) {
	t.Run("first_seen_order", func(t *testing.T) {
		segments := []model.Segment{
			{SpeakerRaw: "spk_7"},
			{SpeakerRaw: "spk_2"},
			{SpeakerRaw: "spk_7"},
			{SpeakerRaw: "spk_9"},
		}
		assignSpeakerLabels(segments)

		assert.Equal(t, "Speaker A", segments[0].SpeakerLabel)
		assert.Equal(t, "Speaker B", segments[1].SpeakerLabel)
		assert.Equal(t, "Speaker A", segments[2].SpeakerLabel)
		assert.Equal(t, "Speaker C", segments[3].SpeakerLabel)
	})

	t.Run("deterministic", func(t *testing.T) {
		build := func() []model.Segment {
			return []model.Segment{
				{SpeakerRaw: "x"}, {SpeakerRaw: "y"}, {SpeakerRaw: "x"},
			}
		}
		first := build()
		second := build()
		assignSpeakerLabels(first)
		assignSpeakerLabels(second)
		assert.Equal(t, first, second)
	})

	t.Run("saturates_at_z", func(t *testing.T) {
		segments := make([]model.Segment, 30)
		for i := range segments {
			segments[i].SpeakerRaw = fmt.Sprintf("spk_%d", i)
		}
		assignSpeakerLabels(segments)

		assert.Equal(t, "Speaker A", segments[0].SpeakerLabel)
		assert.Equal(t, "Speaker Z", segments[25].SpeakerLabel)
		assert.Equal(t, "Speaker Z", segments[26].SpeakerLabel)
		assert.Equal(t, "Speaker Z", segments[29].SpeakerLabel)
	})
}
