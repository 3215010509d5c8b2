package pipeline

import "voxi/internal/app/model"

// mergeTurns collapses consecutive same-speaker segments into speaker
// turns in a single forward pass. The accumulator's end is extended and
// texts are space-joined; start and label never change once set. The
// merged sequence has no two consecutive entries with the same label.
func mergeTurns(segments []model.Segment) []model.Segment {
	if len(segments) == 0 {
		return []model.Segment{}
	}

	turns := make([]model.Segment, 0, len(segments))
	current := segments[0]
	current.Stage = model.StageMerged

	for _, seg := range segments[1:] {
		if seg.SpeakerLabel == current.SpeakerLabel {
			current.End = seg.End
			if seg.Text != "" {
				if current.Text != "" {
					current.Text += " "
				}
				current.Text += seg.Text
			}
			// A turn whose first chunk had no usable language adopts the
			// first known one from the run.
			if current.Language == model.LanguageUnknown && seg.Language != model.LanguageUnknown {
				current.Language = seg.Language
			}
			continue
		}
		turns = append(turns, current)
		current = seg
		current.Stage = model.StageMerged
	}

	return append(turns, current)
}
