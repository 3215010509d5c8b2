package pipeline

import "voxi/internal/app/model"

const labelAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// assignSpeakerLabels maps raw diarization ids to human-readable labels
// in first-seen order: the first distinct id becomes "Speaker A", the
// next "Speaker B", and so on. Recordings with more distinct speakers
// than the alphabet saturate at the last letter; this is a known limit
// accepted for the small speaker counts seen in practice.
func assignSpeakerLabels(segments []model.Segment) {
	labels := make(map[string]string)
	for i := range segments {
		raw := segments[i].SpeakerRaw
		label, seen := labels[raw]
		if !seen {
			idx := len(labels)
			if idx >= len(labelAlphabet) {
				idx = len(labelAlphabet) - 1
			}
			label = "Speaker " + string(labelAlphabet[idx])
			labels[raw] = label
		}
		segments[i].SpeakerLabel = label
	}
}
