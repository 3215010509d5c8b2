package model

// Transcript is the final, assembled pipeline result: ordered speaker
// turns plus the three document-level scalars. Every field is always
// populated, defaulted when the producing stage degraded.
type Transcript struct {
	Segments    []Segment `json:"segments"`
	Transcript  string    `json:"transcript"`
	Language    string    `json:"language"`
	Translation string    `json:"translation"`
}
