package prompt

import "strings"

// Category is the closed set of transcription categories.
type Category int

const (
	// Unrecognized covers absent and unknown values.
	Unrecognized Category = iota
	DoctorSummary
	Other
	SpeakerIdentification
	SpeakerSummary
	BasicSummary
)

var categoryTags = map[Category]string{
	DoctorSummary:         "doctor-summary",
	Other:                 "other",
	SpeakerIdentification: "speaker-identification",
	SpeakerSummary:        "speaker-summary",
	BasicSummary:          "basic-summary",
}

// Categories returns the recognized categories in declaration order.
func Categories() []Category {
	return []Category{DoctorSummary, Other, SpeakerIdentification, SpeakerSummary, BasicSummary}
}

// ParseCategory converts a wire tag into a Category. Matching is exact after
// trimming surrounding whitespace.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for c, tag := range categoryTags {
		if tag == s {
			return c
		}
	}
	return Unrecognized
}

// String returns the wire tag, or "unrecognized".
func (c Category) String() string {
	if tag, ok := categoryTags[c]; ok {
		return tag
	}
	return "unrecognized"
}

// Recognized reports whether c is one of the five known categories.
func (c Category) Recognized() bool {
	_, ok := categoryTags[c]
	return ok
}
