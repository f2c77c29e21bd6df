// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// DurationClass keys the word-budget table. Per prd012-voscript R1.1.
type DurationClass string

const (
	Class30 DurationClass = "30s"
	Class60 DurationClass = "60s"
	Class90 DurationClass = "90s"
)

// WordBudget bounds a duration class: total words across all scenes and
// sentences per scene (prd012-voscript R1.2).
type WordBudget struct {
	MinWords             int
	MaxWords             int
	MaxSentencesPerScene int
}

// WordBudgets is the closed budget table keyed by duration class.
var WordBudgets = map[DurationClass]WordBudget{
	Class30: {MinWords: 47, MaxWords: 55, MaxSentencesPerScene: 3},
	Class60: {MinWords: 95, MaxWords: 110, MaxSentencesPerScene: 4},
	Class90: {MinWords: 140, MaxWords: 160, MaxSentencesPerScene: 5},
}

// Provenance identifies one externally supplied citation source.
// Absence of a match for a token id is not an error (prd012-voscript R3.4).
type Provenance struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href,omitempty" yaml:"href,omitempty"`
}

// EvidenceToken is a resolved [prov:<id>] citation marker found in scene text.
type EvidenceToken struct {
	// ID is the provenance id the marker names.
	ID string `json:"id" yaml:"id"`

	// Offset is the character offset of the marker in the scene text.
	Offset int `json:"offset" yaml:"offset"`

	// Label and Href come from the resolved provenance entry.
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href,omitempty" yaml:"href,omitempty"`
}

// VOScene is one scene's voice-over block.
type VOScene struct {
	ID   string    `json:"id" yaml:"id"`
	Role SceneRole `json:"role" yaml:"role"`

	// Text is the narration, including any [prov:<id>] markers.
	Text string `json:"text" yaml:"text"`

	// Sentences is Text split on sentence terminators.
	Sentences []string `json:"sentences" yaml:"sentences"`

	// EvidenceTokens are the resolved citation markers in Text.
	EvidenceTokens []EvidenceToken `json:"evidence_tokens,omitempty" yaml:"evidence_tokens,omitempty"`

	// WordCount counts spoken words; citation markers are not spoken.
	WordCount int `json:"word_count" yaml:"word_count"`

	// EstimatedDurationMs is WordCount at the target words-per-minute rate.
	EstimatedDurationMs int64 `json:"estimated_duration_ms" yaml:"estimated_duration_ms"`
}

// VOScript is the ordered voice-over script for one program. Scenes follow
// the brief's arc template and are never reordered (prd012-voscript R2.5).
type VOScript struct {
	Class  DurationClass `json:"class" yaml:"class"`
	Scenes []VOScene     `json:"scenes" yaml:"scenes"`
}

// TotalWords sums spoken words across all scenes.
func (s *VOScript) TotalWords() int {
	total := 0
	for _, sc := range s.Scenes {
		total += sc.WordCount
	}
	return total
}

// FullText concatenates all scene texts in order, space separated. This is
// the string the timing extractor hashes and synthesizes (prd014-timing R1.1).
func (s *VOScript) FullText() string {
	parts := make([]string, 0, len(s.Scenes))
	for _, sc := range s.Scenes {
		parts = append(parts, sc.Text)
	}
	return strings.Join(parts, " ")
}
