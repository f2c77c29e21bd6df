// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BeatRole classifies the narrative function of a story beat.
// Per prd010-story-ir R1.2.
type BeatRole string

const (
	RoleHook      BeatRole = "hook"
	RoleProblem   BeatRole = "problem"
	RoleData      BeatRole = "data"
	RoleCaseStudy BeatRole = "case-study"
	RoleCTA       BeatRole = "cta"
	RoleDefault   BeatRole = "default"
)

// EvidenceKind classifies the evidence a beat carries, if any.
type EvidenceKind string

const (
	EvidenceMetric   EvidenceKind = "metric"
	EvidenceTimeline EvidenceKind = "timeline"
	EvidenceNone     EvidenceKind = "none"
)

// SeriesPoint is one label/value pair of a chart-shaped beat.
type SeriesPoint struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// StoryBeat is one narrative unit of source content. Beats are immutable
// once extracted and their sequence is the narrative order (R1.1).
type StoryBeat struct {
	// Text is the source prose for this beat.
	Text string `json:"text" yaml:"text"`

	// Role is the beat's narrative function.
	Role BeatRole `json:"role" yaml:"role"`

	// Evidence marks supporting material detected in the beat.
	Evidence EvidenceKind `json:"evidence,omitempty" yaml:"evidence,omitempty"`

	// Series holds numeric label/value pairs for chart-shaped beats.
	Series []SeriesPoint `json:"series,omitempty" yaml:"series,omitempty"`
}

// ProblemInsight captures the pain the narrative opens on.
type ProblemInsight struct {
	Statement  string `json:"statement" yaml:"statement"`
	Antagonist string `json:"antagonist,omitempty" yaml:"antagonist,omitempty"`
	Stakes     string `json:"stakes,omitempty" yaml:"stakes,omitempty"`
}

// SolutionInsight captures the turn and the promise the narrative makes.
type SolutionInsight struct {
	Approach string `json:"approach" yaml:"approach"`
	Promise  string `json:"promise,omitempty" yaml:"promise,omitempty"`
	NextStep string `json:"next_step,omitempty" yaml:"next_step,omitempty"`
}

// ProofInsight carries the evidence supporting the promise.
type ProofInsight struct {
	Pillars []string `json:"pillars,omitempty" yaml:"pillars,omitempty"`
}

// Insights is the distilled substance of a source document. Any of the
// substructures may be absent; the brief generator substitutes defaults
// (prd011-brief R2.3).
type Insights struct {
	Title    string           `json:"title,omitempty" yaml:"title,omitempty"`
	Problem  *ProblemInsight  `json:"problem,omitempty" yaml:"problem,omitempty"`
	Solution *SolutionInsight `json:"solution,omitempty" yaml:"solution,omitempty"`
	Proof    *ProofInsight    `json:"proof,omitempty" yaml:"proof,omitempty"`
}
