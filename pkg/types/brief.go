// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ArcID names one of the fixed narrative arc templates.
// Per prd011-brief R3.1.
type ArcID string

const (
	ArcProblemTurn ArcID = "problem-turn"
	ArcCaseLed     ArcID = "case-led"
	ArcDataLed     ArcID = "data-led"
)

// Audience identifies who the program speaks to.
type Audience string

const (
	AudienceExec      Audience = "exec"
	AudienceTechnical Audience = "technical"
	AudienceGeneral   Audience = "general"
)

// SceneRole is the narrative function of one scene within an arc.
type SceneRole string

const (
	SceneHook     SceneRole = "hook"
	SceneProblem  SceneRole = "problem"
	SceneTurn     SceneRole = "turn"
	SceneApproach SceneRole = "approach"
	SceneProof    SceneRole = "proof"
	SceneCTA      SceneRole = "cta"
	SceneCase     SceneRole = "case"
	SceneData     SceneRole = "data"
)

// BriefFieldMax is the character ceiling on every NarrativeBrief string
// field (prd011-brief R4.1).
const BriefFieldMax = 120

// MaxProofPillars caps the pillar count (prd011-brief R4.2).
const MaxProofPillars = 3

// NarrativeBrief bounds the whole voice-over script: the controlling idea,
// arc, and proof pillars everything downstream draws from. One brief is
// created per input document and never mutated after validation.
type NarrativeBrief struct {
	// ControllingIdea is the single claim the program argues.
	ControllingIdea string `json:"controlling_idea" yaml:"controlling_idea"`

	// AudienceChange is what the viewer should believe or do differently.
	AudienceChange string `json:"audience_change" yaml:"audience_change"`

	// Antagonist is the force the narrative pushes against.
	Antagonist string `json:"antagonist" yaml:"antagonist"`

	// Stakes is the cost of inaction.
	Stakes string `json:"stakes" yaml:"stakes"`

	// Promise is the payoff the narrative commits to.
	Promise string `json:"promise" yaml:"promise"`

	// ProofPillars are up to three supports for the promise.
	ProofPillars []string `json:"proof_pillars" yaml:"proof_pillars"`

	// NextStep is the action the closing scene asks for.
	NextStep string `json:"next_step" yaml:"next_step"`

	// Arc selects the scene-role template.
	Arc ArcID `json:"arc" yaml:"arc"`

	// TargetDurationSec is the intended runtime, 30-90 seconds.
	TargetDurationSec int `json:"target_duration_sec" yaml:"target_duration_sec"`

	// Audience identifies the viewer the register is tuned for.
	Audience Audience `json:"audience" yaml:"audience"`
}
