// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PlanCue anchors one sub-scene visual reveal to a frame of the
// synthesized speech.
type PlanCue struct {
	Frame int64  `json:"frame" yaml:"frame"`
	ID    string `json:"id" yaml:"id"`
}

// PlannedScene is one scene of the final render plan: a chosen pattern,
// its validated props, a duration in frames, and the reveal cue list.
type PlannedScene struct {
	SceneID        string    `json:"scene_id" yaml:"scene_id"`
	Role           SceneRole `json:"role" yaml:"role"`
	Pattern        PatternID `json:"pattern" yaml:"pattern"`
	Props          any       `json:"props" yaml:"props"`
	DurationFrames int64     `json:"duration_frames" yaml:"duration_frames"`
	Cues           []PlanCue `json:"cues,omitempty" yaml:"cues,omitempty"`
}

// RenderPlan is the finished, validated artifact the rendering collaborator
// consumes. The renderer never mutates it (prd016-plan R1.3).
type RenderPlan struct {
	ID    string        `json:"id" yaml:"id"`
	Title string        `json:"title" yaml:"title"`
	Class DurationClass `json:"class" yaml:"class"`
	FPS   int           `json:"fps" yaml:"fps"`

	Scenes []PlannedScene `json:"scenes" yaml:"scenes"`

	// EstimatedTotalDurationSec includes fixed inter-scene overhead.
	EstimatedTotalDurationSec int `json:"estimated_total_duration_sec" yaml:"estimated_total_duration_sec"`

	CreatedAt string `json:"created_at" yaml:"created_at"`
}
