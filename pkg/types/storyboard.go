// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StoryboardBeat is one timed unit of a storyboard. Text is the narration;
// OnScreenText is what the viewer reads. The calibration stage retimes
// DurationSec from either field (prd015-alignment R2.4).
type StoryboardBeat struct {
	Text         string `json:"text" yaml:"text"`
	OnScreenText string `json:"on_screen_text,omitempty" yaml:"on_screen_text,omitempty"`
	DurationSec  int    `json:"duration_sec" yaml:"duration_sec"`
}

// StoryboardScene groups consecutive beats.
type StoryboardScene struct {
	Title string           `json:"title,omitempty" yaml:"title,omitempty"`
	Beats []StoryboardBeat `json:"beats" yaml:"beats"`
}

// StoryboardAct groups consecutive scenes.
type StoryboardAct struct {
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Scenes []StoryboardScene `json:"scenes" yaml:"scenes"`
}

// Storyboard is the durable scene→beat→duration tree the calibration stage
// reads and rewrites idempotently.
type Storyboard struct {
	Title string          `json:"title,omitempty" yaml:"title,omitempty"`
	Acts  []StoryboardAct `json:"acts" yaml:"acts"`
}
