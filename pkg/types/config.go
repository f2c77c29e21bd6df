package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "narrative-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// TTSConfig holds settings for the speech synthesis collaborator.
// Per prd014-timing R4.1-R4.4.
type TTSConfig struct {
	HTTPConfig `yaml:",inline"`

	// Voice is the synthesis voice identifier (e.g. "aura-asteria-en").
	Voice string `json:"voice" yaml:"voice"`

	// Speed is the playback speed. The default of 1.0 is deliberate:
	// timing estimation assumes neutral pacing (R4.2).
	Speed float64 `json:"speed" yaml:"speed"`

	// APIKey authenticates against the synthesis API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the retry budget for rate-limited synthesis calls.
	// Retry policy belongs to the caller; zero means no retries (R4.4).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// TimingConfig holds settings for the timing extraction stage.
type TimingConfig struct {
	// CacheDir is the directory holding timing metadata and audio files
	// keyed by content hash.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// TargetWPM is the speaking rate timing estimation assumes (default 110).
	TargetWPM int `json:"target_wpm" yaml:"target_wpm"`

	// SentencePauseMs is the fixed inter-sentence pause (default 200).
	SentencePauseMs int64 `json:"sentence_pause_ms" yaml:"sentence_pause_ms"`

	TTS TTSConfig `json:"tts" yaml:"tts"`
}

// ScriptConfig holds settings for the voice-over script stage.
type ScriptConfig struct {
	// TargetWPM is the speaking rate duration estimates assume (default 110).
	TargetWPM int `json:"target_wpm" yaml:"target_wpm"`
}

// AlignConfig holds settings for cue alignment and concurrency validation.
// Per prd015-alignment R1.3, R4.2.
type AlignConfig struct {
	// FPS is the target frame rate (default 30).
	FPS int `json:"fps" yaml:"fps"`

	// ToleranceSec is the maximum reveal-to-cue offset still considered
	// aligned (default 0.2).
	ToleranceSec float64 `json:"tolerance_sec" yaml:"tolerance_sec"`

	// MaxConcurrent is the ceiling on simultaneously active animations
	// (default 3).
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`
}

// OverheadConfig holds the fixed inter-unit gap constants, each
// independently configurable (prd015-alignment R3.2).
type OverheadConfig struct {
	BeatGapSec  int `json:"beat_gap_sec" yaml:"beat_gap_sec"`
	SceneGapSec int `json:"scene_gap_sec" yaml:"scene_gap_sec"`
	ActGapSec   int `json:"act_gap_sec" yaml:"act_gap_sec"`
}

// StoreConfig holds settings for the plan store.
type StoreConfig struct {
	// PlansDir is the directory holding plan documents and the index database.
	PlansDir string `json:"plans_dir" yaml:"plans_dir"`

	// MaxResults is the default maximum number of listed plans (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Script   ScriptConfig   `json:"script" yaml:"script"`
	Timing   TimingConfig   `json:"timing" yaml:"timing"`
	Align    AlignConfig    `json:"align" yaml:"align"`
	Overhead OverheadConfig `json:"overhead" yaml:"overhead"`
	Store    StoreConfig    `json:"store" yaml:"store"`
}
