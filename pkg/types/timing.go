// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WordTiming is one word's start/end within the synthesized speech, in
// milliseconds from program start.
type WordTiming struct {
	Word    string `json:"word" yaml:"word"`
	StartMs int64  `json:"start_ms" yaml:"start_ms"`
	EndMs   int64  `json:"end_ms" yaml:"end_ms"`
}

// SentenceTiming is one sentence's window plus its word timings.
type SentenceTiming struct {
	Sentence string       `json:"sentence" yaml:"sentence"`
	StartMs  int64        `json:"start_ms" yaml:"start_ms"`
	EndMs    int64        `json:"end_ms" yaml:"end_ms"`
	Words    []WordTiming `json:"words" yaml:"words"`
}

// SceneTiming is one scene's window plus its sentence timings. Times are
// monotonically non-decreasing within and across scenes (prd014-timing R3.5).
type SceneTiming struct {
	SceneID         string           `json:"scene_id" yaml:"scene_id"`
	StartMs         int64            `json:"start_ms" yaml:"start_ms"`
	EndMs           int64            `json:"end_ms" yaml:"end_ms"`
	TotalDurationMs int64            `json:"total_duration_ms" yaml:"total_duration_ms"`
	Sentences       []SentenceTiming `json:"sentences" yaml:"sentences"`
}

// TimingExtractionResult is the hierarchical timing derived for one script.
// Produced once per distinct script text and immutable afterwards; repeat
// extractions for the same text are cache hits (prd014-timing R2).
type TimingExtractionResult struct {
	// CacheKey is the content hash of the concatenated script text.
	CacheKey string `json:"cache_key" yaml:"cache_key"`

	// CacheHit reports whether this result was served from the cache.
	// Per-call metadata; not persisted.
	CacheHit bool `json:"-" yaml:"-"`

	SceneTimings []SceneTiming `json:"scene_timings" yaml:"scene_timings"`

	// TotalDurationMs is the maximum scene end.
	TotalDurationMs int64 `json:"total_duration_ms" yaml:"total_duration_ms"`
}
