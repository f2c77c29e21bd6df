// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package timing synthesizes speech for a voice-over script and derives
// hierarchical scene/sentence/word timing from it, cached by content hash.
// Implements: prd014-timing (R1-R4);
//
//	docs/ARCHITECTURE § Timing Extraction.
package timing

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

const (
	// DefaultTargetWPM is the speaking rate sentence estimation assumes.
	DefaultTargetWPM = 110

	// DefaultSentencePauseMs is the fixed inter-sentence pause.
	DefaultSentencePauseMs = 200

	// DefaultCacheDir holds timing metadata and audio keyed by content hash.
	DefaultCacheDir = "cache/timing"
)

// provTokenPattern strips citation markers (and the whitespace before
// them); they are not spoken.
var provTokenPattern = regexp.MustCompile(`\s*\[prov:[A-Za-z0-9_-]+\]`)

// Extractor turns a script into a TimingExtractionResult plus audio bytes.
type Extractor struct {
	synth Synthesizer
	cache *Cache
	cfg   types.TimingConfig
}

// NewExtractor builds an extractor with defaults applied for zero-valued
// config fields.
func NewExtractor(synth Synthesizer, cfg types.TimingConfig) *Extractor {
	if cfg.TargetWPM <= 0 {
		cfg.TargetWPM = DefaultTargetWPM
	}
	if cfg.SentencePauseMs <= 0 {
		cfg.SentencePauseMs = DefaultSentencePauseMs
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}
	return &Extractor{
		synth: synth,
		cache: NewCache(cfg.CacheDir),
		cfg:   cfg,
	}
}

// Extract returns the timing for the script plus the synthesized audio.
// Identical script text is served from the cache and marked as a hit, with
// no synthesis call (R2.1). Synthesis failure is fatal for the call; a
// cancelled or failed synthesis never leaves a half-written cache entry.
// Cache write failure degrades to a warning — the result is still returned.
func (e *Extractor) Extract(ctx context.Context, s *types.VOScript) (*types.TimingExtractionResult, []byte, error) {
	if len(s.Scenes) == 0 {
		return nil, nil, fmt.Errorf("script has no scenes")
	}

	full := s.FullText()
	key := CacheKey(full)

	if res, audio, ok := e.cache.Get(key); ok {
		res.CacheKey = key
		res.CacheHit = true
		return res, audio, nil
	}

	audio, err := e.synth.Synthesize(ctx, full, e.cfg.TTS.Voice, e.cfg.TTS.Speed)
	if err != nil {
		return nil, nil, fmt.Errorf("synthesizing script %s: %w", key, err)
	}

	sceneTimings, totalMs := deriveTimings(s, e.cfg.TargetWPM, e.cfg.SentencePauseMs)
	res := &types.TimingExtractionResult{
		CacheKey:        key,
		SceneTimings:    sceneTimings,
		TotalDurationMs: totalMs,
	}

	if err := e.cache.Put(key, res, audio); err != nil {
		fmt.Fprintf(os.Stderr, "warning: timing cache write failed: %v\n", err)
	}

	return res, audio, nil
}

// deriveTimings allots durations top-down: scenes proportional to their
// estimated durations, sentences proportional to word count at the target
// rate plus a fixed pause, words proportional to the syllable heuristic.
// Each level is rescaled by distribute so child durations sum exactly to
// the parent allotment (R3.1-R3.4). Times are monotonic across the whole
// program (R3.5).
func deriveTimings(s *types.VOScript, wpm int, pauseMs int64) ([]types.SceneTiming, int64) {
	sceneWeights := make([]float64, len(s.Scenes))
	var totalMs int64
	for i, sc := range s.Scenes {
		sceneWeights[i] = float64(sc.EstimatedDurationMs)
		totalMs += sc.EstimatedDurationMs
	}
	if totalMs == 0 {
		// Unestimated scripts fall back to word counts.
		for i, sc := range s.Scenes {
			sceneWeights[i] = float64(sc.WordCount)
			totalMs += int64(sc.WordCount) * 60000 / int64(wpm)
		}
	}
	sceneAllots := distribute(sceneWeights, totalMs)

	timings := make([]types.SceneTiming, 0, len(s.Scenes))
	cursor := int64(0)
	for i, sc := range s.Scenes {
		st := types.SceneTiming{
			SceneID:         sc.ID,
			StartMs:         cursor,
			EndMs:           cursor + sceneAllots[i],
			TotalDurationMs: sceneAllots[i],
		}
		st.Sentences = deriveSentences(sc.Sentences, cursor, sceneAllots[i], wpm, pauseMs)
		cursor = st.EndMs
		timings = append(timings, st)
	}
	return timings, cursor
}

func deriveSentences(sentences []string, start, allotMs int64, wpm int, pauseMs int64) []types.SentenceTiming {
	if len(sentences) == 0 {
		return nil
	}

	weights := make([]float64, len(sentences))
	for i, sent := range sentences {
		words := float64(len(spokenWords(sent)))
		weights[i] = words/float64(wpm)*60000 + float64(pauseMs)
	}
	allots := distribute(weights, allotMs)

	timings := make([]types.SentenceTiming, 0, len(sentences))
	cursor := start
	for i, sent := range sentences {
		st := types.SentenceTiming{
			Sentence: sent,
			StartMs:  cursor,
			EndMs:    cursor + allots[i],
			Words:    deriveWords(sent, cursor, allots[i]),
		}
		cursor = st.EndMs
		timings = append(timings, st)
	}
	return timings
}

func deriveWords(sentence string, start, allotMs int64) []types.WordTiming {
	words := spokenWords(sentence)
	if len(words) == 0 {
		return nil
	}

	weights := make([]float64, len(words))
	for i, w := range words {
		weights[i] = float64(estimateWordMs(w))
	}
	// Rescale so word durations sum exactly to the sentence allotment.
	allots := distribute(weights, allotMs)

	timings := make([]types.WordTiming, 0, len(words))
	cursor := start
	for i, w := range words {
		timings = append(timings, types.WordTiming{
			Word:    w,
			StartMs: cursor,
			EndMs:   cursor + allots[i],
		})
		cursor += allots[i]
	}
	return timings
}

// spokenWords splits a sentence into the words the voice actually reads.
func spokenWords(sentence string) []string {
	return strings.Fields(provTokenPattern.ReplaceAllString(sentence, ""))
}
