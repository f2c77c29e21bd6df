// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package align anchors visual reveals to speech timing: nearest-cue
// alignment, single-reference calibration, overhead reconciliation, and
// animation concurrency validation.
// Implements: prd015-alignment (R1-R4);
//
//	docs/ARCHITECTURE § Alignment & Calibration.
package align

import (
	"fmt"
	"math"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// DefaultToleranceSec is the reveal-to-cue offset still considered aligned.
const DefaultToleranceSec = 0.2

// DefaultFPS is the target frame rate.
const DefaultFPS = 30

// ApplyDefaults fills the zero fields of an alignment configuration.
func ApplyDefaults(cfg types.AlignConfig) types.AlignConfig {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.ToleranceSec <= 0 {
		cfg.ToleranceSec = DefaultToleranceSec
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	return cfg
}

// Reveal is a planned visual reveal at a frame.
type Reveal struct {
	Frame int64  `json:"frame" yaml:"frame"`
	ID    string `json:"id" yaml:"id"`
}

// Cue is an extracted speech event at a frame.
type Cue struct {
	Frame int64  `json:"frame" yaml:"frame"`
	ID    string `json:"id" yaml:"id"`
}

// RevealAlignment matches one reveal to its nearest cue. Aligned is set
// only when the frame offset is within tolerance; misaligned reveals are
// reported, never corrected (R1.2).
type RevealAlignment struct {
	RevealID     string `json:"reveal_id" yaml:"reveal_id"`
	RevealFrame  int64  `json:"reveal_frame" yaml:"reveal_frame"`
	CueID        string `json:"cue_id" yaml:"cue_id"`
	CueFrame     int64  `json:"cue_frame" yaml:"cue_frame"`
	OffsetFrames int64  `json:"offset_frames" yaml:"offset_frames"`
	Aligned      bool   `json:"aligned" yaml:"aligned"`
}

// ToleranceFrames converts a tolerance in seconds to frames at fps,
// rounded to nearest.
func ToleranceFrames(toleranceSec float64, fps int) int64 {
	return int64(math.Round(toleranceSec * float64(fps)))
}

// AlignReveals matches each reveal to its nearest cue by absolute frame
// distance (R1.1). With no cues every reveal is reported unaligned.
func AlignReveals(reveals []Reveal, cues []Cue, toleranceFrames int64) []RevealAlignment {
	alignments := make([]RevealAlignment, 0, len(reveals))

	for _, r := range reveals {
		a := RevealAlignment{RevealID: r.ID, RevealFrame: r.Frame}
		best := int64(math.MaxInt64)
		for _, c := range cues {
			d := r.Frame - c.Frame
			if d < 0 {
				d = -d
			}
			if d < best {
				best = d
				a.CueID = c.ID
				a.CueFrame = c.Frame
				a.OffsetFrames = d
			}
		}
		a.Aligned = a.CueID != "" && a.OffsetFrames <= toleranceFrames
		alignments = append(alignments, a)
	}

	return alignments
}

// Unaligned filters the reveals that fell outside tolerance.
func Unaligned(alignments []RevealAlignment) []RevealAlignment {
	var out []RevealAlignment
	for _, a := range alignments {
		if !a.Aligned {
			out = append(out, a)
		}
	}
	return out
}

// Summarize formats one alignment as a diagnostic line.
func Summarize(a RevealAlignment) string {
	if a.CueID == "" {
		return fmt.Sprintf("reveal %s @%d: no cue available", a.RevealID, a.RevealFrame)
	}
	status := "aligned"
	if !a.Aligned {
		status = "MISALIGNED"
	}
	return fmt.Sprintf("reveal %s @%d -> cue %s @%d (offset %d frames, %s)",
		a.RevealID, a.RevealFrame, a.CueID, a.CueFrame, a.OffsetFrames, status)
}
