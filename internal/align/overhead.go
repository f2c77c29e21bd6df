// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package align

import "github.com/pdiddy/narrative-engine/pkg/types"

// Default gap constants, each independently configurable (R3.2).
const (
	DefaultBeatGapSec  = 1
	DefaultSceneGapSec = 1
	DefaultActGapSec   = 2
)

// Overhead accounts for the fixed inter-unit gap time of a storyboard:
// a gap after every beat except the last in its scene, after every scene
// except the last in its act, and after every act except the last (R3.1).
type Overhead struct {
	BeatGaps  int `json:"beat_gaps" yaml:"beat_gaps"`
	SceneGaps int `json:"scene_gaps" yaml:"scene_gaps"`
	ActGaps   int `json:"act_gaps" yaml:"act_gaps"`

	BeatGapSec  int `json:"beat_gap_sec" yaml:"beat_gap_sec"`
	SceneGapSec int `json:"scene_gap_sec" yaml:"scene_gap_sec"`
	ActGapSec   int `json:"act_gap_sec" yaml:"act_gap_sec"`
}

// TotalSec is the summed gap time.
func (o Overhead) TotalSec() int {
	return o.BeatGaps*o.BeatGapSec + o.SceneGaps*o.SceneGapSec + o.ActGaps*o.ActGapSec
}

// CountOverhead tallies the gaps of a storyboard against the configured
// gap constants. Zero-valued constants fall back to the defaults.
func CountOverhead(sb *types.Storyboard, cfg types.OverheadConfig) Overhead {
	o := Overhead{
		BeatGapSec:  cfg.BeatGapSec,
		SceneGapSec: cfg.SceneGapSec,
		ActGapSec:   cfg.ActGapSec,
	}
	if o.BeatGapSec == 0 {
		o.BeatGapSec = DefaultBeatGapSec
	}
	if o.SceneGapSec == 0 {
		o.SceneGapSec = DefaultSceneGapSec
	}
	if o.ActGapSec == 0 {
		o.ActGapSec = DefaultActGapSec
	}

	for _, act := range sb.Acts {
		for _, scene := range act.Scenes {
			if n := len(scene.Beats); n > 1 {
				o.BeatGaps += n - 1
			}
		}
		if n := len(act.Scenes); n > 1 {
			o.SceneGaps += n - 1
		}
	}
	if n := len(sb.Acts); n > 1 {
		o.ActGaps += n - 1
	}
	return o
}

// EstimateTotalSec reconciles the program duration: the sum of all beat
// durations plus the summed overhead (R3.3).
func EstimateTotalSec(sb *types.Storyboard, cfg types.OverheadConfig) int {
	total := 0
	for _, act := range sb.Acts {
		for _, scene := range act.Scenes {
			for _, beat := range scene.Beats {
				total += beat.DurationSec
			}
		}
	}
	return total + CountOverhead(sb, cfg).TotalSec()
}
