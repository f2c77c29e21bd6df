// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package align

import "fmt"

// DefaultMaxConcurrent is the ceiling on simultaneously active animations.
const DefaultMaxConcurrent = 3

// Span is one animation's active frame interval, endpoints inclusive.
type Span struct {
	StartFrame int64  `json:"start_frame" yaml:"start_frame"`
	EndFrame   int64  `json:"end_frame" yaml:"end_frame"`
	ID         string `json:"id" yaml:"id"`
}

// ConcurrencyViolation reports one frame where the active animation count
// exceeds the ceiling. Diagnostics only — conflicts are never auto-resolved
// (R4.3).
type ConcurrencyViolation struct {
	Frame   int64 `json:"frame" yaml:"frame"`
	Active  int   `json:"active" yaml:"active"`
	Ceiling int   `json:"ceiling" yaml:"ceiling"`
}

func (v ConcurrencyViolation) String() string {
	return fmt.Sprintf("frame %d: %d animations active (ceiling %d)", v.Frame, v.Active, v.Ceiling)
}

// ValidateConcurrency scans frame by frame across all spans and reports
// every frame at which more than ceiling animations are simultaneously
// active (R4.1, R4.2). A non-positive ceiling uses the default.
func ValidateConcurrency(spans []Span, ceiling int) []ConcurrencyViolation {
	if ceiling <= 0 {
		ceiling = DefaultMaxConcurrent
	}
	if len(spans) == 0 {
		return nil
	}

	min, max := spans[0].StartFrame, spans[0].EndFrame
	for _, s := range spans[1:] {
		if s.StartFrame < min {
			min = s.StartFrame
		}
		if s.EndFrame > max {
			max = s.EndFrame
		}
	}

	var violations []ConcurrencyViolation
	for frame := min; frame <= max; frame++ {
		active := 0
		for _, s := range spans {
			if frame >= s.StartFrame && frame <= s.EndFrame {
				active++
			}
		}
		if active > ceiling {
			violations = append(violations, ConcurrencyViolation{
				Frame:   frame,
				Active:  active,
				Ceiling: ceiling,
			})
		}
	}
	return violations
}
