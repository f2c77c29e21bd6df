// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package align

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// Unit selects how calibration measures text length.
type Unit string

const (
	UnitCharacters Unit = "characters"
	UnitWords      Unit = "words"
)

// TextField selects which beat text calibration measures.
type TextField string

const (
	FieldNarration TextField = "text"
	FieldOnScreen  TextField = "onscreen"
)

// Rate is a pacing rate in units per second derived from one calibration
// beat (R2.1).
type Rate struct {
	UnitsPerSec float64
	Unit        Unit
	Field       TextField
}

// NewRate derives the pacing rate from the reference beat's text and its
// declared duration. Calibration input that cannot produce a rate is an
// error — the one case the calibration CLI exits non-zero on (R2.2).
func NewRate(referenceText string, referenceDurationSec int, unit Unit, field TextField) (Rate, error) {
	if referenceDurationSec <= 0 {
		return Rate{}, fmt.Errorf("calibration beat has no usable duration (%d sec)", referenceDurationSec)
	}
	n := countUnits(referenceText, unit)
	if n == 0 {
		return Rate{}, fmt.Errorf("calibration beat has empty %s text", field)
	}
	return Rate{
		UnitsPerSec: float64(n) / float64(referenceDurationSec),
		Unit:        unit,
		Field:       field,
	}, nil
}

// BeatDuration applies the rate to one beat's text length: ceil(units/rate),
// never below 1 second (R2.3).
func (r Rate) BeatDuration(text string) int {
	n := countUnits(text, r.Unit)
	d := int(math.Ceil(float64(n) / r.UnitsPerSec))
	if d < 1 {
		d = 1
	}
	return d
}

// Retime applies one rate to every beat of the storyboard, in place. The
// single calibration point produces internally consistent pacing; no other
// beat's original duration is consulted (R2.5).
func Retime(sb *types.Storyboard, rate Rate) {
	for ai := range sb.Acts {
		for si := range sb.Acts[ai].Scenes {
			for bi := range sb.Acts[ai].Scenes[si].Beats {
				beat := &sb.Acts[ai].Scenes[si].Beats[bi]
				beat.DurationSec = rate.BeatDuration(beatText(*beat, rate.Field))
			}
		}
	}
}

// beatText selects the measured field of a beat.
func beatText(b types.StoryboardBeat, field TextField) string {
	if field == FieldOnScreen {
		return b.OnScreenText
	}
	return b.Text
}

func countUnits(text string, unit Unit) int {
	if unit == UnitWords {
		return len(strings.Fields(text))
	}
	return len(text)
}

// ParseUnit validates a unit flag value.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitCharacters, UnitWords:
		return Unit(s), nil
	}
	return "", fmt.Errorf("unknown unit %q (want %q or %q)", s, UnitCharacters, UnitWords)
}

// ParseTextField validates a text field flag value.
func ParseTextField(s string) (TextField, error) {
	switch TextField(s) {
	case FieldNarration, FieldOnScreen:
		return TextField(s), nil
	}
	return "", fmt.Errorf("unknown text field %q (want %q or %q)", s, FieldNarration, FieldOnScreen)
}
