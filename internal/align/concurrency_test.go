// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package align

import (
	"strings"
	"testing"
)

func TestValidateConcurrency(t *testing.T) {
	spans := []Span{
		{StartFrame: 0, EndFrame: 10, ID: "a"},
		{StartFrame: 5, EndFrame: 15, ID: "b"},
		{StartFrame: 8, EndFrame: 20, ID: "c"},
	}

	// Frames 8-10 have all three active; a ceiling of 2 flags exactly those.
	violations := ValidateConcurrency(spans, 2)
	if len(violations) != 3 {
		t.Fatalf("got %d violations, want 3: %v", len(violations), violations)
	}
	for i, wantFrame := range []int64{8, 9, 10} {
		v := violations[i]
		if v.Frame != wantFrame || v.Active != 3 || v.Ceiling != 2 {
			t.Errorf("violation %d = %+v, want frame %d active 3 ceiling 2", i, v, wantFrame)
		}
	}

	// The default ceiling of 3 passes the same spans.
	if violations := ValidateConcurrency(spans, 0); violations != nil {
		t.Errorf("default ceiling flagged %v", violations)
	}
}

func TestValidateConcurrencyEndpointsInclusive(t *testing.T) {
	// Two spans meeting at a single frame both count on that frame.
	spans := []Span{
		{StartFrame: 0, EndFrame: 10, ID: "a"},
		{StartFrame: 10, EndFrame: 20, ID: "b"},
	}

	violations := ValidateConcurrency(spans, 1)
	if len(violations) != 1 || violations[0].Frame != 10 {
		t.Errorf("violations = %v, want exactly frame 10", violations)
	}
}

func TestValidateConcurrencyEmpty(t *testing.T) {
	if violations := ValidateConcurrency(nil, 3); violations != nil {
		t.Errorf("got %v for no spans", violations)
	}
}

func TestConcurrencyViolationString(t *testing.T) {
	s := ConcurrencyViolation{Frame: 8, Active: 3, Ceiling: 2}.String()
	for _, want := range []string{"frame 8", "3 animations", "ceiling 2"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q missing %q", s, want)
		}
	}
}
