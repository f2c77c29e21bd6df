// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pattern

import (
	"context"
	"strings"
	"testing"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

func TestMapBeatsKeepsOrder(t *testing.T) {
	beats := []types.StoryBeat{
		{Role: types.RoleHook, Text: "Opening line."},
		{Role: types.RoleDefault, Evidence: types.EvidenceMetric, Text: "Saved 40% of the budget"},
		{Role: types.RoleDefault, Text: `"It just works," said the lead.`},
		{Role: types.RoleCTA, Text: "Start a pilot this quarter."},
	}

	decisions, err := MapBeats(context.Background(), beats, types.Class60)
	if err != nil {
		t.Fatalf("MapBeats: %v", err)
	}
	if len(decisions) != len(beats) {
		t.Fatalf("got %d decisions, want %d", len(decisions), len(beats))
	}

	want := []types.PatternID{
		types.PatternTitle,
		types.PatternStatHero,
		types.PatternQuote,
		types.PatternTitle,
	}
	for i, w := range want {
		if decisions[i].Pattern != w {
			t.Errorf("decision %d: pattern = %q, want %q", i, decisions[i].Pattern, w)
		}
	}
}

func TestMapBeatsReportsFailingBeat(t *testing.T) {
	beats := []types.StoryBeat{
		{Role: types.RoleHook, Text: "Fine."},
		{Role: types.RoleData, Text: "no numbers to chart"},
	}

	_, err := MapBeats(context.Background(), beats, types.Class60)
	if err == nil {
		t.Fatal("expected error from unchartable data beat")
	}
	if !strings.Contains(err.Error(), "beat 1") {
		t.Errorf("error does not name the beat: %v", err)
	}
}

func TestMapBeatsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	beats := make([]types.StoryBeat, 64)
	for i := range beats {
		beats[i] = types.StoryBeat{Role: types.RoleHook, Text: "Opening line."}
	}

	if _, err := MapBeats(ctx, beats, types.Class60); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestMapBeatsEmpty(t *testing.T) {
	decisions, err := MapBeats(context.Background(), nil, types.Class60)
	if err != nil {
		t.Fatalf("MapBeats: %v", err)
	}
	if len(decisions) != 0 {
		t.Errorf("got %d decisions, want 0", len(decisions))
	}
}
