// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pattern

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

func TestDecideRules(t *testing.T) {
	tests := []struct {
		name        string
		beat        types.StoryBeat
		wantPattern types.PatternID
	}{
		{
			name:        "hook beats open on a title",
			beat:        types.StoryBeat{Role: types.RoleHook, Text: "You are not short on data."},
			wantPattern: types.PatternTitle,
		},
		{
			name: "data beats render as a chart",
			beat: types.StoryBeat{
				Role: types.RoleData,
				Text: "Adoption by region",
				Series: []types.SeriesPoint{
					{Label: "North", Value: 42},
					{Label: "South", Value: 38},
				},
			},
			wantPattern: types.PatternChart,
		},
		{
			name: "timeline evidence renders as a chart regardless of role",
			beat: types.StoryBeat{
				Role:     types.RoleDefault,
				Evidence: types.EvidenceTimeline,
				Text:     "Q1: 10\nQ2: 20",
				Series: []types.SeriesPoint{
					{Label: "Q1", Value: 10},
					{Label: "Q2", Value: 20},
				},
			},
			wantPattern: types.PatternChart,
		},
		{
			name: "multiple metrics render side by side",
			beat: types.StoryBeat{
				Role:     types.RoleDefault,
				Evidence: types.EvidenceMetric,
				Text:     "Latency fell 40%, throughput rose 3x",
			},
			wantPattern: types.PatternStatRows,
		},
		{
			name: "single metric renders as a hero stat",
			beat: types.StoryBeat{
				Role:     types.RoleDefault,
				Evidence: types.EvidenceMetric,
				Text:     "Cut reporting time 40% in one quarter",
			},
			wantPattern: types.PatternStatHero,
		},
		{
			name:        "quoted material renders as a pull quote",
			beat:        types.StoryBeat{Role: types.RoleCaseStudy, Text: `The lead said "it just works" after launch.`},
			wantPattern: types.PatternQuote,
		},
		{
			name: "three list items render as steps",
			beat: types.StoryBeat{
				Role: types.RoleDefault,
				Text: "How it works:\n1. Connect the source\n2. Pick a template\n3. Schedule the report",
			},
			wantPattern: types.PatternSteps,
		},
		{
			name:        "cta beats close on a title",
			beat:        types.StoryBeat{Role: types.RoleCTA, Text: "Start a pilot this quarter."},
			wantPattern: types.PatternTitle,
		},
		{
			name:        "plain prose falls back to a callout",
			beat:        types.StoryBeat{Role: types.RoleDefault, Text: "Takeaway: the gap compounds weekly"},
			wantPattern: types.PatternCallout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decide(tt.beat, types.Class60)
			if err != nil {
				t.Fatalf("Decide: %v", err)
			}
			if d.Pattern != tt.wantPattern {
				t.Errorf("pattern = %q, want %q (rationale: %s)", d.Pattern, tt.wantPattern, d.Rationale)
			}
			if d.Props.Pattern() != tt.wantPattern {
				t.Errorf("props pattern = %q, want %q", d.Props.Pattern(), tt.wantPattern)
			}
		})
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	beat := types.StoryBeat{
		Role:     types.RoleDefault,
		Evidence: types.EvidenceMetric,
		Text:     "Latency fell 40%, throughput rose 3x",
	}

	first, err := Decide(beat, types.Class60)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	for i := 0; i < 50; i++ {
		d, err := Decide(beat, types.Class60)
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		if !reflect.DeepEqual(d, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, d, first)
		}
	}
}

func TestDecidePriorityOrder(t *testing.T) {
	// A hook beat with a quote stays a title: role rules precede content rules.
	d, err := Decide(types.StoryBeat{
		Role: types.RoleHook,
		Text: `"A quote inside a hook."`,
	}, types.Class60)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if d.Pattern != types.PatternTitle {
		t.Errorf("pattern = %q, want %q", d.Pattern, types.PatternTitle)
	}

	// Metric evidence beats a quote: the chain tests stats first.
	d, err = Decide(types.StoryBeat{
		Role:     types.RoleDefault,
		Evidence: types.EvidenceMetric,
		Text:     `"Saved 40% instantly," she said.`,
	}, types.Class60)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if d.Pattern != types.PatternStatHero {
		t.Errorf("pattern = %q, want %q", d.Pattern, types.PatternStatHero)
	}
}

func TestDecideInvalidPropsIsHardError(t *testing.T) {
	// A data beat with no numbers cannot build a chart; the mapper must
	// fail, not fall back.
	_, err := Decide(types.StoryBeat{
		Role: types.RoleData,
		Text: "All words, no numbers",
	}, types.Class60)
	if err == nil {
		t.Fatal("expected hard error for invalid chart props")
	}
	if !strings.Contains(err.Error(), "data-chart") {
		t.Errorf("error does not name the rule: %v", err)
	}

	// Metric evidence with no extractable token fails the hero schema.
	_, err = Decide(types.StoryBeat{
		Role:     types.RoleDefault,
		Evidence: types.EvidenceMetric,
		Text:     "No numbers here either",
	}, types.Class60)
	if err == nil {
		t.Fatal("expected hard error for invalid stat-hero props")
	}
	if !strings.Contains(err.Error(), "invalid props") {
		t.Errorf("error = %v", err)
	}
}

func TestStatRowsProps(t *testing.T) {
	d, err := Decide(types.StoryBeat{
		Role:     types.RoleDefault,
		Evidence: types.EvidenceMetric,
		Text:     "Latency fell 40%, throughput rose 3x, errors down 12",
	}, types.Class60)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	props, ok := d.Props.(types.StatRowsProps)
	if !ok {
		t.Fatalf("props type %T", d.Props)
	}
	if len(props.Stats) != 3 {
		t.Fatalf("got %d stats, want 3", len(props.Stats))
	}
	if props.Stats[0].Value != "40%" || props.Stats[0].Label != "Latency fell" {
		t.Errorf("stat 0 = %+v", props.Stats[0])
	}
	if props.Stats[1].Value != "3x" || props.Stats[1].Label != "throughput rose" {
		t.Errorf("stat 1 = %+v", props.Stats[1])
	}
}

func TestChartPointsFromTokens(t *testing.T) {
	d, err := Decide(types.StoryBeat{
		Role: types.RoleData,
		Text: "Grew from 12 to 55 in two quarters",
	}, types.Class60)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	props := d.Props.(types.ChartProps)
	if len(props.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(props.Points))
	}
	if props.Points[0].Value != 12 || props.Points[1].Value != 55 {
		t.Errorf("points = %+v", props.Points)
	}
}

func TestStepsCappedAtSix(t *testing.T) {
	text := "Plan:\n" + strings.Repeat("- do the thing\n", 9)
	d, err := Decide(types.StoryBeat{Role: types.RoleDefault, Text: text}, types.Class60)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	props := d.Props.(types.StepsProps)
	if len(props.Steps) != 6 {
		t.Errorf("got %d steps, want cap of 6", len(props.Steps))
	}
}

func TestCalloutSplitsTitleAtColon(t *testing.T) {
	d, err := Decide(types.StoryBeat{
		Role: types.RoleDefault,
		Text: "Takeaway: the gap compounds weekly",
	}, types.Class60)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	props := d.Props.(types.CalloutProps)
	if props.Title != "Takeaway" {
		t.Errorf("title = %q", props.Title)
	}
	if props.Body != "Takeaway: the gap compounds weekly" {
		t.Errorf("body = %q", props.Body)
	}
}

func TestClampText(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 80, "short"},
		{"cut at a word boundary not mid word", 12, "cut at a"},
		{"  trimmed  ", 80, "trimmed"},
	}
	for _, tt := range tests {
		if got := clampText(tt.in, tt.max); got != tt.want {
			t.Errorf("clampText(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
