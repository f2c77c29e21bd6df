// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package script

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/narrative-engine/internal/brief"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

func testBrief() *types.NarrativeBrief {
	return &types.NarrativeBrief{
		ControllingIdea: "Manual reporting quietly drains analyst time every single week",
		AudienceChange:  "Automate the recurring report once and reuse it everywhere",
		Antagonist:      "Manual reporting workflows",
		Stakes:          "Ten hours a week lost per analyst",
		Promise:         "Reporting time cut in half within a month",
		NextStep:        "Start a pilot this quarter",
		ProofPillars: []string{
			"Teams cut reporting time in half",
			"Adoption grew across three regions",
		},
		Arc:               types.ArcProblemTurn,
		TargetDurationSec: 60,
		Audience:          types.AudienceGeneral,
	}
}

func TestGenerateMeetsBudget(t *testing.T) {
	for _, class := range []types.DurationClass{types.Class30, types.Class60, types.Class90} {
		t.Run(string(class), func(t *testing.T) {
			s, err := Generate(testBrief(), class, nil, types.ScriptConfig{})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			report, err := Validate(s)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !report.Clean() {
				t.Errorf("budget not met: %d words (budget %d-%d), %d scene violations",
					report.TotalWords, report.MinWords, report.MaxWords, len(report.SceneViolations))
			}
		})
	}
}

func TestGenerateEmptyProofPillars(t *testing.T) {
	// A hand-written brief file can arrive with no pillars; the proof and
	// data strategies fall back to the default pillar instead of failing.
	for _, arc := range []types.ArcID{types.ArcProblemTurn, types.ArcDataLed} {
		t.Run(string(arc), func(t *testing.T) {
			b := testBrief()
			b.Arc = arc
			b.ProofPillars = nil

			s, err := Generate(b, types.Class60, nil, types.ScriptConfig{})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			found := false
			for _, sc := range s.Scenes {
				if sc.Role != types.SceneProof && sc.Role != types.SceneData {
					continue
				}
				found = true
				if !strings.Contains(sc.Text, brief.DefaultPillar) {
					t.Errorf("%s scene %s does not carry the default pillar: %q", sc.Role, sc.ID, sc.Text)
				}
			}
			if !found {
				t.Fatal("arc produced no proof or data scene")
			}
		})
	}
}

func TestGenerateDegenerateBrief(t *testing.T) {
	// Empty fields from an external brief degrade to thin scenes, never a
	// failure; validation of such briefs is the caller's gate.
	b := &types.NarrativeBrief{Arc: types.ArcProblemTurn}

	s, err := Generate(b, types.Class30, nil, types.ScriptConfig{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tmpl, _ := brief.Template(b.Arc)
	if len(s.Scenes) != len(tmpl.Scenes) {
		t.Errorf("got %d scenes, want %d", len(s.Scenes), len(tmpl.Scenes))
	}
	for _, sc := range s.Scenes {
		if sc.WordCount != len(strings.Fields(spokenTokenPattern.ReplaceAllString(sc.Text, ""))) {
			t.Errorf("scene %s word count %d disagrees with its text %q", sc.ID, sc.WordCount, sc.Text)
		}
	}
}

func TestGenerateFollowsArcTemplate(t *testing.T) {
	b := testBrief()
	s, err := Generate(b, types.Class60, nil, types.ScriptConfig{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tmpl, _ := brief.Template(b.Arc)
	if len(s.Scenes) != len(tmpl.Scenes) {
		t.Fatalf("got %d scenes, want %d", len(s.Scenes), len(tmpl.Scenes))
	}
	for i, sc := range s.Scenes {
		if sc.Role != tmpl.Scenes[i] {
			t.Errorf("scene %d: role = %q, want %q", i, sc.Role, tmpl.Scenes[i])
		}
		wantID := []string{"scene-01", "scene-02", "scene-03", "scene-04", "scene-05", "scene-06"}[i]
		if sc.ID != wantID {
			t.Errorf("scene %d: id = %q, want %q", i, sc.ID, wantID)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(testBrief(), types.Class60, nil, types.ScriptConfig{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(testBrief(), types.Class60, nil, types.ScriptConfig{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two generations from the same brief differ")
	}
}

func TestGenerateEvidenceTokens(t *testing.T) {
	provs := []types.Provenance{{ID: "case-2026", Label: "Pilot case study"}}
	s, err := Generate(testBrief(), types.Class60, provs, types.ScriptConfig{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var proof *types.VOScene
	for i := range s.Scenes {
		if s.Scenes[i].Role == types.SceneProof {
			proof = &s.Scenes[i]
		}
	}
	if proof == nil {
		t.Fatal("no proof scene generated")
	}
	if !strings.Contains(proof.Text, "[prov:case-2026]") {
		t.Errorf("proof scene has no citation marker: %q", proof.Text)
	}
	if len(proof.EvidenceTokens) != 1 || proof.EvidenceTokens[0].ID != "case-2026" {
		t.Errorf("evidence tokens = %+v", proof.EvidenceTokens)
	}
	if proof.EvidenceTokens[0].Label != "Pilot case study" {
		t.Errorf("token label = %q", proof.EvidenceTokens[0].Label)
	}

	// The marker is read by the renderer, not the voice.
	if allWords := len(strings.Fields(proof.Text)); proof.WordCount != allWords-1 {
		t.Errorf("word count %d should exclude the citation marker (%d raw fields)",
			proof.WordCount, allWords)
	}
}

func TestGenerateUnknownArc(t *testing.T) {
	b := testBrief()
	b.Arc = "unknown"
	if _, err := Generate(b, types.Class60, nil, types.ScriptConfig{}); err == nil {
		t.Fatal("expected error for unknown arc")
	}
}

func TestGenerateUnknownClass(t *testing.T) {
	if _, err := Generate(testBrief(), "45s", nil, types.ScriptConfig{}); err == nil {
		t.Fatal("expected error for unknown duration class")
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"One. Two!", []string{"One.", "Two!"}},
		{"Really?! Yes...", []string{"Really?!", "Yes..."}},
		{"No terminator", []string{"No terminator"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitSentences(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitSentences(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCountSpokenWords(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Five plain words right here.", 5},
		{"Cited claim [prov:p1].", 2},
		{"", 0},
	}
	for _, tt := range tests {
		if got := countSpokenWords(tt.in); got != tt.want {
			t.Errorf("countSpokenWords(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWithToken(t *testing.T) {
	if got := withToken("The claim.", "p1"); got != "The claim [prov:p1]." {
		t.Errorf("withToken = %q", got)
	}
	if got := withToken("No terminator", "p1"); got != "No terminator [prov:p1]" {
		t.Errorf("withToken = %q", got)
	}
}
