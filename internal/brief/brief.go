// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package brief synthesizes a validated NarrativeBrief from extracted insights.
// Implements: prd011-brief (R1-R4);
//
//	docs/ARCHITECTURE § Narrative Brief.
package brief

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// ArcTemplate is one fixed narrative arc: an ordered scene-role sequence and
// the runtime fraction by which the narrative turn must occur (R3.2).
type ArcTemplate struct {
	Scenes []types.SceneRole
	TurnBy float64
}

// arcTemplates is the closed set of arcs (R3.1). TurnBy stays in [0.3, 0.4].
var arcTemplates = map[types.ArcID]ArcTemplate{
	types.ArcProblemTurn: {
		Scenes: []types.SceneRole{
			types.SceneHook, types.SceneProblem, types.SceneTurn,
			types.SceneApproach, types.SceneProof, types.SceneCTA,
		},
		TurnBy: 0.35,
	},
	types.ArcCaseLed: {
		Scenes: []types.SceneRole{
			types.SceneHook, types.SceneCase, types.SceneProblem,
			types.SceneApproach, types.SceneProof, types.SceneCTA,
		},
		TurnBy: 0.4,
	},
	types.ArcDataLed: {
		Scenes: []types.SceneRole{
			types.SceneHook, types.SceneData, types.SceneProblem,
			types.SceneTurn, types.SceneProof, types.SceneCTA,
		},
		TurnBy: 0.3,
	},
}

// Template returns the arc template for id.
func Template(id types.ArcID) (ArcTemplate, bool) {
	t, ok := arcTemplates[id]
	return t, ok
}

// Arcs returns the known arc ids.
func Arcs() []types.ArcID {
	return []types.ArcID{types.ArcProblemTurn, types.ArcCaseLed, types.ArcDataLed}
}

// Conservative defaults substituted for absent insight fields (R2.3).
const (
	defaultControllingIdea = "The problem is not effort but where the effort goes"
	defaultAudienceChange  = "See the hidden cost and a credible way out"
	defaultAntagonist      = "Status quo inefficiency"
	defaultStakes          = "Falling behind while competitors compound small wins"
	defaultPromise         = "A measurable improvement within one quarter"
	defaultNextStep        = "Take the next step today"
)

// DefaultPillar stands in when a brief carries no proof pillars. Downstream
// consumers of externally supplied briefs fall back to it too.
const DefaultPillar = "Proven in production"

// New builds a NarrativeBrief from insights. Missing insight fields are
// replaced by conservative defaults rather than causing failure (R2.3);
// overlong fields are truncated at generation time. The returned brief
// always passes Validate — there is no partial brief (R2.1).
func New(in types.Insights, targetDurationSec int, arc types.ArcID, audience types.Audience) (*types.NarrativeBrief, error) {
	if _, ok := arcTemplates[arc]; !ok {
		return nil, fmt.Errorf("unknown arc %q", arc)
	}
	if audience == "" {
		audience = types.AudienceGeneral
	}

	b := &types.NarrativeBrief{
		ControllingIdea:   defaultControllingIdea,
		AudienceChange:    defaultAudienceChange,
		Antagonist:        defaultAntagonist,
		Stakes:            defaultStakes,
		Promise:           defaultPromise,
		NextStep:          defaultNextStep,
		Arc:               arc,
		TargetDurationSec: targetDurationSec,
		Audience:          audience,
	}

	if p := in.Problem; p != nil {
		if p.Statement != "" {
			b.ControllingIdea = clamp(p.Statement, types.BriefFieldMax)
		}
		if p.Antagonist != "" {
			b.Antagonist = clamp(p.Antagonist, types.BriefFieldMax)
		}
		if p.Stakes != "" {
			b.Stakes = clamp(p.Stakes, types.BriefFieldMax)
		}
	}
	if s := in.Solution; s != nil {
		if s.Approach != "" {
			b.AudienceChange = clamp(s.Approach, types.BriefFieldMax)
		}
		if s.Promise != "" {
			b.Promise = clamp(s.Promise, types.BriefFieldMax)
		}
		if s.NextStep != "" {
			b.NextStep = clamp(s.NextStep, types.BriefFieldMax)
		}
	}
	if pr := in.Proof; pr != nil && len(pr.Pillars) > 0 {
		for _, pillar := range pr.Pillars {
			if pillar == "" {
				continue
			}
			b.ProofPillars = append(b.ProofPillars, clamp(pillar, types.BriefFieldMax))
			if len(b.ProofPillars) == types.MaxProofPillars {
				break
			}
		}
	}
	if len(b.ProofPillars) == 0 {
		b.ProofPillars = []string{DefaultPillar}
	}

	if err := Validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks every brief invariant and names the violated field and
// constraint (R4). Validation failure rejects the whole brief.
func Validate(b *types.NarrativeBrief) error {
	fields := map[string]string{
		"controlling_idea": b.ControllingIdea,
		"audience_change":  b.AudienceChange,
		"antagonist":       b.Antagonist,
		"stakes":           b.Stakes,
		"promise":          b.Promise,
		"next_step":        b.NextStep,
	}
	for name, v := range fields {
		if v == "" {
			return fmt.Errorf("brief field %s: must not be empty", name)
		}
		if len(v) > types.BriefFieldMax {
			return fmt.Errorf("brief field %s: %d characters exceeds maximum of %d", name, len(v), types.BriefFieldMax)
		}
	}

	if len(b.ProofPillars) == 0 {
		return fmt.Errorf("brief field proof_pillars: must have at least 1 entry")
	}
	if len(b.ProofPillars) > types.MaxProofPillars {
		return fmt.Errorf("brief field proof_pillars: %d entries exceeds maximum of %d", len(b.ProofPillars), types.MaxProofPillars)
	}
	for i, p := range b.ProofPillars {
		if len(p) > types.BriefFieldMax {
			return fmt.Errorf("brief field proof_pillars[%d]: %d characters exceeds maximum of %d", i, len(p), types.BriefFieldMax)
		}
	}

	if _, ok := arcTemplates[b.Arc]; !ok {
		return fmt.Errorf("brief field arc: unknown arc %q", b.Arc)
	}
	if b.TargetDurationSec < 30 || b.TargetDurationSec > 90 {
		return fmt.Errorf("brief field target_duration_sec: %d outside range [30, 90]", b.TargetDurationSec)
	}
	switch b.Audience {
	case types.AudienceExec, types.AudienceTechnical, types.AudienceGeneral:
	default:
		return fmt.Errorf("brief field audience: unknown audience %q", b.Audience)
	}
	return nil
}

// clamp truncates s to at most max bytes without splitting a rune, then
// trims a trailing partial word.
func clamp(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	s = s[:cut]
	if idx := strings.LastIndexByte(s, ' '); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
