// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan reconciles the script, pattern decisions, and speech timing
// into the final render plan the rendering collaborator consumes.
// Implements: prd016-plan (R1-R3);
//
//	docs/ARCHITECTURE § Render Plan.
package plan

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// DefaultPlansDir holds assembled plan documents and the index database.
const DefaultPlansDir = "plans"

// Assemble builds a RenderPlan from one script, its pattern decisions, and
// its extracted timing. The three inputs must describe the same scenes in
// the same order (R1.1). Scene durations come from timing, converted to
// frames; word timings become the per-scene reveal cue list (R1.2).
func Assemble(title string, s *types.VOScript, decisions []types.PatternDecision, timing *types.TimingExtractionResult, fps int, overhead types.OverheadConfig) (*types.RenderPlan, error) {
	if len(decisions) != len(s.Scenes) {
		return nil, fmt.Errorf("have %d pattern decisions for %d scenes", len(decisions), len(s.Scenes))
	}
	if len(timing.SceneTimings) != len(s.Scenes) {
		return nil, fmt.Errorf("have timing for %d scenes, script has %d", len(timing.SceneTimings), len(s.Scenes))
	}
	if fps <= 0 {
		fps = 30
	}

	p := &types.RenderPlan{
		ID:        uuid.NewString(),
		Title:     title,
		Class:     s.Class,
		FPS:       fps,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for i, sc := range s.Scenes {
		st := timing.SceneTimings[i]
		if st.SceneID != sc.ID {
			return nil, fmt.Errorf("timing scene %q does not match script scene %q", st.SceneID, sc.ID)
		}
		// Props were validated at decision time; re-check before the plan
		// leaves the pipeline.
		if err := decisions[i].Props.Validate(); err != nil {
			return nil, fmt.Errorf("scene %s: %w", sc.ID, err)
		}

		p.Scenes = append(p.Scenes, types.PlannedScene{
			SceneID:        sc.ID,
			Role:           sc.Role,
			Pattern:        decisions[i].Pattern,
			Props:          decisions[i].Props,
			DurationFrames: msToFrames(st.TotalDurationMs, fps),
			Cues:           sceneCues(sc.ID, st, fps),
		})
	}

	p.EstimatedTotalDurationSec = estimateTotalSec(timing, len(s.Scenes), overhead)
	return p, nil
}

// sceneCues anchors one reveal cue per word, relative to the scene start.
func sceneCues(sceneID string, st types.SceneTiming, fps int) []types.PlanCue {
	var cues []types.PlanCue
	n := 0
	for _, sent := range st.Sentences {
		for _, w := range sent.Words {
			cues = append(cues, types.PlanCue{
				Frame: msToFrames(w.StartMs-st.StartMs, fps),
				ID:    fmt.Sprintf("%s-word-%03d", sceneID, n),
			})
			n++
		}
	}
	return cues
}

// estimateTotalSec adds inter-scene overhead to the spoken duration. A plan
// is one act of single-beat scenes, so only scene gaps apply.
func estimateTotalSec(timing *types.TimingExtractionResult, sceneCount int, cfg types.OverheadConfig) int {
	spoken := int(math.Ceil(float64(timing.TotalDurationMs) / 1000.0))
	gap := cfg.SceneGapSec
	if gap == 0 {
		gap = 1
	}
	if sceneCount > 1 {
		spoken += (sceneCount - 1) * gap
	}
	return spoken
}

func msToFrames(ms int64, fps int) int64 {
	return int64(math.Round(float64(ms) * float64(fps) / 1000.0))
}

// Write persists the plan as plans/<id>.yaml and returns the path.
func Write(dir string, p *types.RenderPlan) (string, error) {
	if dir == "" {
		dir = DefaultPlansDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating plans directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshaling plan: %w", err)
	}
	path := filepath.Join(dir, p.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing plan: %w", err)
	}
	return path, nil
}

// numericTokenPattern mirrors the pattern mapper's metric detection so a
// scene is only recast as a data beat when a chart can actually be built.
var numericTokenPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?(?:%|x|X)?`)

// BeatForScene recasts a generated scene as a story beat so the pattern
// mapper can classify it. Scene roles map onto their nearest beat role;
// data and proof scenes only keep the data role when their text carries
// enough numbers to chart.
func BeatForScene(sc types.VOScene) types.StoryBeat {
	beat := types.StoryBeat{Text: sc.Text, Evidence: types.EvidenceNone}
	tokens := len(numericTokenPattern.FindAllString(sc.Text, -1))

	switch sc.Role {
	case types.SceneHook:
		beat.Role = types.RoleHook
	case types.SceneCTA:
		beat.Role = types.RoleCTA
	case types.SceneProblem:
		beat.Role = types.RoleProblem
	case types.SceneCase:
		beat.Role = types.RoleCaseStudy
	case types.SceneData, types.SceneProof:
		if tokens >= 2 {
			beat.Role = types.RoleData
		} else {
			beat.Role = types.RoleDefault
		}
	default:
		beat.Role = types.RoleDefault
	}

	if beat.Role != types.RoleData && beat.Role != types.RoleHook && beat.Role != types.RoleCTA && tokens >= 1 {
		beat.Evidence = types.EvidenceMetric
	}
	return beat
}
