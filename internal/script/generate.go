// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package script generates word-budgeted voice-over scripts from a
// narrative brief and validates them against the budget table.
// Implements: prd012-voscript (R1-R4);
//
//	docs/ARCHITECTURE § VO Script.
package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/narrative-engine/internal/brief"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

// DefaultTargetWPM is the speaking rate duration estimates assume (R2.4).
const DefaultTargetWPM = 110

// fitSlack is how many words past the per-scene target a sentence may
// overshoot before the fit stops adding.
const fitSlack = 2

// rebalance gives up after this many adjustment passes.
const maxRebalancePasses = 24

// fillers pad a script that lands under budget after the per-scene fit.
var fillers = []string{
	"The evidence points one way.",
	"The gap keeps widening.",
	"Small changes compound quickly.",
	"The pattern repeats across teams.",
}

// Generate emits one scene per role in the brief's arc template, each built
// from a role-specific strategy over brief fields (R2.1, R2.2). The word
// target per scene is floor(budgetMax / sceneCount); actual counts vary by
// strategy and are rebalanced toward the class budget afterwards.
func Generate(b *types.NarrativeBrief, class types.DurationClass, provs []types.Provenance, cfg types.ScriptConfig) (*types.VOScript, error) {
	tmpl, ok := brief.Template(b.Arc)
	if !ok {
		return nil, fmt.Errorf("unknown arc %q", b.Arc)
	}
	budget, ok := types.WordBudgets[class]
	if !ok {
		return nil, fmt.Errorf("unknown duration class %q", class)
	}
	wpm := cfg.TargetWPM
	if wpm <= 0 {
		wpm = DefaultTargetWPM
	}

	target := budget.MaxWords / len(tmpl.Scenes)

	scenes := make([]types.VOScene, 0, len(tmpl.Scenes))
	leftovers := make([][]string, 0, len(tmpl.Scenes))
	for i, role := range tmpl.Scenes {
		cands := candidates(role, b, provs)
		picked, rest := fitSentences(cands, target, budget.MaxSentencesPerScene)
		id := fmt.Sprintf("scene-%02d", i+1)
		scenes = append(scenes, buildScene(id, role, strings.Join(picked, " "), provs, wpm))
		leftovers = append(leftovers, rest)
	}

	s := &types.VOScript{Class: class, Scenes: scenes}
	rebalance(s, budget, leftovers, provs, wpm)
	return s, nil
}

// candidates returns the ordered sentence candidates for a scene role, all
// drawn from brief fields (R2.2). The first candidate is the one a scene
// can never drop.
func candidates(role types.SceneRole, b *types.NarrativeBrief, provs []types.Provenance) []string {
	// Externally supplied briefs may arrive with no pillars at all.
	pillar := func(i int) string {
		if len(b.ProofPillars) == 0 {
			return brief.DefaultPillar
		}
		if i < len(b.ProofPillars) {
			return b.ProofPillars[i]
		}
		return b.ProofPillars[len(b.ProofPillars)-1]
	}

	switch role {
	case types.SceneHook:
		return []string{
			sentence(b.ControllingIdea),
			"Here is what that changes: " + sentence(b.AudienceChange),
		}
	case types.SceneProblem:
		return []string{
			sentence(b.Antagonist) + " The cost: " + sentence(b.Stakes),
			"Every week it goes unaddressed, the gap grows.",
		}
	case types.SceneTurn:
		return []string{
			"It does not have to work this way.",
			"The turn is simple: " + sentence(b.AudienceChange),
		}
	case types.SceneApproach:
		return []string{
			sentence(b.AudienceChange),
			"That is the promise: " + sentence(b.Promise),
		}
	case types.SceneCase:
		return []string{
			"Consider what happened in practice: " + sentence(pillar(0)),
			sentence(b.Promise),
		}
	case types.SceneData:
		return []string{
			"The numbers tell the story: " + sentence(pillar(0)),
			sentence(pillar(1)),
		}
	case types.SceneProof:
		first := sentence(pillar(0))
		if len(provs) > 0 {
			first = withToken(first, provs[0].ID)
		}
		return []string{
			first,
			"The payoff: " + sentence(b.Promise),
		}
	case types.SceneCTA:
		return []string{
			sentence(b.NextStep),
			sentence(b.Promise),
		}
	default:
		return []string{sentence(b.ControllingIdea)}
	}
}

// sentence normalizes a brief field into a terminated sentence.
func sentence(field string) string {
	s := strings.TrimSpace(field)
	if s == "" {
		return s
	}
	if !strings.ContainsAny(s[len(s)-1:], ".!?") {
		s += "."
	}
	return s
}

// withToken inserts a [prov:<id>] citation marker before the terminator.
func withToken(s, id string) string {
	if s == "" {
		return s
	}
	term := s[len(s)-1:]
	if strings.ContainsAny(term, ".!?") {
		return s[:len(s)-1] + " [prov:" + id + "]" + term
	}
	return s + " [prov:" + id + "]"
}

// fitSentences picks candidates in order until the scene target or the
// sentence cap is reached. A scene always keeps its first candidate.
func fitSentences(cands []string, targetWords, maxSentences int) (picked, rest []string) {
	words := 0
	for i, c := range cands {
		if c == "" {
			continue
		}
		w := countSpokenWords(c)
		if len(picked) > 0 && (len(picked) == maxSentences || words+w > targetWords+fitSlack) {
			rest = append(rest, cands[i:]...)
			break
		}
		picked = append(picked, c)
		words += w
	}
	return picked, rest
}

// buildScene derives sentences, evidence tokens, word count, and the
// estimated duration for one scene (R2.3, R2.4, R3).
func buildScene(id string, role types.SceneRole, text string, provs []types.Provenance, wpm int) types.VOScene {
	wc := countSpokenWords(text)
	return types.VOScene{
		ID:                  id,
		Role:                role,
		Text:                text,
		Sentences:           splitSentences(text),
		EvidenceTokens:      ExtractEvidenceTokens(text, provs),
		WordCount:           wc,
		EstimatedDurationMs: int64(wc) * 60000 / int64(wpm),
	}
}

// rebalance nudges the script toward the class budget: over-budget scripts
// drop trailing sentences from the wordiest multi-sentence scene, under-budget
// scripts take unused candidates (then stock fillers) into the lightest scene
// below its sentence cap. Scenes are never reordered (R2.5).
func rebalance(s *types.VOScript, budget types.WordBudget, leftovers [][]string, provs []types.Provenance, wpm int) {
	for pass := 0; pass < maxRebalancePasses; pass++ {
		total := s.TotalWords()
		switch {
		case total > budget.MaxWords:
			idx := -1
			most := 0
			for i, sc := range s.Scenes {
				if len(sc.Sentences) > 1 && sc.WordCount > most {
					most = sc.WordCount
					idx = i
				}
			}
			if idx < 0 {
				return
			}
			kept := s.Scenes[idx].Sentences[:len(s.Scenes[idx].Sentences)-1]
			s.Scenes[idx] = buildScene(s.Scenes[idx].ID, s.Scenes[idx].Role, strings.Join(kept, " "), provs, wpm)

		case total < budget.MinWords:
			idx := -1
			fewest := int(^uint(0) >> 1)
			for i, sc := range s.Scenes {
				if len(sc.Sentences) < budget.MaxSentencesPerScene && sc.WordCount < fewest {
					fewest = sc.WordCount
					idx = i
				}
			}
			if idx < 0 {
				return
			}
			var add string
			if len(leftovers[idx]) > 0 {
				add = leftovers[idx][0]
				leftovers[idx] = leftovers[idx][1:]
			} else {
				add = fillers[pass%len(fillers)]
			}
			text := strings.TrimSpace(s.Scenes[idx].Text + " " + add)
			s.Scenes[idx] = buildScene(s.Scenes[idx].ID, s.Scenes[idx].Role, text, provs, wpm)

		default:
			return
		}
	}
}

// splitSentences splits text on sentence terminators, keeping the
// terminator with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		// Consume runs of terminators ("?!", "...").
		for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
			i++
		}
		sent := strings.TrimSpace(string(runes[start : i+1]))
		if sent != "" {
			sentences = append(sentences, sent)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// spokenTokenPattern strips citation markers plus the whitespace before
// them, so a marker between a word and its terminator leaves no orphan.
var spokenTokenPattern = regexp.MustCompile(`\s*\[prov:[A-Za-z0-9_-]+\]`)

// countSpokenWords counts whitespace-separated words, excluding citation
// markers — they are read by the renderer, not the voice.
func countSpokenWords(text string) int {
	return len(strings.Fields(spokenTokenPattern.ReplaceAllString(text, "")))
}
