// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package story parses raw source content into ordered story beats and
// distills the insights that bound the narrative brief.
// Implements: prd010-story-ir (R1-R4);
//
//	docs/ARCHITECTURE § Story IR.
package story

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// numericTokenPattern matches numbers with optional percent or multiplier
// suffixes ("40%", "3x", "1.5").
var numericTokenPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?(?:%|x|X)?`)

// seriesLinePattern matches chart-shaped "label: value" lines, optionally
// bulleted ("- Q1: 120", "North: 42.5%").
var seriesLinePattern = regexp.MustCompile(`^\s*(?:[-*•]\s*)?([^:]+?):\s*\$?(\d+(?:\.\d+)?)%?\s*$`)

// quotePattern matches straight or curly double-quoted spans.
var quotePattern = regexp.MustCompile(`"[^"]+"|“[^”]+”`)

var problemWords = []string{
	"problem", "struggle", "pain", "waste", "wasted", "slow", "stuck",
	"bottleneck", "cost", "risk", "fail",
}

var ctaWords = []string{
	"sign up", "get started", "try ", "learn more", "book a", "start your",
	"join ", "download", "contact us",
}

// Extract parses raw content into an ordered beat sequence. Blocks are
// paragraphs separated by blank lines; markdown headings are folded into the
// following paragraph. Ordering is significant and beats are immutable once
// extracted (R1.1).
func Extract(content string) ([]types.StoryBeat, error) {
	blocks := splitBlocks(content)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no content to extract beats from")
	}

	beats := make([]types.StoryBeat, 0, len(blocks))
	for i, block := range blocks {
		beat := types.StoryBeat{Text: block}
		beat.Series = extractSeries(block)
		beat.Evidence = detectEvidence(block, beat.Series)
		beat.Role = classifyRole(block, beat, i, len(blocks))
		beats = append(beats, beat)
	}
	return beats, nil
}

// splitBlocks splits content on blank lines. Heading lines (# prefix) are
// merged into the block that follows them, stripped of their markers.
func splitBlocks(content string) []string {
	var blocks []string
	var current []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(current, "\n"))
		if text != "" {
			blocks = append(blocks, text)
		}
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			flush()
			current = append(current, strings.TrimSpace(strings.TrimLeft(trimmed, "#")))
			continue
		}
		current = append(current, trimmed)
	}
	flush()
	return blocks
}

// classifyRole assigns the beat's narrative function. The first block is the
// hook; the closing block with action language is the call to action (R2.1).
func classifyRole(text string, beat types.StoryBeat, index, total int) types.BeatRole {
	if index == 0 {
		return types.RoleHook
	}

	lower := strings.ToLower(text)
	if index == total-1 {
		for _, w := range ctaWords {
			if strings.Contains(lower, w) {
				return types.RoleCTA
			}
		}
	}

	if len(beat.Series) >= 2 || len(numericTokenPattern.FindAllString(text, -1)) >= 2 {
		return types.RoleData
	}
	if quotePattern.MatchString(text) {
		return types.RoleCaseStudy
	}
	if strings.Contains(text, "?") {
		return types.RoleProblem
	}
	for _, w := range problemWords {
		if strings.Contains(lower, w) {
			return types.RoleProblem
		}
	}
	return types.RoleDefault
}

// detectEvidence marks supporting material: a label/value series reads as a
// timeline, a lone metric token as a metric (R3.1, R3.2).
func detectEvidence(text string, series []types.SeriesPoint) types.EvidenceKind {
	if len(series) >= 2 {
		return types.EvidenceTimeline
	}
	if numericTokenPattern.MatchString(text) {
		return types.EvidenceMetric
	}
	return types.EvidenceNone
}

// extractSeries pulls label/value pairs from consecutive "label: value"
// lines. Fewer than two pairs is not a series.
func extractSeries(text string) []types.SeriesPoint {
	var series []types.SeriesPoint
	for _, line := range strings.Split(text, "\n") {
		m := seriesLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		series = append(series, types.SeriesPoint{
			Label: strings.TrimSpace(m[1]),
			Value: value,
		})
	}
	if len(series) < 2 {
		return nil
	}
	return series
}

// Distill reduces extracted beats to the insights the brief generator
// consumes (R4.1). The brief never sees raw beats.
func Distill(beats []types.StoryBeat) types.Insights {
	var in types.Insights

	for _, b := range beats {
		switch b.Role {
		case types.RoleHook:
			if in.Title == "" {
				in.Title = firstSentence(b.Text)
			}
		case types.RoleProblem:
			if in.Problem == nil {
				in.Problem = &types.ProblemInsight{Statement: firstSentence(b.Text)}
			}
		case types.RoleData, types.RoleCaseStudy:
			if in.Proof == nil {
				in.Proof = &types.ProofInsight{}
			}
			if len(in.Proof.Pillars) < types.MaxProofPillars {
				in.Proof.Pillars = append(in.Proof.Pillars, firstSentence(b.Text))
			}
		case types.RoleCTA:
			if in.Solution == nil {
				in.Solution = &types.SolutionInsight{Approach: firstSentence(b.Text)}
			}
			in.Solution.NextStep = firstSentence(b.Text)
		}
	}

	return in
}

// firstSentence returns text up to the first sentence terminator, clamped
// to the brief field ceiling.
func firstSentence(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			text = text[:i]
			break
		}
	}
	if len(text) > types.BriefFieldMax {
		text = text[:types.BriefFieldMax]
	}
	return strings.TrimSpace(text)
}
