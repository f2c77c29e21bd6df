// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pattern deterministically classifies story beats onto visual
// templates. The classifier is an explicit ordered rule chain: first match
// wins, and the order is part of the contract — the same beat must always
// resolve to the same decision.
// Implements: prd013-pattern (R1-R4);
//
//	docs/ARCHITECTURE § Pattern Mapper.
package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

const (
	maxChartPoints = 6
	maxStats       = 4
	maxSteps       = 6
)

// numericTokenPattern matches numbers with optional percent or multiplier
// suffixes ("40%", "3x", "12.5").
var numericTokenPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?(?:%|x|X)?`)

// heroTokenPattern prefers percentage, multiplier, and duration tokens for
// the single-stat hero (R2.3).
var heroTokenPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?(?:%|x|X|\s?(?:ms|sec|seconds|min|minutes|hours|days|weeks))\b`)

// quotePattern captures straight or curly double-quoted spans.
var quotePattern = regexp.MustCompile(`"([^"]+)"|“([^”]+)”`)

// listItemPattern matches bulleted, dashed, or numbered list lines.
var listItemPattern = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)

// rule is one predicate→decision pair of the chain.
type rule struct {
	name  string
	match func(types.StoryBeat) bool
	build func(types.StoryBeat) types.PatternDecision
}

// rules is the classification chain. Order is load-bearing (R1.2): a beat
// is tested top to bottom and the first matching rule decides.
var rules = []rule{
	{
		name:  "hook-title",
		match: func(b types.StoryBeat) bool { return b.Role == types.RoleHook },
		build: func(b types.StoryBeat) types.PatternDecision {
			return types.PatternDecision{
				Pattern:   types.PatternTitle,
				Props:     types.TitleProps{Title: clampText(b.Text, 80)},
				Rationale: "hook beats open on a title card",
			}
		},
	},
	{
		name: "data-chart",
		match: func(b types.StoryBeat) bool {
			return b.Role == types.RoleData || b.Evidence == types.EvidenceTimeline
		},
		build: func(b types.StoryBeat) types.PatternDecision {
			return types.PatternDecision{
				Pattern:   types.PatternChart,
				Props:     types.ChartProps{Points: chartPoints(b)},
				Rationale: "data beats and timelines render as a chart",
			}
		},
	},
	{
		name: "metric-stats",
		match: func(b types.StoryBeat) bool {
			return b.Evidence == types.EvidenceMetric
		},
		build: func(b types.StoryBeat) types.PatternDecision {
			tokens := numericTokenPattern.FindAllString(b.Text, -1)
			if len(tokens) >= 2 {
				return types.PatternDecision{
					Pattern:   types.PatternStatRows,
					Props:     types.StatRowsProps{Stats: extractStats(b.Text, tokens)},
					Rationale: "multiple metrics render side by side",
				}
			}
			value, label := heroStat(b.Text)
			return types.PatternDecision{
				Pattern:   types.PatternStatHero,
				Props:     types.StatHeroProps{Value: value, Label: label},
				Rationale: "a single metric carries the scene",
			}
		},
	},
	{
		name:  "quote",
		match: func(b types.StoryBeat) bool { return quotePattern.MatchString(b.Text) },
		build: func(b types.StoryBeat) types.PatternDecision {
			m := quotePattern.FindStringSubmatch(b.Text)
			quote := m[1]
			if quote == "" {
				quote = m[2]
			}
			return types.PatternDecision{
				Pattern:   types.PatternQuote,
				Props:     types.QuoteProps{Quote: quote},
				Rationale: "quoted material renders as a pull quote",
			}
		},
	},
	{
		name:  "list-steps",
		match: func(b types.StoryBeat) bool { return len(listItems(b.Text)) >= 3 },
		build: func(b types.StoryBeat) types.PatternDecision {
			items := listItems(b.Text)
			if len(items) > maxSteps {
				items = items[:maxSteps]
			}
			return types.PatternDecision{
				Pattern:   types.PatternSteps,
				Props:     types.StepsProps{Steps: items},
				Rationale: "a list of three or more items renders as numbered steps",
			}
		},
	},
	{
		name:  "cta-title",
		match: func(b types.StoryBeat) bool { return b.Role == types.RoleCTA },
		build: func(b types.StoryBeat) types.PatternDecision {
			return types.PatternDecision{
				Pattern:   types.PatternTitle,
				Props:     types.TitleProps{Title: clampText(b.Text, 60)},
				Rationale: "calls to action close on a short title card",
			}
		},
	},
	{
		name:  "default-callout",
		match: func(types.StoryBeat) bool { return true },
		build: func(b types.StoryBeat) types.PatternDecision {
			title := b.Text
			if idx := strings.Index(title, ":"); idx > 0 {
				title = title[:idx]
			}
			return types.PatternDecision{
				Pattern: types.PatternCallout,
				Props: types.CalloutProps{
					Title: clampText(title, 60),
					Body:  clampText(b.Text, 200),
				},
				Rationale: "no specialized rule matched",
			}
		},
	},
}

// Decide classifies one beat. It is pure and deterministic: the same
// (beat, class) input always yields the same decision (R1.1). A prop set
// that fails its pattern's schema is a hard error, never a fallback (R4.1).
func Decide(beat types.StoryBeat, class types.DurationClass) (types.PatternDecision, error) {
	for _, r := range rules {
		if !r.match(beat) {
			continue
		}
		d := r.build(beat)
		if err := d.Props.Validate(); err != nil {
			return types.PatternDecision{}, fmt.Errorf("rule %s: invalid props: %w", r.name, err)
		}
		return d, nil
	}
	// The default rule always matches; reaching here means the chain was edited badly.
	return types.PatternDecision{}, fmt.Errorf("no pattern rule matched beat")
}

// chartPoints uses the beat's extracted series when present, otherwise
// synthesizes points from numeric tokens in the text (R2.2).
func chartPoints(b types.StoryBeat) []types.SeriesPoint {
	points := b.Series
	if len(points) == 0 {
		for _, tok := range numericTokenPattern.FindAllString(b.Text, -1) {
			v, err := strconv.ParseFloat(strings.TrimRight(tok, "%xX"), 64)
			if err != nil {
				continue
			}
			points = append(points, types.SeriesPoint{Label: tok, Value: v})
		}
	}
	if len(points) > maxChartPoints {
		points = points[:maxChartPoints]
	}
	return points
}

// extractStats pairs up to four numeric tokens with the fragment each
// appears in, so every stat keeps a short label (R2.3).
func extractStats(text string, tokens []string) []types.Stat {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '.' || r == '\n'
	})

	var stats []types.Stat
	for _, tok := range tokens {
		if len(stats) == maxStats {
			break
		}
		label := ""
		for _, f := range fragments {
			if strings.Contains(f, tok) {
				label = clampText(strings.Join(strings.Fields(strings.Replace(f, tok, "", 1)), " "), 40)
				break
			}
		}
		stats = append(stats, types.Stat{Value: tok, Label: label})
	}
	return stats
}

// heroStat extracts exactly one percentage/duration/multiplier token and a
// label (the text with the token removed) (R2.3).
func heroStat(text string) (value, label string) {
	value = heroTokenPattern.FindString(text)
	if value == "" {
		value = numericTokenPattern.FindString(text)
	}
	label = strings.Join(strings.Fields(strings.Replace(text, value, "", 1)), " ")
	return value, clampText(label, 120)
}

// listItems returns the stripped item texts of bulleted/dashed/numbered lines.
func listItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if m := listItemPattern.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
		}
	}
	return items
}

// clampText truncates s to max characters, trimming a trailing partial word.
func clampText(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	s = s[:max]
	if idx := strings.LastIndexByte(s, ' '); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
