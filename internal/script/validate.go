// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package script

import (
	"fmt"
	"io"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// SceneViolation records one scene exceeding its sentence cap (R4.3).
type SceneViolation struct {
	SceneID      string `json:"scene_id" yaml:"scene_id"`
	Sentences    int    `json:"sentences" yaml:"sentences"`
	MaxSentences int    `json:"max_sentences" yaml:"max_sentences"`
}

// BudgetReport is the outcome of validating a script against its class
// budget. Violations are advisory by default — narrative content
// legitimately varies — and callers decide whether they block downstream
// work (R4.4; see DESIGN.md on the advisory-versus-gate decision).
type BudgetReport struct {
	Class      types.DurationClass `json:"class" yaml:"class"`
	TotalWords int                 `json:"total_words" yaml:"total_words"`
	MinWords   int                 `json:"min_words" yaml:"min_words"`
	MaxWords   int                 `json:"max_words" yaml:"max_words"`

	// OverBy and UnderBy report the budget miss; zero when in range.
	OverBy  int `json:"over_by" yaml:"over_by"`
	UnderBy int `json:"under_by" yaml:"under_by"`

	SceneViolations []SceneViolation `json:"scene_violations,omitempty" yaml:"scene_violations,omitempty"`
}

// Clean reports whether the script met every budget constraint.
func (r BudgetReport) Clean() bool {
	return r.OverBy == 0 && r.UnderBy == 0 && len(r.SceneViolations) == 0
}

// Validate compares the script's total words to the class budget and each
// scene's sentence count to the per-scene cap (R4.1, R4.2). Validation is
// an explicit, separate step from generation.
func Validate(s *types.VOScript) (BudgetReport, error) {
	budget, ok := types.WordBudgets[s.Class]
	if !ok {
		return BudgetReport{}, fmt.Errorf("unknown duration class %q", s.Class)
	}

	r := BudgetReport{
		Class:      s.Class,
		TotalWords: s.TotalWords(),
		MinWords:   budget.MinWords,
		MaxWords:   budget.MaxWords,
	}
	if r.TotalWords > budget.MaxWords {
		r.OverBy = r.TotalWords - budget.MaxWords
	}
	if r.TotalWords < budget.MinWords {
		r.UnderBy = budget.MinWords - r.TotalWords
	}

	for _, sc := range s.Scenes {
		if len(sc.Sentences) > budget.MaxSentencesPerScene {
			r.SceneViolations = append(r.SceneViolations, SceneViolation{
				SceneID:      sc.ID,
				Sentences:    len(sc.Sentences),
				MaxSentences: budget.MaxSentencesPerScene,
			})
		}
	}
	return r, nil
}

// Report writes a human-readable budget report to w.
func (r BudgetReport) Report(w io.Writer) {
	fmt.Fprintf(w, "words: %d (budget %d-%d)\n", r.TotalWords, r.MinWords, r.MaxWords)
	if r.OverBy > 0 {
		fmt.Fprintf(w, "warning: over budget by %d words\n", r.OverBy)
	}
	if r.UnderBy > 0 {
		fmt.Fprintf(w, "warning: under budget by %d words\n", r.UnderBy)
	}
	for _, v := range r.SceneViolations {
		fmt.Fprintf(w, "warning: %s has %d sentences (max %d)\n", v.SceneID, v.Sentences, v.MaxSentences)
	}
	if r.Clean() {
		fmt.Fprintln(w, "budget: ok")
	}
}
